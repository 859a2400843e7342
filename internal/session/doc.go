// Package session keeps the logged-in user between runs.
//
// The bearer token is stored through [store.Store]. In encrypted mode it is
// sealed with AES-256-GCM under a key derived with HKDF-SHA256 from a random
// per-install master key file (hex encoded, 0600). The derivation binds the
// key to the API URL and user, so a session copied to another server entry
// does not open.
package session
