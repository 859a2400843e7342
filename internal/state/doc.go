// Package state holds the in-memory session data: saved foods, meals and
// the settings singleton.
//
// A State is constructed explicitly and handed to whoever needs it. All
// mutations go through one mutex, so each completes before the next starts,
// and every mutation returns the Snapshot it produced. Nothing here is
// persisted; a new process starts empty and syncs from the API.
package state
