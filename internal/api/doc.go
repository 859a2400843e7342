// Package api is the HTTP client for the nutrition backend.
//
// Every endpoint answers with the envelope
//
//	{"success": true, "message": "...", "data": ...}
//
// and the client unwraps data into typed results. A status other than 200
// or 201, a false success flag, or a body that is not an envelope all come
// back as *Error.
//
// Authenticated calls carry "Authorization: Bearer <token>" through an
// oauth2 static token transport, and every request carries a fresh
// X-Request-ID.
package api
