// Package session owns one todo.Store per browser session.
//
// A Manager loads the session's data from a Backend on first access,
// hands it to the caller under a per-session lock and writes it back with
// a fresh expiry. Backends keep encoded bytes only; encoding lives in
// data.go and reuses the jsonstore codec for the store itself.
package session
