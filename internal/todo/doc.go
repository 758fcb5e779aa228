// Package todo is the state engine behind tada: a Store of named lists,
// each holding todos with a completion flag.
//
// The engine does no I/O and no locking. Callers own one Store per
// session and serialize access to it; see package session.
package todo
