// Package session owns the live-connection side of the protocol.
//
// Ownership boundary:
// - dialing with bounded connect attempts
// - packet transport (one framed read or write per call, serialized writes)
// - the session roster of known participants
package session
