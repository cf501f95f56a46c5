package client

import "fmt"

// State is the session lifecycle position.
type State int32

const (
	StateConnecting State = iota
	StateAwaitingCompression
	StateActive
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAwaitingCompression:
		return "awaiting_compression"
	case StateActive:
		return "active"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}
