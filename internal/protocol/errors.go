package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrVarIntTooLong  = errors.New("varint is too long")
	ErrVarLongTooLong = errors.New("varlong is too long")
	ErrPacketTooLarge = errors.New("packet size exceeds maximum allowed")
	ErrInvalidPacket  = errors.New("invalid packet structure")
	ErrStringTooLong  = errors.New("string exceeds maximum length")

	ErrUnexpectedPacket   = errors.New("unexpected packet at this stage")
	ErrUnsupportedChannel = errors.New("unsupported channel")
	ErrNotImplemented     = errors.New("not implemented")
	ErrStateRegression    = errors.New("connection state cannot move backwards")
	ErrUnsupportedVersion = errors.New("unsupported protocol version")
	ErrUnknownOutbound    = errors.New("outbound event has no encoding for this version")
	ErrConnSplit          = errors.New("connection already split into halves")
	ErrAlreadyEncrypted   = errors.New("encryption already enabled")
)

// TransportError is a connection or decode failure. It aborts the unit that
// observed it and is never retried.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DisconnectError carries the reason a server gave for terminating the session.
type DisconnectError struct {
	Reason string
}

func (e *DisconnectError) Error() string {
	return "disconnected by server: " + e.Reason
}

// ViolationError reports an event the current state cannot accept.
type ViolationError struct {
	State  State
	Detail string
	Err    error
}

func (e *ViolationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("protocol violation in %s state: %v", e.State, e.Err)
	}
	return fmt.Sprintf("protocol violation in %s state: %v: %s", e.State, e.Err, e.Detail)
}

func (e *ViolationError) Unwrap() error { return e.Err }

func violation(state State, err error, format string, args ...any) *ViolationError {
	return &ViolationError{State: state, Err: err, Detail: fmt.Sprintf(format, args...)}
}

// Violation builds a ViolationError with a formatted detail.
func Violation(state State, err error, format string, args ...any) error {
	return violation(state, err, format, args...)
}
