package ipc

import "errors"

// Transport errors. All failures returned by Client wrap one of these, so
// callers can classify with errors.Is.
var (
	// ErrConnectTimeout means the connection was not established within the
	// connect deadline.
	ErrConnectTimeout = errors.New("connect timeout")
	// ErrReadTimeout means a read stalled past the per-read deadline.
	ErrReadTimeout = errors.New("read timeout")
	// ErrUnexpectedClose means the service closed the connection mid-message.
	ErrUnexpectedClose = errors.New("connection closed unexpectedly")
	// ErrOversizedFrame means a declared body length exceeded MaxFrameSize.
	ErrOversizedFrame = errors.New("frame exceeds maximum size")
)
