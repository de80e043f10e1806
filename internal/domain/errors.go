package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrRemoteRejected indicates a downstream service declined the request.
	ErrRemoteRejected = errors.New("remote rejected")

	// ErrRemoteUnreachable indicates a transport-level failure talking to a
	// downstream service.
	ErrRemoteUnreachable = errors.New("remote unreachable")
)
