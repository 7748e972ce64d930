package goMetrics

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyAddress is an exported constant or variable used by the metrics server.
	ErrEmptyAddress = errors.New("empty listen address")
	// ErrTLSPartialMaterial is an exported constant or variable used by the metrics server.
	ErrTLSPartialMaterial = errors.New("tls requires both certificate and private key")
	// ErrBuilderReused is an exported constant or variable used by the metrics server.
	ErrBuilderReused = errors.New("builder already used")
)

// CreateError reports a failure to construct a server: an unbindable address
// or malformed TLS material. It is always returned to the caller at
// construction time, never swallowed.
type CreateError struct {
	// Addr is the listen address the construction attempted to bind.
	Addr string
	// Err is the underlying cause.
	Err error
}

// Error describes the error operation and its observable behavior.
//
// Error does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *CreateError) Error() string {
	return fmt.Sprintf("create metrics server on %q: %v", e.Addr, e.Err)
}

// Unwrap describes the unwrap operation and its observable behavior.
//
// Unwrap does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *CreateError) Unwrap() error { return e.Err }

// StopError reports that the serving loop terminated through an internal fault
// rather than a clean exit. It is surfaced once, by [Server.Stop]; a server
// whose loop never ran cannot produce it.
type StopError struct {
	// Err is the fault that terminated the loop.
	Err error
}

// Error describes the error operation and its observable behavior.
//
// Error does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *StopError) Error() string {
	return fmt.Sprintf("stop metrics server: %v", e.Err)
}

// Unwrap describes the unwrap operation and its observable behavior.
//
// Unwrap does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *StopError) Unwrap() error { return e.Err }
