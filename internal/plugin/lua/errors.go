package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution times out.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrBadResult is returned when a handler function returns a value
	// that is not a string, table or nil.
	ErrBadResult = errors.New("lua handler returned an unsupported value")

	// ErrBadRegistration is returned for invalid gotodoc.register calls.
	ErrBadRegistration = errors.New("invalid handler registration")
)
