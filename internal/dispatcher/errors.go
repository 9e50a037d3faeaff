package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrEmptyKey indicates a registration with an empty key.
	ErrEmptyKey = errors.New("dispatcher: empty handler key")

	// ErrNilHandler indicates a registration with a nil handler.
	ErrNilHandler = errors.New("dispatcher: nil handler")

	// ErrUnknownAliasTarget indicates an alias to a key with no handler.
	ErrUnknownAliasTarget = errors.New("dispatcher: alias target has no handler")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")
)
