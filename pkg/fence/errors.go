package fence

import "errors"

// Errors returned by [Fence.Call].
var (
	// ErrNoSuchMethod means the fence has no callable under the given name.
	ErrNoSuchMethod = errors.New("fence: no such method")
	// ErrBadArguments means the arguments do not fit the method's signature.
	ErrBadArguments = errors.New("fence: bad method arguments")
	// ErrMethodPanicked wraps a panic recovered from a method.
	ErrMethodPanicked = errors.New("fence: method panicked")
)
