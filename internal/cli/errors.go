package cli

import "errors"

// Command errors.
var (
	// ErrUnknownSource means the configured source kind is not supported.
	ErrUnknownSource = errors.New("cli: unknown source")
	// ErrMissingSetting means a setting the chosen source needs is empty.
	ErrMissingSetting = errors.New("cli: missing setting")
	// ErrPathNotFound means the requested path resolves to nothing.
	ErrPathNotFound = errors.New("cli: no value at path")
	// ErrNotWritable means the source is read only.
	ErrNotWritable = errors.New("cli: source cannot be written")
	// ErrWatchNeedsDir means --watch was given without the fs source.
	ErrWatchNeedsDir = errors.New("cli: --watch requires the fs source")
)
