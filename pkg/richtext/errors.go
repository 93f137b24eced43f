package richtext

import "errors"

// ErrRender wraps goldmark conversion failures.
var ErrRender = errors.New("richtext: failed to render markdown")
