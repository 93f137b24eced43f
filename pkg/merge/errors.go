package merge

import (
	"errors"
	"fmt"
)

// ErrInvalidPath is returned by ParsePath for malformed path expressions.
var ErrInvalidPath = errors.New("merge: invalid path")

func pathError(s string, pos int) error {
	return fmt.Errorf("%w: %q at offset %d", ErrInvalidPath, s, pos)
}
