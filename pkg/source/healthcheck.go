package source

import (
	"context"
	"fmt"
)

// Healthcheck returns a closure that loads src and fails when it yields no
// content, for readiness probes. Wrap src with NewCached to keep the probe
// cheap.
func Healthcheck(src Source) func(context.Context) error {
	return func(ctx context.Context) error {
		if src == nil {
			return ErrLoadFailed
		}
		trees, err := src.Load(ctx)
		if err != nil {
			return err
		}
		if len(trees) == 0 {
			return fmt.Errorf("%w: no languages", ErrNotFound)
		}
		return nil
	}
}
