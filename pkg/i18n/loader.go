package i18n

import (
	"context"
	"io/fs"

	"github.com/dmitrymomot/lingo/pkg/source"
)

// WithJSONDir returns an Option that loads translations from JSON files in an fs.FS.
// The fs.FS root must contain language directories directly.
// File convention: {lang}/{namespace}.json
//
// Example structure:
//
//	en/common.json
//	en/errors.json
//	de/common.json
//
// Objects of the form {"$fence": ...} and {"$md": "..."} load as fences and
// rich text.
func WithJSONDir(fsys fs.FS) Option {
	return WithSource(context.Background(), source.NewFS(fsys, source.WithExtensions(".json")))
}

// WithYAMLDir returns an Option that loads translations from YAML files in an fs.FS.
// File convention: {lang}/{namespace}.yaml or {lang}/{namespace}.yml
//
// Nodes tagged !fence, !md and !html load as fences and rich text.
func WithYAMLDir(fsys fs.FS) Option {
	return WithSource(context.Background(), source.NewFS(fsys, source.WithExtensions(".yaml", ".yml")))
}
