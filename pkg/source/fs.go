package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/dmitrymomot/lingo/pkg/locale"
)

// FS loads trees from files laid out as {lang}/{namespace}.{ext}:
//
//	en/common.yaml
//	en/errors.json
//	de/common.yml
//
// Files with an unknown extension are ignored. Two files for the same
// language and namespace are merged, later paths over earlier ones.
type FS struct {
	fsys     fs.FS
	decoders map[string]Decoder
}

// FSOption configures an FS source.
type FSOption func(*FS)

// WithDecoder registers a decoder for a file extension such as ".toml".
// Registering a known extension replaces its decoder.
func WithDecoder(ext string, d Decoder) FSOption {
	return func(s *FS) {
		if d != nil {
			s.decoders[normalizeExt(ext)] = d
		}
	}
}

// WithExtensions restricts loading to the given extensions.
func WithExtensions(exts ...string) FSOption {
	return func(s *FS) {
		keep := make(map[string]Decoder, len(exts))
		for _, ext := range exts {
			ext = normalizeExt(ext)
			if d, ok := s.decoders[ext]; ok {
				keep[ext] = d
			}
		}
		s.decoders = keep
	}
}

// NewFS creates a source reading fsys. JSON and YAML are decoded by default.
func NewFS(fsys fs.FS, opts ...FSOption) *FS {
	s := &FS{
		fsys: fsys,
		decoders: map[string]Decoder{
			".json": DecodeJSON,
			".yaml": DecodeYAML,
			".yml":  DecodeYAML,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir creates a source reading the directory at root.
func Dir(root string, opts ...FSOption) *FS {
	return NewFS(os.DirFS(root), opts...)
}

// Load walks the file system and decodes every matching file.
func (s *FS) Load(ctx context.Context) (map[string]locale.Tree, error) {
	out := make(map[string]locale.Tree)

	err := fs.WalkDir(s.fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		decode, ok := s.decoders[strings.ToLower(path.Ext(filePath))]
		if !ok {
			return nil
		}

		lang, namespace, err := splitPath(filePath)
		if err != nil {
			return err
		}

		data, err := fs.ReadFile(s.fsys, filePath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", filePath, err)
		}

		content, err := decode(data)
		if err != nil {
			return fmt.Errorf("%w: parsing %q: %w", ErrInvalidFile, filePath, err)
		}

		addNamespace(out, lang, namespace, content)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// splitPath derives the language from the parent directory and the namespace
// from the file name.
func splitPath(filePath string) (lang, namespace string, err error) {
	dir := path.Dir(filePath)
	if dir == "." || dir == "" {
		return "", "", fmt.Errorf("%w: file %q must be inside a language directory", ErrInvalidFile, filePath)
	}

	lang = path.Base(dir)
	namespace = strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	if namespace == "" {
		return "", "", fmt.Errorf("%w: file %q has no namespace", ErrInvalidFile, filePath)
	}
	return lang, namespace, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
