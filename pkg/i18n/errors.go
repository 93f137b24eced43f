package i18n

import (
	"errors"

	"github.com/dmitrymomot/lingo/pkg/source"
)

// Option validation errors returned by New.
var (
	ErrEmptyLanguage  = errors.New("i18n: language cannot be empty")
	ErrEmptyNamespace = errors.New("i18n: namespace cannot be empty")
	ErrNilPluralRule  = errors.New("i18n: plural rule cannot be nil")
	ErrInvalidContent = errors.New("i18n: namespace content must be a record")

	// ErrInvalidFile is returned by the directory loaders for unreadable files.
	ErrInvalidFile = source.ErrInvalidFile
)
