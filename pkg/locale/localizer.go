package locale

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/lingo/pkg/merge"
)

// Localizer exposes the merged content of the current language.
//
// Switching language builds a complete View and then publishes it with a
// single pointer swap. Readers see either the previous view or the new one.
// Switches are serialized; reads never block.
type Localizer struct {
	defaultLang    string
	initial        string
	detect         func() string
	producers      map[string]Producer
	logger         *slog.Logger
	pseudo         bool
	pseudoExpanded bool
	trace          bool

	mu      sync.Mutex
	catalog atomic.Pointer[Catalog]
	view    atomic.Pointer[View]
}

// New creates a Localizer over trees keyed by language and switches to the
// initial language.
func New(trees map[string]Tree, opts ...Option) *Localizer {
	l := &Localizer{
		defaultLang: "en",
		detect:      HostLanguage,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.catalog.Store(NewCatalog(l.defaultLang, trees, l.producers))

	lang := l.initial
	if lang == "" {
		lang = BestMatch(l.detect(), l.AvailableLanguages())
	}
	if lang == "" {
		lang = l.defaultLang
	}
	l.SetLanguage(lang)

	return l
}

// SetLanguage switches to lang. An unknown language falls back to the default
// tree as a whole.
func (l *Localizer) SetLanguage(lang string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.view.Store(l.build(l.catalog.Load(), lang))
}

// SetContent replaces every tree and rebuilds the current language.
func (l *Localizer) SetContent(trees map[string]Tree) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c := NewCatalog(l.defaultLang, trees, l.producers)
	l.catalog.Store(c)
	l.view.Store(l.build(c, l.view.Load().Language()))
}

func (l *Localizer) build(c *Catalog, lang string) *View {
	log := l.logger.With(slog.String("lang", lang))
	if !c.Has(lang) {
		log.Warn("unknown language, using default content",
			slog.String("default", c.DefaultLanguage()),
		)
	}

	opts := []merge.Option{merge.WithLogger(log)}
	if l.trace {
		opts = append(opts, merge.WithTrace(merge.NewTrace()))
	}

	v := c.Resolve(lang, merge.New(opts...))
	if l.pseudo {
		fn := Pseudo
		if l.pseudoExpanded {
			fn = PseudoExpanded
		}
		v.root = pseudoize(v.root, fn).(map[string]any)
	}
	return v
}

// View returns the current view.
func (l *Localizer) View() *View {
	return l.view.Load()
}

// Language returns the current language.
func (l *Localizer) Language() string {
	return l.View().Language()
}

// DefaultLanguage returns the fallback language.
func (l *Localizer) DefaultLanguage() string {
	return l.defaultLang
}

// AvailableLanguages returns the configured languages, default first.
func (l *Localizer) AvailableLanguages() []string {
	return l.catalog.Load().Languages()
}

// InterfaceLanguage returns the language reported by the detector.
func (l *Localizer) InterfaceLanguage() string {
	return l.detect()
}

// Get returns the node at path in the current view.
func (l *Localizer) Get(path string) (any, bool) {
	return l.View().Get(path)
}

// Has reports whether path exists in the current view.
func (l *Localizer) Has(path string) bool {
	return l.View().Has(path)
}

// String returns the text at path in the current view.
func (l *Localizer) String(path string) string {
	return l.View().String(path)
}

// GetString returns the text at path for lang without switching. A missing
// path is logged and yields "".
func (l *Localizer) GetString(path, lang string) string {
	v := l.View()
	if lang != v.Language() {
		v = l.build(l.catalog.Load(), lang)
	}
	n, ok := v.Get(path)
	if !ok {
		l.logger.Debug("missing locale path",
			slog.String("path", path),
			slog.String("lang", lang),
		)
		return ""
	}
	return Text(n)
}
