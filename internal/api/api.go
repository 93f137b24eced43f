package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/lingo/middlewares"
	"github.com/dmitrymomot/lingo/pkg/health"
	"github.com/dmitrymomot/lingo/pkg/i18n"
	"github.com/dmitrymomot/lingo/pkg/locale"
	"github.com/dmitrymomot/lingo/pkg/merge"
)

// Handler serves merged locale content over HTTP. The translation service can
// be swapped at any time; each request sees one service from start to end.
type Handler struct {
	current atomic.Pointer[http.Handler]
	checks  health.Checks
	log     *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithChecks sets the readiness checks behind /readyz.
func WithChecks(checks health.Checks) Option {
	return func(h *Handler) {
		h.checks = checks
	}
}

// WithLogger sets the request and panic logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// New builds a Handler over svc.
//
// Routes:
//
//	GET /healthz                 liveness
//	GET /readyz                  readiness checks
//	GET /langs                   served languages, default first
//	GET /v/{lang}                the merged view of lang
//	GET /v/{lang}/{path...}      one node; "a/b/0" and "a.b[0]" are the same path
//	GET /t/{namespace}/{key}     a translated string; ?n= picks a plural form,
//	                             other query values fill placeholders
func New(svc *i18n.I18n, opts ...Option) *Handler {
	h := &Handler{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(h)
	}
	h.Swap(svc)
	return h
}

// Swap publishes a new translation service.
func (h *Handler) Swap(svc *i18n.I18n) {
	router := h.routes(svc)
	h.current.Store(&router)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	(*h.current.Load()).ServeHTTP(w, r)
}

func (h *Handler) routes(svc *i18n.I18n) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middlewares.RequestID(),
		middlewares.Recover(middlewares.WithRecoverLogger(h.log)),
	)

	r.Get("/healthz", health.LivenessHandler())
	r.Get("/readyz", health.ReadinessHandler(h.checks, health.WithLogger(h.log)))
	r.Get("/langs", func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, r, http.StatusOK, map[string]any{
			"default":   svc.DefaultLanguage(),
			"languages": svc.Languages(),
		})
	})

	r.Route("/v/{lang}", func(r chi.Router) {
		r.Use(middlewares.I18n(svc, middlewares.WithLanguageSources(middlewares.FromURLParam("lang"))))
		r.Get("/", h.view)
		r.Get("/*", h.node)
	})

	r.With(middlewares.I18n(svc)).Get("/t/{namespace}/{key}", h.translate(svc))

	return r
}

type nodeResponse struct {
	Language string `json:"language"`
	Path     string `json:"path,omitempty"`
	Value    any    `json:"value"`
}

func (h *Handler) view(w http.ResponseWriter, r *http.Request) {
	v := locale.ViewFrom(r.Context())
	w.Header().Set("X-View-ID", v.ID().String())
	h.writeJSON(w, r, http.StatusOK, nodeResponse{
		Language: middlewares.GetLanguage(r.Context()),
		Value:    Present(v.Root()),
	})
}

func (h *Handler) node(w http.ResponseWriter, r *http.Request) {
	raw := strings.Trim(chi.URLParam(r, "*"), "/")
	p, err := merge.ParsePath(strings.ReplaceAll(raw, "/", "."))
	if err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	v := locale.ViewFrom(r.Context())
	w.Header().Set("X-View-ID", v.ID().String())
	val, ok := v.Lookup(p)
	if !ok {
		h.writeJSON(w, r, http.StatusNotFound, map[string]string{"error": "no value at " + p.String()})
		return
	}
	h.writeJSON(w, r, http.StatusOK, nodeResponse{
		Language: middlewares.GetLanguage(r.Context()),
		Path:     p.String(),
		Value:    Present(val),
	})
}

func (h *Handler) translate(svc *i18n.I18n) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := middlewares.GetLanguage(r.Context())
		tr := i18n.NewTranslator(svc, lang, chi.URLParam(r, "namespace"))
		key := chi.URLParam(r, "key")

		q := r.URL.Query()
		placeholders := i18n.M{}
		for name, values := range q {
			if name == "n" || name == "lang" || len(values) == 0 {
				continue
			}
			placeholders[name] = values[0]
		}

		var text string
		if n := q.Get("n"); n != "" {
			count, err := strconv.Atoi(n)
			if err != nil {
				http.Error(w, "n must be an integer", http.StatusBadRequest)
				return
			}
			text = tr.Tn(key, count, placeholders)
		} else {
			text = tr.T(key, placeholders)
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(text))
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		h.log.ErrorContext(r.Context(), "failed to encode response",
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}
}
