// Package middlewares provides the net/http middleware of lingo serve. Every
// middleware has the func(http.Handler) http.Handler shape chi expects.
//
// [I18n] picks the request language (cookie "lang", query "lang", then
// Accept-Language), binds an i18n.Translator and the merged locale.View, and
// stores both in the request context:
//
//	r := chi.NewRouter()
//	r.Use(
//		middlewares.RequestID(),
//		middlewares.Recover(middlewares.WithRecoverLogger(log)),
//		middlewares.I18n(svc, middlewares.WithI18nNamespace("app")),
//	)
//	r.Get("/hello", func(w http.ResponseWriter, r *http.Request) {
//		tr := middlewares.GetTranslator(r.Context())
//		fmt.Fprint(w, tr.T("hello"))
//	})
//
// [RequestID] keeps an upstream X-Request-ID or assigns a UUID.
// [RequestIDExtractor] and logger.LanguageExtractor put the request ID and
// the language on every log record made with the request context.
//
// [Recover] converts panics into a logged [PanicError] and a 500 response.
package middlewares
