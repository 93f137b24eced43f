package locale

import "context"

type viewCtxKey struct{}

// WithView returns a copy of ctx carrying v.
func WithView(ctx context.Context, v *View) context.Context {
	return context.WithValue(ctx, viewCtxKey{}, v)
}

// ViewFrom returns the view stored in ctx, or nil.
func ViewFrom(ctx context.Context) *View {
	v, _ := ctx.Value(viewCtxKey{}).(*View)
	return v
}

// LanguageFrom returns the language of the view stored in ctx, or "".
func LanguageFrom(ctx context.Context) string {
	if v := ViewFrom(ctx); v != nil {
		return v.Language()
	}
	return ""
}
