package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const HTMXKey contextKey = "htmx"

// HTMX marks requests issued by htmx (HX-Request: true) so handlers can answer
// with a bare fragment instead of the full page.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "HX-Request")
		if r.Header.Get("HX-Request") == "true" {
			r = r.WithContext(context.WithValue(r.Context(), HTMXKey, true))
		}
		next.ServeHTTP(w, r)
	})
}

func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(HTMXKey).(bool)
	return v
}
