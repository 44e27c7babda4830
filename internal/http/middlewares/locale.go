package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/signup-svc/internal/i18n"
)

// WithLocale negocia el locale del request contra el catálogo y lo
// inyecta en el contexto. El header Accept-Language es lo único que el
// cliente controla sobre la localización: el resto de la cadena trabaja
// con message keys neutrales.
func WithLocale(catalog *i18n.Catalog) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := catalog.Match(r.Header.Get("Accept-Language"))
			ctx := setLocale(r.Context(), locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
