// Package router define las rutas HTTP del servicio.
package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	authctrl "github.com/dropDatabas3/signup-svc/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/signup-svc/internal/http/controllers/health"
	httperrors "github.com/dropDatabas3/signup-svc/internal/http/errors"
	"github.com/dropDatabas3/signup-svc/internal/http/metrics"
	mw "github.com/dropDatabas3/signup-svc/internal/http/middlewares"
	svcauth "github.com/dropDatabas3/signup-svc/internal/http/services/auth"
	"github.com/dropDatabas3/signup-svc/internal/i18n"
)

// Deps contiene las dependencias para armar el router.
type Deps struct {
	Register svcauth.RegisterService
	Health   *healthctrl.HealthController
	Catalog  *i18n.Catalog
	// MetricsRegistry opcional; nil usa el registry default.
	MetricsRegistry prometheus.Registerer
	// EnableMetrics expone /metrics e instrumenta los requests.
	EnableMetrics bool
}

// New arma el ServeMux con todas las rutas y middlewares.
func New(deps Deps) http.Handler {
	mux := http.NewServeMux()

	register := authctrl.NewRegisterController(deps.Register, deps.Catalog)

	base := []mw.Middleware{
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithLocale(deps.Catalog),
		mw.WithLogging(),
	}

	registerChain := base
	if deps.EnableMetrics {
		mux.Handle("GET /metrics", metrics.Handler(deps.MetricsRegistry))
		registerChain = append(append([]mw.Middleware{}, base...), metrics.WithMetrics("/api/1.0/users"))
	}

	mux.Handle("POST /api/1.0/users", mw.ChainFunc(register.Register, registerChain...))
	mux.Handle("GET /readyz", mw.ChainFunc(deps.Health.Readyz, base...))

	// ServeMux responde 405 para métodos no matcheados de un path
	// registrado; el resto cae acá con el envelope estándar.
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	}))

	return mux
}
