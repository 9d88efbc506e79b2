package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/nyumbani/property-dashboard/app"
	appmw "github.com/nyumbani/property-dashboard/middleware"
	"github.com/nyumbani/property-dashboard/rbac"
	"github.com/nyumbani/property-dashboard/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appmw.RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(securityHeaders(deps))

	// CORS for the dashboard frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.HTTP.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", deps.HealthHandler.HandleHealth)
	r.Get("/readyz", deps.HealthHandler.HandleReadiness)

	access := deps.AccessHandler
	gate := deps.AccessMiddleware

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		if rpm := deps.Config.HTTP.RateLimitRPM; rpm > 0 {
			r.Use(rateLimiter(rpm))
		}
		r.Use(deps.AuthMiddleware.RequireAuth)
		r.Use(deps.AuthMiddleware.ExtractRole)

		r.Get("/roles", access.ListRoles)
		r.With(gate.RequirePermission(rbac.PermSettingsView)).Get("/roles/{role}", access.GetRole)
		r.With(gate.RequireMenu(rbac.MenuSettings)).Get("/permissions", access.ListPermissions)

		r.Route("/access", func(r chi.Router) {
			r.Get("/me", access.Me)
			r.Post("/check", access.Check)
		})

		r.With(gate.RequireFeature(rbac.FeatureViewReports)).Get("/audit/access", access.ListAudit)
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	return r
}

// securityHeaders sets the standard response hardening headers. HTTPS
// redirects and HSTS are only enforced in production.
func securityHeaders(deps *app.Dependencies) func(http.Handler) http.Handler {
	production := deps.Config.IsProduction()
	sec := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		SSLRedirect:           production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		STSSeconds:            stsSeconds(production),
		STSIncludeSubdomains:  production,
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sec.Process(w, r); err != nil {
				deps.Logger.Warn("secure headers blocked request",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func stsSeconds(production bool) int64 {
	if production {
		return 31536000
	}
	return 0
}

// rateLimiter limits each client IP to rpm requests per minute
func rateLimiter(rpm int) func(http.Handler) http.Handler {
	return httprate.Limit(rpm, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			_ = utils.WriteTooManyRequests(w, "rate limit exceeded", nil)
		}),
	)
}
