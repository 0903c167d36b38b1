package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/NihalNavath/Campus-Navigator/internal/api/handlers"
	"github.com/NihalNavath/Campus-Navigator/internal/api/middleware"
	"github.com/NihalNavath/Campus-Navigator/internal/auth"
	"github.com/NihalNavath/Campus-Navigator/internal/config"
	"github.com/NihalNavath/Campus-Navigator/internal/domain/events"
	"github.com/NihalNavath/Campus-Navigator/internal/metrics"
	"github.com/NihalNavath/Campus-Navigator/internal/storage/jsonfile"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// BuildInfo carries version metadata into the health endpoint.
type BuildInfo struct {
	Version   string
	GitCommit string
}

// NewRouter assembles the full HTTP surface: auth endpoints, the event
// catalog, health probes and metrics, wrapped in the shared middleware chain.
func NewRouter(cfg config.Config, logger zerolog.Logger, build BuildInfo) http.Handler {
	repo := jsonfile.NewRepository(cfg.Store.EventsFile, logger)
	eventsService := events.NewService(repo)

	verifier := auth.StaticCredentials{
		Username: cfg.Auth.AdminUsername,
		Password: cfg.Auth.AdminPassword,
	}
	authenticator := auth.New(verifier, auth.NewMemoryStore(), cfg.Auth.AdminUsername, cfg.Auth.SessionTTL())

	authHandler := handlers.NewAuthHandler(authenticator, cfg.Auth.SessionTTL(), cfg.Environment, cfg.IsProduction())
	eventsHandler := handlers.NewEventsHandler(eventsService, cfg.Environment)
	healthChecker := handlers.NewHealthChecker(repo, cfg.Store.EventsFile, build.Version, build.GitCommit)

	sessionAuth := middleware.SessionAuth(authenticator, cfg.Environment)

	// One limiter store shared by every route; tier taggers wrap the limiter
	// so the tier is in context before the limiter reads it.
	limit := middleware.RateLimit(cfg.RateLimit)
	loginLimit := func(h http.Handler) http.Handler {
		return middleware.WithRateLimitTierHandler(middleware.TierLogin)(limit(h))
	}
	adminLimit := func(h http.Handler) http.Handler {
		return middleware.WithRateLimitTierHandler(middleware.TierAdmin)(limit(h))
	}

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz())
	mux.Handle("/health", healthChecker.Health())
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("/api/auth/login", methodMux(map[string]http.Handler{
		http.MethodPost: loginLimit(http.HandlerFunc(authHandler.Login)),
	}))
	mux.Handle("/api/auth/logout", methodMux(map[string]http.Handler{
		http.MethodPost: limit(http.HandlerFunc(authHandler.Logout)),
	}))
	mux.Handle("/api/auth/me", methodMux(map[string]http.Handler{
		http.MethodGet: limit(sessionAuth(http.HandlerFunc(authHandler.Me))),
	}))

	mux.Handle("/api/events", methodMux(map[string]http.Handler{
		http.MethodGet:  limit(http.HandlerFunc(eventsHandler.List)),
		http.MethodPost: adminLimit(sessionAuth(http.HandlerFunc(eventsHandler.Create))),
	}))
	mux.Handle("/api/events/{id}", methodMux(map[string]http.Handler{
		http.MethodPut:    adminLimit(sessionAuth(http.HandlerFunc(eventsHandler.Update))),
		http.MethodDelete: adminLimit(sessionAuth(http.HandlerFunc(eventsHandler.Delete))),
	}))

	// Outermost first: security headers on everything, then request identity
	// and logging, then metrics closest to the routes.
	var handler http.Handler = mux
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	handler = middleware.SecurityHeaders(cfg.IsProduction())(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
