package handler

import (
	"net/http"

	"github.com/segyhp/fintrack/internal/metrics"
	"github.com/segyhp/fintrack/pkg/response"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes groups everything NewRouter wires together
type Routes struct {
	EMI         *EMIHandler
	Auth        *AuthHandler
	Health      *HealthHandler
	RateLimiter *RateLimiter
	RequireAuth mux.MiddlewareFunc
	LogRequests bool
}

func NewRouter(routes Routes) *mux.Router {
	router := mux.NewRouter()
	if routes.LogRequests {
		router.Use(response.LoggingMiddleware)
	}
	router.Use(metrics.Middleware)

	// Health check
	if routes.Health != nil {
		router.HandleFunc("/health", routes.Health.Health).Methods(http.MethodGet)
		router.HandleFunc("/health/ready", routes.Health.Ready).Methods(http.MethodGet)
	}
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(routes.RequireAuth)

	api.HandleFunc("/auth/logout", routes.Auth.Logout).Methods(http.MethodPost)

	emi := api.PathPrefix("/emi").Subrouter()
	if routes.RateLimiter != nil {
		emi.Use(routes.RateLimiter.Middleware)
	}
	emi.HandleFunc("/calculate", routes.EMI.Calculate).Methods(http.MethodPost)
	emi.HandleFunc("/history", routes.EMI.GetHistory).Methods(http.MethodGet)
	emi.HandleFunc("/{id}", routes.EMI.GetCalculation).Methods(http.MethodGet)
	emi.HandleFunc("/{id}", routes.EMI.DeleteCalculation).Methods(http.MethodDelete)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Cannot "+r.Method+" "+r.URL.Path)
	})

	return router
}
