package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/ccplugins/pluginserve/pkg/httputil"
	"github.com/ccplugins/pluginserve/pkg/marketplace"
	"github.com/ccplugins/pluginserve/pkg/observability"
)

// Server is the HTTP front of the plugin marketplace service.
type Server struct {
	router  *mux.Router
	service *marketplace.Service
	log     *logrus.Logger
	metrics *observability.Metrics
	health  *observability.HealthChecker
}

// NewServer creates the API server and registers all routes. metrics may be
// nil when metrics are disabled.
func NewServer(service *marketplace.Service, log *logrus.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		service: service,
		log:     log,
		metrics: metrics,
		health:  observability.NewHealthChecker(service.RootDir()),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(httputil.RequestIDMiddleware)
	s.router.Use(httputil.LoggingMiddleware(s.log))
	s.router.Use(httputil.RecoveryMiddleware(s.log))
	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware)
	}

	s.router.HandleFunc("/health", s.health.Liveness).Methods("GET")
	s.router.HandleFunc("/ready", s.health.Readiness).Methods("GET")

	marketplace.NewHandlers(s.service, s.metrics).RegisterRoutes(s.router)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HealthHandler returns the handler for the separate health/metrics
// listener: liveness, readiness and, when metrics are enabled, the
// Prometheus scrape endpoint.
func (s *Server) HealthHandler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health.Liveness).Methods("GET")
	r.HandleFunc("/ready", s.health.Readiness).Methods("GET")
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}
	return r
}
