package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/inboxguard/fraud-filter/internal/core"
	"go.uber.org/zap"
)

// Server is the HTTP transport for the classifier. It is thin glue: all
// decisions live in the core service, all validation failures stop here.
type Server struct {
	httpServer     *http.Server
	service        *core.ClassifierService
	metrics        core.MetricsRepository
	logger         *zap.Logger
	allowedOrigins []string
	requestTimeout time.Duration
}

// NewServer creates a new HTTP API server
func NewServer(
	service *core.ClassifierService,
	metrics core.MetricsRepository,
	logger *zap.Logger,
	listenAddr string,
	allowedOrigins []string,
	requestTimeout time.Duration,
) *Server {
	s := &Server{
		service:        service,
		metrics:        metrics,
		logger:         logger,
		allowedOrigins: allowedOrigins,
		requestTimeout: requestTimeout,
	}

	s.httpServer = &http.Server{
		Addr:    listenAddr,
		Handler: s.routes(),
	}

	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.requestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-User-Email"},
		MaxAge:         86400,
	}))

	r.Get("/", s.handleHome)
	r.Get("/api/test", s.handleTest)
	r.Post("/predict", s.handlePredict)
	r.Post("/api/analyze-all", s.handleAnalyzeAll)
	r.Get("/api/metrics", s.handleMetrics)
	r.Delete("/api/delete-user-data", s.handleDeleteUserData)

	return r
}

// Start begins serving requests. It returns once the listener is running;
// serve errors are logged from the background goroutine.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts the server down
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("Stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}
