// Package server wires the HTTP surface: the aggregated view, manual
// refresh, session command passthrough, preference flags and the operational
// endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yieldland/minehub/internal/handler"
	"github.com/yieldland/minehub/internal/logger"
	"github.com/yieldland/minehub/internal/metrics"
	"github.com/yieldland/minehub/internal/prefs"
)

// Deps carries everything the router needs.
type Deps struct {
	ViewStore  handler.ViewProvider
	Controller handler.RefreshController
	Commander  handler.SessionCommander
	Refresher  handler.Refresher
	Prefs      *prefs.Store
}

type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and the HTTP server around it.
func NewServer(port int, apiKey string, deps Deps) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.MetricsMiddleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Controller))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	sessionHandler := handler.NewSessionHandler(deps.Commander, deps.Refresher)
	prefsHandler := handler.NewPrefsHandler(deps.Prefs)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/view", handler.HandleGetView(deps.ViewStore))
		r.Post("/refresh", handler.HandleRefresh(deps.Controller))
		r.Post("/sources", handler.HandleSetSourceEnabled(deps.Controller))

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/start", sessionHandler.HandleStart)
			r.Post("/stop", sessionHandler.HandleStop)
			r.Post("/collect", sessionHandler.HandleCollect)
		})

		r.Post("/tools/synthesize", sessionHandler.HandleSynthesize)

		r.Route("/prefs/notice", func(r chi.Router) {
			r.Get("/", prefsHandler.HandleGetNotice)
			r.Post("/dismiss", prefsHandler.HandleDismissNotice)
			r.Post("/reset", prefsHandler.HandleResetNotice)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics probes would drown the log at scrape cadence.
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
