package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ribeira/internal/core"
	"ribeira/internal/log"
	"ribeira/internal/observability"
	appweb "ribeira/web"
)

// Options configures the dashboard server.
type Options struct {
	Addr               string
	MapSampleCap       int
	MapSampleSeed      int64
	RateLimitPerMinute int
}

// Server serves the dashboard page, the JSON API, chart renderings, and the
// XLSX report, all computed from one immutable snapshot.
type Server struct {
	http.Server

	snap      *core.Snapshot
	metrics   *observability.Metrics
	logger    *log.Logger
	templates *template.Template

	sampleCap  int
	sampleSeed int64

	limiter      *rateLimiter
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run
// server.
func NewServer(opts Options, snap *core.Snapshot, m *observability.Metrics, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    opts.Addr,
			Handler: mux,
		},
		snap:       snap,
		metrics:    m,
		logger:     logger.WithComponent(log.ComponentHTTP),
		sampleCap:  opts.MapSampleCap,
		sampleSeed: opts.MapSampleSeed,
		limiter:    newRateLimiter(opts.RateLimitPerMinute),
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("GET /{$}", s.route("index", s.handleIndex))
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/cards", s.route("cards", s.handleCards))
	mux.HandleFunc("GET /api/overlaps/registry", s.route("overlaps_registry", s.handleRegistryDistribution))
	mux.HandleFunc("GET /api/overlaps/conservation", s.route("overlaps_conservation", s.handleConservationAreas))
	mux.HandleFunc("GET /api/overlaps/unified", s.route("overlaps_unified", s.handleUnified))

	mux.HandleFunc("GET /api/deforestation/years", s.route("deforestation_years", s.handleAlertYears))
	mux.HandleFunc("GET /api/deforestation/municipal", s.route("deforestation_municipal", s.handleAlertMunicipal))
	mux.HandleFunc("GET /api/deforestation/monthly", s.route("deforestation_monthly", s.handleAlertMonthly))
	mux.HandleFunc("GET /api/deforestation/ranking", s.route("deforestation_ranking", s.handleAlertRanking))
	mux.HandleFunc("GET /api/deforestation/map", s.route("deforestation_map", s.handleAlertMap))
	mux.HandleFunc("GET /api/deforestation/by-unit", s.route("deforestation_by_unit", s.handleAlertsByUnit))

	mux.HandleFunc("GET /api/fire/years", s.route("fire_years", s.handleFireYears))
	mux.HandleFunc("GET /api/fire/monthly-risk", s.route("fire_monthly_risk", s.handleFireMonthlyRisk))
	mux.HandleFunc("GET /api/fire/top-risk", s.route("fire_top_risk", s.handleFireTopRisk))
	mux.HandleFunc("GET /api/fire/top-precipitation", s.route("fire_top_precipitation", s.handleFireTopPrecipitation))
	mux.HandleFunc("GET /api/fire/ranking", s.route("fire_ranking", s.handleFireRanking))
	mux.HandleFunc("GET /api/fire/map", s.route("fire_map", s.handleFireMap))

	mux.HandleFunc("GET /export/report.xlsx", s.route("export_report", s.limited(s.handleExportReport)))
	mux.HandleFunc("GET /charts/{name}", s.route("charts", s.limited(s.handleChart)))

	return s
}

// route wraps a handler with security headers, request logging, and
// metrics.
func (s *Server) route(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy",
			"default-src 'self'; script-src 'self' https://cdn.plot.ly; style-src 'self' 'unsafe-inline'; img-src 'self' data: https://*.basemaps.cartocdn.com https://*.openstreetmap.org; connect-src 'self'")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		if s.metrics != nil {
			s.metrics.HTTPRequests.WithLabelValues(name, strconv.Itoa(rw.statusCode)).Inc()
			s.metrics.RequestDuration.WithLabelValues(name).Observe(duration.Seconds())
		}
		s.logger.Info("request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, duration.Milliseconds(),
			log.FieldClientIP, clientIP(r))
	}
}

// limited applies per-client rate limiting; report building and chart
// rendering are the only endpoints that cost real CPU.
func (s *Server) limited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !s.limiter.allow(ip) {
			s.logger.Warn("rate limit exceeded", log.FieldClientIP, ip, log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "rate limit exceeded, try again later", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// Shutdown gracefully shuts down the server and its rate limiter.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	data := struct {
		Municipalities []string
	}{Municipalities: core.Municipalities}
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "index template execution failed", log.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	// Sources are loaded before the listener starts; once up, we are ready.
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
