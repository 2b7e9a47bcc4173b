package web

import (
	"bufio"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/vbonduro/lookbook/internal/admin"
	"github.com/vbonduro/lookbook/internal/assets"
	"github.com/vbonduro/lookbook/internal/live"
	"github.com/vbonduro/lookbook/internal/service"
	"github.com/vbonduro/lookbook/internal/tilt"
)

type Server struct {
	service   *service.GalleryService
	templates fs.FS
	assets    assets.Store
	thumbs    *assets.Thumbnailer
	hub       *live.Hub
	gate      *admin.Gate
	mux       *http.ServeMux
	tmplFuncs template.FuncMap
	logger    *slog.Logger
}

func NewServer(
	svc *service.GalleryService,
	tmpl fs.FS,
	assetStore assets.Store,
	thumbs *assets.Thumbnailer,
	hub *live.Hub,
	gate *admin.Gate,
	logger *slog.Logger,
) *Server {
	s := &Server{
		service:   svc,
		templates: tmpl,
		assets:    assetStore,
		thumbs:    thumbs,
		hub:       hub,
		gate:      gate,
		mux:       http.NewServeMux(),
		logger:    logger,
		tmplFuncs: template.FuncMap{
			"inc":           func(i int) int { return i + 1 },
			"sub":           func(a, b int) int { return a - b },
			"seq":           seq,
			"commentTime":   commentTime,
			"comma":         comma,
			"cardView":      newCardView,
			"commentsView":  newCommentsView,
			"analyticsView": newAnalyticsView,
			"maxTilt":       func() float64 { return tilt.MaxDegrees },
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleGallery)
	s.mux.HandleFunc("GET /gallery", s.handleGalleryGrid)
	s.mux.HandleFunc("POST /images/{id}/rating", s.handleRate)
	s.mux.HandleFunc("GET /images/{id}/comments", s.handleListComments)
	s.mux.HandleFunc("POST /images/{id}/comments", s.handleAddComment)
	s.mux.HandleFunc("GET /images/{id}/thumb", s.handleThumbnail)
	s.mux.HandleFunc("GET /assets/{path...}", s.handleAsset)
	s.mux.HandleFunc("GET /analytics", s.handleAnalytics)
	s.mux.HandleFunc("GET /analytics/chart.json", s.handleChartJSON)
	s.mux.HandleFunc("GET /analytics/chart.png", s.handleChartPNG)
	s.mux.HandleFunc("GET /analytics/insight", s.handleInsight)
	s.mux.HandleFunc("GET /api/state", s.handleState)
	s.mux.HandleFunc("GET /live", s.handleLive)
	s.mux.HandleFunc("POST /admin/activate", s.handleAdminActivate)
	s.mux.HandleFunc("GET /admin", s.handleAdmin)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok")
	})
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self' 'unsafe-inline' https://unpkg.com; "+
				"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; "+
				"font-src https://fonts.gstatic.com; "+
				"img-src 'self' data:; "+
				"connect-src 'self' ws: wss:")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
// Hijack is passed through so WebSocket upgrades keep working.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(withSession(withLocale(s.mux)))).ServeHTTP(w, r)
}

// HTTPServer returns the configured *http.Server for addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// renderPage parses and executes a full-page template set.
func (s *Server) renderPage(w http.ResponseWriter, data any, files ...string) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, files...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.ExecuteTemplate(w, "base", data)
}

// renderPartial parses files and executes the {{define}} block called name.
func (s *Server) renderPartial(w http.ResponseWriter, name string, data any, files ...string) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, files...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.ExecuteTemplate(w, name, data)
}

// seq returns 1..n.
func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
