// Package api exposes the classification engine over HTTP.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/zonwering-data/fshade.report/internal/config"
	"github.com/zonwering-data/fshade.report/internal/httputil"
	"github.com/zonwering-data/fshade.report/internal/monitoring"
	"github.com/zonwering-data/fshade.report/internal/shading"
	"github.com/zonwering-data/fshade.report/internal/shadingdb"
	"github.com/zonwering-data/fshade.report/internal/version"
)

// ANSI escape codes for request log colouring
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	classifier *shading.Classifier
	store      *shadingdb.Store
	cfg        *config.EngineConfig
}

// NewServer wires the engine, run store and config into an HTTP server.
// store may be nil, in which case runs are not persisted and the run
// endpoints report 404.
func NewServer(classifier *shading.Classifier, store *shadingdb.Store, cfg *config.EngineConfig) *Server {
	if cfg == nil {
		cfg = config.EmptyEngineConfig()
	}
	return &Server{
		classifier: classifier,
		store:      store,
		cfg:        cfg,
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	default:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	}
}

// LoggingMiddleware logs method, path, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.homeHandler)
	mux.HandleFunc("/api/health", s.healthHandler)
	mux.HandleFunc("/api/params", s.showParams)
	mux.HandleFunc("/api/classify", s.classifyHandler)
	mux.HandleFunc("/api/runs", s.listRuns)
	mux.HandleFunc("/api/runs/", s.runHandler)
	return mux
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		httputil.NotFound(w, "not found")
		return
	}
	w.Write([]byte("Solar Shading Classification Server " + version.String()))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

// showParams reports the engine limits in the same schema the config file
// uses.
func (s *Server) showParams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, map[string]interface{}{
		"significance_deg":     s.cfg.GetSignificanceDeg(),
		"max_context_distance": s.cfg.GetMaxContextDistance(),
		"max_shading_distance": s.cfg.GetMaxShadingDistance(),
		"min_ray_distance":     s.cfg.GetMinRayDistance(),
		"workers":              s.cfg.GetWorkers(),
		"calc_mode":            string(s.cfg.GetCalcMode()),
		"default_month":        s.cfg.GetDefaultMonth(),
	})
}
