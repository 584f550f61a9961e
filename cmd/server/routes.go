package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/dividizky/internal/metrics"
	"github.com/mmynk/dividizky/internal/middleware"
	"github.com/mmynk/dividizky/internal/service"
	"github.com/mmynk/dividizky/pkg/api/apiconnect"
)

// maxRequestBytes bounds an RPC body. A full group of validation.MaxPeople
// payers with long names fits comfortably.
const maxRequestBytes = 256 << 10

// newRouter mounts the settlement service, the health check and, when
// staticDir is set, the web client.
func newRouter(svc *service.SettlementService, m *metrics.Metrics, staticDir string, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	)
	path, handler := apiconnect.NewSettlementServiceHandler(svc,
		interceptors,
		connect.WithReadMaxBytes(maxRequestBytes),
	)
	mux.Handle(path, handler)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	if staticDir != "" {
		mux.Handle("/", staticHandler(staticDir))
	}

	return requestLogger(middleware.CORS(allowedOrigins)(mux))
}

// staticHandler serves the single-page client from dir. Unknown paths get
// index.html so client-side routes resolve.
func staticHandler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Unknown RPCs must not fall through to the client.
		if strings.HasPrefix(r.URL.Path, "/dividizky.") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(dir, filepath.Clean("/"+urlPath))
		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

// requestLogger logs every HTTP request at debug level; RPCs are also
// logged by the Connect interceptor.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
