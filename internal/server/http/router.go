package httpserver

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"xiangqi/internal/server/game"
)

// NewServer 组装 /api/ 和静态文件路由，外面包一层请求日志
func NewServer(games *game.Manager, webDir string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", NewHandler(games, logger))
	RegisterStaticRoutes(mux, webDir)
	return withRequestLog(mux, logger.With().Str("component", "http").Logger())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func withRequestLog(next http.Handler, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		ev := logger.Debug()
		if rec.status >= http.StatusInternalServerError {
			ev = logger.Error()
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Int("bytes", rec.bytes).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}
