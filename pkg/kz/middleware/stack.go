package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/kozmoai/site/pkg/kz/logger"
)

// DefaultStack applies the default middleware stack to a router.
func DefaultStack(r chi.Router, log logger.Logger) {
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
}

// RequestLogger logs method, path, status and duration of every request.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			reqLog := log.With("request_id", chimw.GetReqID(r.Context()))
			if status >= http.StatusInternalServerError {
				reqLog.Errorf("%s %s - %d - %v", r.Method, r.URL.Path, status, time.Since(start))
				return
			}
			reqLog.Debugf("%s %s - %d - %v", r.Method, r.URL.Path, status, time.Since(start))
		})
	}
}
