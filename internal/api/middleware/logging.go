package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RequestLogger пишет одну строку на запрос и перехватывает панику хендлера
func RequestLogger(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			defer func() {
				if p := recover(); p != nil {
					logger.Error("HTTP: panic recovered: method=%s, path=%s, panic=%v", r.Method, r.URL.Path, p)
					http.Error(rec, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
				logger.Info("HTTP: method=%s, path=%s, status=%d, duration=%s",
					r.Method, r.URL.Path, rec.status, time.Since(start))
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
