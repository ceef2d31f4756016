package middleware

import (
	"net/http"
	"time"
)

// Logging логирует каждый HTTP запрос: метод, путь, статус и длительность
func Logging(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			logger.Info("%s %s - %d (%s)", r.Method, r.URL.Path, recorder.status, time.Since(start))
		})
	}
}
