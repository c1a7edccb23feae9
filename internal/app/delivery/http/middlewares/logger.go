package middlewares

import (
	"medimarket-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// RequestLogger writes one access line per request.
func (m *Middlewares) RequestLogger(log *logrus.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			log.WithFields(logrus.Fields{
				"request_id":  utils.GetRequestID(r.Context()),
				"remote_addr": r.RemoteAddr,
				"method":      r.Method,
				"uri":         r.RequestURI,
				"status":      rec.statusCode,
				"duration":    time.Since(start).String(),
			}).Info("request served")
		})
	}
}
