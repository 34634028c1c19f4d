package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CallerHeader carries the authenticated user ID set by the fronting proxy
const CallerHeader = "X-User-ID"

type contextKey string

const callerIDKey contextKey = "callerID"

// withCaller copies the caller identity header into the request context.
// A missing header is not rejected here; the services decide whether an
// identity is required.
func withCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callerID := strings.TrimSpace(r.Header.Get(CallerHeader))
		if callerID != "" {
			r = r.WithContext(context.WithValue(r.Context(), callerIDKey, callerID))
		}
		next.ServeHTTP(w, r)
	})
}

// CallerID returns the caller identity stored in ctx, or "" if absent
func CallerID(ctx context.Context) string {
	if id, ok := ctx.Value(callerIDKey).(string); ok {
		return id
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("HTTP request")
	})
}
