package middleware

import (
	"bytes"
	"net/http"
	"time"

	"warehouse/loadmap/internal/logging"
)

const maxLoggedBody = 2048

type respLogger struct {
	http.ResponseWriter
	status int
	buf    *bytes.Buffer
}

func (l *respLogger) WriteHeader(code int) {
	l.status = code
	l.ResponseWriter.WriteHeader(code)
}

func (l *respLogger) Write(b []byte) (int, error) {
	if room := maxLoggedBody - l.buf.Len(); room > 0 {
		if len(b) < room {
			room = len(b)
		}
		l.buf.Write(b[:room])
	}
	return l.ResponseWriter.Write(b)
}

// DebugLogging logs API request and response bodies at debug level. It is
// mounted only outside production.
func DebugLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := &bytes.Buffer{}
		lw := &respLogger{ResponseWriter: w, status: http.StatusOK, buf: buf}

		start := time.Now()
		next.ServeHTTP(lw, r)

		logging.Debug("API exchange",
			"method", r.Method,
			"url", r.URL.String(),
			"status", lw.status,
			"duration", time.Since(start).String(),
			"response_body", buf.String(),
		)
	})
}
