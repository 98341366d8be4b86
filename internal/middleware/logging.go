package middleware

import (
	"fmt"
	"net/http"
	"time"

	"dog-users-api/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLog loguea una línea por request vía chimw.RequestLogger.
// chimw.Recoverer usa la misma entrada para loguear panics con stack.
func AccessLog(log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return chimw.RequestLogger(&LogFormatter{log: log.With(map[string]any{"component": "http"})})
}

// LogFormatter adapta logger.Logger a chimw.LogFormatter.
type LogFormatter struct {
	log logger.Logger
}

func (f *LogFormatter) NewLogEntry(r *http.Request) chimw.LogEntry {
	return &logEntry{log: f.log.With(map[string]any{
		"method":     r.Method,
		"path":       r.URL.Path,
		"request_id": chimw.GetReqID(r.Context()),
		"remote_ip":  r.RemoteAddr,
	})}
}

type logEntry struct {
	log logger.Logger
}

func (e *logEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	fields := map[string]any{
		"status":      status,
		"bytes":       bytes,
		"duration_ms": elapsed.Milliseconds(),
	}
	if status >= http.StatusInternalServerError {
		e.log.Warn("request", fields)
		return
	}
	e.log.Info("request", fields)
}

func (e *logEntry) Panic(v interface{}, stack []byte) {
	e.log.Error("panic recovered", map[string]any{
		"panic": fmt.Sprint(v),
		"stack": string(stack),
	})
}
