package server

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/syms-residuos/backoffice/internal/logging"
	"github.com/syms-residuos/backoffice/internal/metrics"
)

// RequestIDHeader carries the request id, echoed on every response.
const RequestIDHeader = "X-Request-Id"

type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.status = http.StatusOK
		w.written = true
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func wrap(w http.ResponseWriter) *statusWriter {
	if sw, ok := w.(*statusWriter); ok {
		return sw
	}
	return &statusWriter{ResponseWriter: w}
}

func requestID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(RequestIDHeader)); id != "" {
		return id
	}
	return uuid.NewString()
}

// logRequests logs one line per request with its status and duration.
func logRequests(logger *logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			id := requestID(r)
			w.Header().Set(RequestIDHeader, id)

			sw := wrap(w)
			next.ServeHTTP(sw, r)

			fields := []logging.Field{
				logging.String("request_id", id),
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", sw.Status()),
				logging.Duration("duration", time.Since(start)),
			}
			if sw.Status() >= http.StatusInternalServerError {
				logger.Error("request failed", fields...)
				return
			}
			logger.Info("request handled", fields...)
		})
	}
}

// recoverPanics turns a handler panic into a 500 response.
func recoverPanics(logger *logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := wrap(w)
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				logger.Error("panic recovered in request handler",
					logging.Any("panic", recovered),
					logging.String("stack", string(debug.Stack())),
					logging.String("method", r.Method),
					logging.String("path", r.URL.Path),
				)
				if sw.written {
					return
				}
				if strings.HasPrefix(r.URL.Path, APIPrefix+"/") {
					writeJSON(sw, http.StatusInternalServerError, apiError{Error: "internal server error"})
					return
				}
				http.Error(sw, "Internal Server Error", http.StatusInternalServerError)
			}()
			next.ServeHTTP(sw, r)
		})
	}
}

// observeRequests records request counts and latency by route template.
func observeRequests(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := wrap(w)
			next.ServeHTTP(sw, r)

			route := "unmatched"
			if current := mux.CurrentRoute(r); current != nil {
				if tmpl, err := current.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}
			m.ObserveRequest(route, r.Method, sw.Status(), time.Since(start))
		})
	}
}
