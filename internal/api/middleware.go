package api

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	domainerrors "github.com/echoverse/echo-web/internal/errors"
	"github.com/echoverse/echo-web/internal/http/response"
	"github.com/echoverse/echo-web/internal/id"
)

// ReloadPrompt is shown when rendering a response failed.
const ReloadPrompt = "Something went wrong while rendering this page. Please reload."

// RenderFailure is the data attached to a RENDER error response.
type RenderFailure struct {
	IncidentID string `json:"incidentId"`
	Reload     bool   `json:"reload"`
}

// requestLogger logs one line per request with status, size and latency.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			logger.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("remote", r.RemoteAddr),
			)
		})
	}
}

// renderBoundary turns a panic anywhere below it into a RENDER response with an incident id.
// The cause is not inspected; the stack is logged under the incident id.
func renderBoundary(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				incident, err := id.Incident()
				if err != nil {
					incident = "INC-UNKNOWN"
				}
				logger.Error("render failed",
					"incident", incident,
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", middleware.GetReqID(r.Context()),
					"stack", string(debug.Stack()),
				)

				w.Header().Set("Cache-Control", CacheNoStore)
				response.Write(w, http.StatusInternalServerError, response.Envelope{
					Success: false,
					Data:    RenderFailure{IncidentID: incident, Reload: true},
					Error:   ReloadPrompt,
					Code:    string(domainerrors.CodeRender),
				}, logger)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
