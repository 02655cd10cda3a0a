package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taskboard/taskboard-go/internal/logging"
)

// Logger returns middleware that attaches a request-scoped logger to the
// context and logs every completed request.
func Logger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := base.With(
				"method", r.Method,
				"path", r.URL.Path,
				"remote_ip", r.RemoteAddr,
			)
			if rid := chimw.GetReqID(r.Context()); rid != "" {
				l = l.With("request_id", rid)
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			extra := &accessAttrs{}
			ctx := context.WithValue(logging.IntoContext(r.Context(), l), accessAttrsKey{}, extra)

			next.ServeHTTP(ww, r.WithContext(ctx))

			if len(extra.args) > 0 {
				l = l.With(extra.args...)
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			dur := time.Since(start)

			switch {
			case status >= 500:
				l.Error("request completed", "status", status, "duration_ms", dur.Milliseconds())
			case status >= 400:
				l.Warn("request completed", "status", status, "duration_ms", dur.Milliseconds())
			default:
				l.Info("request completed", "status", status, "duration_ms", dur.Milliseconds(), "bytes", ww.BytesWritten())
			}
		})
	}
}

type accessAttrsKey struct{}

// accessAttrs collects attributes learned deeper in the chain for the
// "request completed" line.
type accessAttrs struct {
	args []any
}

// addAccessAttrs appends args to the access log line of the request in ctx.
// It is a no-op outside Logger.
func addAccessAttrs(ctx context.Context, args ...any) {
	if a, ok := ctx.Value(accessAttrsKey{}).(*accessAttrs); ok {
		a.args = append(a.args, args...)
	}
}
