package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taskboard/taskboard-go/internal/logging"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var scoped *slog.Logger
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scoped = logging.FromContext(r.Context())
		w.WriteHeader(http.StatusNotFound)
	})

	handler := chimw.RequestID(Logger(base)(next))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/task/123", nil))

	if scoped == nil || scoped == slog.Default() {
		t.Fatal("handler did not receive a request-scoped logger")
	}

	out := buf.String()
	for _, want := range []string{"request completed", "status=404", "path=/task/123", "method=GET", "request_id=", "level=WARN"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestLoggerDefaultsToOK(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	Logger(base)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	if out := buf.String(); !strings.Contains(out, "status=200") || !strings.Contains(out, "bytes=2") {
		t.Errorf("log output %q missing status=200 bytes=2", out)
	}
}

func TestLoggerRecordsAuthenticatedUser(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := Logger(base)(JWTAuth(stubVerifier{"good-token": "user-1"})(next))

	req := httptest.NewRequest(http.MethodGet, "/task", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if !strings.Contains(out, "request completed") || !strings.Contains(out, "user_id=user-1") {
		t.Errorf("log output %q missing user_id=user-1 on the access line", out)
	}

	buf.Reset()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/task", nil))
	if out := buf.String(); strings.Contains(out, "user_id=") {
		t.Errorf("log output %q has user_id for an unauthenticated request", out)
	}
}
