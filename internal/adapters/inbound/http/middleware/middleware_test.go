package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/architeacher/device-tracker/internal/adapters/inbound/http/middleware"
	"github.com/architeacher/device-tracker/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates an identifier when none is supplied", func(t *testing.T) {
		t.Parallel()

		var captured string
		handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = middleware.GetRequestID(r.Context())
		}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, captured)
		require.Equal(t, captured, recorder.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("propagates the inbound identifier", func(t *testing.T) {
		t.Parallel()

		var captured string
		handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = middleware.GetRequestID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-123")

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		require.Equal(t, "req-123", captured)
		require.Equal(t, "req-123", recorder.Header().Get(middleware.RequestIDHeader))
	})
}

func TestFlushableResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("records the status code and byte count", func(t *testing.T) {
		t.Parallel()

		recorder := httptest.NewRecorder()
		wrapped := middleware.NewFlushableResponseWriter(recorder)

		wrapped.WriteHeader(http.StatusTeapot)
		n, err := wrapped.Write([]byte("short and stout"))
		require.NoError(t, err)

		require.Equal(t, http.StatusTeapot, wrapped.StatusCode())
		require.Equal(t, uint64(n), wrapped.BytesWritten())
	})

	t.Run("defaults to 200 on write without explicit header", func(t *testing.T) {
		t.Parallel()

		recorder := httptest.NewRecorder()
		wrapped := middleware.NewFlushableResponseWriter(recorder)

		_, err := wrapped.Write([]byte("ok"))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, wrapped.StatusCode())
	})

	t.Run("ignores a second header write", func(t *testing.T) {
		t.Parallel()

		recorder := httptest.NewRecorder()
		wrapped := middleware.NewFlushableResponseWriter(recorder)

		wrapped.WriteHeader(http.StatusCreated)
		wrapped.WriteHeader(http.StatusInternalServerError)

		require.Equal(t, http.StatusCreated, wrapped.StatusCode())
	})
}

func TestAccessLogger(t *testing.T) {
	t.Parallel()

	t.Run("logs completed requests", func(t *testing.T) {
		t.Parallel()

		buffer := &bytes.Buffer{}
		log := logger.NewBufferedTestLogger(buffer)

		handler := middleware.AccessLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/devices/123", nil))

		require.Contains(t, buffer.String(), `"method":"DELETE"`)
		require.Contains(t, buffer.String(), `"status":204`)
	})

	t.Run("skips filtered health probes", func(t *testing.T) {
		t.Parallel()

		buffer := &bytes.Buffer{}
		log := logger.NewBufferedTestLogger(buffer)

		filter := middleware.NewHealthCheckFilter(false)
		handler := filter.Middleware(middleware.AccessLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/liveness", nil))

		require.Empty(t, buffer.String())
	})

	t.Run("keeps health probes when configured to log them", func(t *testing.T) {
		t.Parallel()

		buffer := &bytes.Buffer{}
		log := logger.NewBufferedTestLogger(buffer)

		filter := middleware.NewHealthCheckFilter(true)
		handler := filter.Middleware(middleware.AccessLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/liveness", nil))

		require.Contains(t, buffer.String(), "/health/liveness")
	})
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	buffer := &bytes.Buffer{}
	log := logger.NewBufferedTestLogger(buffer)

	handler := middleware.Recovery(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/devices", nil))
	})

	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.Contains(t, buffer.String(), "panic recovered")
	require.Contains(t, buffer.String(), "boom")
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	handler := middleware.SecurityHeaders()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/devices", nil))

	require.Equal(t, "nosniff", recorder.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", recorder.Header().Get("X-Frame-Options"))
	require.Equal(t, "default-src 'self'", recorder.Header().Get("Content-Security-Policy"))
}
