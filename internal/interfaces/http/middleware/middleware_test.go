package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"annia/internal/interfaces/http/handlers/testutil"
	"annia/internal/shared/errors"
)

type stubLimiter struct {
	allowed bool
	err     error
	seen    []string
}

func (s *stubLimiter) Allow(_ context.Context, subject string) (bool, error) {
	s.seen = append(s.seen, subject)
	return s.allowed, s.err
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(mw...)
	return engine
}

func do(engine *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		limiter    *stubLimiter
		wantStatus int
	}{
		{"within limit", &stubLimiter{allowed: true}, http.StatusOK},
		{"over limit", &stubLimiter{allowed: false}, http.StatusTooManyRequests},
		{"backend down lets request through", &stubLimiter{err: stderrors.New("dial tcp: refused")}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newEngine(RateLimit(tt.limiter, testutil.NewMockLogger()))
			engine.POST("/api/quick-request", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := do(engine, http.MethodPost, "/api/quick-request", nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Len(t, tt.limiter.seen, 1)
		})
	}
}

func TestCORS(t *testing.T) {
	engine := newEngine(CORS([]string{"https://annia.example"}))
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.OPTIONS("/health", func(c *gin.Context) { c.Status(http.StatusMethodNotAllowed) })

	w := do(engine, http.MethodGet, "/health", map[string]string{"Origin": "https://annia.example"})
	assert.Equal(t, "https://annia.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(engine, http.MethodGet, "/health", map[string]string{"Origin": "https://evil.example"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = do(engine, http.MethodOptions, "/health", map[string]string{
		"Origin":                        "https://annia.example",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORS_OptionsWithoutPreflightReachesRoute(t *testing.T) {
	engine := newEngine(CORS([]string{"https://annia.example"}))
	engine.OPTIONS("/health", func(c *gin.Context) { c.Status(http.StatusMethodNotAllowed) })

	tests := []struct {
		name   string
		header map[string]string
	}{
		{"no origin", nil},
		{"allowed origin without request method", map[string]string{"Origin": "https://annia.example"}},
		{"preflight from unknown origin", map[string]string{
			"Origin":                        "https://evil.example",
			"Access-Control-Request-Method": http.MethodPost,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(engine, http.MethodOptions, "/health", tt.header)
			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	engine := newEngine(RequestID())
	engine.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := do(engine, http.MethodGet, "/health", map[string]string{"X-Request-ID": "req-42"})
	assert.Equal(t, "req-42", w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))

	w = do(engine, http.MethodGet, "/health", nil)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestErrorHandler(t *testing.T) {
	engine := newEngine(ErrorHandler(testutil.NewMockLogger()))
	engine.GET("/plain", func(c *gin.Context) { _ = c.Error(stderrors.New("unexpected EOF")) })
	engine.GET("/app", func(c *gin.Context) { _ = c.Error(errors.NewNotFoundError("Idioma no soportado.")) })

	w := do(engine, http.MethodGet, "/plain", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Error interno del servidor."}`, w.Body.String())

	w = do(engine, http.MethodGet, "/app", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Idioma no soportado."}`, w.Body.String())
}

func TestRecovery(t *testing.T) {
	engine := newEngine(Recovery(testutil.NewMockLogger()))
	engine.GET("/panic", func(c *gin.Context) { panic("nil pointer") })

	w := do(engine, http.MethodGet, "/panic", map[string]string{"Cookie": "annia_client=abc"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Error interno del servidor."}`, w.Body.String())
}

func TestSecurityHeaders(t *testing.T) {
	engine := newEngine(SecurityHeaders())
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(engine, http.MethodGet, "/health", nil)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)
	engine := newEngine(metrics.Handler())
	engine.GET("/api/i18n/:lang", func(c *gin.Context) { c.Status(http.StatusOK) })

	do(engine, http.MethodGet, "/api/i18n/en", nil)
	do(engine, http.MethodGet, "/api/i18n/es", nil)
	do(engine, http.MethodGet, "/missing", nil)

	assert.Equal(t, 2.0, promtestutil.ToFloat64(metrics.requests.WithLabelValues("GET", "/api/i18n/:lang", "200")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.requests.WithLabelValues("GET", "not_found", "404")))
}
