package intake

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annia/internal/application/intake/usecases"
	domain "annia/internal/domain/intake"
	"annia/internal/interfaces/http/handlers/testutil"
	"annia/internal/interfaces/http/middleware"
	"annia/internal/shared/errors"
)

type mockSubmitExecutor struct {
	executeFn func(ctx context.Context, cmd usecases.SubmitQuickRequestCommand) (*usecases.SubmitQuickRequestResult, error)
	calls     []usecases.SubmitQuickRequestCommand
}

func (m *mockSubmitExecutor) Execute(ctx context.Context, cmd usecases.SubmitQuickRequestCommand) (*usecases.SubmitQuickRequestResult, error) {
	m.calls = append(m.calls, cmd)
	if m.executeFn != nil {
		return m.executeFn(ctx, cmd)
	}
	return &usecases.SubmitQuickRequestResult{OK: true}, nil
}

func newTestHandler(exec *mockSubmitExecutor) *Handler {
	return NewHandler(exec, testutil.NewMockLogger())
}

func TestQuickRequest_RejectsNonPost(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			exec := &mockSubmitExecutor{}
			c, w := testutil.NewTestContext(method, "/api/quick-request", nil)

			newTestHandler(exec).QuickRequest(c)

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			var body testutil.ErrorBody
			require.NoError(t, testutil.ParseResponse(w, &body))
			assert.Equal(t, "Método no permitido.", body.Error)
			assert.Empty(t, exec.calls)
		})
	}
}

func TestQuickRequest_JSONBody(t *testing.T) {
	exec := &mockSubmitExecutor{}
	c, w := testutil.NewRawTestContext(http.MethodPost, "/api/quick-request",
		"application/json; charset=utf-8",
		`{"nombre":"Ana","email":"ana@x.io","rol_organizacion":"Docente","interes":"Cursos"}`)

	newTestHandler(exec).QuickRequest(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	require.Len(t, exec.calls, 1)
	name, ok := exec.calls[0].Payload.Field(domain.FieldName)
	assert.True(t, ok)
	assert.Equal(t, "Ana", name)
}

func TestQuickRequest_FormBody(t *testing.T) {
	exec := &mockSubmitExecutor{}
	c, w := testutil.NewRawTestContext(http.MethodPost, "/api/quick-request",
		"application/x-www-form-urlencoded",
		"nombre=Ana&nombre=Ana+Mar%C3%ADa&email=ana%40x.io&rol_organizacion=Docente&interes=Cursos")

	newTestHandler(exec).QuickRequest(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, exec.calls, 1)
	name, _ := exec.calls[0].Payload.Field(domain.FieldName)
	assert.Equal(t, "Ana María", name)
	email, _ := exec.calls[0].Payload.Field(domain.FieldEmail)
	assert.Equal(t, "ana@x.io", email)
}

func TestQuickRequest_EmptyOrUnknownBodyIsEmptyPayload(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"empty json", "application/json", ""},
		{"text body", "text/plain", "nombre=Ana"},
		{"json array", "application/json", `["nombre"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockSubmitExecutor{}
			c, _ := testutil.NewRawTestContext(http.MethodPost, "/api/quick-request", tt.contentType, tt.body)

			newTestHandler(exec).QuickRequest(c)

			require.Len(t, exec.calls, 1)
			assert.Empty(t, exec.calls[0].Payload)
		})
	}
}

func TestQuickRequest_ParsedBodyTakesPrecedence(t *testing.T) {
	exec := &mockSubmitExecutor{}
	c, _ := testutil.NewRawTestContext(http.MethodPost, "/api/quick-request", "application/json", `{"nombre":"Body"}`)
	c.Set(ParsedBodyKey, map[string]any{"nombre": "Parsed"})

	newTestHandler(exec).QuickRequest(c)

	require.Len(t, exec.calls, 1)
	name, _ := exec.calls[0].Payload.Field(domain.FieldName)
	assert.Equal(t, "Parsed", name)
}

func TestQuickRequest_MalformedJSONIsServerError(t *testing.T) {
	exec := &mockSubmitExecutor{}
	engine := gin.New()
	engine.Use(middleware.ErrorHandler(testutil.NewMockLogger()))
	engine.POST("/api/quick-request", newTestHandler(exec).QuickRequest)

	c, w := testutil.NewRawTestContext(http.MethodPost, "/api/quick-request", "application/json", `{"nombre":`)
	engine.ServeHTTP(w, c.Request)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, exec.calls)
}

func TestQuickRequest_OversizedBodyIsRejected(t *testing.T) {
	pad := strings.Repeat("a", 70<<10)
	form := url.Values{
		"nombre":           {"Ana"},
		"email":            {"ana@x.io"},
		"rol_organizacion": {"Docente"},
		"interes":          {"Cursos"},
		"pad":              {pad},
	}

	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"form", "application/x-www-form-urlencoded", form.Encode()},
		{"json", "application/json",
			`{"nombre":"Ana","email":"ana@x.io","rol_organizacion":"Docente","interes":"Cursos","pad":"` + pad + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockSubmitExecutor{}
			c, w := testutil.NewRawTestContext(http.MethodPost, "/api/quick-request", tt.contentType, tt.body)

			newTestHandler(exec).QuickRequest(c)

			assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
			var body testutil.ErrorBody
			require.NoError(t, testutil.ParseResponse(w, &body))
			assert.Equal(t, MsgPayloadTooLarge, body.Error)
			assert.Empty(t, exec.calls)
		})
	}
}

func TestQuickRequest_BodyAtLimitIsAccepted(t *testing.T) {
	exec := &mockSubmitExecutor{}
	prefix := "nombre=Ana&pad="
	body := prefix + strings.Repeat("a", maxBodyBytes-len(prefix))
	c, w := testutil.NewRawTestContext(http.MethodPost, "/api/quick-request", "application/x-www-form-urlencoded", body)

	newTestHandler(exec).QuickRequest(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, exec.calls, 1)
	name, _ := exec.calls[0].Payload.Field(domain.FieldName)
	assert.Equal(t, "Ana", name)
}

func newDecodingEngine(exec *mockSubmitExecutor) *gin.Engine {
	h := newTestHandler(exec)
	engine := gin.New()
	engine.Use(middleware.ErrorHandler(testutil.NewMockLogger()))
	engine.Any("/api/quick-request", h.DecodeBody(), h.QuickRequest)
	return engine
}

func TestDecodeBody_StoresPayloadForHandler(t *testing.T) {
	exec := &mockSubmitExecutor{}
	engine := newDecodingEngine(exec)

	c, w := testutil.NewRawTestContext(http.MethodPost, "/api/quick-request",
		"application/x-www-form-urlencoded", "nombre=Ana&interes=Cursos")
	engine.ServeHTTP(w, c.Request)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, exec.calls, 1)
	interes, _ := exec.calls[0].Payload.Field(domain.FieldInterest)
	assert.Equal(t, "Cursos", interes)
}

func TestDecodeBody_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
	}{
		{"oversized", "application/json", `{"pad":"` + strings.Repeat("a", 70<<10) + `"}`, http.StatusRequestEntityTooLarge},
		{"malformed json", "application/json", `{"nombre":`, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockSubmitExecutor{}
			engine := newDecodingEngine(exec)

			c, w := testutil.NewRawTestContext(http.MethodPost, "/api/quick-request", tt.contentType, tt.body)
			engine.ServeHTTP(w, c.Request)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Empty(t, exec.calls)
		})
	}
}

func TestDecodeBody_SkipsNonPost(t *testing.T) {
	exec := &mockSubmitExecutor{}
	engine := newDecodingEngine(exec)

	c, w := testutil.NewRawTestContext(http.MethodGet, "/api/quick-request", "application/json", `{"nombre":`)
	engine.ServeHTTP(w, c.Request)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
}

func TestQuickRequest_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   testutil.ErrorBody
	}{
		{
			name:       "missing fields",
			err:        errors.NewMissingFieldsError(usecases.MsgMissingFields, []string{"email", "interes"}),
			wantStatus: http.StatusBadRequest,
			wantBody:   testutil.ErrorBody{Error: "Faltan campos obligatorios.", MissingFields: []string{"email", "interes"}},
		},
		{
			name:       "configuration",
			err:        errors.NewConfigurationError(usecases.MsgConfigIncomplete, "smtp_host"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   testutil.ErrorBody{Error: "Configuración de correo incompleta."},
		},
		{
			name:       "dispatch",
			err:        errors.NewDispatchError(usecases.MsgDispatchFailed, stderrors.New("535 auth failed")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   testutil.ErrorBody{Error: "No se pudo enviar el correo."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockSubmitExecutor{
				executeFn: func(context.Context, usecases.SubmitQuickRequestCommand) (*usecases.SubmitQuickRequestResult, error) {
					return nil, tt.err
				},
			}
			c, w := testutil.NewTestContext(http.MethodPost, "/api/quick-request", map[string]string{"nombre": "Ana"})

			newTestHandler(exec).QuickRequest(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body testutil.ErrorBody
			require.NoError(t, testutil.ParseResponse(w, &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
