// Package intake serves the quick-request form endpoint.
package intake

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"annia/internal/application/intake/usecases"
	domain "annia/internal/domain/intake"
	"annia/internal/shared/errors"
	"annia/internal/shared/logger"
	"annia/internal/shared/utils"
)

// ParsedBodyKey is the gin context key under which DecodeBody leaves the
// decoded request body for QuickRequest.
const ParsedBodyKey = "intake.parsed_body"

const (
	MsgMethodNotAllowed = "Método no permitido."
	MsgPayloadTooLarge  = "La solicitud es demasiado grande."
)

// maxBodyBytes bounds the form body; the four fields fit easily.
const maxBodyBytes = 64 << 10

type Handler struct {
	submit usecases.SubmitQuickRequestExecutor
	logger logger.Interface
}

func NewHandler(submit usecases.SubmitQuickRequestExecutor, logger logger.Interface) *Handler {
	return &Handler{
		submit: submit,
		logger: logger,
	}
}

// DecodeBody decodes a POST body once and stores it under ParsedBodyKey.
// A body already stored by an earlier middleware is left alone.
func (h *Handler) DecodeBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if _, ok := c.Get(ParsedBodyKey); ok {
			c.Next()
			return
		}

		payload, err := decodeBody(c.Request.Body, c.GetHeader("Content-Type"))
		if err != nil {
			h.rejectBody(c, err)
			c.Abort()
			return
		}

		c.Set(ParsedBodyKey, map[string]any(payload))
		c.Next()
	}
}

// QuickRequest handles /api/quick-request for every method; only POST is
// accepted.
func (h *Handler) QuickRequest(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Header("Allow", http.MethodPost)
		utils.ErrorResponseWithError(c, errors.NewMethodNotAllowedError(MsgMethodNotAllowed))
		return
	}

	payload, err := h.readPayload(c)
	if err != nil {
		h.rejectBody(c, err)
		return
	}

	h.logger.Infow("quick request received", "client_ip", c.ClientIP())

	if _, err := h.submit.Execute(c.Request.Context(), usecases.SubmitQuickRequestCommand{Payload: payload}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c)
}

// rejectBody answers an oversized body directly and hands any other decode
// failure to the error middleware.
func (h *Handler) rejectBody(c *gin.Context, err error) {
	h.logger.Warnw("failed to decode quick request body",
		"content_type", c.ContentType(),
		"error", err)
	if errors.IsAppError(err) {
		utils.ErrorResponseWithError(c, err)
		return
	}
	_ = c.Error(err)
}

func (h *Handler) readPayload(c *gin.Context) (domain.Payload, error) {
	if parsed, ok := c.Get(ParsedBodyKey); ok {
		if m, ok := parsed.(map[string]any); ok {
			return domain.Payload(m), nil
		}
	}
	return decodeBody(c.Request.Body, c.GetHeader("Content-Type"))
}

// decodeBody decodes the body according to its content type. An empty body
// or an unknown content type yields an empty payload. A body over
// maxBodyBytes is rejected whole, never decoded from a prefix.
func decodeBody(body io.Reader, contentType string) (domain.Payload, error) {
	if body == nil {
		return domain.Payload{}, nil
	}
	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if len(raw) > maxBodyBytes {
		return nil, errors.NewPayloadTooLargeError(MsgPayloadTooLarge)
	}
	if len(raw) == 0 {
		return domain.Payload{}, nil
	}

	switch {
	case strings.Contains(contentType, "application/json"):
		return decodeJSON(raw)
	case strings.Contains(contentType, "application/x-www-form-urlencoded"):
		return decodeForm(raw), nil
	default:
		return domain.Payload{}, nil
	}
}

func decodeJSON(raw []byte) (domain.Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("malformed json body: %w", err)
	}
	if m, ok := body.(map[string]any); ok {
		return domain.Payload(m), nil
	}
	// Arrays and scalars carry no named fields.
	return domain.Payload{}, nil
}

// decodeForm keeps the last value of a repeated key. Malformed pairs are
// skipped and the rest of the form still counts.
func decodeForm(raw []byte) domain.Payload {
	values, _ := url.ParseQuery(string(raw))
	payload := make(domain.Payload, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			payload[key] = vals[len(vals)-1]
		}
	}
	return payload
}
