package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"annia/internal/shared/errors"
)

const internalErrorMessage = "Error interno del servidor."

// ErrorBody is the error shape every endpoint returns.
type ErrorBody struct {
	Error         string   `json:"error"`
	MissingFields []string `json:"missingFields,omitempty"`
}

// OKBody is the acknowledgement returned by commands without a payload.
type OKBody struct {
	OK bool `json:"ok"`
}

// OKResponse sends 200 {"ok": true}.
func OKResponse(c *gin.Context) {
	c.JSON(http.StatusOK, OKBody{OK: true})
}

// SuccessResponse sends data as the response body.
func SuccessResponse(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

// ErrorResponseWithError sends an error response based on error type. Errors
// that are not AppErrors are reported as a generic 500 so internals never
// leak to the caller.
func ErrorResponseWithError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		appErr = errors.NewInternalError(internalErrorMessage)
	}

	c.JSON(appErr.Code, ErrorBody{
		Error:         appErr.Message,
		MissingFields: appErr.MissingFields,
	})
}
