// Package content serves translation dictionaries and the visitor's
// language preference.
package content

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appcontent "annia/internal/application/content"
	"annia/internal/shared/config"
	"annia/internal/shared/errors"
	"annia/internal/shared/logger"
	"annia/internal/shared/utils"
)

type languageService interface {
	Resolve(requested string) (*appcontent.LocaleContext, error)
	Current(ctx context.Context, clientID string) *appcontent.LocaleContext
	Switch(ctx context.Context, clientID, requested string) (*appcontent.LocaleContext, error)
}

// SwitchLanguageRequest is the body of PUT /api/i18n/language.
type SwitchLanguageRequest struct {
	Language string `json:"language" validate:"required"`
}

type Handler struct {
	languages languageService
	cookie    config.CookieConfig
	logger    logger.Interface
}

func NewHandler(languages languageService, cookie config.CookieConfig, logger logger.Interface) *Handler {
	return &Handler{
		languages: languages,
		cookie:    cookie,
		logger:    logger,
	}
}

// GetDictionary returns the resolved dictionary of :lang.
func (h *Handler) GetDictionary(c *gin.Context) {
	lc, err := h.languages.Resolve(c.Param("lang"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, lc.Messages)
}

// GetCurrent returns the caller's language and its dictionary.
func (h *Handler) GetCurrent(c *gin.Context) {
	clientID := utils.ClientID(c, h.cookie)

	utils.SuccessResponse(c, http.StatusOK, h.languages.Current(c.Request.Context(), clientID))
}

// SwitchLanguage changes and remembers the caller's language.
func (h *Handler) SwitchLanguage(c *gin.Context) {
	var req SwitchLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for switch language", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError(utils.MsgInvalidRequest, err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	clientID := utils.ClientID(c, h.cookie)

	lc, err := h.languages.Switch(c.Request.Context(), clientID, req.Language)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, lc)
}
