package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"annia/internal/shared/config"
)

// ClientCookie identifies a visitor across requests. It carries no personal
// data, only a random id.
const ClientCookie = "annia_client"

// ClientID returns the visitor id from the cookie, issuing a new one when the
// cookie is missing or not a uuid.
func ClientID(c *gin.Context, cookieConfig config.CookieConfig) string {
	if id, err := c.Cookie(ClientCookie); err == nil {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}

	id := uuid.NewString()
	SetClientCookie(c, cookieConfig, id)
	return id
}

func SetClientCookie(c *gin.Context, cookieConfig config.CookieConfig, id string) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(
		ClientCookie,
		id,
		cookieConfig.MaxAge,
		cookieConfig.Path,
		cookieConfig.Domain,
		cookieConfig.Secure,
		true, // HttpOnly
	)
}

func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
