package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	appErrors "github.com/arfandy-is/calendar-api/pkg/errors"
	"github.com/arfandy-is/calendar-api/pkg/response"
)

// HeaderAPIKey carries the admin shared secret.
const HeaderAPIKey = "x-api-key"

// APIKey guards mutating routes behind the shared admin secret. The check
// is stateless per request and runs before any body parsing.
func APIKey(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(HeaderAPIKey)
		if secret == "" || provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}
