package cookie

import (
	"github.com/gin-gonic/gin"
)

// AccessTokenCookieName lets browser clients authenticate without an Authorization header.
const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
