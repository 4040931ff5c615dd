//go:build unit

package api_test

import (
	"net/http"

	"rental-booking/internal/domain/user"
	"rental-booking/internal/handler/middleware"

	"github.com/gin-gonic/gin"
)

const bearer = "bearer-token"

// stubAuth authenticates every request that carries a bearer token as *actor.
// Tests swap the actor between subtests.
func stubAuth(actor *user.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		middleware.SetActor(c, *actor)
		c.Next()
	}
}

type statusCase struct {
	name           string
	err            error
	expectedStatus int
	expectedMsg    string
}
