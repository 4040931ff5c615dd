package api

import (
	"errors"
	"net/http"

	"rental-booking/internal/domain/user"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errUnauthenticated = errors.New("no authenticated actor in context")

// actorAndID aborts the request when either the actor or the :id path param is missing.
func actorAndID(c *gin.Context, invalidIDMsg string) (user.Actor, uuid.UUID, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return user.Actor{}, uuid.Nil, false
	}
	id, ok := pathID(c, invalidIDMsg)
	if !ok {
		return user.Actor{}, uuid.Nil, false
	}
	return actor, id, true
}

func pathID(c *gin.Context, invalidIDMsg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, invalidIDMsg, nil)
		return uuid.Nil, false
	}
	return id, true
}
