package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcus102/AGROVIE-sub002/internal/http/middleware"
)

var errNoUser = errors.New("no authenticated user in context")

// currentUserID extracts the authenticated user ID set by AuthMiddleware.
func currentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, ok := c.Get(middleware.ContextUserIDKey)
	if !ok {
		return uuid.Nil, errNoUser
	}
	id, ok := raw.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, errNoUser
	}
	return id, nil
}

// currentUserRole extracts the authenticated user's role.
func currentUserRole(c *gin.Context) string {
	raw, ok := c.Get(middleware.ContextRoleKey)
	if !ok {
		return ""
	}
	role, _ := raw.(string)
	return role
}

// clientMeta collects request metadata stored alongside sessions.
func clientMeta(c *gin.Context) map[string]string {
	return map[string]string{
		"user_agent": c.Request.UserAgent(),
		"ip":         c.ClientIP(),
	}
}
