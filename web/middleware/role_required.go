// Package middleware holds the gin middleware shared by the panel's routes.
package middleware

import (
	"net/http"

	"github.com/dukcapil-minsel/suket/logger"
	"github.com/dukcapil-minsel/suket/model"
	"github.com/dukcapil-minsel/suket/web/locale"
	"github.com/dukcapil-minsel/suket/web/session"

	"github.com/gin-gonic/gin"
)

// RoleKey is the gin context key holding the caller's model.Role.
const RoleKey = "role"

// ResolveRole reads the caller's role from the session into the context.
// Callers without a session are guests.
func ResolveRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(RoleKey, session.GetRole(c))
		c.Next()
	}
}

// RoleOf returns the role placed by ResolveRole, guest when absent.
func RoleOf(c *gin.Context) model.Role {
	if v, ok := c.Get(RoleKey); ok {
		if role, ok := v.(model.Role); ok {
			return role
		}
	}
	return model.Guest
}

// RoleRequired lets the request through only for the given roles. Anyone
// else is sent to loginPath with a flashed error.
func RoleRequired(loginPath string, roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		if !allowed[RoleOf(c)] {
			if err := session.AddFlash(c, session.FlashError, locale.Localize(c, "messages.adminRequired")); err != nil {
				logger.Warning("Unable to save session:", err)
			}
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
