// Package controller holds the panel's HTTP handlers: the landing and login
// pages, the role-specific search pages and the certificate download.
package controller

import (
	"net/http"

	"github.com/dukcapil-minsel/suket/logger"
	"github.com/dukcapil-minsel/suket/web/locale"
	"github.com/dukcapil-minsel/suket/web/session"

	"github.com/gin-gonic/gin"
)

// Paths the controllers redirect between.
const (
	PathIndex  = "/"
	PathLogin  = "/admin"
	PathGuest  = "/guest"
	PathAdmin  = "/utama"
	PathSearch = "/search"
)

// BaseController provides helpers shared by every controller.
type BaseController struct{}

// flashRedirect queues a localized error and redirects to path.
func (a *BaseController) flashRedirect(c *gin.Context, path string, key string) {
	if err := session.AddFlash(c, session.FlashError, I18nWeb(c, key)); err != nil {
		logger.Warning("Unable to save session:", err)
	}
	c.Redirect(http.StatusFound, path)
}

// I18nWeb localizes key for the current request.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	return locale.Localize(c, name, params...)
}
