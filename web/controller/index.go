package controller

import (
	"net/http"

	"github.com/dukcapil-minsel/suket/logger"
	"github.com/dukcapil-minsel/suket/util/metrics"
	"github.com/dukcapil-minsel/suket/web/service"
	"github.com/dukcapil-minsel/suket/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// IndexController serves the landing page and the administrator login.
type IndexController struct {
	BaseController

	credentials service.CredentialStore
}

// NewIndexController registers the landing and login routes.
func NewIndexController(g *gin.RouterGroup, credentials service.CredentialStore) *IndexController {
	a := &IndexController{credentials: credentials}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET(PathIndex, a.index)
	g.GET(PathLogin, a.loginPage)
	g.GET("/logout", a.logout)

	g.POST("/login", a.login)
}

func (a *IndexController) index(c *gin.Context) {
	html(c, "index.html", "pages.index.title", nil)
}

func (a *IndexController) loginPage(c *gin.Context) {
	html(c, "login.html", "pages.login.title", nil)
}

// login checks the submitted credential and stores its role in the session.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		a.flashRedirect(c, PathLogin, "messages.wrongCredentials")
		return
	}

	cred, ok := a.credentials.Verify(form.Username, form.Password)
	if !ok {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		logger.Warningf("wrong username or password for %q, IP: %s", form.Username, getRemoteIp(c))
		a.flashRedirect(c, PathLogin, "messages.wrongCredentials")
		return
	}

	if err := session.SetRole(c, cred.Role); err != nil {
		logger.Warning("Unable to save session:", err)
		c.Redirect(http.StatusFound, PathLogin)
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.Infof("%s logged in successfully, IP: %s", cred.Username, getRemoteIp(c))
	c.Redirect(http.StatusFound, PathAdmin)
}

func (a *IndexController) logout(c *gin.Context) {
	if err := session.ClearSession(c); err != nil {
		logger.Warning("Unable to save session after clearing:", err)
	}
	c.Redirect(http.StatusFound, PathIndex)
}
