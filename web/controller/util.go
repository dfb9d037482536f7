package controller

import (
	"net"
	"net/http"
	"strings"

	"github.com/dukcapil-minsel/suket/config"
	"github.com/dukcapil-minsel/suket/logger"
	"github.com/dukcapil-minsel/suket/web/locale"
	"github.com/dukcapil-minsel/suket/web/middleware"
	"github.com/dukcapil-minsel/suket/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the client address, preferring proxy headers.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return strings.TrimSpace(ips[0])
	}
	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}

// html renders the named template. Pending flashes are drained into the
// page so each message is shown exactly once.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	messages, err := session.Flashes(c, session.FlashError)
	if err != nil {
		logger.Warning("Unable to save session:", err)
	}
	data["title"] = I18nWeb(c, title)
	data["messages"] = messages
	data["role"] = middleware.RoleOf(c)
	data["loc"] = locale.Localizer(c)
	data["request_uri"] = c.Request.RequestURI
	c.HTML(http.StatusOK, name, getContext(data))
}

// getContext adds the application name and version to h.
func getContext(h gin.H) gin.H {
	a := gin.H{
		"app_name": config.GetName(),
		"cur_ver":  config.GetVersion(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}
