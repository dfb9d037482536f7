package controller

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dukcapil-minsel/suket/logger"
	"github.com/dukcapil-minsel/suket/model"
	"github.com/dukcapil-minsel/suket/util/metrics"
	"github.com/dukcapil-minsel/suket/web/middleware"
	"github.com/dukcapil-minsel/suket/web/service"

	"github.com/gin-gonic/gin"
)

// CertificateController streams generated certificates. Certificates carry
// every field of a record, so only administrators may download them.
type CertificateController struct {
	BaseController

	certificateService *service.CertificateService
}

func NewCertificateController(g *gin.RouterGroup, certificateService *service.CertificateService) *CertificateController {
	a := &CertificateController{certificateService: certificateService}
	a.initRouter(g)
	return a
}

func (a *CertificateController) initRouter(g *gin.RouterGroup) {
	g.GET("/download/*registerNumber", middleware.RoleRequired(PathLogin, model.Administrator), a.download)
}

func (a *CertificateController) download(c *gin.Context) {
	registerNumber := strings.TrimPrefix(c.Param("registerNumber"), "/")

	path, err := a.certificateService.Generate(c.Request.Context(), registerNumber)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNotFound):
		metrics.Certificates.WithLabelValues("not_found").Inc()
		c.String(http.StatusNotFound, I18nWeb(c, "messages.notFound"))
		return
	case errors.Is(err, service.ErrProviderUnavailable):
		metrics.Certificates.WithLabelValues("unavailable").Inc()
		c.String(http.StatusServiceUnavailable, I18nWeb(c, "messages.providerUnavailable"))
		return
	default:
		metrics.Certificates.WithLabelValues("error").Inc()
		logger.Error("Error saat menghasilkan PDF:", err)
		c.String(http.StatusInternalServerError, I18nWeb(c, "messages.generationFailed"))
		return
	}

	metrics.Certificates.WithLabelValues("generated").Inc()
	c.FileAttachment(path, filepath.Base(path))
	logger.Infof("certificate %s sent to %s", path, getRemoteIp(c))
}
