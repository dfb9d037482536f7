package controller

import (
	"errors"

	"github.com/dukcapil-minsel/suket/logger"
	"github.com/dukcapil-minsel/suket/model"
	"github.com/dukcapil-minsel/suket/util/metrics"
	"github.com/dukcapil-minsel/suket/web/middleware"
	"github.com/dukcapil-minsel/suket/web/service"
	"github.com/dukcapil-minsel/suket/web/session"

	"github.com/gin-gonic/gin"
)

// SearchForm is the register lookup submitted from both search pages.
type SearchForm struct {
	Query string `form:"query"`
}

// SearchController serves the guest and administrator search pages and the
// shared result flow.
type SearchController struct {
	BaseController

	searchService *service.SearchService
}

func NewSearchController(g *gin.RouterGroup, searchService *service.SearchService) *SearchController {
	a := &SearchController{searchService: searchService}
	a.initRouter(g)
	return a
}

func (a *SearchController) initRouter(g *gin.RouterGroup) {
	g.GET(PathGuest, a.guest)
	g.GET(PathAdmin, middleware.RoleRequired(PathLogin, model.Administrator), a.admin)
	g.POST(PathSearch, a.search)
}

// guest drops any administrator role held by the session.
func (a *SearchController) guest(c *gin.Context) {
	if err := session.SetRole(c, model.Guest); err != nil {
		logger.Warning("Unable to save session:", err)
	}
	c.Set(middleware.RoleKey, model.Guest)
	html(c, "search_guest.html", "pages.search.title", nil)
}

func (a *SearchController) admin(c *gin.Context) {
	html(c, "search_admin.html", "pages.search.title", nil)
}

func (a *SearchController) search(c *gin.Context) {
	role := middleware.RoleOf(c)
	back := PathGuest
	if role.IsAdmin() {
		back = PathAdmin
	}

	var form SearchForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Debug("bad search form:", err)
	}

	result, err := a.searchService.Search(c.Request.Context(), form.Query, role)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrProviderUnavailable):
		metrics.Searches.WithLabelValues(string(role), "unavailable").Inc()
		a.flashRedirect(c, back, "messages.providerUnavailable")
		return
	default:
		if !errors.Is(err, service.ErrNotFound) {
			logger.Warning("search failed:", err)
		}
		metrics.Searches.WithLabelValues(string(role), "not_found").Inc()
		a.flashRedirect(c, back, "messages.notFound")
		return
	}

	metrics.Searches.WithLabelValues(string(role), "found").Inc()
	if role.IsAdmin() {
		html(c, "result_admin.html", "pages.result.title", gin.H{"data": result.Admin})
		return
	}
	html(c, "result_guest.html", "pages.result.title", gin.H{"data": result.Guest})
}
