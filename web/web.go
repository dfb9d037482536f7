// Package web assembles the panel's HTTP server: routing, sessions,
// templates, static assets and the background certificate pruning job.
package web

import (
	"context"
	"crypto/tls"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dukcapil-minsel/suket/config"
	"github.com/dukcapil-minsel/suket/logger"
	"github.com/dukcapil-minsel/suket/util/common"
	"github.com/dukcapil-minsel/suket/util/metrics"
	"github.com/dukcapil-minsel/suket/util/pdfform"
	"github.com/dukcapil-minsel/suket/util/random"
	"github.com/dukcapil-minsel/suket/web/controller"
	"github.com/dukcapil-minsel/suket/web/job"
	"github.com/dukcapil-minsel/suket/web/locale"
	"github.com/dukcapil-minsel/suket/web/middleware"
	"github.com/dukcapil-minsel/suket/web/network"
	"github.com/dukcapil-minsel/suket/web/service"
	"github.com/dukcapil-minsel/suket/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/robfig/cron/v3"
)

//go:embed assets
var assetsFS embed.FS

//go:embed html
var htmlFS embed.FS

//go:embed translation
var i18nFS embed.FS

var startTime = time.Now()

type wrapAssetsFS struct {
	fs.FS
}

func (f *wrapAssetsFS) Open(name string) (fs.File, error) {
	file, err := f.FS.Open(name)
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFile{File: file}, nil
}

// wrapAssetsFile reports the process start time as every asset's ModTime so
// embedded files get a usable Last-Modified header.
type wrapAssetsFile struct {
	fs.File
}

func (f *wrapAssetsFile) Stat() (fs.FileInfo, error) {
	info, err := f.File.Stat()
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFileInfo{FileInfo: info}, nil
}

type wrapAssetsFileInfo struct {
	fs.FileInfo
}

func (f *wrapAssetsFileInfo) ModTime() time.Time {
	return startTime
}

// Services are the operations the controllers are wired to.
type Services struct {
	Credentials  service.CredentialStore
	Search       *service.SearchService
	Certificates *service.CertificateService
}

// NewServicesFromConfig builds the production services: credentials from the
// users file or the built-in accounts, and records from the spreadsheet or,
// when configured, a local records file.
func NewServicesFromConfig() (Services, error) {
	var credentials service.CredentialStore
	if path := config.GetUsersFile(); path != "" {
		store, err := service.LoadCredentialStore(path)
		if err != nil {
			return Services{}, err
		}
		credentials = store
	} else {
		store, err := service.DefaultCredentialStore()
		if err != nil {
			return Services{}, err
		}
		credentials = store
	}

	var provider service.RecordProvider
	if path := config.GetRecordsFile(); path != "" {
		p, err := service.LoadRecordsFile(path)
		if err != nil {
			return Services{}, err
		}
		logger.Warning("serving records from", path, "instead of the spreadsheet")
		provider = p
	} else {
		provider = service.NewSheetsRecordProvider(service.SheetsConfig{
			SpreadsheetID:   config.GetSpreadsheetID(),
			Range:           config.GetSheetRange(),
			CredentialsFile: config.GetSheetsCredentialsFile(),
			Timeout:         config.GetFetchTimeout(),
		})
	}

	return Services{
		Credentials:  credentials,
		Search:       service.NewSearchService(provider),
		Certificates: service.NewCertificateService(provider, pdfform.NewFiller(), config.GetTemplatePath(), config.GetOutputDir()),
	}, nil
}

// Server is the panel's web server together with its scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	services Services

	index       *controller.IndexController
	search      *controller.SearchController
	certificate *controller.CertificateController

	cron *cron.Cron
}

func NewServer(services Services) *Server {
	return &Server{services: services}
}

// pathEscape escapes each "/"-separated segment of p for use in a URL path.
func pathEscape(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// getHtmlTemplate parses the page templates and their shared partials.
func (s *Server) getHtmlTemplate(fsys fs.FS, funcMap template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(fsys, "html/*.html", "html/common/*.html")
}

func sessionSecret() []byte {
	if secret := config.GetSessionSecret(); secret != "" {
		return []byte(secret)
	}
	logger.Warning("SUKET_SESSION_SECRET is not set, sessions will not survive a restart")
	return []byte(random.Seq(32))
}

// initRouter builds the gin engine with middleware, templates, assets and
// controllers.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.AccessLog())

	if webDomain := config.GetWebDomain(); webDomain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(webDomain))
	}

	// Certificates are already compressed.
	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPathsRegexs([]string{"^/download/", "^/metrics"}),
	))

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}
	funcMap := template.FuncMap{
		"i18n": func(loc *i18n.Localizer, key string, params ...string) string {
			return locale.T(loc, key, params...)
		},
		"pathEscape": pathEscape,
	}

	var htmlSource fs.FS = htmlFS
	assetsSource, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		return nil, err
	}
	if config.IsDebug() {
		htmlSource = os.DirFS("web")
		assetsSource = os.DirFS("web/assets")
	}
	tpl, err := s.getHtmlTemplate(htmlSource, funcMap)
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)
	engine.StaticFS("/assets", http.FS(&wrapAssetsFS{FS: assetsSource}))
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	store := memstore.NewStore(sessionSecret())
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   config.GetSessionMaxAge() * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	g := engine.Group("/")
	g.Use(
		sessions.Sessions(session.CookieName, store),
		locale.LocalizerMiddleware(config.GetDefaultLang()),
		middleware.ResolveRole(),
	)
	s.index = controller.NewIndexController(g, s.services.Credentials)
	s.search = controller.NewSearchController(g, s.services.Search)
	s.certificate = controller.NewCertificateController(g, s.services.Certificates)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the certificate retention and log rotation jobs.
func (s *Server) startTask() {
	if _, err := s.cron.AddJob("@daily", job.NewClearLogsJob(logger.GetLogPath())); err != nil {
		logger.Warning("Add ClearLogsJob error", err)
	}

	retention := config.GetCertificateRetention()
	if retention <= 0 {
		return
	}
	if _, err := s.cron.AddJob("@every 1h", job.NewPruneCertificatesJob(s.services.Certificates, retention)); err != nil {
		logger.Warning("Add PruneCertificatesJob error", err)
	}
}

// Start builds the router, opens the listener and serves in the background.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	certFile, keyFile := config.GetCertFile(), config.GetKeyFile()
	if certFile != "" && keyFile != "" {
		if cert, err := tls.LoadX509KeyPair(certFile, keyFile); err == nil {
			cfg := &tls.Config{Certificates: []tls.Certificate{cert}}
			listener = network.NewHTTPSRedirectListener(listener)
			listener = tls.NewListener(listener, cfg)
			logger.Info("Web server running HTTPS on", listener.Addr())
		} else {
			logger.Error("Error loading certificates:", err)
			logger.Info("Web server running HTTP on", listener.Addr())
		}
	} else {
		logger.Info("Web server running HTTP on", listener.Addr())
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server stopped:", err)
		}
	}()

	s.startTask()
	return nil
}

// Stop shuts down the HTTP server and the cron scheduler.
func (s *Server) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err1 = s.httpServer.Shutdown(ctx)
	} else if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}
