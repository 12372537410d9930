// Package web provides the GeriSafe web server: routing, session handling,
// embedded templates and scheduled database maintenance.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net"
	"net/http"
	"strconv"

	"gerisafe/config"
	"gerisafe/logger"
	"gerisafe/util/common"
	"gerisafe/web/controller"
	"gerisafe/web/job"
	"gerisafe/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed html/*
var htmlFS embed.FS

// Server is the GeriSafe web server with its controllers and the cron
// scheduler for database maintenance.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index   *controller.IndexController
	auth    *controller.AuthController
	catalog *controller.CatalogController
	note    *controller.NoteController

	settingService service.SettingService
	mail           service.Sender

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a web server instance with the production SMTP sender.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		ctx:    ctx,
		cancel: cancel,
		mail:   service.NewSMTPSender(),
	}
}

// getHtmlTemplate parses the embedded HTML templates.
func (s *Server) getHtmlTemplate() (*template.Template, error) {
	return template.New("").ParseFS(htmlFS, "html/*.html")
}

// initRouter initializes Gin, registers middleware, templates and
// controllers and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	store := cookie.NewStore([]byte(config.GetSecret()))
	engine.Use(sessions.Sessions("gerisafe", store))

	if config.IsDebug() {
		engine.LoadHTMLGlob("web/html/*.html")
	} else {
		tpl, err := s.getHtmlTemplate()
		if err != nil {
			return nil, err
		}
		engine.SetHTMLTemplate(tpl)
	}

	g := engine.Group("/")
	s.index = controller.NewIndexController(g)
	s.auth = controller.NewAuthController(g, s.mail)
	s.catalog = controller.NewCatalogController(g)
	s.note = controller.NewNoteController(g)

	// Unmatched paths get the same not-found page as unknown subjects.
	engine.NoRoute(controller.ErrorPage)

	return engine, nil
}

// startTask schedules the background maintenance jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@daily", job.NewCheckpointDBJob())
}

// Start initializes and starts the web server.
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

	listen, err := s.settingService.GetListen()
	if err != nil {
		return err
	}
	port, err := s.settingService.GetPort()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(listen, strconv.Itoa(port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and the cron scheduler.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
