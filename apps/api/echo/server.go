package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/shule/core/school"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		App            *school.App
		SignalShutdown func()
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts    *Options
		app     *echo.Echo
		metrics *metrics
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.SignalShutdown == nil {
		opts.SignalShutdown = func() {}
	}
	s := &server{
		opts:    opts,
		app:     echo.New(),
		metrics: newMetrics(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.App.Config

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(s.metrics.middleware())

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.App.Logger, s.opts.App.Translator, s.opts.SignalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home(conf.AppName))
	s.app.GET("/metrics", s.metrics.handler())

	v1 := s.app.Group("/v1")
	auth := newAuth(conf.SecretKey, conf.Server.JWTExpirationDelta, s.opts.App)
	api := &schoolApi{app: s.opts.App}

	registerAuthAPI(v1, auth)

	// every route below needs a JWT with a live session
	g := v1.Group("", auth.jwt(), auth.sessionMiddleware())
	registerDirectoryAPI(g, api)
	registerAttendanceAPI(g, api)
	registerExamAPI(g, api)
	registerFeeAPI(g, api)
	registerTimetableAPI(g, api)
	registerMessageAPI(g, api)
	registerTransportAPI(g, api)
	registerActivityAPI(g, api)
	registerSocialAPI(g, api)
	registerReportAPI(g, api)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(appName string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Welcome to "+appName+" API!")
	}
}

// schoolApi serves every record route from the shared App.
type schoolApi struct {
	app *school.App
}
