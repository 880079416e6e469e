package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trezcool/classdesk/actions"
	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/user"
	"github.com/trezcool/classdesk/pages"
	livesvc "github.com/trezcool/classdesk/services/live"
)

type (
	Deps struct {
		Users      *user.Service
		Actions    *actions.Actions
		Pages      *pages.Service
		Hub        *livesvc.Hub
		Validate   *validator.Validate
		Translator ut.Translator
		Logger     core.Logger
	}

	Server struct {
		conf      *core.Config
		deps      Deps
		app       *echo.Echo
		jwtConfig middleware.JWTConfig
		shutdown  chan os.Signal
		errs      chan error
	}
)

func NewServer(conf *core.Config, deps Deps) *Server {
	s := &Server{
		conf: conf,
		deps: deps,
		app:  echo.New(),
		jwtConfig: middleware.JWTConfig{
			SigningKey:    []byte(conf.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    contextTokenKey,
			Claims:        new(Claims),
		},
		shutdown: make(chan os.Signal, 1),
		errs:     make(chan error, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	debug := s.conf.Debug

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || s.conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = debug

	s.app.GET("/", s.home)
	s.app.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	authed := []echo.MiddlewareFunc{middleware.JWTWithConfig(s.jwtConfig), s.sessionMiddleware}

	registerAuthAPI(s.app.Group("/api"), s, authed)

	v1 := s.app.Group("/v1")
	registerPagesAPI(v1.Group("/pages"), s.deps.Pages, s.optionalSessionMiddleware, authed)
	registerLiveAPI(v1, s, s.deps.Hub)

	av1 := v1.Group("", authed...)
	registerUserAPI(av1, s.deps.Actions)
	registerAssignmentAPI(av1, s.deps.Actions)
	registerSubmissionAPI(av1, s.deps.Actions)
	registerScheduleAPI(av1, s.deps.Actions)
	registerLeaveAPI(av1, s.deps.Actions)
}

// Start blocks until the server stops. Failures other than a requested shutdown are sent on Errors.
func (s *Server) Start() {
	s.deps.Logger.Info("API listening on " + s.conf.Server.Host)
	if err := s.app.Start(s.conf.Server.Host); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errs
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	signal.Stop(s.shutdown)
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.conf.AppName+" API!")
}
