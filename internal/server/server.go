package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/samber/do"

	"github.com/relgate/relgate/internal/cihost"
	"github.com/relgate/relgate/internal/dispatch"
	"github.com/relgate/relgate/internal/identity"
	"github.com/relgate/relgate/internal/notify"
	"github.com/relgate/relgate/internal/repository"
	"github.com/relgate/relgate/internal/server/routes"
	"github.com/relgate/relgate/internal/usecase"
	"github.com/relgate/relgate/internal/vcs"
	"gorm.io/gorm"
)

type Config struct {
	Port   int
	DBPath string

	// VCSMode selects the branch validator: "git" lists refs off the
	// remote directly, "api" uses the hosted REST API at VCSBaseURL.
	VCSMode    string
	VCSBaseURL string
	VCSToken   string

	JobHostURL   string
	JobHostToken string

	Logger zerolog.Logger
}

type Server struct {
	e      *echo.Echo
	config *Config
}

func New(config *Config) *Server {
	e := echo.New()
	e.HidePort = true
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogRemoteIP:  true,
		LogHost:      true,
		LogMethod:    true,
		LogURI:       true,
		LogUserAgent: true,
		LogStatus:    true,
		LogLatency:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			config.Logger.Info().
				Str("remote_ip", v.RemoteIP).
				Str("host", v.Host).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("user_agent", v.UserAgent).
				Int("status", v.Status).
				Int64("latency_ms", v.Latency.Milliseconds()).
				Msg("handled request")
			return nil
		},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			config.Logger.Error().Err(err).Bytes("stack", stack).Send()
			return err
		},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := config.Logger.WithContext(req.Context())
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	})

	s := &Server{e: e, config: config}
	s.init()
	return s
}

func (s *Server) init() {
	injector := do.New()
	s.injectDependencies(injector)
	s.registerRoutes(injector)
}

func (s *Server) injectDependencies(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*gorm.DB, error) {
		return repository.NewSQLiteDB(s.config.DBPath)
	})
	do.Provide(injector, func(i *do.Injector) (*repository.Store, error) {
		return repository.NewStore(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (*http.Client, error) {
		return &http.Client{Timeout: 30 * time.Second}, nil
	})
	do.Provide(injector, func(i *do.Injector) (vcs.Validator, error) {
		if s.config.VCSMode == "api" {
			client := do.MustInvoke[*http.Client](i)
			return vcs.NewHostAPIValidator(s.config.VCSBaseURL, s.config.VCSToken, client), nil
		}
		return vcs.NewGitRemoteValidator(s.config.VCSToken), nil
	})
	do.Provide(injector, func(i *do.Injector) (cihost.Client, error) {
		client := do.MustInvoke[*http.Client](i)
		return cihost.NewClient(s.config.JobHostURL, s.config.JobHostToken, client), nil
	})
	do.Provide(injector, identity.NewProvider)
	do.Provide(injector, dispatch.NewDispatcher)
	do.Provide(injector, notify.NewLogNotifier)

	do.Provide(injector, usecase.NewCreateReleaseUsecase)
	do.Provide(injector, usecase.NewUpdateReleaseUsecase)
	do.Provide(injector, usecase.NewApproveReleaseUsecase)
	do.Provide(injector, usecase.NewRevokeApprovalUsecase)
	do.Provide(injector, usecase.NewDeployReleaseUsecase)
	do.Provide(injector, usecase.NewJobStatusUsecase)
	do.Provide(injector, usecase.NewGetReleaseUsecase)
	do.Provide(injector, usecase.NewListReleasesUsecase)
	do.Provide(injector, usecase.NewDeleteReleaseUsecase)
	do.Provide(injector, usecase.NewListConstantsUsecase)
	do.Provide(injector, usecase.NewExportReleasesUsecase)
}

func (s *Server) registerRoutes(injector *do.Injector) {
	routes.RegisterMisc(injector, s.e)
	routes.RegisterReleaseAPI(injector, s.e)
	routes.RegisterConstantAPI(injector, s.e)
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.config.Logger.Info().Str("addr", addr).Msg("starting server")
	return s.e.Start(addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
