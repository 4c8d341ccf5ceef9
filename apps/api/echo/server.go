package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/heliumhq/dashboard-api/core"
	"github.com/heliumhq/dashboard-api/core/activity"
	"github.com/heliumhq/dashboard-api/core/campaign"
	"github.com/heliumhq/dashboard-api/core/credit"
	"github.com/heliumhq/dashboard-api/core/invite"
	"github.com/heliumhq/dashboard-api/core/profile"
	"github.com/heliumhq/dashboard-api/core/waitlist"
)

const shutdownTimeout = 10 * time.Second

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		ProfileSvc  *profile.Service
		CreditSvc   *credit.Service
		InviteSvc   *invite.Service
		WaitlistSvc *waitlist.Service
		CampaignSvc *campaign.Service
		UsageSvc    *activity.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan struct{}
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan struct{}),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.signalShutdown)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	api := s.app.Group("/api")
	api.POST("/login", newAuthAPI(s.opts.Validate, s.opts.Translator).login)

	// the dashboard is admin-only: everything else sits behind JWT + admin
	ag := api.Group("", middleware.JWTWithConfig(appJWTConfig), adminMiddleware())
	registerUserAPI(ag, s.opts.ProfileSvc, s.opts.Validate, s.opts.Translator)
	registerCreditAPI(ag, s.opts.CreditSvc, s.opts.Validate, s.opts.Translator)
	registerEmailAPI(ag, s.opts.CampaignSvc, s.opts.Validate, s.opts.Translator)
	registerInviteAPI(ag, s.opts.InviteSvc, s.opts.Validate, s.opts.Translator)
	registerWaitlistAPI(ag, s.opts.WaitlistSvc)
	registerUsageAPI(ag, s.opts.UsageSvc, s.opts.Validate, s.opts.Translator)
}

// signalShutdown is handed to the error handler so an unrecoverable error
// can stop the server gracefully.
func (s *server) signalShutdown() {
	select {
	case <-s.shutdown:
	default:
		close(s.shutdown)
	}
}

func (s *server) Start() {
	go func() {
		if err := s.app.Start(s.opts.Addr); err != nil && err != http.ErrServerClosed {
			s.app.Logger.Error(err)
			s.signalShutdown()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case <-s.shutdown:
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.app.Shutdown(ctx); err != nil {
		s.app.Logger.Fatal(err)
	}
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"status": "ok", "app": core.Conf.AppName})
}
