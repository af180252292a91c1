package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-wishlist/go-wishlist/internal/config"
	fiberlogger "github.com/go-wishlist/go-wishlist/internal/logger/adapter/fiber"
	"github.com/go-wishlist/go-wishlist/internal/web/handler"
	"github.com/go-wishlist/go-wishlist/internal/web/handler/admin/item"
	"github.com/go-wishlist/go-wishlist/internal/web/handler/admin/preset"
	"github.com/go-wishlist/go-wishlist/internal/web/handler/setup"
	"github.com/go-wishlist/go-wishlist/internal/web/handler/wishlist"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"
)

// ErrNilConfig is returned by New without config or database.
var ErrNilConfig = errors.New("config and db must not be nil")

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and shuts the server down.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown marks the service as not alive, waits ShutDownTime and stops the server.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether checkalive answers 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// CheckAlive answers 200 while alive and 503 during shutdown.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

func newTemplateEngine(cfg *config.Config) *html.Engine {
	templateEngine := html.NewFileSystem(http.FS(templateEmbedFS{embeddedTemplates}), ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	return templateEngine
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) (*Service, error) {
	if cfg == nil || db == nil {
		return nil, ErrNilConfig
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          newTemplateEngine(cfg),
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	service := &Service{
		cfg:          cfg,
		App:          app,
		db:           db,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	guard := AdminAuth(cfg)

	// init handlers (they register their own routes behind the guard)
	handlers := []handler.Service{
		&setup.Handler,
		&wishlist.Handler,
		&item.Handler,
		&preset.Handler,
	}
	for _, h := range handlers {
		if err := h.Init(app, cfg, db, guard); err != nil {
			return nil, err
		}
	}

	// redirect root to the public wishlist
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(wishlist.Path)
	})

	return service, nil
}
