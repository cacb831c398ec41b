package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/catering-rentals/internal/booking"
	"github.com/iliyamo/catering-rentals/internal/config"
	"github.com/iliyamo/catering-rentals/internal/database"
	"github.com/iliyamo/catering-rentals/internal/handler"
	"github.com/iliyamo/catering-rentals/internal/middleware"
	"github.com/iliyamo/catering-rentals/internal/notify"
	"github.com/iliyamo/catering-rentals/internal/queue"
	"github.com/iliyamo/catering-rentals/internal/repository"
	"github.com/iliyamo/catering-rentals/internal/router"
	"github.com/iliyamo/catering-rentals/internal/view"
	"github.com/iliyamo/catering-rentals/internal/wizard"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("read .env", "err", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Error("config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DBDriver, cfg.DBDSN, cfg.DBPass)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	customers := repository.NewCustomerRepo(db)
	rentals := repository.NewRentalRepo(db)
	rentalItems := repository.NewRentalItemRepo(db)
	items := repository.NewItemRepo(db)

	// Redis is optional: without it state stays in memory and the limiter
	// and cache are off.
	rdb, err := config.NewRedisClient(ctx)
	if err != nil {
		log.Warn("redis unavailable, using in-memory state", "err", err)
	}
	var (
		wizards wizard.Store = wizard.NewMemoryStore(cfg.WizardTTL)
		toasts  notify.Store = notify.NewMemoryStore()
	)
	if rdb != nil {
		defer rdb.Close()
		wizards = wizard.NewRedisStore(rdb, cfg.WizardTTL)
		toasts = notify.NewRedisStore(rdb)
	}

	var pub queue.Publisher = queue.NopPublisher{}
	if cfg.EventsEnabled() {
		p, err := queue.NewPublisher(cfg.RabbitMQURL, cfg.BookingExchange)
		if err != nil {
			log.Warn("rabbitmq unavailable, booking events off", "err", err)
		} else {
			defer p.Close()
			pub = p
			go func() {
				err := queue.StartBookingConsumer(ctx, queue.ConsumerConfig{
					URL:      cfg.RabbitMQURL,
					Exchange: cfg.BookingExchange,
					Queue:    cfg.BookingQueue,
					LogDir:   cfg.BookingLogDir,
				}, log)
				if err != nil && !errors.Is(err, context.Canceled) {
					log.Error("booking consumer stopped", "err", err)
				}
			}()
		}
	}

	rlCfg, err := config.LoadRateLimitConfig()
	if err != nil {
		log.Error("rate limit config", "err", err)
		os.Exit(1)
	}
	cacheCfg, err := config.LoadCacheConfig()
	if err != nil {
		log.Error("cache config", "err", err)
		os.Exit(1)
	}

	renderer, err := view.New()
	if err != nil {
		log.Error("templates", "err", err)
		os.Exit(1)
	}

	timing := handler.Timing{
		ToastDuration:        cfg.ToastDuration,
		SuccessRedirectDelay: cfg.SuccessRedirectDelay,
		ErrorRedirectDelay:   cfg.ErrorRedirectDelay,
	}
	loader := booking.NewLoader(customers, rentals, rentalItems, log)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Renderer = renderer
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Slog(log))

	router.RegisterRoutes(e, router.Deps{
		DB: db,
		Bookings: &handler.BookingHandler{
			Loader: loader,
			Editor: booking.NewEditor(customers, rentals, rentalItems, pub, log),
			Toasts: toasts,
			Timing: timing,
			Log:    log,
		},
		Catalog: &handler.CatalogHandler{Customers: customers, Items: items, Log: log},
		Wizards: &handler.WizardHandler{
			Store:     wizards,
			Loader:    loader,
			Customers: customers,
			Items:     items,
			Submitter: wizard.NewSubmitter(customers, rentals, rentalItems, pub, log),
			Toasts:    toasts,
			Timing:    timing,
			Log:       log,
		},
		Notifications: &handler.NotificationHandler{Toasts: toasts, Log: log},
		RateLimit:     middleware.NewTokenBucket(rlCfg, rdb, log),
		Cache:         middleware.NewRedisCache(cacheCfg, rdb, log),
	})

	addr := ":" + cfg.Port
	go func() {
		log.Info("listening", "addr", addr, "env", cfg.Env, "driver", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
	log.Info("stopped")
}
