package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/bali-villa-booking/internal/booking"
	"github.com/iliyamo/bali-villa-booking/internal/config"
	"github.com/iliyamo/bali-villa-booking/internal/database"
	"github.com/iliyamo/bali-villa-booking/internal/datasource"
	"github.com/iliyamo/bali-villa-booking/internal/handler"
	"github.com/iliyamo/bali-villa-booking/internal/logging"
	"github.com/iliyamo/bali-villa-booking/internal/middleware"
	"github.com/iliyamo/bali-villa-booking/internal/notify"
	"github.com/iliyamo/bali-villa-booking/internal/queue"
	"github.com/iliyamo/bali-villa-booking/internal/repository"
	"github.com/iliyamo/bali-villa-booking/internal/router"
	queue_publisher "github.com/iliyamo/bali-villa-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fallback := datasource.NewFallback(cfg.MockDelay)
	status := &handler.StatusHandler{Mode: datasource.NameFallback}

	var (
		db     *sql.DB
		src    datasource.Source = fallback
		bookIn booking.Store     = fallback
	)
	if !cfg.MockMode() {
		var err error
		db, err = database.Open(ctx, cfg.Database())
		if err != nil {
			log.WithError(err).Fatal("database unreachable")
		}
		defer db.Close()
		if err := database.EnsureSchema(ctx, db); err != nil {
			log.WithError(err).Fatal("schema setup failed")
		}
		seeded, err := repository.NewVillaRepo(db).SeedIfEmpty(ctx, datasource.FixtureVillas())
		if err != nil {
			log.WithError(err).Warn("villa seed failed")
		} else if seeded > 0 {
			log.WithField("villas", seeded).Info("seeded empty villa catalog")
		}
		if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
			created, err := repository.NewAdminUserRepo(db).EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost)
			switch {
			case err != nil:
				log.WithError(err).Warn("bootstrap admin failed")
			case created:
				log.WithField("email", cfg.AdminEmail).Info("bootstrap admin created")
			}
		}
		res := datasource.NewResilient(datasource.NewLive(db), fallback, datasource.BreakerSettings{}, log)
		src = res
		bookIn = res.Bookings()
		status.Mode = datasource.NameLive
		status.Circuit = func() string { return res.State().String() }
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable; rate limiting and response cache disabled")
	} else {
		defer rdb.Close()
	}

	// interfaces stay untyped nil when a channel is not configured
	var mail notify.EmailSender
	if m := notify.NewMailer(cfg.SMTP, log); m != nil {
		mail = m
	}
	var push handler.PushService
	if db != nil {
		if p := notify.NewPusher(repository.NewPushSubscriptionRepo(db), cfg.Push, log); p != nil {
			push = p
		}
	}
	var broadcaster notify.Broadcaster
	if push != nil {
		broadcaster = push
	}
	dispatcher := notify.NewDispatcher(mail, broadcaster, log)

	var (
		notifier booking.Notifier
		direct   *notify.Direct
	)
	if cfg.RabbitMQURL != "" {
		pub := queue_publisher.New(cfg.RabbitMQURL, log)
		defer pub.Close()
		notifier = pub
		go func() {
			if err := queue.StartBookingConsumer(ctx, cfg.RabbitMQURL, dispatcher.Handle, log); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("booking consumer stopped")
			}
		}()
	} else {
		direct = notify.NewDirect(dispatcher, 0)
		notifier = direct
	}

	// submissions never see fallback data; the calendar may
	svc := booking.NewService(bookIn, notifier, cfg.WhatsAppNumber, log).WithCalendar(src)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))

	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb, log)
	limit := middleware.RateLimit(config.LoadRateLimitConfig(), rdb, log)

	router.RegisterRoutes(e, status)
	api := e.Group("/api", middleware.DataSourceHeader())
	router.RegisterPublic(api, handler.NewPublicHandler(src, log), cache)
	router.RegisterBooking(api, handler.NewBookingHandler(svc), limit)
	router.RegisterContact(api, handler.NewContactHandler(src, mail, log), limit)
	if db != nil {
		router.RegisterAdmin(api.Group("/admin"), router.AdminHandlers{
			Auth:      handler.NewAuthHandler(cfg, repository.NewAdminUserRepo(db), repository.NewTokenRepo(db), log),
			Dashboard: handler.NewDashboardHandler(repository.NewBookingRepo(db), log),
			Push:      handler.NewPushHandler(push, log),
		}, cfg.JWTSecret, limit)
	} else {
		log.Info("mock data source: admin dashboard disabled")
	}

	addr := ":" + cfg.Port
	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env, "data_source": status.Mode}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if direct != nil {
		direct.Wait()
	}
	log.Info("server stopped")
}
