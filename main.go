package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aria7-op/School-MIS-sub029/app/calendar"
	"github.com/aria7-op/School-MIS-sub029/app/config"
	"github.com/aria7-op/School-MIS-sub029/app/database"
	"github.com/aria7-op/School-MIS-sub029/app/events"
	applogger "github.com/aria7-op/School-MIS-sub029/app/logger"
	"github.com/aria7-op/School-MIS-sub029/app/routes/fees"
	"github.com/aria7-op/School-MIS-sub029/app/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// apiErrorHandler renders unhandled errors in the API envelope.
func apiErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func main() {
	cfg := config.Load()
	setupErr := applogger.Setup(cfg.LogConfig())
	log := applogger.WithComponent("main")
	if setupErr != nil {
		log.Fatal().Err(setupErr).Msg("Failed to initialize logger")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	time.Local = cfg.Location()
	log.Info().Str("timezone", time.Local.String()).Msg("Application time zone set")

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot establish database connection")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	cal, err := calendar.Solar(cfg.AcademicMonthOffset)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid academic calendar")
	}
	opts := []services.Option{services.WithCalendar(cal)}

	if cfg.AMQPURL != "" {
		publisher, err := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize AMQP publisher")
		}
		defer publisher.Close()
		opts = append(opts, services.WithNotifier(publisher))
		log.Info().Str("exchange", cfg.AMQPExchange).Msg("Publishing payment status changes")
	} else {
		log.Info().Msg("AMQP disabled - no AMQP_URL provided")
	}

	service := services.NewFeeService(database.NewStore(db), opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(cfg.ReconcileSchools) > 0 {
		scheduler, err := services.NewScheduler(service, cfg.ReconcileSchools, cfg.ReconcileAt)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid reconcile schedule")
		}
		scheduler.Start(ctx)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: apiErrorHandler,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": "database unavailable"})
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"status": "ok"}})
	})

	fees.SetupFeesRoutes(app, fees.NewHandler(service, time.Local), cfg.JWTSecret)

	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Route not found")
	})

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	addr := ":" + strings.TrimPrefix(cfg.Port, ":")
	log.Info().Str("addr", addr).Msg("Server starting")
	if err := app.Listen(addr); err != nil {
		log.Error().Err(err).Msg("Server stopped")
	}
}
