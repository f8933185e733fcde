package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/rastokopal/macrolog/internal/api"
	"github.com/rastokopal/macrolog/internal/config"
	"github.com/rastokopal/macrolog/internal/db"
	"github.com/rastokopal/macrolog/internal/recognition"
)

func main() {
	cfg := config.Load()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	var recognizer api.Recognizer
	if cfg.OpenAIKey != "" {
		provider, err := recognition.NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIModel)
		if err != nil {
			log.Fatalf("recognition init failed: %v", err)
		}
		recognizer = recognition.NewChain(provider)
	} else {
		log.Print("OPENAI_API_KEY not set, ingredient recognition disabled")
	}

	handler, err := api.NewHandler(database, cfg.SecretKey, recognizer, cfg.CacheTTL)
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Macrolog",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Macrolog listening on http://0.0.0.0:%s (db: %s)", cfg.Port, cfg.DBPath)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
