package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"cardvault/internal/common"
	"cardvault/internal/export"
	"cardvault/internal/ingest"
	"cardvault/internal/llm/openai"
	"cardvault/internal/ocr"
	"cardvault/internal/pipeline"
	"cardvault/internal/repository"
	"cardvault/internal/server"
)

func main() {
	// Logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()
	slogger := slog.Default()

	// Env
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Store
	db, err := repository.Open(cfg.Database, slogger)
	if err != nil {
		log.Fatalf("opening DB: %v", err)
	}
	defer db.Close()

	if err := repository.HealthCheck(ctx, db, cfg.Database.HealthTimeout); err != nil {
		log.Fatalf("DB health failed: %v", err)
	}
	if err := repository.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("ensuring schema: %v", err)
	}
	log.Infow("DB ready")

	// Wiring
	cards := repository.NewCardRepository(db, slogger)
	employees := repository.NewEmployeeRepository(db, slogger)

	vision := ocr.NewVisionClient(cfg.OCR, slogger)
	structurer := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	}, slogger)

	proc := pipeline.NewProcessor(slogger, vision, structurer, cards)
	intake := ingest.NewIntake(cfg.Upload.Dir, slogger)
	exporter := export.NewService(cards, slogger)

	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024, // card photo batches
	})
	h := server.NewHandlers(intake, proc, cards, employees, exporter, logger)
	h.Register(app, db)

	go func() {
		if err := app.Listen(cfg.Server.Addr); err != nil {
			log.Fatalf("http serve: %v", err)
		}
	}()
	log.Infof("serving on %s", cfg.Server.Addr)

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Warnf("shutdown: %v", err)
	}
}
