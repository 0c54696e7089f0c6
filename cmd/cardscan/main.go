package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"

	_ "github.com/joho/godotenv/autoload"

	"cardvault/internal/common"
	"cardvault/internal/export"
	"cardvault/internal/llm/openai"
	"cardvault/internal/ocr"
	"cardvault/internal/pipeline"
)

// cardscan runs the extraction pipeline over a folder of card images and
// writes one XLSX workbook, without touching the store.
func main() {
	dir := flag.String("dir", ".", "folder containing card images (png/jpg/jpeg)")
	out := flag.String("out", "business-cards.xlsx", "output workbook path")
	flag.Parse()

	cfg := common.LoadConfig()
	if cfg.OCR.APIKey == "" || cfg.LLM.APIKey == "" {
		log.Fatal("GOOGLE_VISION_API_KEY and OPENAI_API_KEY are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := slog.Default()
	vision := ocr.NewVisionClient(cfg.OCR, logger)
	structurer := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	proc := pipeline.NewProcessor(logger, vision, structurer, nil)
	cards, err := proc.ProcessFolder(ctx, *dir)
	if err != nil {
		log.Fatalf("scanning %s: %v", *dir, err)
	}

	b, err := export.RenderCardsXLSX(cards)
	if err != nil {
		log.Fatalf("rendering workbook: %v", err)
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		log.Fatalf("writing %s: %v", *out, err)
	}
	log.Printf("wrote %d cards to %s", len(cards), *out)
}
