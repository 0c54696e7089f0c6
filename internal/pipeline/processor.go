package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"cardvault/internal/entity"
	"cardvault/internal/llm"
	"cardvault/internal/ocr"
	"cardvault/internal/repository"
)

// allowedExtensions is the only image validation the pipeline performs.
var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// BatchResult is the aggregate outcome of one upload batch. Count is the
// number of records actually persisted; per-file failures surface only in
// logs, so partial and total success look identical here.
type BatchResult struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// Processor drives the per-file pipeline: extract text, structure fields,
// normalize, persist. Files are processed strictly one at a time.
type Processor struct {
	Logger *slog.Logger
	OCR    ocr.TextExtractor
	LLM    llm.FieldStructurer
	Cards  repository.CardRepository
}

func NewProcessor(logger *slog.Logger, tx ocr.TextExtractor, fs llm.FieldStructurer, cards repository.CardRepository) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, OCR: tx, LLM: fs, Cards: cards}
}

// ProcessUploadedImages runs the full pipeline for one upload batch.
//
// Each file's extract→structure→normalize→persist sequence is one try/report
// unit: a StageError of any kind is logged with the filename and the loop
// moves on, so a persistence fault degrades to a skipped file exactly like an
// OCR fault. Successfully normalized records commit independently; nothing is
// rolled back when a later file fails.
func (p *Processor) ProcessUploadedImages(ctx context.Context, files []entity.UploadedFile) (BatchResult, error) {
	res := BatchResult{Success: true}

	p.Logger.Info("pipeline.batch.start", "files", len(files))
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.OriginalName))
		if _, ok := allowedExtensions[ext]; !ok {
			p.Logger.Info("pipeline.file.unsupported_ext", "file", f.OriginalName, "ext", ext)
			continue
		}

		persisted, err := p.processOne(ctx, f)
		if err != nil {
			var se *StageError
			if errors.As(err, &se) {
				p.Logger.Error("pipeline.file.failed", "file", se.File, "kind", string(se.Kind), "error", se.Err)
			} else {
				p.Logger.Error("pipeline.file.failed", "file", f.OriginalName, "error", err)
			}
			continue
		}
		if persisted {
			res.Count++
		}
	}

	p.Logger.Info("pipeline.batch.done", "files", len(files), "persisted", res.Count)
	return res, nil
}

// processOne runs the pipeline stages for a single file. The returned bool
// reports whether a record was persisted; (false, nil) is the legitimate
// no-text skip.
func (p *Processor) processOne(ctx context.Context, f entity.UploadedFile) (bool, error) {
	text, err := p.OCR.Extract(ctx, f.StoragePath)
	if err != nil {
		return false, &StageError{Kind: KindOCR, File: f.OriginalName, Err: err}
	}
	if text == "" {
		p.Logger.Info("pipeline.file.no_text", "file", f.OriginalName)
		return false, nil
	}

	rawJSON, err := p.LLM.StructureFields(ctx, text)
	if err != nil {
		return false, &StageError{Kind: KindStructure, File: f.OriginalName, Err: err}
	}

	card, err := Normalize(rawJSON, f.OriginalName, f.EmployeeID)
	if err != nil {
		return false, &StageError{Kind: KindParse, File: f.OriginalName, Err: err}
	}

	if _, err := p.Cards.Insert(ctx, card); err != nil {
		return false, &StageError{Kind: KindPersist, File: f.OriginalName, Err: err}
	}

	p.Logger.Info("pipeline.file.ok", "file", f.OriginalName, "card_id", card.ID.String())
	return true, nil
}

// ProcessFolder runs extract→structure→normalize for every image in a
// directory without touching the store, returning the normalized records.
// Used by the standalone batch scanner to produce an XLSX from a folder.
func (p *Processor) ProcessFolder(ctx context.Context, dir string) ([]*entity.BusinessCard, error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		return nil, err
	}

	var out []*entity.BusinessCard
	for _, path := range entries {
		name := filepath.Base(path)
		ext := strings.ToLower(filepath.Ext(name))
		if _, ok := allowedExtensions[ext]; !ok {
			continue
		}

		text, err := p.OCR.Extract(ctx, path)
		if err != nil {
			p.Logger.Error("pipeline.file.failed", "file", name, "kind", string(KindOCR), "error", err)
			continue
		}
		if text == "" {
			p.Logger.Info("pipeline.file.no_text", "file", name)
			continue
		}

		rawJSON, err := p.LLM.StructureFields(ctx, text)
		if err != nil {
			p.Logger.Error("pipeline.file.failed", "file", name, "kind", string(KindStructure), "error", err)
			continue
		}

		card, err := Normalize(rawJSON, name, nil)
		if err != nil {
			p.Logger.Error("pipeline.file.failed", "file", name, "kind", string(KindParse), "error", err)
			continue
		}
		out = append(out, card)
	}
	return out, nil
}
