package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"cardvault/internal/entity"
	"cardvault/internal/repository"
)

const sheet = "Business Cards"

// The export is a fixed 11-column table; Uploader is the joined employee name.
var headers = []string{
	"Organization",
	"Department",
	"Name",
	"Address",
	"Telephone",
	"Phone",
	"Fax",
	"Email",
	"Image",
	"Website",
	"Uploader",
}

// Service is a tiny façade over the card repository that produces XLSX bytes.
type Service struct {
	cards  repository.CardRepository
	logger *slog.Logger
}

func NewService(cards repository.CardRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cards: cards, logger: logger}
}

// ExportCardsXLSX loads the records matching ids (joined with employee name)
// and renders the workbook.
func (s *Service) ExportCardsXLSX(ctx context.Context, ids []uuid.UUID) ([]byte, error) {
	start := time.Now()

	cards, err := s.cards.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}

	b, err := RenderCardsXLSX(cards)
	if err != nil {
		return nil, err
	}

	s.logger.Info("export.xlsx.ok",
		"requested", len(ids),
		"rows", len(cards),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return b, nil
}

// RenderCardsXLSX builds the workbook for the given records: one bold header
// row, one row per record, widened columns.
func RenderCardsXLSX(cards []*entity.BusinessCard) ([]byte, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheet, "A1", last, style)
	}

	row := 2
	for _, c := range cards {
		values := []string{
			c.Organization,
			c.Department,
			c.Name,
			c.Address,
			c.Telephone,
			c.Phone,
			c.Fax,
			c.Email,
			c.ImagePath,
			c.Website,
			c.EmployeeName,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	_ = f.SetColWidth(sheet, "A", "C", 24) // organization, department, name
	_ = f.SetColWidth(sheet, "D", "D", 40) // address
	_ = f.SetColWidth(sheet, "E", "G", 18) // numbers
	_ = f.SetColWidth(sheet, "H", "H", 28) // email
	_ = f.SetColWidth(sheet, "I", "J", 30) // image, website
	_ = f.SetColWidth(sheet, "K", "K", 18) // uploader

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
