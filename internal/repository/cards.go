package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"cardvault/internal/entity"
)

// CardRepository is the persistence gateway for business card records.
type CardRepository interface {
	// Insert persists one fully normalized record and returns its generated id.
	Insert(ctx context.Context, card *entity.BusinessCard) (uuid.UUID, error)
	// ListWithUploader returns all records joined with the uploader name, newest first.
	ListWithUploader(ctx context.Context) ([]*entity.BusinessCard, error)
	// GetByIDs loads the records matching ids, joined with the uploader name.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.BusinessCard, error)
}

type cardRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewCardRepository(db *sql.DB, logger *slog.Logger) CardRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &cardRepository{db: db, logger: logger}
}

const cardColumns = `business_cards.id, business_cards.image_path, business_cards.organization,
business_cards.department, business_cards.name, business_cards.address, business_cards.telephone,
business_cards.phone, business_cards.fax, business_cards.email, business_cards.website,
business_cards.employee_id, business_cards.created_at`

func (r *cardRepository) Insert(ctx context.Context, card *entity.BusinessCard) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now().UTC()

	var employeeID any
	if card.EmployeeID != nil {
		employeeID = card.EmployeeID.String()
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO business_cards (
	id, image_path, organization, department, name, address,
	telephone, phone, fax, email, website, employee_id, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
`,
		id.String(), card.ImagePath, card.Organization, card.Department, card.Name, card.Address,
		card.Telephone, card.Phone, card.Fax, card.Email, card.Website, employeeID, now,
	)
	if err != nil {
		r.logger.Error("cards.insert.failed", "image_path", card.ImagePath, "error", err)
		return uuid.Nil, fmt.Errorf("insert business card: %w", err)
	}

	card.ID = id
	card.CreatedAt = now
	return id, nil
}

func (r *cardRepository) ListWithUploader(ctx context.Context) ([]*entity.BusinessCard, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+cardColumns+`, employees.name
FROM business_cards
LEFT JOIN employees ON business_cards.employee_id = employees.id
ORDER BY business_cards.created_at DESC
`)
	if err != nil {
		r.logger.Error("cards.list.failed", "error", err)
		return nil, fmt.Errorf("list business cards: %w", err)
	}
	defer rows.Close()

	return scanCards(rows)
}

func (r *cardRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.BusinessCard, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id.String()
	}

	query := `
SELECT ` + cardColumns + `, employees.name
FROM business_cards
LEFT JOIN employees ON business_cards.employee_id = employees.id
WHERE business_cards.id IN (` + strings.Join(placeholders, ",") + `)
ORDER BY business_cards.created_at DESC
`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("cards.get_by_ids.failed", "count", len(ids), "error", err)
		return nil, fmt.Errorf("load business cards: %w", err)
	}
	defer rows.Close()

	return scanCards(rows)
}

func scanCards(rows *sql.Rows) ([]*entity.BusinessCard, error) {
	var out []*entity.BusinessCard
	for rows.Next() {
		var c entity.BusinessCard
		var rawID string
		var rawEmployeeID, employeeName sql.NullString

		if err := rows.Scan(
			&rawID, &c.ImagePath, &c.Organization, &c.Department, &c.Name, &c.Address,
			&c.Telephone, &c.Phone, &c.Fax, &c.Email, &c.Website,
			&rawEmployeeID, &c.CreatedAt, &employeeName,
		); err != nil {
			return nil, fmt.Errorf("scan business card: %w", err)
		}

		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse card id %q: %w", rawID, err)
		}
		c.ID = id

		if rawEmployeeID.Valid {
			eid, err := uuid.Parse(rawEmployeeID.String)
			if err != nil {
				return nil, fmt.Errorf("parse employee id %q: %w", rawEmployeeID.String, err)
			}
			c.EmployeeID = &eid
		}
		if employeeName.Valid {
			c.EmployeeName = employeeName.String
		}

		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate business cards: %w", err)
	}
	return out, nil
}
