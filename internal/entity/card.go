package entity

import (
	"time"

	"github.com/google/uuid"
)

// BusinessCard represents a persisted card record for data transfer between layers.
// All contact fields default to the empty string rather than NULL.
type BusinessCard struct {
	ID           uuid.UUID  `json:"id"`
	ImagePath    string     `json:"image_path"`
	Organization string     `json:"organization"`
	Department   string     `json:"department"`
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	Telephone    string     `json:"telephone"`
	Phone        string     `json:"phone"`
	Fax          string     `json:"fax"`
	Email        string     `json:"email"`
	Website      string     `json:"website"`
	EmployeeID   *uuid.UUID `json:"employee_id,omitempty"`
	EmployeeName string     `json:"employee_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
