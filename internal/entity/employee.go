package entity

import (
	"time"

	"github.com/google/uuid"
)

// Employee represents an uploading employee for data transfer between layers.
type Employee struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
