package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	PartnerStatusActive   = "active"
	PartnerStatusArchived = "archived"
)

// Partner represents a business partner (customer or supplier)
type Partner struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	CUI       string    `json:"cui" db:"cui"` // Romanian tax id, may be empty
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
