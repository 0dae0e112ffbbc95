package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPaid    = "PAID"
	PaymentStatusUnpaid  = "UNPAID"
	PaymentStatusPartial = "PARTIAL"
)

// Invoice represents an issued invoice as seen by the scoring engine.
// DueDate and PaymentDate are optional: historical imports often lack them,
// in which case lateness cannot be evaluated.
type Invoice struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	UserID        string          `json:"user_id" db:"user_id"`
	PartnerID     *uuid.UUID      `json:"partner_id" db:"partner_id"`
	PartnerCUI    string          `json:"partner_cui" db:"partner_cui"`
	GrossAmount   decimal.Decimal `json:"gross_amount" db:"gross_amount"`
	PaymentStatus string          `json:"payment_status" db:"payment_status"`
	InvoiceDate   time.Time       `json:"invoice_date" db:"invoice_date"`
	DueDate       *time.Time      `json:"due_date" db:"due_date"`
	PaymentDate   *time.Time      `json:"payment_date" db:"payment_date"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
