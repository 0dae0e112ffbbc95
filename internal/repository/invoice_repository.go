package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/docuiulia/partner-scoring/internal/domain"
)

type invoiceRepository struct {
	db *sqlx.DB
}

func NewInvoiceRepository(db *sqlx.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) GetByPartner(ctx context.Context, userID string, partnerID uuid.UUID, cui string) ([]*domain.Invoice, error) {
	// Old imported invoices may carry only the tax id, so match on either.
	// An empty CUI must not match other partners with an empty CUI.
	query := `
		SELECT id, user_id, partner_id, partner_cui, gross_amount, payment_status,
		       invoice_date, due_date, payment_date, created_at
		FROM invoices
		WHERE user_id = $1 AND (partner_id = $2 OR ($3 <> '' AND partner_cui = $3))
		ORDER BY invoice_date
	`

	var invoices []*domain.Invoice
	err := r.db.SelectContext(ctx, &invoices, query, userID, partnerID, cui)
	if err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *invoiceRepository) SumGrossAmountByStatus(ctx context.Context, userID string, statuses []string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(gross_amount), 0)
		FROM invoices
		WHERE user_id = $1 AND payment_status = ANY($2)
	`

	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total, query, userID, pq.Array(statuses))
	if err != nil && err != sql.ErrNoRows {
		return decimal.Zero, err
	}

	return total, nil
}
