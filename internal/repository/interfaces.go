package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/docuiulia/partner-scoring/internal/domain"
)

// PartnerRepository defines the interface for partner data operations
type PartnerRepository interface {
	// GetByID retrieves a partner scoped to a user
	GetByID(ctx context.Context, userID string, partnerID uuid.UUID) (*domain.Partner, error)

	// GetActivePartners retrieves all active partners for a user
	GetActivePartners(ctx context.Context, userID string) ([]*domain.Partner, error)

	// ListActivePartners retrieves active partners across all users,
	// used by the scheduled score refresh
	ListActivePartners(ctx context.Context) ([]*domain.Partner, error)
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// GetByPartner retrieves a partner's invoices, matching by partner
	// reference or by tax id since historical invoices may only carry the CUI
	GetByPartner(ctx context.Context, userID string, partnerID uuid.UUID, cui string) ([]*domain.Invoice, error)

	// SumGrossAmountByStatus sums gross amounts over invoices in the given
	// payment statuses, across all of the user's partners
	SumGrossAmountByStatus(ctx context.Context, userID string, statuses []string) (decimal.Decimal, error)
}
