package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/docuiulia/partner-scoring/internal/domain"
)

type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) GetByID(ctx context.Context, userID string, partnerID uuid.UUID) (*domain.Partner, error) {
	args := m.Called(ctx, userID, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockPartnerRepository) GetActivePartners(ctx context.Context, userID string) ([]*domain.Partner, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Partner), args.Error(1)
}

func (m *MockPartnerRepository) ListActivePartners(ctx context.Context) ([]*domain.Partner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Partner), args.Error(1)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) GetByPartner(ctx context.Context, userID string, partnerID uuid.UUID, cui string) ([]*domain.Invoice, error) {
	args := m.Called(ctx, userID, partnerID, cui)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SumGrossAmountByStatus(ctx context.Context, userID string, statuses []string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, statuses)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
