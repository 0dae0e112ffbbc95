package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/docuiulia/partner-scoring/internal/domain"
)

type MockScoringService struct {
	mock.Mock
}

func (m *MockScoringService) GetPartnerScore(ctx context.Context, userID string, partnerID uuid.UUID) (*domain.CreditScoreResult, error) {
	args := m.Called(ctx, userID, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditScoreResult), args.Error(1)
}

func (m *MockScoringService) GetPartnersByRisk(ctx context.Context, userID string, riskLevel string, limit int) ([]*domain.CreditScoreResult, error) {
	args := m.Called(ctx, userID, riskLevel, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CreditScoreResult), args.Error(1)
}

func (m *MockScoringService) GetPortfolioSummary(ctx context.Context, userID string) (*domain.PortfolioSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PortfolioSummary), args.Error(1)
}
