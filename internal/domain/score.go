package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Risk tiers, non-overlapping partition of the 0-100 score range
const (
	RiskLevelLow      = "low"      // score >= 80
	RiskLevelMedium   = "medium"   // score >= 60
	RiskLevelHigh     = "high"     // score >= 40
	RiskLevelCritical = "critical" // score < 40
)

// ScoreFactor is a named sub-score contributing to the overall credit score.
// Weights across all factors of a result sum to 1.
type ScoreFactor struct {
	Name    string  `json:"name"`
	Score   float64 `json:"score"` // 0-100
	Weight  float64 `json:"weight"`
	Details string  `json:"details"`
}

// CreditScoreResult is the full scoring output for one partner. It is derived
// data, recomputed from current invoices on every request and never persisted
// by the engine itself.
type CreditScoreResult struct {
	PartnerID       uuid.UUID       `json:"partner_id"`
	PartnerName     string          `json:"partner_name"`
	CreditScore     int             `json:"credit_score"` // 0-100
	RiskLevel       string          `json:"risk_level"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	Factors         []ScoreFactor   `json:"factors"`
	Recommendations []string        `json:"recommendations"`
	LastCalculated  time.Time       `json:"last_calculated"`
}

// DTOs for requests and responses

type PartnersByRiskRequest struct {
	RiskLevel string `json:"risk_level" validate:"omitempty,oneof=low medium high critical"`
	Limit     int    `json:"limit" validate:"gte=1"`
}

type RiskyPartner struct {
	PartnerID   uuid.UUID `json:"partner_id"`
	PartnerName string    `json:"partner_name"`
	CreditScore int       `json:"credit_score"`
	RiskLevel   string    `json:"risk_level"`
	Reason      string    `json:"reason"`
}

type PartnersByRiskResponse struct {
	RiskLevel string               `json:"risk_level,omitempty"`
	Partners  []*CreditScoreResult `json:"partners"`
}

type PortfolioSummary struct {
	TotalPartners    int             `json:"total_partners"`
	ScoredPartners   int             `json:"scored_partners"`
	SkippedPartners  int             `json:"skipped_partners"`
	RiskDistribution map[string]int  `json:"risk_distribution"`
	AverageScore     float64         `json:"average_score"`
	TotalExposure    decimal.Decimal `json:"total_exposure"`
	Watchlist        []RiskyPartner  `json:"watchlist"`
	GeneratedAt      time.Time       `json:"generated_at"`
}
