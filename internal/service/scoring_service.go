package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/docuiulia/partner-scoring/internal/config"
	"github.com/docuiulia/partner-scoring/internal/domain"
	"github.com/docuiulia/partner-scoring/internal/repository"
	"github.com/docuiulia/partner-scoring/internal/scoring"
	customError "github.com/docuiulia/partner-scoring/pkg/errors"
)

// Scoring is the service surface consumed by the HTTP handlers.
type Scoring interface {
	GetPartnerScore(ctx context.Context, userID string, partnerID uuid.UUID) (*domain.CreditScoreResult, error)
	GetPartnersByRisk(ctx context.Context, userID string, riskLevel string, limit int) ([]*domain.CreditScoreResult, error)
	GetPortfolioSummary(ctx context.Context, userID string) (*domain.PortfolioSummary, error)
}

// ScoreOutcome is the per-partner result of a batch scoring pass. A failed
// partner carries its error instead of a result and is excluded from
// aggregates, never aborting the batch.
type ScoreOutcome struct {
	Partner *domain.Partner
	Result  *domain.CreditScoreResult
	Err     error
}

// Skipped reports whether this partner was excluded from aggregation.
func (o ScoreOutcome) Skipped() bool {
	return o.Err != nil
}

type ScoringService struct {
	PartnerRepo repository.PartnerRepository
	InvoiceRepo repository.InvoiceRepository
	engine      *scoring.Engine
	redis       *redis.Client
	config      *config.Config
}

func NewScoringService(
	partnerRepo repository.PartnerRepository,
	invoiceRepo repository.InvoiceRepository,
	redisClient *redis.Client,
	cfg *config.Config,
) *ScoringService {
	return &ScoringService{
		PartnerRepo: partnerRepo,
		InvoiceRepo: invoiceRepo,
		engine:      scoring.NewEngine(),
		redis:       redisClient,
		config:      cfg,
	}
}

// GetPartnerScore computes (or serves from cache) the credit score for a
// single partner. Unknown partners surface as a not-found business error.
func (s *ScoringService) GetPartnerScore(ctx context.Context, userID string, partnerID uuid.UUID) (*domain.CreditScoreResult, error) {
	// A hit is trusted without re-checking the partner row, so a partner
	// deleted after caching keeps serving its last score until the TTL expires.
	if cached := s.getCachedScore(ctx, userID, partnerID); cached != nil {
		return cached, nil
	}

	partner, err := s.PartnerRepo.GetByID(ctx, userID, partnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapPartnerNotFound(partnerID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	result, err := s.scorePartner(ctx, partner, time.Now())
	if err != nil {
		return nil, err
	}

	s.cacheScore(ctx, userID, result)

	return result, nil
}

// GetPartnersByRisk scores the user's active partners and returns up to limit
// of them, riskiest first (ascending score). Scoring stops after
// limit * widening partners; skipped partners are simply left out.
func (s *ScoringService) GetPartnersByRisk(ctx context.Context, userID string, riskLevel string, limit int) ([]*domain.CreditScoreResult, error) {
	if riskLevel != "" {
		switch riskLevel {
		case domain.RiskLevelLow, domain.RiskLevelMedium, domain.RiskLevelHigh, domain.RiskLevelCritical:
		default:
			return nil, customError.WrapInvalidRiskLevel(riskLevel)
		}
	}

	if limit <= 0 {
		limit = s.config.Scoring.DefaultLimit
	}
	if limit > s.config.Scoring.MaxLimit {
		limit = s.config.Scoring.MaxLimit
	}

	// Score more partners than requested so post-filtering by tier can still
	// fill the page.
	outcomes, err := s.scoreActivePartners(ctx, userID, limit*s.config.Scoring.ScanWidening)
	if err != nil {
		return nil, err
	}

	results := make([]*domain.CreditScoreResult, 0, limit)
	for _, outcome := range outcomes {
		if outcome.Skipped() {
			continue
		}
		if riskLevel != "" && outcome.Result.RiskLevel != riskLevel {
			continue
		}
		results = append(results, outcome.Result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreditScore < results[j].CreditScore
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// GetPortfolioSummary scores every active partner of the user and aggregates
// tier counts, the average score and a watchlist of the riskiest partners.
// Total exposure covers UNPAID and PARTIAL invoices across the whole partner
// set, not only the partners that scored successfully.
func (s *ScoringService) GetPortfolioSummary(ctx context.Context, userID string) (*domain.PortfolioSummary, error) {
	outcomes, err := s.scoreActivePartners(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	exposure, err := s.InvoiceRepo.SumGrossAmountByStatus(ctx, userID,
		[]string{domain.PaymentStatusUnpaid, domain.PaymentStatusPartial})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	summary := &domain.PortfolioSummary{
		TotalPartners: len(outcomes),
		RiskDistribution: map[string]int{
			domain.RiskLevelLow:      0,
			domain.RiskLevelMedium:   0,
			domain.RiskLevelHigh:     0,
			domain.RiskLevelCritical: 0,
		},
		TotalExposure: exposure,
		GeneratedAt:   time.Now(),
	}

	var scoreSum int
	for _, outcome := range outcomes {
		if outcome.Skipped() {
			summary.SkippedPartners++
			log.Warn().
				Err(outcome.Err).
				Str("partner_id", outcome.Partner.ID.String()).
				Msg("partner excluded from portfolio summary")
			continue
		}

		result := outcome.Result
		summary.ScoredPartners++
		scoreSum += result.CreditScore
		summary.RiskDistribution[result.RiskLevel]++

		if result.RiskLevel == domain.RiskLevelHigh || result.RiskLevel == domain.RiskLevelCritical {
			if len(summary.Watchlist) < s.config.Scoring.WatchlistSize {
				summary.Watchlist = append(summary.Watchlist, domain.RiskyPartner{
					PartnerID:   result.PartnerID,
					PartnerName: result.PartnerName,
					CreditScore: result.CreditScore,
					RiskLevel:   result.RiskLevel,
					Reason:      result.RiskLevel,
				})
			}
		}
	}

	if summary.ScoredPartners > 0 {
		summary.AverageScore = float64(scoreSum) / float64(summary.ScoredPartners)
	}

	return summary, nil
}

// RefreshScores recomputes and re-caches the score of every active partner
// across all users. Used by the scheduler; per-partner failures are logged
// and skipped.
func (s *ScoringService) RefreshScores(ctx context.Context) (refreshed, skipped int, err error) {
	partners, err := s.PartnerRepo.ListActivePartners(ctx)
	if err != nil {
		return 0, 0, customError.WrapDatabaseError(err)
	}

	now := time.Now()
	for _, partner := range partners {
		result, scoreErr := s.scorePartner(ctx, partner, now)
		if scoreErr != nil {
			skipped++
			log.Warn().
				Err(scoreErr).
				Str("partner_id", partner.ID.String()).
				Msg("score refresh skipped partner")
			continue
		}

		s.cacheScore(ctx, partner.UserID, result)
		refreshed++
	}

	return refreshed, skipped, nil
}

// scoreActivePartners runs the engine over the user's active partners,
// sequentially, up to max partners (0 scores all). Failures are recorded per
// partner instead of propagated.
func (s *ScoringService) scoreActivePartners(ctx context.Context, userID string, max int) ([]ScoreOutcome, error) {
	partners, err := s.PartnerRepo.GetActivePartners(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if max > 0 && len(partners) > max {
		partners = partners[:max]
	}

	now := time.Now()
	outcomes := make([]ScoreOutcome, 0, len(partners))
	for _, partner := range partners {
		result, scoreErr := s.scorePartner(ctx, partner, now)
		outcomes = append(outcomes, ScoreOutcome{Partner: partner, Result: result, Err: scoreErr})
	}

	return outcomes, nil
}

// scorePartner loads the partner's invoices and runs the engine. The engine
// itself is total; failures here come from invoice retrieval.
func (s *ScoringService) scorePartner(ctx context.Context, partner *domain.Partner, now time.Time) (*domain.CreditScoreResult, error) {
	invoices, err := s.InvoiceRepo.GetByPartner(ctx, partner.UserID, partner.ID, partner.CUI)
	if err != nil {
		return nil, customError.WrapScoringFailed(partner.ID.String(), err)
	}

	return s.engine.Score(partner, invoices, now), nil
}

func scoreCacheKey(userID string, partnerID uuid.UUID) string {
	return fmt.Sprintf("credit-score:%s:%s", userID, partnerID)
}

// getCachedScore returns a cached result or nil. Cache errors are logged and
// treated as a miss.
func (s *ScoringService) getCachedScore(ctx context.Context, userID string, partnerID uuid.UUID) *domain.CreditScoreResult {
	if s.redis == nil {
		return nil
	}

	payload, err := s.redis.Get(ctx, scoreCacheKey(userID, partnerID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(customError.WrapCacheError(err)).Msg("score cache read failed")
		}
		return nil
	}

	var result domain.CreditScoreResult
	if err := json.Unmarshal(payload, &result); err != nil {
		log.Warn().Err(err).Msg("discarding malformed cached score")
		return nil
	}

	return &result
}

// cacheScore stores a result with the configured TTL. Never fails the request.
func (s *ScoringService) cacheScore(ctx context.Context, userID string, result *domain.CreditScoreResult) {
	if s.redis == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		log.Warn().Err(err).Msg("could not marshal score for cache")
		return
	}

	if err := s.redis.Set(ctx, scoreCacheKey(userID, result.PartnerID), payload, s.config.GetScoreCacheTTL()).Err(); err != nil {
		log.Warn().Err(customError.WrapCacheError(err)).Msg("score cache write failed")
	}
}
