package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/docuiulia/partner-scoring/internal/domain"
)

func TestScoreCacheKey(t *testing.T) {
	partnerID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	key := scoreCacheKey("user-42", partnerID)

	assert.Equal(t, "credit-score:user-42:6ba7b810-9dad-11d1-80b4-00c04fd430c8", key)
}

func TestScoreOutcomeSkipped(t *testing.T) {
	partner := &domain.Partner{ID: uuid.New()}

	ok := ScoreOutcome{Partner: partner, Result: &domain.CreditScoreResult{}}
	failed := ScoreOutcome{Partner: partner, Err: errors.New("invoice data unreadable")}

	assert.False(t, ok.Skipped())
	assert.True(t, failed.Skipped())
}
