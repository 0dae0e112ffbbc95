package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		expected int
	}{
		{"same instant", now, 0},
		{"start in the future", now.AddDate(0, 0, 10), 0},
		{"29 days is still zero months", now.AddDate(0, 0, -29), 0},
		{"30 days is one month", now.AddDate(0, 0, -30), 1},
		{"359 days is eleven months", now.AddDate(0, 0, -359), 11},
		{"360 days is twelve months", now.AddDate(0, 0, -360), 12},
		{"three years", now.AddDate(0, 0, -36*30), 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthsBetween(tt.start, now))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0.0, DaysBetween(now, now))
	assert.Equal(t, 45.0, DaysBetween(now.AddDate(0, 0, -45), now))
	assert.InDelta(t, 0.5, DaysBetween(now.Add(-12*time.Hour), now), 1e-9)
}

func TestIsDateOverdue(t *testing.T) {
	assert.True(t, IsDateOverdue(now.Add(-time.Minute), now))
	assert.False(t, IsDateOverdue(now, now))
	assert.False(t, IsDateOverdue(now.Add(time.Minute), now))
}

func TestDecimalAverage(t *testing.T) {
	assert.True(t, DecimalAverage(decimal.NewFromInt(100), 0).IsZero())

	avg := DecimalAverage(decimal.NewFromInt(300), 4)
	assert.True(t, avg.Equal(decimal.NewFromInt(75)), "average %s", avg)
}
