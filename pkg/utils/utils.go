package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthsBetween returns the number of whole 30-day months between start and end.
// Calendar month lengths are deliberately ignored so scoring thresholds stay
// stable across month boundaries.
func MonthsBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	days := int(end.Sub(start).Hours() / 24)
	return days / 30
}

// DaysBetween returns the fractional number of days between start and end.
func DaysBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// IsDateOverdue checks if a due date has passed relative to the given reference time
func IsDateOverdue(dueDate, now time.Time) bool {
	return now.After(dueDate)
}

// DecimalAverage divides a total by a count, returning zero for an empty set.
func DecimalAverage(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}
