package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/docuiulia/partner-scoring/internal/domain"
	"github.com/docuiulia/partner-scoring/pkg/utils"
)

// Factor names as they appear in CreditScoreResult.Factors
const (
	FactorPaymentBehavior = "payment_behavior"
	FactorInvoiceHistory  = "invoice_history"
	FactorRelationshipAge = "relationship_age"
	FactorBusinessSize    = "business_size"
	FactorOverdueHistory  = "overdue_history"
)

// Factor weights, must sum to exactly 1.0
const (
	weightPaymentBehavior = 0.35
	weightInvoiceHistory  = 0.20
	weightRelationshipAge = 0.15
	weightBusinessSize    = 0.15
	weightOverdueHistory  = 0.15
)

// Engine computes a partner's creditworthiness from its invoice history.
// It is a pure calculator: it performs no I/O, never mutates its inputs and
// takes the reference time explicitly so results are reproducible in tests.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Score aggregates five weighted factors into a 0-100 credit score, a risk
// tier, a recommended credit limit and advisory messages. It never fails:
// a partner with no invoices gets the documented neutral defaults.
func (e *Engine) Score(partner *domain.Partner, invoices []*domain.Invoice, now time.Time) *domain.CreditScoreResult {
	factors := []domain.ScoreFactor{
		paymentBehaviorFactor(invoices),
		invoiceHistoryFactor(invoices),
		relationshipAgeFactor(partner.CreatedAt, now),
		businessSizeFactor(invoices),
		overdueHistoryFactor(invoices, now),
	}

	var weighted float64
	for _, f := range factors {
		weighted += f.Score * f.Weight
	}
	score := int(math.Round(weighted))

	return &domain.CreditScoreResult{
		PartnerID:       partner.ID,
		PartnerName:     partner.Name,
		CreditScore:     score,
		RiskLevel:       ClassifyRisk(score),
		CreditLimit:     creditLimit(invoices, score),
		Factors:         factors,
		Recommendations: recommendations(score, factors),
		LastCalculated:  now,
	}
}

// ClassifyRisk maps a credit score onto its risk tier. Boundaries are
// evaluated high-to-low so every score lands in exactly one tier.
func ClassifyRisk(score int) string {
	switch {
	case score >= 80:
		return domain.RiskLevelLow
	case score >= 60:
		return domain.RiskLevelMedium
	case score >= 40:
		return domain.RiskLevelHigh
	default:
		return domain.RiskLevelCritical
	}
}

// paymentBehaviorFactor scores how reliably the partner pays: half the score
// comes from the share of invoices paid at all, half from the share of those
// paid on time. When either date is missing the payment counts as on time.
func paymentBehaviorFactor(invoices []*domain.Invoice) domain.ScoreFactor {
	factor := domain.ScoreFactor{Name: FactorPaymentBehavior, Weight: weightPaymentBehavior}

	total := len(invoices)
	if total == 0 {
		factor.Score = 50
		factor.Details = "No payment history available"
		return factor
	}

	var paid, onTime int
	for _, inv := range invoices {
		if inv.PaymentStatus != domain.PaymentStatusPaid {
			continue
		}
		paid++
		if inv.PaymentDate == nil || inv.DueDate == nil || !inv.PaymentDate.After(*inv.DueDate) {
			onTime++
		}
	}

	paymentRate := float64(paid) / float64(total)
	onTimeRate := 0.0
	if paid > 0 {
		onTimeRate = float64(onTime) / float64(paid)
	}

	factor.Score = math.Round(paymentRate*50 + onTimeRate*50)
	factor.Details = fmt.Sprintf("%d of %d invoices paid, %.0f%% of payments on time", paid, total, onTimeRate*100)
	return factor
}

// invoiceHistoryFactor scores the depth of trading history by invoice count.
// The zero-invoice case scores the same 30 as 1-4 invoices but carries its
// own message.
func invoiceHistoryFactor(invoices []*domain.Invoice) domain.ScoreFactor {
	factor := domain.ScoreFactor{Name: FactorInvoiceHistory, Weight: weightInvoiceHistory}

	n := len(invoices)
	switch {
	case n >= 50:
		factor.Score = 100
	case n >= 20:
		factor.Score = 80
	case n >= 10:
		factor.Score = 60
	case n >= 5:
		factor.Score = 45
	default:
		factor.Score = 30
	}

	if n == 0 {
		factor.Details = "No invoices issued yet"
	} else {
		factor.Details = fmt.Sprintf("%d invoices in trading history", n)
	}
	return factor
}

// relationshipAgeFactor scores how long the partner relationship has existed,
// in whole 30-day months.
func relationshipAgeFactor(createdAt, now time.Time) domain.ScoreFactor {
	factor := domain.ScoreFactor{Name: FactorRelationshipAge, Weight: weightRelationshipAge}

	months := utils.MonthsBetween(createdAt, now)
	switch {
	case months >= 36:
		factor.Score = 100
	case months >= 24:
		factor.Score = 85
	case months >= 12:
		factor.Score = 70
	case months >= 6:
		factor.Score = 50
	default:
		factor.Score = 30
	}

	factor.Details = fmt.Sprintf("%d months since relationship start", months)
	return factor
}

// businessSizeFactor scores the partner's transaction volume via the average
// gross invoice value.
func businessSizeFactor(invoices []*domain.Invoice) domain.ScoreFactor {
	factor := domain.ScoreFactor{Name: FactorBusinessSize, Weight: weightBusinessSize}

	if len(invoices) == 0 {
		factor.Score = 50
		factor.Details = "No invoice data to estimate business size"
		return factor
	}

	var total decimal.Decimal
	for _, inv := range invoices {
		total = total.Add(inv.GrossAmount)
	}
	avg := utils.DecimalAverage(total, len(invoices))

	switch {
	case avg.GreaterThanOrEqual(decimal.NewFromInt(100000)):
		factor.Score = 95
	case avg.GreaterThanOrEqual(decimal.NewFromInt(50000)):
		factor.Score = 80
	case avg.GreaterThanOrEqual(decimal.NewFromInt(20000)):
		factor.Score = 65
	case avg.GreaterThanOrEqual(decimal.NewFromInt(5000)):
		factor.Score = 50
	default:
		factor.Score = 35
	}

	factor.Details = fmt.Sprintf("Average invoice value %s", avg.Round(2))
	return factor
}

// overdueHistoryFactor scores the partner's open overdue exposure. An invoice
// is overdue when it is not PAID and its due date has passed; invoices without
// a due date cannot be evaluated and are excluded. The third rate bucket has
// no average-days guard, matching the historical behavior of the model.
func overdueHistoryFactor(invoices []*domain.Invoice, now time.Time) domain.ScoreFactor {
	factor := domain.ScoreFactor{Name: FactorOverdueHistory, Weight: weightOverdueHistory}

	var overdue int
	var overdueDays float64
	for _, inv := range invoices {
		if inv.PaymentStatus == domain.PaymentStatusPaid || inv.DueDate == nil {
			continue
		}
		if utils.IsDateOverdue(*inv.DueDate, now) {
			overdue++
			overdueDays += utils.DaysBetween(*inv.DueDate, now)
		}
	}

	overdueRate := 0.0
	avgOverdueDays := 0.0
	if overdue > 0 {
		overdueRate = float64(overdue) / float64(len(invoices))
		avgOverdueDays = overdueDays / float64(overdue)
	}

	switch {
	case overdueRate == 0:
		factor.Score = 100
		factor.Details = "No overdue invoices"
		return factor
	case overdueRate < 0.1 && avgOverdueDays < 30:
		factor.Score = 80
	case overdueRate < 0.2 && avgOverdueDays < 60:
		factor.Score = 60
	case overdueRate < 0.3:
		factor.Score = 40
	default:
		factor.Score = 20
	}

	factor.Details = fmt.Sprintf("%d overdue invoices (%.0f%% of total), on average %.0f days late", overdue, overdueRate*100, avgOverdueDays)
	return factor
}

// creditLimit derives the recommended limit from the average invoice value,
// scaled linearly with the score: at score 50 the limit is exactly 3x the
// average invoice.
func creditLimit(invoices []*domain.Invoice, score int) decimal.Decimal {
	if len(invoices) == 0 {
		return decimal.Zero
	}

	var total decimal.Decimal
	for _, inv := range invoices {
		total = total.Add(inv.GrossAmount)
	}
	avg := utils.DecimalAverage(total, len(invoices))

	// avg * (score/50) * 3, rounded to whole currency units
	return avg.Mul(decimal.NewFromInt(int64(score) * 3)).Div(decimal.NewFromInt(50)).Round(0)
}

// recommendations builds the advisory messages: the tier message(s) first,
// then the behavior and history warnings appended independently of tier.
func recommendations(score int, factors []domain.ScoreFactor) []string {
	byName := make(map[string]domain.ScoreFactor, len(factors))
	for _, f := range factors {
		byName[f.Name] = f
	}

	var recs []string
	switch {
	case score >= 80:
		recs = append(recs, "Trusted partner. Extended payment terms can be offered.")
	case score >= 60:
		recs = append(recs, "Stable partner. Periodic monitoring of payment behavior is recommended.")
	case score >= 40:
		recs = append(recs, "Moderate risk. Consider requesting advance payments or guarantees.")
		if byName[FactorOverdueHistory].Score < 50 {
			recs = append(recs, "History of late payments. Track outstanding invoices closely.")
		}
	default:
		recs = append(recs,
			"High risk partner. Work with full advance payment only.",
			"Verify the partner's ability to pay before accepting new orders.")
	}

	if byName[FactorPaymentBehavior].Score < 50 {
		recs = append(recs, "Payment behavior is below average. Review open balances before extending credit.")
	}
	if byName[FactorInvoiceHistory].Score < 40 {
		recs = append(recs, "Limited invoice history. Start with small trial transactions.")
	}

	return recs
}
