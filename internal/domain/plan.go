package domain

import "github.com/shopspring/decimal"

// Repayment frequency choices offered during disclosure customization.
const (
	FrequencyWeekly   = "weekly"
	FrequencyBiWeekly = "biweekly"
)

// PlanConfiguration is the repayment cadence applied to a transaction:
// how long the user has and in how many installments they repay.
// DurationDays / InstallmentCount implicitly defines the installment
// interval; IntervalDays makes it explicit for schedule generation.
type PlanConfiguration struct {
	PlanName         string          `json:"plan_name"`
	Description      string          `json:"description"`
	DurationDays     int             `json:"duration_days"`
	InstallmentCount int             `json:"installment_count"`
	IntervalDays     int             `json:"interval_days"`
	FrequencyLabel   string          `json:"frequency_label"`
	RatePremium      decimal.Decimal `json:"rate_premium"`
}

// EffectiveRate returns the partner's base rate adjusted by the plan's
// premium, if any. Slower repayment cadences carry a premium.
func (p PlanConfiguration) EffectiveRate(baseRate decimal.Decimal) decimal.Decimal {
	return baseRate.Add(p.RatePremium)
}
