// Package pricing holds the deterministic offer generation core: plan
// resolution, offer computation, and disclosure (KFS) generation. All
// functions are pure; identical inputs always produce identical output.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/ecspend/lending-engine/internal/domain"
)

// BiWeeklyRatePremium is added to the partner's base annual rate when
// the user slows repayment down to the bi-weekly cadence.
var BiWeeklyRatePremium = decimal.NewFromFloat(0.05)

// ResolvePlan maps a spend category to its repayment cadence. The
// category alone fixes the plan; interval is derived from duration
// over installments.
func ResolvePlan(categoryKind string) domain.PlanConfiguration {
	switch categoryKind {
	case domain.CategoryFuel:
		return domain.PlanConfiguration{
			PlanName:         "Smart Fuel 4",
			Description:      "Frequent refills, quick repayment",
			DurationDays:     8,
			InstallmentCount: 4,
			IntervalDays:     2,
			FrequencyLabel:   "Every 2 Days",
		}
	case domain.CategoryGrocery:
		return domain.PlanConfiguration{
			PlanName:         "Smart Kitchen 3",
			Description:      "Daily needs, simple terms",
			DurationDays:     9,
			InstallmentCount: 3,
			IntervalDays:     3,
			FrequencyLabel:   "Every 3 Days",
		}
	case domain.CategoryMobile, domain.CategoryDTH, domain.CategoryBills:
		return domain.PlanConfiguration{
			PlanName:         "Bill Flexi Weekly",
			Description:      "Monthly bills, weekly ease",
			DurationDays:     28,
			InstallmentCount: 4,
			IntervalDays:     7,
			FrequencyLabel:   "Weekly",
		}
	case domain.CategoryPharma:
		return domain.PlanConfiguration{
			PlanName:         "Wellness Ease",
			Description:      "Emergency support, relaxed timeline",
			DurationDays:     45,
			InstallmentCount: 3,
			IntervalDays:     15,
			FrequencyLabel:   "Every 15 Days",
		}
	default:
		// CASH and anything unrecognised fall back to the standard
		// liquidity plan.
		return domain.PlanConfiguration{
			PlanName:         "Smart Split",
			Description:      "Standard liquidity plan",
			DurationDays:     15,
			InstallmentCount: 3,
			IntervalDays:     5,
			FrequencyLabel:   "Every 5 Days",
		}
	}
}

// ResolveFrequencyPlan overrides the category plan with an explicit
// repayment frequency chosen during disclosure customization. The
// bi-weekly cadence carries a fixed rate premium for slower repayment.
func ResolveFrequencyPlan(frequency string) domain.PlanConfiguration {
	if frequency == domain.FrequencyBiWeekly {
		return domain.PlanConfiguration{
			PlanName:         "Flexi Bi-Weekly",
			Description:      "Two easy halves, relaxed pace",
			DurationDays:     30,
			InstallmentCount: 2,
			IntervalDays:     15,
			FrequencyLabel:   "Every 15 Days",
			RatePremium:      BiWeeklyRatePremium,
		}
	}
	return domain.PlanConfiguration{
		PlanName:         "Flexi Weekly",
		Description:      "Four weekly installments",
		DurationDays:     28,
		InstallmentCount: 4,
		IntervalDays:     7,
		FrequencyLabel:   "Weekly",
	}
}

// ScanPayPlan is the fixed fast-repayment cadence used for merchant QR
// payments. Scan payments also waive the processing fee.
func ScanPayPlan() domain.PlanConfiguration {
	return domain.PlanConfiguration{
		PlanName:         "Scan Express 4",
		Description:      "Every 2 days",
		DurationDays:     10,
		InstallmentCount: 4,
		IntervalDays:     2,
		FrequencyLabel:   "Every 2 Days",
	}
}
