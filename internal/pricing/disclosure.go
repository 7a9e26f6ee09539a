package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecspend/lending-engine/internal/domain"
)

// BuildDisclosure produces the Key Fact Statement for a selected
// offer: the terms recomputed under the chosen repayment frequency,
// plus a literal installment schedule. Changing the frequency changes
// the effective rate and cadence, so amounts are always recomputed
// from the principal rather than carried over from the offer list.
func BuildDisclosure(selected domain.Offer, frequency string, now time.Time, feeRate decimal.Decimal) domain.Disclosure {
	plan := ResolveFrequencyPlan(frequency)
	partner := domain.LendingPartner{
		ID:             selected.PartnerID,
		DisplayName:    selected.PartnerName,
		BaseAnnualRate: selected.BaseAnnualRate,
	}

	terms := Quote(selected.Principal, plan, partner, feeRate)
	return domain.Disclosure{
		Terms:    terms,
		Schedule: Schedule(terms, plan, now),
	}
}

// BuildScanDisclosure produces the confirmation terms for a merchant
// scan payment: fixed fast cadence, no processing fee, no frequency
// customization.
func BuildScanDisclosure(selected domain.Offer, now time.Time) domain.Disclosure {
	plan := ScanPayPlan()
	partner := domain.LendingPartner{
		ID:             selected.PartnerID,
		DisplayName:    selected.PartnerName,
		BaseAnnualRate: selected.BaseAnnualRate,
	}

	terms := Quote(selected.Principal, plan, partner, decimal.Zero)
	return domain.Disclosure{
		Terms:    terms,
		Schedule: Schedule(terms, plan, now),
	}
}

// Schedule expands an offer into its dated installment entries:
// entry i falls due i × interval days from now, equal amounts
// throughout. The final installment is not reconciled against the
// rounding remainder.
func Schedule(terms domain.Offer, plan domain.PlanConfiguration, now time.Time) []domain.RepaymentScheduleEntry {
	start := now.Truncate(24 * time.Hour)
	entries := make([]domain.RepaymentScheduleEntry, 0, plan.InstallmentCount)
	for i := 1; i <= plan.InstallmentCount; i++ {
		entries = append(entries, domain.RepaymentScheduleEntry{
			SequenceNumber: i,
			DueDate:        start.AddDate(0, 0, i*plan.IntervalDays),
			Amount:         terms.InstallmentAmount,
		})
	}
	return entries
}
