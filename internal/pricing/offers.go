package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/ecspend/lending-engine/internal/domain"
)

// DefaultFeeRate is the flat processing fee taken on spend and cash
// transactions. Scan payments waive it.
var DefaultFeeRate = decimal.NewFromFloat(0.01)

var daysPerYear = decimal.NewFromInt(365)

// Quote computes the priced terms a single partner would offer for the
// given principal and plan.
//
//	interest = ceil(principal × effectiveRate × durationDays / 365)
//	fee      = ceil(principal × feeRate)
//	total    = principal + interest + fee
//	installment = ceil(total / installmentCount)
//
// Ceiling rounding means installment × count never under-collects.
func Quote(principal decimal.Decimal, plan domain.PlanConfiguration, partner domain.LendingPartner, feeRate decimal.Decimal) domain.Offer {
	rate := plan.EffectiveRate(partner.BaseAnnualRate)
	days := decimal.NewFromInt(int64(plan.DurationDays))

	interest := principal.Mul(rate).Mul(days).Div(daysPerYear).Ceil()
	fee := principal.Mul(feeRate).Ceil()
	total := principal.Add(interest).Add(fee)
	installment := total.Div(decimal.NewFromInt(int64(plan.InstallmentCount))).Ceil()

	return domain.Offer{
		PartnerID:         partner.ID,
		PartnerName:       partner.DisplayName,
		BaseAnnualRate:    partner.BaseAnnualRate,
		EffectiveRate:     rate,
		Principal:         principal,
		FeeAmount:         fee,
		InterestAmount:    interest,
		TotalPayable:      total,
		InstallmentCount:  plan.InstallmentCount,
		InstallmentAmount: installment,
		FrequencyLabel:    plan.FrequencyLabel,
		PlanName:          plan.PlanName,
	}
}

// ComputeOffers prices the principal with every partner and returns
// the offers sorted ascending by base annual rate, so the cheapest
// offer is always first. Registration order breaks ties. A principal
// that is zero or negative yields no offers; the caller must block
// progression.
func ComputeOffers(principal decimal.Decimal, plan domain.PlanConfiguration, partners []domain.LendingPartner, feeRate decimal.Decimal) []domain.Offer {
	if !principal.IsPositive() {
		return []domain.Offer{}
	}

	offers := make([]domain.Offer, 0, len(partners))
	for _, partner := range domain.SortPartnersByRate(partners) {
		offers = append(offers, Quote(principal, plan, partner, feeRate))
	}
	return offers
}
