package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// LendingPartner is immutable reference data for a lending bank.
type LendingPartner struct {
	ID             string          `json:"id"`
	DisplayName    string          `json:"display_name"`
	BaseAnnualRate decimal.Decimal `json:"base_annual_rate"`
}

// Partners returns the partner registry in registration order.
// Rates are annual fractions (0.12 = 12% p.a.).
func Partners() []LendingPartner {
	return []LendingPartner{
		{ID: "hdfc", DisplayName: "HDFC Bank", BaseAnnualRate: decimal.NewFromFloat(0.12)},
		{ID: "sbi", DisplayName: "State Bank of India", BaseAnnualRate: decimal.NewFromFloat(0.125)},
		{ID: "icici", DisplayName: "ICICI Bank", BaseAnnualRate: decimal.NewFromFloat(0.14)},
		{ID: "axis", DisplayName: "Axis Bank", BaseAnnualRate: decimal.NewFromFloat(0.15)},
	}
}

// SortPartnersByRate returns a copy sorted ascending by base rate,
// preserving registration order between equal rates.
func SortPartnersByRate(partners []LendingPartner) []LendingPartner {
	sorted := make([]LendingPartner, len(partners))
	copy(sorted, partners)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BaseAnnualRate.LessThan(sorted[j].BaseAnnualRate)
	})
	return sorted
}
