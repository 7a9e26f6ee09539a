package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer is a lender-specific pricing quote for a given principal and
// plan. Derived entity: recomputed on every principal or frequency
// change, never persisted.
type Offer struct {
	PartnerID         string          `json:"partner_id"`
	PartnerName       string          `json:"partner_name"`
	BaseAnnualRate    decimal.Decimal `json:"base_annual_rate"`
	EffectiveRate     decimal.Decimal `json:"effective_rate"`
	Principal         decimal.Decimal `json:"principal"`
	FeeAmount         decimal.Decimal `json:"fee_amount"`
	InterestAmount    decimal.Decimal `json:"interest_amount"`
	TotalPayable      decimal.Decimal `json:"total_payable"`
	InstallmentCount  int             `json:"installment_count"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	FrequencyLabel    string          `json:"frequency_label"`
	PlanName          string          `json:"plan_name"`
}

// RepaymentScheduleEntry is one installment of a disclosed schedule.
type RepaymentScheduleEntry struct {
	SequenceNumber int             `json:"sequence_number"`
	DueDate        time.Time       `json:"due_date"`
	Amount         decimal.Decimal `json:"amount"`
}

// Disclosure is the Key Fact Statement shown before the user commits
// to an offer: the recomputed terms plus a literal installment
// schedule with dates.
type Disclosure struct {
	Terms    Offer                    `json:"terms"`
	Schedule []RepaymentScheduleEntry `json:"schedule"`
}
