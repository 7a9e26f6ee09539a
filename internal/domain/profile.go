package domain

import "github.com/shopspring/decimal"

// Defaults substituted when a persisted profile predates a field.
const (
	DefaultCashLimit   = 1000
	DefaultCreditLevel = 1
	DefaultECScore     = 650
)

// Seed values granted at onboarding completion.
const (
	SeedSpendLimit = 1000
	SeedSpendUsed  = 200
)

// ECScoreMax bounds the gamified trust score.
const ECScoreMax = 900

// UserCreditState is the user's two credit lines plus progression
// fields. The spend line is shared across merchant categories; the
// cash line covers direct bank transfers. Owned by the session shell
// and persisted after every mutating action; the core only proposes
// the next state.
type UserCreditState struct {
	SpendLimit  decimal.Decimal `json:"spend_limit"`
	SpendUsed   decimal.Decimal `json:"spend_used"`
	CashLimit   decimal.Decimal `json:"cash_limit"`
	CashUsed    decimal.Decimal `json:"cash_used"`
	CreditLevel int             `json:"credit_level"`
	ECScore     int             `json:"ec_score"`
}

// AvailableSpend returns the headroom left on the spend line.
func (s UserCreditState) AvailableSpend() decimal.Decimal {
	return s.SpendLimit.Sub(s.SpendUsed)
}

// AvailableCash returns the headroom left on the cash line.
func (s UserCreditState) AvailableCash() decimal.Decimal {
	return s.CashLimit.Sub(s.CashUsed)
}

// AvailableOnLine returns the headroom for the named credit line.
func (s UserCreditState) AvailableOnLine(line string) decimal.Decimal {
	if line == LineCash {
		return s.AvailableCash()
	}
	return s.AvailableSpend()
}

// Profile is the single persisted record: identity fields plus the
// credit state, serialized as JSON under one well-known storage key.
type Profile struct {
	Name   string          `json:"name"`
	Phone  string          `json:"phone"`
	PIN    string          `json:"pin,omitempty"`
	Credit UserCreditState `json:"credit"`
}

// NewProfile builds the profile created at onboarding completion with
// seed credit values.
func NewProfile(name, phone, pin string) *Profile {
	return &Profile{
		Name:  name,
		Phone: phone,
		PIN:   pin,
		Credit: UserCreditState{
			SpendLimit:  decimal.NewFromInt(SeedSpendLimit),
			SpendUsed:   decimal.NewFromInt(SeedSpendUsed),
			CashLimit:   decimal.NewFromInt(DefaultCashLimit),
			CashUsed:    decimal.Zero,
			CreditLevel: DefaultCreditLevel,
			ECScore:     DefaultECScore,
		},
	}
}
