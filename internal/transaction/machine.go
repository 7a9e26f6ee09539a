// Package transaction models the per-transaction user flow as an
// explicit state machine: entry, offer list, disclosure, simulated
// processing, success. Illegal states are unrepresentable; a refused
// transition carries an explicit reason instead of an error.
package transaction

import (
	"github.com/shopspring/decimal"

	"github.com/ecspend/lending-engine/internal/domain"
)

// Flow states
const (
	StateEntry      = "entry"
	StateOffers     = "offers"
	StateDisclosure = "disclosure"
	StateProcessing = "processing"
	StateSuccess    = "success"
)

// Flow variants
const (
	VariantSpend = "spend"
	VariantScan  = "scan"
)

// Blocked reasons returned when a transition is refused.
const (
	BlockInvalidAmount    = "invalid_amount"
	BlockLimitExceeded    = "limit_exceeded"
	BlockCategoryRequired = "category_required"
	BlockNoOfferSelected  = "no_offer_selected"
	BlockConsentRequired  = "consent_required"
	BlockInvalidState     = "invalid_state"
)

// Blocked reports a refused transition. It is not a Go error at this
// layer; the caller decides how to surface it.
type Blocked struct {
	Reason string
}

// Machine is a single transaction's flow state. A new transaction
// always starts a fresh machine with empty selection and consent.
// Not safe for concurrent use; the session runs one at a time.
type Machine struct {
	state        string
	variant      string
	line         string
	categoryKind string
	amount       decimal.Decimal
	offers       []domain.Offer
	selected     *domain.Offer
	frequency    string
	consent      bool
}

// New starts a fresh transaction flow in the entry state.
func New(variant string) *Machine {
	return &Machine{
		state:     StateEntry,
		variant:   variant,
		frequency: domain.FrequencyWeekly,
	}
}

func (m *Machine) State() string { return m.state }

func (m *Machine) Variant() string { return m.variant }

func (m *Machine) Line() string { return m.line }

func (m *Machine) CategoryKind() string { return m.categoryKind }

func (m *Machine) Amount() decimal.Decimal { return m.amount }

func (m *Machine) Offers() []domain.Offer { return m.offers }

func (m *Machine) Selected() *domain.Offer { return m.selected }

func (m *Machine) Frequency() string { return m.frequency }

func (m *Machine) Consent() bool { return m.consent }

// SubmitEntry validates the amount against the available limit on the
// chosen line and advances to the offer list. The offers themselves
// are computed by the caller and attached here so the machine stays
// free of pricing knowledge.
func (m *Machine) SubmitEntry(amount decimal.Decimal, categoryKind string, credit domain.UserCreditState, offers []domain.Offer) *Blocked {
	if m.state != StateEntry {
		return &Blocked{Reason: BlockInvalidState}
	}
	if !amount.IsPositive() {
		return &Blocked{Reason: BlockInvalidAmount}
	}
	if m.variant == VariantSpend && categoryKind == "" {
		return &Blocked{Reason: BlockCategoryRequired}
	}

	line := domain.LineSpend
	if m.variant == VariantSpend {
		line = domain.LineForCategory(categoryKind)
	}
	if amount.GreaterThan(credit.AvailableOnLine(line)) {
		return &Blocked{Reason: BlockLimitExceeded}
	}

	m.amount = amount
	m.categoryKind = categoryKind
	m.line = line
	m.offers = offers
	m.state = StateOffers
	return nil
}

// SelectOffer picks one offer from the computed list and advances to
// disclosure.
func (m *Machine) SelectOffer(partnerID string) *Blocked {
	if m.state != StateOffers {
		return &Blocked{Reason: BlockInvalidState}
	}
	for i := range m.offers {
		if m.offers[i].PartnerID == partnerID {
			selected := m.offers[i]
			m.selected = &selected
			m.state = StateDisclosure
			return nil
		}
	}
	return &Blocked{Reason: BlockNoOfferSelected}
}

// SetFrequency records the repayment frequency chosen on the
// disclosure screen. Only valid while the disclosure is showing.
func (m *Machine) SetFrequency(frequency string) *Blocked {
	if m.state != StateDisclosure {
		return &Blocked{Reason: BlockInvalidState}
	}
	m.frequency = frequency
	return nil
}

// Confirm records consent and moves to processing. Once processing
// starts the transaction cannot be aborted.
func (m *Machine) Confirm(consent bool) *Blocked {
	if m.state != StateDisclosure {
		return &Blocked{Reason: BlockInvalidState}
	}
	if !consent {
		return &Blocked{Reason: BlockConsentRequired}
	}
	m.consent = true
	m.state = StateProcessing
	return nil
}

// Complete marks the simulated processing as finished. The prototype
// models no failure path; processing always succeeds.
func (m *Machine) Complete() *Blocked {
	if m.state != StateProcessing {
		return &Blocked{Reason: BlockInvalidState}
	}
	m.state = StateSuccess
	return nil
}

// Back steps to the previous state. Leaving the offer list clears the
// selection; leaving the disclosure clears the consent flag. Once
// processing begins there is no way back.
func (m *Machine) Back() *Blocked {
	switch m.state {
	case StateOffers:
		m.selected = nil
		m.offers = nil
		m.state = StateEntry
		return nil
	case StateDisclosure:
		m.consent = false
		m.frequency = domain.FrequencyWeekly
		m.state = StateOffers
		return nil
	default:
		return &Blocked{Reason: BlockInvalidState}
	}
}
