package transaction

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecspend/lending-engine/internal/domain"
)

func testCredit() domain.UserCreditState {
	return domain.UserCreditState{
		SpendLimit:  decimal.NewFromInt(1000),
		SpendUsed:   decimal.NewFromInt(200),
		CashLimit:   decimal.NewFromInt(1000),
		CashUsed:    decimal.Zero,
		CreditLevel: 1,
		ECScore:     650,
	}
}

func testOffers() []domain.Offer {
	return []domain.Offer{
		{PartnerID: "hdfc", PartnerName: "HDFC Bank"},
		{PartnerID: "sbi", PartnerName: "State Bank of India"},
	}
}

func TestSubmitEntry(t *testing.T) {
	tests := []struct {
		name         string
		variant      string
		amount       int64
		categoryKind string
		wantBlocked  string
		wantState    string
		wantLine     string
	}{
		{
			name:         "Valid spend entry advances to offers",
			variant:      VariantSpend,
			amount:       300,
			categoryKind: domain.CategoryFuel,
			wantState:    StateOffers,
			wantLine:     domain.LineSpend,
		},
		{
			name:         "Cash category draws on the cash line",
			variant:      VariantSpend,
			amount:       900,
			categoryKind: domain.CategoryCash,
			wantState:    StateOffers,
			wantLine:     domain.LineCash,
		},
		{
			name:      "Scan entry needs no category",
			variant:   VariantScan,
			amount:    100,
			wantState: StateOffers,
			wantLine:  domain.LineSpend,
		},
		{
			name:         "Zero amount blocked",
			variant:      VariantSpend,
			amount:       0,
			categoryKind: domain.CategoryFuel,
			wantBlocked:  BlockInvalidAmount,
		},
		{
			name:        "Missing category blocked",
			variant:     VariantSpend,
			amount:      300,
			wantBlocked: BlockCategoryRequired,
		},
		{
			name:         "Amount over spend headroom blocked",
			variant:      VariantSpend,
			amount:       900, // available = 1000 - 200 = 800
			categoryKind: domain.CategoryGrocery,
			wantBlocked:  BlockLimitExceeded,
		},
		{
			name:         "Amount over cash headroom blocked",
			variant:      VariantSpend,
			amount:       1001,
			categoryKind: domain.CategoryCash,
			wantBlocked:  BlockLimitExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine := New(tt.variant)

			blocked := machine.SubmitEntry(decimal.NewFromInt(tt.amount), tt.categoryKind, testCredit(), testOffers())

			if tt.wantBlocked != "" {
				require.NotNil(t, blocked)
				assert.Equal(t, tt.wantBlocked, blocked.Reason)
				assert.Equal(t, StateEntry, machine.State(), "blocked entry must not advance")
				return
			}

			require.Nil(t, blocked)
			assert.Equal(t, tt.wantState, machine.State())
			assert.Equal(t, tt.wantLine, machine.Line())
		})
	}
}

func TestLimitCheckCoversEveryPartnerOffer(t *testing.T) {
	// An amount over the available limit blocks entry regardless of
	// which partner's offer the user might have picked downstream.
	over := decimal.NewFromInt(801) // available spend = 800
	for range testOffers() {
		machine := New(VariantSpend)
		blocked := machine.SubmitEntry(over, domain.CategoryFuel, testCredit(), testOffers())
		require.NotNil(t, blocked)
		assert.Equal(t, BlockLimitExceeded, blocked.Reason)
	}
}

func TestSelectOffer(t *testing.T) {
	machine := New(VariantSpend)
	require.Nil(t, machine.SubmitEntry(decimal.NewFromInt(300), domain.CategoryFuel, testCredit(), testOffers()))

	blocked := machine.SelectOffer("unknown-bank")
	require.NotNil(t, blocked)
	assert.Equal(t, BlockNoOfferSelected, blocked.Reason)
	assert.Equal(t, StateOffers, machine.State())

	require.Nil(t, machine.SelectOffer("sbi"))
	assert.Equal(t, StateDisclosure, machine.State())
	require.NotNil(t, machine.Selected())
	assert.Equal(t, "sbi", machine.Selected().PartnerID)
}

func TestConfirmRequiresConsent(t *testing.T) {
	machine := New(VariantSpend)
	require.Nil(t, machine.SubmitEntry(decimal.NewFromInt(300), domain.CategoryFuel, testCredit(), testOffers()))
	require.Nil(t, machine.SelectOffer("hdfc"))

	blocked := machine.Confirm(false)
	require.NotNil(t, blocked)
	assert.Equal(t, BlockConsentRequired, blocked.Reason)
	assert.Equal(t, StateDisclosure, machine.State())

	require.Nil(t, machine.Confirm(true))
	assert.Equal(t, StateProcessing, machine.State())

	require.Nil(t, machine.Complete())
	assert.Equal(t, StateSuccess, machine.State())
}

func TestBack(t *testing.T) {
	machine := New(VariantSpend)
	require.Nil(t, machine.SubmitEntry(decimal.NewFromInt(300), domain.CategoryFuel, testCredit(), testOffers()))
	require.Nil(t, machine.SelectOffer("hdfc"))
	require.Nil(t, machine.SetFrequency(domain.FrequencyBiWeekly))

	// Disclosure → offers clears consent and resets the frequency.
	require.Nil(t, machine.Back())
	assert.Equal(t, StateOffers, machine.State())
	assert.False(t, machine.Consent())
	assert.Equal(t, domain.FrequencyWeekly, machine.Frequency())

	// Offers → entry clears the selection.
	require.Nil(t, machine.Back())
	assert.Equal(t, StateEntry, machine.State())
	assert.Nil(t, machine.Selected())
	assert.Empty(t, machine.Offers())

	// No further back from entry.
	blocked := machine.Back()
	require.NotNil(t, blocked)
	assert.Equal(t, BlockInvalidState, blocked.Reason)
}

func TestNoBackOnceProcessingStarts(t *testing.T) {
	machine := New(VariantSpend)
	require.Nil(t, machine.SubmitEntry(decimal.NewFromInt(300), domain.CategoryFuel, testCredit(), testOffers()))
	require.Nil(t, machine.SelectOffer("hdfc"))
	require.Nil(t, machine.Confirm(true))

	blocked := machine.Back()
	require.NotNil(t, blocked)
	assert.Equal(t, BlockInvalidState, blocked.Reason)
	assert.Equal(t, StateProcessing, machine.State())
}

func TestOutOfOrderActionsBlocked(t *testing.T) {
	machine := New(VariantSpend)

	assert.Equal(t, BlockInvalidState, machine.SelectOffer("hdfc").Reason)
	assert.Equal(t, BlockInvalidState, machine.Confirm(true).Reason)
	assert.Equal(t, BlockInvalidState, machine.Complete().Reason)
	assert.Equal(t, BlockInvalidState, machine.SetFrequency(domain.FrequencyWeekly).Reason)
}

func TestFreshMachineStartsEmpty(t *testing.T) {
	machine := New(VariantSpend)

	assert.Equal(t, StateEntry, machine.State())
	assert.Nil(t, machine.Selected())
	assert.False(t, machine.Consent())
	assert.Equal(t, domain.FrequencyWeekly, machine.Frequency())
}
