// Package ledger applies disbursal and repayment effects to the
// user's credit lines. Functions take the current state by value and
// return the proposed next state; the caller owns persistence.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/ecspend/lending-engine/internal/domain"
)

// Progression constants. These reproduce the product's simulation
// rules exactly and are not real amortization math.
const (
	SpendRewardBump       = 500
	RepaymentScoreBonus   = 20
	CashInstallmentShares = 4
)

// ApplyDisbursal charges a completed disbursal against the named
// credit line. Limit headroom is checked upstream by the transaction
// flow; the ledger applies the charge unconditionally.
func ApplyDisbursal(state domain.UserCreditState, line string, amount decimal.Decimal) domain.UserCreditState {
	if line == domain.LineCash {
		state.CashUsed = state.CashUsed.Add(amount)
	} else {
		state.SpendUsed = state.SpendUsed.Add(amount)
	}
	return state
}

// ApplyRepayment settles dues on the named credit line.
//
// Spend line: dues clear in full, the limit grows by a fixed reward
// bump, and the score rises.
//
// Cash line: one quarter of the outstanding amount (rounded up) is
// paid off per call; clearing the line entirely raises the credit
// level. The score rises on every repayment.
func ApplyRepayment(state domain.UserCreditState, line string) domain.UserCreditState {
	if line == domain.LineCash {
		installment := state.CashUsed.Div(decimal.NewFromInt(CashInstallmentShares)).Ceil()
		remaining := state.CashUsed.Sub(installment)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		state.CashUsed = remaining
		if state.CashUsed.IsZero() {
			state.CreditLevel++
		}
	} else {
		state.SpendUsed = decimal.Zero
		state.SpendLimit = state.SpendLimit.Add(decimal.NewFromInt(SpendRewardBump))
	}

	state.ECScore += RepaymentScoreBonus
	if state.ECScore > domain.ECScoreMax {
		state.ECScore = domain.ECScoreMax
	}
	return state
}
