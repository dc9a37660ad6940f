// Package balance resolves opening-to-closing balances for a single ledger.
package balance

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// Balance is the resolved position of one ledger over one period.
//
// Closing is signed relative to Side: positive means the ledger sits on its
// normal side, negative means it has flipped.
type Balance struct {
	Side        model.EntryType
	Opening     decimal.Decimal
	Activity    model.Activity
	Closing     decimal.Decimal
	DisplaySide model.EntryType
	Magnitude   decimal.Decimal
}

// Resolve applies the normal-side formula:
//
//	debit side:  (opening + debit) - credit
//	credit side: (opening + credit) - debit
//
// A side that is neither debit nor credit is treated as debit.
func Resolve(opening decimal.Decimal, side model.EntryType, act model.Activity) Balance {
	if side != model.Credit {
		side = model.Debit
	}

	var closing decimal.Decimal
	if side == model.Debit {
		closing = opening.Add(act.Debit).Sub(act.Credit)
	} else {
		closing = opening.Add(act.Credit).Sub(act.Debit)
	}

	display := side
	if closing.IsNegative() {
		display = side.Opposite()
	}

	return Balance{
		Side:        side,
		Opening:     opening,
		Activity:    act,
		Closing:     closing,
		DisplaySide: display,
		Magnitude:   closing.Abs(),
	}
}

// ForLedger resolves a ledger against its period activity.
func ForLedger(l model.Ledger, act model.Activity) Balance {
	return Resolve(l.OpeningBalance, l.BalanceType, act)
}

// Net expresses an amount signed relative to side in debit terms
// (debit positive, credit negative), so balances with different normal
// sides can be summed.
func Net(amount decimal.Decimal, side model.EntryType) decimal.Decimal {
	if side == model.Credit {
		return amount.Neg()
	}
	return amount
}

// FromNet splits a debit-positive net amount into a display side and magnitude.
func FromNet(net decimal.Decimal) (model.EntryType, decimal.Decimal) {
	if net.IsNegative() {
		return model.Credit, net.Abs()
	}
	return model.Debit, net
}

// ClosingNet is Closing expressed in debit terms.
func (b Balance) ClosingNet() decimal.Decimal {
	return Net(b.Closing, b.Side)
}

// OpeningNet is Opening expressed in debit terms.
func (b Balance) OpeningNet() decimal.Decimal {
	return Net(b.Opening, b.Side)
}
