package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Nature is the top-level classification of a ledger group.
type Nature string

const (
	NatureAssets      Nature = "Assets"
	NatureLiabilities Nature = "Liabilities"
	NatureIncome      Nature = "Income"
	NatureExpenses    Nature = "Expenses"
)

// LedgerGroup classifies ledgers. Built-in groups carry small negative IDs,
// custom groups positive ones.
type LedgerGroup struct {
	ID     int64
	Name   string
	Nature Nature
	Type   string // free-form tag, e.g. "direct-expenses", "stock-in-hand"
}

// BuiltIn reports whether the group is one of the fixed system groups.
func (g LedgerGroup) BuiltIn() bool {
	return g.ID < 0
}

// Ledger is an account. It never stores a signed balance: OpeningBalance is a
// magnitude on the BalanceType side.
type Ledger struct {
	ID             int64
	Name           string
	GroupID        int64
	BalanceType    EntryType
	OpeningBalance decimal.Decimal
	GSTIN          *string
	CreatedAt      *time.Time
}

// Activity is the aggregated debit/credit movement of one ledger over a period.
type Activity struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Add returns the component-wise sum.
func (a Activity) Add(o Activity) Activity {
	return Activity{Debit: a.Debit.Add(o.Debit), Credit: a.Credit.Add(o.Credit)}
}

// IsZero reports whether both sides are zero.
func (a Activity) IsZero() bool {
	return a.Debit.IsZero() && a.Credit.IsZero()
}

// Side returns the amount on the given side.
func (a Activity) Side(e EntryType) decimal.Decimal {
	if e == Credit {
		return a.Credit
	}
	return a.Debit
}
