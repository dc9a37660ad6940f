package groups

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/balance"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// Columns toggles which amount columns are displayed. Totals are computed
// regardless of the toggles.
type Columns struct {
	Opening bool
	Debit   bool
	Credit  bool
	Closing bool
}

// AllColumns shows every amount column.
func AllColumns() Columns {
	return Columns{Opening: true, Debit: true, Credit: true, Closing: true}
}

// ParseColumns reads a comma-separated column list ("opening,closing").
// An empty string selects every column; unknown names are ignored.
func ParseColumns(s string) Columns {
	if strings.TrimSpace(s) == "" {
		return AllColumns()
	}
	var c Columns
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "opening":
			c.Opening = true
		case "debit":
			c.Debit = true
		case "credit":
			c.Credit = true
		case "closing":
			c.Closing = true
		}
	}
	return c
}

// Input is everything the aggregator needs for one group.
type Input struct {
	Group    model.LedgerGroup
	Ledgers  []model.Ledger
	Activity map[int64]model.Activity
}

// members returns the group's ledgers sorted by name then ID.
func (in Input) members() []model.Ledger {
	var out []model.Ledger
	for _, l := range in.Ledgers {
		if l.GroupID == in.Group.ID {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// LedgerRow is one ledger in the consolidated view.
type LedgerRow struct {
	LedgerID int64
	Name     string
	Balance  balance.Balance
}

// Totals sums a set of rows. Opening and closing are net debit-positive so
// ledgers on different normal sides can be added together.
type Totals struct {
	OpeningNet decimal.Decimal
	Debit      decimal.Decimal
	Credit     decimal.Decimal
	ClosingNet decimal.Decimal
}

func zeroTotals() Totals {
	return Totals{OpeningNet: decimal.Zero, Debit: decimal.Zero, Credit: decimal.Zero, ClosingNet: decimal.Zero}
}

func (t *Totals) add(b balance.Balance) {
	t.OpeningNet = t.OpeningNet.Add(b.OpeningNet())
	t.Debit = t.Debit.Add(b.Activity.Debit)
	t.Credit = t.Credit.Add(b.Activity.Credit)
	t.ClosingNet = t.ClosingNet.Add(b.ClosingNet())
}

// Opening returns the display side and magnitude of the opening total.
func (t Totals) Opening() (model.EntryType, decimal.Decimal) {
	return balance.FromNet(t.OpeningNet)
}

// Closing returns the display side and magnitude of the closing total.
func (t Totals) Closing() (model.EntryType, decimal.Decimal) {
	return balance.FromNet(t.ClosingNet)
}

// Summary is the consolidated view of one group.
type Summary struct {
	Group   model.LedgerGroup
	Columns Columns
	Rows    []LedgerRow
	Totals  Totals
}

// Consolidated builds one row per ledger in the group plus group totals.
func Consolidated(in Input, cols Columns) Summary {
	s := Summary{Group: in.Group, Columns: cols, Totals: zeroTotals()}
	for _, l := range in.members() {
		b := balance.ForLedger(l, in.Activity[l.ID])
		s.Rows = append(s.Rows, LedgerRow{LedgerID: l.ID, Name: l.Name, Balance: b})
		s.Totals.add(b)
	}
	return s
}
