package groups

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/balance"
	"github.com/cleared-dev/ledgerview/internal/fiscal"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// Schedule is one ledger's month-by-month balances.
type Schedule struct {
	LedgerID int64
	Name     string
	Bucket   int
	Months   [fiscal.Months]balance.Balance
}

// MonthRow is one fiscal month of the group.
type MonthRow struct {
	Index  int
	Label  string
	Totals Totals
}

// Monthly is the fixed twelve-row fiscal-year view of a group.
type Monthly struct {
	Group     model.LedgerGroup
	Start     time.Month
	Rows      [fiscal.Months]MonthRow
	Schedules []Schedule
	Totals    Totals
}

// BucketFor returns the fiscal month a ledger's whole period activity lands
// in: the month it was created, or January when the creation date is unknown.
func BucketFor(l model.Ledger, start time.Month) int {
	if l.CreatedAt == nil || l.CreatedAt.IsZero() {
		return fiscal.MonthIndex(time.January, start)
	}
	return fiscal.IndexOf(*l.CreatedAt, start)
}

// MonthlyView spreads every ledger of the group over twelve fiscal months.
// Each month opens at the previous month's closing; month 0 opens at the
// ledger's stored opening balance.
func MonthlyView(in Input, start time.Month) Monthly {
	m := Monthly{Group: in.Group, Start: start, Totals: zeroTotals()}
	for i := range m.Rows {
		m.Rows[i] = MonthRow{Index: i, Label: fiscal.Label(i, start), Totals: zeroTotals()}
	}

	for _, l := range in.members() {
		sched := Schedule{LedgerID: l.ID, Name: l.Name, Bucket: BucketFor(l, start)}
		act := in.Activity[l.ID]

		opening := l.OpeningBalance
		for i := 0; i < fiscal.Months; i++ {
			var monthAct model.Activity
			if i == sched.Bucket {
				monthAct = act
			}
			b := balance.Resolve(opening, l.BalanceType, monthAct)
			sched.Months[i] = b
			m.Rows[i].Totals.add(b)
			opening = b.Closing
		}

		m.Totals.OpeningNet = m.Totals.OpeningNet.Add(sched.Months[0].OpeningNet())
		m.Totals.Debit = m.Totals.Debit.Add(act.Debit)
		m.Totals.Credit = m.Totals.Credit.Add(act.Credit)
		m.Totals.ClosingNet = m.Totals.ClosingNet.Add(sched.Months[fiscal.Months-1].ClosingNet())
		m.Schedules = append(m.Schedules, sched)
	}
	return m
}

// ParticularRow is one ledger in a month drill-down.
type ParticularRow struct {
	LedgerID int64
	Name     string
	Balance  balance.Balance
}

// Particular is the drill-down of one fiscal month. Empty is set when no
// ledger has a non-zero opening, debit or credit in that month.
type Particular struct {
	Group  model.LedgerGroup
	Index  int
	Label  string
	Rows   []ParticularRow
	Totals Totals
	Empty  bool
}

// Particular lists the ledgers active in month index.
func (m Monthly) Particular(index int) (Particular, error) {
	if index < 0 || index >= fiscal.Months {
		return Particular{}, fmt.Errorf("month index %d out of range 0..%d", index, fiscal.Months-1)
	}

	p := Particular{Group: m.Group, Index: index, Label: fiscal.Label(index, m.Start), Totals: zeroTotals()}
	for _, s := range m.Schedules {
		b := s.Months[index]
		if b.Opening.IsZero() && b.Activity.Debit.IsZero() && b.Activity.Credit.IsZero() {
			continue
		}
		p.Rows = append(p.Rows, ParticularRow{LedgerID: s.LedgerID, Name: s.Name, Balance: b})
		p.Totals.add(b)
	}
	p.Empty = len(p.Rows) == 0
	return p, nil
}

// LedgerActivity sums one ledger's debit and credit over all twelve months.
func (m Monthly) LedgerActivity(ledgerID int64) model.Activity {
	total := model.Activity{Debit: decimal.Zero, Credit: decimal.Zero}
	for _, s := range m.Schedules {
		if s.LedgerID != ledgerID {
			continue
		}
		for _, b := range s.Months {
			total = total.Add(b.Activity)
		}
	}
	return total
}
