// Package statement builds a per-ledger account statement with a running
// balance.
package statement

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/balance"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// Range limits the statement to the days From through To. Zero times are
// open ends. To covers its whole calendar day. Postings before From are
// folded into the opening balance.
type Range struct {
	From time.Time
	To   time.Time
}

func (r Range) before(t time.Time) bool {
	return !r.From.IsZero() && t.Before(r.From)
}

func (r Range) after(t time.Time) bool {
	if r.To.IsZero() {
		return false
	}
	y, m, day := r.To.Date()
	return !t.Before(time.Date(y, m, day+1, 0, 0, 0, 0, r.To.Location()))
}

// Line is one posting against the ledger.
type Line struct {
	Date          time.Time
	VoucherID     int64
	VoucherType   model.VoucherType
	VoucherNumber string
	Particulars   string
	Narration     string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	Running       balance.Balance
}

// Statement is the resolved account statement of one ledger.
type Statement struct {
	Ledger  model.Ledger
	Opening balance.Balance
	Lines   []Line
	Closing balance.Balance
}

// Matches reports whether a posting references the ledger, by ID when the
// posting carries one and by case-insensitive name otherwise.
func Matches(l model.Ledger, p model.Posting) bool {
	if p.LedgerID != 0 {
		return p.LedgerID == l.ID
	}
	return p.LedgerName != "" && strings.EqualFold(strings.TrimSpace(p.LedgerName), strings.TrimSpace(l.Name))
}

// Build walks the vouchers in date order and resolves the running balance
// after every posting against the ledger's normal side.
func Build(l model.Ledger, vouchers []model.Voucher, r Range) Statement {
	sorted := append([]model.Voucher(nil), vouchers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})

	brought := model.Activity{Debit: decimal.Zero, Credit: decimal.Zero}
	period := model.Activity{Debit: decimal.Zero, Credit: decimal.Zero}
	var lines []Line
	var opening balance.Balance
	openingSet := false

	for _, v := range sorted {
		if r.after(v.Date) {
			break
		}
		for _, p := range v.Postings {
			if !Matches(l, p) {
				continue
			}
			act := model.Activity{Debit: decimal.Zero, Credit: decimal.Zero}
			if p.EntryType == model.Credit {
				act.Credit = p.Amount
			} else {
				act.Debit = p.Amount
			}
			if r.before(v.Date) {
				brought = brought.Add(act)
				continue
			}
			if !openingSet {
				opening = balance.ForLedger(l, brought)
				openingSet = true
			}
			period = period.Add(act)
			lines = append(lines, Line{
				Date:          v.Date,
				VoucherID:     v.ID,
				VoucherType:   v.Type,
				VoucherNumber: v.Number,
				Particulars:   counterpart(v, l),
				Narration:     firstNonEmpty(p.Narration, v.Narration),
				Debit:         act.Debit,
				Credit:        act.Credit,
				Running:       balance.ForLedger(l, brought.Add(period)),
			})
		}
	}
	if !openingSet {
		opening = balance.ForLedger(l, brought)
	}

	return Statement{
		Ledger:  l,
		Opening: opening,
		Lines:   lines,
		Closing: balance.ForLedger(l, brought.Add(period)),
	}
}

// Totals returns the debit and credit sums of the statement lines.
func (s Statement) Totals() model.Activity {
	out := model.Activity{Debit: decimal.Zero, Credit: decimal.Zero}
	for _, ln := range s.Lines {
		out = out.Add(model.Activity{Debit: ln.Debit, Credit: ln.Credit})
	}
	return out
}

// counterpart names the other side of the voucher: the party when the
// statement ledger is not the party, else the first other posting.
func counterpart(v model.Voucher, l model.Ledger) string {
	if v.PartyName != "" && v.PartyLedgerID != l.ID {
		return v.PartyName
	}
	for _, p := range v.Postings {
		if !Matches(l, p) && p.LedgerName != "" {
			return p.LedgerName
		}
	}
	return v.PartyName
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
