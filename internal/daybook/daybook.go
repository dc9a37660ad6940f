// Package daybook builds the chronological Day Book: per-voucher totals, the
// run-length grouped posting register, and single-voucher detail.
package daybook

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/classify"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// Entry is a posting tagged with its parent voucher.
type Entry struct {
	Posting          model.Posting
	VoucherID        int64
	VoucherType      model.VoucherType
	VoucherNumber    string
	Date             time.Time
	VoucherNarration string
	Particulars      string
}

// Flatten expands vouchers into entries, keeping posting order. Particulars is
// the voucher's party name, or the first posting's ledger name when unset.
func Flatten(vouchers []model.Voucher) []Entry {
	var out []Entry
	for _, v := range vouchers {
		particulars := v.PartyName
		if particulars == "" && len(v.Postings) > 0 {
			particulars = v.Postings[0].LedgerName
		}
		for _, p := range v.Postings {
			if p.VoucherID == 0 {
				p.VoucherID = v.ID
			}
			out = append(out, Entry{
				Posting:          p,
				VoucherID:        v.ID,
				VoucherType:      v.Type,
				VoucherNumber:    v.Number,
				Date:             v.Date,
				VoucherNarration: v.Narration,
				Particulars:      particulars,
			})
		}
	}
	return out
}

// Sort orders entries by date descending, then voucher number descending.
// Entries of the same voucher keep their relative order.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return before(entries[i].Date, entries[i].VoucherNumber, entries[j].Date, entries[j].VoucherNumber)
	})
}

func before(di time.Time, ni string, dj time.Time, nj string) bool {
	if !di.Equal(dj) {
		return di.After(dj)
	}
	return ni > nj
}

// VoucherRow is one voucher in the grouped table.
type VoucherRow struct {
	VoucherID    int64
	Type         model.VoucherType
	Number       string
	Date         time.Time
	Narration    string
	Particulars  string
	TotalDebit   decimal.Decimal
	TotalCredit  decimal.Decimal
	EntriesCount int
	// Display is the single net amount pair rendered for the voucher.
	Display classify.Amounts
}

// GroupVouchers folds entries into one row per voucher. Only postings that
// pass the posting-inclusion rule count toward totals and the entry count.
func GroupVouchers(entries []Entry) []VoucherRow {
	index := make(map[int64]int)
	var rows []VoucherRow
	for _, e := range entries {
		i, ok := index[e.VoucherID]
		if !ok {
			i = len(rows)
			index[e.VoucherID] = i
			rows = append(rows, VoucherRow{
				VoucherID:   e.VoucherID,
				Type:        e.VoucherType,
				Number:      e.VoucherNumber,
				Date:        e.Date,
				Narration:   e.VoucherNarration,
				Particulars: e.Particulars,
				TotalDebit:  decimal.Zero,
				TotalCredit: decimal.Zero,
			})
		}
		if !classify.IncludePosting(e.VoucherType, e.Posting.EntryType) {
			continue
		}
		r := &rows[i]
		r.EntriesCount++
		if e.Posting.EntryType == model.Credit {
			r.TotalCredit = r.TotalCredit.Add(e.Posting.Amount)
		} else {
			r.TotalDebit = r.TotalDebit.Add(e.Posting.Amount)
		}
	}
	for i := range rows {
		rows[i].Display = classify.Summary(rows[i].Type, rows[i].TotalDebit, rows[i].TotalCredit)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return before(rows[i].Date, rows[i].Number, rows[j].Date, rows[j].Number)
	})
	return rows
}

// Totals sums the grouped rows.
func Totals(rows []VoucherRow) classify.Amounts {
	out := classify.Amounts{Debit: decimal.Zero, Credit: decimal.Zero}
	for _, r := range rows {
		out.Debit = out.Debit.Add(r.TotalDebit)
		out.Credit = out.Credit.Add(r.TotalCredit)
	}
	return out
}
