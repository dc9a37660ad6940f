package daybook

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// RegisterRow is one posting in the flat register. Lead is set on the first
// row of a run; only lead rows carry the shared columns when rendered.
type RegisterRow struct {
	Entry
	Lead      bool
	RunLength int
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

type runKey struct {
	date        string
	voucherType model.VoucherType
	number      string
	particulars string
}

func keyOf(e Entry) runKey {
	return runKey{
		date:        e.Date.Format("2006-01-02"),
		voucherType: e.VoucherType,
		number:      e.VoucherNumber,
		particulars: e.Particulars,
	}
}

// Register sorts a copy of entries and groups consecutive rows sharing date,
// voucher type, voucher number and particulars into runs.
func Register(entries []Entry) []RegisterRow {
	sorted := append([]Entry(nil), entries...)
	Sort(sorted)

	rows := make([]RegisterRow, 0, len(sorted))
	lead := -1
	for i, e := range sorted {
		row := RegisterRow{Entry: e, Debit: decimal.Zero, Credit: decimal.Zero}
		if e.Posting.EntryType == model.Credit {
			row.Credit = e.Posting.Amount
		} else {
			row.Debit = e.Posting.Amount
		}
		if i == 0 || keyOf(sorted[i-1]) != keyOf(e) {
			row.Lead = true
			row.RunLength = 1
			rows = append(rows, row)
			lead = len(rows) - 1
			continue
		}
		rows[lead].RunLength++
		rows = append(rows, row)
	}
	return rows
}
