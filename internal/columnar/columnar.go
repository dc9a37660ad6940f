// Package columnar builds pivoted registers with one column per ledger named
// by a voucher's line items.
package columnar

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// Direction selects which item ledger supplies the primary columns.
type Direction string

const (
	Sales    Direction = "sales"
	Purchase Direction = "purchase"
)

// VoucherType returns the voucher type a register of this direction covers.
func (d Direction) VoucherType() model.VoucherType {
	if d == Purchase {
		return model.VoucherPurchase
	}
	return model.VoucherSales
}

func (d Direction) primaryLedger(li model.LineItem) string {
	if d == Purchase {
		return li.PurchaseLedger
	}
	return li.SalesLedger
}

// Row is one voucher laid out against the fixed and dynamic columns.
// Rate is the common item rate, or zero when items disagree or are absent.
type Row struct {
	VoucherID     int64
	Date          time.Time
	Party         string
	VoucherNumber string
	Total         decimal.Decimal
	Quantity      decimal.Decimal
	Rate          decimal.Decimal
	Primary       map[string]decimal.Decimal
	Tax           map[string]decimal.Decimal
}

// Footer sums every numeric column. Rate is the plain sum of per-row rates.
type Footer struct {
	Quantity decimal.Decimal
	Total    decimal.Decimal
	Rate     decimal.Decimal
	Primary  map[string]decimal.Decimal
	Tax      map[string]decimal.Decimal
}

// Table is the pivoted register. Primary and tax column names are kept in
// separate lists and maps, so a name appearing in both yields two columns.
type Table struct {
	Direction      Direction
	PrimaryColumns []string
	TaxColumns     []string
	Rows           []Row
	Footer         Footer
}

// Headers returns the dynamic headers: primary columns followed by tax columns.
func (t Table) Headers() []string {
	out := make([]string, 0, len(t.PrimaryColumns)+len(t.TaxColumns))
	out = append(out, t.PrimaryColumns...)
	return append(out, t.TaxColumns...)
}

// Build pivots vouchers into a Table. Vouchers are laid out in input order;
// callers filter by voucher type beforehand. ledgers resolves the party name
// when a voucher carries only a counterparty ledger id.
func Build(dir Direction, vouchers []model.Voucher, ledgers map[int64]model.Ledger) Table {
	t := Table{
		Direction:      dir,
		PrimaryColumns: primaryColumns(dir, vouchers),
		TaxColumns:     taxColumns(vouchers),
		Rows:           make([]Row, 0, len(vouchers)),
	}

	for _, v := range vouchers {
		t.Rows = append(t.Rows, buildRow(dir, v, ledgers))
	}
	t.Footer = footer(t.Rows)
	return t
}

func primaryColumns(dir Direction, vouchers []model.Voucher) []string {
	seen := make(map[string]struct{})
	for _, v := range vouchers {
		for _, li := range v.Items {
			if name := dir.primaryLedger(li); name != "" {
				seen[name] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

func taxColumns(vouchers []model.Voucher) []string {
	seen := make(map[string]struct{})
	for _, v := range vouchers {
		for _, li := range v.Items {
			for _, kind := range model.TaxKinds {
				if name := li.TaxLedger(kind); name != "" {
					seen[name] = struct{}{}
				}
			}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func buildRow(dir Direction, v model.Voucher, ledgers map[int64]model.Ledger) Row {
	row := Row{
		VoucherID:     v.ID,
		Date:          v.Date,
		Party:         partyName(v, ledgers),
		VoucherNumber: v.Number,
		Total:         v.TotalAmount,
		Quantity:      decimal.Zero,
		Rate:          itemRate(v.Items),
		Primary:       make(map[string]decimal.Decimal),
		Tax:           make(map[string]decimal.Decimal),
	}

	for _, li := range v.Items {
		row.Quantity = row.Quantity.Add(li.Quantity)
		if name := dir.primaryLedger(li); name != "" {
			row.Primary[name] = row.Primary[name].Add(li.Amount)
		}
	}

	// The voucher holds one aggregate per tax head. The whole aggregate goes
	// to the first ledger named for that head; later distinct names get nothing.
	for _, kind := range model.TaxKinds {
		for _, li := range v.Items {
			name := li.TaxLedger(kind)
			if name == "" {
				continue
			}
			row.Tax[name] = row.Tax[name].Add(v.TaxAmount(kind))
			break
		}
	}
	return row
}

func partyName(v model.Voucher, ledgers map[int64]model.Ledger) string {
	if v.PartyName != "" {
		return v.PartyName
	}
	if l, ok := ledgers[v.PartyLedgerID]; ok {
		return l.Name
	}
	return ""
}

func itemRate(items []model.LineItem) decimal.Decimal {
	if len(items) == 0 {
		return decimal.Zero
	}
	rate := items[0].Rate
	for _, li := range items[1:] {
		if !li.Rate.Equal(rate) {
			return decimal.Zero
		}
	}
	return rate
}

func footer(rows []Row) Footer {
	f := Footer{
		Quantity: decimal.Zero,
		Total:    decimal.Zero,
		Rate:     decimal.Zero,
		Primary:  make(map[string]decimal.Decimal),
		Tax:      make(map[string]decimal.Decimal),
	}
	for _, r := range rows {
		f.Quantity = f.Quantity.Add(r.Quantity)
		f.Total = f.Total.Add(r.Total)
		f.Rate = f.Rate.Add(r.Rate)
		for k, amt := range r.Primary {
			f.Primary[k] = f.Primary[k].Add(amt)
		}
		for k, amt := range r.Tax {
			f.Tax[k] = f.Tax[k].Add(amt)
		}
	}
	return f
}

// Cell returns the amount in a dynamic column by header position; index
// len(PrimaryColumns) and beyond address tax columns.
func (t Table) Cell(r Row, index int) decimal.Decimal {
	if index < len(t.PrimaryColumns) {
		return r.Primary[t.PrimaryColumns[index]]
	}
	return r.Tax[t.TaxColumns[index-len(t.PrimaryColumns)]]
}

// FooterCell is Cell for the footer row.
func (t Table) FooterCell(index int) decimal.Decimal {
	if index < len(t.PrimaryColumns) {
		return t.Footer.Primary[t.PrimaryColumns[index]]
	}
	return t.Footer.Tax[t.TaxColumns[index-len(t.PrimaryColumns)]]
}
