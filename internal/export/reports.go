package export

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/classify"
	"github.com/cleared-dev/ledgerview/internal/columnar"
	"github.com/cleared-dev/ledgerview/internal/daybook"
	"github.com/cleared-dev/ledgerview/internal/groups"
	"github.com/cleared-dev/ledgerview/internal/gst"
	"github.com/cleared-dev/ledgerview/internal/model"
	"github.com/cleared-dev/ledgerview/internal/snapshot"
	"github.com/cleared-dev/ledgerview/internal/statement"
	"github.com/cleared-dev/ledgerview/internal/trading"
)

// DayBookVouchers lays out the voucher-grouped Day Book. Summary is the
// single amount shown per voucher.
func DayBookVouchers(rows []daybook.VoucherRow, totals classify.Amounts) Table {
	t := newTable("Day Book", "Date", "Voucher Type", "Voucher No", "Particulars", "Debit", "Credit", "Entries", "Summary")
	t.numeric(4, 5)
	for _, r := range rows {
		t.add(
			date(r.Date),
			r.Type.Label(),
			r.Number,
			r.Particulars,
			amount(r.TotalDebit),
			amount(r.TotalCredit),
			strconv.Itoa(r.EntriesCount),
			summary(r.Display),
		)
	}
	t.Footer = []string{"Total", "", "", "", amount(totals.Debit), amount(totals.Credit), "", ""}
	return t
}

func summary(a classify.Amounts) string {
	switch {
	case a.Credit.IsZero():
		return sided(model.Debit, a.Debit)
	case a.Debit.IsZero():
		return sided(model.Credit, a.Credit)
	}
	return sided(model.Debit, a.Debit) + " / " + sided(model.Credit, a.Credit)
}

// DayBookRegister lays out the flat register; only the first row of each run
// carries the shared columns.
func DayBookRegister(rows []daybook.RegisterRow) Table {
	t := newTable("Day Book Register", "Date", "Voucher Type", "Voucher No", "Particulars", "Ledger", "Debit", "Credit")
	t.numeric(5, 6)
	for _, r := range rows {
		var d, vt, num, part string
		if r.Lead {
			d, vt, num, part = date(r.Date), r.VoucherType.Label(), r.VoucherNumber, r.Particulars
		}
		t.add(d, vt, num, part, r.Posting.LedgerName, blankZero(r.Debit), blankZero(r.Credit))
	}
	return t
}

func blankZero(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return amount(d)
}

// VoucherDetail lays out one voucher: the party line first, then the other
// postings indented.
func VoucherDetail(d daybook.Detail) Table {
	v := d.Voucher
	t := newTable(fmt.Sprintf("%s %s", v.Type.Label(), v.Number), "Role", "Ledger", "Debit", "Credit", "Narration")
	t.numeric(2, 3)
	if d.Party.LedgerName != "" || d.Party.LedgerID != 0 {
		t.add("party", d.Party.LedgerName, debitOf(d.Party), creditOf(d.Party), d.Party.Narration)
	}
	for _, p := range d.Others {
		t.add("other", "  "+p.LedgerName, debitOf(p), creditOf(p), p.Narration)
	}
	if v.Narration != "" {
		t.Notes = append(t.Notes, "Narration: "+v.Narration)
	}
	return t
}

func debitOf(p model.Posting) string {
	if p.EntryType == model.Credit {
		return ""
	}
	return amount(p.Amount)
}

func creditOf(p model.Posting) string {
	if p.EntryType != model.Credit {
		return ""
	}
	return amount(p.Amount)
}

// Statement lays out a ledger statement with its running balance.
func Statement(st statement.Statement) Table {
	t := newTable("Ledger Statement: "+st.Ledger.Name, "Date", "Voucher Type", "Voucher No", "Particulars", "Debit", "Credit", "Balance")
	t.numeric(4, 5)
	t.add("", "", "", "Opening Balance", "", "", closing(st.Opening))
	for _, ln := range st.Lines {
		t.add(date(ln.Date), ln.VoucherType.Label(), ln.VoucherNumber, ln.Particulars,
			blankZero(ln.Debit), blankZero(ln.Credit), closing(ln.Running))
	}
	tot := st.Totals()
	t.Footer = []string{"", "", "", "Closing Balance", amount(tot.Debit), amount(tot.Credit), closing(st.Closing)}
	return t
}

// GroupSummary lays out the consolidated view with only the toggled amount
// columns.
func GroupSummary(s groups.Summary) Table {
	headers := []string{"Ledger"}
	type col struct {
		on   bool
		name string
		row  func(groups.LedgerRow) string
		foot string
	}
	openSide, openMag := s.Totals.Opening()
	closeSide, closeMag := s.Totals.Closing()
	cols := []col{
		{s.Columns.Opening, "Opening", func(r groups.LedgerRow) string { return opening(r.Balance) }, sided(openSide, openMag)},
		{s.Columns.Debit, "Debit", func(r groups.LedgerRow) string { return amount(r.Balance.Activity.Debit) }, amount(s.Totals.Debit)},
		{s.Columns.Credit, "Credit", func(r groups.LedgerRow) string { return amount(r.Balance.Activity.Credit) }, amount(s.Totals.Credit)},
		{s.Columns.Closing, "Closing", func(r groups.LedgerRow) string { return closing(r.Balance) }, sided(closeSide, closeMag)},
	}
	for _, c := range cols {
		if c.on {
			headers = append(headers, c.name)
		}
	}

	t := newTable("Group Summary: "+s.Group.Name, headers...)
	for i := 1; i < len(headers); i++ {
		t.numeric(i)
	}
	for _, r := range s.Rows {
		cells := []string{r.Name}
		for _, c := range cols {
			if c.on {
				cells = append(cells, c.row(r))
			}
		}
		t.add(cells...)
	}
	t.Footer = []string{"Total"}
	for _, c := range cols {
		if c.on {
			t.Footer = append(t.Footer, c.foot)
		}
	}
	return t
}

func totalsCells(tot groups.Totals) []string {
	openSide, openMag := tot.Opening()
	closeSide, closeMag := tot.Closing()
	return []string{sided(openSide, openMag), amount(tot.Debit), amount(tot.Credit), sided(closeSide, closeMag)}
}

// Monthly lays out the twelve fiscal months of a group.
func Monthly(m groups.Monthly) Table {
	t := newTable("Monthly Summary: "+m.Group.Name, "Month", "Opening", "Debit", "Credit", "Closing")
	t.numeric(1, 2, 3, 4)
	for _, r := range m.Rows {
		t.add(append([]string{r.Label}, totalsCells(r.Totals)...)...)
	}
	t.Footer = append([]string{"Total"}, totalsCells(m.Totals)...)
	return t
}

// Particular lays out a month drill-down, or a note when nothing moved.
func Particular(p groups.Particular) Table {
	t := newTable(fmt.Sprintf("%s: %s", p.Group.Name, p.Label), "Ledger", "Opening", "Debit", "Credit", "Closing")
	t.numeric(1, 2, 3, 4)
	if p.Empty {
		t.Notes = append(t.Notes, "No ledger has an opening balance or activity in "+p.Label+".")
		return t
	}
	for _, r := range p.Rows {
		t.add(r.Name, opening(r.Balance), amount(r.Balance.Activity.Debit), amount(r.Balance.Activity.Credit), closing(r.Balance))
	}
	t.Footer = append([]string{"Total"}, totalsCells(p.Totals)...)
	return t
}

// Columnar lays out a pivoted register: fixed columns, then one column per
// primary ledger, then one per tax ledger.
func Columnar(tbl columnar.Table) Table {
	fixed := []string{"Date", "Party", "Voucher No", "Quantity", "Rate", "Total"}
	dynamic := tbl.Headers()
	title := "Columnar Sales Register"
	if tbl.Direction == columnar.Purchase {
		title = "Columnar Purchase Register"
	}

	t := newTable(title, append(fixed, dynamic...)...)
	for i := 3; i < len(t.Headers); i++ {
		t.numeric(i)
	}
	for _, r := range tbl.Rows {
		cells := []string{date(r.Date), r.Party, r.VoucherNumber, r.Quantity.String(), amount(r.Rate), amount(r.Total)}
		for i := range dynamic {
			cells = append(cells, amount(tbl.Cell(r, i)))
		}
		t.add(cells...)
	}
	t.Footer = []string{"Total", "", "", tbl.Footer.Quantity.String(), amount(tbl.Footer.Rate), amount(tbl.Footer.Total)}
	for i := range dynamic {
		t.Footer = append(t.Footer, amount(tbl.FooterCell(i)))
	}
	return t
}

// GSTRegister lays out one B2B or B2C register.
func GSTRegister(reg gst.Register) Table {
	title := "B2C Register"
	if reg.Segment == gst.B2B {
		title = "B2B Register"
	}
	t := newTable(title, "Date", "Voucher No", "Party", "GSTIN", "Taxable Value", "CGST", "SGST", "IGST", "Total")
	t.numeric(4, 5, 6, 7, 8)
	for _, r := range reg.Rows {
		t.add(date(r.Date), r.VoucherNumber, r.Party, r.GSTIN,
			amount(r.TaxableValue), amount(r.CGST), amount(r.SGST), amount(r.IGST), amount(r.Total))
	}
	tot := reg.Totals
	t.Footer = []string{"Total", "", "", "",
		amount(tot.TaxableValue), amount(tot.CGST), amount(tot.SGST), amount(tot.IGST), amount(tot.Total)}
	return t
}

// Trading lays out the Trading Account, the Profit & Loss Account, the stock
// reconciliation and, when computed, the inventory breakup.
func Trading(st trading.Statement) []Table {
	tr := newTable("Trading Account", "Side", "Particulars", "Amount")
	tr.numeric(2)
	tr.add("Dr", "Opening Stock", amount(st.OpeningStock))
	tr.add("Dr", "Purchases", amount(st.PurchaseTotal))
	tr.add("Dr", "Direct Expenses", amount(st.DirectExpensesTotal))
	for _, ln := range st.DirectExpenses.Lines {
		tr.add("Dr", "  "+ln.Name, amount(ln.Amount))
	}
	if st.GrossProfit.IsPositive() {
		tr.add("Dr", "Gross Profit c/o", amount(st.GrossProfit))
	}
	tr.add("Cr", "Sales", amount(st.SalesTotal))
	tr.add("Cr", "Closing Stock", amount(st.ClosingStock))
	if st.GrossProfit.IsNegative() {
		tr.add("Cr", "Gross Loss c/o", amount(st.GrossLoss()))
	}
	tr.Footer = []string{"", "Total", amount(decimal.Max(st.TradingDebit, st.TradingCredit))}

	pl := newTable("Profit & Loss Account", "Side", "Particulars", "Amount")
	pl.numeric(2)
	if st.GrossProfit.IsNegative() {
		pl.add("Dr", "Gross Loss b/f", amount(st.GrossLoss()))
	}
	pl.add("Dr", "Indirect Expenses", amount(st.IndirectExpensesTotal))
	for _, ln := range st.IndirectExpenses.Lines {
		pl.add("Dr", "  "+ln.Name, amount(ln.Amount))
	}
	if st.NetProfit.IsPositive() {
		pl.add("Dr", "Net Profit", amount(st.NetProfit))
	}
	if st.GrossProfit.IsPositive() {
		pl.add("Cr", "Gross Profit b/f", amount(st.GrossProfit))
	}
	pl.add("Cr", "Indirect Income", amount(st.IndirectIncomeTotal))
	for _, ln := range st.IndirectIncome.Lines {
		pl.add("Cr", "  "+ln.Name, amount(ln.Amount))
	}
	if st.NetProfit.IsNegative() {
		pl.add("Cr", "Net Loss", amount(st.NetLoss()))
	}
	pl.Footer = []string{"", "Total", amount(decimal.Max(st.PLDebit, st.PLCredit))}

	rec := newTable("Closing Stock Reconciliation", "Particulars", "Amount")
	rec.numeric(1)
	rec.add("Ledger closing stock", amount(st.ClosingStock))
	rec.add("Item-level closing stock", amount(st.ReconciledClosingStock))
	rec.add("Variance", amount(st.StockVariance))

	out := []Table{tr, pl, rec}
	if st.Inventory != nil {
		out = append(out, Inventory(st.Inventory))
	}
	return out
}

// Inventory lays out the per-item closing stock breakup.
func Inventory(items []trading.ItemLine) Table {
	t := newTable("Inventory", "Item", "HSN", "Opening Qty", "Opening Value", "Purchase Qty", "Purchase Value",
		"Sales Qty", "Sales Value", "Closing Qty", "Closing Value")
	t.numeric(2, 3, 4, 5, 6, 7, 8, 9)
	total := decimal.Zero
	for _, it := range items {
		t.add(it.Name, it.HSNCode,
			it.OpeningQty.String(), amount(it.OpeningValue),
			it.PurchaseQty.String(), amount(it.PurchaseValue),
			it.SalesQty.String(), amount(it.SalesValue),
			it.ClosingQty.String(), amount(it.ClosingValue))
		total = total.Add(it.ClosingValue)
	}
	t.Footer = []string{"Total", "", "", "", "", "", "", "", "", amount(total)}
	return t
}

// Validation lays out consistency-check findings.
func Validation(errs []snapshot.ValidationError) Table {
	t := newTable("Consistency Check", "Rule", "Voucher", "Ledger", "Description")
	for _, e := range errs {
		t.add(strconv.Itoa(e.Rule), idOrBlank(e.VoucherID), idOrBlank(e.LedgerID), e.Description)
	}
	if len(errs) == 0 {
		t.Notes = append(t.Notes, "No problems found.")
	}
	return t
}

func idOrBlank(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// Scalars lays out the published net result of a company.
func Scalars(company string, net trading.Net, found bool) Table {
	t := newTable("Published Scalars", "Key", "Value")
	t.numeric(1)
	if !found {
		t.Notes = append(t.Notes, "Nothing published for company "+company+".")
		return t
	}
	t.add(trading.NetProfitKey(company), amount(net.Profit))
	t.add(trading.NetLossKey(company), amount(net.Loss))
	return t
}

// Groups lists a group chart.
func Groups(gs []model.LedgerGroup) Table {
	t := newTable("Ledger Groups", "ID", "Name", "Nature", "Type", "Built-in")
	for _, g := range gs {
		builtIn := ""
		if g.BuiltIn() {
			builtIn = "yes"
		}
		t.add(strconv.FormatInt(g.ID, 10), g.Name, string(g.Nature), g.Type, builtIn)
	}
	if len(gs) == 0 {
		t.Notes = append(t.Notes, "No matching groups.")
	}
	return t
}

// PublishedScalars lists every net figure in the store, across companies.
func PublishedScalars(values []trading.Published) Table {
	t := newTable("Published Scalars", "Key", "Value")
	t.numeric(1)
	for _, v := range values {
		t.add(v.Key, v.Value)
	}
	if len(values) == 0 {
		t.Notes = append(t.Notes, "Nothing published.")
	}
	return t
}
