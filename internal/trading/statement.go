// Package trading builds the Trading Account and the Profit & Loss Account.
package trading

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/balance"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// Input is the full snapshot the statement is computed from.
type Input struct {
	Groups     []model.LedgerGroup
	Ledgers    []model.Ledger
	Activity   map[int64]model.Activity
	StockItems []model.StockItem
	Purchases  []model.PurchaseHistoryRow
	Sales      []model.SalesHistoryRow
}

// Options controls optional detail.
type Options struct {
	Items bool
}

// Line is one ledger inside a bucket section.
type Line struct {
	LedgerID int64
	Name     string
	Amount   decimal.Decimal
	Balance  balance.Balance
}

// Section lists the ledgers of one bucket.
type Section struct {
	Bucket Bucket
	Lines  []Line
	Total  decimal.Decimal
}

// ItemLine is one stock item in the inventory breakup.
type ItemLine struct {
	Name          string
	HSNCode       string
	OpeningQty    decimal.Decimal
	OpeningValue  decimal.Decimal
	PurchaseQty   decimal.Decimal
	PurchaseValue decimal.Decimal
	SalesQty      decimal.Decimal
	SalesValue    decimal.Decimal
	ClosingQty    decimal.Decimal
	ClosingValue  decimal.Decimal
}

// Statement is the computed Trading and P&L account.
//
// ClosingStock is the ledger-reported figure. ReconciledClosingStock is the
// item-level opening+purchase-sales figure; StockVariance is their difference.
type Statement struct {
	PurchaseAccounts Section
	SalesAccounts    Section
	DirectExpenses   Section
	IndirectExpenses Section
	IndirectIncome   Section
	StockInHand      Section

	OpeningStock        decimal.Decimal
	PurchaseTotal       decimal.Decimal
	SalesTotal          decimal.Decimal
	DirectExpensesTotal decimal.Decimal
	ClosingStock        decimal.Decimal
	TradingDebit        decimal.Decimal
	TradingCredit       decimal.Decimal
	GrossProfit         decimal.Decimal

	IndirectExpensesTotal decimal.Decimal
	IndirectIncomeTotal   decimal.Decimal
	PLDebit               decimal.Decimal
	PLCredit              decimal.Decimal
	NetProfit             decimal.Decimal

	Inventory              []ItemLine
	ReconciledClosingStock decimal.Decimal
	StockVariance          decimal.Decimal
}

// GrossLoss is the magnitude of a negative gross profit, else zero.
func (s Statement) GrossLoss() decimal.Decimal {
	return decimal.Max(decimal.Zero, s.GrossProfit.Neg())
}

// NetLoss is the magnitude of a negative net profit, else zero.
func (s Statement) NetLoss() decimal.Decimal {
	return decimal.Max(decimal.Zero, s.NetProfit.Neg())
}

// Compute builds the statement. It is a pure function of its input; any part
// of the input may be empty.
func Compute(in Input, opts Options) Statement {
	st := Statement{
		PurchaseAccounts: Section{Bucket: BucketPurchase, Total: decimal.Zero},
		SalesAccounts:    Section{Bucket: BucketSales, Total: decimal.Zero},
		DirectExpenses:   Section{Bucket: BucketDirectExpenses, Total: decimal.Zero},
		IndirectExpenses: Section{Bucket: BucketIndirectExpenses, Total: decimal.Zero},
		IndirectIncome:   Section{Bucket: BucketIndirectIncome, Total: decimal.Zero},
		StockInHand:      Section{Bucket: BucketStockInHand, Total: decimal.Zero},
	}

	groupBucket := make(map[int64]Bucket)
	for _, g := range in.Groups {
		if b, ok := Classify(g); ok {
			groupBucket[g.ID] = b
		}
	}
	// Built-in IDs resolve even when the caller passes no group list.
	for id, b := range bucketByID {
		if _, ok := groupBucket[id]; !ok {
			groupBucket[id] = b
		}
	}

	ledgers := append([]model.Ledger(nil), in.Ledgers...)
	sort.SliceStable(ledgers, func(i, j int) bool { return ledgers[i].Name < ledgers[j].Name })

	closingStock := decimal.Zero
	for _, l := range ledgers {
		bucket, ok := groupBucket[l.GroupID]
		if !ok {
			continue
		}
		b := balance.ForLedger(l, in.Activity[l.ID])
		line := Line{LedgerID: l.ID, Name: l.Name, Balance: b}

		switch bucket {
		case BucketStockInHand:
			line.Amount = l.OpeningBalance
			closingStock = closingStock.Add(b.Closing)
			st.StockInHand.add(line)
		case BucketDirectExpenses:
			line.Amount = b.Activity.Debit
			st.DirectExpenses.add(line)
		case BucketIndirectExpenses:
			line.Amount = b.Activity.Debit
			st.IndirectExpenses.add(line)
		case BucketIndirectIncome:
			line.Amount = b.Activity.Credit
			st.IndirectIncome.add(line)
		case BucketPurchase:
			line.Amount = b.Magnitude
			st.PurchaseAccounts.add(line)
		case BucketSales:
			line.Amount = b.Magnitude
			st.SalesAccounts.add(line)
		}
	}

	st.OpeningStock = st.StockInHand.Total
	st.PurchaseTotal = decimal.Zero
	for _, r := range in.Purchases {
		st.PurchaseTotal = st.PurchaseTotal.Add(r.Value())
	}
	st.SalesTotal = decimal.Zero
	for _, r := range in.Sales {
		st.SalesTotal = st.SalesTotal.Add(r.Value())
	}
	st.DirectExpensesTotal = st.DirectExpenses.Total

	if st.OpeningStock.IsZero() && st.PurchaseTotal.IsZero() && st.SalesTotal.IsZero() {
		st.ClosingStock = decimal.Zero
	} else {
		st.ClosingStock = closingStock
	}

	st.TradingDebit = st.OpeningStock.Add(st.PurchaseTotal).Add(st.DirectExpensesTotal)
	st.TradingCredit = st.SalesTotal.Add(st.ClosingStock)
	st.GrossProfit = st.TradingCredit.Sub(st.TradingDebit)

	st.IndirectExpensesTotal = st.IndirectExpenses.Total
	st.IndirectIncomeTotal = st.IndirectIncome.Total
	st.PLDebit = st.GrossLoss().Add(st.IndirectExpensesTotal)
	st.PLCredit = decimal.Max(decimal.Zero, st.GrossProfit).Add(st.IndirectIncomeTotal)
	st.NetProfit = st.PLCredit.Sub(st.PLDebit)

	items, reconciled := inventory(in)
	st.ReconciledClosingStock = reconciled
	st.StockVariance = st.ClosingStock.Sub(reconciled)
	if opts.Items {
		st.Inventory = items
	}
	return st
}

func (s *Section) add(l Line) {
	s.Lines = append(s.Lines, l)
	s.Total = s.Total.Add(l.Amount)
}

func itemKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// inventory builds the per-item breakup. Items whose closing value is not
// positive are left out of the list and of the reconciled total.
func inventory(in Input) ([]ItemLine, decimal.Decimal) {
	lines := make(map[string]*ItemLine)
	var order []string

	get := func(name, hsn string) *ItemLine {
		key := itemKey(name)
		if l, ok := lines[key]; ok {
			return l
		}
		l := &ItemLine{
			Name:          strings.TrimSpace(name),
			HSNCode:       hsn,
			OpeningQty:    decimal.Zero,
			OpeningValue:  decimal.Zero,
			PurchaseQty:   decimal.Zero,
			PurchaseValue: decimal.Zero,
			SalesQty:      decimal.Zero,
			SalesValue:    decimal.Zero,
		}
		lines[key] = l
		order = append(order, key)
		return l
	}

	for _, item := range in.StockItems {
		l := get(item.Name, item.HSNCode)
		l.OpeningQty = l.OpeningQty.Add(item.OpeningQuantity())
		l.OpeningValue = l.OpeningValue.Add(item.OpeningValue())
	}
	for _, r := range in.Purchases {
		l := get(r.ItemName, "")
		l.PurchaseQty = l.PurchaseQty.Add(r.Quantity)
		l.PurchaseValue = l.PurchaseValue.Add(r.Value())
	}
	for _, r := range in.Sales {
		l := get(r.ItemName, "")
		l.SalesQty = l.SalesQty.Add(r.Quantity.Abs())
		l.SalesValue = l.SalesValue.Add(r.Value())
	}

	var out []ItemLine
	total := decimal.Zero
	for _, key := range order {
		l := lines[key]
		l.ClosingQty = l.OpeningQty.Add(l.PurchaseQty).Sub(l.SalesQty)
		l.ClosingValue = decimal.Max(decimal.Zero, l.OpeningValue.Add(l.PurchaseValue).Sub(l.SalesValue))
		if !l.ClosingValue.IsPositive() {
			continue
		}
		out = append(out, *l)
		total = total.Add(l.ClosingValue)
	}
	return out, total
}
