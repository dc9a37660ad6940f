// Package classify holds the two voucher-type rule tables used by the reports.
//
// PostingInclusion gates which postings are summed into Day Book totals;
// SummaryDisplay decides which side of a voucher's totals is shown as its
// single net amount.
package classify

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// Sides is a set of posting sides.
type Sides uint8

const (
	SideDebit Sides = 1 << iota
	SideCredit

	SideBoth = SideDebit | SideCredit
)

// Has reports whether the set contains the given entry side.
func (s Sides) Has(e model.EntryType) bool {
	switch e {
	case model.Debit:
		return s&SideDebit != 0
	case model.Credit:
		return s&SideCredit != 0
	}
	return false
}

// PostingInclusion is the Day Book gate: which posting sides count toward a
// voucher's totals and entry count.
var PostingInclusion = map[model.VoucherType]Sides{
	model.VoucherSales:      SideBoth,
	model.VoucherPurchase:   SideBoth,
	model.VoucherPayment:    SideDebit,
	model.VoucherReceipt:    SideCredit,
	model.VoucherContra:     SideDebit,
	model.VoucherJournal:    SideDebit,
	model.VoucherDebitNote:  SideBoth,
	model.VoucherCreditNote: SideBoth,
	model.VoucherQuotation:  SideBoth,
}

// SummaryDisplay decides which totals survive when a voucher is shown as one
// net amount.
var SummaryDisplay = map[model.VoucherType]Sides{
	model.VoucherSales:      SideDebit,
	model.VoucherPurchase:   SideCredit,
	model.VoucherPayment:    SideBoth,
	model.VoucherReceipt:    SideBoth,
	model.VoucherContra:     SideBoth,
	model.VoucherJournal:    SideBoth,
	model.VoucherDebitNote:  SideDebit,
	model.VoucherCreditNote: SideCredit,
	model.VoucherQuotation:  SideBoth,
}

// IncludePosting reports whether a posting of the given side counts toward
// the voucher's Day Book totals. Types missing from the table count both sides.
func IncludePosting(vt model.VoucherType, e model.EntryType) bool {
	sides, ok := PostingInclusion[vt]
	if !ok {
		sides = SideBoth
	}
	return sides.Has(e)
}

// Amounts is a debit/credit pair where one side may have been forced to zero.
type Amounts struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Summary applies the summary-display rule to a voucher's totals.
func Summary(vt model.VoucherType, debit, credit decimal.Decimal) Amounts {
	sides, ok := SummaryDisplay[vt]
	if !ok {
		sides = SideBoth
	}
	out := Amounts{Debit: decimal.Zero, Credit: decimal.Zero}
	if sides.Has(model.Debit) {
		out.Debit = debit
	}
	if sides.Has(model.Credit) {
		out.Credit = credit
	}
	return out
}
