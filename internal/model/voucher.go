package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Posting is one debit or credit line inside a voucher. The ledger may be
// referenced by ID, by name, or both. Party is set by feeds that mark the
// counterparty line themselves.
type Posting struct {
	ID         int64
	VoucherID  int64
	LedgerID   int64
	LedgerName string
	EntryType  EntryType
	Amount     decimal.Decimal
	Narration  string
	Party      bool
}

// TaxKind names one of the per-voucher aggregate tax heads.
type TaxKind string

const (
	TaxCGST TaxKind = "cgst"
	TaxSGST TaxKind = "sgst"
	TaxIGST TaxKind = "igst"
	TaxTDS  TaxKind = "tds"
)

// TaxKinds is the fixed order in which tax heads are processed.
var TaxKinds = []TaxKind{TaxCGST, TaxSGST, TaxIGST, TaxTDS}

// LineItem is one stock line on a sales or purchase voucher.
type LineItem struct {
	ItemName       string
	HSNCode        string
	Quantity       decimal.Decimal
	Rate           decimal.Decimal
	Amount         decimal.Decimal
	SalesLedger    string
	PurchaseLedger string
	CGSTLedger     string
	SGSTLedger     string
	IGSTLedger     string
	TDSLedger      string
}

// TaxLedger returns the ledger name the item references for a tax head.
func (li LineItem) TaxLedger(kind TaxKind) string {
	switch kind {
	case TaxCGST:
		return li.CGSTLedger
	case TaxSGST:
		return li.SGSTLedger
	case TaxIGST:
		return li.IGSTLedger
	case TaxTDS:
		return li.TDSLedger
	}
	return ""
}

// Voucher is one business transaction document. Tax amounts are stored once
// per voucher, not per item.
type Voucher struct {
	ID            int64
	Type          VoucherType
	Date          time.Time
	Number        string
	Narration     string
	Reference     string
	PartyName     string
	PartyLedgerID int64
	TotalAmount   decimal.Decimal
	CGSTAmount    decimal.Decimal
	SGSTAmount    decimal.Decimal
	IGSTAmount    decimal.Decimal
	TDSAmount     decimal.Decimal
	Postings      []Posting
	Items         []LineItem
}

// TaxAmount returns the voucher's aggregate amount for a tax head.
func (v Voucher) TaxAmount(kind TaxKind) decimal.Decimal {
	switch kind {
	case TaxCGST:
		return v.CGSTAmount
	case TaxSGST:
		return v.SGSTAmount
	case TaxIGST:
		return v.IGSTAmount
	case TaxTDS:
		return v.TDSAmount
	}
	return decimal.Zero
}

// TaxableValue is the total less all aggregate taxes.
func (v Voucher) TaxableValue() decimal.Decimal {
	return v.TotalAmount.Sub(v.CGSTAmount).Sub(v.SGSTAmount).Sub(v.IGSTAmount)
}
