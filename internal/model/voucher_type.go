package model

import "strings"

// VoucherType is the closed set of voucher kinds the engine understands.
type VoucherType string

const (
	VoucherSales      VoucherType = "sales"
	VoucherPurchase   VoucherType = "purchase"
	VoucherPayment    VoucherType = "payment"
	VoucherReceipt    VoucherType = "receipt"
	VoucherContra     VoucherType = "contra"
	VoucherJournal    VoucherType = "journal"
	VoucherDebitNote  VoucherType = "debit_note"
	VoucherCreditNote VoucherType = "credit_note"
	VoucherQuotation  VoucherType = "quotation"
)

// AllVoucherTypes lists every member of VoucherType. Rule tables are tested against it.
var AllVoucherTypes = []VoucherType{
	VoucherSales,
	VoucherPurchase,
	VoucherPayment,
	VoucherReceipt,
	VoucherContra,
	VoucherJournal,
	VoucherDebitNote,
	VoucherCreditNote,
	VoucherQuotation,
}

// ParseVoucherType accepts the spellings seen in feeds ("Debit Note", "debit-note",
// "CREDIT_NOTE", "Sales") and maps them onto the closed set.
func ParseVoucherType(s string) (VoucherType, bool) {
	norm := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ' || r == '-' || r == '_':
			return '_'
		}
		return -1
	}, strings.TrimSpace(s))
	for _, vt := range AllVoucherTypes {
		if norm == string(vt) {
			return vt, true
		}
	}
	return "", false
}

// Label returns the human-readable voucher type name.
func (v VoucherType) Label() string {
	switch v {
	case VoucherSales:
		return "Sales"
	case VoucherPurchase:
		return "Purchase"
	case VoucherPayment:
		return "Payment"
	case VoucherReceipt:
		return "Receipt"
	case VoucherContra:
		return "Contra"
	case VoucherJournal:
		return "Journal"
	case VoucherDebitNote:
		return "Debit Note"
	case VoucherCreditNote:
		return "Credit Note"
	case VoucherQuotation:
		return "Quotation"
	}
	return string(v)
}
