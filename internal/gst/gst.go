// Package gst splits vouchers into B2B and B2C registers by counterparty GSTIN.
package gst

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// GSTINLength is the length of a well-formed GSTIN.
const GSTINLength = 15

// Segment names one side of the partition.
type Segment string

const (
	B2B Segment = "b2b"
	B2C Segment = "b2c"
)

// Segmenter classifies ledgers by GSTIN. Length is the exact trimmed length a
// GSTIN must have to count as valid; zero means GSTINLength.
type Segmenter struct {
	Length int
}

// Valid reports whether gstin is non-nil, non-blank after trimming and of the
// configured length.
func (s Segmenter) Valid(gstin *string) bool {
	if gstin == nil {
		return false
	}
	trimmed := strings.TrimSpace(*gstin)
	if trimmed == "" {
		return false
	}
	want := s.Length
	if want <= 0 {
		want = GSTINLength
	}
	return utf8.RuneCountInString(trimmed) == want
}

// Classify returns the segment of a single ledger.
func (s Segmenter) Classify(l model.Ledger) Segment {
	if s.Valid(l.GSTIN) {
		return B2B
	}
	return B2C
}

// Split partitions vouchers by their counterparty ledger. Vouchers whose
// counterparty is unknown are B2C. Every input voucher lands in exactly one
// output slice, in input order.
func (s Segmenter) Split(vouchers []model.Voucher, ledgers map[int64]model.Ledger) (b2b, b2c []model.Voucher) {
	for _, v := range vouchers {
		l, ok := ledgers[v.PartyLedgerID]
		if ok && s.Classify(l) == B2B {
			b2b = append(b2b, v)
			continue
		}
		b2c = append(b2c, v)
	}
	return b2b, b2c
}

// Row is one voucher in a GST register.
type Row struct {
	VoucherID     int64
	Date          time.Time
	VoucherNumber string
	VoucherType   model.VoucherType
	Party         string
	GSTIN         string
	TaxableValue  decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	IGST          decimal.Decimal
	Total         decimal.Decimal
}

// Register is a GST register for one segment.
type Register struct {
	Segment Segment
	Rows    []Row
	Totals  Row
}

// BuildRegister lays out the vouchers of one segment as register rows sorted
// by date then voucher number.
func BuildRegister(seg Segment, vouchers []model.Voucher, ledgers map[int64]model.Ledger) Register {
	reg := Register{Segment: seg, Rows: make([]Row, 0, len(vouchers))}
	totals := Row{
		TaxableValue: decimal.Zero,
		CGST:         decimal.Zero,
		SGST:         decimal.Zero,
		IGST:         decimal.Zero,
		Total:        decimal.Zero,
	}

	for _, v := range vouchers {
		row := Row{
			VoucherID:     v.ID,
			Date:          v.Date,
			VoucherNumber: v.Number,
			VoucherType:   v.Type,
			Party:         v.PartyName,
			TaxableValue:  v.TaxableValue(),
			CGST:          v.CGSTAmount,
			SGST:          v.SGSTAmount,
			IGST:          v.IGSTAmount,
			Total:         v.TotalAmount,
		}
		if l, ok := ledgers[v.PartyLedgerID]; ok {
			if row.Party == "" {
				row.Party = l.Name
			}
			if l.GSTIN != nil {
				row.GSTIN = strings.TrimSpace(*l.GSTIN)
			}
		}
		reg.Rows = append(reg.Rows, row)

		totals.TaxableValue = totals.TaxableValue.Add(row.TaxableValue)
		totals.CGST = totals.CGST.Add(row.CGST)
		totals.SGST = totals.SGST.Add(row.SGST)
		totals.IGST = totals.IGST.Add(row.IGST)
		totals.Total = totals.Total.Add(row.Total)
	}

	sort.SliceStable(reg.Rows, func(i, j int) bool {
		a, b := reg.Rows[i], reg.Rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.VoucherNumber < b.VoucherNumber
	})
	reg.Totals = totals
	return reg
}
