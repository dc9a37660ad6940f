package classify

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerview/internal/model"
)

func TestTablesCoverEveryVoucherType(t *testing.T) {
	for _, vt := range model.AllVoucherTypes {
		_, ok := PostingInclusion[vt]
		assert.True(t, ok, "PostingInclusion missing %q", vt)
		_, ok = SummaryDisplay[vt]
		assert.True(t, ok, "SummaryDisplay missing %q", vt)
	}
	require.Len(t, PostingInclusion, len(model.AllVoucherTypes))
	require.Len(t, SummaryDisplay, len(model.AllVoucherTypes))
}

func TestIncludePosting(t *testing.T) {
	tests := []struct {
		vt     model.VoucherType
		debit  bool
		credit bool
	}{
		{model.VoucherPayment, true, false},
		{model.VoucherReceipt, false, true},
		{model.VoucherContra, true, false},
		{model.VoucherJournal, true, false},
		{model.VoucherSales, true, true},
		{model.VoucherPurchase, true, true},
		{model.VoucherDebitNote, true, true},
		{model.VoucherCreditNote, true, true},
		{model.VoucherQuotation, true, true},
		{model.VoucherType("unknown"), true, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.debit, IncludePosting(tt.vt, model.Debit), "%s debit", tt.vt)
		assert.Equal(t, tt.credit, IncludePosting(tt.vt, model.Credit), "%s credit", tt.vt)
	}
}

func TestSummary(t *testing.T) {
	d := decimal.NewFromInt(100)
	c := decimal.NewFromInt(80)

	tests := []struct {
		vt     model.VoucherType
		debit  decimal.Decimal
		credit decimal.Decimal
	}{
		{model.VoucherPurchase, decimal.Zero, c},
		{model.VoucherSales, d, decimal.Zero},
		{model.VoucherDebitNote, d, decimal.Zero},
		{model.VoucherCreditNote, decimal.Zero, c},
		{model.VoucherPayment, d, c},
		{model.VoucherJournal, d, c},
	}
	for _, tt := range tests {
		got := Summary(tt.vt, d, c)
		assert.True(t, tt.debit.Equal(got.Debit), "%s debit got %s", tt.vt, got.Debit)
		assert.True(t, tt.credit.Equal(got.Credit), "%s credit got %s", tt.vt, got.Credit)
	}
}

func TestTablesAreIndependent(t *testing.T) {
	// Payment counts only debit postings, yet its summary shows both totals.
	assert.False(t, IncludePosting(model.VoucherPayment, model.Credit))
	got := Summary(model.VoucherPayment, decimal.NewFromInt(5), decimal.NewFromInt(7))
	assert.True(t, got.Credit.Equal(decimal.NewFromInt(7)))
}
