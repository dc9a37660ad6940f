package statement

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerview/internal/model"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func cashLedger() model.Ledger {
	return model.Ledger{ID: 1, Name: "Cash", BalanceType: model.Debit, OpeningBalance: d("100")}
}

func vouchers() []model.Voucher {
	return []model.Voucher{
		{ID: 3, Type: model.VoucherPayment, Date: date("2025-05-10"), Number: "P-1", Narration: "rent",
			Postings: []model.Posting{
				{LedgerID: 5, LedgerName: "Rent", EntryType: model.Debit, Amount: d("300")},
				{LedgerID: 1, LedgerName: "Cash", EntryType: model.Credit, Amount: d("300")},
			}},
		{ID: 2, Type: model.VoucherReceipt, Date: date("2025-04-20"), Number: "R-1", PartyName: "Acme", PartyLedgerID: 7,
			Postings: []model.Posting{
				{LedgerName: "cash", EntryType: model.Debit, Amount: d("250")},
				{LedgerID: 7, LedgerName: "Acme", EntryType: model.Credit, Amount: d("250")},
			}},
		{ID: 4, Type: model.VoucherJournal, Date: date("2025-06-01"), Number: "J-1",
			Postings: []model.Posting{
				{LedgerID: 8, LedgerName: "Bank", EntryType: model.Debit, Amount: d("10")},
				{LedgerID: 9, LedgerName: "Other", EntryType: model.Credit, Amount: d("10")},
			}},
	}
}

func TestBuild_RunningBalance(t *testing.T) {
	st := Build(cashLedger(), vouchers(), Range{})

	assert.True(t, st.Opening.Closing.Equal(d("100")))
	require.Len(t, st.Lines, 2)

	assert.Equal(t, "R-1", st.Lines[0].VoucherNumber)
	assert.Equal(t, "Acme", st.Lines[0].Particulars)
	assert.True(t, st.Lines[0].Running.Closing.Equal(d("350")))

	assert.Equal(t, "P-1", st.Lines[1].VoucherNumber)
	assert.Equal(t, "Rent", st.Lines[1].Particulars)
	assert.Equal(t, "rent", st.Lines[1].Narration)
	assert.True(t, st.Lines[1].Running.Closing.Equal(d("50")))

	assert.True(t, st.Closing.Closing.Equal(d("50")))
	assert.Equal(t, model.Debit, st.Closing.DisplaySide)

	tot := st.Totals()
	assert.True(t, tot.Debit.Equal(d("250")))
	assert.True(t, tot.Credit.Equal(d("300")))
}

func TestBuild_FlipsSide(t *testing.T) {
	l := cashLedger()
	l.OpeningBalance = decimal.Zero
	st := Build(l, vouchers(), Range{From: date("2025-05-01")})

	require.Len(t, st.Lines, 1)
	// receipt of 250 is brought forward
	assert.True(t, st.Opening.Closing.Equal(d("250")))
	assert.True(t, st.Closing.Closing.Equal(d("-50")))
	assert.Equal(t, model.Credit, st.Closing.DisplaySide)
	assert.True(t, st.Closing.Magnitude.Equal(d("50")))
}

func TestBuild_RangeEnd(t *testing.T) {
	st := Build(cashLedger(), vouchers(), Range{To: date("2025-04-30")})
	require.Len(t, st.Lines, 1)
	assert.True(t, st.Closing.Closing.Equal(d("350")))
}

func TestBuild_RangeEndIncludesWholeDay(t *testing.T) {
	vs := vouchers()
	vs[0].Date = time.Date(2025, 5, 31, 15, 30, 0, 0, time.UTC)
	vs = append(vs, model.Voucher{ID: 5, Type: model.VoucherReceipt, Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Number: "R-2",
		Postings: []model.Posting{
			{LedgerID: 1, LedgerName: "Cash", EntryType: model.Debit, Amount: d("40")},
			{LedgerID: 7, LedgerName: "Acme", EntryType: model.Credit, Amount: d("40")},
		}})

	st := Build(cashLedger(), vs, Range{To: date("2025-05-31")})
	require.Len(t, st.Lines, 2)
	assert.Equal(t, "P-1", st.Lines[1].VoucherNumber, "afternoon voucher on the last day is kept")
	assert.True(t, st.Closing.Closing.Equal(d("50")))

	st = Build(cashLedger(), vs, Range{From: date("2025-05-31"), To: date("2025-05-31")})
	require.Len(t, st.Lines, 1)
	assert.Equal(t, "P-1", st.Lines[0].VoucherNumber)
}

func TestBuild_NoPostings(t *testing.T) {
	l := model.Ledger{ID: 99, Name: "Idle", BalanceType: model.Credit, OpeningBalance: d("5")}
	st := Build(l, vouchers(), Range{})

	assert.Empty(t, st.Lines)
	assert.True(t, st.Opening.Closing.Equal(d("5")))
	assert.True(t, st.Closing.Closing.Equal(d("5")))
	assert.Equal(t, model.Credit, st.Closing.DisplaySide)
}

func TestMatches(t *testing.T) {
	l := cashLedger()
	assert.True(t, Matches(l, model.Posting{LedgerID: 1}))
	assert.False(t, Matches(l, model.Posting{LedgerID: 2, LedgerName: "Cash"}))
	assert.True(t, Matches(l, model.Posting{LedgerName: " CASH "}))
	assert.False(t, Matches(l, model.Posting{}))
}
