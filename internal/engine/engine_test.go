package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerview/internal/columnar"
	"github.com/cleared-dev/ledgerview/internal/groups"
	"github.com/cleared-dev/ledgerview/internal/gst"
	"github.com/cleared-dev/ledgerview/internal/model"
	"github.com/cleared-dev/ledgerview/internal/snapshot"
	"github.com/cleared-dev/ledgerview/internal/statement"
	"github.com/cleared-dev/ledgerview/internal/store"
	"github.com/cleared-dev/ledgerview/internal/trading"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr(s string) *string { return &s }

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func fixture() *snapshot.Snapshot {
	created := date(2025, time.June, 1)
	return &snapshot.Snapshot{
		Groups: []model.LedgerGroup{{ID: 20, Name: "Stock in Hand", Nature: model.NatureAssets}},
		Ledgers: []model.Ledger{
			{ID: 1, Name: "Acme Traders", GroupID: groups.CurrentAssets, BalanceType: model.Debit,
				OpeningBalance: decimal.Zero, GSTIN: ptr("27AAPFU0939F1ZV"), CreatedAt: &created},
			{ID: 2, Name: "Walk-in", GroupID: groups.CurrentAssets, BalanceType: model.Debit, OpeningBalance: decimal.Zero},
			{ID: 3, Name: "Sales 18%", GroupID: groups.SalesAccounts, BalanceType: model.Credit, OpeningBalance: decimal.Zero},
			{ID: 4, Name: "Stock", GroupID: 20, BalanceType: model.Debit, OpeningBalance: d("500")},
			{ID: 5, Name: "Rent", GroupID: groups.IndirectExpenses, BalanceType: model.Debit, OpeningBalance: decimal.Zero},
		},
		Vouchers: []model.Voucher{
			{ID: 1, Type: model.VoucherSales, Date: date(2025, time.June, 2), Number: "S-1", PartyLedgerID: 1,
				TotalAmount: d("118"), CGSTAmount: d("9"), SGSTAmount: d("9"),
				Postings: []model.Posting{
					{LedgerID: 1, LedgerName: "Acme Traders", EntryType: model.Debit, Amount: d("118")},
					{LedgerID: 3, LedgerName: "Sales 18%", EntryType: model.Credit, Amount: d("118")},
				},
				Items: []model.LineItem{{ItemName: "Widget", Quantity: d("2"), Rate: d("50"), Amount: d("100"),
					SalesLedger: "Sales 18%", CGSTLedger: "CGST", SGSTLedger: "SGST"}}},
			{ID: 2, Type: model.VoucherSales, Date: date(2025, time.June, 3), Number: "S-2", PartyLedgerID: 2,
				TotalAmount: d("50"),
				Postings: []model.Posting{
					{LedgerID: 2, LedgerName: "Walk-in", EntryType: model.Debit, Amount: d("50")},
					{LedgerID: 3, LedgerName: "Sales 18%", EntryType: model.Credit, Amount: d("50")},
				}},
			{ID: 3, Type: model.VoucherPayment, Date: date(2025, time.June, 4), Number: "P-1",
				Postings: []model.Posting{
					{LedgerID: 5, LedgerName: "Rent", EntryType: model.Debit, Amount: d("30")},
					{LedgerID: 2, LedgerName: "Walk-in", EntryType: model.Credit, Amount: d("30")},
				}},
		},
		Activity: map[int64]model.Activity{
			1: {Debit: d("118"), Credit: decimal.Zero},
			2: {Debit: d("50"), Credit: d("30")},
			3: {Debit: decimal.Zero, Credit: d("168")},
			5: {Debit: d("30"), Credit: decimal.Zero},
		},
		StockItems: []model.StockItem{{ID: 1, Name: "Widget", Batches: []model.Batch{{Quantity: d("10"), OpeningRate: d("50")}}}},
		Sales:      []model.SalesHistoryRow{{ItemName: "Widget", Quantity: d("-2"), Rate: d("50")}},
	}
}

func newEngine(t *testing.T, tenant model.Tenant) (*Engine, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	e := New(Options{Tenant: tenant}, trading.NewPublisher(mem, nil), nil)
	e.Update(fixture())
	return e, mem
}

func TestEngine_DayBook(t *testing.T) {
	e, _ := newEngine(t, model.Tenant{CompanyID: "1"})

	db := e.DayBook()
	require.Len(t, db.Vouchers, 3)
	assert.Equal(t, "P-1", db.Vouchers[0].Number)
	assert.True(t, db.Vouchers[0].TotalCredit.IsZero())
	assert.Len(t, db.Register, 6)
	assert.True(t, db.Totals.Debit.Equal(d("198")))
}

func TestEngine_VoucherDetail(t *testing.T) {
	e, _ := newEngine(t, model.Tenant{})

	det, err := e.VoucherDetail(1)
	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", det.Party.LedgerName)

	_, err = e.VoucherDetail(99)
	require.ErrorIs(t, err, ErrVoucherNotFound)
}

func TestEngine_Statement(t *testing.T) {
	e, _ := newEngine(t, model.Tenant{})

	st, err := e.Statement(2, statement.Range{})
	require.NoError(t, err)
	require.Len(t, st.Lines, 2)
	assert.True(t, st.Closing.Closing.Equal(d("20")))

	_, err = e.Statement(42, statement.Range{})
	require.ErrorIs(t, err, ErrLedgerNotFound)
}

func TestEngine_GroupViews(t *testing.T) {
	e, _ := newEngine(t, model.Tenant{})

	sum, err := e.Group(groups.CurrentAssets, groups.AllColumns())
	require.NoError(t, err)
	require.Len(t, sum.Rows, 2)
	assert.True(t, sum.Totals.Debit.Equal(d("168")))

	m, err := e.Monthly(groups.CurrentAssets)
	require.NoError(t, err)
	act := m.LedgerActivity(1)
	assert.True(t, act.Debit.Equal(d("118")))

	// Acme was created in June, fiscal index 2.
	p, err := e.Particular(groups.CurrentAssets, 2)
	require.NoError(t, err)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, "Acme Traders", p.Rows[0].Name)

	_, err = e.Group(77, groups.AllColumns())
	require.ErrorIs(t, err, ErrGroupNotFound)
	_, err = e.Particular(groups.CurrentAssets, 12)
	require.Error(t, err)
}

func TestEngine_ParametersDoNotShareResults(t *testing.T) {
	e, _ := newEngine(t, model.Tenant{CompanyID: "acme"})
	opening := groups.ParseColumns("opening")
	closing := groups.ParseColumns("closing")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		cols := opening
		if i%2 == 1 {
			cols = closing
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			sum, err := e.Group(groups.CurrentAssets, cols)
			assert.NoError(t, err)
			assert.Equal(t, cols, sum.Columns)
		}()
	}
	wg.Wait()

	st, err := e.Trading(context.Background(), trading.Options{Items: true})
	require.NoError(t, err)
	assert.NotEmpty(t, st.Inventory)
	st, err = e.Trading(context.Background(), trading.Options{})
	require.NoError(t, err)
	assert.Empty(t, st.Inventory)

	full, err := e.Statement(2, statement.Range{})
	require.NoError(t, err)
	late, err := e.Statement(2, statement.Range{From: date(2025, time.June, 4)})
	require.NoError(t, err)
	assert.Len(t, full.Lines, 2)
	assert.Len(t, late.Lines, 1)
}

func TestEngine_Columnar(t *testing.T) {
	e, _ := newEngine(t, model.Tenant{})

	tbl := e.Columnar(columnar.Sales)
	assert.Equal(t, []string{"Sales 18%", "CGST", "SGST"}, tbl.Headers())
	require.Len(t, tbl.Rows, 2)

	again := e.Columnar(columnar.Sales)
	assert.Equal(t, tbl.Headers(), again.Headers())

	assert.Empty(t, e.Columnar(columnar.Purchase).Rows)
}

func TestEngine_GST(t *testing.T) {
	e, _ := newEngine(t, model.Tenant{})

	b2b := e.GST(gst.B2B, model.VoucherSales)
	b2c := e.GST(gst.B2C, model.VoucherSales)
	require.Len(t, b2b.Rows, 1)
	require.Len(t, b2c.Rows, 1)
	assert.Equal(t, "S-1", b2b.Rows[0].VoucherNumber)
	assert.Equal(t, "S-2", b2c.Rows[0].VoucherNumber)
}

func TestEngine_TradingPublishes(t *testing.T) {
	e, mem := newEngine(t, model.Tenant{CompanyID: "acme"})
	ctx := context.Background()

	st, err := e.Trading(ctx, trading.Options{})
	require.NoError(t, err)

	// opening 500, sales 100, closing 500, rent 30
	assert.True(t, st.GrossProfit.Equal(d("100")), "gross %s", st.GrossProfit)
	assert.True(t, st.NetProfit.Equal(d("70")), "net %s", st.NetProfit)

	v, ok, err := mem.Get(ctx, trading.NetProfitKey("acme"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "70.00", v)
}

func TestEngine_TradingMissingIdentity(t *testing.T) {
	e, mem := newEngine(t, model.Tenant{})

	st, err := e.Trading(context.Background(), trading.Options{})
	require.ErrorIs(t, err, model.ErrMissingIdentity)
	assert.True(t, st.NetProfit.Equal(d("70")), "statement is still computed")

	keys, err := mem.Keys(context.Background(), "NET_")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestEngine_UpdateRecomputes(t *testing.T) {
	e, _ := newEngine(t, model.Tenant{})
	require.Len(t, e.DayBook().Vouchers, 3)

	s := fixture()
	s.Vouchers = s.Vouchers[:1]
	e.Update(s)
	assert.Len(t, e.DayBook().Vouchers, 1)

	e.Update(nil)
	assert.Empty(t, e.DayBook().Vouchers)
}

func TestEngine_Check(t *testing.T) {
	e, _ := newEngine(t, model.Tenant{})
	assert.Empty(t, e.Check())

	s := fixture()
	s.Ledgers[0].GroupID = 404
	e.Update(s)
	errs := e.Check()
	require.Len(t, errs, 1)
	assert.Equal(t, 4, errs[0].Rule)
}
