package groups

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerview/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func datep(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleInput() Input {
	grp := model.LedgerGroup{ID: CurrentAssets, Name: "Current Assets", Nature: model.NatureAssets}
	return Input{
		Group: grp,
		Ledgers: []model.Ledger{
			{ID: 1, Name: "Cash", GroupID: CurrentAssets, BalanceType: model.Debit, OpeningBalance: dec("1000"), CreatedAt: datep(2025, time.June, 3)},
			{ID: 2, Name: "Bank", GroupID: CurrentAssets, BalanceType: model.Debit, OpeningBalance: dec("500")},
			{ID: 3, Name: "Advance from X", GroupID: CurrentAssets, BalanceType: model.Credit, OpeningBalance: dec("200"), CreatedAt: datep(2025, time.April, 1)},
			{ID: 4, Name: "Elsewhere", GroupID: FixedAssets, BalanceType: model.Debit, OpeningBalance: dec("9999")},
		},
		Activity: map[int64]model.Activity{
			1: {Debit: dec("200"), Credit: dec("150")},
			2: {Debit: dec("100"), Credit: dec("50")},
			3: {Debit: dec("0"), Credit: dec("100")},
		},
	}
}

func TestConsolidated(t *testing.T) {
	s := Consolidated(sampleInput(), AllColumns())
	require.Len(t, s.Rows, 3)
	assert.Equal(t, []string{"Advance from X", "Bank", "Cash"}, []string{s.Rows[0].Name, s.Rows[1].Name, s.Rows[2].Name})

	assert.True(t, s.Rows[2].Balance.Closing.Equal(dec("1050")))
	assert.True(t, s.Rows[0].Balance.Closing.Equal(dec("300")))
	assert.Equal(t, model.Credit, s.Rows[0].Balance.DisplaySide)

	assert.True(t, s.Totals.Debit.Equal(dec("300")))
	assert.True(t, s.Totals.Credit.Equal(dec("300")))
	assert.True(t, s.Totals.OpeningNet.Equal(dec("1300")), "1000 + 500 - 200")
	assert.True(t, s.Totals.ClosingNet.Equal(dec("1300")), "1050 + 550 - 300")

	side, amt := s.Totals.Closing()
	assert.Equal(t, model.Debit, side)
	assert.True(t, amt.Equal(dec("1300")))
}

func TestColumnTogglesDoNotAffectTotals(t *testing.T) {
	all := Consolidated(sampleInput(), AllColumns())
	some := Consolidated(sampleInput(), ParseColumns("debit"))
	assert.False(t, some.Columns.Opening)
	assert.True(t, some.Columns.Debit)
	assert.True(t, all.Totals.OpeningNet.Equal(some.Totals.OpeningNet))
	assert.True(t, all.Totals.Debit.Equal(some.Totals.Debit))
	assert.True(t, all.Totals.Credit.Equal(some.Totals.Credit))
	assert.True(t, all.Totals.ClosingNet.Equal(some.Totals.ClosingNet))
}

func TestParseColumns(t *testing.T) {
	assert.Equal(t, AllColumns(), ParseColumns(""))
	assert.Equal(t, Columns{Opening: true, Closing: true}, ParseColumns("Opening, closing, bogus"))
}

func TestEmptyGroup(t *testing.T) {
	s := Consolidated(Input{Group: model.LedgerGroup{ID: 42}}, AllColumns())
	assert.Empty(t, s.Rows)
	assert.True(t, s.Totals.ClosingNet.IsZero())
}
