package columnar

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerview/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(ledger string, qty, rate string) model.LineItem {
	q, r := dec(qty), dec(rate)
	return model.LineItem{ItemName: "item", SalesLedger: ledger, Quantity: q, Rate: r, Amount: q.Mul(r)}
}

func TestMixedRateSentinel(t *testing.T) {
	tests := []struct {
		name  string
		items []model.LineItem
		want  string
	}{
		{"uniform", []model.LineItem{item("Sales", "1", "10"), item("Sales", "1", "10"), item("Sales", "1", "10")}, "10"},
		{"mixed", []model.LineItem{item("Sales", "1", "10"), item("Sales", "1", "10"), item("Sales", "1", "12")}, "0"},
		{"none", nil, "0"},
	}
	for _, tt := range tests {
		tbl := Build(Sales, []model.Voucher{{ID: 1, Items: tt.items}}, nil)
		require.Len(t, tbl.Rows, 1)
		assert.True(t, dec(tt.want).Equal(tbl.Rows[0].Rate), "%s: rate %s", tt.name, tbl.Rows[0].Rate)
	}
}

func TestColumnsSortedAndNotDeduplicated(t *testing.T) {
	vouchers := []model.Voucher{
		{ID: 1, Items: []model.LineItem{
			{SalesLedger: "Sales 18%", CGSTLedger: "Output CGST", SGSTLedger: "Output SGST", Amount: dec("100")},
			{SalesLedger: "Sales 5%", Amount: dec("50")},
		}},
		{ID: 2, Items: []model.LineItem{
			{SalesLedger: "Exempt Sales", IGSTLedger: "Output IGST", TDSLedger: "Exempt Sales", Amount: dec("10")},
		}},
	}
	tbl := Build(Sales, vouchers, nil)
	assert.Equal(t, []string{"Exempt Sales", "Sales 18%", "Sales 5%"}, tbl.PrimaryColumns)
	assert.Equal(t, []string{"Exempt Sales", "Output CGST", "Output IGST", "Output SGST"}, tbl.TaxColumns)
	assert.Equal(t, []string{"Exempt Sales", "Sales 18%", "Sales 5%", "Exempt Sales", "Output CGST", "Output IGST", "Output SGST"}, tbl.Headers())
}

func TestPrimaryAmountsAccumulate(t *testing.T) {
	v := model.Voucher{ID: 1, TotalAmount: dec("350"), Items: []model.LineItem{
		item("Sales A", "2", "50"),
		item("Sales B", "1", "100"),
		item("Sales A", "3", "50"),
	}}
	tbl := Build(Sales, []model.Voucher{v}, nil)
	row := tbl.Rows[0]
	assert.True(t, row.Primary["Sales A"].Equal(dec("250")))
	assert.True(t, row.Primary["Sales B"].Equal(dec("100")))
	assert.True(t, row.Quantity.Equal(dec("6")))
	assert.True(t, row.Rate.IsZero())
}

func TestTaxGoesToFirstLedgerOnly(t *testing.T) {
	v := model.Voucher{
		ID:         1,
		CGSTAmount: dec("18"),
		SGSTAmount: dec("18"),
		Items: []model.LineItem{
			{SalesLedger: "Sales", CGSTLedger: "CGST 9%", SGSTLedger: "SGST 9%"},
			{SalesLedger: "Sales", CGSTLedger: "CGST 2.5%", SGSTLedger: "SGST 2.5%"},
			{SalesLedger: "Sales", CGSTLedger: "CGST 9%"},
		},
	}
	tbl := Build(Sales, []model.Voucher{v}, nil)
	row := tbl.Rows[0]
	assert.True(t, row.Tax["CGST 9%"].Equal(dec("18")))
	assert.True(t, row.Tax["SGST 9%"].Equal(dec("18")))
	assert.True(t, row.Tax["CGST 2.5%"].IsZero())
	assert.True(t, row.Tax["SGST 2.5%"].IsZero())
	assert.Contains(t, tbl.TaxColumns, "CGST 2.5%")
}

func TestPurchaseDirectionAndPartyLookup(t *testing.T) {
	ledgers := map[int64]model.Ledger{7: {ID: 7, Name: "Supplier Co"}}
	vouchers := []model.Voucher{
		{ID: 1, PartyLedgerID: 7, Items: []model.LineItem{{SalesLedger: "ignored", PurchaseLedger: "Purchase 12%", Amount: dec("40")}}},
		{ID: 2, PartyName: "Named Party", PartyLedgerID: 7},
		{ID: 3, PartyLedgerID: 8},
	}
	tbl := Build(Purchase, vouchers, ledgers)
	assert.Equal(t, []string{"Purchase 12%"}, tbl.PrimaryColumns)
	assert.Equal(t, "Supplier Co", tbl.Rows[0].Party)
	assert.Equal(t, "Named Party", tbl.Rows[1].Party)
	assert.Equal(t, "", tbl.Rows[2].Party)
	assert.Equal(t, model.VoucherPurchase, Purchase.VoucherType())
}

func TestFooter(t *testing.T) {
	vouchers := []model.Voucher{
		{ID: 1, TotalAmount: dec("20"), CGSTAmount: dec("1"), Items: []model.LineItem{
			{SalesLedger: "S", CGSTLedger: "C", Quantity: dec("2"), Rate: dec("10"), Amount: dec("20")},
		}},
		{ID: 2, TotalAmount: dec("36"), CGSTAmount: dec("2"), Items: []model.LineItem{
			{SalesLedger: "S", CGSTLedger: "C", Quantity: dec("3"), Rate: dec("12"), Amount: dec("36")},
		}},
	}
	tbl := Build(Sales, vouchers, nil)
	assert.True(t, tbl.Footer.Quantity.Equal(dec("5")))
	assert.True(t, tbl.Footer.Total.Equal(dec("56")))
	assert.True(t, tbl.Footer.Rate.Equal(dec("22")), "rates are summed as-is")
	assert.True(t, tbl.Footer.Primary["S"].Equal(dec("56")))
	assert.True(t, tbl.Footer.Tax["C"].Equal(dec("3")))
	assert.True(t, tbl.FooterCell(0).Equal(dec("56")))
	assert.True(t, tbl.FooterCell(1).Equal(dec("3")))
	assert.True(t, tbl.Cell(tbl.Rows[1], 1).Equal(dec("2")))
}

func TestBuildIsIdempotent(t *testing.T) {
	vouchers := []model.Voucher{
		{ID: 1, Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), TotalAmount: dec("10"), Items: []model.LineItem{{SalesLedger: "Z", Amount: dec("10")}}},
		{ID: 2, TotalAmount: dec("5"), Items: []model.LineItem{{SalesLedger: "A", IGSTLedger: "I", Amount: dec("5")}}},
	}
	first := Build(Sales, vouchers, nil)
	second := Build(Sales, vouchers, nil)
	assert.Equal(t, first.Headers(), second.Headers())
	require.Len(t, second.Rows, len(first.Rows))
	for i := range first.Rows {
		assert.True(t, first.Rows[i].Total.Equal(second.Rows[i].Total))
	}
}
