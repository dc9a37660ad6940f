package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/cleared-dev/ledgerview/internal/balance"
	"github.com/cleared-dev/ledgerview/internal/groups"
	"github.com/cleared-dev/ledgerview/internal/gst"
	"github.com/cleared-dev/ledgerview/internal/model"
	"github.com/cleared-dev/ledgerview/internal/snapshot"
	"github.com/cleared-dev/ledgerview/internal/trading"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleRegister() gst.Register {
	return gst.Register{
		Segment: gst.B2B,
		Rows: []gst.Row{{
			Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), VoucherNumber: "S-1", Party: "Acme, Ltd",
			GSTIN: "27AAPFU0939F1ZV", TaxableValue: d("1000"), CGST: d("90"), SGST: d("90"), IGST: decimal.Zero, Total: d("1180"),
		}},
		Totals: gst.Row{TaxableValue: d("1000"), CGST: d("90"), SGST: d("90"), IGST: decimal.Zero, Total: d("1180")},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, GSTRegister(sampleRegister())))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "GSTIN", records[0][3])
	assert.Equal(t, "Acme, Ltd", records[1][2])
	assert.Equal(t, "1180.00", records[1][8])
	assert.Equal(t, "Total", records[2][0])
}

func TestWriteJSON(t *testing.T) {
	tbl := newTable("Columnar", "Voucher No", "Sales 18%", "CGST.9")
	tbl.add("S-1", "100.00", "9.00")
	tbl.Footer = []string{"Total", "100.00", "9.00"}
	tbl.Notes = []string{"one voucher"}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, tbl, Validation(nil)))

	out := buf.String()
	require.True(t, gjson.Valid(out), out)
	doc := gjson.Parse(out)
	assert.Equal(t, int64(2), doc.Get("#").Int())
	assert.Equal(t, "Columnar", doc.Get("0.title").String())
	assert.Equal(t, "9.00", doc.Get(`0.rows.0.CGST\.9`).String())
	assert.Equal(t, "100.00", doc.Get(`0.rows.0.Sales 18\%`).String())
	assert.Equal(t, "Total", doc.Get(`0.footer.Voucher No`).String())
	assert.Equal(t, "one voucher", doc.Get("0.notes.0").String())
	assert.Equal(t, int64(0), doc.Get("1.rows.#").Int())

	// header order is kept
	keys := []string{}
	doc.Get("0.rows.0").ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	assert.Equal(t, []string{"Voucher No", "Sales 18%", "CGST.9"}, keys)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, GSTRegister(sampleRegister())))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "B2B Register\n\n"))
	assert.Contains(t, out, "1,180.00")
	assert.Contains(t, out, "27AAPFU0939F1ZV")
}

func TestGroup(t *testing.T) {
	assert.Equal(t, "1,234,567.50", group("1234567.50"))
	assert.Equal(t, "-12,000.00 Cr", group("-12000.00 Cr"))
	assert.Equal(t, "950.00 Dr", group("950.00 Dr"))
	assert.Equal(t, "", group(""))
	assert.Equal(t, "n/a", group("n/a"))
}

func TestGroupSummary_Columns(t *testing.T) {
	b := balance.Resolve(d("100"), model.Debit, model.Activity{Debit: d("50"), Credit: d("30")})
	s := groups.Summary{
		Group:   model.LedgerGroup{Name: "Current Assets"},
		Columns: groups.ParseColumns("opening,closing"),
		Rows:    []groups.LedgerRow{{Name: "Cash", Balance: b}},
		Totals:  groups.Totals{OpeningNet: d("100"), Debit: d("50"), Credit: d("30"), ClosingNet: d("120")},
	}

	tbl := GroupSummary(s)
	assert.Equal(t, []string{"Ledger", "Opening", "Closing"}, tbl.Headers)
	assert.Equal(t, []string{"Cash", "100.00 Dr", "120.00 Dr"}, tbl.Rows[0])
	assert.Equal(t, []string{"Total", "100.00 Dr", "120.00 Dr"}, tbl.Footer)
}

func TestParticular_Empty(t *testing.T) {
	tbl := Particular(groups.Particular{Group: model.LedgerGroup{Name: "Sales"}, Label: "May", Empty: true})
	assert.Empty(t, tbl.Rows)
	require.Len(t, tbl.Notes, 1)
	assert.Contains(t, tbl.Notes[0], "May")
}

func TestTrading(t *testing.T) {
	st := trading.Statement{
		OpeningStock: d("1000"), PurchaseTotal: d("5000"), DirectExpensesTotal: d("200"),
		SalesTotal: d("7000"), ClosingStock: d("800"),
		TradingDebit: d("6200"), TradingCredit: d("7800"), GrossProfit: d("2600"),
		IndirectExpensesTotal: d("300"), IndirectIncomeTotal: d("50"),
		PLDebit: d("300"), PLCredit: d("2650"), NetProfit: d("2350"),
		ReconciledClosingStock: d("700"), StockVariance: d("100"),
	}

	tables := Trading(st)
	require.Len(t, tables, 3)

	assert.Contains(t, tables[0].Rows, []string{"Dr", "Gross Profit c/o", "2600.00"})
	assert.Equal(t, "7800.00", tables[0].Footer[2])
	assert.Contains(t, tables[1].Rows, []string{"Dr", "Net Profit", "2350.00"})
	assert.Contains(t, tables[1].Rows, []string{"Cr", "Gross Profit b/f", "2600.00"})
	assert.Equal(t, "2650.00", tables[1].Footer[2])
	assert.Contains(t, tables[2].Rows, []string{"Variance", "100.00"})

	st.Inventory = []trading.ItemLine{{Name: "Widget", ClosingValue: d("700"), OpeningQty: d("1"),
		PurchaseQty: d("0"), SalesQty: d("0"), ClosingQty: d("1")}}
	assert.Len(t, Trading(st), 4)
}

func TestValidation(t *testing.T) {
	tbl := Validation([]snapshot.ValidationError{{Rule: 4, LedgerID: 3, Description: "unknown group"}})
	assert.Equal(t, []string{"4", "", "3", "unknown group"}, tbl.Rows[0])
	assert.Empty(t, tbl.Notes)
}

func TestScalars(t *testing.T) {
	tbl := Scalars("7", trading.Net{Profit: d("10"), Loss: decimal.Zero}, true)
	assert.Equal(t, []string{"NET_PROFIT_7", "10.00"}, tbl.Rows[0])

	tbl = Scalars("7", trading.Net{}, false)
	assert.Empty(t, tbl.Rows)
	assert.Len(t, tbl.Notes, 1)
}
