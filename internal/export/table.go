// Package export serialises report views as text tables, CSV or JSON. It
// only lays out values the report builders already computed.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/balance"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// Format names an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatCSV, FormatJSON:
		return f, nil
	case "":
		return FormatTable, nil
	}
	return "", fmt.Errorf("unknown format %q (want table, csv or json)", s)
}

// Table is one rectangular block of a report. Numeric marks the columns
// holding amounts; Footer is optional and as wide as Headers.
type Table struct {
	Title   string
	Headers []string
	Numeric []bool
	Rows    [][]string
	Footer  []string
	Notes   []string
}

func newTable(title string, headers ...string) Table {
	return Table{Title: title, Headers: headers, Numeric: make([]bool, len(headers))}
}

// numeric flags columns by index.
func (t *Table) numeric(cols ...int) {
	for _, c := range cols {
		t.Numeric[c] = true
	}
}

func (t *Table) add(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// sided renders a magnitude with its Dr/Cr marker.
func sided(side model.EntryType, magnitude decimal.Decimal) string {
	return amount(magnitude) + " " + side.Short()
}

func closing(b balance.Balance) string {
	return sided(b.DisplaySide, b.Magnitude)
}

func opening(b balance.Balance) string {
	side, mag := balance.FromNet(b.OpeningNet())
	return sided(side, mag)
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
