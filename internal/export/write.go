package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Write renders tables in the given format.
func Write(w io.Writer, format Format, tables ...Table) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, tables...)
	case FormatJSON:
		return WriteJSON(w, tables...)
	case FormatTable, "":
		return WriteText(w, tables...)
	}
	return fmt.Errorf("unknown format %q", format)
}

// WriteCSV writes each table as a header row, its rows and its footer.
// Tables are separated by an empty record.
func WriteCSV(w io.Writer, tables ...Table) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	for i, t := range tables {
		if i > 0 {
			if err := writer.Write([]string{}); err != nil {
				return err
			}
		}
		if err := writer.Write(t.Headers); err != nil {
			return err
		}
		for _, r := range t.Rows {
			if err := writer.Write(r); err != nil {
				return err
			}
		}
		if len(t.Footer) > 0 {
			if err := writer.Write(t.Footer); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteJSON writes an array with one object per table. Row objects keep the
// header order.
func WriteJSON(w io.Writer, tables ...Table) error {
	doc := "[]"
	for _, t := range tables {
		obj, err := tableJSON(t)
		if err != nil {
			return fmt.Errorf("encoding %q: %w", t.Title, err)
		}
		if doc, err = sjson.SetRaw(doc, "-1", obj); err != nil {
			return fmt.Errorf("encoding %q: %w", t.Title, err)
		}
	}
	_, err := w.Write(pretty.Pretty([]byte(doc)))
	return err
}

func tableJSON(t Table) (string, error) {
	obj, err := sjson.Set(`{}`, "title", t.Title)
	if err != nil {
		return "", err
	}
	if obj, err = sjson.SetRaw(obj, "rows", "[]"); err != nil {
		return "", err
	}
	for _, r := range t.Rows {
		row, err := rowJSON(t.Headers, r)
		if err != nil {
			return "", err
		}
		if obj, err = sjson.SetRaw(obj, "rows.-1", row); err != nil {
			return "", err
		}
	}
	if len(t.Footer) > 0 {
		foot, err := rowJSON(t.Headers, t.Footer)
		if err != nil {
			return "", err
		}
		if obj, err = sjson.SetRaw(obj, "footer", foot); err != nil {
			return "", err
		}
	}
	if len(t.Notes) > 0 {
		if obj, err = sjson.Set(obj, "notes", t.Notes); err != nil {
			return "", err
		}
	}
	return obj, nil
}

func rowJSON(headers, cells []string) (string, error) {
	row := `{}`
	var err error
	for i, h := range headers {
		var v string
		if i < len(cells) {
			v = cells[i]
		}
		if row, err = sjson.Set(row, escapeKey(h), v); err != nil {
			return "", err
		}
	}
	return row, nil
}

// escapeKey makes a header usable as a literal sjson path component.
func escapeKey(k string) string {
	var b strings.Builder
	for _, r := range k {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' && r != '_' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// WriteText renders aligned columns with digit-grouped amounts.
func WriteText(w io.Writer, tables ...Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if t.Title != "" {
			if _, err := fmt.Fprintf(w, "%s\n\n", t.Title); err != nil {
				return err
			}
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		line := func(cells []string) {
			out := make([]string, len(cells))
			for c, cell := range cells {
				if c < len(t.Numeric) && t.Numeric[c] {
					cell = group(cell)
				}
				out[c] = cell
			}
			fmt.Fprintln(tw, strings.Join(out, "\t"))
		}

		line(t.Headers)
		rule := make([]string, len(t.Headers))
		for c, h := range t.Headers {
			rule[c] = strings.Repeat("-", len(h))
		}
		fmt.Fprintln(tw, strings.Join(rule, "\t"))
		for _, r := range t.Rows {
			line(r)
		}
		if len(t.Footer) > 0 {
			fmt.Fprintln(tw, strings.Join(rule, "\t"))
			line(t.Footer)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		for _, n := range t.Notes {
			if _, err := fmt.Fprintf(w, "%s\n", n); err != nil {
				return err
			}
		}
	}
	return nil
}

// group inserts thousands separators into the integer part of a plain
// decimal amount, keeping any trailing " Dr"/" Cr" marker. Other cells are
// returned unchanged.
func group(cell string) string {
	num, suffix, _ := strings.Cut(cell, " ")
	if suffix != "" {
		suffix = " " + suffix
	}
	neg := strings.HasPrefix(num, "-")
	num = strings.TrimPrefix(num, "-")
	whole, frac, hasFrac := strings.Cut(num, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return cell
	}
	out := humanize.Comma(n)
	if hasFrac {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out + suffix
}
