// Package snapshot reads the record sets a report is computed from. Decoding
// is tolerant: payloads that are not lists decode as empty and non-numeric
// amounts decode as zero.
package snapshot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ErrNotList is returned when a payload is neither a JSON array nor an
// object carrying a "data" array.
var ErrNotList = errors.New("payload is not a list")

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
}

// decoder carries per-file diagnostics.
type decoder struct {
	file    string
	logger  *zap.Logger
	coerced int
}

func newDecoder(file string, logger *zap.Logger) *decoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &decoder{file: file, logger: logger}
}

// list returns the elements of a bare array or of an object's "data" array.
func (d *decoder) list(data []byte) ([]gjson.Result, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("decoding %s: invalid JSON", d.file)
	}
	root := gjson.ParseBytes(data)
	switch {
	case root.IsArray():
		return root.Array(), nil
	case root.IsObject() && root.Get("data").IsArray():
		return root.Get("data").Array(), nil
	}
	return nil, fmt.Errorf("decoding %s: %w", d.file, ErrNotList)
}

// num reads a decimal from the first present key. Missing, null, boolean and
// non-numeric values are zero; the latter are counted as coerced.
func (d *decoder) num(r gjson.Result, keys ...string) decimal.Decimal {
	v := first(r, keys...)
	switch v.Type {
	case gjson.Number:
		if n, err := decimal.NewFromString(v.Raw); err == nil {
			return n
		}
		return decimal.NewFromFloat(v.Num)
	case gjson.String:
		s := strings.ReplaceAll(strings.TrimSpace(v.Str), ",", "")
		if s == "" {
			return decimal.Zero
		}
		if n, err := decimal.NewFromString(s); err == nil {
			return n
		}
	case gjson.Null:
		return decimal.Zero
	}
	d.coerced++
	d.logger.Debug("coerced non-numeric value to zero",
		zap.String("file", d.file),
		zap.Strings("keys", keys),
		zap.String("raw", v.Raw),
	)
	return decimal.Zero
}

func (d *decoder) id(r gjson.Result, keys ...string) int64 {
	return first(r, keys...).Int()
}

func (d *decoder) str(r gjson.Result, keys ...string) string {
	return strings.TrimSpace(first(r, keys...).String())
}

// optStr returns nil for missing and null values.
func (d *decoder) optStr(r gjson.Result, keys ...string) *string {
	v := first(r, keys...)
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	s := v.String()
	return &s
}

func (d *decoder) date(r gjson.Result, keys ...string) (time.Time, bool) {
	raw := d.str(r, keys...)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	d.logger.Debug("unparseable date", zap.String("file", d.file), zap.String("raw", raw))
	return time.Time{}, false
}

// done logs a summary of coerced values.
func (d *decoder) done() {
	if d.coerced > 0 {
		d.logger.Warn("coerced non-numeric values to zero",
			zap.String("file", d.file),
			zap.Int("count", d.coerced),
		)
	}
}

func first(r gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}
