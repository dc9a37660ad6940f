package snapshot

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cleared-dev/ledgerview/internal/daybook"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// DaybookHeader is the CSV header for daybook.csv.
var DaybookHeader = []string{
	"voucher_id", "voucher_type", "voucher_number", "date", "voucher_narration", "particulars",
	"posting_id", "ledger_id", "ledger_name", "entry_type", "amount", "narration", "party",
}

const (
	numDaybookFields = 13
	dateFormat       = "2006-01-02"
	colVoucherID     = 0
	colVoucherType   = 1
	colVoucherNumber = 2
	colDate          = 3
	colVoucherNarr   = 4
	colParticulars   = 5
	colPostingID     = 6
	colLedgerID      = 7
	colLedgerName    = 8
	colEntryType     = 9
	colAmount        = 10
	colNarration     = 11
	colParty         = 12
)

// ReadDaybook reads all entries from a daybook.csv reader. Rows that cannot
// be parsed are skipped with a warning; non-numeric amounts read as zero.
// Only a malformed CSV stream or an unexpected header is an error.
func ReadDaybook(r io.Reader, logger *zap.Logger) ([]daybook.Entry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading daybook CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	if !slices.Equal(records[0], DaybookHeader) {
		return nil, fmt.Errorf("unexpected daybook header %q", strings.Join(records[0], ","))
	}

	var entries []daybook.Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			logger.Warn("skipping daybook row",
				zap.String("file", FileDaybook),
				zap.Int("row", i+2),
				zap.Error(err),
			)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (daybook.Entry, error) {
	if len(record) != numDaybookFields {
		return daybook.Entry{}, fmt.Errorf("expected %d fields, got %d", numDaybookFields, len(record))
	}

	voucherID, err := strconv.ParseInt(record[colVoucherID], 10, 64)
	if err != nil {
		return daybook.Entry{}, fmt.Errorf("parsing voucher_id %q: %w", record[colVoucherID], err)
	}

	vt, ok := model.ParseVoucherType(record[colVoucherType])
	if !ok {
		return daybook.Entry{}, fmt.Errorf("unknown voucher_type %q", record[colVoucherType])
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return daybook.Entry{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	side, ok := model.ParseEntryType(record[colEntryType])
	if !ok {
		return daybook.Entry{}, fmt.Errorf("unknown entry_type %q", record[colEntryType])
	}

	postingID, _ := strconv.ParseInt(record[colPostingID], 10, 64)
	ledgerID, _ := strconv.ParseInt(record[colLedgerID], 10, 64)

	amount, err := decimal.NewFromString(strings.TrimSpace(record[colAmount]))
	if err != nil {
		amount = decimal.Zero
	}

	party, _ := strconv.ParseBool(record[colParty])

	return daybook.Entry{
		Posting: model.Posting{
			ID:         postingID,
			VoucherID:  voucherID,
			LedgerID:   ledgerID,
			LedgerName: record[colLedgerName],
			EntryType:  side,
			Amount:     amount.Abs(),
			Narration:  record[colNarration],
			Party:      party,
		},
		VoucherID:        voucherID,
		VoucherType:      vt,
		VoucherNumber:    record[colVoucherNumber],
		Date:             date,
		VoucherNarration: record[colVoucherNarr],
		Particulars:      record[colParticulars],
	}, nil
}
