package groups

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cleared-dev/ledgerview/internal/model"
)

const (
	numFields = 4
	colID     = 0
	colName   = 1
	colNature = 2
	colType   = 3
)

// Header is the CSV header for groups.csv.
var Header = []string{"group_id", "group_name", "nature", "type"}

// ReadGroups reads groups.csv.
func ReadGroups(r io.Reader) ([]model.LedgerGroup, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading groups CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var groups []model.LedgerGroup
	for i, rec := range records[1:] {
		g, err := UnmarshalGroup(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// WriteGroups writes groups.csv.
func WriteGroups(w io.Writer, groups []model.LedgerGroup) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, g := range groups {
		if err := cw.Write(MarshalGroup(g)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalGroup converts a LedgerGroup to a CSV row.
func MarshalGroup(g model.LedgerGroup) []string {
	row := make([]string, numFields)
	row[colID] = strconv.FormatInt(g.ID, 10)
	row[colName] = g.Name
	row[colNature] = string(g.Nature)
	row[colType] = g.Type
	return row
}

// UnmarshalGroup converts a CSV row to a LedgerGroup.
func UnmarshalGroup(record []string) (model.LedgerGroup, error) {
	if len(record) != numFields {
		return model.LedgerGroup{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	id, err := strconv.ParseInt(record[colID], 10, 64)
	if err != nil {
		return model.LedgerGroup{}, fmt.Errorf("parsing group_id %q: %w", record[colID], err)
	}

	return model.LedgerGroup{
		ID:     id,
		Name:   record[colName],
		Nature: model.Nature(record[colNature]),
		Type:   record[colType],
	}, nil
}
