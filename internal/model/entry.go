package model

import "strings"

// EntryType is the side of a double-entry posting.
type EntryType string

const (
	Debit  EntryType = "debit"
	Credit EntryType = "credit"
)

// ParseEntryType normalises "Dr", "debit", "CREDIT" and friends.
// The boolean is false when the value names neither side.
func ParseEntryType(s string) (EntryType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debit", "dr", "d":
		return Debit, true
	case "credit", "cr", "c":
		return Credit, true
	}
	return "", false
}

// Opposite returns the other side. Anything that is not Credit is treated as Debit.
func (e EntryType) Opposite() EntryType {
	if e == Credit {
		return Debit
	}
	return Credit
}

// Short returns the ledger-book abbreviation ("Dr"/"Cr").
func (e EntryType) Short() string {
	if e == Credit {
		return "Cr"
	}
	return "Dr"
}
