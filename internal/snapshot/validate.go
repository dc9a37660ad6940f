package snapshot

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// ValidationError describes one consistency problem in a snapshot. VoucherID
// is zero for ledger-level problems, which carry LedgerID instead.
type ValidationError struct {
	Rule        int
	VoucherID   int64
	LedgerID    int64
	Description string
}

func (e ValidationError) Error() string {
	if e.VoucherID == 0 {
		return fmt.Sprintf("rule %d [ledger %d]: %s", e.Rule, e.LedgerID, e.Description)
	}
	return fmt.Sprintf("rule %d [voucher %d]: %s", e.Rule, e.VoucherID, e.Description)
}

// GroupChecker tests whether a group ID exists in the chart.
type GroupChecker interface {
	Exists(id int64) bool
}

// Validate checks a snapshot for problems the reports tolerate but users
// should see:
//
//  1. voucher postings balance (Σdebit = Σcredit)
//  2. postings carry a positive amount
//  3. postings reference a known ledger
//  4. ledgers reference a known group
//  5. voucher and ledger IDs are unique
//  6. amounts have at most 2 decimal places
func Validate(s *Snapshot, chart GroupChecker) []ValidationError {
	var errs []ValidationError

	ledgerIDs := make(map[int64]bool, len(s.Ledgers))
	ledgerNames := make(map[string]bool, len(s.Ledgers))
	for _, l := range s.Ledgers {
		if ledgerIDs[l.ID] {
			errs = append(errs, ValidationError{
				Rule:        5,
				LedgerID:    l.ID,
				Description: fmt.Sprintf("duplicate ledger id %d", l.ID),
			})
		}
		ledgerIDs[l.ID] = true
		ledgerNames[strings.ToLower(strings.TrimSpace(l.Name))] = true

		if !chart.Exists(l.GroupID) {
			errs = append(errs, ValidationError{
				Rule:        4,
				LedgerID:    l.ID,
				Description: fmt.Sprintf("ledger %q references unknown group %d", l.Name, l.GroupID),
			})
		}
		if !twoPlaces(l.OpeningBalance) {
			errs = append(errs, ValidationError{
				Rule:        6,
				LedgerID:    l.ID,
				Description: fmt.Sprintf("opening balance %s has more than 2 decimal places", l.OpeningBalance),
			})
		}
	}

	seen := make(map[int64]bool, len(s.Vouchers))
	for _, v := range s.Vouchers {
		if seen[v.ID] {
			errs = append(errs, ValidationError{
				Rule:        5,
				VoucherID:   v.ID,
				Description: fmt.Sprintf("duplicate voucher id %d", v.ID),
			})
		}
		seen[v.ID] = true

		if len(v.Postings) == 0 {
			continue
		}

		totalDebit := decimal.Zero
		totalCredit := decimal.Zero
		for _, p := range v.Postings {
			if p.EntryType == model.Credit {
				totalCredit = totalCredit.Add(p.Amount)
			} else {
				totalDebit = totalDebit.Add(p.Amount)
			}

			if !p.Amount.IsPositive() {
				errs = append(errs, ValidationError{
					Rule:        2,
					VoucherID:   v.ID,
					Description: fmt.Sprintf("posting %d has no amount", p.ID),
				})
			}

			known := ledgerIDs[p.LedgerID]
			if p.LedgerID == 0 {
				known = ledgerNames[strings.ToLower(strings.TrimSpace(p.LedgerName))]
			}
			if !known {
				errs = append(errs, ValidationError{
					Rule:        3,
					VoucherID:   v.ID,
					Description: fmt.Sprintf("posting references unknown ledger %s", ledgerRef(p)),
				})
			}

			if !twoPlaces(p.Amount) {
				errs = append(errs, ValidationError{
					Rule:        6,
					VoucherID:   v.ID,
					Description: fmt.Sprintf("amount %s has more than 2 decimal places", p.Amount),
				})
			}
		}

		if !totalDebit.Equal(totalCredit) {
			errs = append(errs, ValidationError{
				Rule:        1,
				VoucherID:   v.ID,
				Description: fmt.Sprintf("debits (%s) != credits (%s)", totalDebit.StringFixed(2), totalCredit.StringFixed(2)),
			})
		}
	}

	return errs
}

func twoPlaces(d decimal.Decimal) bool {
	hundred := decimal.NewFromInt(100)
	return d.Mul(hundred).Equal(d.Mul(hundred).Floor())
}

func ledgerRef(p model.Posting) string {
	if p.LedgerID != 0 {
		return fmt.Sprintf("%d", p.LedgerID)
	}
	return fmt.Sprintf("%q", p.LedgerName)
}
