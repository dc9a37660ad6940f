package daybook

import (
	"errors"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// ErrNoParty is returned when no posting of a voucher can be identified as
// the party line.
var ErrNoParty = errors.New("no party posting")

// Detail is the unfiltered posting list of one voucher split into the party
// line and the rest.
type Detail struct {
	Voucher model.Voucher
	Party   model.Posting
	Others  []model.Posting
}

// VoucherDetail picks the party posting: the first posting flagged by the
// feed, else the first posting whose ledger is the voucher's counterparty.
// All other postings keep their order in Others.
func VoucherDetail(v model.Voucher) (Detail, error) {
	idx := -1
	for i, p := range v.Postings {
		if p.Party {
			idx = i
			break
		}
	}
	if idx < 0 && v.PartyLedgerID != 0 {
		for i, p := range v.Postings {
			if p.LedgerID == v.PartyLedgerID {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		return Detail{Voucher: v, Others: v.Postings}, ErrNoParty
	}

	d := Detail{Voucher: v, Party: v.Postings[idx]}
	for i, p := range v.Postings {
		if i != idx {
			d.Others = append(d.Others, p)
		}
	}
	return d, nil
}
