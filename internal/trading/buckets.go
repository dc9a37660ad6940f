package trading

import (
	"strings"
	"unicode"

	"github.com/cleared-dev/ledgerview/internal/groups"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// Bucket is one of the ledger sets the statement draws from.
type Bucket string

const (
	BucketPurchase         Bucket = "purchase-accounts"
	BucketSales            Bucket = "sales-accounts"
	BucketDirectExpenses   Bucket = "direct-expenses"
	BucketIndirectExpenses Bucket = "indirect-expenses"
	BucketIndirectIncome   Bucket = "indirect-income"
	BucketStockInHand      Bucket = "stock-in-hand"
)

var bucketByID = map[int64]Bucket{
	groups.PurchaseAccounts: BucketPurchase,
	groups.SalesAccounts:    BucketSales,
	groups.DirectExpenses:   BucketDirectExpenses,
	groups.IndirectExpenses: BucketIndirectExpenses,
	groups.IndirectIncome:   BucketIndirectIncome,
}

var bucketByType = map[string]Bucket{
	groups.TypePurchaseAccounts: BucketPurchase,
	groups.TypeSalesAccounts:    BucketSales,
	groups.TypeDirectExpenses:   BucketDirectExpenses,
	groups.TypeIndirectExpenses: BucketIndirectExpenses,
	groups.TypeIndirectIncome:   BucketIndirectIncome,
}

// Classify returns the bucket of a group: by built-in ID, then by type tag,
// then stock-in-hand when the name or type mentions "stock".
func Classify(g model.LedgerGroup) (Bucket, bool) {
	if b, ok := bucketByID[g.ID]; ok {
		return b, true
	}
	if b, ok := bucketByType[strings.ToLower(strings.TrimSpace(g.Type))]; ok {
		return b, true
	}
	if strings.Contains(squash(g.Name), "stock") || strings.Contains(squash(g.Type), "stock") {
		return BucketStockInHand, true
	}
	return "", false
}

// squash lowercases s and drops everything but letters and digits.
func squash(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}
