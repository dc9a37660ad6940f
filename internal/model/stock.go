package model

import "github.com/shopspring/decimal"

// Batch is one opening lot of a stock item.
type Batch struct {
	Quantity    decimal.Decimal
	OpeningRate decimal.Decimal
}

// StockItem is an inventory master record.
type StockItem struct {
	ID      int64
	Name    string
	HSNCode string
	Batches []Batch
}

// OpeningQuantity sums batch quantities.
func (s StockItem) OpeningQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, b := range s.Batches {
		total = total.Add(b.Quantity)
	}
	return total
}

// OpeningValue sums quantity × opening rate over batches.
func (s StockItem) OpeningValue() decimal.Decimal {
	total := decimal.Zero
	for _, b := range s.Batches {
		total = total.Add(b.Quantity.Mul(b.OpeningRate))
	}
	return total
}

// PurchaseHistoryRow is one item-level purchase line from the history feed.
type PurchaseHistoryRow struct {
	ItemName      string
	Quantity      decimal.Decimal
	Rate          decimal.Decimal
	VoucherNumber string
}

// Value returns quantity × rate.
func (r PurchaseHistoryRow) Value() decimal.Decimal {
	return r.Quantity.Mul(r.Rate)
}

// SalesHistoryRow is one item-level sales line. Quantity may be negative
// (outward movement); value always uses its magnitude.
type SalesHistoryRow struct {
	ItemName      string
	Quantity      decimal.Decimal
	Rate          decimal.Decimal
	VoucherNumber string
}

// Value returns |quantity| × rate.
func (r SalesHistoryRow) Value() decimal.Decimal {
	return r.Quantity.Abs().Mul(r.Rate)
}
