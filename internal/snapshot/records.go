package snapshot

import (
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// DecodeGroups decodes custom ledger groups.
func DecodeGroups(data []byte, logger *zap.Logger) ([]model.LedgerGroup, error) {
	d := newDecoder(FileGroups, logger)
	defer d.done()
	items, err := d.list(data)
	if err != nil {
		return nil, err
	}
	out := make([]model.LedgerGroup, 0, len(items))
	for _, r := range items {
		out = append(out, model.LedgerGroup{
			ID:     d.id(r, "id", "group_id"),
			Name:   d.str(r, "name", "group_name"),
			Nature: model.Nature(d.str(r, "nature")),
			Type:   d.str(r, "type", "group_type"),
		})
	}
	return out, nil
}

// DecodeLedgers decodes ledgers. An unrecognised balance type decodes as
// debit.
func DecodeLedgers(data []byte, logger *zap.Logger) ([]model.Ledger, error) {
	d := newDecoder(FileLedgers, logger)
	defer d.done()
	items, err := d.list(data)
	if err != nil {
		return nil, err
	}
	out := make([]model.Ledger, 0, len(items))
	for _, r := range items {
		side, ok := model.ParseEntryType(d.str(r, "balance_type", "balanceType"))
		if !ok {
			side = model.Debit
		}
		l := model.Ledger{
			ID:             d.id(r, "id", "ledger_id"),
			Name:           d.str(r, "name", "ledger_name"),
			GroupID:        d.id(r, "group_id", "groupId"),
			BalanceType:    side,
			OpeningBalance: d.num(r, "opening_balance", "openingBalance").Abs(),
			GSTIN:          d.optStr(r, "gstin", "gst_in"),
		}
		if t, ok := d.date(r, "created_at", "createdAt"); ok {
			l.CreatedAt = &t
		}
		out = append(out, l)
	}
	return out, nil
}

// DecodeVouchers decodes vouchers with their nested postings and line items.
// Vouchers of unknown type are skipped with a diagnostic.
func DecodeVouchers(data []byte, logger *zap.Logger) ([]model.Voucher, error) {
	d := newDecoder(FileVouchers, logger)
	defer d.done()
	items, err := d.list(data)
	if err != nil {
		return nil, err
	}
	out := make([]model.Voucher, 0, len(items))
	for _, r := range items {
		raw := d.str(r, "type", "voucher_type")
		vt, ok := model.ParseVoucherType(raw)
		if !ok {
			d.logger.Warn("skipping voucher of unknown type",
				zap.String("file", d.file),
				zap.Int64("voucher_id", d.id(r, "id")),
				zap.String("type", raw),
			)
			continue
		}
		v := model.Voucher{
			ID:            d.id(r, "id", "voucher_id"),
			Type:          vt,
			Number:        d.str(r, "number", "voucher_number"),
			Narration:     d.str(r, "narration"),
			Reference:     d.str(r, "reference", "reference_no"),
			PartyName:     d.str(r, "party_name", "party"),
			PartyLedgerID: d.id(r, "party_ledger_id", "ledger_id"),
			TotalAmount:   d.num(r, "total_amount", "total"),
			CGSTAmount:    d.num(r, "cgst_amount", "cgst"),
			SGSTAmount:    d.num(r, "sgst_amount", "sgst"),
			IGSTAmount:    d.num(r, "igst_amount", "igst"),
			TDSAmount:     d.num(r, "tds_amount", "tds"),
		}
		v.Date, _ = d.date(r, "date", "voucher_date")
		first(r, "postings", "entries").ForEach(func(_, p gjson.Result) bool {
			v.Postings = append(v.Postings, d.posting(p, v.ID))
			return true
		})
		first(r, "items", "line_items").ForEach(func(_, li gjson.Result) bool {
			v.Items = append(v.Items, d.lineItem(li))
			return true
		})
		out = append(out, v)
	}
	return out, nil
}

func (d *decoder) posting(r gjson.Result, voucherID int64) model.Posting {
	side, ok := model.ParseEntryType(d.str(r, "entry_type", "type"))
	if !ok {
		side = model.Debit
	}
	p := model.Posting{
		ID:         d.id(r, "id"),
		VoucherID:  d.id(r, "voucher_id"),
		LedgerID:   d.id(r, "ledger_id"),
		LedgerName: d.str(r, "ledger_name", "ledger"),
		EntryType:  side,
		Amount:     d.num(r, "amount").Abs(),
		Narration:  d.str(r, "narration"),
		Party:      first(r, "party", "is_party").Bool(),
	}
	if p.VoucherID == 0 {
		p.VoucherID = voucherID
	}
	return p
}

func (d *decoder) lineItem(r gjson.Result) model.LineItem {
	return model.LineItem{
		ItemName:       d.str(r, "item_name", "name"),
		HSNCode:        d.str(r, "hsn_code", "hsn"),
		Quantity:       d.num(r, "quantity"),
		Rate:           d.num(r, "rate"),
		Amount:         d.num(r, "amount"),
		SalesLedger:    d.str(r, "sales_ledger"),
		PurchaseLedger: d.str(r, "purchase_ledger"),
		CGSTLedger:     d.str(r, "cgst_ledger"),
		SGSTLedger:     d.str(r, "sgst_ledger"),
		IGSTLedger:     d.str(r, "igst_ledger"),
		TDSLedger:      d.str(r, "tds_ledger"),
	}
}

// DecodeActivity decodes period activity rows. Rows for the same ledger are
// summed.
func DecodeActivity(data []byte, logger *zap.Logger) (map[int64]model.Activity, error) {
	d := newDecoder(FileBalances, logger)
	defer d.done()
	items, err := d.list(data)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]model.Activity, len(items))
	for _, r := range items {
		id := d.id(r, "ledger_id", "id")
		out[id] = out[id].Add(model.Activity{
			Debit:  d.num(r, "debit", "total_debit"),
			Credit: d.num(r, "credit", "total_credit"),
		})
	}
	return out, nil
}

// DecodeStockItems decodes stock items and their opening batches.
func DecodeStockItems(data []byte, logger *zap.Logger) ([]model.StockItem, error) {
	d := newDecoder(FileStockItems, logger)
	defer d.done()
	items, err := d.list(data)
	if err != nil {
		return nil, err
	}
	out := make([]model.StockItem, 0, len(items))
	for _, r := range items {
		s := model.StockItem{
			ID:      d.id(r, "id"),
			Name:    d.str(r, "name", "item_name"),
			HSNCode: d.str(r, "hsn_code", "hsn"),
		}
		first(r, "batches").ForEach(func(_, b gjson.Result) bool {
			s.Batches = append(s.Batches, model.Batch{
				Quantity:    d.num(b, "quantity"),
				OpeningRate: d.num(b, "opening_rate", "rate"),
			})
			return true
		})
		out = append(out, s)
	}
	return out, nil
}

// DecodePurchaseHistory decodes item-level purchase rows.
func DecodePurchaseHistory(data []byte, logger *zap.Logger) ([]model.PurchaseHistoryRow, error) {
	d := newDecoder(FilePurchaseHistory, logger)
	defer d.done()
	items, err := d.list(data)
	if err != nil {
		return nil, err
	}
	out := make([]model.PurchaseHistoryRow, 0, len(items))
	for _, r := range items {
		out = append(out, model.PurchaseHistoryRow{
			ItemName:      d.str(r, "item_name", "name"),
			Quantity:      d.num(r, "quantity"),
			Rate:          d.num(r, "rate"),
			VoucherNumber: d.str(r, "voucher_number", "voucher_no"),
		})
	}
	return out, nil
}

// DecodeSalesHistory decodes item-level sales rows.
func DecodeSalesHistory(data []byte, logger *zap.Logger) ([]model.SalesHistoryRow, error) {
	d := newDecoder(FileSalesHistory, logger)
	defer d.done()
	items, err := d.list(data)
	if err != nil {
		return nil, err
	}
	out := make([]model.SalesHistoryRow, 0, len(items))
	for _, r := range items {
		out = append(out, model.SalesHistoryRow{
			ItemName:      d.str(r, "item_name", "name"),
			Quantity:      d.num(r, "quantity"),
			Rate:          d.num(r, "rate"),
			VoucherNumber: d.str(r, "voucher_number", "voucher_no"),
		})
	}
	return out, nil
}

