// Package engine wires snapshots to report builders. Every report is a pure
// function of the current snapshot; results are cached per report and
// parameters, keyed by a fingerprint of the inputs the report reads.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cleared-dev/ledgerview/internal/classify"
	"github.com/cleared-dev/ledgerview/internal/columnar"
	"github.com/cleared-dev/ledgerview/internal/daybook"
	"github.com/cleared-dev/ledgerview/internal/fiscal"
	"github.com/cleared-dev/ledgerview/internal/groups"
	"github.com/cleared-dev/ledgerview/internal/gst"
	"github.com/cleared-dev/ledgerview/internal/model"
	"github.com/cleared-dev/ledgerview/internal/snapshot"
	"github.com/cleared-dev/ledgerview/internal/statement"
	"github.com/cleared-dev/ledgerview/internal/trading"
)

var (
	ErrLedgerNotFound  = errors.New("ledger not found")
	ErrGroupNotFound   = errors.New("group not found")
	ErrVoucherNotFound = errors.New("voucher not found")
)

// Options configures an Engine.
type Options struct {
	Tenant      model.Tenant
	FiscalStart time.Month
	Segmenter   gst.Segmenter
}

// parts are the per-section fingerprints of the current snapshot.
type parts struct {
	groups, ledgers, vouchers, activity, stock, purchases, sales, daybook uint64
}

// Engine serves every report over one snapshot at a time.
type Engine struct {
	opts      Options
	publisher *trading.Publisher
	logger    *zap.Logger

	mu    sync.RWMutex
	snap  *snapshot.Snapshot
	chart *groups.Service
	fp    parts

	viewsMu sync.Mutex
	views   map[string]any
}

// New creates an Engine. publisher may be nil, in which case the trading
// statement is computed but nothing is persisted.
func New(opts Options, publisher *trading.Publisher, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.FiscalStart == 0 {
		opts.FiscalStart = fiscal.DefaultStart
	}
	e := &Engine{
		opts:      opts,
		publisher: publisher,
		logger:    logger,
		views:     make(map[string]any),
	}
	e.Update(&snapshot.Snapshot{})
	return e
}

// Update replaces the snapshot. Reports recompute lazily on next access
// when the sections they read changed.
func (e *Engine) Update(s *snapshot.Snapshot) {
	if s == nil {
		s = &snapshot.Snapshot{}
	}
	fp := parts{
		groups:    fingerprint(s.Groups),
		ledgers:   fingerprint(s.Ledgers),
		vouchers:  fingerprint(s.Vouchers),
		activity:  fingerprint(s.Activity),
		stock:     fingerprint(s.StockItems),
		purchases: fingerprint(s.Purchases),
		sales:     fingerprint(s.Sales),
		daybook:   fingerprint(s.Daybook),
	}
	chart := groups.NewService(s.Groups)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.snap, e.chart, e.fp = s, chart, fp
}

func (e *Engine) current() (*snapshot.Snapshot, *groups.Service, parts) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap, e.chart, e.fp
}

// Snapshot returns the current snapshot.
func (e *Engine) Snapshot() *snapshot.Snapshot {
	s, _, _ := e.current()
	return s
}

// Chart returns the merged group chart of the current snapshot.
func (e *Engine) Chart() *groups.Service {
	_, c, _ := e.current()
	return c
}

func cached[T any](e *Engine, name string, key uint64, fn func() T) T {
	e.viewsMu.Lock()
	v, ok := e.views[name].(*View[T])
	if !ok {
		v = &View[T]{}
		e.views[name] = v
	}
	e.viewsMu.Unlock()
	return v.Get(key, fn)
}

// DayBook is the voucher-grouped table and flat register.
type DayBook struct {
	Vouchers []daybook.VoucherRow
	Register []daybook.RegisterRow
	Totals   classify.Amounts
}

// DayBook builds the Day Book from the posting feed, or from vouchers when
// no feed was loaded.
func (e *Engine) DayBook() DayBook {
	s, _, fp := e.current()
	return cached(e, "daybook", combine(fp.daybook, fp.vouchers), func() DayBook {
		entries := s.DaybookEntries()
		rows := daybook.GroupVouchers(entries)
		return DayBook{
			Vouchers: rows,
			Register: daybook.Register(entries),
			Totals:   daybook.Totals(rows),
		}
	})
}

// VoucherDetail returns the party/other split of one voucher.
func (e *Engine) VoucherDetail(id int64) (daybook.Detail, error) {
	s, _, _ := e.current()
	for _, v := range s.Vouchers {
		if v.ID == id {
			return daybook.VoucherDetail(v)
		}
	}
	return daybook.Detail{}, fmt.Errorf("voucher %d: %w", id, ErrVoucherNotFound)
}

// Statement returns the account statement of one ledger.
func (e *Engine) Statement(ledgerID int64, r statement.Range) (statement.Statement, error) {
	s, _, fp := e.current()
	l, ok := s.LedgerIndex()[ledgerID]
	if !ok {
		return statement.Statement{}, fmt.Errorf("ledger %d: %w", ledgerID, ErrLedgerNotFound)
	}
	key := combine(fp.ledgers, fp.vouchers, uint64(ledgerID), uint64(r.From.UnixNano()), uint64(r.To.UnixNano()))
	name := fmt.Sprintf("statement:%d:%d:%d", ledgerID, r.From.UnixNano(), r.To.UnixNano())
	return cached(e, name, key, func() statement.Statement {
		return statement.Build(l, s.Vouchers, r)
	}), nil
}

func (e *Engine) groupInput(groupID int64) (groups.Input, parts, error) {
	s, chart, fp := e.current()
	g, ok := chart.Get(groupID)
	if !ok {
		return groups.Input{}, fp, fmt.Errorf("group %d: %w", groupID, ErrGroupNotFound)
	}
	return groups.Input{Group: g, Ledgers: s.Ledgers, Activity: s.Activity}, fp, nil
}

// Group returns the consolidated view of one group.
func (e *Engine) Group(groupID int64, cols groups.Columns) (groups.Summary, error) {
	in, fp, err := e.groupInput(groupID)
	if err != nil {
		return groups.Summary{}, err
	}
	key := combine(fp.groups, fp.ledgers, fp.activity, uint64(groupID), fingerprint(cols))
	name := fmt.Sprintf("group:%d:%x", groupID, fingerprint(cols))
	return cached(e, name, key, func() groups.Summary {
		return groups.Consolidated(in, cols)
	}), nil
}

// Monthly returns the twelve-month view of one group.
func (e *Engine) Monthly(groupID int64) (groups.Monthly, error) {
	in, fp, err := e.groupInput(groupID)
	if err != nil {
		return groups.Monthly{}, err
	}
	key := combine(fp.groups, fp.ledgers, fp.activity, uint64(groupID), uint64(e.opts.FiscalStart))
	return cached(e, "monthly:"+strconv.FormatInt(groupID, 10), key, func() groups.Monthly {
		return groups.MonthlyView(in, e.opts.FiscalStart)
	}), nil
}

// Particular returns the drill-down of one fiscal month of a group.
func (e *Engine) Particular(groupID int64, index int) (groups.Particular, error) {
	m, err := e.Monthly(groupID)
	if err != nil {
		return groups.Particular{}, err
	}
	return m.Particular(index)
}

// Columnar returns the pivoted register for sales or purchase vouchers.
func (e *Engine) Columnar(dir columnar.Direction) columnar.Table {
	s, _, fp := e.current()
	key := combine(fp.vouchers, fp.ledgers, param(string(dir)))
	return cached(e, "columnar:"+string(dir), key, func() columnar.Table {
		var vouchers []model.Voucher
		for _, v := range s.Vouchers {
			if v.Type == dir.VoucherType() {
				vouchers = append(vouchers, v)
			}
		}
		return columnar.Build(dir, vouchers, s.LedgerIndex())
	})
}

// GST returns the register of one segment over vouchers of type vt.
func (e *Engine) GST(seg gst.Segment, vt model.VoucherType) gst.Register {
	s, _, fp := e.current()
	key := combine(fp.vouchers, fp.ledgers, param(string(seg)), param(string(vt)), uint64(e.opts.Segmenter.Length))
	return cached(e, "gst:"+string(seg)+":"+string(vt), key, func() gst.Register {
		var vouchers []model.Voucher
		for _, v := range s.Vouchers {
			if v.Type == vt {
				vouchers = append(vouchers, v)
			}
		}
		ledgers := s.LedgerIndex()
		b2b, b2c := e.opts.Segmenter.Split(vouchers, ledgers)
		if seg == gst.B2B {
			return gst.BuildRegister(gst.B2B, b2b, ledgers)
		}
		return gst.BuildRegister(gst.B2C, b2c, ledgers)
	})
}

// Trading computes the Trading and P&L statement and publishes the net
// result. A publish failure, including a missing tenant identity, is
// returned alongside the computed statement.
func (e *Engine) Trading(ctx context.Context, opts trading.Options) (trading.Statement, error) {
	s, chart, fp := e.current()
	key := combine(fp.groups, fp.ledgers, fp.activity, fp.stock, fp.purchases, fp.sales, fingerprint(opts))
	st := cached(e, fmt.Sprintf("trading:%t", opts.Items), key, func() trading.Statement {
		st := trading.Compute(trading.Input{
			Groups:     chart.All(),
			Ledgers:    s.Ledgers,
			Activity:   s.Activity,
			StockItems: s.StockItems,
			Purchases:  s.Purchases,
			Sales:      s.Sales,
		}, opts)
		if !st.StockVariance.IsZero() {
			e.logger.Warn("closing stock differs from item reconciliation",
				zap.String("ledger_closing_stock", st.ClosingStock.StringFixed(2)),
				zap.String("reconciled_closing_stock", st.ReconciledClosingStock.StringFixed(2)),
				zap.String("variance", st.StockVariance.StringFixed(2)),
			)
		}
		return st
	})

	if e.publisher == nil {
		return st, nil
	}
	if err := e.publisher.Publish(ctx, e.opts.Tenant, st); err != nil {
		e.logger.Warn("net result not published", zap.Error(err))
		return st, fmt.Errorf("publishing trading result: %w", err)
	}
	return st, nil
}

// Check runs the snapshot consistency checks.
func (e *Engine) Check() []snapshot.ValidationError {
	s, chart, _ := e.current()
	return snapshot.Validate(s, chart)
}
