package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/ledgerview/internal/daybook"
	"github.com/cleared-dev/ledgerview/internal/groups"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// Snapshot file names inside the data directory.
const (
	FileGroups          = "groups.json"
	FileGroupsCSV       = "groups.csv"
	FileLedgers         = "ledgers.json"
	FileVouchers        = "vouchers.json"
	FileBalances        = "balances.json"
	FileStockItems      = "stock_items.json"
	FilePurchaseHistory = "purchase_history.json"
	FileSalesHistory    = "sales_history.json"
	FileDaybook         = "daybook.csv"
)

// Snapshot is one consistent read of every record set. A set that could not
// be read is empty and its file is listed in Failed.
type Snapshot struct {
	Groups     []model.LedgerGroup // custom groups only
	Ledgers    []model.Ledger
	Vouchers   []model.Voucher
	Activity   map[int64]model.Activity
	StockItems []model.StockItem
	Purchases  []model.PurchaseHistoryRow
	Sales      []model.SalesHistoryRow
	Daybook    []daybook.Entry

	// ActivityDerived is set when balances.json was absent and activity was
	// summed from voucher postings instead.
	ActivityDerived bool
	Failed          map[string]error
}

// LedgerIndex maps ledger IDs to ledgers.
func (s *Snapshot) LedgerIndex() map[int64]model.Ledger {
	out := make(map[int64]model.Ledger, len(s.Ledgers))
	for _, l := range s.Ledgers {
		out[l.ID] = l
	}
	return out
}

// DaybookEntries returns the flat posting feed, or the vouchers flattened
// when no feed was supplied.
func (s *Snapshot) DaybookEntries() []daybook.Entry {
	if len(s.Daybook) > 0 {
		return s.Daybook
	}
	return daybook.Flatten(s.Vouchers)
}

// FailedFiles returns the names of files that failed to load, sorted.
func (s *Snapshot) FailedFiles() []string {
	out := make([]string, 0, len(s.Failed))
	for f := range s.Failed {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Loader reads snapshots from a file system.
type Loader struct {
	fsys   fs.FS
	logger *zap.Logger
}

// NewLoader creates a Loader over fsys. A nil logger is replaced with a no-op.
func NewLoader(fsys fs.FS, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fsys: fsys, logger: logger}
}

type section struct {
	file   string
	decode func(data []byte) (func(*Snapshot), error)
}

func (l *Loader) sections() []section {
	log := l.logger
	return []section{
		{FileGroups, func(data []byte) (func(*Snapshot), error) {
			v, err := DecodeGroups(data, log)
			return func(s *Snapshot) { s.Groups = v }, err
		}},
		{FileLedgers, func(data []byte) (func(*Snapshot), error) {
			v, err := DecodeLedgers(data, log)
			return func(s *Snapshot) { s.Ledgers = v }, err
		}},
		{FileVouchers, func(data []byte) (func(*Snapshot), error) {
			v, err := DecodeVouchers(data, log)
			return func(s *Snapshot) { s.Vouchers = v }, err
		}},
		{FileBalances, func(data []byte) (func(*Snapshot), error) {
			v, err := DecodeActivity(data, log)
			return func(s *Snapshot) { s.Activity = v }, err
		}},
		{FileStockItems, func(data []byte) (func(*Snapshot), error) {
			v, err := DecodeStockItems(data, log)
			return func(s *Snapshot) { s.StockItems = v }, err
		}},
		{FilePurchaseHistory, func(data []byte) (func(*Snapshot), error) {
			v, err := DecodePurchaseHistory(data, log)
			return func(s *Snapshot) { s.Purchases = v }, err
		}},
		{FileSalesHistory, func(data []byte) (func(*Snapshot), error) {
			v, err := DecodeSalesHistory(data, log)
			return func(s *Snapshot) { s.Sales = v }, err
		}},
		{FileDaybook, func(data []byte) (func(*Snapshot), error) {
			v, err := ReadDaybook(bytes.NewReader(data), log)
			return func(s *Snapshot) { s.Daybook = v }, err
		}},
	}
}

// Load reads every record set concurrently. Missing files are empty sets.
// Unreadable or malformed files are logged, left empty and recorded in
// Failed; they never fail the whole load. The only error is cancellation.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		Activity: make(map[int64]model.Activity),
		Failed:   make(map[string]error),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, sec := range l.sections() {
		sec := sec
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			apply, err := l.read(sec)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				l.logger.Warn("snapshot section unavailable", zap.String("file", sec.file), zap.Error(err))
				snap.Failed[sec.file] = err
				return nil
			}
			if apply != nil {
				apply(snap)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	if len(snap.Groups) == 0 && snap.Failed[FileGroups] == nil {
		custom, err := l.readGroupsCSV()
		if err != nil {
			l.logger.Warn("snapshot section unavailable", zap.String("file", FileGroupsCSV), zap.Error(err))
			snap.Failed[FileGroupsCSV] = err
		}
		snap.Groups = custom
	}

	if snap.Activity == nil {
		snap.Activity = make(map[int64]model.Activity)
	}
	if len(snap.Activity) == 0 && len(snap.Vouchers) > 0 {
		snap.Activity = DeriveActivity(snap.Vouchers, snap.Ledgers)
		snap.ActivityDerived = true
		l.logger.Debug("derived ledger activity from vouchers", zap.Int("ledgers", len(snap.Activity)))
	}

	l.logger.Debug("snapshot loaded",
		zap.Int("groups", len(snap.Groups)),
		zap.Int("ledgers", len(snap.Ledgers)),
		zap.Int("vouchers", len(snap.Vouchers)),
		zap.Int("stock_items", len(snap.StockItems)),
		zap.Strings("failed", snap.FailedFiles()),
	)
	return snap, nil
}

// read returns nil, nil for a missing file.
func (l *Loader) read(sec section) (func(*Snapshot), error) {
	data, err := fs.ReadFile(l.fsys, sec.file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", sec.file, err)
	}
	apply, err := sec.decode(data)
	if err != nil {
		return nil, err
	}
	return apply, nil
}

func (l *Loader) readGroupsCSV() ([]model.LedgerGroup, error) {
	f, err := l.fsys.Open(FileGroupsCSV)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", FileGroupsCSV, err)
	}
	defer f.Close()

	custom, err := groups.ReadGroups(f)
	if err != nil {
		return nil, err
	}
	// groups.csv may carry the built-in chart too; keep only custom groups.
	out := custom[:0]
	for _, g := range custom {
		if !g.BuiltIn() {
			out = append(out, g)
		}
	}
	return out, nil
}

// DeriveActivity sums voucher postings per ledger. Postings without a ledger
// ID are matched to ledgers by case-insensitive name; unmatched postings are
// ignored.
func DeriveActivity(vouchers []model.Voucher, ledgers []model.Ledger) map[int64]model.Activity {
	byName := make(map[string]int64, len(ledgers))
	for _, l := range ledgers {
		byName[strings.ToLower(strings.TrimSpace(l.Name))] = l.ID
	}

	out := make(map[int64]model.Activity)
	for _, v := range vouchers {
		for _, p := range v.Postings {
			id := p.LedgerID
			if id == 0 {
				var ok bool
				id, ok = byName[strings.ToLower(strings.TrimSpace(p.LedgerName))]
				if !ok {
					continue
				}
			}
			act := model.Activity{Debit: decimal.Zero, Credit: decimal.Zero}
			if p.EntryType == model.Credit {
				act.Credit = p.Amount
			} else {
				act.Debit = p.Amount
			}
			out[id] = out[id].Add(act)
		}
	}
	return out
}
