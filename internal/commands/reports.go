package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/ledgerview/internal/columnar"
	"github.com/cleared-dev/ledgerview/internal/engine"
	"github.com/cleared-dev/ledgerview/internal/export"
	"github.com/cleared-dev/ledgerview/internal/groups"
	"github.com/cleared-dev/ledgerview/internal/gst"
	"github.com/cleared-dev/ledgerview/internal/model"
	"github.com/cleared-dev/ledgerview/internal/statement"
	"github.com/cleared-dev/ledgerview/internal/trading"
)

const dateLayout = "2006-01-02"

func newDaybookCommand(opts *rootOptions) *cobra.Command {
	var register bool
	var voucherID int64

	cmd := &cobra.Command{
		Use:   "daybook",
		Short: "Show the Day Book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(cmd.Context(), func(a *app, e *engine.Engine) error {
				if voucherID != 0 {
					d, err := e.VoucherDetail(voucherID)
					if err != nil {
						return fmt.Errorf("voucher %d: %w", voucherID, err)
					}
					return a.write(cmd.OutOrStdout(), export.VoucherDetail(d))
				}
				db := e.DayBook()
				if register {
					return a.write(cmd.OutOrStdout(), export.DayBookRegister(db.Register))
				}
				return a.write(cmd.OutOrStdout(), export.DayBookVouchers(db.Vouchers, db.Totals))
			})
		},
	}

	cmd.Flags().BoolVar(&register, "register", false, "list every posting line")
	cmd.Flags().Int64Var(&voucherID, "voucher", 0, "show one voucher split into party and other lines")

	return cmd
}

func newStatementCommand(opts *rootOptions) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "statement <ledger-id>",
		Short: "Show a ledger statement with running balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ledgerID, err := parseID(args[0], "ledger")
			if err != nil {
				return err
			}
			r, err := parseRange(from, to)
			if err != nil {
				return err
			}
			return opts.withEngine(cmd.Context(), func(a *app, e *engine.Engine) error {
				st, err := e.Statement(ledgerID, r)
				if err != nil {
					return fmt.Errorf("ledger %d: %w", ledgerID, err)
				}
				return a.write(cmd.OutOrStdout(), export.Statement(st))
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first date (YYYY-MM-DD); earlier postings fold into the opening")
	cmd.Flags().StringVar(&to, "to", "", "last date (YYYY-MM-DD)")

	return cmd
}

func parseRange(from, to string) (statement.Range, error) {
	var r statement.Range
	var err error
	if from != "" {
		if r.From, err = time.Parse(dateLayout, from); err != nil {
			return r, fmt.Errorf("invalid --from date %q", from)
		}
	}
	if to != "" {
		if r.To, err = time.Parse(dateLayout, to); err != nil {
			return r, fmt.Errorf("invalid --to date %q", to)
		}
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return r, fmt.Errorf("--to %s is before --from %s", to, from)
	}
	return r, nil
}

func newGroupCommand(opts *rootOptions) *cobra.Command {
	var monthly bool
	var month int
	var columns string

	cmd := &cobra.Command{
		Use:   "group <group-id|name>",
		Short: "Show a group summary, its monthly view or one month's ledgers",
		Example: `  ledgerview group "Sales Accounts"
  ledgerview group --monthly -- -14`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(cmd.Context(), func(a *app, e *engine.Engine) error {
				groupID, err := resolveGroup(e.Chart(), args[0])
				if err != nil {
					return err
				}
				var tbl export.Table
				switch {
				case month != 0:
					p, err := e.Particular(groupID, month-1)
					if err != nil {
						return fmt.Errorf("group %d: %w", groupID, err)
					}
					tbl = export.Particular(p)
				case monthly:
					m, err := e.Monthly(groupID)
					if err != nil {
						return fmt.Errorf("group %d: %w", groupID, err)
					}
					tbl = export.Monthly(m)
				default:
					s, err := e.Group(groupID, groups.ParseColumns(columns))
					if err != nil {
						return fmt.Errorf("group %d: %w", groupID, err)
					}
					tbl = export.GroupSummary(s)
				}
				return a.write(cmd.OutOrStdout(), tbl)
			})
		},
	}

	cmd.Flags().BoolVar(&monthly, "monthly", false, "show the twelve fiscal months")
	cmd.Flags().IntVar(&month, "month", 0, "show ledgers active in fiscal month 1-12")
	cmd.Flags().StringVar(&columns, "columns", "", "comma-separated amount columns: opening,debit,credit,closing")

	return cmd
}

// resolveGroup accepts a numeric id or a group name.
func resolveGroup(chart *groups.Service, arg string) (int64, error) {
	if id, err := parseID(arg, "group"); err == nil {
		return id, nil
	}
	g, ok := chart.FindByName(arg)
	if !ok {
		return 0, fmt.Errorf("group %q: %w", arg, engine.ErrGroupNotFound)
	}
	return g.ID, nil
}

func newGroupsCommand(opts *rootOptions) *cobra.Command {
	var nature string
	var tag string

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List the ledger group chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(cmd.Context(), func(a *app, e *engine.Engine) error {
				chart := e.Chart()
				var list []model.LedgerGroup
				switch {
				case nature != "":
					n, err := parseNature(nature)
					if err != nil {
						return err
					}
					list = chart.ByNature(n)
				case tag != "":
					list = chart.ByType(tag)
				default:
					list = chart.All()
				}
				return a.write(cmd.OutOrStdout(), export.Groups(list))
			})
		},
	}

	cmd.Flags().StringVar(&nature, "nature", "", "only groups of this nature: assets, liabilities, income, expenses")
	cmd.Flags().StringVar(&tag, "type", "", "only groups with this type tag, e.g. direct-expenses")
	cmd.MarkFlagsMutuallyExclusive("nature", "type")

	return cmd
}

func parseNature(s string) (model.Nature, error) {
	for _, n := range []model.Nature{model.NatureAssets, model.NatureLiabilities, model.NatureIncome, model.NatureExpenses} {
		if strings.EqualFold(strings.TrimSpace(s), string(n)) {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown nature %q", s)
}

func newTradingCommand(opts *rootOptions) *cobra.Command {
	var items bool

	cmd := &cobra.Command{
		Use:   "trading",
		Short: "Show the Trading and Profit & Loss account and publish the net result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(cmd.Context(), func(a *app, e *engine.Engine) error {
				return runTrading(cmd.Context(), cmd, a, e, trading.Options{Items: items})
			})
		},
	}

	cmd.Flags().BoolVar(&items, "items", false, "include the per-item inventory breakup")

	return cmd
}

func runTrading(ctx context.Context, cmd *cobra.Command, a *app, e *engine.Engine, opts trading.Options) error {
	st, pubErr := e.Trading(ctx, opts)
	if err := a.write(cmd.OutOrStdout(), export.Trading(st)...); err != nil {
		return err
	}
	if errors.Is(pubErr, model.ErrMissingIdentity) {
		a.logger.Warn("company id not configured; net result not published",
			zap.String("hint", "set company.id in ledgerview.yaml or LEDGERVIEW_COMPANY_ID"))
		return nil
	}
	return pubErr
}

func newColumnarCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "columnar sales|purchase",
		Short:     "Show the columnar sales or purchase register",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(columnar.Sales), string(columnar.Purchase)},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := columnar.Direction(args[0])
			return opts.withEngine(cmd.Context(), func(a *app, e *engine.Engine) error {
				return a.write(cmd.OutOrStdout(), export.Columnar(e.Columnar(dir)))
			})
		},
	}
}

func newGSTCommand(opts *rootOptions) *cobra.Command {
	var voucherType string

	cmd := &cobra.Command{
		Use:       "gst b2b|b2c",
		Short:     "Show the B2B or B2C GST register",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(gst.B2B), string(gst.B2C)},
		RunE: func(cmd *cobra.Command, args []string) error {
			vt, ok := model.ParseVoucherType(voucherType)
			if !ok {
				return fmt.Errorf("unknown voucher type %q", voucherType)
			}
			seg := gst.Segment(args[0])
			return opts.withEngine(cmd.Context(), func(a *app, e *engine.Engine) error {
				return a.write(cmd.OutOrStdout(), export.GSTRegister(e.GST(seg, vt)))
			})
		},
	}

	cmd.Flags().StringVar(&voucherType, "type", string(model.VoucherSales), "voucher type to register")

	return cmd
}

func newCheckCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the snapshot for consistency problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(cmd.Context(), func(a *app, e *engine.Engine) error {
				errs := e.Check()
				tbl := export.Validation(errs)
				for _, f := range e.Snapshot().FailedFiles() {
					tbl.Notes = append(tbl.Notes, "Unreadable: "+f)
				}
				if err := a.write(cmd.OutOrStdout(), tbl); err != nil {
					return err
				}
				if len(errs) > 0 {
					return fmt.Errorf("%d validation errors", len(errs))
				}
				return nil
			})
		},
	}
}
