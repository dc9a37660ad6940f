package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerview/internal/export"
)

func newScalarsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scalars",
		Short: "Inspect the published net profit and loss",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the published values for the configured company",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := opts.open(cmd.Context())
				if err != nil {
					return err
				}
				defer a.Close()

				tenant := a.cfg.Tenant()
				net, found, err := a.publisher.Read(cmd.Context(), tenant)
				if err != nil {
					return err
				}
				return a.write(cmd.OutOrStdout(), export.Scalars(tenant.CompanyID, net, found))
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List published values for every company in the store",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := opts.open(cmd.Context())
				if err != nil {
					return err
				}
				defer a.Close()

				values, err := a.publisher.List(cmd.Context())
				if err != nil {
					return err
				}
				return a.write(cmd.OutOrStdout(), export.PublishedScalars(values))
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete the published values for the configured company",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := opts.open(cmd.Context())
				if err != nil {
					return err
				}
				defer a.Close()

				tenant := a.cfg.Tenant()
				if err := a.publisher.Clear(cmd.Context(), tenant); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s scalars.\n", tenant.CompanyID)
				return nil
			},
		},
	)

	return cmd
}
