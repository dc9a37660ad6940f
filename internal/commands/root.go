package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerview/internal/buildinfo"
)

// rootOptions holds the persistent flags every report command reads.
type rootOptions struct {
	dir        string
	configPath string
	format     string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "ledgerview",
		Short:   "Accounting reports over an exported ledger snapshot",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.dir, "dir", ".", "project directory")
	flags.StringVar(&opts.configPath, "config", "", "config file (default <dir>/ledgerview.yaml)")
	flags.StringVar(&opts.format, "format", "table", "output format: table, csv or json")

	rootCmd.AddCommand(
		newInitCommand(),
		newDaybookCommand(opts),
		newStatementCommand(opts),
		newGroupCommand(opts),
		newGroupsCommand(opts),
		newTradingCommand(opts),
		newColumnarCommand(opts),
		newGSTCommand(opts),
		newCheckCommand(opts),
		newScalarsCommand(opts),
	)

	return rootCmd
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q", what, s)
	}
	return id, nil
}
