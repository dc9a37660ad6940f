package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerview/internal/config"
	"github.com/cleared-dev/ledgerview/internal/groups"
	"github.com/cleared-dev/ledgerview/internal/snapshot"
)

func newInitCommand() *cobra.Command {
	var companyID string
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledgerview project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, companyID, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized ledgerview project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&companyID, "company-id", "", "company id used to namespace published results")
	cmd.Flags().StringVar(&name, "name", "", "company name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runInit(dir, companyID, name string) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default(companyID, name)
	dataDir := cfg.DataPath(dir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}

	// The chart starts with the built-in groups; custom groups are appended
	// by hand or replaced by an exported groups.json.
	f, err := os.Create(filepath.Join(dataDir, snapshot.FileGroupsCSV))
	if err != nil {
		return fmt.Errorf("creating groups file: %w", err)
	}
	defer f.Close()
	if err := groups.WriteGroups(f, groups.DefaultGroups()); err != nil {
		return fmt.Errorf("writing groups: %w", err)
	}
	return f.Close()
}
