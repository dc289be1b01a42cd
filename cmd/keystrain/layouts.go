package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/keystrain/internal/config"
	"github.com/verte-zerg/keystrain/internal/layout"
)

func newLayoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List built-in and user layouts",
		Args:  cobra.NoArgs,
		RunE:  runLayoutsCmd,
	}
}

func runLayoutsCmd(cmd *cobra.Command, _ []string) error {
	tables, err := layout.LoadAll(config.DefaultLayoutDir())
	if err != nil {
		return fmt.Errorf("failed to load layouts: %w", err)
	}
	idWidth := len("ID")
	for _, t := range tables {
		idWidth = max(idWidth, len(t.ID))
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%-*s  %5s  %3s  %s\n", idWidth, "ID", "KEYS", "ALT", "NAME"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, t := range tables {
		if _, err := fmt.Fprintf(out, "%-*s  %5d  %3d  %s\n", idWidth, t.ID, len(t.Keys), len(t.Alt), t.Name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
