package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gbd-mapping-generator/internal/gbd"
	"gbd-mapping-generator/internal/output"
)

// NewSnapshotCmd creates the snapshot command.
func NewSnapshotCmd(g *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <file>",
		Short: "Copy the metadata tables of the source into a snapshot file",
		Long: `Copy every metadata table the generator reads from the configured source
into a snapshot file. The format follows the extension: .yaml, .yml, .json
or .toml, optionally followed by .zst for zstd compression.

A snapshot can then be used as the source with --snapshot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd, g, args[0])
		},
	}
}

func runSnapshot(cmd *cobra.Command, g *GlobalConfig, path string) error {
	ctx := cmd.Context()

	src, err := gbd.OpenSource(ctx, g.Config.SourceOptions())
	if err != nil {
		return NewExitError(err, ExitCodeFromError(err))
	}
	defer src.Close()

	var tables map[string]gbd.Table

	err = output.RunWithSpinner(ctx, "Reading GBD metadata", func(ctx context.Context) error {
		var derr error
		tables, derr = gbd.Dump(ctx, src, gbd.AllTables)

		return derr
	})
	if err != nil {
		return NewExitError(err, ExitCodeFromError(err))
	}

	data, err := gbd.MarshalSnapshot(tables, path)
	if err != nil {
		return NewExitError(fmt.Errorf("encoding snapshot: %w", err), ExitGeneralError)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return NewExitError(fmt.Errorf("writing snapshot: %w", err), ExitGeneralError)
	}

	rows := 0
	for _, t := range tables {
		rows += len(t)
	}

	output.Println(output.FormatWritten("snapshot", path))
	output.Info("snapshot written", "tables", len(tables), "rows", rows)

	return nil
}
