package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"gbd-mapping-generator/internal/builder"
	"gbd-mapping-generator/internal/diagnostic"
	"gbd-mapping-generator/internal/output"
)

// NewBuildCmd creates the build command.
func NewBuildCmd(g *GlobalConfig) *cobra.Command {
	var debug bool

	c := &cobra.Command{
		Use:   "build [kind...]",
		Short: "Generate the mapping package",
		Long: `Generate the mapping package for the given kinds, or for every kind when
none is given. Run "gbd-mapping-generator kinds" to list the kinds.

Nothing is written unless every requested kind generates.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, g, args, debug)
		},
	}

	c.Flags().BoolVar(&debug, "debug", false, "Dump the raw record behind a resolution error")

	return c
}

func runBuild(cmd *cobra.Command, g *GlobalConfig, args []string, debug bool) error {
	targets, err := builder.ParseTargets(args)
	if err != nil {
		return NewExitError(err, ExitGeneralError)
	}

	resolveCfg, err := g.Config.ResolverConfig()
	if err != nil {
		return NewExitError(err, ExitGeneralError)
	}

	opts := builder.Options{
		Source:    g.Config.SourceOptions(),
		Resolve:   resolveCfg,
		Gen:       g.Config.GenConfig(),
		OutputDir: g.Config.Output.Dir,
	}

	res, err := builder.New(opts).Run(cmd.Context(), targets)
	if err != nil {
		reportBuildError(err, debug)

		return &ExitError{Err: err, Code: ExitCodeFromError(err), Printed: true}
	}

	for _, f := range res.Files {
		output.Println(output.FormatWritten(f.Filename, filepath.Join(opts.OutputDir, f.Filename)))
	}

	output.Println(output.FormatSummary(len(res.Files), res.Entities, len(res.Diagnostics.Warnings)))

	return nil
}

// reportBuildError logs err and, in debug mode, dumps the raw record of a
// resolution error.
func reportBuildError(err error, debug bool) {
	output.Error("build failed", "error", err)

	var de *diagnostic.Error
	if errors.As(err, &de) {
		output.Debug("failing entity", "code", de.Code, "kind", de.Kind, "id", de.ID, "field", de.Field)
	}

	if !debug {
		return
	}

	if row, ok := diagnostic.RowOf(err); ok {
		fmt.Fprintln(os.Stderr, "raw record:")
		spew.Fdump(os.Stderr, row)
	}
}
