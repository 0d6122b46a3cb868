// Package cmd provides the gbd-mapping-generator commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gbd-mapping-generator/internal/config"
	"gbd-mapping-generator/internal/output"
)

// GlobalConfig holds the flags and configuration shared by every command.
type GlobalConfig struct {
	ConfigFile string
	Verbose    bool
	Timestamps bool

	loader *config.Loader
	// Config is loaded before any command runs.
	Config *config.Config
}

// flagKeys maps persistent flags to configuration keys.
var flagKeys = map[string]string{
	"output":     "output.dir",
	"package":    "output.package",
	"driver":     "source.driver",
	"dsn":        "source.dsn",
	"snapshot":   "source.snapshot",
	"schema":     "source.schema",
	"duplicates": "resolve.duplicates",
	"age-groups": "resolve.age_groups",
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	g := &GlobalConfig{loader: config.NewLoader()}

	rootCmd := &cobra.Command{
		Use:   "gbd-mapping-generator",
		Short: "Generate the GBD entity mapping package",
		Long: `gbd-mapping-generator reads GBD metadata and generates a Go package of typed
records describing every cause, risk factor, sequela, etiology, covariate
and coverage gap.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.initialize(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.ConfigFile, "config", "", "Path to config file (default "+config.DefaultConfigName+")")
	flags.BoolVarP(&g.Verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVar(&g.Timestamps, "timestamps", false, "Show timestamps in log output")
	flags.StringP("output", "o", "", "Output directory (env: GBDMAP_OUTPUT_DIR)")
	flags.String("package", "", "Generated package name (env: GBDMAP_OUTPUT_PACKAGE)")
	flags.String("driver", "", "Metadata source: sqlite, postgres or snapshot (env: GBDMAP_SOURCE_DRIVER)")
	flags.String("dsn", "", "Database DSN (env: GBDMAP_SOURCE_DSN)")
	flags.String("snapshot", "", "Snapshot file (env: GBDMAP_SOURCE_SNAPSHOT)")
	flags.String("schema", "", "SQL schema of the metadata tables (env: GBDMAP_SOURCE_SCHEMA)")
	flags.String("duplicates", "", "Duplicate name policy: drop or fail (env: GBDMAP_RESOLVE_DUPLICATES)")
	flags.String("age-groups", "", "Age group table overriding the built-in one")

	for name, key := range flagKeys {
		if err := g.loader.BindFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(NewBuildCmd(g))
	rootCmd.AddCommand(NewKindsCmd())
	rootCmd.AddCommand(NewSnapshotCmd(g))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initialize loads .env and the configuration, then sets up logging.
func (g *GlobalConfig) initialize(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(config.DotEnvFile); err != nil {
		return err
	}

	cfg, err := g.loader.Load(g.ConfigFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	g.Config = cfg

	// Precedence: flag > config > default.
	logCfg := output.LogConfig{Verbose: g.Verbose || cfg.Log.Verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(g.Timestamps)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}

	output.SetupLogging(logCfg)

	output.Debug("initializing CLI",
		"config", g.ConfigFile,
		"driver", cfg.Source.Driver,
		"output", cfg.Output.Dir,
		"package", cfg.Output.Package,
	)

	return nil
}
