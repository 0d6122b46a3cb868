// Package config loads generator settings from flags, the environment, a
// .env file and an optional YAML config file.
package config

import (
	"fmt"

	"gbd-mapping-generator/internal/gbd"
	"gbd-mapping-generator/internal/gen"
	"gbd-mapping-generator/internal/match"
	"gbd-mapping-generator/internal/resolve"
)

// SourceConfig selects the metadata source.
type SourceConfig struct {
	// Driver is sqlite, postgres or snapshot.
	// Env: GBDMAP_SOURCE_DRIVER
	Driver string `mapstructure:"driver"`

	// DSN is the data source name of a SQL source.
	// Env: GBDMAP_SOURCE_DSN
	DSN string `mapstructure:"dsn"`

	// Snapshot is the path of a snapshot file.
	// Env: GBDMAP_SOURCE_SNAPSHOT
	Snapshot string `mapstructure:"snapshot"`

	// Schema qualifies SQL table names.
	// Env: GBDMAP_SOURCE_SCHEMA
	Schema string `mapstructure:"schema"`
}

// OutputConfig places the generated package.
type OutputConfig struct {
	// Dir receives the generated files. Default: ./gbdmapping
	Dir string `mapstructure:"dir"`

	// Package is the generated package name. Default: gbdmapping
	Package string `mapstructure:"package"`
}

// ResolveConfig tunes entity resolution.
type ResolveConfig struct {
	// Duplicates is drop (default) or fail.
	Duplicates string `mapstructure:"duplicates"`

	// ExplicitReferenceRisks are rei ids whose polytomous category map
	// already holds the reference category. Default: [128, 339]
	ExplicitReferenceRisks []int `mapstructure:"explicit_reference_risks"`

	// AgeGroups is the path of an age-group table overriding the built-in one.
	AgeGroups string `mapstructure:"age_groups"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	Verbose bool `mapstructure:"verbose"`

	// Timestamps controls timestamps in log output. Nil follows Verbose.
	Timestamps *bool `mapstructure:"timestamps"`
}

// Config is the generator configuration.
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Output  OutputConfig  `mapstructure:"output"`
	Resolve ResolveConfig `mapstructure:"resolve"`
	Log     LogConfig     `mapstructure:"log"`
}

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	r := resolve.DefaultConfig()
	g := gen.DefaultConfig()

	return &Config{
		Output: OutputConfig{
			Dir:     g.OutputDir,
			Package: g.PackageName,
		},
		Resolve: ResolveConfig{
			Duplicates:             string(r.Duplicates),
			ExplicitReferenceRisks: r.ExplicitReferenceRisks,
		},
	}
}

// SourceOptions returns the options that open the metadata source.
func (c *Config) SourceOptions() gbd.Options {
	return gbd.Options{
		Driver:   c.Source.Driver,
		DSN:      c.Source.DSN,
		Snapshot: c.Source.Snapshot,
		Schema:   c.Source.Schema,
	}
}

// GenConfig returns the emitter configuration.
func (c *Config) GenConfig() gen.Config {
	return gen.Config{PackageName: c.Output.Package, OutputDir: c.Output.Dir}
}

// ResolverConfig returns the resolution configuration, reading the
// age-group table when one is configured.
func (c *Config) ResolverConfig() (resolve.Config, error) {
	cfg := resolve.DefaultConfig()

	policy, err := match.ParseDuplicatePolicy(c.Resolve.Duplicates)
	if err != nil {
		return resolve.Config{}, fmt.Errorf("resolve.duplicates: %w", err)
	}

	cfg.Duplicates = policy

	if c.Resolve.ExplicitReferenceRisks != nil {
		cfg.ExplicitReferenceRisks = c.Resolve.ExplicitReferenceRisks
	}

	if c.Resolve.AgeGroups != "" {
		ages, err := resolve.LoadAgeTable(c.Resolve.AgeGroups)
		if err != nil {
			return resolve.Config{}, fmt.Errorf("resolve.age_groups: %w", err)
		}

		cfg.Ages = ages
	}

	return cfg, nil
}
