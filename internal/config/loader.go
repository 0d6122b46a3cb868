package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Environment variable prefix for generator configuration.
const envPrefix = "GBDMAP"

// DefaultConfigName is the config file looked up in the working directory
// when none is given.
const DefaultConfigName = "gbdmap.yaml"

// DotEnvFile is loaded from the working directory when present.
const DotEnvFile = ".env"

// keys lists every configuration key, so the environment can set keys the
// config file does not mention.
var keys = []string{
	"source.driver",
	"source.dsn",
	"source.snapshot",
	"source.schema",
	"output.dir",
	"output.package",
	"resolve.duplicates",
	"resolve.explicit_reference_risks",
	"resolve.age_groups",
	"log.verbose",
	"log.timestamps",
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader with defaults and
// environment bindings.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	def := DefaultConfig()
	v.SetDefault("output.dir", def.Output.Dir)
	v.SetDefault("output.package", def.Output.Package)
	v.SetDefault("resolve.duplicates", def.Resolve.Duplicates)
	v.SetDefault("resolve.explicit_reference_risks", def.Resolve.ExplicitReferenceRisks)

	return &Loader{v: v}
}

// BindFlag makes flag override key when the user sets it.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("binding %s: no such flag", key)
	}

	return l.v.BindPFlag(key, flag)
}

// LoadDotEnv loads environment variables from path when the file exists.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	return nil
}

// Load reads configFile, or DefaultConfigName when empty, and merges it
// with the environment and bound flags. A missing file is not an error.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		configFile = DefaultConfigName
	}

	l.v.SetConfigFile(configFile)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
