package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gbd-mapping-generator/internal/match"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./gbdmapping", cfg.Output.Dir)
	assert.Equal(t, "gbdmapping", cfg.Output.Package)
	assert.Equal(t, "drop", cfg.Resolve.Duplicates)
	assert.Equal(t, []int{128, 339}, cfg.Resolve.ExplicitReferenceRisks)
	assert.Empty(t, cfg.Source.Driver)
	assert.Nil(t, cfg.Log.Timestamps)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, t.TempDir(), "gbdmap.yaml", `
source:
  driver: snapshot
  snapshot: testdata/gbd.yaml.zst
output:
  dir: out
resolve:
  duplicates: fail
  explicit_reference_risks: [128]
log:
  timestamps: false
`)

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "snapshot", cfg.Source.Driver)
	assert.Equal(t, "testdata/gbd.yaml.zst", cfg.Source.Snapshot)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "gbdmapping", cfg.Output.Package)
	assert.Equal(t, "fail", cfg.Resolve.Duplicates)
	assert.Equal(t, []int{128}, cfg.Resolve.ExplicitReferenceRisks)
	require.NotNil(t, cfg.Log.Timestamps)
	assert.False(t, *cfg.Log.Timestamps)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "gbdmap.yaml", "source: [unclosed\n")

	_, err := NewLoader().Load(path)
	require.Error(t, err)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, t.TempDir(), "gbdmap.yaml", "output:\n  dir: from-file\n  package: filepkg\n")

	t.Setenv("GBDMAP_OUTPUT_DIR", "from-env")
	t.Setenv("GBDMAP_OUTPUT_PACKAGE", "envpkg")
	t.Setenv("GBDMAP_SOURCE_DSN", "postgres://gbd@localhost/shared")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "")

	l := NewLoader()
	require.NoError(t, l.BindFlag("output.dir", flags.Lookup("output")))
	require.NoError(t, flags.Parse([]string{"--output", "from-flag"}))

	cfg, err := l.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.Output.Dir)
	assert.Equal(t, "envpkg", cfg.Output.Package)
	assert.Equal(t, "postgres://gbd@localhost/shared", cfg.Source.DSN)
}

func TestBindFlag_Missing(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.Error(t, NewLoader().BindFlag("output.dir", flags.Lookup("nope")))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, LoadDotEnv(filepath.Join(dir, ".env")), "missing file is ignored")

	t.Setenv("GBDMAP_SOURCE_DRIVER", "")
	require.NoError(t, os.Unsetenv("GBDMAP_SOURCE_DRIVER"))
	t.Setenv("GBDMAP_SOURCE_SCHEMA", "kept")

	path := writeFile(t, dir, ".env", "GBDMAP_SOURCE_DRIVER=sqlite\nGBDMAP_SOURCE_SCHEMA=shared\n")
	require.NoError(t, LoadDotEnv(path))

	cfg, err := NewLoader().Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Source.Driver)
	assert.Equal(t, "kept", cfg.Source.Schema)
}

func TestResolverConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := DefaultConfig().ResolverConfig()
		require.NoError(t, err)
		assert.Equal(t, match.PolicyDrop, cfg.Duplicates)
		assert.Equal(t, []int{128, 339}, cfg.ExplicitReferenceRisks)
		assert.Equal(t, "gbd_2019", cfg.Ages.Name)
	})

	t.Run("fail policy and age table", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "ages.yaml", "name: custom\nedges:\n  - {age: 0, start: 2}\n")

		c := DefaultConfig()
		c.Resolve.Duplicates = "FAIL"
		c.Resolve.AgeGroups = path

		cfg, err := c.ResolverConfig()
		require.NoError(t, err)
		assert.Equal(t, match.PolicyFail, cfg.Duplicates)
		assert.Equal(t, "custom", cfg.Ages.Name)
	})

	t.Run("bad policy", func(t *testing.T) {
		c := DefaultConfig()
		c.Resolve.Duplicates = "keep-all"

		_, err := c.ResolverConfig()
		require.ErrorContains(t, err, "resolve.duplicates")
	})

	t.Run("missing age table", func(t *testing.T) {
		c := DefaultConfig()
		c.Resolve.AgeGroups = filepath.Join(t.TempDir(), "none.yaml")

		_, err := c.ResolverConfig()
		require.ErrorContains(t, err, "resolve.age_groups")
	})
}

func TestConfig_Options(t *testing.T) {
	c := DefaultConfig()
	c.Source = SourceConfig{Driver: "postgres", DSN: "dsn", Schema: "shared"}

	opts := c.SourceOptions()
	assert.Equal(t, "postgres", opts.Driver)
	assert.Equal(t, "shared", opts.Schema)

	g := c.GenConfig()
	assert.Equal(t, "gbdmapping", g.PackageName)
	assert.Equal(t, "./gbdmapping", g.OutputDir)
}
