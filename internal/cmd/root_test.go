package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gbd-mapping-generator/internal/output"
)

const fixture = "../gbd/testdata/snapshot.yaml"

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	prev := output.Stdout
	output.Stdout = &out

	t.Cleanup(func() { output.Stdout = prev })

	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestRoot_Subcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"build", "kinds", "snapshot", "version"} {
		c, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}

	for name := range flagKeys {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}
}

func TestKinds(t *testing.T) {
	out, err := execute(t, "kinds")
	require.NoError(t, err)

	assert.Contains(t, out, "base_template")
	assert.Contains(t, out, "risk_factor")
	assert.Contains(t, out, "needs")
	assert.Contains(t, out, "all")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "gbd-mapping-generator version "+Version)
}

func TestBuild_All(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gbdmapping")

	out, err := execute(t, "build", "--snapshot", fixture, "-o", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "cause_template.go")
	assert.Contains(t, out, "Generated 14 files")

	for _, name := range []string{"id.go", "base_template.go", "cause.go", "risk_factor.go"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestBuild_PackageFlag(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "build", "id", "--snapshot", fixture, "-o", dir, "--package", "mapping")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "id.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "package mapping\n")
}

func TestBuild_UnknownKind(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	_, err := execute(t, "build", "casue", "--snapshot", fixture, "-o", dir)
	require.Error(t, err)

	assert.Equal(t, ExitGeneralError, ExitCodeFromError(err))
	assert.Contains(t, err.Error(), "did you mean cause?")
	assert.NoDirExists(t, dir)
}

func TestBuild_SourceUnavailable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	_, err := execute(t, "build", "--snapshot", filepath.Join(t.TempDir(), "missing.yaml"), "-o", dir)
	require.Error(t, err)

	assert.Equal(t, ExitDependencyUnavailable, ExitCodeFromError(err))
	assert.NoDirExists(t, dir)
}

func TestBuild_BadDuplicatePolicy(t *testing.T) {
	_, err := execute(t, "build", "--snapshot", fixture, "--duplicates", "keep")
	require.Error(t, err)

	assert.Equal(t, ExitGeneralError, ExitCodeFromError(err))
	assert.Contains(t, err.Error(), "resolve.duplicates")
}

func TestBuild_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "generated")
	cfg := filepath.Join(dir, "gbdmap.yaml")

	abs, err := filepath.Abs(fixture)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(cfg, []byte(
		"source:\n  snapshot: "+abs+"\noutput:\n  dir: "+out+"\n  package: fromfile\n"), 0o644))

	_, err = execute(t, "build", "base_template", "--config", cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "base_template.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "package fromfile\n")
}

func TestSnapshot_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	snap := filepath.Join(dir, "metadata.json.zst")

	out, err := execute(t, "snapshot", snap, "--snapshot", fixture)
	require.NoError(t, err)
	assert.Contains(t, out, snap)
	assert.FileExists(t, snap)

	fromFixture := filepath.Join(dir, "a")
	fromCopy := filepath.Join(dir, "b")

	_, err = execute(t, "build", "--snapshot", fixture, "-o", fromFixture)
	require.NoError(t, err)

	_, err = execute(t, "build", "--snapshot", snap, "-o", fromCopy)
	require.NoError(t, err)

	for _, name := range []string{"cause.go", "risk_factor.go", "sequela.go", "coverage_gap.go"} {
		want, err := os.ReadFile(filepath.Join(fromFixture, name))
		require.NoError(t, err)

		got, err := os.ReadFile(filepath.Join(fromCopy, name))
		require.NoError(t, err)

		assert.Equal(t, string(want), string(got), name)
	}
}

func TestSnapshot_RequiresFile(t *testing.T) {
	_, err := execute(t, "snapshot")
	require.Error(t, err)
}
