package builder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gbd-mapping-generator/internal/diagnostic"
	"gbd-mapping-generator/internal/gbd"
	"gbd-mapping-generator/internal/gen"
	"gbd-mapping-generator/internal/match"
	"gbd-mapping-generator/internal/resolve"
)

const fixture = "../gbd/testdata/snapshot.yaml"

func testOptions(t *testing.T) Options {
	t.Helper()

	return Options{
		Source:    gbd.Options{Driver: gbd.DriverSnapshot, Snapshot: fixture},
		Resolve:   resolve.DefaultConfig(),
		Gen:       gen.DefaultConfig(),
		OutputDir: filepath.Join(t.TempDir(), "gbdmapping"),
	}
}

func TestParseTargets(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"default is all", nil, []string{
			"id", "base_template", "etiology", "sequela", "cause", "risk_factor", "covariate", "coverage_gap",
		}},
		{"build order", []string{"cause", "id"}, []string{"id", "cause"}},
		{"repeats and case", []string{"Cause", "cause"}, []string{"cause"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTargets(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTargets_Unknown(t *testing.T) {
	_, err := ParseTargets([]string{"casue"})
	require.Error(t, err)

	var unknown *UnknownTargetError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "casue", unknown.Name)
	assert.Equal(t, []string{"cause"}, unknown.Suggestions)
	assert.Contains(t, err.Error(), `did you mean cause?`)
}

func TestRun_All(t *testing.T) {
	opts := testOptions(t)

	targets, err := ParseTargets([]string{"all"})
	require.NoError(t, err)

	res, err := New(opts).Run(context.Background(), targets)
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Positive(t, res.Entities)
	assert.Len(t, res.Files, 2+2*6)

	for _, name := range []string{
		"id.go", "base_template.go", "cause_template.go", "cause.go",
		"risk_factor.go", "coverage_gap_template.go",
	} {
		assert.FileExists(t, filepath.Join(opts.OutputDir, name))
	}

	cause, err := os.ReadFile(filepath.Join(opts.OutputDir, "cause.go"))
	require.NoError(t, err)
	assert.Contains(t, string(cause), "func BuildCauses(")
	assert.NotContains(t, string(cause), res.RunID)
}

func TestRun_Deterministic(t *testing.T) {
	targets, err := ParseTargets(nil)
	require.NoError(t, err)

	first, err := New(testOptions(t)).Run(context.Background(), targets)
	require.NoError(t, err)

	second, err := New(testOptions(t)).Run(context.Background(), targets)
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	require.Len(t, second.Files, len(first.Files))

	for i := range first.Files {
		assert.Equal(t, first.Files[i], second.Files[i])
	}
}

func TestRun_SingleKind(t *testing.T) {
	opts := testOptions(t)

	res, err := New(opts).Run(context.Background(), []string{"risk_factor"})
	require.NoError(t, err)
	require.Len(t, res.Files, 2)
	assert.Equal(t, "risk_factor_template.go", res.Files[0].Filename)
	assert.Equal(t, "risk_factor.go", res.Files[1].Filename)

	// Causes are resolved for linking but not emitted.
	assert.NoFileExists(t, filepath.Join(opts.OutputDir, "cause.go"))
}

func TestRun_IDWithoutSource(t *testing.T) {
	opts := testOptions(t)
	opts.Source = gbd.Options{}

	res, err := New(opts).Run(context.Background(), []string{TargetID, TargetBase})
	require.NoError(t, err)
	assert.Len(t, res.Files, 2)
	assert.Zero(t, res.Entities)
}

func TestRun_SourceUnavailable(t *testing.T) {
	opts := testOptions(t)
	opts.Source.Snapshot = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(opts).Run(context.Background(), []string{"cause"})
	require.ErrorIs(t, err, diagnostic.ErrDependencyUnavailable)
	assert.NoDirExists(t, opts.OutputDir)
}

func TestRun_ResolutionErrorWritesNothing(t *testing.T) {
	opts := testOptions(t)

	src := gbd.NewMemorySource(map[string]gbd.Table{
		gbd.TableCovariate: {
			{"covariate_id": 1, "covariate_name": "sdi"},
			{"covariate_id": 2, "covariate_name": "SDI"},
		},
	})

	opts.Resolve.Duplicates = match.PolicyFail

	_, err := NewWithSource(opts, src).Run(context.Background(), []string{TargetID, "covariate"})
	require.ErrorIs(t, err, diagnostic.ErrDuplicateNormalizedName)
	assert.NoDirExists(t, opts.OutputDir)
}

func TestRun_Diagnostics(t *testing.T) {
	opts := testOptions(t)

	src := gbd.NewMemorySource(map[string]gbd.Table{
		gbd.TableCovariate: {
			{"covariate_id": 1, "covariate_name": "sdi"},
			{"covariate_id": 2, "covariate_name": "SDI"},
		},
	})

	res, err := NewWithSource(opts, src).Run(context.Background(), []string{"covariate"})
	require.NoError(t, err)

	require.Len(t, res.Diagnostics.Warnings, 1)
	assert.Equal(t, diagnostic.CodeDuplicateDropped, res.Diagnostics.Warnings[0].Code)

	require.Len(t, res.Diagnostics.Infos, 1)
	assert.Equal(t, diagnostic.CodeResolved, res.Diagnostics.Infos[0].Code)
	assert.Equal(t, "resolved 1, dropped 1 duplicates", res.Diagnostics.Infos[0].Message)
}
