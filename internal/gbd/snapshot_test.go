package gbd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gbd-mapping-generator/internal/diagnostic"
)

func TestLoadSnapshot_YAML(t *testing.T) {
	src, err := LoadSnapshot(filepath.Join("testdata", "snapshot.yaml"))
	require.NoError(t, err)

	causes, err := src.Table(context.Background(), TableCause)
	require.NoError(t, err)
	require.Len(t, causes, 3)
	assert.Equal(t, Known("All causes"), causes[0].String("cause_name"))

	missing, err := src.Table(context.Background(), "no_such_table")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestLoadSnapshot_Missing(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, diagnostic.ErrDependencyUnavailable)

	_, err = LoadSnapshot("")
	require.ErrorIs(t, err, diagnostic.ErrDependencyUnavailable)
}

func TestParseSnapshot_Invalid(t *testing.T) {
	_, err := ParseSnapshot([]byte("cause: 3\n"), "x.yaml")
	assert.ErrorContains(t, err, "expected a list of rows")

	_, err = ParseSnapshot([]byte("cause: [3]\n"), "x.yaml")
	assert.ErrorContains(t, err, "expected a mapping")

	_, err = ParseSnapshot([]byte("{}"), "x.csv")
	assert.ErrorContains(t, err, "unsupported snapshot format")
}

func TestSnapshot_RoundTrip(t *testing.T) {
	tables := map[string]Table{
		TableCovariate: {
			{"covariate_id": 881, "covariate_name": "Socio-demographic Index", "by_age": false, "dichotomous": nil},
		},
	}

	for _, name := range []string{"s.yaml", "s.json", "s.toml", "s.yaml.zst", "s.toml.zst"} {
		t.Run(name, func(t *testing.T) {
			data, err := MarshalSnapshot(tables, name)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, data, 0o644))

			src, err := LoadSnapshot(path)
			require.NoError(t, err)

			covs, err := NewAdapter(src).Covariates(context.Background())
			require.NoError(t, err)
			require.Len(t, covs, 1)
			assert.Equal(t, 881, covs[0].ID)
			assert.Equal(t, "Socio-demographic Index", covs[0].Name)
			assert.Equal(t, Known(false), covs[0].ByAge)
			assert.Equal(t, Unknown[bool](), covs[0].Dichotomous)
		})
	}
}

func TestOpenSource(t *testing.T) {
	ctx := context.Background()

	_, err := OpenSource(ctx, Options{})
	require.ErrorIs(t, err, diagnostic.ErrDependencyUnavailable)

	_, err = OpenSource(ctx, Options{Driver: "oracle", DSN: "x"})
	require.ErrorIs(t, err, diagnostic.ErrDependencyUnavailable)

	_, err = OpenSource(ctx, Options{Driver: DriverPostgres})
	require.ErrorIs(t, err, diagnostic.ErrDependencyUnavailable)

	src, err := OpenSource(ctx, Options{Snapshot: filepath.Join("testdata", "snapshot.yaml")})
	require.NoError(t, err)
	assert.NoError(t, src.Close())
}

func TestSnapshotSource_RejectsBadTableName(t *testing.T) {
	_, err := NewMemorySource(nil).Table(context.Background(), "cause; DROP TABLE cause")
	assert.ErrorIs(t, err, ErrUnknownTable)
}
