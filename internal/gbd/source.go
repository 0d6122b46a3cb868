package gbd

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gbd-mapping-generator/internal/diagnostic"
)

// Table names read by the adapter.
const (
	TableCause                = "cause"
	TableModelableEntityCause = "modelable_entity_cause"
	TableSequela              = "sequela"
	TableEtiology             = "etiology"
	TableCauseEtiology        = "cause_etiology"
	TableRisk                 = "risk"
	TableRiskCategory         = "risk_category"
	TableCauseRisk            = "cause_risk"
	TablePafOfOne             = "paf_of_one"
	TableMediation            = "mediation"
	TableCovariate            = "covariate"
	TableCoverageGap          = "coverage_gap"
	TableCoverageGapLevel     = "coverage_gap_level"
	TableCoverageGapCause     = "coverage_gap_cause"
	TableCoverageGapRisk      = "coverage_gap_risk"
)

// AllTables lists every table the adapter may read, in a stable order.
var AllTables = []string{
	TableCause, TableModelableEntityCause, TableSequela, TableEtiology, TableCauseEtiology,
	TableRisk, TableRiskCategory, TableCauseRisk, TablePafOfOne, TableMediation,
	TableCovariate, TableCoverageGap, TableCoverageGapLevel, TableCoverageGapCause,
	TableCoverageGapRisk,
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Source gives access to metadata tables.
type Source interface {
	// Table returns every row of the named table.
	Table(ctx context.Context, name string) (Table, error)
	// Close releases the underlying connection or file.
	Close() error
}

// Source drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverSnapshot = "snapshot"
)

// Options selects and configures a Source.
type Options struct {
	// Driver is one of DriverSQLite, DriverPostgres or DriverSnapshot.
	// Empty means DriverSnapshot when Snapshot is set.
	Driver string
	// DSN is the data source name for SQL drivers.
	DSN string
	// Snapshot is the path of a snapshot file.
	Snapshot string
	// Schema optionally qualifies SQL table names (e.g. "shared").
	Schema string
}

// OpenSource opens the Source described by opts. Every failure to reach the
// source wraps diagnostic.ErrDependencyUnavailable.
func OpenSource(ctx context.Context, opts Options) (Source, error) {
	driver := strings.ToLower(opts.Driver)
	if driver == "" && opts.Snapshot != "" {
		driver = DriverSnapshot
	}

	switch driver {
	case DriverSnapshot:
		return LoadSnapshot(opts.Snapshot)
	case DriverSQLite, DriverPostgres:
		return OpenSQL(ctx, driver, opts.DSN, opts.Schema)
	case "":
		return nil, diagnostic.Unavailable(nil, "no metadata source configured")
	default:
		return nil, diagnostic.Unavailable(
			fmt.Errorf("unknown driver %q", opts.Driver),
			"opening metadata source")
	}
}

// ErrUnknownTable is returned for table names the adapter does not read.
var ErrUnknownTable = errors.New("unknown table")

func checkTableName(name string) error {
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}

	return nil
}
