package gbd

import (
	"context"
	"database/sql"
	"fmt"

	// Database drivers.
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"gbd-mapping-generator/internal/diagnostic"
	"gbd-mapping-generator/internal/output"
)

// SQLSource reads tables from a SQL database.
type SQLSource struct {
	db     *sql.DB
	driver string
	schema string
}

// OpenSQL opens and pings a database. driver is DriverSQLite or DriverPostgres.
func OpenSQL(ctx context.Context, driver, dsn, schema string) (*SQLSource, error) {
	if dsn == "" {
		return nil, diagnostic.Unavailable(nil, "no DSN configured for driver "+driver)
	}

	if schema != "" {
		if err := checkTableName(schema); err != nil {
			return nil, fmt.Errorf("schema: %w", err)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, diagnostic.Unavailable(err, "opening "+driver+" database")
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, diagnostic.Unavailable(err, "connecting to "+driver+" database")
	}

	output.Debug("metadata source opened", "driver", driver)

	return &SQLSource{db: db, driver: driver, schema: schema}, nil
}

// Table implements Source. Columns are read by name, so any column may be
// missing from the table.
func (s *SQLSource) Table(ctx context.Context, name string) (Table, error) {
	if err := checkTableName(name); err != nil {
		return nil, err
	}

	qualified := name
	if s.schema != "" {
		qualified = s.schema + "." + name
	}

	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+qualified)
	if err != nil {
		if ctx.Err() != nil {
			return nil, diagnostic.Unavailable(err, "querying "+qualified)
		}

		return nil, fmt.Errorf("querying %s: %w", qualified, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", qualified, err)
	}

	var table Table

	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))

		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", qualified, err)
		}

		row := make(Row, len(cols))
		for i, c := range cols {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
			} else {
				row[c] = values[i]
			}
		}

		table = append(table, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", qualified, err)
	}

	output.Debug("table read", "driver", s.driver, "table", qualified, "rows", len(table))

	return table, nil
}

// Close implements Source.
func (s *SQLSource) Close() error {
	return s.db.Close()
}
