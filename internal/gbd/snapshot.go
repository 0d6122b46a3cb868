package gbd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"gbd-mapping-generator/internal/common"
	"gbd-mapping-generator/internal/diagnostic"
)

const zstdExt = ".zst"

// SnapshotSource serves tables held in memory, typically loaded from a
// snapshot file. A table missing from the snapshot reads as empty.
type SnapshotSource struct {
	tables map[string]Table
}

// NewMemorySource returns a SnapshotSource over the given tables.
func NewMemorySource(tables map[string]Table) *SnapshotSource {
	if tables == nil {
		tables = map[string]Table{}
	}

	return &SnapshotSource{tables: tables}
}

// LoadSnapshot reads a snapshot file. The format follows the extension:
// .yaml, .yml, .json or .toml, optionally followed by .zst for zstd
// compression. The document maps table names to lists of rows.
func LoadSnapshot(path string) (*SnapshotSource, error) {
	if path == "" {
		return nil, diagnostic.Unavailable(nil, "no snapshot path configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diagnostic.Unavailable(err, "reading snapshot")
	}

	tables, err := ParseSnapshot(data, path)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}

	return NewMemorySource(tables), nil
}

// ParseSnapshot decodes snapshot bytes. name selects the format by extension.
func ParseSnapshot(data []byte, name string) (map[string]Table, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == zstdExt {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()

		data, err = dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("decompressing: %w", err)
		}

		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(name, filepath.Ext(name))))
	}

	var doc map[string]any

	switch ext {
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case ".yaml", ".yml", ".json":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", ext)
	}

	tables := make(map[string]Table, len(doc))

	for name, v := range doc {
		list, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("table %s: expected a list of rows, got %T", name, v)
		}

		table := make(Table, 0, len(list))

		for i, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("table %s row %d: expected a mapping, got %T", name, i, item)
			}

			table = append(table, Row(m))
		}

		tables[name] = table
	}

	return tables, nil
}

// MarshalSnapshot encodes tables in the format selected by name's extension.
func MarshalSnapshot(tables map[string]Table, name string) ([]byte, error) {
	compress := strings.EqualFold(filepath.Ext(name), zstdExt)
	if compress {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	doc := make(map[string][]map[string]any, len(tables))
	for _, k := range common.SortedKeys(tables) {
		rows := make([]map[string]any, len(tables[k]))
		for i, r := range tables[k] {
			rows[i] = compactRow(r)
		}

		doc[k] = rows
	}

	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		data, err = toml.Marshal(doc)
	case ".json":
		data, err = json.MarshalIndent(doc, "", "  ")
	case ".yaml", ".yml":
		var buf bytes.Buffer

		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)

		if err = enc.Encode(doc); err == nil {
			err = enc.Close()
		}

		data = buf.Bytes()
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", filepath.Ext(name))
	}

	if err != nil {
		return nil, err
	}

	if !compress {
		return data, nil
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()

	return enc.EncodeAll(data, nil), nil
}

// compactRow drops null columns; absent and null read the same.
func compactRow(r Row) map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		if r.Has(k) {
			out[k] = v
		}
	}

	return out
}

// Table implements Source.
func (s *SnapshotSource) Table(_ context.Context, name string) (Table, error) {
	if err := checkTableName(name); err != nil {
		return nil, err
	}

	return s.tables[name], nil
}

// Close implements Source.
func (s *SnapshotSource) Close() error {
	return nil
}

// Dump reads the named tables from src into memory.
func Dump(ctx context.Context, src Source, names []string) (map[string]Table, error) {
	out := make(map[string]Table, len(names))

	for _, name := range names {
		t, err := src.Table(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("dumping %s: %w", name, err)
		}

		out[name] = t
	}

	return out, nil
}
