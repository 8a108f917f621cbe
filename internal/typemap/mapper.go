// Package typemap translates source-database type names into Edm primitive
// type names. A mapper is scoped to a single database dialect; its table
// comes from a YAML configuration file or from one of the built-in tables.
package typemap

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultType is returned for source types absent from the dialect table.
const DefaultType = "Edm.String"

// ErrUnknownDialect reports a dialect missing from the configuration.
// Construction fails hard rather than silently defaulting every type.
var ErrUnknownDialect = errors.New("dialect not present in type map configuration")

// Mapper converts source-dialect type names to Edm type names.
type Mapper struct {
	dialect string
	table   map[string]string
}

// New loads a YAML type-map file and scopes the mapper to one dialect. The
// file maps dialect names to source-type → Edm-type tables:
//
//	sqlserver:
//	  int: Edm.Int32
//	  nvarchar: Edm.String
//
// Dialect keys match case-insensitively with spaces removed, so
// "SQL Server" selects the "sqlserver" table.
func New(path, dialect string) (*Mapper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read type map: %w", err)
	}
	var tables map[string]map[string]string
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse type map: %w", err)
	}
	return NewFromTable(tables, dialect)
}

// NewFromTable builds a mapper from an in-memory dialect table, applying
// the same dialect validation as New.
func NewFromTable(tables map[string]map[string]string, dialect string) (*Mapper, error) {
	key := normalizeDialect(dialect)
	table, ok := tables[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", dialect, ErrUnknownDialect)
	}
	m := &Mapper{dialect: key, table: make(map[string]string, len(table))}
	for src, edm := range table {
		m.table[strings.ToLower(src)] = edm
	}
	return m, nil
}

// Default returns a mapper backed by the built-in table for the dialect.
func Default(dialect string) (*Mapper, error) {
	return NewFromTable(builtinTables, dialect)
}

// Dialect returns the normalized dialect key the mapper is scoped to.
func (m *Mapper) Dialect() string {
	return m.dialect
}

// Convert maps a source type name to its Edm equivalent. The lookup is
// case-insensitive and total: unknown names map to DefaultType.
func (m *Mapper) Convert(sourceType string) string {
	if edm, ok := m.table[strings.ToLower(sourceType)]; ok {
		return edm
	}
	return DefaultType
}

func normalizeDialect(dialect string) string {
	return strings.ToLower(strings.Join(strings.Fields(dialect), ""))
}
