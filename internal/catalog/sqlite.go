package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteExtractor reads catalog rows from a SQLite database file.
type SQLiteExtractor struct {
	db *sql.DB
}

// NewSQLiteExtractor opens the SQLite database at filePath.
func NewSQLiteExtractor(ctx context.Context, filePath string) (*SQLiteExtractor, error) {
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &SQLiteExtractor{db: db}, nil
}

// Close closes the database connection.
func (e *SQLiteExtractor) Close() error {
	return e.db.Close()
}

// ExtractRows reads catalog rows for the requested tables, or for every
// table in the database when tables is empty.
func (e *SQLiteExtractor) ExtractRows(ctx context.Context, tables []string) ([]Row, error) {
	tableNames, err := e.getTableNames(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to get table names: %w", err)
	}

	var rows []Row
	for _, tableName := range tableNames {
		tableRows, err := e.extractTableRows(ctx, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to extract table %s: %w", tableName, err)
		}
		rows = append(rows, tableRows...)
	}
	return rows, nil
}

// getTableNames returns the list of tables to extract
func (e *SQLiteExtractor) getTableNames(ctx context.Context, requestedTables []string) ([]string, error) {
	if len(requestedTables) > 0 {
		return requestedTables, nil
	}

	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`

	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tableList []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tableList = append(tableList, tableName)
	}

	return tableList, rows.Err()
}

// extractTableRows reads column metadata via PRAGMA table_info and joins in
// the table's foreign keys from PRAGMA foreign_key_list.
func (e *SQLiteExtractor) extractTableRows(ctx context.Context, tableName string) ([]Row, error) {
	foreignKeys, err := e.extractForeignKeys(ctx, tableName)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("PRAGMA table_info(%s)", tableName)
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var (
			cid            int
			name, declared string
			notNull, pk    int
			defaultValue   sql.NullString
		)
		if err := rows.Scan(&cid, &name, &declared, &notNull, &defaultValue, &pk); err != nil {
			return nil, err
		}

		dataType, maxLength, precision, scale := parseDeclaredType(declared)
		row := Row{
			TableName:    tableName,
			ColumnName:   name,
			DataType:     dataType,
			IsPrimaryKey: pk > 0,
			IsNullable:   notNull == 0,
			MaxLength:    maxLength,
			Precision:    precision,
			Scale:        scale,
		}
		if fk, ok := foreignKeys[name]; ok {
			row.ForeignKeyColumn = name
			row.ReferencedTable = fk.table
			row.ReferencedColumn = fk.column
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

type foreignKeyTarget struct {
	table  string
	column string
}

// extractForeignKeys maps each referencing column to its target.
func (e *SQLiteExtractor) extractForeignKeys(ctx context.Context, tableName string) (map[string]foreignKeyTarget, error) {
	query := fmt.Sprintf("PRAGMA foreign_key_list(%s)", tableName)
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	targets := make(map[string]foreignKeyTarget)
	for rows.Next() {
		var (
			id, seq                      int
			table, from                  string
			to                           sql.NullString
			onUpdate, onDelete, matching string
		)
		if err := rows.Scan(&id, &seq, &table, &from, &to, &onUpdate, &onDelete, &matching); err != nil {
			return nil, err
		}
		// "to" is NULL when the FK references the target's primary key
		// implicitly; fall back to the referencing column's name.
		column := from
		if to.Valid {
			column = to.String
		}
		targets[from] = foreignKeyTarget{table: table, column: column}
	}

	return targets, rows.Err()
}

// parseDeclaredType splits a declared SQLite column type such as
// "VARCHAR(255)" or "NUMERIC(10,2)" into its base name and any declared
// length or precision/scale arguments. SQLite declarations are free-form,
// so unparsable arguments are simply dropped.
func parseDeclaredType(declared string) (base string, maxLength, precision, scale *int64) {
	open := strings.Index(declared, "(")
	if open < 0 {
		return strings.TrimSpace(declared), nil, nil, nil
	}
	base = strings.TrimSpace(declared[:open])

	args := strings.TrimSpace(declared[open+1:])
	args = strings.TrimSuffix(args, ")")
	parts := strings.Split(args, ",")
	switch len(parts) {
	case 1:
		if n, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64); err == nil {
			maxLength = &n
		}
	case 2:
		p, errP := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		s, errS := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if errP == nil && errS == nil {
			precision = &p
			scale = &s
		}
	}
	return base, maxLength, precision, scale
}
