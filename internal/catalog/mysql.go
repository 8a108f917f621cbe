package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLExtractor reads catalog rows from a live MySQL database.
type MySQLExtractor struct {
	db         *sql.DB
	schemaName string
}

// NewMySQLExtractor connects to MySQL and scopes extraction to the given
// database schema. The connection string uses the Go MySQL driver DSN
// format: user:pass@tcp(host:port)/database.
func NewMySQLExtractor(ctx context.Context, connString, schemaName string) (*MySQLExtractor, error) {
	db, err := sql.Open("mysql", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &MySQLExtractor{db: db, schemaName: schemaName}, nil
}

// Close closes the database connection.
func (e *MySQLExtractor) Close() error {
	return e.db.Close()
}

// ParseDatabaseName extracts the database name from a MySQL DSN like
// user:pass@tcp(host:3306)/dbname?parseTime=true.
func ParseDatabaseName(connString string) (string, error) {
	slash := strings.LastIndex(connString, "/")
	if slash < 0 {
		return "", fmt.Errorf("no database name in connection string")
	}
	name := connString[slash+1:]
	if q := strings.Index(name, "?"); q >= 0 {
		name = name[:q]
	}
	if name == "" {
		return "", fmt.Errorf("no database name in connection string")
	}
	return name, nil
}

// ExtractRows reads catalog rows for the requested tables, or for every
// base table in the schema when tables is empty.
func (e *MySQLExtractor) ExtractRows(ctx context.Context, tables []string) ([]Row, error) {
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
func (e *MySQLExtractor) getTableNames(ctx context.Context, requestedTables []string) ([]string, error) {
	if len(requestedTables) > 0 {
		return requestedTables, nil
	}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ? AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := e.db.QueryContext(ctx, query, e.schemaName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}

	return tables, rows.Err()
}

// extractTableRows reads one catalog row per column. COLUMN_KEY marks
// primary-key membership; key_column_usage rows with a referenced table
// mark foreign keys.
func (e *MySQLExtractor) extractTableRows(ctx context.Context, tableName string) ([]Row, error) {
	query := `
		SELECT
			c.column_name,
			c.data_type,
			c.is_nullable,
			c.character_maximum_length,
			c.numeric_precision,
			c.numeric_scale,
			c.column_key = 'PRI' AS is_pk,
			kcu.referenced_table_name,
			kcu.referenced_column_name
		FROM information_schema.columns c
		LEFT JOIN information_schema.key_column_usage kcu
			ON kcu.table_schema = c.table_schema
			AND kcu.table_name = c.table_name
			AND kcu.column_name = c.column_name
			AND kcu.referenced_table_name IS NOT NULL
		WHERE c.table_schema = ? AND c.table_name = ?
		ORDER BY c.ordinal_position
	`

	rows, err := e.db.QueryContext(ctx, query, e.schemaName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var (
			columnName, dataType, nullable string
			maxLength, precision, scale    sql.NullInt64
			isPK                           int64
			referencedTable, referencedCol sql.NullString
		)
		if err := rows.Scan(&columnName, &dataType, &nullable, &maxLength, &precision, &scale, &isPK, &referencedTable, &referencedCol); err != nil {
			return nil, err
		}

		row := Row{
			TableName:    tableName,
			ColumnName:   columnName,
			DataType:     dataType,
			IsPrimaryKey: isPK != 0,
			IsNullable:   nullable == "YES",
			MaxLength:    nullableInt(maxLength),
			Precision:    nullableInt(precision),
			Scale:        nullableInt(scale),
		}
		if referencedTable.Valid && referencedCol.Valid {
			row.ForeignKeyColumn = columnName
			row.ReferencedTable = referencedTable.String
			row.ReferencedColumn = referencedCol.String
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func nullableInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
