package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PostgresExtractor reads catalog rows from a live PostgreSQL database.
type PostgresExtractor struct {
	conn       *pgx.Conn
	schemaName string
}

// NewPostgresExtractor connects to PostgreSQL and scopes extraction to the
// given database schema (usually "public").
func NewPostgresExtractor(ctx context.Context, connString, schemaName string) (*PostgresExtractor, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresExtractor{conn: conn, schemaName: schemaName}, nil
}

// Close closes the database connection.
func (e *PostgresExtractor) Close(ctx context.Context) error {
	return e.conn.Close(ctx)
}

// ExtractRows reads catalog rows for the requested tables, or for every
// base table in the schema when tables is empty. Rows are returned in
// table order, columns in ordinal position order.
func (e *PostgresExtractor) ExtractRows(ctx context.Context, tables []string) ([]Row, error) {
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
func (e *PostgresExtractor) getTableNames(ctx context.Context, requestedTables []string) ([]string, error) {
	if len(requestedTables) > 0 {
		return requestedTables, nil
	}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := e.conn.Query(ctx, query, e.schemaName)
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

// extractTableRows reads one catalog row per column: type, nullability,
// declared length or precision/scale, primary-key membership, and any
// foreign-key target.
func (e *PostgresExtractor) extractTableRows(ctx context.Context, tableName string) ([]Row, error) {
	query := `
		SELECT
			c.column_name,
			c.data_type,
			c.is_nullable,
			c.character_maximum_length,
			c.numeric_precision,
			c.numeric_scale,
			EXISTS (
				SELECT 1
				FROM information_schema.table_constraints tc
				JOIN information_schema.key_column_usage kcu
					ON tc.constraint_name = kcu.constraint_name
					AND tc.table_schema = kcu.table_schema
				WHERE tc.table_schema = $1
					AND tc.table_name = $2
					AND tc.constraint_type = 'PRIMARY KEY'
					AND kcu.column_name = c.column_name
			) AS is_pk,
			fk.referenced_table,
			fk.referenced_column
		FROM information_schema.columns c
		LEFT JOIN (
			SELECT
				kcu.column_name,
				ccu.table_name AS referenced_table,
				ccu.column_name AS referenced_column
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
				ON tc.constraint_name = kcu.constraint_name
				AND tc.table_schema = kcu.table_schema
			JOIN information_schema.constraint_column_usage ccu
				ON ccu.constraint_name = tc.constraint_name
				AND ccu.table_schema = tc.table_schema
			WHERE tc.constraint_type = 'FOREIGN KEY'
				AND tc.table_schema = $1
				AND tc.table_name = $2
		) fk ON fk.column_name = c.column_name
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position
	`

	rows, err := e.conn.Query(ctx, query, e.schemaName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var (
			columnName, dataType, nullable string
			maxLength, precision, scale    *int64
			isPK                           bool
			referencedTable, referencedCol *string
		)
		if err := rows.Scan(&columnName, &dataType, &nullable, &maxLength, &precision, &scale, &isPK, &referencedTable, &referencedCol); err != nil {
			return nil, err
		}

		row := Row{
			TableName:    tableName,
			ColumnName:   columnName,
			DataType:     dataType,
			IsPrimaryKey: isPK,
			IsNullable:   nullable == "YES",
			MaxLength:    maxLength,
			Precision:    precision,
			Scale:        scale,
		}
		if referencedTable != nil && referencedCol != nil {
			row.ForeignKeyColumn = columnName
			row.ReferencedTable = *referencedTable
			row.ReferencedColumn = *referencedCol
		}
		result = append(result, row)
	}

	return result, rows.Err()
}
