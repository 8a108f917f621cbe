// Package catalog models relational catalog metadata as the flat row stream
// the EDM builder consumes: one row per column, several rows per table.
// Rows come from a live database (PostgreSQL, MySQL, SQLite) or from a JSON
// catalog-query result.
package catalog

// Row describes one column of one table. ForeignKeyColumn is empty when the
// column is not part of a foreign key; otherwise ReferencedTable and
// ReferencedColumn name the target. MaxLength, Precision, and Scale are nil
// when the catalog does not declare them.
type Row struct {
	TableName        string
	ColumnName       string
	DataType         string
	IsPrimaryKey     bool
	IsNullable       bool
	ForeignKeyColumn string
	ReferencedColumn string
	ReferencedTable  string
	MaxLength        *int64
	Precision        *int64
	Scale            *int64
}

// Table groups the rows of one table in catalog order.
type Table struct {
	Name    string
	Columns []Row
}

// GroupByTable folds a flat row stream into per-table column lists,
// preserving the first-seen order of tables and the row order within each
// table.
func GroupByTable(rows []Row) []Table {
	index := make(map[string]int)
	var tables []Table
	for _, row := range rows {
		i, ok := index[row.TableName]
		if !ok {
			i = len(tables)
			index[row.TableName] = i
			tables = append(tables, Table{Name: row.TableName})
		}
		tables[i].Columns = append(tables[i].Columns, row)
	}
	return tables
}
