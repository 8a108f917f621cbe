package catalog

import (
	"errors"
	"testing"
)

func TestGroupByTable(t *testing.T) {
	rows := []Row{
		{TableName: "orders", ColumnName: "id"},
		{TableName: "orders", ColumnName: "total"},
		{TableName: "customers", ColumnName: "id"},
		{TableName: "orders", ColumnName: "placed_at"},
	}

	tables := GroupByTable(rows)

	if len(tables) != 2 {
		t.Fatalf("Expected 2 tables, got %d", len(tables))
	}
	if tables[0].Name != "orders" || tables[1].Name != "customers" {
		t.Errorf("Expected first-seen table order [orders customers], got [%s %s]", tables[0].Name, tables[1].Name)
	}
	if len(tables[0].Columns) != 3 {
		t.Errorf("Expected 3 columns for orders, got %d", len(tables[0].Columns))
	}
	if tables[0].Columns[2].ColumnName != "placed_at" {
		t.Errorf("Expected column order preserved, got %s", tables[0].Columns[2].ColumnName)
	}
}

func TestGroupByTableEmpty(t *testing.T) {
	if tables := GroupByTable(nil); len(tables) != 0 {
		t.Errorf("Expected no tables for empty input, got %d", len(tables))
	}
}

func TestDecodeRows(t *testing.T) {
	payload := `[
		{"TABLE_NAME": "products", "COLUMN_NAME": "id", "DATA_TYPE": "int",
		 "IS_NULLABLE": "NO", "IS_PK": 1,
		 "REFERENCING_COLUMN": "", "REFERENCED_COLUMN": "", "REFERENCED_TABLE": "",
		 "MaxLength": null, "Precision": null, "Scale": null},
		{"TABLE_NAME": "products", "COLUMN_NAME": "name", "DATA_TYPE": "nvarchar",
		 "IS_NULLABLE": "YES", "IS_PK": 0,
		 "REFERENCING_COLUMN": "", "REFERENCED_COLUMN": "", "REFERENCED_TABLE": "",
		 "MaxLength": 120, "Precision": null, "Scale": null},
		{"TABLE_NAME": "products", "COLUMN_NAME": "category_id", "DATA_TYPE": "int",
		 "IS_NULLABLE": "YES", "IS_PK": 0,
		 "REFERENCING_COLUMN": "category_id", "REFERENCED_COLUMN": "id", "REFERENCED_TABLE": "categories",
		 "MaxLength": null, "Precision": null, "Scale": null}
	]`

	rows, err := DecodeRows([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	if !rows[0].IsPrimaryKey || rows[0].IsNullable {
		t.Errorf("Expected id to be a non-nullable primary key, got %+v", rows[0])
	}
	if rows[1].MaxLength == nil || *rows[1].MaxLength != 120 {
		t.Errorf("Expected MaxLength 120, got %v", rows[1].MaxLength)
	}
	if rows[2].ForeignKeyColumn != "category_id" || rows[2].ReferencedTable != "categories" || rows[2].ReferencedColumn != "id" {
		t.Errorf("Unexpected foreign key mapping: %+v", rows[2])
	}
}

func TestDecodeRowsInvalidPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not JSON", "this is not json"},
		{"object instead of array", `{"TABLE_NAME": "products"}`},
		{"wrong element type", `[42]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeRows([]byte(tt.payload)); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestParseDeclaredType(t *testing.T) {
	tests := []struct {
		declared  string
		base      string
		maxLength *int64
		precision *int64
		scale     *int64
	}{
		{"INTEGER", "INTEGER", nil, nil, nil},
		{"VARCHAR(255)", "VARCHAR", ptr(255), nil, nil},
		{"NUMERIC(10,2)", "NUMERIC", nil, ptr(10), ptr(2)},
		{"NUMERIC(10, 2)", "NUMERIC", nil, ptr(10), ptr(2)},
		{"TEXT(abc)", "TEXT", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			base, maxLength, precision, scale := parseDeclaredType(tt.declared)
			if base != tt.base {
				t.Errorf("base = %q, want %q", base, tt.base)
			}
			checkInt(t, "maxLength", maxLength, tt.maxLength)
			checkInt(t, "precision", precision, tt.precision)
			checkInt(t, "scale", scale, tt.scale)
		})
	}
}

func TestParseDatabaseName(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		want    string
		wantErr bool
	}{
		{"plain", "user:pass@tcp(localhost:3306)/shop", "shop", false},
		{"with params", "user:pass@tcp(localhost:3306)/shop?parseTime=true", "shop", false},
		{"missing name", "user:pass@tcp(localhost:3306)/", "", true},
		{"no slash", "user:pass@tcp(localhost:3306)", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDatabaseName(tt.dsn)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseDatabaseName(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
		})
	}
}

func ptr(v int64) *int64 { return &v }

func checkInt(t *testing.T, label string, got, want *int64) {
	t.Helper()
	if (got == nil) != (want == nil) {
		t.Errorf("%s presence mismatch: got %v, want %v", label, got, want)
		return
	}
	if want != nil && *got != *want {
		t.Errorf("%s = %d, want %d", label, *got, *want)
	}
}
