package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidInput reports a malformed catalog payload.
var ErrInvalidInput = errors.New("invalid input format")

// record mirrors one element of a SQL catalog query serialized as JSON.
// The field names follow the SQL Server system-catalog query the payload
// is produced by.
type record struct {
	TableName         string `json:"TABLE_NAME"`
	ColumnName        string `json:"COLUMN_NAME"`
	DataType          string `json:"DATA_TYPE"`
	IsNullable        string `json:"IS_NULLABLE"`
	IsPrimaryKey      int    `json:"IS_PK"`
	ReferencingColumn string `json:"REFERENCING_COLUMN"`
	ReferencedColumn  string `json:"REFERENCED_COLUMN"`
	ReferencedTable   string `json:"REFERENCED_TABLE"`
	MaxLength         *int64 `json:"MaxLength"`
	Precision         *int64 `json:"Precision"`
	Scale             *int64 `json:"Scale"`
}

// DecodeRows parses a JSON array of catalog records into rows. A payload
// that does not decode is rejected with ErrInvalidInput before any builder
// operation runs.
func DecodeRows(data []byte) ([]Row, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row{
			TableName:        rec.TableName,
			ColumnName:       rec.ColumnName,
			DataType:         rec.DataType,
			IsPrimaryKey:     rec.IsPrimaryKey == 1,
			IsNullable:       rec.IsNullable == "YES",
			ForeignKeyColumn: rec.ReferencingColumn,
			ReferencedColumn: rec.ReferencedColumn,
			ReferencedTable:  rec.ReferencedTable,
			MaxLength:        rec.MaxLength,
			Precision:        rec.Precision,
			Scale:            rec.Scale,
		})
	}
	return rows, nil
}
