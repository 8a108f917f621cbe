package typemap

// builtinTables covers the dialects the catalog extractors speak plus SQL
// Server, whose catalog rows arrive through the JSON adapter. Types not
// listed here fall back to DefaultType.
var builtinTables = map[string]map[string]string{
	"sqlserver": {
		"bigint":           "Edm.Int64",
		"int":              "Edm.Int32",
		"smallint":         "Edm.Int16",
		"tinyint":          "Edm.Byte",
		"bit":              "Edm.Boolean",
		"decimal":          "Edm.Decimal",
		"numeric":          "Edm.Decimal",
		"money":            "Edm.Decimal",
		"smallmoney":       "Edm.Decimal",
		"float":            "Edm.Double",
		"real":             "Edm.Single",
		"date":             "Edm.Date",
		"datetime":         "Edm.DateTimeOffset",
		"datetime2":        "Edm.DateTimeOffset",
		"smalldatetime":    "Edm.DateTimeOffset",
		"datetimeoffset":   "Edm.DateTimeOffset",
		"time":             "Edm.TimeOfDay",
		"char":             "Edm.String",
		"varchar":          "Edm.String",
		"text":             "Edm.String",
		"nchar":            "Edm.String",
		"nvarchar":         "Edm.String",
		"ntext":            "Edm.String",
		"binary":           "Edm.Binary",
		"varbinary":        "Edm.Binary",
		"image":            "Edm.Binary",
		"uniqueidentifier": "Edm.Guid",
	},
	"postgres": {
		"bigint":                      "Edm.Int64",
		"int8":                        "Edm.Int64",
		"integer":                     "Edm.Int32",
		"int4":                        "Edm.Int32",
		"smallint":                    "Edm.Int16",
		"int2":                        "Edm.Int16",
		"boolean":                     "Edm.Boolean",
		"numeric":                     "Edm.Decimal",
		"decimal":                     "Edm.Decimal",
		"double precision":            "Edm.Double",
		"float8":                      "Edm.Double",
		"real":                        "Edm.Single",
		"float4":                      "Edm.Single",
		"date":                        "Edm.Date",
		"timestamp without time zone": "Edm.DateTimeOffset",
		"timestamp with time zone":    "Edm.DateTimeOffset",
		"timestamptz":                 "Edm.DateTimeOffset",
		"time without time zone":      "Edm.TimeOfDay",
		"interval":                    "Edm.Duration",
		"uuid":                        "Edm.Guid",
		"character varying":           "Edm.String",
		"varchar":                     "Edm.String",
		"character":                   "Edm.String",
		"char":                        "Edm.String",
		"text":                        "Edm.String",
		"bytea":                       "Edm.Binary",
	},
	"mysql": {
		"bigint":     "Edm.Int64",
		"int":        "Edm.Int32",
		"mediumint":  "Edm.Int32",
		"smallint":   "Edm.Int16",
		"tinyint":    "Edm.Byte",
		"decimal":    "Edm.Decimal",
		"double":     "Edm.Double",
		"float":      "Edm.Single",
		"date":       "Edm.Date",
		"datetime":   "Edm.DateTimeOffset",
		"timestamp":  "Edm.DateTimeOffset",
		"time":       "Edm.TimeOfDay",
		"char":       "Edm.String",
		"varchar":    "Edm.String",
		"text":       "Edm.String",
		"mediumtext": "Edm.String",
		"longtext":   "Edm.String",
		"binary":     "Edm.Binary",
		"varbinary":  "Edm.Binary",
		"blob":       "Edm.Binary",
	},
	"sqlite": {
		"integer": "Edm.Int64",
		"int":     "Edm.Int64",
		"real":    "Edm.Double",
		"numeric": "Edm.Decimal",
		"decimal": "Edm.Decimal",
		"boolean": "Edm.Boolean",
		"date":    "Edm.Date",
		"text":    "Edm.String",
		"varchar": "Edm.String",
		"char":    "Edm.String",
		"blob":    "Edm.Binary",
	},
}
