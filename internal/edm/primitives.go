package edm

// primitiveTypes is the fixed set of Edm scalar types. Only properties of
// these types may back a PropertyRef key.
var primitiveTypes = map[string]bool{
	"Edm.Binary":         true,
	"Edm.Boolean":        true,
	"Edm.Byte":           true,
	"Edm.Date":           true,
	"Edm.DateTimeOffset": true,
	"Edm.Decimal":        true,
	"Edm.Double":         true,
	"Edm.Duration":       true,
	"Edm.Guid":           true,
	"Edm.Int16":          true,
	"Edm.Int32":          true,
	"Edm.Int64":          true,
	"Edm.SByte":          true,
	"Edm.Single":         true,
	"Edm.Stream":         true,
	"Edm.String":         true,
	"Edm.TimeOfDay":      true,
}

// IsPrimitive reports whether name is one of the Edm primitive types.
func IsPrimitive(name string) bool {
	return primitiveTypes[name]
}
