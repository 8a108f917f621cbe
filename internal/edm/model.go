package edm

// Model is the root of an EDM graph: a namespace, a descriptive service
// name, and the schemas added to it, in insertion order. The Builder that
// created it owns the whole graph; nothing else holds references into it.
type Model struct {
	Namespace   string
	ServiceName string
	Schemas     []*Schema
}

// Schema is a namespace-scoped container of entity types and entity
// containers. It can be looked up by its namespace or, when set, its alias.
type Schema struct {
	Namespace        string
	Alias            string
	EntityTypes      []*EntityType
	EntityContainers []*EntityContainer
}

// EntityType is a structured type with properties and an identity: either a
// non-empty key list or a base type it inherits the key from, never both.
// The Builder enforces the exclusivity; see Builder.AddKey.
type EntityType struct {
	Name                 string
	BaseType             string // name of another entity type in the same schema
	Keys                 []string
	Properties           []*Property
	NavigationProperties []*NavigationProperty
	Documentation        *Documentation
}

// hasMember reports whether name is already taken by a property or a
// navigation property of the type.
func (t *EntityType) hasMember(name string) bool {
	for _, p := range t.Properties {
		if p.Name == name {
			return true
		}
	}
	for _, n := range t.NavigationProperties {
		if n.Name == name {
			return true
		}
	}
	return false
}

// Documentation is free-text documentation attached to an entity type.
// Summary and LongDescription are independent; empty fields are not emitted.
type Documentation struct {
	Summary         string
	LongDescription string
}

// Property is a structural property of an entity type. MaxLength is only
// set for Edm.String properties with a finite declared length; Precision
// and Scale are only set together, and only for Edm.Decimal.
type Property struct {
	Name      string
	Type      string
	Nullable  bool
	MaxLength *int64
	Precision *int64
	Scale     *int64
}

// NavigationProperty is a typed relationship to another entity type.
// Schema holds the namespace of the schema declaring the target type; Name
// and Type both carry the target type's name; Partner is the owning type.
// Property and ReferencedProperty form the referential constraint pair.
type NavigationProperty struct {
	Schema             string
	Name               string
	Type               string
	Partner            string
	Nullable           bool
	Property           string
	ReferencedProperty string
}

// EntityContainer holds the entity sets a service exposes.
type EntityContainer struct {
	Name       string
	EntitySets []*EntitySet
}

// EntitySet binds a set name to the qualified entity type it instantiates.
// NavigationPropertyBindings are not stored; they are derived from the bound
// type's navigation properties when the model is serialized.
type EntitySet struct {
	Name       string
	EntityType string
}
