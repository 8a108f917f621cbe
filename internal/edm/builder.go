// Package edm builds an in-memory OData Entity Data Model and serializes it
// as an EDMX/CSDL document.
//
// A Builder owns a Model graph exclusively: schemas hold entity types and
// entity containers, entity types hold properties, navigation properties,
// and either a key list or a base type. Construction operations mutate the
// graph and enforce the EDM structural rules at the point of violation;
// GenerateMetadata renders the current graph as a deterministic EDMX 4.0
// document.
package edm

import "fmt"

// Builder assembles an EDM graph and serializes it to an EDMX document.
// A Builder is not safe for concurrent use; use one builder per generation
// request or serialize access externally.
type Builder struct {
	model    Model
	metadata string
}

// NewBuilder creates an empty builder for the given model namespace and
// service name. The service name is descriptive only and never serialized.
func NewBuilder(namespace, serviceName string) *Builder {
	return &Builder{model: Model{Namespace: namespace, ServiceName: serviceName}}
}

// Model exposes the underlying graph for inspection.
func (b *Builder) Model() *Model {
	return &b.model
}

// Clear resets the builder to its initial empty state so the instance can
// be reused for another generation run.
func (b *Builder) Clear() {
	b.model = Model{}
	b.metadata = ""
}

// AddSchema appends a schema with the given namespace and optional alias.
// Duplicate namespaces or aliases are not rejected; SchemaByName resolves
// duplicates to the first match.
func (b *Builder) AddSchema(namespace, alias string) (*Schema, error) {
	if namespace == "" {
		return nil, fmt.Errorf("%w: schema namespace must not be empty", ErrConstraint)
	}
	s := &Schema{Namespace: namespace, Alias: alias}
	b.model.Schemas = append(b.model.Schemas, s)
	return s, nil
}

// SchemaByName returns the first schema whose namespace or alias equals key.
func (b *Builder) SchemaByName(key string) (*Schema, error) {
	for _, s := range b.model.Schemas {
		if s.Namespace == key {
			return s, nil
		}
		if s.Alias != "" && s.Alias == key {
			return s, nil
		}
	}
	return nil, fmt.Errorf("schema %q: %w", key, ErrNotFound)
}

// AddEntityContainer appends an entity container to the schema.
func (b *Builder) AddEntityContainer(schema *Schema, name string) *EntityContainer {
	c := &EntityContainer{Name: name}
	schema.EntityContainers = append(schema.EntityContainers, c)
	return c
}

// AddEntityType appends an entity type to the schema. A non-empty baseType
// must name an entity type already present in the same schema; the new type
// then inherits its identity and must not declare keys of its own. With no
// base type the entity type starts with an empty key list. Summary and
// longDescription attach a Documentation block only when supplied.
func (b *Builder) AddEntityType(schema *Schema, name, baseType, summary, longDescription string) (*EntityType, error) {
	et := &EntityType{Name: name}
	if baseType != "" {
		base, err := b.EntityTypeByName(schema, baseType)
		if err != nil {
			return nil, err
		}
		et.BaseType = base.Name
	}
	if summary != "" || longDescription != "" {
		et.Documentation = &Documentation{Summary: summary, LongDescription: longDescription}
	}
	schema.EntityTypes = append(schema.EntityTypes, et)
	return et, nil
}

// EntityTypeByName returns the entity type with the given name from the
// schema. A type that has not been added yet cannot be resolved, which is
// also what keeps base-type references from forming cycles: a type can only
// inherit from a type that already exists.
func (b *Builder) EntityTypeByName(schema *Schema, name string) (*EntityType, error) {
	for _, et := range schema.EntityTypes {
		if et.Name == name {
			return et, nil
		}
	}
	return nil, fmt.Errorf("entity type %q: %w", name, ErrNotFound)
}

// resolveEntityType scans every schema of the model in order for an entity
// type with the given name, returning it together with the namespace of the
// schema declaring it. First match wins.
func (b *Builder) resolveEntityType(name string) (*EntityType, string, error) {
	for _, s := range b.model.Schemas {
		for _, et := range s.EntityTypes {
			if et.Name == name {
				return et, s.Namespace, nil
			}
		}
	}
	return nil, "", fmt.Errorf("entity type %q: %w", name, ErrNotFound)
}

// AddKey registers propertyName as a key property of the type. An entity
// type MUST contain exactly one key or specify a base type, but not both,
// so a type with a base type refuses keys. Key properties must be of a
// primitive type.
func (b *Builder) AddKey(et *EntityType, propertyName, propertyType string) error {
	if et.BaseType != "" {
		return fmt.Errorf("%w: an entity type with a base type must not declare a key", ErrConstraint)
	}
	if !IsPrimitive(propertyType) {
		return fmt.Errorf("%w: %s is not a primitive type and cannot back a key property", ErrConstraint, propertyType)
	}
	et.Keys = append(et.Keys, propertyName)
	return nil
}

// AddProperty appends a property to the entity type. MaxLength is recorded
// only for Edm.String when the declared length is positive and not the
// unbounded sentinel -1; Precision and Scale are recorded only for
// Edm.Decimal and only when both are supplied. A name that already exists
// as a property or navigation property leaves the type unchanged; the
// attempted property is still returned.
func (b *Builder) AddProperty(et *EntityType, name, propertyType string, nullable bool, maxLength, precision, scale *int64) *Property {
	p := &Property{Name: name, Type: propertyType, Nullable: nullable}
	switch propertyType {
	case "Edm.Decimal":
		if precision != nil && scale != nil {
			p.Precision = precision
			p.Scale = scale
		}
	case "Edm.String":
		if maxLength != nil && *maxLength > 0 {
			p.MaxLength = maxLength
		}
	}
	if et.hasMember(name) {
		return p
	}
	et.Properties = append(et.Properties, p)
	return p
}

// AddNavigationProperty records a relationship from et to the entity type
// named referencedEntityName, which may live in any schema of the model.
// The relationship carries the target's name as both display name and type,
// the owning type as partner, and the referential constraint pairing
// propertyName with referencedColumn on the target. A navigation property
// cannot reference its own entity type.
func (b *Builder) AddNavigationProperty(et *EntityType, propertyName, referencedColumn, referencedEntityName string, nullable bool) error {
	target, namespace, err := b.resolveEntityType(referencedEntityName)
	if err != nil {
		return err
	}
	if target == et {
		return fmt.Errorf("%w: a navigation property cannot reference its own entity type", ErrConstraint)
	}
	et.NavigationProperties = append(et.NavigationProperties, &NavigationProperty{
		Schema:             namespace,
		Name:               target.Name,
		Type:               target.Name,
		Partner:            et.Name,
		Nullable:           nullable,
		Property:           propertyName,
		ReferencedProperty: referencedColumn,
	})
	return nil
}

// AddEntitySet appends an entity set bound to entityTypeName. The bound
// entity type is resolved by setName within the model's first schema, so
// callers are expected to name each set after its entity type; a set name
// with no matching type reports a not-found error, though the set itself
// remains in the container and serializes without bindings. The set's
// NavigationPropertyBindings are derived from the bound type when the model
// is serialized, so navigation properties added after this call still
// appear in the output.
func (b *Builder) AddEntitySet(container *EntityContainer, setName, entityTypeName string) (*EntitySet, error) {
	es := &EntitySet{Name: setName, EntityType: entityTypeName}
	container.EntitySets = append(container.EntitySets, es)
	if len(b.model.Schemas) == 0 {
		return es, fmt.Errorf("model has no schemas: %w", ErrNotFound)
	}
	if _, err := b.EntityTypeByName(b.model.Schemas[0], setName); err != nil {
		return es, err
	}
	return es, nil
}

// ValidateEntityType checks the structural rule the construction operations
// cannot enforce incrementally: an entity type with no base type must
// contain at least one property.
func (b *Builder) ValidateEntityType(et *EntityType) error {
	if et.BaseType == "" && len(et.Properties) == 0 {
		return fmt.Errorf("%w: an entity type with no base type must contain at least one property", ErrConstraint)
	}
	return nil
}
