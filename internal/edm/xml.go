package edm

import (
	"fmt"
	"io"
	"strings"
)

// OASIS OData 4.0 namespaces.
const (
	edmxNamespace = "http://docs.oasis-open.org/odata/ns/edmx"
	edmNamespace  = "http://docs.oasis-open.org/odata/ns/edm"
)

// GenerateMetadata renders the model as an EDMX 4.0 document, caches the
// text, and returns it. Rendering is a pure read of the graph and may be
// repeated after further construction.
func (b *Builder) GenerateMetadata() string {
	var sb strings.Builder
	_ = b.WriteMetadata(&sb)
	b.metadata = sb.String()
	return b.metadata
}

// Metadata returns the document rendered by the last GenerateMetadata call,
// or the empty string if the model has not been rendered yet.
func (b *Builder) Metadata() string {
	return b.metadata
}

// WriteMetadata renders the EDMX document to w. The output is byte-stable
// for a given graph: elements appear in insertion order, attributes in the
// order fixed by CSDL, booleans in lowercase, tabs for indentation.
func (b *Builder) WriteMetadata(w io.Writer) error {
	_, _ = io.WriteString(w, "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	_, _ = fmt.Fprintf(w, "<edmx:Edmx xmlns:edmx=\"%s\" Version=\"4.0\">\n", edmxNamespace)
	_, _ = io.WriteString(w, "\t<edmx:DataServices>\n")
	for _, s := range b.model.Schemas {
		b.writeSchema(w, s)
	}
	_, _ = io.WriteString(w, "\t</edmx:DataServices>\n")
	_, _ = io.WriteString(w, "</edmx:Edmx>")
	return nil
}

func (b *Builder) writeSchema(w io.Writer, s *Schema) {
	if s.Alias != "" {
		_, _ = fmt.Fprintf(w, "\t\t<Schema Namespace=\"%s\" Alias=\"%s\" xmlns=\"%s\">\n", s.Namespace, s.Alias, edmNamespace)
	} else {
		_, _ = fmt.Fprintf(w, "\t\t<Schema Namespace=\"%s\" xmlns=\"%s\">\n", s.Namespace, edmNamespace)
	}

	for _, et := range s.EntityTypes {
		writeEntityType(w, et)
	}
	for _, c := range s.EntityContainers {
		b.writeEntityContainer(w, c)
	}

	_, _ = io.WriteString(w, "\t\t</Schema>\n")
}

func writeEntityType(w io.Writer, et *EntityType) {
	if et.BaseType != "" {
		// A derived type inherits its key; no Key block is emitted.
		_, _ = fmt.Fprintf(w, "\t\t\t<EntityType Name=\"%s\" BaseType=\"Self.%s\">\n", et.Name, et.BaseType)
	} else {
		_, _ = fmt.Fprintf(w, "\t\t\t<EntityType Name=\"%s\">\n", et.Name)
	}

	if d := et.Documentation; d != nil {
		_, _ = io.WriteString(w, "\t\t\t\t<Documentation>\n")
		if d.Summary != "" {
			_, _ = fmt.Fprintf(w, "\t\t\t\t\t<Summary>%s</Summary>\n", d.Summary)
		}
		if d.LongDescription != "" {
			_, _ = fmt.Fprintf(w, "\t\t\t\t\t<LongDescription>%s</LongDescription>\n", d.LongDescription)
		}
		_, _ = io.WriteString(w, "\t\t\t\t</Documentation>\n")
	}

	if et.BaseType == "" && len(et.Keys) > 0 {
		_, _ = io.WriteString(w, "\t\t\t\t<Key>\n")
		for _, k := range et.Keys {
			_, _ = fmt.Fprintf(w, "\t\t\t\t\t<PropertyRef Name=\"%s\" />\n", k)
		}
		_, _ = io.WriteString(w, "\t\t\t\t</Key>\n")
	}

	for _, p := range et.Properties {
		writeProperty(w, p)
	}

	for _, np := range et.NavigationProperties {
		_, _ = fmt.Fprintf(w, "\t\t\t\t<NavigationProperty Name=\"%s\" Type=\"Collection(%s.%s)\" Partner=\"%s\" Nullable=\"%t\">\n",
			np.Name, np.Schema, np.Type, np.Partner, np.Nullable)
		_, _ = fmt.Fprintf(w, "\t\t\t\t\t<ReferentialConstraint Property=\"%s\" ReferencedProperty=\"%s\" />\n",
			np.Property, np.ReferencedProperty)
		_, _ = io.WriteString(w, "\t\t\t\t</NavigationProperty>\n")
	}

	_, _ = io.WriteString(w, "\t\t\t</EntityType>\n")
}

func writeProperty(w io.Writer, p *Property) {
	switch {
	case p.MaxLength != nil:
		_, _ = fmt.Fprintf(w, "\t\t\t\t<Property Name=\"%s\" Type=\"%s\" Nullable=\"%t\" MaxLength=\"%d\" />\n",
			p.Name, p.Type, p.Nullable, *p.MaxLength)
	case p.Precision != nil && p.Scale != nil:
		_, _ = fmt.Fprintf(w, "\t\t\t\t<Property Name=\"%s\" Type=\"%s\" Nullable=\"%t\" Precision=\"%d\" Scale=\"%d\" />\n",
			p.Name, p.Type, p.Nullable, *p.Precision, *p.Scale)
	default:
		_, _ = fmt.Fprintf(w, "\t\t\t\t<Property Name=\"%s\" Type=\"%s\" Nullable=\"%t\" />\n",
			p.Name, p.Type, p.Nullable)
	}
}

func (b *Builder) writeEntityContainer(w io.Writer, c *EntityContainer) {
	_, _ = fmt.Fprintf(w, "\t\t\t<EntityContainer Name=\"%s\">\n", c.Name)
	for _, es := range c.EntitySets {
		b.writeEntitySet(w, es)
	}
	_, _ = io.WriteString(w, "\t\t\t</EntityContainer>\n")
}

// writeEntitySet derives the set's NavigationPropertyBindings from the
// bound entity type at render time rather than snapshotting them when the
// set was added, so sets may be created before their type is fully
// populated. The type is resolved by set name in the first schema, matching
// the lookup AddEntitySet performs.
func (b *Builder) writeEntitySet(w io.Writer, es *EntitySet) {
	var navs []*NavigationProperty
	if len(b.model.Schemas) > 0 {
		if et, err := b.EntityTypeByName(b.model.Schemas[0], es.Name); err == nil {
			navs = et.NavigationProperties
		}
	}

	if len(navs) == 0 {
		_, _ = fmt.Fprintf(w, "\t\t\t\t<EntitySet Name=\"%s\" EntityType=\"%s\" />\n", es.Name, es.EntityType)
		return
	}

	_, _ = fmt.Fprintf(w, "\t\t\t\t<EntitySet Name=\"%s\" EntityType=\"%s\">\n", es.Name, es.EntityType)
	for _, np := range navs {
		_, _ = fmt.Fprintf(w, "\t\t\t\t\t<NavigationPropertyBinding Path=\"%s\" Target=\"%s\" />\n", np.Type, np.Name)
	}
	_, _ = io.WriteString(w, "\t\t\t\t</EntitySet>\n")
}
