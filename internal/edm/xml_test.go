package edm

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateMetadataRoundTrip(t *testing.T) {
	b := NewBuilder("TestNamespace", "TestService")
	s, _ := b.AddSchema("S1", "")
	c := b.AddEntityContainer(s, "C1")
	et, _ := b.AddEntityType(s, "T1", "", "", "")
	if err := b.AddKey(et, "Id", "Edm.Int32"); err != nil {
		t.Fatalf("AddKey failed: %v", err)
	}
	_ = b.AddProperty(et, "Id", "Edm.Int32", false, nil, nil, nil)
	_ = b.AddProperty(et, "Name", "Edm.String", true, nil, nil, nil)
	_, _ = b.AddEntitySet(c, "ES1", "T1")

	want := `<?xml version="1.0" encoding="utf-8"?>
<edmx:Edmx xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx" Version="4.0">
	<edmx:DataServices>
		<Schema Namespace="S1" xmlns="http://docs.oasis-open.org/odata/ns/edm">
			<EntityType Name="T1">
				<Key>
					<PropertyRef Name="Id" />
				</Key>
				<Property Name="Id" Type="Edm.Int32" Nullable="false" />
				<Property Name="Name" Type="Edm.String" Nullable="true" />
			</EntityType>
			<EntityContainer Name="C1">
				<EntitySet Name="ES1" EntityType="T1" />
			</EntityContainer>
		</Schema>
	</edmx:DataServices>
</edmx:Edmx>`

	got := b.GenerateMetadata()
	if got != want {
		t.Errorf("Metadata mismatch.\nGot:\n%s\nWant:\n%s", got, want)
	}
	if b.Metadata() != got {
		t.Error("Expected GenerateMetadata to cache the rendered document")
	}
}

func TestGenerateMetadataIsRepeatable(t *testing.T) {
	b := NewBuilder("TestNamespace", "TestService")
	s, _ := b.AddSchema("S1", "")
	et, _ := b.AddEntityType(s, "T1", "", "", "")
	_ = b.AddProperty(et, "Name", "Edm.String", true, nil, nil, nil)

	first := b.GenerateMetadata()
	second := b.GenerateMetadata()
	if first != second {
		t.Error("Expected repeated generation to produce identical output")
	}
}

func TestWriteMetadataMatchesGenerate(t *testing.T) {
	b := NewBuilder("TestNamespace", "TestService")
	s, _ := b.AddSchema("S1", "A1")
	et, _ := b.AddEntityType(s, "T1", "", "", "")
	_ = b.AddProperty(et, "Name", "Edm.String", true, nil, nil, nil)

	var buf bytes.Buffer
	if err := b.WriteMetadata(&buf); err != nil {
		t.Fatalf("WriteMetadata failed: %v", err)
	}
	if buf.String() != b.GenerateMetadata() {
		t.Error("Expected WriteMetadata and GenerateMetadata to agree")
	}
}

func TestGenerateMetadataSchemaAlias(t *testing.T) {
	b := NewBuilder("TestNamespace", "TestService")
	_, _ = b.AddSchema("S1", "Self")

	got := b.GenerateMetadata()
	if !strings.Contains(got, `<Schema Namespace="S1" Alias="Self" xmlns="http://docs.oasis-open.org/odata/ns/edm">`) {
		t.Errorf("Expected schema tag with alias, got:\n%s", got)
	}
}

func TestGenerateMetadataBaseType(t *testing.T) {
	b := NewBuilder("TestNamespace", "TestService")
	s, _ := b.AddSchema("S1", "")
	person, _ := b.AddEntityType(s, "Person", "", "", "")
	_ = b.AddKey(person, "Id", "Edm.Int32")
	_ = b.AddProperty(person, "Id", "Edm.Int32", false, nil, nil, nil)
	employee, _ := b.AddEntityType(s, "Employee", "Person", "", "")
	_ = b.AddProperty(employee, "Salary", "Edm.Decimal", true, nil, i64(18), i64(2))

	got := b.GenerateMetadata()

	if !strings.Contains(got, `<EntityType Name="Employee" BaseType="Self.Person">`) {
		t.Errorf("Expected BaseType attribute on Employee, got:\n%s", got)
	}
	employeeBlock := got[strings.Index(got, `<EntityType Name="Employee"`):]
	employeeBlock = employeeBlock[:strings.Index(employeeBlock, "</EntityType>")]
	if strings.Contains(employeeBlock, "<Key>") {
		t.Errorf("Expected no Key block inside the derived type, got:\n%s", employeeBlock)
	}
}

func TestGenerateMetadataPropertyFacets(t *testing.T) {
	b := NewBuilder("TestNamespace", "TestService")
	s, _ := b.AddSchema("S1", "")
	et, _ := b.AddEntityType(s, "T1", "", "", "")
	_ = b.AddProperty(et, "Title", "Edm.String", true, i64(200), nil, nil)
	_ = b.AddProperty(et, "Price", "Edm.Decimal", false, nil, i64(10), i64(2))
	_ = b.AddProperty(et, "Note", "Edm.String", true, i64(-1), nil, nil)

	got := b.GenerateMetadata()

	if !strings.Contains(got, `<Property Name="Title" Type="Edm.String" Nullable="true" MaxLength="200" />`) {
		t.Errorf("Expected MaxLength facet, got:\n%s", got)
	}
	if !strings.Contains(got, `<Property Name="Price" Type="Edm.Decimal" Nullable="false" Precision="10" Scale="2" />`) {
		t.Errorf("Expected Precision/Scale facets, got:\n%s", got)
	}
	if !strings.Contains(got, `<Property Name="Note" Type="Edm.String" Nullable="true" />`) {
		t.Errorf("Expected unbounded string to carry no MaxLength, got:\n%s", got)
	}
}

func TestGenerateMetadataDocumentation(t *testing.T) {
	b := NewBuilder("TestNamespace", "TestService")
	s, _ := b.AddSchema("S1", "")
	et, _ := b.AddEntityType(s, "T1", "", "Orders placed by customers", "One row per order")
	_ = b.AddProperty(et, "Id", "Edm.Int32", false, nil, nil, nil)

	got := b.GenerateMetadata()

	want := "\t\t\t<EntityType Name=\"T1\">\n" +
		"\t\t\t\t<Documentation>\n" +
		"\t\t\t\t\t<Summary>Orders placed by customers</Summary>\n" +
		"\t\t\t\t\t<LongDescription>One row per order</LongDescription>\n" +
		"\t\t\t\t</Documentation>\n"
	if !strings.Contains(got, want) {
		t.Errorf("Expected documentation block, got:\n%s", got)
	}
}

func TestGenerateMetadataDocumentationPrecedesKey(t *testing.T) {
	b := NewBuilder("TestNamespace", "TestService")
	s, _ := b.AddSchema("S1", "")
	et, _ := b.AddEntityType(s, "T1", "", "Orders placed by customers", "")
	_ = b.AddKey(et, "Id", "Edm.Int32")
	_ = b.AddProperty(et, "Id", "Edm.Int32", false, nil, nil, nil)

	got := b.GenerateMetadata()

	want := "\t\t\t<EntityType Name=\"T1\">\n" +
		"\t\t\t\t<Documentation>\n" +
		"\t\t\t\t\t<Summary>Orders placed by customers</Summary>\n" +
		"\t\t\t\t</Documentation>\n" +
		"\t\t\t\t<Key>\n" +
		"\t\t\t\t\t<PropertyRef Name=\"Id\" />\n" +
		"\t\t\t\t</Key>\n"
	if !strings.Contains(got, want) {
		t.Errorf("Expected documentation block followed by the key block, got:\n%s", got)
	}
}

func TestGenerateMetadataNavigationAndBindings(t *testing.T) {
	b := NewBuilder("TestNamespace", "TestService")
	s, _ := b.AddSchema("S1", "")
	c := b.AddEntityContainer(s, "C1")

	categories, _ := b.AddEntityType(s, "Categories", "", "", "")
	_ = b.AddKey(categories, "Id", "Edm.Int32")
	_ = b.AddProperty(categories, "Id", "Edm.Int32", false, nil, nil, nil)
	_, _ = b.AddEntitySet(c, "Categories", "S1.Categories")

	products, _ := b.AddEntityType(s, "Products", "", "", "")
	_ = b.AddKey(products, "Id", "Edm.Int32")
	_ = b.AddProperty(products, "Id", "Edm.Int32", false, nil, nil, nil)

	// The set is added before the navigation property exists; bindings are
	// derived at render time, so it must still appear.
	_, _ = b.AddEntitySet(c, "Products", "S1.Products")
	if err := b.AddNavigationProperty(products, "CategoryId", "Id", "Categories", true); err != nil {
		t.Fatalf("AddNavigationProperty failed: %v", err)
	}
	_ = b.AddProperty(products, "CategoryId", "Edm.Int32", true, nil, nil, nil)

	got := b.GenerateMetadata()

	navWant := "\t\t\t\t<NavigationProperty Name=\"Categories\" Type=\"Collection(S1.Categories)\" Partner=\"Products\" Nullable=\"true\">\n" +
		"\t\t\t\t\t<ReferentialConstraint Property=\"CategoryId\" ReferencedProperty=\"Id\" />\n" +
		"\t\t\t\t</NavigationProperty>\n"
	if !strings.Contains(got, navWant) {
		t.Errorf("Expected navigation property block, got:\n%s", got)
	}

	setWant := "\t\t\t\t<EntitySet Name=\"Products\" EntityType=\"S1.Products\">\n" +
		"\t\t\t\t\t<NavigationPropertyBinding Path=\"Categories\" Target=\"Categories\" />\n" +
		"\t\t\t\t</EntitySet>\n"
	if !strings.Contains(got, setWant) {
		t.Errorf("Expected entity set with bindings, got:\n%s", got)
	}
	if !strings.Contains(got, `<EntitySet Name="Categories" EntityType="S1.Categories" />`) {
		t.Errorf("Expected self-closing entity set for Categories, got:\n%s", got)
	}
}
