package mdto_test

import (
	"testing"

	"github.com/guidodo/mdto"
)

func TestLoadFile_MDTO(t *testing.T) {
	h := loadSchema(t)

	if got := h.Namespace(); got != "https://www.nationaalarchief.nl/mdto" {
		t.Fatalf("namespace: got %q", got)
	}
	if roots := h.RootElements(); len(roots) != 1 || roots[0] != "MDTO" {
		t.Fatalf("root elements: got %v", roots)
	}

	td, err := h.TypeFor("MDTO")
	if err != nil {
		t.Fatalf("TypeFor(MDTO): %v", err)
	}
	if len(td.Variants) != 2 || td.Variant("informatieobject") == nil || td.Variant("bestand") == nil {
		t.Fatalf("MDTO choice variants: got %+v", td.Variants)
	}

	io := h.Type("informatieobjectType")
	if io == nil {
		t.Fatal("informatieobjectType not compiled")
	}
	// declared order is part of the contract
	if fd, pos := io.Field("naam"); fd == nil || pos != 1 {
		t.Fatalf("naam position: got %d", pos)
	}
	if fd, _ := io.Field("identificatie"); fd == nil || fd.Occurs.Min != 1 || fd.Occurs.Max != mdto.Unbounded {
		t.Fatalf("identificatie occurs: got %+v", fd)
	}
	if fd, _ := io.Field("waardering"); fd == nil || fd.TypeRef != "begripGegevens" {
		t.Fatalf("waardering type ref: got %+v", fd)
	}
}

func TestTypeFor_UnknownElement(t *testing.T) {
	h := loadSchema(t)
	_, err := h.TypeFor("archiefstuk")
	if !hasIssue(t, err, mdto.CodeUnknownElement) {
		t.Fatalf("expected unknown_element, got %v", err)
	}
}

func TestLoadBytes_CachesByDigest(t *testing.T) {
	src := readFile(t, "testdata/MDTO-XML1.0.1.xsd")

	a, err := mdto.LoadBytes(src)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	b, err := mdto.LoadBytes(src)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if a != b {
		t.Fatal("same source must yield the same handle")
	}

	c, err := mdto.LoadBytes(append([]byte("<!-- v2 -->\n"), src...))
	if err != nil {
		t.Fatalf("variant load: %v", err)
	}
	if a == c {
		t.Fatal("different source must yield an independent handle")
	}
}

const schemaHead = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
	xmlns:t="urn:test" targetNamespace="urn:test" elementFormDefault="qualified">`

func TestLoadBytes_RejectsUnsupportedConstructs(t *testing.T) {
	cases := []struct {
		name string
		body string
		code string
	}{
		{
			name: "mixed content",
			body: `<xs:element name="doc" type="t:a"/>
				<xs:complexType name="a" mixed="true"><xs:sequence><xs:element name="x" type="xs:string"/></xs:sequence></xs:complexType>`,
			code: mdto.CodeUnsupportedConstruct,
		},
		{
			name: "xs:all",
			body: `<xs:element name="doc" type="t:a"/>
				<xs:complexType name="a"><xs:all/></xs:complexType>`,
			code: mdto.CodeUnsupportedConstruct,
		},
		{
			name: "anyAttribute",
			body: `<xs:element name="doc" type="t:a"/>
				<xs:complexType name="a"><xs:sequence/><xs:anyAttribute/></xs:complexType>`,
			code: mdto.CodeUnsupportedConstruct,
		},
		{
			name: "element wildcard",
			body: `<xs:element name="doc" type="t:a"/>
				<xs:complexType name="a"><xs:sequence><xs:any/></xs:sequence></xs:complexType>`,
			code: mdto.CodeUnsupportedConstruct,
		},
		{
			name: "pattern facet",
			body: `<xs:element name="doc" type="t:a"/>
				<xs:complexType name="a"><xs:sequence><xs:element name="x">
				<xs:simpleType><xs:restriction base="xs:string"><xs:pattern value="[a-z]+"/></xs:restriction></xs:simpleType>
				</xs:element></xs:sequence></xs:complexType>`,
			code: mdto.CodeUnsupportedConstruct,
		},
		{
			name: "list simple type",
			body: `<xs:element name="doc" type="t:a"/>
				<xs:complexType name="a"><xs:sequence><xs:element name="x">
				<xs:simpleType><xs:list/></xs:simpleType>
				</xs:element></xs:sequence></xs:complexType>`,
			code: mdto.CodeUnsupportedConstruct,
		},
		{
			name: "union beyond calendar builtins",
			body: `<xs:element name="doc" type="t:a"/>
				<xs:complexType name="a"><xs:sequence><xs:element name="x">
				<xs:simpleType><xs:union memberTypes="xs:date xs:string"/></xs:simpleType>
				</xs:element></xs:sequence></xs:complexType>`,
			code: mdto.CodeUnsupportedConstruct,
		},
		{
			name: "default element value",
			body: `<xs:element name="doc" type="t:a"/>
				<xs:complexType name="a"><xs:sequence><xs:element name="x" type="xs:string" default="y"/></xs:sequence></xs:complexType>`,
			code: mdto.CodeUnsupportedConstruct,
		},
		{
			name: "unknown type reference",
			body: `<xs:element name="doc" type="t:a"/>
				<xs:complexType name="a"><xs:sequence><xs:element name="x" type="t:nope"/></xs:sequence></xs:complexType>`,
			code: mdto.CodeSchemaLoad,
		},
		{
			name: "duplicate sequence element",
			body: `<xs:element name="doc" type="t:a"/>
				<xs:complexType name="a"><xs:sequence>
				<xs:element name="x" type="xs:string"/><xs:element name="x" type="xs:string"/>
				</xs:sequence></xs:complexType>`,
			code: mdto.CodeSchemaLoad,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mdto.LoadBytes([]byte(schemaHead + tc.body + `</xs:schema>`))
			if !hasIssue(t, err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestLoadBytes_NotAnXSD(t *testing.T) {
	_, err := mdto.LoadBytes([]byte(`<root xmlns="urn:other"/>`))
	if !hasIssue(t, err, mdto.CodeSchemaLoad) {
		t.Fatalf("expected schema_load, got %v", err)
	}
}

func TestEqualRecords_ComparesValueSpace(t *testing.T) {
	h := loadSchema(t)

	a := mdto.NewRecord("bestandType").AddString("omvang", "007")
	b := mdto.NewRecord("bestandType").AddString("omvang", "7")
	if !h.EqualRecords(a, b) {
		t.Fatal("integer fields must compare in value space")
	}
	if a.Equal(b) {
		t.Fatal("strict Equal must stay byte-wise")
	}

	c := mdto.NewRecord("bestandType").AddString("naam", "a ")
	d := mdto.NewRecord("bestandType").AddString("naam", "a")
	if h.EqualRecords(c, d) {
		t.Fatal("string fields must not be trimmed during comparison")
	}
}
