// Package schemaxml holds the raw document model of an XSD source: a direct
// mapping of the schema XML onto structs, with no semantic interpretation.
// Compilation into type descriptors happens in the root package.
package schemaxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// XSDNamespace is the XML Schema definition namespace.
const XSDNamespace = "http://www.w3.org/2001/XMLSchema"

// Schema is the xs:schema document element.
type Schema struct {
	XMLName            xml.Name      `xml:"http://www.w3.org/2001/XMLSchema schema"`
	TargetNamespace    string        `xml:"targetNamespace,attr"`
	ElementFormDefault string        `xml:"elementFormDefault,attr"`
	Elements           []Element     `xml:"element"`
	ComplexTypes       []ComplexType `xml:"complexType"`
	SimpleTypes        []SimpleType  `xml:"simpleType"`
}

// Element is an xs:element declaration, global or local.
type Element struct {
	Name              string       `xml:"name,attr"`
	Type              string       `xml:"type,attr"`
	MinOccurs         string       `xml:"minOccurs,attr"`
	MaxOccurs         string       `xml:"maxOccurs,attr"`
	Default           string       `xml:"default,attr"`
	Fixed             string       `xml:"fixed,attr"`
	SubstitutionGroup string       `xml:"substitutionGroup,attr"`
	ComplexType       *ComplexType `xml:"complexType"`
	SimpleType        *SimpleType  `xml:"simpleType"`
}

// ComplexType is an xs:complexType definition.
type ComplexType struct {
	Name           string      `xml:"name,attr"`
	Mixed          string      `xml:"mixed,attr"`
	Sequence       *Sequence   `xml:"sequence"`
	Choice         *Choice     `xml:"choice"`
	All            *All        `xml:"all"`
	Attributes     []Attribute `xml:"attribute"`
	AnyAttribute   *Any        `xml:"anyAttribute"`
	SimpleContent  *Content    `xml:"simpleContent"`
	ComplexContent *Content    `xml:"complexContent"`
}

// Sequence is an xs:sequence particle.
type Sequence struct {
	Elements []Element `xml:"element"`
	Choices  []Choice  `xml:"choice"`
	Anys     []Any     `xml:"any"`
}

// Choice is an xs:choice particle.
type Choice struct {
	MinOccurs string    `xml:"minOccurs,attr"`
	MaxOccurs string    `xml:"maxOccurs,attr"`
	Elements  []Element `xml:"element"`
	Anys      []Any     `xml:"any"`
}

// All is an xs:all particle. Present in the model so compilation can reject
// it explicitly.
type All struct{}

// Any covers xs:any and xs:anyAttribute wildcards.
type Any struct{}

// Content covers xs:simpleContent / xs:complexContent derivations.
type Content struct{}

// Attribute is an xs:attribute declaration.
type Attribute struct {
	Name       string      `xml:"name,attr"`
	Type       string      `xml:"type,attr"`
	Use        string      `xml:"use,attr"`
	Fixed      string      `xml:"fixed,attr"`
	SimpleType *SimpleType `xml:"simpleType"`
}

// SimpleType is an xs:simpleType definition.
type SimpleType struct {
	Name        string       `xml:"name,attr"`
	Restriction *Restriction `xml:"restriction"`
	Union       *Union       `xml:"union"`
	List        *List        `xml:"list"`
}

// Restriction is an xs:restriction over a base type.
type Restriction struct {
	Base         string  `xml:"base,attr"`
	Enumerations []Facet `xml:"enumeration"`
	Patterns     []Facet `xml:"pattern"`
	MaxLengths   []Facet `xml:"maxLength"`
}

// Union is an xs:union of member types.
type Union struct {
	MemberTypes string `xml:"memberTypes,attr"`
}

// List is an xs:list simple type. Rejected at compile time.
type List struct{}

// Facet is a single facet value.
type Facet struct {
	Value string `xml:"value,attr"`
}

// Parse reads an XSD document.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse schema document: %w", err)
	}
	// Reject trailing non-whitespace content after the document element.
	if err := drainTrailer(dec); err != nil {
		return nil, err
	}
	if s.XMLName.Space != XSDNamespace {
		return nil, fmt.Errorf("parse schema document: root is not an XML Schema (namespace %q)", s.XMLName.Space)
	}
	return &s, nil
}

func drainTrailer(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parse schema document: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return fmt.Errorf("parse schema document: unexpected trailing content")
			}
		case xml.StartElement:
			return fmt.Errorf("parse schema document: unexpected trailing element <%s>", t.Name.Local)
		}
	}
}
