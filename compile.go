package mdto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/guidodo/mdto/internal/schemaxml"
)

// compileSchema turns an XSD source into a Schema handle. Compilation is
// deterministic and total over the declared types: any construct the type
// model cannot represent losslessly fails here, at load time, never later as
// a silently dropped field.
func compileSchema(data []byte) (*Schema, error) {
	doc, err := schemaxml.Parse(data)
	if err != nil {
		return nil, Issues{Issue{Path: "/", Code: CodeSchemaLoad,
			Message: "schema source is not a well-formed XSD", Cause: err}}
	}
	c := &compiler{
		doc:     doc,
		complex: map[string]*schemaxml.ComplexType{},
		simple:  map[string]*schemaxml.SimpleType{},
		handle: &Schema{
			targetNS: doc.TargetNamespace,
			roots:    map[string]string{},
			types:    map[string]*TypeDescriptor{},
		},
	}
	if err := c.run(); err != nil {
		return nil, err
	}
	return c.handle, nil
}

type compiler struct {
	doc     *schemaxml.Schema
	complex map[string]*schemaxml.ComplexType
	simple  map[string]*schemaxml.SimpleType
	handle  *Schema
}

func (c *compiler) run() error {
	for i := range c.doc.ComplexTypes {
		ct := &c.doc.ComplexTypes[i]
		if ct.Name == "" {
			return loadErr("/complexType", "top-level complexType without a name")
		}
		c.complex[ct.Name] = ct
	}
	for i := range c.doc.SimpleTypes {
		st := &c.doc.SimpleTypes[i]
		if st.Name == "" {
			return loadErr("/simpleType", "top-level simpleType without a name")
		}
		c.simple[st.Name] = st
	}

	// Global elements first, so inline complex types register under the
	// element's name before named types are compiled.
	for i := range c.doc.Elements {
		el := &c.doc.Elements[i]
		if el.Name == "" {
			return loadErr("/element", "global element without a name")
		}
		typeName, err := c.elementTypeName(el, "/"+el.Name)
		if err != nil {
			return err
		}
		c.handle.roots[el.Name] = typeName
	}
	for name, ct := range c.complex {
		if _, done := c.handle.types[name]; done {
			continue
		}
		td, err := c.compileComplex(name, ct, "/complexType/"+name)
		if err != nil {
			return err
		}
		c.handle.types[name] = td
	}
	return nil
}

// elementTypeName resolves a global element to a compiled complex type name,
// compiling inline anonymous types under the element's own name.
func (c *compiler) elementTypeName(el *schemaxml.Element, path string) (string, error) {
	if err := checkElementDecl(el, path); err != nil {
		return "", err
	}
	switch {
	case el.ComplexType != nil:
		if _, exists := c.complex[el.Name]; exists {
			return "", loadErr(path, fmt.Sprintf("inline type of element %q collides with named type", el.Name))
		}
		td, err := c.compileComplex(el.Name, el.ComplexType, path)
		if err != nil {
			return "", err
		}
		c.handle.types[el.Name] = td
		return el.Name, nil
	case el.Type != "":
		name := localName(el.Type)
		if _, ok := c.complex[name]; !ok {
			return "", loadErr(path, fmt.Sprintf("global element %q must have complex type content, got %q", el.Name, el.Type))
		}
		return name, nil
	default:
		return "", unsupportedErr(path, "global element without a declared type (implied xs:anyType)")
	}
}

func (c *compiler) compileComplex(name string, ct *schemaxml.ComplexType, path string) (*TypeDescriptor, error) {
	switch {
	case ct.Mixed == "true":
		return nil, unsupportedErr(path, "mixed content")
	case ct.All != nil:
		return nil, unsupportedErr(path, "xs:all content model")
	case ct.AnyAttribute != nil:
		return nil, unsupportedErr(path, "xs:anyAttribute wildcard")
	case ct.SimpleContent != nil || ct.ComplexContent != nil:
		return nil, unsupportedErr(path, "content derivation (simpleContent/complexContent)")
	case ct.Sequence != nil && ct.Choice != nil:
		return nil, unsupportedErr(path, "both sequence and choice content")
	}

	td := &TypeDescriptor{Name: name, Choice: Occurs{Min: 1, Max: 1}}

	if seq := ct.Sequence; seq != nil {
		if len(seq.Anys) > 0 {
			return nil, unsupportedErr(path, "xs:any wildcard in sequence")
		}
		if len(seq.Choices) > 0 {
			return nil, unsupportedErr(path, "nested choice inside sequence")
		}
		for i := range seq.Elements {
			fd, err := c.compileField(&seq.Elements[i], path)
			if err != nil {
				return nil, err
			}
			if prev, _ := td.Field(fd.Name); prev != nil {
				return nil, loadErr(path, fmt.Sprintf("duplicate element %q in sequence", fd.Name))
			}
			td.Fields = append(td.Fields, *fd)
		}
	}
	if ch := ct.Choice; ch != nil {
		if len(ch.Anys) > 0 {
			return nil, unsupportedErr(path, "xs:any wildcard in choice")
		}
		occ, err := parseOccurs(ch.MinOccurs, ch.MaxOccurs, path)
		if err != nil {
			return nil, err
		}
		td.Choice = occ
		for i := range ch.Elements {
			fd, err := c.compileField(&ch.Elements[i], path)
			if err != nil {
				return nil, err
			}
			if td.Variant(fd.Name) != nil {
				return nil, loadErr(path, fmt.Sprintf("duplicate variant %q in choice", fd.Name))
			}
			// Cardinality of choice members is carried by the group.
			fd.Occurs = Occurs{Min: 1, Max: 1}
			td.Variants = append(td.Variants, *fd)
		}
	}
	for i := range ct.Attributes {
		ad, err := c.compileAttribute(&ct.Attributes[i], path)
		if err != nil {
			return nil, err
		}
		td.Attributes = append(td.Attributes, *ad)
	}
	return td, nil
}

func (c *compiler) compileField(el *schemaxml.Element, parentPath string) (*FieldDescriptor, error) {
	if el.Name == "" {
		return nil, loadErr(parentPath, "element without a name")
	}
	path := parentPath + "/" + el.Name
	if err := checkElementDecl(el, path); err != nil {
		return nil, err
	}
	occ, err := parseOccurs(el.MinOccurs, el.MaxOccurs, path)
	if err != nil {
		return nil, err
	}
	fd := &FieldDescriptor{Name: el.Name, Kind: ElementField, Occurs: occ}

	switch {
	case el.ComplexType != nil:
		return nil, unsupportedErr(path, "anonymous complex type on local element")
	case el.SimpleType != nil:
		kind, enum, err := c.resolveSimpleInline(el.SimpleType, path)
		if err != nil {
			return nil, err
		}
		fd.Value, fd.Enum = kind, enum
	case el.Type != "":
		name := localName(el.Type)
		if _, ok := c.complex[name]; ok {
			fd.TypeRef = name
			break
		}
		kind, enum, err := c.resolveSimpleName(name, path)
		if err != nil {
			return nil, err
		}
		fd.Value, fd.Enum = kind, enum
	default:
		return nil, unsupportedErr(path, "element without a declared type (implied xs:anyType)")
	}
	return fd, nil
}

func (c *compiler) compileAttribute(at *schemaxml.Attribute, parentPath string) (*FieldDescriptor, error) {
	if at.Name == "" {
		return nil, loadErr(parentPath, "attribute without a name")
	}
	path := parentPath + "/@" + at.Name
	if at.Fixed != "" {
		return nil, unsupportedErr(path, "fixed attribute value")
	}
	occ := Occurs{Min: 0, Max: 1}
	switch at.Use {
	case "", "optional":
	case "required":
		occ.Min = 1
	case "prohibited":
		occ = Occurs{Min: 0, Max: 0}
	default:
		return nil, loadErr(path, fmt.Sprintf("invalid attribute use %q", at.Use))
	}
	fd := &FieldDescriptor{Name: at.Name, Kind: AttributeField, Occurs: occ, Value: ValueString}
	switch {
	case at.SimpleType != nil:
		kind, enum, err := c.resolveSimpleInline(at.SimpleType, path)
		if err != nil {
			return nil, err
		}
		fd.Value, fd.Enum = kind, enum
	case at.Type != "":
		kind, enum, err := c.resolveSimpleName(localName(at.Type), path)
		if err != nil {
			return nil, err
		}
		fd.Value, fd.Enum = kind, enum
	}
	return fd, nil
}

// resolveSimpleName maps a builtin or named simple type to a value kind.
func (c *compiler) resolveSimpleName(name, path string) (ValueKind, []string, error) {
	if kind, ok := builtinKinds[name]; ok {
		return kind, nil, nil
	}
	if st, ok := c.simple[name]; ok {
		return c.resolveSimpleInline(st, path)
	}
	return ValueNone, nil, loadErr(path, fmt.Sprintf("unknown type %q", name))
}

func (c *compiler) resolveSimpleInline(st *schemaxml.SimpleType, path string) (ValueKind, []string, error) {
	switch {
	case st.List != nil:
		return ValueNone, nil, unsupportedErr(path, "xs:list simple type")
	case st.Union != nil:
		return c.resolveUnion(st.Union, path)
	case st.Restriction != nil:
		return c.resolveRestriction(st.Restriction, path)
	default:
		return ValueNone, nil, unsupportedErr(path, "simple type without restriction, union or list")
	}
}

func (c *compiler) resolveRestriction(r *schemaxml.Restriction, path string) (ValueKind, []string, error) {
	if len(r.Patterns) > 0 || len(r.MaxLengths) > 0 {
		return ValueNone, nil, unsupportedErr(path, "pattern/maxLength facets")
	}
	kind, enum, err := c.resolveSimpleName(localName(r.Base), path)
	if err != nil {
		return ValueNone, nil, err
	}
	if len(r.Enumerations) > 0 {
		if kind != ValueString {
			return ValueNone, nil, unsupportedErr(path, "enumeration facet on a non-string base")
		}
		enum = make([]string, 0, len(r.Enumerations))
		for _, f := range r.Enumerations {
			enum = append(enum, f.Value)
		}
	}
	return kind, enum, nil
}

// resolveUnion accepts only unions whose members are all calendar builtins,
// the shape MDTO uses for its date fields; anything wider cannot round-trip
// losslessly through one value space.
func (c *compiler) resolveUnion(u *schemaxml.Union, path string) (ValueKind, []string, error) {
	members := strings.Fields(u.MemberTypes)
	if len(members) == 0 {
		return ValueNone, nil, unsupportedErr(path, "union without memberTypes")
	}
	for _, m := range members {
		switch builtinKinds[localName(m)] {
		case ValueDate, ValueDateTime, ValueGYear, ValueGYearMonth:
		default:
			return ValueNone, nil, unsupportedErr(path, fmt.Sprintf("union member %q outside the calendar builtins", m))
		}
	}
	return ValueDatum, nil, nil
}

var builtinKinds = map[string]ValueKind{
	"string":             ValueString,
	"normalizedString":   ValueString,
	"token":              ValueString,
	"language":           ValueString,
	"anyURI":             ValueURI,
	"date":               ValueDate,
	"dateTime":           ValueDateTime,
	"gYear":              ValueGYear,
	"gYearMonth":         ValueGYearMonth,
	"duration":           ValueDuration,
	"nonNegativeInteger": ValueNonNegativeInteger,
}

func checkElementDecl(el *schemaxml.Element, path string) error {
	if el.SubstitutionGroup != "" {
		return unsupportedErr(path, "substitutionGroup")
	}
	if el.Default != "" || el.Fixed != "" {
		return unsupportedErr(path, "default/fixed element value")
	}
	return nil
}

func parseOccurs(min, max, path string) (Occurs, error) {
	occ := Occurs{Min: 1, Max: 1}
	if min != "" {
		n, err := strconv.Atoi(min)
		if err != nil || n < 0 {
			return occ, loadErr(path, fmt.Sprintf("invalid minOccurs %q", min))
		}
		occ.Min = n
	}
	switch {
	case max == "":
	case max == "unbounded":
		occ.Max = Unbounded
	default:
		n, err := strconv.Atoi(max)
		if err != nil || n < 0 {
			return occ, loadErr(path, fmt.Sprintf("invalid maxOccurs %q", max))
		}
		occ.Max = n
	}
	if occ.Max != Unbounded && occ.Max < occ.Min {
		return occ, loadErr(path, fmt.Sprintf("maxOccurs %d below minOccurs %d", occ.Max, occ.Min))
	}
	return occ, nil
}

func localName(qname string) string {
	if i := strings.LastIndexByte(qname, ':'); i >= 0 {
		return qname[i+1:]
	}
	return qname
}

func loadErr(path, msg string) Issues {
	return Issues{Issue{Path: path, Code: CodeSchemaLoad, Message: msg}}
}

func unsupportedErr(path, msg string) Issues {
	return Issues{Issue{Path: path, Code: CodeUnsupportedConstruct, Message: msg}}
}
