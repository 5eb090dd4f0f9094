package mdto

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Parse deserializes a conformant document into a Record rooted at the named
// global element. The record either covers the whole document or the call
// fails; no partial records are returned.
func Parse(h *Schema, root string, data []byte, opts ...ParseOpt) (*Record, error) {
	dec, err := ParseWithMeta(h, root, data, opts...)
	if err != nil {
		return nil, err
	}
	return dec.Record, nil
}

// ParseWithMeta deserializes like Parse and additionally captures the
// document metadata (namespace bindings, xsi:schemaLocation) needed for
// prefix-preserving re-serialization.
func ParseWithMeta(h *Schema, root string, data []byte, opts ...ParseOpt) (Decoded, error) {
	var zero Decoded
	if h == nil {
		return zero, singleIssue(CodeSchemaLoad, "nil schema handle")
	}
	td, err := h.TypeFor(root)
	if err != nil {
		return zero, err
	}

	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxDepth == 0 {
		opt.MaxDepth = defaultMaxDepth
	}

	p := &parser{h: h, dec: xml.NewDecoder(bytes.NewReader(data)), opt: opt}

	start, ok := p.nextStart()
	if !ok {
		if len(p.issues) == 0 {
			p.report(Issue{Path: "/", Code: CodeMalformedXML, Message: "document has no root element"})
		}
		return zero, p.issues
	}
	if start.Name.Local != root || start.Name.Space != h.targetNS {
		return zero, Issues{{
			Path: "/" + start.Name.Local, Code: CodeUnexpectedElement,
			Message: fmt.Sprintf("document root is {%s}%s, expected {%s}%s",
				start.Name.Space, start.Name.Local, h.targetNS, root),
		}}
	}

	doc := Document{Root: root}
	for _, at := range start.Attr {
		switch {
		case at.Name.Space == "xmlns":
			doc.Bindings = append(doc.Bindings, Binding{Prefix: at.Name.Local, URI: at.Value})
		case at.Name.Space == "" && at.Name.Local == "xmlns":
			doc.Bindings = append(doc.Bindings, Binding{Prefix: "", URI: at.Value})
		case at.Name.Space == XSINamespace && at.Name.Local == "schemaLocation":
			doc.SchemaLocation = at.Value
		}
	}

	rec := p.parseComplex(start, td, "/"+root, 1)
	p.drainTrailer()
	if len(p.issues) > 0 {
		return zero, p.issues
	}
	return Decoded{Record: rec, Doc: doc}, nil
}

type parser struct {
	h      *Schema
	dec    *xml.Decoder
	opt    ParseOpt
	issues Issues
	halted bool
}

func (p *parser) report(iss ...Issue) {
	if p.halted {
		return
	}
	p.issues = AppendIssues(p.issues, iss...)
	if p.opt.FailFast && len(p.issues) > 0 {
		p.halted = true
	}
}

// nextStart skips prolog/whitespace up to the first element.
func (p *parser) nextStart() (xml.StartElement, bool) {
	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			return xml.StartElement{}, false
		}
		if err != nil {
			p.report(Issue{Path: "/", Code: CodeMalformedXML, Message: "not well-formed XML", Cause: err})
			return xml.StartElement{}, false
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, true
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				p.report(Issue{Path: "/", Code: CodeMalformedXML, Message: "text content before the root element"})
				return xml.StartElement{}, false
			}
		}
	}
}

// drainTrailer rejects non-whitespace content after the root element.
func (p *parser) drainTrailer() {
	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			p.report(Issue{Path: "/", Code: CodeMalformedXML, Message: "not well-formed XML", Cause: err})
			return
		}
		if cd, ok := tok.(xml.CharData); ok && len(bytes.TrimSpace(cd)) == 0 {
			continue
		}
		p.report(Issue{Path: "/", Code: CodeMalformedXML, Message: "content after the root element"})
		return
	}
}

// parseComplex materializes one element with complex content: attributes
// first, then either the ordered sequence fields or the choice variants of
// its type descriptor.
func (p *parser) parseComplex(start xml.StartElement, td *TypeDescriptor, path string, depth int) *Record {
	rec := &Record{Type: td.Name}
	if depth > p.opt.MaxDepth {
		p.report(Issue{Path: path, Code: CodeMalformedXML, Message: "element nesting too deep"})
		p.skip()
		return rec
	}
	p.parseAttrs(start, td, rec, path)
	if len(td.Variants) > 0 {
		p.parseChoiceContent(td, rec, path, depth)
	} else {
		p.parseSequenceContent(td, rec, path, depth)
	}
	return rec
}

func (p *parser) parseAttrs(start xml.StartElement, td *TypeDescriptor, rec *Record, path string) {
	seen := map[string]bool{}
	for _, at := range start.Attr {
		if at.Name.Space == "xmlns" || (at.Name.Space == "" && at.Name.Local == "xmlns") {
			continue // namespace declarations are document metadata
		}
		if at.Name.Space == XSINamespace {
			continue // xsi: instance attributes are always permitted
		}
		var fd *FieldDescriptor
		for i := range td.Attributes {
			if td.Attributes[i].Name == at.Name.Local && at.Name.Space == "" {
				fd = &td.Attributes[i]
				break
			}
		}
		if fd == nil || fd.Occurs.Max == 0 {
			p.report(Issue{Path: path + "/@" + at.Name.Local, Code: CodeUnexpectedAttribute,
				Message: fmt.Sprintf("attribute %q not declared for %s", at.Name.Local, td.Name)})
			continue
		}
		seen[fd.Name] = true
		if err := fd.CheckText(at.Value); err != nil {
			p.reportValue(path+"/@"+fd.Name, err)
			continue
		}
		rec.AddString(fd.Name, fd.Normalize(at.Value))
	}
	for i := range td.Attributes {
		fd := &td.Attributes[i]
		if fd.Occurs.Min > 0 && !seen[fd.Name] {
			p.report(Issue{Path: path + "/@" + fd.Name, Code: CodeRequired,
				Message: fmt.Sprintf("required attribute %q is missing", fd.Name)})
		}
	}
}

func (p *parser) parseSequenceContent(td *TypeDescriptor, rec *Record, path string, depth int) {
	idx := 0
	counts := make([]int, len(td.Fields))
	for {
		child, done := p.contentToken(path)
		if done {
			break
		}
		local, ok := p.childName(child, path)
		if !ok {
			continue
		}
		// Locate the field at or after the current sequence position.
		j := idx
		for j < len(td.Fields) && td.Fields[j].Name != local {
			j++
		}
		if j == len(td.Fields) {
			if fd, at := td.Field(local); fd != nil && at < idx {
				p.report(Issue{Path: path + "/" + local, Code: CodeOutOfOrder,
					Message: fmt.Sprintf("element %q out of declared order in %s", local, td.Name)})
			} else {
				p.report(Issue{Path: path + "/" + local, Code: CodeUnexpectedElement,
					Message: fmt.Sprintf("element %q not declared in %s", local, td.Name)})
			}
			p.skip()
			continue
		}
		// Fields skipped on the way are definitively absent: order is
		// significant, they cannot appear later.
		for k := idx; k < j; k++ {
			if counts[k] < td.Fields[k].Occurs.Min {
				p.report(Issue{Path: path + "/" + td.Fields[k].Name, Code: CodeRequired,
					Message: fmt.Sprintf("required element %q is missing (%s)",
						td.Fields[k].Name, td.Fields[k].Occurs)})
				counts[k] = td.Fields[k].Occurs.Min // report once
			}
		}
		idx = j
		counts[j]++
		fd := &td.Fields[j]
		if fd.Occurs.Max != Unbounded && counts[j] > fd.Occurs.Max {
			p.report(Issue{Path: occPath(path, local, counts[j]), Code: CodeTooMany,
				Message: fmt.Sprintf("element %q exceeds maxOccurs (%s)", local, fd.Occurs)})
			p.skip()
			continue
		}
		p.parseFieldValue(child, fd, rec, occPath(path, local, counts[j]), depth)
	}
	for k := idx; k < len(td.Fields); k++ {
		if counts[k] < td.Fields[k].Occurs.Min {
			p.report(Issue{Path: path + "/" + td.Fields[k].Name, Code: CodeRequired,
				Message: fmt.Sprintf("required element %q is missing (%s)",
					td.Fields[k].Name, td.Fields[k].Occurs)})
		}
	}
}

func (p *parser) parseChoiceContent(td *TypeDescriptor, rec *Record, path string, depth int) {
	total := 0
	for {
		child, done := p.contentToken(path)
		if done {
			break
		}
		local, ok := p.childName(child, path)
		if !ok {
			continue
		}
		fd := td.Variant(local)
		if fd == nil {
			p.report(Issue{Path: path + "/" + local, Code: CodeUnexpectedElement,
				Message: fmt.Sprintf("element %q is not an alternative of %s", local, td.Name),
				Hint:    "allowed: " + variantNames(td)})
			p.skip()
			continue
		}
		total++
		if td.Choice.Max != Unbounded && total > td.Choice.Max {
			p.report(Issue{Path: occPath(path, local, total), Code: CodeTooMany,
				Message: fmt.Sprintf("choice group exceeds maxOccurs (%s)", td.Choice)})
			p.skip()
			continue
		}
		p.parseFieldValue(child, fd, rec, occPath(path, local, total), depth)
	}
	if total < td.Choice.Min {
		p.report(Issue{Path: path, Code: CodeRequired,
			Message: fmt.Sprintf("choice group requires %s occurrences, got %d", td.Choice, total),
			Hint:    "allowed: " + variantNames(td)})
	}
}

// contentToken returns the next child element of the current content, or
// done=true at the element's end. Non-whitespace text in element-only
// content is rejected.
func (p *parser) contentToken(path string) (xml.StartElement, bool) {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			p.report(Issue{Path: path, Code: CodeMalformedXML, Message: "not well-formed XML", Cause: err})
			return xml.StartElement{}, true
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, false
		case xml.EndElement:
			return xml.StartElement{}, true
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				p.report(Issue{Path: path, Code: CodeUnexpectedText,
					Message: "text content in element-only content"})
			}
		}
	}
}

// childName enforces namespace qualification and resolves by local name.
// Element identity is URI + local name; the prefix never matters.
func (p *parser) childName(child xml.StartElement, path string) (string, bool) {
	if child.Name.Space != p.h.targetNS {
		p.report(Issue{Path: path + "/" + child.Name.Local, Code: CodeUnexpectedElement,
			Message: fmt.Sprintf("element {%s}%s outside the schema namespace", child.Name.Space, child.Name.Local)})
		p.skip()
		return "", false
	}
	return child.Name.Local, true
}

func (p *parser) parseFieldValue(child xml.StartElement, fd *FieldDescriptor, rec *Record, path string, depth int) {
	if fd.Leaf() {
		text, ok := p.leafText(child, path)
		if !ok {
			return
		}
		text = fd.Normalize(text)
		if err := fd.CheckText(text); err != nil {
			p.reportValue(path, err)
			return
		}
		rec.AddString(fd.Name, text)
		return
	}
	nested := p.h.types[fd.TypeRef]
	rec.AddRecord(fd.Name, p.parseComplex(child, nested, path, depth+1))
}

// leafText collects the character content of a leaf element verbatim.
func (p *parser) leafText(start xml.StartElement, path string) (string, bool) {
	for _, at := range start.Attr {
		if at.Name.Space == "xmlns" || (at.Name.Space == "" && at.Name.Local == "xmlns") || at.Name.Space == XSINamespace {
			continue
		}
		p.report(Issue{Path: path + "/@" + at.Name.Local, Code: CodeUnexpectedAttribute,
			Message: fmt.Sprintf("attribute %q not allowed on leaf element", at.Name.Local)})
	}
	var b strings.Builder
	for {
		tok, err := p.dec.Token()
		if err != nil {
			p.report(Issue{Path: path, Code: CodeMalformedXML, Message: "not well-formed XML", Cause: err})
			return "", false
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			return b.String(), true
		case xml.StartElement:
			p.report(Issue{Path: path + "/" + t.Name.Local, Code: CodeUnexpectedElement,
				Message: fmt.Sprintf("element %q inside leaf content", t.Name.Local)})
			p.skip()
		}
	}
}

// reportValue rebases value-check issues onto the element path.
func (p *parser) reportValue(path string, err error) {
	if iss, ok := AsIssues(err); ok {
		for _, it := range iss {
			it.Path = path
			p.report(it)
		}
		return
	}
	p.report(Issue{Path: path, Code: CodeInvalidValue, Message: err.Error(), Cause: err})
}

func (p *parser) skip() {
	// Skip failures surface as malformed XML at the next read.
	_ = p.dec.Skip()
}

func occPath(parent, name string, n int) string {
	if n > 1 {
		return fmt.Sprintf("%s/%s[%d]", parent, name, n)
	}
	return parent + "/" + name
}

func variantNames(td *TypeDescriptor) string {
	names := make([]string, 0, len(td.Variants))
	for _, v := range td.Variants {
		names = append(names, v.Name)
	}
	return strings.Join(names, ", ")
}
