package mdto

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Write serializes a record rooted at the named global element into a
// canonical document: the schema namespace is the default namespace, xsi is
// bound for schemaLocation, fields are emitted in declared order with tab
// indentation. The record is checked for completeness first; nothing is
// emitted for an incomplete record.
func Write(h *Schema, root string, rec *Record, opts ...WriteOpt) ([]byte, error) {
	return write(h, root, rec, Document{}, opts...)
}

// WritePreserving serializes like Write but reuses the namespace bindings
// and schemaLocation captured at parse time, so that a parse/write cycle
// reproduces the original document's prefix choices.
func WritePreserving(h *Schema, dec Decoded, opts ...WriteOpt) ([]byte, error) {
	return write(h, dec.Doc.Root, dec.Record, dec.Doc, opts...)
}

func write(h *Schema, root string, rec *Record, doc Document, opts ...WriteOpt) ([]byte, error) {
	if h == nil {
		return nil, singleIssue(CodeSchemaLoad, "nil schema handle")
	}
	if rec == nil {
		return nil, singleIssue(CodeIncompleteRecord, "nil record")
	}
	td, err := h.TypeFor(root)
	if err != nil {
		return nil, err
	}

	var opt WriteOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.Indent == "" {
		opt.Indent = "\t"
	}

	if doc.SchemaLocation == "" {
		doc.SchemaLocation = opt.SchemaLocation
	}

	w := &writer{h: h, opt: opt, doc: doc}
	w.prefix, _ = doc.Prefix(h.targetNS)

	// Completeness and validity are established before any byte is emitted.
	w.check(td, rec, "/"+root)
	if len(w.issues) > 0 {
		return nil, w.issues
	}

	if !opt.OmitDeclaration {
		w.buf.WriteString(xmlDeclaration)
	}
	w.element(td, rec, root, 0)
	w.buf.WriteByte('\n')
	return w.buf.Bytes(), nil
}

type writer struct {
	h      *Schema
	opt    WriteOpt
	doc    Document
	prefix string
	buf    bytes.Buffer
	issues Issues
}

// check verifies cardinality, order independence of the map form, and
// lexical validity of every leaf before serialization starts.
func (w *writer) check(td *TypeDescriptor, rec *Record, path string) {
	if len(td.Variants) > 0 {
		w.checkChoice(td, rec, path)
	} else {
		w.checkSequence(td, rec, path)
	}
	for i := range td.Attributes {
		fd := &td.Attributes[i]
		vals := rec.Strings(fd.Name)
		if len(vals) < fd.Occurs.Min {
			w.issues = AppendIssues(w.issues, Issue{Path: path + "/@" + fd.Name, Code: CodeIncompleteRecord,
				Message: fmt.Sprintf("required attribute %q is missing", fd.Name)})
		}
		for _, v := range vals {
			w.checkLeafValue(fd, v, path+"/@"+fd.Name)
		}
	}
}

func (w *writer) checkSequence(td *TypeDescriptor, rec *Record, path string) {
	for _, f := range rec.Fields {
		if fd, _ := td.Field(f.Name); fd == nil && !isAttribute(td, f.Name) {
			w.issues = AppendIssues(w.issues, Issue{Path: path + "/" + f.Name, Code: CodeUnexpectedElement,
				Message: fmt.Sprintf("field %q not declared in %s", f.Name, td.Name)})
		}
	}
	for i := range td.Fields {
		fd := &td.Fields[i]
		w.checkField(fd, rec, path)
	}
}

func (w *writer) checkChoice(td *TypeDescriptor, rec *Record, path string) {
	total := 0
	for _, f := range rec.Fields {
		fd := td.Variant(f.Name)
		if fd == nil && !isAttribute(td, f.Name) {
			w.issues = AppendIssues(w.issues, Issue{Path: path + "/" + f.Name, Code: CodeUnexpectedElement,
				Message: fmt.Sprintf("field %q is not an alternative of %s", f.Name, td.Name)})
			continue
		}
		if fd == nil {
			continue
		}
		total += len(f.Values)
		for n, v := range f.Values {
			w.checkValue(fd, v, occPath(path, f.Name, n+1))
		}
	}
	if !td.Choice.Contains(total) {
		w.issues = AppendIssues(w.issues, Issue{Path: path, Code: CodeIncompleteRecord,
			Message: fmt.Sprintf("choice group requires %s occurrences, got %d", td.Choice, total)})
	}
}

func (w *writer) checkField(fd *FieldDescriptor, rec *Record, path string) {
	f := rec.Get(fd.Name)
	n := 0
	if f != nil {
		n = len(f.Values)
	}
	if !fd.Occurs.Contains(n) {
		code := CodeIncompleteRecord
		if fd.Occurs.Max != Unbounded && n > fd.Occurs.Max {
			code = CodeTooMany
		}
		w.issues = AppendIssues(w.issues, Issue{Path: path + "/" + fd.Name, Code: code,
			Message: fmt.Sprintf("field %q has %d occurrences, declared %s", fd.Name, n, fd.Occurs)})
	}
	if f == nil {
		return
	}
	for i, v := range f.Values {
		w.checkValue(fd, v, occPath(path, fd.Name, i+1))
	}
}

func (w *writer) checkValue(fd *FieldDescriptor, v Value, path string) {
	if fd.Leaf() {
		if v.Record != nil {
			w.issues = AppendIssues(w.issues, Issue{Path: path, Code: CodeInvalidValue,
				Message: fmt.Sprintf("field %q is a leaf, got a nested record", fd.Name)})
			return
		}
		w.checkLeafValue(fd, v.Text, path)
		return
	}
	if v.Record == nil {
		w.issues = AppendIssues(w.issues, Issue{Path: path, Code: CodeIncompleteRecord,
			Message: fmt.Sprintf("field %q needs a nested record, got text", fd.Name)})
		return
	}
	nested := w.h.types[fd.TypeRef]
	w.check(nested, v.Record, path)
}

func (w *writer) checkLeafValue(fd *FieldDescriptor, text, path string) {
	if err := fd.CheckText(text); err != nil {
		if iss, ok := AsIssues(err); ok {
			for _, it := range iss {
				it.Path = path
				w.issues = AppendIssues(w.issues, it)
			}
			return
		}
		w.issues = AppendIssues(w.issues, Issue{Path: path, Code: CodeInvalidValue, Message: err.Error(), Cause: err})
	}
}

// element emits the named element and its content in declared order.
func (w *writer) element(td *TypeDescriptor, rec *Record, name string, depth int) {
	w.indent(depth)
	w.buf.WriteByte('<')
	w.buf.WriteString(w.qualify(name))
	if depth == 0 {
		w.rootAttrs()
	}
	for i := range td.Attributes {
		fd := &td.Attributes[i]
		for _, v := range rec.Strings(fd.Name) {
			w.buf.WriteString(" " + fd.Name + `="`)
			w.escape(v)
			w.buf.WriteByte('"')
		}
	}
	w.buf.WriteByte('>')
	w.buf.WriteByte('\n')
	if len(td.Variants) > 0 {
		// Record order is the document order for choice content.
		for _, f := range rec.Fields {
			fd := td.Variant(f.Name)
			if fd == nil {
				continue
			}
			for _, v := range f.Values {
				w.value(fd, v, depth+1)
			}
		}
	} else {
		for i := range td.Fields {
			fd := &td.Fields[i]
			f := rec.Get(fd.Name)
			if f == nil {
				continue
			}
			for _, v := range f.Values {
				w.value(fd, v, depth+1)
			}
		}
	}
	w.indent(depth)
	w.buf.WriteString("</" + w.qualify(name) + ">")
	if depth > 0 {
		w.buf.WriteByte('\n')
	}
}

func (w *writer) value(fd *FieldDescriptor, v Value, depth int) {
	if fd.Leaf() {
		w.leaf(fd.Name, v.Text, depth)
		return
	}
	w.element(w.h.types[fd.TypeRef], v.Record, fd.Name, depth)
}

func (w *writer) leaf(name, text string, depth int) {
	w.indent(depth)
	q := w.qualify(name)
	if text == "" {
		w.buf.WriteString("<" + q + "/>\n")
		return
	}
	w.buf.WriteString("<" + q + ">")
	w.escape(text)
	w.buf.WriteString("</" + q + ">\n")
}

// rootAttrs emits the namespace declarations and schemaLocation. Canonical
// mode binds the schema namespace as default and xsi by its conventional
// prefix; preserving mode replays the captured bindings.
func (w *writer) rootAttrs() {
	if len(w.doc.Bindings) == 0 {
		w.buf.WriteString(` xmlns="` + w.h.targetNS + `"`)
		w.buf.WriteString(` xmlns:xsi="` + XSINamespace + `"`)
		if w.doc.SchemaLocation != "" {
			w.buf.WriteString(` xsi:schemaLocation="`)
			w.escape(w.doc.SchemaLocation)
			w.buf.WriteByte('"')
		}
		return
	}
	for _, b := range w.doc.Bindings {
		if b.Prefix == "" {
			w.buf.WriteString(` xmlns="`)
		} else {
			w.buf.WriteString(` xmlns:` + b.Prefix + `="`)
		}
		w.escape(b.URI)
		w.buf.WriteByte('"')
	}
	if w.doc.SchemaLocation != "" {
		xsi, ok := w.doc.Prefix(XSINamespace)
		if !ok || xsi == "" {
			xsi = "xsi"
		}
		w.buf.WriteString(" " + xsi + `:schemaLocation="`)
		w.escape(w.doc.SchemaLocation)
		w.buf.WriteByte('"')
	}
}

func (w *writer) qualify(name string) string {
	if w.prefix == "" {
		return name
	}
	return w.prefix + ":" + name
}

func (w *writer) indent(depth int) {
	for i := 0; i < depth; i++ {
		w.buf.WriteString(w.opt.Indent)
	}
}

func (w *writer) escape(s string) {
	// EscapeText on a bytes.Buffer cannot fail.
	_ = xml.EscapeText(&w.buf, []byte(s))
}

func isAttribute(td *TypeDescriptor, name string) bool {
	for i := range td.Attributes {
		if td.Attributes[i].Name == name {
			return true
		}
	}
	return false
}
