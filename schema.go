package mdto

import (
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Schema is a compiled, immutable handle over one schema source: its global
// elements and every complex type reachable from them mapped to ordered
// TypeDescriptors. A handle is safe for concurrent use; all state is read-only
// after Load.
type Schema struct {
	targetNS string
	roots    map[string]string // global element name -> complex type name
	types    map[string]*TypeDescriptor
}

// Handles are cached process-wide by content digest: loading the same source
// twice returns the same *Schema without re-compilation, while a different
// source always yields an independent handle.
var (
	handleMu    sync.Mutex
	handleCache = map[[sha256.Size]byte]*Schema{}
)

// Load loads and compiles a schema from the given filesystem and location.
func Load(fsys fs.FS, location string) (*Schema, error) {
	if fsys == nil {
		return nil, singleIssue(CodeSchemaLoad, "nil fs")
	}
	data, err := fs.ReadFile(fsys, location)
	if err != nil {
		return nil, Issues{Issue{Path: "/", Code: CodeSchemaLoad,
			Message: fmt.Sprintf("read schema %s", location), Cause: err}}
	}
	return LoadBytes(data)
}

// LoadFile loads and compiles a schema from a file path.
func LoadFile(path string) (*Schema, error) {
	return Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// LoadBytes compiles a schema from an in-memory source.
func LoadBytes(data []byte) (*Schema, error) {
	key := sha256.Sum256(data)

	handleMu.Lock()
	if h, ok := handleCache[key]; ok {
		handleMu.Unlock()
		return h, nil
	}
	handleMu.Unlock()

	h, err := compileSchema(data)
	if err != nil {
		return nil, err
	}

	handleMu.Lock()
	// Another goroutine may have compiled the same source concurrently; keep
	// the first handle so callers always share one.
	if prev, ok := handleCache[key]; ok {
		h = prev
	} else {
		handleCache[key] = h
	}
	handleMu.Unlock()
	return h, nil
}

// Namespace returns the schema's target namespace.
func (h *Schema) Namespace() string { return h.targetNS }

// TypeFor returns the descriptor of the complex type declared for a global
// element.
func (h *Schema) TypeFor(elementName string) (*TypeDescriptor, error) {
	typeName, ok := h.roots[elementName]
	if !ok {
		return nil, Issues{Issue{Path: "/" + elementName, Code: CodeUnknownElement,
			Message: fmt.Sprintf("no global element %q in schema", elementName)}}
	}
	return h.types[typeName], nil
}

// Type returns the descriptor of a named complex type, or nil.
func (h *Schema) Type(name string) *TypeDescriptor { return h.types[name] }

// RootElements returns the names of the schema's global elements, sorted.
func (h *Schema) RootElements() []string {
	out := make([]string, 0, len(h.roots))
	for name := range h.roots {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// EqualRecords compares two records by value: field-wise per the type model,
// with leaf text compared in the value space of its declared kind rather than
// byte for byte.
func (h *Schema) EqualRecords(a, b *Record) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	td := h.types[a.Type]
	if td == nil {
		return a.Equal(b)
	}
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		fa, fb := a.Fields[i], b.Fields[i]
		if fa.Name != fb.Name || len(fa.Values) != len(fb.Values) {
			return false
		}
		kind := ValueString
		if fd := h.fieldDescriptor(td, fa.Name); fd != nil {
			kind = fd.Value
		}
		for j := range fa.Values {
			va, vb := fa.Values[j], fb.Values[j]
			if va.Scalar() != vb.Scalar() {
				return false
			}
			if va.Scalar() {
				if !equalLexical(kind, va.Text, vb.Text) {
					return false
				}
			} else if !h.EqualRecords(va.Record, vb.Record) {
				return false
			}
		}
	}
	return true
}

func (h *Schema) fieldDescriptor(td *TypeDescriptor, name string) *FieldDescriptor {
	if fd, _ := td.Field(name); fd != nil {
		return fd
	}
	if fd := td.Variant(name); fd != nil {
		return fd
	}
	for i := range td.Attributes {
		if td.Attributes[i].Name == name {
			return &td.Attributes[i]
		}
	}
	return nil
}
