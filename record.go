package mdto

// Record is an in-memory instance of one schema complex type: an ordered set
// of named fields whose values are scalars, nested Records, or sequences
// thereof. Field order always follows the type's declared order; the
// Serializer relies on that invariant.
type Record struct {
	// Type names the schema complex type this record instantiates.
	Type   string
	Fields []Field
}

// Field holds every occurrence of one element or attribute, in document order.
type Field struct {
	Name   string
	Values []Value
}

// Value is one occurrence of a field: either scalar text (leaf elements and
// attributes, lexical form preserved) or a nested Record.
type Value struct {
	Text   string
	Record *Record
}

// Scalar reports whether the value is leaf text rather than a nested record.
func (v Value) Scalar() bool { return v.Record == nil }

// NewRecord returns an empty record of the named type. Field order is
// established by the order of Set/Add calls; Write emits sequence content
// in declared order regardless, so callers need not sort fields.
func NewRecord(typeName string) *Record {
	return &Record{Type: typeName}
}

// Get returns the named field, or nil when absent.
func (r *Record) Get(name string) *Field {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return &r.Fields[i]
		}
	}
	return nil
}

// First returns the text of the first occurrence of a leaf field, or "".
func (r *Record) First(name string) string {
	f := r.Get(name)
	if f == nil || len(f.Values) == 0 {
		return ""
	}
	return f.Values[0].Text
}

// FirstRecord returns the first nested record of a field, or nil.
func (r *Record) FirstRecord(name string) *Record {
	f := r.Get(name)
	if f == nil || len(f.Values) == 0 {
		return nil
	}
	return f.Values[0].Record
}

// Strings returns the text of every occurrence of a leaf field.
func (r *Record) Strings(name string) []string {
	f := r.Get(name)
	if f == nil {
		return nil
	}
	out := make([]string, 0, len(f.Values))
	for _, v := range f.Values {
		out = append(out, v.Text)
	}
	return out
}

// Records returns every nested record of a field.
func (r *Record) Records(name string) []*Record {
	f := r.Get(name)
	if f == nil {
		return nil
	}
	out := make([]*Record, 0, len(f.Values))
	for _, v := range f.Values {
		if v.Record != nil {
			out = append(out, v.Record)
		}
	}
	return out
}

// AddString appends a scalar occurrence to the named field, creating the
// field at the current end of the record when absent.
func (r *Record) AddString(name, text string) *Record {
	r.field(name).Values = append(r.field(name).Values, Value{Text: text})
	return r
}

// SetString replaces the named field with a single scalar occurrence.
func (r *Record) SetString(name, text string) *Record {
	f := r.field(name)
	f.Values = []Value{{Text: text}}
	return r
}

// AddRecord appends a nested record occurrence to the named field.
func (r *Record) AddRecord(name string, nested *Record) *Record {
	r.field(name).Values = append(r.field(name).Values, Value{Record: nested})
	return r
}

func (r *Record) field(name string) *Field {
	if f := r.Get(name); f != nil {
		return f
	}
	r.Fields = append(r.Fields, Field{Name: name})
	return &r.Fields[len(r.Fields)-1]
}

// Equal reports strict structural equality: same type, same fields in the
// same order, and occurrence-wise identical values with leaf text compared
// byte for byte. For value-space comparison (e.g. "007" versus "7" for an
// integer field) use Schema.EqualRecords.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.Type != o.Type || len(r.Fields) != len(o.Fields) {
		return false
	}
	for i := range r.Fields {
		a, b := r.Fields[i], o.Fields[i]
		if a.Name != b.Name || len(a.Values) != len(b.Values) {
			return false
		}
		for j := range a.Values {
			va, vb := a.Values[j], b.Values[j]
			if va.Scalar() != vb.Scalar() {
				return false
			}
			if va.Scalar() {
				if va.Text != vb.Text {
					return false
				}
			} else if !va.Record.Equal(vb.Record) {
				return false
			}
		}
	}
	return true
}
