package mdto

import (
	"fmt"
	"strings"

	"github.com/guidodo/mdto/codec"
)

// Unbounded marks a field without an upper occurrence limit.
const Unbounded = -1

// Occurs carries the declared cardinality of a field.
type Occurs struct {
	Min int
	Max int // Unbounded when no upper limit is declared.
}

// Contains reports whether n occurrences satisfy the declared cardinality.
func (o Occurs) Contains(n int) bool {
	if n < o.Min {
		return false
	}
	return o.Max == Unbounded || n <= o.Max
}

func (o Occurs) String() string {
	if o.Max == Unbounded {
		return fmt.Sprintf("%d..*", o.Min)
	}
	return fmt.Sprintf("%d..%d", o.Min, o.Max)
}

// FieldKind distinguishes element fields from attribute fields.
type FieldKind int

const (
	ElementField FieldKind = iota
	AttributeField
)

// ValueKind enumerates the leaf value spaces the model supports. Each kind
// pairs a lexical parser with a formatter in the codec package.
type ValueKind int

const (
	ValueNone ValueKind = iota // not a leaf; field nests a complex type
	ValueString
	ValueURI
	ValueDate
	ValueDateTime
	ValueGYear
	ValueGYearMonth
	ValueDatum // union of gYear | gYearMonth | date | dateTime
	ValueDuration
	ValueNonNegativeInteger
)

func (k ValueKind) String() string {
	switch k {
	case ValueNone:
		return "nested"
	case ValueString:
		return "string"
	case ValueURI:
		return "anyURI"
	case ValueDate:
		return "date"
	case ValueDateTime:
		return "dateTime"
	case ValueGYear:
		return "gYear"
	case ValueGYearMonth:
		return "gYearMonth"
	case ValueDatum:
		return "datum"
	case ValueDuration:
		return "duration"
	case ValueNonNegativeInteger:
		return "nonNegativeInteger"
	default:
		return "unknown"
	}
}

// FieldDescriptor describes one ordered field of a complex type: a child
// element or an attribute, its cardinality, and either a leaf value kind or a
// reference to a nested complex type.
type FieldDescriptor struct {
	Name   string    // local name in the schema target namespace
	Kind   FieldKind // element or attribute
	Occurs Occurs
	Value  ValueKind // leaf value space; ValueNone when TypeRef is set
	Enum   []string  // closed lexical value set; empty when unconstrained
	// TypeRef names the nested complex type. Empty for leaf fields.
	TypeRef string
}

// Leaf reports whether the field holds scalar text rather than a nested record.
func (f FieldDescriptor) Leaf() bool { return f.TypeRef == "" }

// CheckText validates a lexical value against the field's value kind and
// enumeration. Used by the Deserializer, the Validator, and intake drivers.
func (f FieldDescriptor) CheckText(s string) error {
	if !f.Leaf() {
		return singleIssue(CodeInvalidValue, fmt.Sprintf("field %s nests type %s and has no text value", f.Name, f.TypeRef))
	}
	if err := checkLexical(f.Value, s); err != nil {
		return Issues{Issue{Path: "/", Code: CodeInvalidValue,
			Message: fmt.Sprintf("invalid %s value %q", f.Value, s), Cause: err}}
	}
	if len(f.Enum) > 0 {
		for _, allowed := range f.Enum {
			if s == allowed {
				return nil
			}
		}
		return Issues{Issue{Path: "/", Code: CodeInvalidEnum,
			Message: fmt.Sprintf("value %q not in enumeration", s),
			Hint:    "allowed: " + strings.Join(f.Enum, ", ")}}
	}
	return nil
}

// Normalize returns the lexical value with schema-insignificant whitespace
// removed: xs:string keeps text verbatim, every other builtin collapses
// surrounding whitespace.
func (f FieldDescriptor) Normalize(s string) string {
	if f.Value == ValueString {
		return s
	}
	return strings.TrimSpace(s)
}

// TypeDescriptor enumerates the ordered fields of one schema complex type.
// Exactly one of Fields (sequence content) or Variants (choice content) is
// populated for element content; Attributes is independent of both.
type TypeDescriptor struct {
	Name       string
	Fields     []FieldDescriptor // xs:sequence particles, declared order
	Variants   []FieldDescriptor // xs:choice alternatives, a closed set
	Choice     Occurs            // cardinality of the choice group itself
	Attributes []FieldDescriptor
}

// Field returns the named element field and its position, or nil.
func (t *TypeDescriptor) Field(name string) (*FieldDescriptor, int) {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i], i
		}
	}
	return nil, -1
}

// Variant returns the named choice alternative, or nil.
func (t *TypeDescriptor) Variant(name string) *FieldDescriptor {
	for i := range t.Variants {
		if t.Variants[i].Name == name {
			return &t.Variants[i]
		}
	}
	return nil
}

// checkLexical dispatches to the codec parsers; a nil error means the text is
// a member of the kind's lexical space.
func checkLexical(k ValueKind, s string) error {
	switch k {
	case ValueString:
		return nil
	case ValueURI:
		return codec.CheckAnyURI(s)
	case ValueDate:
		_, err := codec.ParseDate(s)
		return err
	case ValueDateTime:
		_, err := codec.ParseDateTime(s)
		return err
	case ValueGYear:
		_, err := codec.ParseGYear(s)
		return err
	case ValueGYearMonth:
		_, err := codec.ParseGYearMonth(s)
		return err
	case ValueDatum:
		_, err := codec.ParseDatum(s)
		return err
	case ValueDuration:
		_, err := codec.ParseDuration(s)
		return err
	case ValueNonNegativeInteger:
		_, err := codec.ParseNonNegativeInteger(s)
		return err
	default:
		return fmt.Errorf("no parser for value kind %d", int(k))
	}
}

// equalLexical compares two lexical values by parsed value for the given kind.
func equalLexical(k ValueKind, a, b string) bool {
	if a == b {
		return true
	}
	switch k {
	case ValueString:
		return a == b
	case ValueNonNegativeInteger:
		x, errX := codec.ParseNonNegativeInteger(a)
		y, errY := codec.ParseNonNegativeInteger(b)
		return errX == nil && errY == nil && x == y
	case ValueDate, ValueDateTime, ValueGYear, ValueGYearMonth, ValueDatum:
		x, errX := codec.ParseDatum(a)
		y, errY := codec.ParseDatum(b)
		return errX == nil && errY == nil && x.Equal(y)
	default:
		return a == b
	}
}
