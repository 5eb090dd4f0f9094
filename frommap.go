package mdto

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// RecordFromMap builds a record for the named global element from generic
// map data, the shape YAML and JSON decoders produce. Keys are element
// names; values are scalars, nested maps, or lists of either. Fields are
// emitted in declared order regardless of map iteration order, leaves are
// checked lexically, and unknown keys are diagnosed rather than dropped.
func RecordFromMap(h *Schema, root string, m map[string]any) (*Record, error) {
	if h == nil {
		return nil, singleIssue(CodeSchemaLoad, "nil schema handle")
	}
	td, err := h.TypeFor(root)
	if err != nil {
		return nil, err
	}
	b := &mapBuilder{h: h}
	rec := b.build(td, m, "/"+root)
	if len(b.issues) > 0 {
		return nil, b.issues
	}
	return rec, nil
}

type mapBuilder struct {
	h      *Schema
	issues Issues
}

func (b *mapBuilder) build(td *TypeDescriptor, m map[string]any, path string) *Record {
	rec := &Record{Type: td.Name}
	used := map[string]bool{}

	for i := range td.Attributes {
		fd := &td.Attributes[i]
		if v, ok := m[fd.Name]; ok {
			used[fd.Name] = true
			b.leafValues(fd, v, rec, path+"/@"+fd.Name)
		}
	}
	if len(td.Variants) > 0 {
		for i := range td.Variants {
			fd := &td.Variants[i]
			if v, ok := m[fd.Name]; ok {
				used[fd.Name] = true
				b.fieldValues(fd, v, rec, path+"/"+fd.Name)
			}
		}
	} else {
		for i := range td.Fields {
			fd := &td.Fields[i]
			if v, ok := m[fd.Name]; ok {
				used[fd.Name] = true
				b.fieldValues(fd, v, rec, path+"/"+fd.Name)
			}
		}
	}

	// Deterministic diagnostics: report unknown keys in sorted order.
	var unknown []string
	for k := range m {
		if !used[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		b.issues = AppendIssues(b.issues, Issue{Path: path + "/" + k, Code: CodeUnknownKey,
			Message: fmt.Sprintf("key %q not declared in %s", k, td.Name)})
	}
	return rec
}

func (b *mapBuilder) fieldValues(fd *FieldDescriptor, v any, rec *Record, path string) {
	if fd.Leaf() {
		b.leafValues(fd, v, rec, path)
		return
	}
	items := asList(v)
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			b.issues = AppendIssues(b.issues, Issue{Path: itemPath(path, i, len(items)), Code: CodeInvalidValue,
				Message: fmt.Sprintf("field %q needs a mapping, got %T", fd.Name, item)})
			continue
		}
		nested := b.h.types[fd.TypeRef]
		rec.AddRecord(fd.Name, b.build(nested, m, itemPath(path, i, len(items))))
	}
}

func (b *mapBuilder) leafValues(fd *FieldDescriptor, v any, rec *Record, path string) {
	items := asList(v)
	for i, item := range items {
		text, ok := scalarText(item)
		if !ok {
			b.issues = AppendIssues(b.issues, Issue{Path: itemPath(path, i, len(items)), Code: CodeInvalidValue,
				Message: fmt.Sprintf("field %q needs a scalar, got %T", fd.Name, item)})
			continue
		}
		text = fd.Normalize(text)
		if err := fd.CheckText(text); err != nil {
			if iss, isIss := AsIssues(err); isIss {
				for _, it := range iss {
					it.Path = itemPath(path, i, len(items))
					b.issues = AppendIssues(b.issues, it)
				}
			} else {
				b.issues = AppendIssues(b.issues, Issue{Path: itemPath(path, i, len(items)),
					Code: CodeInvalidValue, Message: err.Error(), Cause: err})
			}
			continue
		}
		rec.AddString(fd.Name, text)
	}
}

func asList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return []any{v}
}

// scalarText renders a decoded scalar in its lexical form. JSON numbers
// arrive as float64; integral ones must not pick up an exponent or fraction.
// YAML resolves unquoted ISO timestamps into time.Time, which maps back to
// the date or dateTime lexical space depending on the clock part.
func scalarText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02"), true
		}
		return t.Format("2006-01-02T15:04:05"), true
	case nil:
		return "", true
	default:
		return "", false
	}
}

func itemPath(path string, i, n int) string {
	if n > 1 {
		return fmt.Sprintf("%s[%d]", path, i+1)
	}
	return path
}
