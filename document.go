package mdto

// Binding is one namespace declaration captured at the document root. An
// empty Prefix denotes the default namespace.
type Binding struct {
	Prefix string
	URI    string
}

// Document carries the serialization metadata of a parsed document: the root
// element, the namespace bindings in source order, and the xsi:schemaLocation
// hint when present. Together with a Record it is sufficient to reconstruct
// output equivalent to the input without retaining the original bytes.
type Document struct {
	Root           string
	Bindings       []Binding
	SchemaLocation string
}

// Prefix returns the prefix bound to uri, and whether any binding exists.
func (d Document) Prefix(uri string) (string, bool) {
	for _, b := range d.Bindings {
		if b.URI == uri {
			return b.Prefix, true
		}
	}
	return "", false
}

// Decoded carries the parsed record together with its document metadata,
// enabling prefix-preserving re-serialization via WritePreserving.
type Decoded struct {
	Record *Record
	Doc    Document
}

// XSINamespace is the XML Schema instance namespace (xsi: attributes).
const XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"
