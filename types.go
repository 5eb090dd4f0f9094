package mdto

// ParseOpt bundles deserialization options.
type ParseOpt struct {
	// FailFast stops at the first issue instead of collecting all diagnostics
	// for the document.
	FailFast bool
	// MaxDepth caps element nesting; 0 means the default limit.
	MaxDepth int
}

// WriteOpt bundles serialization options.
type WriteOpt struct {
	// Indent is the indentation unit. Empty selects the MDTO convention (one
	// tab per nesting level).
	Indent string
	// OmitDeclaration suppresses the leading XML declaration.
	OmitDeclaration bool
	// SchemaLocation, when set, is emitted as xsi:schemaLocation on the root
	// element. WritePreserving prefers the location captured at parse time.
	SchemaLocation string
}

// defaultMaxDepth bounds element nesting during Parse and ValidateDocument.
// MDTO documents are at most a handful of levels deep.
const defaultMaxDepth = 32
