package mdto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/guidodo/mdto/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// load-time codes, fatal for the handle being built
	CodeSchemaLoad           = "schema_load"
	CodeUnsupportedConstruct = "unsupported_construct"

	// schema-lookup
	CodeUnknownElement = "unknown_element"

	// structural codes reported by Parse and ValidateDocument
	CodeMalformedXML        = "malformed_xml"
	CodeRequired            = "required"
	CodeTooMany             = "too_many"
	CodeOutOfOrder          = "out_of_order"
	CodeUnexpectedElement   = "unexpected_element"
	CodeUnexpectedAttribute = "unexpected_attribute"
	CodeUnexpectedText      = "unexpected_text"
	CodeUnknownKey          = "unknown_key"

	// leaf value codes
	CodeInvalidValue = "invalid_value"
	CodeInvalidEnum  = "invalid_enum"

	// serialization
	CodeIncompleteRecord = "incomplete_record"

	// advisory findings from gegevens.Lint; never fatal
	CodeLint = "lint"
)

// Issue represents a single diagnostic entry.
type Issue struct {
	Path    string // Element path (for example: /MDTO/informatieobject/naam).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, expected values, etc.
	Cause   error  // Optional: underlying error.
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. required at /MDTO/informatieobject/naam
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Summary renders the issue as a one-line finding with the code translated
// through the i18n dictionary. The technical Message stays English; Summary
// is for reports shown to archivists.
func (i Issue) Summary() string {
	return i.Path + ": " + i18n.T(i.Code, nil)
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IsLoadError reports whether err carries a load-time code (unreadable or
// unsupported schema source).
func IsLoadError(err error) bool {
	return hasCode(err, CodeSchemaLoad, CodeUnsupportedConstruct)
}

// IsStructural reports whether err carries a structural code: cardinality,
// ordering, or unexpected content violations.
func IsStructural(err error) bool {
	return hasCode(err,
		CodeRequired, CodeTooMany, CodeOutOfOrder,
		CodeUnexpectedElement, CodeUnexpectedAttribute, CodeUnexpectedText,
		CodeUnknownKey)
}

// IsValueError reports whether err carries a leaf value code.
func IsValueError(err error) bool {
	return hasCode(err, CodeInvalidValue, CodeInvalidEnum)
}

func hasCode(err error, codes ...string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		for _, c := range codes {
			if it.Code == c {
				return true
			}
		}
	}
	return false
}

func singleIssue(code, msg string) Issues {
	return Issues{Issue{Path: "/", Code: code, Message: msg}}
}
