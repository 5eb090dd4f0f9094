package mdto

import (
	"github.com/goccy/go-json"
)

// ValidationResult is the outcome of ValidateDocument. Issues are ordered by
// document position and never truncated; validation always reports every
// problem it can find.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Issues Issues `json:"issues,omitempty"`
}

// JSON renders the result as a stable JSON report suitable for toolchains
// that post-process validation runs.
func (r ValidationResult) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// MarshalJSON projects an Issue without its wrapped cause, which is a Go
// error value and not part of the report surface.
func (i Issue) MarshalJSON() ([]byte, error) {
	type projection struct {
		Path    string `json:"path"`
		Code    string `json:"code"`
		Message string `json:"message"`
		Hint    string `json:"hint,omitempty"`
	}
	return json.Marshal(projection{Path: i.Path, Code: i.Code, Message: i.Message, Hint: i.Hint})
}

// ValidateDocument checks a document against the named root element without
// materializing a record. It never fails fast: the result lists every
// structural and value problem found. The returned error is reserved for
// schema-level failures (unknown root element, nil handle).
func ValidateDocument(h *Schema, root string, data []byte) (ValidationResult, error) {
	if h == nil {
		return ValidationResult{}, singleIssue(CodeSchemaLoad, "nil schema handle")
	}
	if _, err := h.TypeFor(root); err != nil {
		return ValidationResult{}, err
	}
	_, err := ParseWithMeta(h, root, data, ParseOpt{})
	if err == nil {
		return ValidationResult{Valid: true}, nil
	}
	iss, ok := AsIssues(err)
	if !ok {
		return ValidationResult{}, err
	}
	return ValidationResult{Valid: false, Issues: iss}, nil
}
