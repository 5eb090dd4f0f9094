package mdto_test

import (
	"os"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/guidodo/mdto"
)

func loadSchema(t *testing.T) *mdto.Schema {
	t.Helper()
	h, err := mdto.LoadFile("testdata/MDTO-XML1.0.1.xsd")
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return h
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}

// diffText renders a readable line diff for byte-identity failures.
func diffText(want, got string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(want, got, false)
	return dmp.DiffPrettyText(diffs)
}

// hasIssue reports whether err carries at least one issue with the code.
func hasIssue(t *testing.T, err error, code string) bool {
	t.Helper()
	iss, ok := mdto.AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}
