package json_test

import (
	"testing"

	"github.com/guidodo/mdto"
	jsonsource "github.com/guidodo/mdto/source/json"
)

const bestandJSON = `{
	"bestand": {
		"identificatie": {"identificatieKenmerk": "b-1", "identificatieBron": "DMS"},
		"naam": "besluit.pdf",
		"omvang": 243768,
		"bestandsformaat": {"begripLabel": "PDF"},
		"checksum": {
			"checksumAlgoritme": {"begripLabel": "SHA-256"},
			"checksumWaarde": "00",
			"checksumDatum": "2023-09-15T08:30:11"
		},
		"isRepresentatieVan": {"verwijzingNaam": "iets"}
	}
}`

func loadSchema(t *testing.T) *mdto.Schema {
	t.Helper()
	h, err := mdto.LoadFile("../../testdata/MDTO-XML1.0.1.xsd")
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return h
}

func TestNewRecord_FromJSON(t *testing.T) {
	h := loadSchema(t)
	rec, err := jsonsource.NewRecord(h, "MDTO", []byte(bestandJSON))
	if err != nil {
		t.Fatalf("intake: %v", err)
	}
	b := rec.FirstRecord("bestand")
	if b == nil {
		t.Fatal("no bestand record")
	}
	if got := b.First("omvang"); got != "243768" {
		t.Fatalf("omvang: got %q", got)
	}
	if _, err := mdto.Write(h, "MDTO", rec); err != nil {
		t.Fatalf("write after intake: %v", err)
	}
}

func TestNewRecord_JSONDiagnostics(t *testing.T) {
	h := loadSchema(t)

	if _, err := jsonsource.NewRecord(h, "MDTO", []byte("{")); err == nil {
		t.Fatal("expected a decode error")
	}

	bad := []byte(`{"bestand": {"naam": "x", "grootte": 1}}`)
	_, err := jsonsource.NewRecord(h, "MDTO", bad)
	if iss, ok := mdto.AsIssues(err); !ok || len(iss) != 1 || iss[0].Code != mdto.CodeUnknownKey {
		t.Fatalf("expected unknown_key, got %v", err)
	}
}
