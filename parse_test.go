package mdto_test

import (
	"strings"
	"testing"

	"github.com/guidodo/mdto"
)

const minimalArchiefstuk = `<?xml version="1.0" encoding="UTF-8"?>
<MDTO xmlns="https://www.nationaalarchief.nl/mdto" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:schemaLocation="https://www.nationaalarchief.nl/mdto https://www.nationaalarchief.nl/mdto/MDTO-XML1.0.1.xsd">
	<informatieobject>
		<identificatie>
			<identificatieKenmerk>abcd-1234</identificatieKenmerk>
			<identificatieBron>Corsa</identificatieBron>
		</identificatie>
		<naam>Notulen college 12 april</naam>
		<waardering>
			<begripLabel>Vernietigen</begripLabel>
		</waardering>
		<archiefvormer>
			<verwijzingNaam>Gemeente Voorbeeld</verwijzingNaam>
		</archiefvormer>
		<beperkingGebruik>
			<beperkingGebruikType>
				<begripLabel>Openbaar</begripLabel>
			</beperkingGebruikType>
		</beperkingGebruik>
	</informatieobject>
</MDTO>
`

func TestParse_Archiefstuk(t *testing.T) {
	h := loadSchema(t)
	rec, err := mdto.Parse(h, "MDTO", readFile(t, "testdata/voorbeeld-archiefstuk.xml"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	io := rec.FirstRecord("informatieobject")
	if io == nil {
		t.Fatal("no informatieobject record")
	}
	if got := io.First("naam"); got != "Verlenen omgevingsvergunning Hooigracht 21" {
		t.Fatalf("naam: got %q", got)
	}
	if got := io.FirstRecord("identificatie").First("identificatieKenmerk"); got != "345c-4379" {
		t.Fatalf("identificatieKenmerk: got %q", got)
	}
	if got := io.FirstRecord("waardering").First("begripCode"); got != "B" {
		t.Fatalf("waardering begripCode: got %q", got)
	}
	if got := io.FirstRecord("event").First("eventTijd"); got != "2023-09-14T10:12:05" {
		t.Fatalf("eventTijd lexical form: got %q", got)
	}
	termijn := io.FirstRecord("beperkingGebruik").FirstRecord("beperkingGebruikTermijn")
	if got := termijn.First("termijnLooptijd"); got != "P10Y" {
		t.Fatalf("termijnLooptijd: got %q", got)
	}
}

func TestParse_Bestand(t *testing.T) {
	h := loadSchema(t)
	rec, err := mdto.Parse(h, "MDTO", readFile(t, "testdata/voorbeeld-bestand.xml"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b := rec.FirstRecord("bestand")
	if b == nil {
		t.Fatal("no bestand record")
	}
	if got := b.First("omvang"); got != "243768" {
		t.Fatalf("omvang: got %q", got)
	}
	if got := b.FirstRecord("checksum").First("checksumWaarde"); !strings.HasPrefix(got, "d2c7b0a4") {
		t.Fatalf("checksumWaarde: got %q", got)
	}
}

func TestParseWithMeta_CapturesDocumentMetadata(t *testing.T) {
	h := loadSchema(t)
	dec, err := mdto.ParseWithMeta(h, "MDTO", []byte(minimalArchiefstuk))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if dec.Doc.Root != "MDTO" {
		t.Fatalf("root: got %q", dec.Doc.Root)
	}
	if len(dec.Doc.Bindings) != 2 {
		t.Fatalf("bindings: got %+v", dec.Doc.Bindings)
	}
	if p, ok := dec.Doc.Prefix(h.Namespace()); !ok || p != "" {
		t.Fatalf("schema namespace must be the default binding, got %q ok=%v", p, ok)
	}
	if !strings.HasSuffix(dec.Doc.SchemaLocation, "MDTO-XML1.0.1.xsd") {
		t.Fatalf("schemaLocation: got %q", dec.Doc.SchemaLocation)
	}
}

func TestParse_Errors(t *testing.T) {
	h := loadSchema(t)
	mutate := func(old, new string) []byte {
		return []byte(strings.Replace(minimalArchiefstuk, old, new, 1))
	}
	cases := []struct {
		name string
		doc  []byte
		code string
	}{
		{
			name: "missing required naam",
			doc:  mutate("		<naam>Notulen college 12 april</naam>\n", ""),
			code: mdto.CodeRequired,
		},
		{
			name: "naam twice",
			doc:  mutate("<naam>Notulen college 12 april</naam>", "<naam>a</naam><naam>b</naam>"),
			code: mdto.CodeTooMany,
		},
		{
			name: "naam before identificatie",
			doc: mutate("<identificatie>",
				"<naam>te vroeg</naam><identificatie>"),
			code: mdto.CodeOutOfOrder,
		},
		{
			name: "undeclared element",
			doc:  mutate("<naam>Notulen college 12 april</naam>", "<naam>x</naam><auteur>J. Jansen</auteur>"),
			code: mdto.CodeUnexpectedElement,
		},
		{
			name: "text in element-only content",
			doc:  mutate("<informatieobject>", "<informatieobject>losse tekst"),
			code: mdto.CodeUnexpectedText,
		},
		{
			name: "undeclared attribute",
			doc:  mutate("<naam>", `<naam taal="nl">`),
			code: mdto.CodeUnexpectedAttribute,
		},
		{
			name: "not well-formed",
			doc:  []byte(strings.TrimSuffix(minimalArchiefstuk, "</MDTO>\n")),
			code: mdto.CodeMalformedXML,
		},
		{
			name: "wrong root element",
			doc: []byte(`<?xml version="1.0" encoding="UTF-8"?>
<mdto xmlns="https://www.nationaalarchief.nl/mdto"/>`),
			code: mdto.CodeUnexpectedElement,
		},
		{
			name: "root outside schema namespace",
			doc:  []byte(`<MDTO xmlns="urn:elders"/>`),
			code: mdto.CodeUnexpectedElement,
		},
		{
			name: "empty choice",
			doc: []byte(`<?xml version="1.0" encoding="UTF-8"?>
<MDTO xmlns="https://www.nationaalarchief.nl/mdto"></MDTO>`),
			code: mdto.CodeRequired,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mdto.Parse(h, "MDTO", tc.doc)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !hasIssue(t, err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestParse_InvalidLeafValues(t *testing.T) {
	h := loadSchema(t)
	doc := strings.Replace(string(readFile(t, "testdata/voorbeeld-bestand.xml")),
		"<omvang>243768</omvang>", "<omvang>veel</omvang>", 1)
	doc = strings.Replace(doc,
		"<checksumDatum>2023-09-15T08:30:11</checksumDatum>",
		"<checksumDatum>15-09-2023</checksumDatum>", 1)

	_, err := mdto.Parse(h, "MDTO", []byte(doc))
	iss, ok := mdto.AsIssues(err)
	if !ok {
		t.Fatalf("expected issues, got %v", err)
	}
	if len(iss) != 2 {
		t.Fatalf("expected both value errors collected, got %v", iss)
	}
	for _, it := range iss {
		if it.Code != mdto.CodeInvalidValue {
			t.Fatalf("expected invalid_value, got %+v", it)
		}
	}
	if !mdto.IsValueError(err) {
		t.Fatal("IsValueError must hold")
	}
}

func TestParse_FailFast(t *testing.T) {
	h := loadSchema(t)
	doc := strings.Replace(minimalArchiefstuk, "<naam>Notulen college 12 april</naam>",
		"<naam>a</naam><naam>b</naam><onzin/>", 1)

	_, err := mdto.Parse(h, "MDTO", []byte(doc), mdto.ParseOpt{FailFast: true})
	iss, ok := mdto.AsIssues(err)
	if !ok {
		t.Fatalf("expected issues, got %v", err)
	}
	if len(iss) != 1 {
		t.Fatalf("fail-fast must stop at the first issue, got %d: %v", len(iss), iss)
	}

	_, err = mdto.Parse(h, "MDTO", []byte(doc))
	if iss, _ := mdto.AsIssues(err); len(iss) < 2 {
		t.Fatalf("collect mode must gather all issues, got %v", iss)
	}
}
