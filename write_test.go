package mdto_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/guidodo/mdto"
)

func TestWritePreserving_RoundTripsByteIdentical(t *testing.T) {
	h := loadSchema(t)
	for _, path := range []string{
		"testdata/voorbeeld-archiefstuk.xml",
		"testdata/voorbeeld-bestand.xml",
	} {
		t.Run(path, func(t *testing.T) {
			src := readFile(t, path)

			dec, err := mdto.ParseWithMeta(h, "MDTO", src)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			out, err := mdto.WritePreserving(h, dec)
			if err != nil {
				t.Fatalf("write: %v", err)
			}
			if !bytes.Equal(src, out) {
				t.Fatalf("round trip not byte-identical:\n%s", diffText(string(src), string(out)))
			}

			// And a second cycle over the produced bytes.
			dec2, err := mdto.ParseWithMeta(h, "MDTO", out)
			if err != nil {
				t.Fatalf("reparse: %v", err)
			}
			out2, err := mdto.WritePreserving(h, dec2)
			if err != nil {
				t.Fatalf("rewrite: %v", err)
			}
			if !bytes.Equal(out, out2) {
				t.Fatalf("second cycle not byte-identical:\n%s", diffText(string(out), string(out2)))
			}
		})
	}
}

func TestWritePreserving_KeepsPrefixes(t *testing.T) {
	h := loadSchema(t)
	src := `<?xml version="1.0" encoding="UTF-8"?>
<mdto:MDTO xmlns:mdto="https://www.nationaalarchief.nl/mdto">
	<mdto:informatieobject>
		<mdto:identificatie>
			<mdto:identificatieKenmerk>abcd-1234</mdto:identificatieKenmerk>
			<mdto:identificatieBron>Corsa</mdto:identificatieBron>
		</mdto:identificatie>
		<mdto:naam>Notulen</mdto:naam>
		<mdto:waardering>
			<mdto:begripLabel>Vernietigen</mdto:begripLabel>
		</mdto:waardering>
		<mdto:archiefvormer>
			<mdto:verwijzingNaam>Gemeente Voorbeeld</mdto:verwijzingNaam>
		</mdto:archiefvormer>
		<mdto:beperkingGebruik>
			<mdto:beperkingGebruikType>
				<mdto:begripLabel>Openbaar</mdto:begripLabel>
			</mdto:beperkingGebruikType>
		</mdto:beperkingGebruik>
	</mdto:informatieobject>
</mdto:MDTO>
`
	dec, err := mdto.ParseWithMeta(h, "MDTO", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := mdto.WritePreserving(h, dec)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if string(out) != src {
		t.Fatalf("prefixed round trip not byte-identical:\n%s", diffText(src, string(out)))
	}
}

func TestWrite_CanonicalFromBuiltRecord(t *testing.T) {
	h := loadSchema(t)
	rec := mdto.NewRecord("MDTO").AddRecord("informatieobject",
		mdto.NewRecord("informatieobjectType").
			AddRecord("identificatie", mdto.NewRecord("identificatieGegevens").
				AddString("identificatieKenmerk", "abcd-1234").
				AddString("identificatieBron", "Corsa")).
			AddString("naam", "Notulen college 12 april").
			AddRecord("waardering", mdto.NewRecord("begripGegevens").
				AddString("begripLabel", "Vernietigen")).
			AddRecord("archiefvormer", mdto.NewRecord("verwijzingGegevens").
				AddString("verwijzingNaam", "Gemeente Voorbeeld")).
			AddRecord("beperkingGebruik", mdto.NewRecord("beperkingGebruikGegevens").
				AddRecord("beperkingGebruikType", mdto.NewRecord("begripGegevens").
					AddString("begripLabel", "Openbaar"))))

	out, err := mdto.Write(h, "MDTO", rec, mdto.WriteOpt{
		SchemaLocation: "https://www.nationaalarchief.nl/mdto https://www.nationaalarchief.nl/mdto/MDTO-XML1.0.1.xsd",
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if string(out) != minimalArchiefstuk {
		t.Fatalf("canonical output mismatch:\n%s", diffText(minimalArchiefstuk, string(out)))
	}
}

func TestWrite_EmptyLeafElement(t *testing.T) {
	h := loadSchema(t)
	dec, err := mdto.ParseWithMeta(h, "MDTO", []byte(minimalArchiefstuk))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	dec.Record.FirstRecord("informatieobject").AddString("omschrijving", "")
	// omschrijving is out of declared position now; rebuild via canonical order.
	out, err := mdto.Write(h, "MDTO", dec.Record)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(string(out), "\t\t<omschrijving/>\n") {
		t.Fatalf("expected self-closing empty leaf, got:\n%s", out)
	}
}

func TestWrite_RejectsIncompleteRecord(t *testing.T) {
	h := loadSchema(t)
	rec := mdto.NewRecord("MDTO").AddRecord("informatieobject",
		mdto.NewRecord("informatieobjectType").
			AddString("naam", "zonder identificatie"))

	out, err := mdto.Write(h, "MDTO", rec)
	if out != nil {
		t.Fatal("no bytes may be emitted for an incomplete record")
	}
	if !hasIssue(t, err, mdto.CodeIncompleteRecord) {
		t.Fatalf("expected incomplete_record, got %v", err)
	}
}

func TestWrite_RejectsCardinalityViolations(t *testing.T) {
	h := loadSchema(t)

	rec := mdto.NewRecord("MDTO").AddRecord("informatieobject",
		mdto.NewRecord("informatieobjectType").
			AddRecord("identificatie", mdto.NewRecord("identificatieGegevens").
				AddString("identificatieKenmerk", "a").AddString("identificatieBron", "b")).
			AddString("naam", "een").
			AddString("naam", "twee"))
	if _, err := mdto.Write(h, "MDTO", rec); !hasIssue(t, err, mdto.CodeTooMany) {
		t.Fatalf("expected too_many, got %v", err)
	}

	unknown := mdto.NewRecord("MDTO").AddRecord("informatieobject",
		mdto.NewRecord("informatieobjectType").AddString("auteur", "J. Jansen"))
	if _, err := mdto.Write(h, "MDTO", unknown); !hasIssue(t, err, mdto.CodeUnexpectedElement) {
		t.Fatalf("expected unexpected_element, got %v", err)
	}

	twoChoice := mdto.NewRecord("MDTO").
		AddRecord("informatieobject", mdto.NewRecord("informatieobjectType")).
		AddRecord("bestand", mdto.NewRecord("bestandType"))
	if _, err := mdto.Write(h, "MDTO", twoChoice); !hasIssue(t, err, mdto.CodeIncompleteRecord) {
		t.Fatalf("expected incomplete_record for overfull choice, got %v", err)
	}
}

func TestWrite_RejectsInvalidLeafValue(t *testing.T) {
	h := loadSchema(t)
	rec := mdto.NewRecord("MDTO").AddRecord("bestand",
		mdto.NewRecord("bestandType").
			AddRecord("identificatie", mdto.NewRecord("identificatieGegevens").
				AddString("identificatieKenmerk", "a").AddString("identificatieBron", "b")).
			AddString("naam", "x.pdf").
			AddString("omvang", "veel").
			AddRecord("bestandsformaat", mdto.NewRecord("begripGegevens").AddString("begripLabel", "PDF")).
			AddRecord("checksum", mdto.NewRecord("checksumGegevens").
				AddRecord("checksumAlgoritme", mdto.NewRecord("begripGegevens").AddString("begripLabel", "SHA-256")).
				AddString("checksumWaarde", "00").
				AddString("checksumDatum", "2023-09-15T08:30:11")).
			AddRecord("isRepresentatieVan", mdto.NewRecord("verwijzingGegevens").
				AddString("verwijzingNaam", "iets")))

	if _, err := mdto.Write(h, "MDTO", rec); !hasIssue(t, err, mdto.CodeInvalidValue) {
		t.Fatalf("expected invalid_value, got %v", err)
	}
}
