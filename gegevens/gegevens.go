// Package gegevens is the typed layer over the generic record model: Go
// structs for the MDTO gegevensgroepen and the two root objects
// (Informatieobject and Bestand), with lossless conversion in both
// directions.
//
// The struct field names drop the Dutch element-name prefixes
// (identificatieKenmerk becomes Identificatie.Kenmerk); the element names
// reappear during conversion. Optional scalar-like members are pointers so
// that absence survives a round trip.
package gegevens

import (
	"fmt"

	"github.com/guidodo/mdto"
	"github.com/guidodo/mdto/codec"
)

const (
	// Namespace is the MDTO-XML target namespace.
	Namespace = "https://www.nationaalarchief.nl/mdto"
	// SchemaLocation is the conventional xsi:schemaLocation pair for
	// MDTO-XML 1.0.1 documents.
	SchemaLocation = "https://www.nationaalarchief.nl/mdto https://www.nationaalarchief.nl/mdto/MDTO-XML1.0.1.xsd"
)

// Object is either an Informatieobject or a Bestand: the two alternatives an
// MDTO document can carry under its root. The interface is closed.
type Object interface {
	// Record converts the object to its generic record form.
	Record() *mdto.Record
	// element names the alternative under the MDTO root.
	element() string
}

// Decode parses an MDTO document and returns the typed object it carries.
func Decode(h *mdto.Schema, data []byte, opts ...mdto.ParseOpt) (Object, error) {
	rec, err := mdto.Parse(h, "MDTO", data, opts...)
	if err != nil {
		return nil, err
	}
	if r := rec.FirstRecord("informatieobject"); r != nil {
		obj := InformatieobjectFromRecord(r)
		return &obj, nil
	}
	if r := rec.FirstRecord("bestand"); r != nil {
		obj := BestandFromRecord(r)
		return &obj, nil
	}
	return nil, mdto.Issues{{Path: "/MDTO", Code: mdto.CodeRequired,
		Message: "document carries neither informatieobject nor bestand"}}
}

// Marshal wraps the object in an MDTO root and serializes it canonically,
// with the conventional schemaLocation unless the options override it.
func Marshal(h *mdto.Schema, obj Object, opts ...mdto.WriteOpt) ([]byte, error) {
	var opt mdto.WriteOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.SchemaLocation == "" {
		opt.SchemaLocation = SchemaLocation
	}
	root := mdto.NewRecord("MDTO").AddRecord(obj.element(), obj.Record())
	return mdto.Write(h, "MDTO", root, opt)
}

// Lint reports advisory findings that schema validation does not cover:
// display-hostile names, relative URLs where resolvable ones are expected.
// The returned issues all carry the lint code and never make a document
// invalid.
func Lint(obj Object) mdto.Issues {
	var iss mdto.Issues
	base := "/MDTO/" + obj.element()
	switch o := obj.(type) {
	case *Informatieobject:
		iss = append(iss, lintNaam(base, o.Naam)...)
		for i, r := range o.Raadpleeglocatie {
			for j, u := range r.Online {
				if !codec.IsAbsoluteURL(u) {
					iss = append(iss, mdto.Issue{
						Path: fmt.Sprintf("%s/raadpleeglocatie[%d]/raadpleeglocatieOnline[%d]", base, i+1, j+1),
						Code: mdto.CodeLint, Message: "online raadpleeglocatie is not an absolute URL",
					})
				}
			}
		}
	case *Bestand:
		iss = append(iss, lintNaam(base, o.Naam)...)
		if o.URLBestand != "" && !codec.IsAbsoluteURL(o.URLBestand) {
			iss = append(iss, mdto.Issue{Path: base + "/URLBestand", Code: mdto.CodeLint,
				Message: "URLBestand is not an absolute URL"})
		}
	}
	return iss
}

// maxNaamLength is the display limit archival systems commonly enforce.
const maxNaamLength = 80

func lintNaam(base, naam string) mdto.Issues {
	if len([]rune(naam)) <= maxNaamLength {
		return nil
	}
	return mdto.Issues{{Path: base + "/naam", Code: mdto.CodeLint,
		Message: fmt.Sprintf("naam is %d characters, longer than the conventional maximum of %d",
			len([]rune(naam)), maxNaamLength)}}
}
