package gegevens

import (
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/guidodo/mdto"
	"github.com/guidodo/mdto/codec"
	"github.com/guidodo/mdto/pronom"
)

// Bestand is the typed form of an MDTO bestand: one digital file that is a
// representation of an informatieobject.
type Bestand struct {
	Identificatie      []Identificatie
	Naam               string
	Omvang             int64
	Bestandsformaat    Begrip
	Checksum           []Checksum
	URLBestand         string
	IsRepresentatieVan Verwijzing
}

func (o *Bestand) element() string { return "bestand" }

func (o *Bestand) Record() *mdto.Record {
	r := mdto.NewRecord("bestandType")
	for _, id := range o.Identificatie {
		r.AddRecord("identificatie", id.Record())
	}
	r.AddString("naam", o.Naam)
	r.AddString("omvang", codec.FormatNonNegativeInteger(uint64(o.Omvang)))
	r.AddRecord("bestandsformaat", o.Bestandsformaat.Record())
	for _, c := range o.Checksum {
		r.AddRecord("checksum", c.Record())
	}
	if o.URLBestand != "" {
		r.AddString("URLBestand", o.URLBestand)
	}
	r.AddRecord("isRepresentatieVan", o.IsRepresentatieVan.Record())
	return r
}

// BestandFromRecord converts a schema-valid record; see
// InformatieobjectFromRecord for the validity contract.
func BestandFromRecord(r *mdto.Record) Bestand {
	o := Bestand{
		Naam:       r.First("naam"),
		URLBestand: r.First("URLBestand"),
	}
	for _, ir := range r.Records("identificatie") {
		o.Identificatie = append(o.Identificatie, IdentificatieFromRecord(ir))
	}
	if n, err := codec.ParseNonNegativeInteger(r.First("omvang")); err == nil {
		o.Omvang = int64(n)
	}
	if br := r.FirstRecord("bestandsformaat"); br != nil {
		o.Bestandsformaat = BegripFromRecord(br)
	}
	for _, cr := range r.Records("checksum") {
		o.Checksum = append(o.Checksum, ChecksumFromRecord(cr))
	}
	if vr := r.FirstRecord("isRepresentatieVan"); vr != nil {
		o.IsRepresentatieVan = VerwijzingFromRecord(vr)
	}
	return o
}

// checksumBegrippenlijst names the MDTO value list the algorithm labels
// come from.
var checksumBegrippenlijst = Verwijzing{Naam: "Begrippenlijst ChecksumAlgoritme MDTO"}

// ChecksumFromFile digests the file with the named algorithm ("SHA-256" or
// "SHA-512") and stamps the result with the current time.
func ChecksumFromFile(path, algoritme string) (Checksum, error) {
	var h hash.Hash
	switch algoritme {
	case "SHA-256":
		h = sha256.New()
	case "SHA-512":
		h = sha512.New()
	default:
		return Checksum{}, fmt.Errorf("unsupported checksum algorithm %q", algoritme)
	}
	f, err := os.Open(path)
	if err != nil {
		return Checksum{}, err
	}
	defer f.Close()
	if _, err := io.Copy(h, f); err != nil {
		return Checksum{}, err
	}
	lijst := checksumBegrippenlijst
	return Checksum{
		Algoritme: Begrip{Label: algoritme, Begrippenlijst: &lijst},
		Waarde:    hex.EncodeToString(h.Sum(nil)),
		Datum:     time.Now(),
	}, nil
}

// BestandFromFile derives a Bestand from a file on disk: name and size from
// the filesystem, a SHA-256 checksum, and the bestandsformaat from PRONOM
// signature detection. The identificatie and the verwijzing to the
// represented informatieobject are the caller's to supply.
func BestandFromFile(ctx context.Context, path string, ident Identificatie, isRepresentatieVan Verwijzing) (Bestand, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Bestand{}, err
	}
	sum, err := ChecksumFromFile(path, "SHA-256")
	if err != nil {
		return Bestand{}, err
	}
	det, err := pronom.Detect(ctx, path)
	if err != nil {
		return Bestand{}, fmt.Errorf("bestandsformaat detection: %w", err)
	}
	return Bestand{
		Identificatie: []Identificatie{ident},
		Naam:          filepath.Base(path),
		Omvang:        fi.Size(),
		Bestandsformaat: Begrip{
			Label: det.Format.Name,
			Begrippenlijst: &Verwijzing{
				Naam: "PRONOM-register",
				Identificatie: &Identificatie{
					Kenmerk: det.Format.PUID,
					Bron:    "https://www.nationalarchives.gov.uk/PRONOM",
				},
			},
		},
		Checksum:           []Checksum{sum},
		IsRepresentatieVan: isRepresentatieVan,
	}, nil
}

// DetectVerwijzing reads an MDTO document and returns a verwijzing to the
// object it carries: the object's naam plus its first identificatie. Used to
// fill isRepresentatieVan from the informatieobject file a bestand
// represents.
func DetectVerwijzing(h *mdto.Schema, data []byte) (Verwijzing, error) {
	obj, err := Decode(h, data)
	if err != nil {
		return Verwijzing{}, err
	}
	switch o := obj.(type) {
	case *Informatieobject:
		v := Verwijzing{Naam: o.Naam}
		if len(o.Identificatie) > 0 {
			id := o.Identificatie[0]
			v.Identificatie = &id
		}
		return v, nil
	case *Bestand:
		v := Verwijzing{Naam: o.Naam}
		if len(o.Identificatie) > 0 {
			id := o.Identificatie[0]
			v.Identificatie = &id
		}
		return v, nil
	}
	return Verwijzing{}, fmt.Errorf("document carries no referable object")
}
