package gegevens

import (
	"time"

	"github.com/guidodo/mdto"
	"github.com/guidodo/mdto/codec"
)

// Identificatie is a kenmerk/bron pair (identificatieGegevens).
type Identificatie struct {
	Kenmerk string
	Bron    string
}

func (g Identificatie) Record() *mdto.Record {
	return mdto.NewRecord("identificatieGegevens").
		AddString("identificatieKenmerk", g.Kenmerk).
		AddString("identificatieBron", g.Bron)
}

func IdentificatieFromRecord(r *mdto.Record) Identificatie {
	return Identificatie{
		Kenmerk: r.First("identificatieKenmerk"),
		Bron:    r.First("identificatieBron"),
	}
}

// Verwijzing points at another object by name, optionally pinned down with
// an identificatie (verwijzingGegevens).
type Verwijzing struct {
	Naam          string
	Identificatie *Identificatie
}

func (g Verwijzing) Record() *mdto.Record {
	r := mdto.NewRecord("verwijzingGegevens").AddString("verwijzingNaam", g.Naam)
	if g.Identificatie != nil {
		r.AddRecord("verwijzingIdentificatie", g.Identificatie.Record())
	}
	return r
}

func VerwijzingFromRecord(r *mdto.Record) Verwijzing {
	g := Verwijzing{Naam: r.First("verwijzingNaam")}
	if ir := r.FirstRecord("verwijzingIdentificatie"); ir != nil {
		id := IdentificatieFromRecord(ir)
		g.Identificatie = &id
	}
	return g
}

// Begrip is a term from a begrippenlijst (begripGegevens).
type Begrip struct {
	Label          string
	Code           string
	Begrippenlijst *Verwijzing
}

func (g Begrip) Record() *mdto.Record {
	r := mdto.NewRecord("begripGegevens").AddString("begripLabel", g.Label)
	if g.Code != "" {
		r.AddString("begripCode", g.Code)
	}
	if g.Begrippenlijst != nil {
		r.AddRecord("begripBegrippenlijst", g.Begrippenlijst.Record())
	}
	return r
}

func BegripFromRecord(r *mdto.Record) Begrip {
	g := Begrip{Label: r.First("begripLabel"), Code: r.First("begripCode")}
	if vr := r.FirstRecord("begripBegrippenlijst"); vr != nil {
		v := VerwijzingFromRecord(vr)
		g.Begrippenlijst = &v
	}
	return g
}

// Termijn describes a retention or restriction term (termijnGegevens).
type Termijn struct {
	TriggerStartLooptijd *Begrip
	StartdatumLooptijd   *codec.Datum
	Looptijd             *codec.Duration
	Einddatum            *codec.Datum
}

func (g Termijn) Record() *mdto.Record {
	r := mdto.NewRecord("termijnGegevens")
	if g.TriggerStartLooptijd != nil {
		r.AddRecord("termijnTriggerStartLooptijd", g.TriggerStartLooptijd.Record())
	}
	if g.StartdatumLooptijd != nil {
		r.AddString("termijnStartdatumLooptijd", g.StartdatumLooptijd.String())
	}
	if g.Looptijd != nil {
		r.AddString("termijnLooptijd", g.Looptijd.String())
	}
	if g.Einddatum != nil {
		r.AddString("termijnEinddatum", g.Einddatum.String())
	}
	return r
}

func TermijnFromRecord(r *mdto.Record) Termijn {
	var g Termijn
	if br := r.FirstRecord("termijnTriggerStartLooptijd"); br != nil {
		b := BegripFromRecord(br)
		g.TriggerStartLooptijd = &b
	}
	g.StartdatumLooptijd = datumOf(r.First("termijnStartdatumLooptijd"))
	if s := r.First("termijnLooptijd"); s != "" {
		if d, err := codec.ParseDuration(s); err == nil {
			g.Looptijd = &d
		}
	}
	g.Einddatum = datumOf(r.First("termijnEinddatum"))
	return g
}

// Checksum fixes a bestand's content at a point in time (checksumGegevens).
type Checksum struct {
	Algoritme Begrip
	Waarde    string
	Datum     time.Time
}

// checksumDatumLayout is the xs:dateTime form MDTO documents use for
// checksumDatum, without timezone.
const checksumDatumLayout = "2006-01-02T15:04:05"

func (g Checksum) Record() *mdto.Record {
	return mdto.NewRecord("checksumGegevens").
		AddRecord("checksumAlgoritme", g.Algoritme.Record()).
		AddString("checksumWaarde", g.Waarde).
		AddString("checksumDatum", g.Datum.Format(checksumDatumLayout))
}

func ChecksumFromRecord(r *mdto.Record) Checksum {
	g := Checksum{Waarde: r.First("checksumWaarde")}
	if br := r.FirstRecord("checksumAlgoritme"); br != nil {
		g.Algoritme = BegripFromRecord(br)
	}
	if d, err := codec.ParseDateTime(r.First("checksumDatum")); err == nil {
		g.Datum = d.Time
	}
	return g
}

// BeperkingGebruik restricts how an informatieobject may be used
// (beperkingGebruikGegevens).
type BeperkingGebruik struct {
	Type               Begrip
	NadereBeschrijving string
	Documentatie       []Verwijzing
	Termijn            *Termijn
}

func (g BeperkingGebruik) Record() *mdto.Record {
	r := mdto.NewRecord("beperkingGebruikGegevens").
		AddRecord("beperkingGebruikType", g.Type.Record())
	if g.NadereBeschrijving != "" {
		r.AddString("beperkingGebruikNadereBeschrijving", g.NadereBeschrijving)
	}
	for _, v := range g.Documentatie {
		r.AddRecord("beperkingGebruikDocumentatie", v.Record())
	}
	if g.Termijn != nil {
		r.AddRecord("beperkingGebruikTermijn", g.Termijn.Record())
	}
	return r
}

func BeperkingGebruikFromRecord(r *mdto.Record) BeperkingGebruik {
	g := BeperkingGebruik{NadereBeschrijving: r.First("beperkingGebruikNadereBeschrijving")}
	if br := r.FirstRecord("beperkingGebruikType"); br != nil {
		g.Type = BegripFromRecord(br)
	}
	for _, vr := range r.Records("beperkingGebruikDocumentatie") {
		g.Documentatie = append(g.Documentatie, VerwijzingFromRecord(vr))
	}
	if tr := r.FirstRecord("beperkingGebruikTermijn"); tr != nil {
		t := TermijnFromRecord(tr)
		g.Termijn = &t
	}
	return g
}

// DekkingInTijd is a typed period (dekkingInTijdGegevens).
type DekkingInTijd struct {
	Type       Begrip
	Begindatum codec.Datum
	Einddatum  *codec.Datum
}

func (g DekkingInTijd) Record() *mdto.Record {
	r := mdto.NewRecord("dekkingInTijdGegevens").
		AddRecord("dekkingInTijdType", g.Type.Record()).
		AddString("dekkingInTijdBegindatum", g.Begindatum.String())
	if g.Einddatum != nil {
		r.AddString("dekkingInTijdEinddatum", g.Einddatum.String())
	}
	return r
}

func DekkingInTijdFromRecord(r *mdto.Record) DekkingInTijd {
	var g DekkingInTijd
	if br := r.FirstRecord("dekkingInTijdType"); br != nil {
		g.Type = BegripFromRecord(br)
	}
	if d := datumOf(r.First("dekkingInTijdBegindatum")); d != nil {
		g.Begindatum = *d
	}
	g.Einddatum = datumOf(r.First("dekkingInTijdEinddatum"))
	return g
}

// Event is one lifecycle event of an informatieobject (eventGegevens).
type Event struct {
	Type                   Begrip
	Tijd                   *codec.Datum
	VerantwoordelijkeActor *Verwijzing
	Resultaat              string
}

func (g Event) Record() *mdto.Record {
	r := mdto.NewRecord("eventGegevens").AddRecord("eventType", g.Type.Record())
	if g.Tijd != nil {
		r.AddString("eventTijd", g.Tijd.String())
	}
	if g.VerantwoordelijkeActor != nil {
		r.AddRecord("eventVerantwoordelijkeActor", g.VerantwoordelijkeActor.Record())
	}
	if g.Resultaat != "" {
		r.AddString("eventResultaat", g.Resultaat)
	}
	return r
}

func EventFromRecord(r *mdto.Record) Event {
	g := Event{Resultaat: r.First("eventResultaat")}
	if br := r.FirstRecord("eventType"); br != nil {
		g.Type = BegripFromRecord(br)
	}
	g.Tijd = datumOf(r.First("eventTijd"))
	if vr := r.FirstRecord("eventVerantwoordelijkeActor"); vr != nil {
		v := VerwijzingFromRecord(vr)
		g.VerantwoordelijkeActor = &v
	}
	return g
}

// Raadpleeglocatie lists where an informatieobject can be consulted
// (raadpleeglocatieGegevens).
type Raadpleeglocatie struct {
	Fysiek []Verwijzing
	Online []string
}

func (g Raadpleeglocatie) Record() *mdto.Record {
	r := mdto.NewRecord("raadpleeglocatieGegevens")
	for _, v := range g.Fysiek {
		r.AddRecord("raadpleeglocatieFysiek", v.Record())
	}
	for _, u := range g.Online {
		r.AddString("raadpleeglocatieOnline", u)
	}
	return r
}

func RaadpleeglocatieFromRecord(r *mdto.Record) Raadpleeglocatie {
	var g Raadpleeglocatie
	for _, vr := range r.Records("raadpleeglocatieFysiek") {
		g.Fysiek = append(g.Fysiek, VerwijzingFromRecord(vr))
	}
	g.Online = r.Strings("raadpleeglocatieOnline")
	return g
}

// GerelateerdInformatieobject relates an informatieobject to another one
// (gerelateerdInformatieobjectGegevens).
type GerelateerdInformatieobject struct {
	Verwijzing  Verwijzing
	TypeRelatie Begrip
}

func (g GerelateerdInformatieobject) Record() *mdto.Record {
	return mdto.NewRecord("gerelateerdInformatieobjectGegevens").
		AddRecord("gerelateerdInformatieobjectVerwijzing", g.Verwijzing.Record()).
		AddRecord("gerelateerdInformatieobjectTypeRelatie", g.TypeRelatie.Record())
}

func GerelateerdInformatieobjectFromRecord(r *mdto.Record) GerelateerdInformatieobject {
	var g GerelateerdInformatieobject
	if vr := r.FirstRecord("gerelateerdInformatieobjectVerwijzing"); vr != nil {
		g.Verwijzing = VerwijzingFromRecord(vr)
	}
	if br := r.FirstRecord("gerelateerdInformatieobjectTypeRelatie"); br != nil {
		g.TypeRelatie = BegripFromRecord(br)
	}
	return g
}

// Betrokkene ties an actor to an informatieobject by relation type
// (betrokkeneGegevens).
type Betrokkene struct {
	TypeRelatie Begrip
	Actor       Verwijzing
}

func (g Betrokkene) Record() *mdto.Record {
	return mdto.NewRecord("betrokkeneGegevens").
		AddRecord("betrokkeneTypeRelatie", g.TypeRelatie.Record()).
		AddRecord("betrokkeneActor", g.Actor.Record())
}

func BetrokkeneFromRecord(r *mdto.Record) Betrokkene {
	var g Betrokkene
	if br := r.FirstRecord("betrokkeneTypeRelatie"); br != nil {
		g.TypeRelatie = BegripFromRecord(br)
	}
	if vr := r.FirstRecord("betrokkeneActor"); vr != nil {
		g.Actor = VerwijzingFromRecord(vr)
	}
	return g
}

func datumOf(s string) *codec.Datum {
	if s == "" {
		return nil
	}
	d, err := codec.ParseDatum(s)
	if err != nil {
		return nil
	}
	return &d
}
