package gegevens

import "github.com/guidodo/mdto"

// Informatieobject is the typed form of an MDTO informatieobject. Slice and
// pointer members are optional; the remaining members are required by the
// schema. Field order mirrors the declared element order.
type Informatieobject struct {
	Identificatie               []Identificatie
	Naam                        string
	Aggregatieniveau            *Begrip
	Classificatie               []Begrip
	Trefwoord                   []string
	Omschrijving                []string
	Raadpleeglocatie            []Raadpleeglocatie
	DekkingInTijd               []DekkingInTijd
	DekkingInRuimte             []Verwijzing
	Taal                        []string
	Event                       []Event
	Waardering                  Begrip
	Bewaartermijn               *Termijn
	Informatiecategorie         *Begrip
	IsOnderdeelVan              []Verwijzing
	BevatOnderdeel              []Verwijzing
	HeeftRepresentatie          []Verwijzing
	AanvullendeMetagegevens     []Verwijzing
	GerelateerdInformatieobject []GerelateerdInformatieobject
	Archiefvormer               []Verwijzing
	Betrokkene                  []Betrokkene
	Activiteit                  *Verwijzing
	BeperkingGebruik            []BeperkingGebruik
}

func (o *Informatieobject) element() string { return "informatieobject" }

func (o *Informatieobject) Record() *mdto.Record {
	r := mdto.NewRecord("informatieobjectType")
	for _, id := range o.Identificatie {
		r.AddRecord("identificatie", id.Record())
	}
	r.AddString("naam", o.Naam)
	if o.Aggregatieniveau != nil {
		r.AddRecord("aggregatieniveau", o.Aggregatieniveau.Record())
	}
	for _, b := range o.Classificatie {
		r.AddRecord("classificatie", b.Record())
	}
	for _, s := range o.Trefwoord {
		r.AddString("trefwoord", s)
	}
	for _, s := range o.Omschrijving {
		r.AddString("omschrijving", s)
	}
	for _, l := range o.Raadpleeglocatie {
		r.AddRecord("raadpleeglocatie", l.Record())
	}
	for _, d := range o.DekkingInTijd {
		r.AddRecord("dekkingInTijd", d.Record())
	}
	for _, v := range o.DekkingInRuimte {
		r.AddRecord("dekkingInRuimte", v.Record())
	}
	for _, s := range o.Taal {
		r.AddString("taal", s)
	}
	for _, e := range o.Event {
		r.AddRecord("event", e.Record())
	}
	r.AddRecord("waardering", o.Waardering.Record())
	if o.Bewaartermijn != nil {
		r.AddRecord("bewaartermijn", o.Bewaartermijn.Record())
	}
	if o.Informatiecategorie != nil {
		r.AddRecord("informatiecategorie", o.Informatiecategorie.Record())
	}
	for _, v := range o.IsOnderdeelVan {
		r.AddRecord("isOnderdeelVan", v.Record())
	}
	for _, v := range o.BevatOnderdeel {
		r.AddRecord("bevatOnderdeel", v.Record())
	}
	for _, v := range o.HeeftRepresentatie {
		r.AddRecord("heeftRepresentatie", v.Record())
	}
	for _, v := range o.AanvullendeMetagegevens {
		r.AddRecord("aanvullendeMetagegevens", v.Record())
	}
	for _, g := range o.GerelateerdInformatieobject {
		r.AddRecord("gerelateerdInformatieobject", g.Record())
	}
	for _, v := range o.Archiefvormer {
		r.AddRecord("archiefvormer", v.Record())
	}
	for _, b := range o.Betrokkene {
		r.AddRecord("betrokkene", b.Record())
	}
	if o.Activiteit != nil {
		r.AddRecord("activiteit", o.Activiteit.Record())
	}
	for _, b := range o.BeperkingGebruik {
		r.AddRecord("beperkingGebruik", b.Record())
	}
	return r
}

// InformatieobjectFromRecord converts a schema-valid record. Invalid extra
// content is ignored rather than reported; validate before converting.
func InformatieobjectFromRecord(r *mdto.Record) Informatieobject {
	o := Informatieobject{
		Naam:         r.First("naam"),
		Trefwoord:    r.Strings("trefwoord"),
		Omschrijving: r.Strings("omschrijving"),
		Taal:         r.Strings("taal"),
	}
	for _, ir := range r.Records("identificatie") {
		o.Identificatie = append(o.Identificatie, IdentificatieFromRecord(ir))
	}
	if br := r.FirstRecord("aggregatieniveau"); br != nil {
		b := BegripFromRecord(br)
		o.Aggregatieniveau = &b
	}
	for _, br := range r.Records("classificatie") {
		o.Classificatie = append(o.Classificatie, BegripFromRecord(br))
	}
	for _, lr := range r.Records("raadpleeglocatie") {
		o.Raadpleeglocatie = append(o.Raadpleeglocatie, RaadpleeglocatieFromRecord(lr))
	}
	for _, dr := range r.Records("dekkingInTijd") {
		o.DekkingInTijd = append(o.DekkingInTijd, DekkingInTijdFromRecord(dr))
	}
	for _, vr := range r.Records("dekkingInRuimte") {
		o.DekkingInRuimte = append(o.DekkingInRuimte, VerwijzingFromRecord(vr))
	}
	for _, er := range r.Records("event") {
		o.Event = append(o.Event, EventFromRecord(er))
	}
	if br := r.FirstRecord("waardering"); br != nil {
		o.Waardering = BegripFromRecord(br)
	}
	if tr := r.FirstRecord("bewaartermijn"); tr != nil {
		t := TermijnFromRecord(tr)
		o.Bewaartermijn = &t
	}
	if br := r.FirstRecord("informatiecategorie"); br != nil {
		b := BegripFromRecord(br)
		o.Informatiecategorie = &b
	}
	for _, vr := range r.Records("isOnderdeelVan") {
		o.IsOnderdeelVan = append(o.IsOnderdeelVan, VerwijzingFromRecord(vr))
	}
	for _, vr := range r.Records("bevatOnderdeel") {
		o.BevatOnderdeel = append(o.BevatOnderdeel, VerwijzingFromRecord(vr))
	}
	for _, vr := range r.Records("heeftRepresentatie") {
		o.HeeftRepresentatie = append(o.HeeftRepresentatie, VerwijzingFromRecord(vr))
	}
	for _, vr := range r.Records("aanvullendeMetagegevens") {
		o.AanvullendeMetagegevens = append(o.AanvullendeMetagegevens, VerwijzingFromRecord(vr))
	}
	for _, gr := range r.Records("gerelateerdInformatieobject") {
		o.GerelateerdInformatieobject = append(o.GerelateerdInformatieobject, GerelateerdInformatieobjectFromRecord(gr))
	}
	for _, vr := range r.Records("archiefvormer") {
		o.Archiefvormer = append(o.Archiefvormer, VerwijzingFromRecord(vr))
	}
	for _, br := range r.Records("betrokkene") {
		o.Betrokkene = append(o.Betrokkene, BetrokkeneFromRecord(br))
	}
	if vr := r.FirstRecord("activiteit"); vr != nil {
		v := VerwijzingFromRecord(vr)
		o.Activiteit = &v
	}
	for _, br := range r.Records("beperkingGebruik") {
		o.BeperkingGebruik = append(o.BeperkingGebruik, BeperkingGebruikFromRecord(br))
	}
	return o
}
