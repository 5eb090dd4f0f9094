package mdto_test

import (
	"testing"

	"github.com/guidodo/mdto"
)

func TestRecord_Accessors(t *testing.T) {
	rec := mdto.NewRecord("informatieobjectType").
		AddString("trefwoord", "vergunning").
		AddString("trefwoord", "bouw").
		AddRecord("identificatie", mdto.NewRecord("identificatieGegevens").
			AddString("identificatieKenmerk", "a"))

	if got := rec.First("trefwoord"); got != "vergunning" {
		t.Fatalf("First: got %q", got)
	}
	if got := rec.Strings("trefwoord"); len(got) != 2 || got[1] != "bouw" {
		t.Fatalf("Strings: got %v", got)
	}
	if rec.FirstRecord("identificatie") == nil {
		t.Fatal("FirstRecord: nil")
	}
	if rec.Get("naam") != nil || rec.First("naam") != "" {
		t.Fatal("absent field must read as zero")
	}

	rec.SetString("naam", "eerste")
	rec.SetString("naam", "tweede")
	if got := rec.Strings("naam"); len(got) != 1 || got[0] != "tweede" {
		t.Fatalf("SetString must replace: got %v", got)
	}
}

func TestRecord_FieldOrderIsInsertionOrder(t *testing.T) {
	rec := mdto.NewRecord("x").AddString("b", "1").AddString("a", "2").AddString("b", "3")
	if len(rec.Fields) != 2 {
		t.Fatalf("fields: %+v", rec.Fields)
	}
	if rec.Fields[0].Name != "b" || rec.Fields[1].Name != "a" {
		t.Fatalf("order: %+v", rec.Fields)
	}
	if len(rec.Fields[0].Values) != 2 {
		t.Fatalf("occurrences must group under one field: %+v", rec.Fields[0])
	}
}

func TestRecord_Equal(t *testing.T) {
	mk := func(omvang string) *mdto.Record {
		return mdto.NewRecord("bestandType").AddString("omvang", omvang)
	}
	if !mk("7").Equal(mk("7")) {
		t.Fatal("identical records must be equal")
	}
	if mk("7").Equal(mk("007")) {
		t.Fatal("strict equality is byte-wise")
	}
	var nilRec *mdto.Record
	if nilRec.Equal(mk("7")) || !nilRec.Equal(nil) {
		t.Fatal("nil handling")
	}
}
