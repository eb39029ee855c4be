package schema

import (
	"os"
	"testing"
)

func loadFixture(t *testing.T) *Lookup {
	t.Helper()
	l, err := Load(os.DirFS("testdata"), "g7validation.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return l
}

func TestSubstructureKnownMember(t *testing.T) {
	l := loadFixture(t)
	uri, ok := l.Substructure("https://gedcom.io/terms/v7/record-INDI", "NAME")
	if !ok || uri != "https://gedcom.io/terms/v7/INDI-NAME" {
		t.Fatalf("unexpected result: %s, %v", uri, ok)
	}
}

func TestSubstructureRecordLevel(t *testing.T) {
	l := loadFixture(t)
	uri, ok := l.Substructure("", "HEAD")
	if !ok || uri != "https://gedcom.io/terms/v7/HEAD" {
		t.Fatalf("unexpected result: %s, %v", uri, ok)
	}
}

func TestSubstructureProhibited(t *testing.T) {
	l := loadFixture(t)
	if _, ok := l.Substructure("https://gedcom.io/terms/v7/record-INDI", "VERS"); ok {
		t.Fatal("expected prohibited failure")
	}
	diags := l.Diagnostics()
	if len(diags) == 0 || diags[0].Code != "ged-prohibited-substructure" {
		t.Fatalf("expected prohibited diagnostic, got %+v", diags)
	}
}

func TestSubstructureUndocumentedExtension(t *testing.T) {
	l := loadFixture(t)
	if _, ok := l.Substructure("https://gedcom.io/terms/v7/record-INDI", "_FOO"); ok {
		t.Fatal("expected undocumented failure")
	}
	diags := l.Diagnostics()
	if len(diags) == 0 || diags[0].Code != "ged-undocumented-extension" {
		t.Fatalf("expected undocumented diagnostic, got %+v", diags)
	}
}

func TestSubstructureRegisteredExtension(t *testing.T) {
	l := loadFixture(t)
	l.AddExtension("_FOO", "https://example.com/foo")
	uri, ok := l.Substructure("https://gedcom.io/terms/v7/record-INDI", "_FOO")
	if !ok || uri != "https://example.com/foo" {
		t.Fatalf("unexpected result: %s, %v", uri, ok)
	}
	diags := l.Diagnostics()
	if len(diags) == 0 || diags[0].Code != "ged-unregistered-extension" {
		t.Fatalf("expected unregistered diagnostic (not undocumented), got %+v", diags)
	}
}

func TestSubstructureAmbiguousExtension(t *testing.T) {
	l := loadFixture(t)
	l.AddExtension("_FOO", "https://example.com/foo")
	l.AddExtension("_FOO", "https://example.com/bar")
	if _, ok := l.Substructure("https://gedcom.io/terms/v7/record-INDI", "_FOO"); ok {
		t.Fatal("expected ambiguous failure")
	}
	diags := l.Diagnostics()
	if len(diags) == 0 || diags[0].Code != "ged-ambiguous-tag" {
		t.Fatalf("expected ambiguous diagnostic, got %+v", diags)
	}
}

func TestSubstructureAliasedExtension(t *testing.T) {
	l := loadFixture(t)
	l.AddExtension("_VERS", "https://gedcom.io/terms/v7/GEDC-VERS")
	uri, ok := l.Substructure("https://gedcom.io/terms/v7/HEAD-GEDC", "_VERS")
	if !ok || uri != "https://gedcom.io/terms/v7/GEDC-VERS" {
		t.Fatalf("unexpected result: %s, %v", uri, ok)
	}
	diags := l.Diagnostics()
	if len(diags) == 0 || diags[0].Code != "ged-aliased-extension" {
		t.Fatalf("expected aliased diagnostic, got %+v", diags)
	}
}

func TestPayloadLookup(t *testing.T) {
	l := loadFixture(t)
	p := l.Payload("https://gedcom.io/terms/v7/SEX")
	if p.Type != "https://gedcom.io/terms/v7/type-Enum" || p.Set == "" {
		t.Fatalf("unexpected payload: %+v", p)
	}
	if l.Payload("https://unknown").Type != "?" {
		t.Fatal("expected '?' sentinel for unknown URI")
	}
}

func TestTagLookup(t *testing.T) {
	l := loadFixture(t)
	if got := l.Tag("https://gedcom.io/terms/v7/SEX", false); got != "SEX" {
		t.Fatalf("got %q", got)
	}
}

func TestCalendarAndMonth(t *testing.T) {
	l := loadFixture(t)
	c, ok := l.Calendar("GREGORIAN")
	if !ok || c.Type != "https://gedcom.io/terms/v7/cal-GREGORIAN" {
		t.Fatalf("unexpected calendar: %+v, %v", c, ok)
	}
	uri, ok := l.Month("GREGORIAN", "JAN")
	if !ok || uri != "https://gedcom.io/terms/v7/month-JAN" {
		t.Fatalf("unexpected month: %s, %v", uri, ok)
	}
}

func TestEnumval(t *testing.T) {
	l := loadFixture(t)
	uri, ok := l.Enumval("https://gedcom.io/terms/v7/enumset-SEX", "M")
	if !ok || uri != "https://gedcom.io/terms/v7/enum-M" {
		t.Fatalf("unexpected result: %s, %v", uri, ok)
	}
}

func TestReqSubstr(t *testing.T) {
	l := loadFixture(t)
	req := l.ReqSubstr("https://gedcom.io/terms/v7/HEAD")
	if len(req) != 1 || req[0] != "https://gedcom.io/terms/v7/HEAD-GEDC" {
		t.Fatalf("unexpected required substructures: %v", req)
	}
}

func TestCalendarResolverAdapter(t *testing.T) {
	l := loadFixture(t)
	if !l.KnownCalendar("GREGORIAN") {
		t.Fatal("expected GREGORIAN known")
	}
	if !l.KnownMonth("GREGORIAN", "JAN") {
		t.Fatal("expected JAN known")
	}
	if epochs := l.Epochs("GREGORIAN"); len(epochs) != 1 || epochs[0] != "BCE" {
		t.Fatalf("unexpected epochs: %v", epochs)
	}
}
