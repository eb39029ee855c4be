package tagtree

import (
	"strings"
	"testing"

	"github.com/jacoelho/gedcom/dialect"
)

func TestParseMinimumDataset(t *testing.T) {
	f, diags, err := Parse("0 HEAD\n1 GEDC\n2 VERS 7.0\n0 TRLR\n", dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	roots := f.Roots()
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots (HEAD, TRLR), got %d", len(roots))
	}
	vers := f.SelectFirst(".HEAD.GEDC.VERS")
	if vers == nil {
		t.Fatalf("expected to find HEAD.GEDC.VERS")
	}
	text, ok := vers.StringPayload()
	if !ok || text != "7.0" {
		t.Fatalf("expected VERS payload 7.0, got %q ok=%v", text, ok)
	}
}

func TestParseStripsLeadingBOM(t *testing.T) {
	f, diags, err := Parse("\ufeff0 HEAD\n1 GEDC\n2 VERS 7.0\n0 TRLR\n", dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diags.HasErrors() {
		t.Fatalf("expected no diagnostics for a BOM-prefixed document, got: %v", diags)
	}
	if vers := f.SelectFirst(".HEAD.GEDC.VERS"); vers == nil {
		t.Fatal("expected to find HEAD.GEDC.VERS despite the leading BOM")
	}
}

func TestParseVoidPointer(t *testing.T) {
	f, diags, err := Parse("0 @F1@ FAM\n1 HUSB @VOID@\n0 TRLR\n", dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	husb := f.SelectFirst(".FAM.HUSB")
	if husb == nil || !husb.IsVoidPointer() {
		t.Fatalf("expected void pointer, got %+v", husb)
	}
}

func TestParseUnresolvedPointerReportsError(t *testing.T) {
	f, diags, err := Parse("0 @F1@ FAM\n1 HUSB @X9@\n0 TRLR\n", dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	husb := f.SelectFirst(".FAM.HUSB")
	if husb == nil || !husb.IsVoidPointer() {
		t.Fatalf("expected unresolved pointer to normalize to void, got %+v", husb)
	}
	found := false
	for _, d := range diags {
		if strings.Contains(d.Message, "pointer to undefined xref_id @X9@") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unresolved pointer diagnostic, got %v", diags)
	}
}

func TestCONTAppendsNewline(t *testing.T) {
	f, _, err := Parse("0 @I1@ INDI\n1 NOTE line one\n2 CONT line two\n0 TRLR\n", dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	note := f.SelectFirst(".INDI.NOTE")
	text, _ := note.StringPayload()
	if text != "line one\nline two" {
		t.Fatalf("unexpected CONT result: %q", text)
	}
}

func TestCONCAppendsDirectly(t *testing.T) {
	f, _, err := Parse("0 @I1@ INDI\n1 NOTE abc\n2 CONC def\n0 TRLR\n", dialect.GEDCOM5())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	note := f.SelectFirst(".INDI.NOTE")
	text, _ := note.StringPayload()
	if text != "abcdef" {
		t.Fatalf("unexpected CONC result: %q", text)
	}
}

func TestCONCForbiddenInV7(t *testing.T) {
	_, diags, err := Parse("0 @I1@ INDI\n1 NOTE abc\n2 CONC def\n0 TRLR\n", dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !diags.HasErrors() {
		t.Fatalf("expected CONC-forbidden error under v7")
	}
}

func TestLevelSkipReportsErrorAndSkipsLine(t *testing.T) {
	_, diags, err := Parse("0 HEAD\n2 GEDC\n0 TRLR\n", dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !diags.HasErrors() {
		t.Fatalf("expected level-skip error")
	}
}

func TestEscapeDecoding(t *testing.T) {
	f, _, err := Parse("0 @I1@ INDI\n1 NOTE @@#text\n0 TRLR\n", dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	note := f.SelectFirst(".INDI.NOTE")
	text, _ := note.StringPayload()
	if text != "@#text" {
		t.Fatalf("expected decoded @#text, got %q", text)
	}
}

func TestEmptyInputIsFatal(t *testing.T) {
	_, _, err := Parse("", dialect.GEDCOM7())
	if err == nil {
		t.Fatalf("expected fatal error on empty input")
	}
}
