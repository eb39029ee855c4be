package tagtree

import (
	"errors"
	"strings"
	"testing"

	"github.com/jacoelho/gedcom/dialect"
	gederrors "github.com/jacoelho/gedcom/errors"
)

func TestSerializeRoundTrip(t *testing.T) {
	input := "0 HEAD\n1 GEDC\n2 VERS 7.0\n0 TRLR\n"
	f, _, err := Parse(input, dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := f.Serialize(dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	f2, diags, err := Parse(out, dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics on reparse: %v", diags)
	}
	vers := f2.SelectFirst(".HEAD.GEDC.VERS")
	if vers == nil {
		t.Fatalf("expected VERS after round trip")
	}
	text, _ := vers.StringPayload()
	if text != "7.0" {
		t.Fatalf("expected 7.0, got %q", text)
	}
}

func TestSerializePointerMintsID(t *testing.T) {
	input := "0 @F1@ FAM\n1 HUSB @I1@\n0 @I1@ INDI\n0 TRLR\n"
	f, _, err := Parse(input, dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := f.Serialize(dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !strings.Contains(out, "@I1@ INDI") {
		t.Fatalf("expected preferred id I1 preserved, got:\n%s", out)
	}
	if !strings.Contains(out, "1 HUSB @I1@") {
		t.Fatalf("expected pointer rendered, got:\n%s", out)
	}
}

func TestSerializeWrapsLongLines(t *testing.T) {
	input := "0 @I1@ INDI\n1 NOTE " + strings.Repeat("x", 100) + "\n0 TRLR\n"
	f, _, err := Parse(input, dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := dialect.GEDCOM5() // CONC allowed, bounded length
	cfg.Len = 30
	out, err := f.Serialize(cfg)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if len(line) > cfg.Len {
			t.Fatalf("line exceeds %d chars: %q (%d)", cfg.Len, line, len(line))
		}
	}
	if !strings.Contains(out, "CONC") {
		t.Fatalf("expected CONC wrapping, got:\n%s", out)
	}
}

func TestSerializeWrapsLongLinesWithID(t *testing.T) {
	input := "0 @I1@ INDI\n1 @N1@ NOTE " + strings.Repeat("x", 100) + "\n0 TRLR\n"
	f, _, err := Parse(input, dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// Serialize writes an "@id@ " prefix only for a structure that something
	// references, so record a reference to the NOTE structure; its header
	// then carries the prefix, widening headerWidth beyond the bare-tag case
	// TestSerializeWrapsLongLines already exercises.
	note := f.SelectFirst(".INDI.NOTE")
	if note == nil {
		t.Fatal("expected to find NOTE structure")
	}
	f.AddReference(note.Self(), f.SelectFirst(".INDI").Self())

	cfg := dialect.GEDCOM5()
	cfg.Len = 30
	out, err := f.Serialize(cfg)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !strings.Contains(out, "1 @N1@ NOTE ") {
		t.Fatalf("expected the NOTE header to carry its @N1@ prefix, got:\n%s", out)
	}
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if len(line) > cfg.Len {
			t.Fatalf("line exceeds %d chars: %q (%d)", cfg.Len, line, len(line))
		}
	}
}

func TestSerializeFailsWithLineTooLongDiagnosticWhenUnwrappable(t *testing.T) {
	input := "0 @I1@ INDI\n1 NOTE " + strings.Repeat("x", 100) + "\n0 TRLR\n"
	f, _, err := Parse(input, dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := dialect.GEDCOM5()
	cfg.Len = 3 // too small for even the bare "1 NOTE" header to fit

	_, err = f.Serialize(cfg)
	if err == nil {
		t.Fatal("expected a wrap failure")
	}
	var diags gederrors.Diagnostics
	if !errors.As(err, &diags) {
		t.Fatalf("expected a gederrors.Diagnostics error, got %T: %v", err, err)
	}
	if len(diags) != 1 || diags[0].Code != gederrors.CodeLineTooLong {
		t.Fatalf("expected a single ged-line-too-long diagnostic, got %+v", diags)
	}
}

func TestSerializeCONCForbiddenUnderV7(t *testing.T) {
	input := "0 @I1@ INDI\n1 NOTE " + strings.Repeat("x", 5000) + "\n0 TRLR\n"
	f, _, err := Parse(input, dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := f.Serialize(dialect.GEDCOM7())
	if err != nil {
		t.Fatalf("unexpected error (v7 is unlimited length): %v", err)
	}
	if strings.Contains(out, "CONC") {
		t.Fatalf("did not expect CONC under unlimited dialect")
	}
}
