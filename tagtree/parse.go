package tagtree

import (
	"strconv"
	"strings"

	"github.com/jacoelho/gedcom/dialect"
	gederrors "github.com/jacoelho/gedcom/errors"
	"github.com/jacoelho/gedcom/internal/linescan"
)

// pendingPointer remembers a not-yet-resolved pointer payload for the
// second resolution pass, keyed by the structure that carries it.
type pendingPointer struct {
	holder Handle
	raw    string
	line   int
}

// Parse tokenizes text under the given dialect and builds a tag forest.
// Diagnostics is the accumulated error/warning stream (spec §7); a non-nil
// error is returned only for a Fatal condition (empty input).
func Parse(text string, cfg dialect.Config) (*Forest, gederrors.Diagnostics, error) {
	text = strings.TrimPrefix(text, "\uFEFF")

	sink := gederrors.NewSink()
	if strings.TrimSpace(text) == "" {
		sink.Fatal(gederrors.CodeUnparseableLine, 0, "", "empty input: no structures to parse")
		return nil, sink.Diagnostics(), sink.Diagnostics()
	}

	scanner := linescan.New(text, cfg)
	tokens := scanner.Tokens()
	for _, gap := range scanner.Gaps() {
		sink.Err(gederrors.CodeUnparseableLine, gap.Line, "", "unparseable line: "+strings.TrimSpace(gap.Text))
	}

	forest := New()
	stack := []Handle{} // stack[i] is the current structure at level i
	var pending []pendingPointer

	for _, tok := range tokens {
		if tok.Level > len(stack) {
			sink.Err(gederrors.CodeLevelSkip, tok.Line, "", "level "+strconv.Itoa(tok.Level)+" may not follow depth "+strconv.Itoa(len(stack)-1))
			continue
		}
		if !cfg.Zeros && tok.LeadingZero() {
			sink.Warn(gederrors.CodeLeadingZero, tok.Line, "", "leading zero on level number")
		}

		if tok.Tag == "CONT" || tok.Tag == "CONC" {
			handleSplice(forest, sink, cfg, stack, tok)
			continue
		}

		var super Handle = NoHandle
		if tok.Level > 0 {
			super = stack[tok.Level-1]
		}
		s := forest.NewStructure(tok.Tag, super)
		s.Line = tok.Line
		if super != NoHandle {
			parent := forest.At(super)
			parent.Sub = append(parent.Sub, s.self)
		}
		stack = stack[:tok.Level]
		stack = append(stack, s.self)

		if tok.Xref != "" {
			if !forest.RegisterID(tok.Xref, s.self) {
				sink.Err(gederrors.CodeDuplicateXref, tok.Line, "", "duplicate cross-reference identifier @"+tok.Xref+"@")
			}
		}

		switch tok.Kind {
		case linescan.PayloadNone:
			s.Payload = Payload{Kind: PayloadAbsent}
		case linescan.PayloadPointer:
			pending = append(pending, pendingPointer{holder: s.self, raw: tok.Payload, line: tok.Line})
		case linescan.PayloadText:
			s.Payload = Payload{Kind: PayloadString, Text: decodeEscape(tok.Payload)}
		}
	}

	resolvePointers(forest, sink, pending)

	diags := sink.Diagnostics()
	return forest, diags, nil
}

func handleSplice(forest *Forest, sink *gederrors.Sink, cfg dialect.Config, stack []Handle, tok linescan.Token) {
	if tok.Level == 0 || tok.Level > len(stack) {
		sink.Err(gederrors.CodeLevelSkip, tok.Line, "", tok.Tag+" has no enclosing structure")
		return
	}
	enclosing := forest.At(stack[tok.Level-1])
	if tok.Tag == "CONC" && !cfg.ConcAllowed() {
		sink.Err(gederrors.CodeCONCForbidden, tok.Line, "", "CONC is forbidden by this dialect")
		return
	}
	if enclosing.Payload.Kind == PayloadPointer || enclosing.Payload.Kind == PayloadNull {
		sink.Err(gederrors.CodeSpliceOnPointer, tok.Line, "", tok.Tag+" cannot splice onto a pointer payload")
		return
	}
	if len(enclosing.Sub) > 0 {
		sink.Err(gederrors.CodeSpliceOnSubstr, tok.Line, "", tok.Tag+" cannot splice onto a structure with substructures")
		return
	}
	addition := decodeEscape(tok.Payload)
	prior := ""
	if enclosing.Payload.Kind == PayloadString {
		prior = enclosing.Payload.Text
	}
	switch tok.Tag {
	case "CONT":
		enclosing.Payload = Payload{Kind: PayloadString, Text: prior + "\n" + addition}
	case "CONC":
		enclosing.Payload = Payload{Kind: PayloadString, Text: prior + addition}
	}
}

// decodeEscape drops one leading '@' from a doubled "@@" escape, per spec
// §4.2: "@#…" and "@@#…" both denote text "@#…"; "@@@#…" denotes "@@#…".
func decodeEscape(payload string) string {
	if strings.HasPrefix(payload, "@@") {
		return payload[1:]
	}
	return payload
}

func resolvePointers(forest *Forest, sink *gederrors.Sink, pending []pendingPointer) {
	for _, p := range pending {
		holder := forest.At(p.holder)
		if p.raw == "VOID" {
			holder.Payload = Payload{Kind: PayloadNull}
			continue
		}
		target, ok := forest.LookupID(p.raw)
		if !ok {
			sink.Err(gederrors.CodeUnresolvedPointer, p.line, "", "pointer to undefined xref_id @"+p.raw+"@")
			holder.Payload = Payload{Kind: PayloadNull}
			continue
		}
		holder.Payload = Payload{Kind: PayloadPointer, Target: target}
		forest.AddReference(target, p.holder)
	}
}
