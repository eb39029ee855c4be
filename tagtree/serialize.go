package tagtree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacoelho/gedcom/dialect"
	gederrors "github.com/jacoelho/gedcom/errors"
)

// Serialize renders the forest as GEDC text under the given dialect,
// terminating with a level-0 TRLR structure (spec §4.2); the TRLR line is
// appended only when the forest's last root is not already a TRLR. It fails
// only when Len is too small to permit the CONC wrapping a long line requires.
func (f *Forest) Serialize(cfg dialect.Config) (string, error) {
	var b strings.Builder
	for _, h := range f.roots {
		if err := writeStructure(&b, f, f.nodes[h], 0, cfg); err != nil {
			return "", err
		}
	}
	if n := len(f.roots); n == 0 || f.nodes[f.roots[n-1]].Tag != "TRLR" {
		if err := writeLine(&b, 0, "", "TRLR", "", cfg); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func writeStructure(b *strings.Builder, f *Forest, s *Structure, level int, cfg dialect.Config) error {
	id := ""
	if len(s.Refs) > 0 {
		id = f.EnsureID(s.self)
	}
	payloadText, isPointer := renderPayload(f, s, cfg)
	if isPointer {
		if err := writeLine(b, level, id, s.Tag, payloadText, cfg); err != nil {
			return err
		}
	} else if err := writeTextPayload(b, level, id, s.Tag, payloadText, cfg); err != nil {
		return err
	}
	for _, ch := range s.Sub {
		if err := writeStructure(b, f, f.nodes[ch], level+1, cfg); err != nil {
			return err
		}
	}
	return nil
}

// renderPayload returns the payload's on-wire form and whether it is a
// pointer form ("@id@"/"@VOID@", written verbatim with no CONC wrapping or
// escaping) as opposed to free text.
func renderPayload(f *Forest, s *Structure, cfg dialect.Config) (string, bool) {
	switch s.Payload.Kind {
	case PayloadNull:
		return "@VOID@", true
	case PayloadPointer:
		target := f.nodes[s.Payload.Target]
		return "@" + f.EnsureID(target.self) + "@", true
	case PayloadString:
		return escapePayload(s.Payload.Text, cfg), false
	default:
		return "", false
	}
}

// escapePayload escapes a leading '@' per the dialect's Escapes policy:
// true serializes "@#…" as-is, false doubles the leading '@'.
func escapePayload(text string, cfg dialect.Config) string {
	if !strings.HasPrefix(text, "@") {
		return text
	}
	if cfg.Escapes {
		return text
	}
	return "@" + text
}

// writeTextPayload writes a structure's header line plus CONT/CONC
// continuation lines for a multi-line or over-length string payload.
func writeTextPayload(b *strings.Builder, level int, id, tag, text string, cfg dialect.Config) error {
	lines := strings.Split(text, "\n")
	first := lines[0]
	if err := writeWrapped(b, level, id, tag, first, cfg); err != nil {
		return err
	}
	for _, cont := range lines[1:] {
		if err := writeWrapped(b, level+1, "", "CONT", cont, cfg); err != nil {
			return err
		}
	}
	return nil
}

// writeWrapped writes one logical line, inserting CONC continuations at
// level+1 if it would otherwise exceed cfg.Len characters.
func writeWrapped(b *strings.Builder, level int, id, tag, payload string, cfg dialect.Config) error {
	if cfg.Len <= 0 {
		return writeLine(b, level, id, tag, payload, cfg)
	}
	head, rest := payload, ""
	for headerWidth(level, id, tag)+delimWidth(head)+len(head) > cfg.Len {
		cut := cfg.Len - headerWidth(level, id, tag) - delimWidth(head)
		if cut <= 0 {
			return lineTooLong(tag, fmt.Sprintf("line length %d too small to wrap payload for tag %s", cfg.Len, tag))
		}
		if cut > len(head) {
			cut = len(head)
		}
		// never cut between the two characters of a leading "@@" escape
		// pair: that would leave a lone "@" on the first line, which
		// decodes differently than the original doubled escape.
		if cut == 1 && len(head) > 1 && head[0] == '@' && head[1] == '@' {
			return lineTooLong(tag, fmt.Sprintf("line length %d too small to wrap payload for tag %s without splitting an escape", cfg.Len, tag))
		}
		rest = head[cut:] + rest
		head = head[:cut]
		if err := writeLine(b, level, id, tag, head, cfg); err != nil {
			return err
		}
		level, id, tag, head = level+1, "", "CONC", rest
		rest = ""
	}
	return writeLine(b, level, id, tag, head, cfg)
}

// lineTooLong reports a wrap failure as a fatal ged-line-too-long
// diagnostic. Diagnostics implements error, so Serialize's callers can still
// treat it as a plain error, or inspect it as a gederrors.Diagnostics for
// the code and tag path.
func lineTooLong(tag, message string) error {
	return gederrors.Diagnostics{{
		Code:     gederrors.CodeLineTooLong,
		Message:  message,
		Severity: gederrors.Fatal,
		Path:     tag,
	}}
}

func headerWidth(level int, id, tag string) int {
	w := len(strconv.Itoa(level)) + 1 + len(tag)
	if id != "" {
		w += len(id) + 3 // " @" + id + "@"
	}
	return w
}

// delimWidth is the width writeLine spends on the space between tag and
// payload: one character if a payload follows, none otherwise.
func delimWidth(payload string) int {
	if payload == "" {
		return 0
	}
	return 1
}

func writeLine(b *strings.Builder, level int, id, tag, payload string, cfg dialect.Config) error {
	b.WriteString(strconv.Itoa(level))
	b.WriteByte(' ')
	if id != "" {
		b.WriteByte('@')
		b.WriteString(id)
		b.WriteString("@ ")
	}
	b.WriteString(tag)
	if payload != "" {
		b.WriteByte(' ')
		b.WriteString(payload)
	}
	b.WriteByte('\n')
	return nil
}
