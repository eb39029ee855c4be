// Package errors defines the diagnostic types shared by the tag and typed
// layers: a severity-tagged code/message pair with optional line or path
// context, and a sink pair (err/warn) that callers thread through parsing
// and validation.
package errors

import (
	"fmt"
	"strings"
)

// Severity classifies a Diagnostic per the three-tier model: fatal aborts the
// call, error normalizes the offending node and continues, warning changes
// nothing.
type Severity int

const (
	Warning Severity = iota
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Fatal:
		return "fatal"
	case Error:
		return "error"
	default:
		return "warning"
	}
}

// Code identifies a diagnostic kind independent of its rendered message.
type Code string

const (
	// Tag-layer (component B) codes.
	CodeUnparseableLine     Code = "ged-unparseable-line"
	CodeLevelSkip           Code = "ged-level-skip"
	CodeLeadingZero         Code = "ged-leading-zero"
	CodeSpliceOnPointer     Code = "ged-splice-on-pointer"
	CodeSpliceOnSubstr      Code = "ged-splice-on-substructure"
	CodeCONCForbidden       Code = "ged-conc-forbidden"
	CodeUnresolvedPointer   Code = "ged-unresolved-pointer"
	CodeDuplicateXref       Code = "ged-duplicate-xref"
	CodeLineTooLong         Code = "ged-line-too-long"

	// Schema lookup (component D) incident codes.
	CodeUndocumented Code = "ged-undocumented-extension"
	CodeUnregistered Code = "ged-unregistered-extension"
	CodeAliased      Code = "ged-aliased-extension"
	CodeAmbiguous    Code = "ged-ambiguous-tag"
	CodeProhibited   Code = "ged-prohibited-substructure"
	CodeNovel        Code = "ged-novel-container"
	CodeRelocated    Code = "ged-relocated-structure"

	// Typed-layer (component E) codes.
	CodeMissingSubstructure Code = "ged-missing-substructure"
	CodeTooManySubstructure Code = "ged-too-many-substructure"
	CodeEmptyStructure      Code = "ged-empty-structure"
	CodeInvalidPayload      Code = "ged-invalid-payload"
	CodePointerToSubstruct  Code = "ged-pointer-to-substructure"
	CodePointerTypeMismatch Code = "ged-pointer-target-type-mismatch"
	CodeDeprecatedEXID      Code = "ged-deprecated-exid"

	// Datatype (component C) codes.
	CodeInvalidAge      Code = "ged-invalid-age"
	CodeInvalidTime     Code = "ged-invalid-time"
	CodeInvalidDate     Code = "ged-invalid-date"
	CodeInvalidDateVal  Code = "ged-invalid-date-value"
	CodeInvalidEnum     Code = "ged-invalid-enum"
	CodeInvalidName     Code = "ged-invalid-name"
	CodeInvalidLanguage Code = "ged-invalid-language"
	CodeInvalidMedia    Code = "ged-invalid-media-type"
	CodeInvalidInteger  Code = "ged-invalid-nonnegative-integer"
)

// Diagnostic is one reported condition. Line is set for tag-layer
// diagnostics (1-based); Path holds the offending type URI (and, for
// cardinality violations, the child type under consideration) for
// typed-layer diagnostics.
type Diagnostic struct {
	Code     Code
	Message  string
	Severity Severity
	Line     int
	Path     string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", d.Code, d.Message)
	if d.Path != "" {
		fmt.Fprintf(&b, " at %s", d.Path)
	}
	if d.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", d.Line)
	}
	return b.String()
}

// Diagnostics collects Diagnostic values and implements error so a sink's
// accumulated output can be returned directly from a fallible call.
type Diagnostics []Diagnostic

func (d Diagnostics) Error() string {
	switch len(d) {
	case 0:
		return "no diagnostics"
	case 1:
		return d[0].String()
	default:
		return fmt.Sprintf("%s (and %d more)", d[0].String(), len(d)-1)
	}
}

// HasErrors reports whether any diagnostic is Error or Fatal severity.
func (d Diagnostics) HasErrors() bool {
	for _, diag := range d {
		if diag.Severity >= Error {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics at or above the given severity.
func (d Diagnostics) Count(min Severity) int {
	n := 0
	for _, diag := range d {
		if diag.Severity >= min {
			n++
		}
	}
	return n
}
