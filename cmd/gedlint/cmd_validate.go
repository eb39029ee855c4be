package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	gederrors "github.com/jacoelho/gedcom/errors"
	"github.com/jacoelho/gedcom/tagtree"
	"github.com/jacoelho/gedcom/typed"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.ged>",
	Short: "Parse a GEDCOM document and report diagnostics",
	Long: `Parses file.ged under the chosen dialect. With --schema set, also
builds the typed structure/dataset layer and runs its six-step structural
validator, reporting cardinality, empty-structure, and payload diagnostics
in addition to the tag-layer grammar diagnostics.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	rc, err := resolveConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	logSink().Debug("parsing document", zap.String("path", path))

	forest, diags, err := tagtree.Parse(string(data), rc.dialect)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	total := printDiagnostics(diags)
	logSink().Info("tag-layer parse complete", zap.Int("structures", forest.Len()), zap.Int("diagnostics", len(diags)))

	if rc.lookup != nil {
		before := len(rc.lookup.Diagnostics())
		ds, err := typed.FromForest(forest, rc.lookup)
		if err != nil {
			return fmt.Errorf("build typed dataset: %w", err)
		}
		count := ds.Validate()
		total += printDiagnostics(rc.lookup.Diagnostics()[before:])
		logSink().Info("typed validation complete", zap.Int("structures", ds.Len()), zap.Int("diagnostics", count))
	}

	if total > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d diagnostic(s)\n", path, total)
		return errExitCode(1)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", path)
	return nil
}

// printDiagnostics writes each diagnostic at or above warning severity to
// stderr and returns the count at error severity or above, the threshold
// that determines gedlint's exit code.
func printDiagnostics(diags gederrors.Diagnostics) int {
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "%s: %s\n", d.Severity, d.String())
	}
	return diags.Count(gederrors.Error)
}

// errExitCode is a sentinel error whose only purpose is to carry a process
// exit code back to main without printing its own message (the diagnostics
// were already printed).
type errExitCode int

func (e errExitCode) Error() string { return "" }
