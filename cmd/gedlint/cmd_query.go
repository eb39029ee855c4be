package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jacoelho/gedcom/tagtree"
)

var queryCmd = &cobra.Command{
	Use:   "query <file.ged> <path>",
	Short: "Run a dot-path selector against a document and print matches",
	Long: `Parses file.ged and evaluates path (spec §4.6's dot-path syntax,
e.g. ".HEAD.GEDC.VERS" or "INDI..NAME") against its top-level structures,
printing each match's tag and payload text.`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	path, selector := args[0], args[1]
	rc, err := resolveConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	forest, _, err := tagtree.Parse(string(data), rc.dialect)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	logSink().Debug("querying", zap.String("path", path), zap.String("selector", selector))

	matches := forest.Select(selector)
	if len(matches) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no matches for %q\n", selector)
		return nil
	}
	for _, s := range matches {
		text, _ := s.StringPayload()
		if text != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", s.TagName(), text)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", s.TagName())
		}
	}
	return nil
}
