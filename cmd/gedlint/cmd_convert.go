package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jacoelho/gedcom/tagtree"
	"github.com/jacoelho/gedcom/typed"
)

var (
	convertTo   string
	convertFrom string
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a document between GEDCOM text and the intermediate JSON form",
	Long: `Converts file to --to's format and writes the result to stdout.
Without --schema, the conversion stays at the tag layer (structure + raw
text payloads); with --schema, it round-trips through the typed layer
(typed payloads, schema-aware tag resolution), producing the richer of the
two intermediate JSON shapes from spec §6.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertTo, "to", "", `target format: "json" or "ged" (required)`)
	convertCmd.Flags().StringVar(&convertFrom, "from", "", `source format: "json" or "ged" (default: inferred from file extension)`)
}

func runConvert(cmd *cobra.Command, args []string) error {
	path := args[0]
	if convertTo != "json" && convertTo != "ged" {
		return fmt.Errorf(`--to must be "json" or "ged"`)
	}
	from := convertFrom
	if from == "" {
		from = inferFormat(path)
	}
	if from == convertTo {
		return fmt.Errorf("source and target format are both %q", from)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	rc, err := resolveConfig()
	if err != nil {
		return err
	}
	logSink().Debug("converting", zap.String("path", path), zap.String("from", from), zap.String("to", convertTo))

	out, err := convert(data, from, convertTo, rc)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func inferFormat(path string) string {
	if strings.HasSuffix(path, ".json") {
		return "json"
	}
	return "ged"
}

func convert(data []byte, from, to string, rc resolvedConfig) ([]byte, error) {
	if rc.lookup != nil {
		return convertTyped(data, from, to, rc)
	}
	return convertTag(data, from, to, rc)
}

func convertTag(data []byte, from, to string, rc resolvedConfig) ([]byte, error) {
	switch {
	case from == "ged" && to == "json":
		forest, _, err := tagtree.Parse(string(data), rc.dialect)
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		return forest.ToJSON()
	case from == "json" && to == "ged":
		forest, err := tagtree.FromJSON(data)
		if err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		text, err := forest.Serialize(rc.dialect)
		if err != nil {
			return nil, fmt.Errorf("serialize: %w", err)
		}
		return []byte(text), nil
	default:
		return nil, fmt.Errorf("unsupported conversion %s -> %s", from, to)
	}
}

func convertTyped(data []byte, from, to string, rc resolvedConfig) ([]byte, error) {
	switch {
	case from == "ged" && to == "json":
		forest, _, err := tagtree.Parse(string(data), rc.dialect)
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		ds, err := typed.FromForest(forest, rc.lookup)
		if err != nil {
			return nil, fmt.Errorf("build typed dataset: %w", err)
		}
		return ds.ToJSON()
	case from == "json" && to == "ged":
		ds, err := typed.FromDatasetJSON(data, rc.lookup)
		if err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		text, err := ds.ToForest().Serialize(rc.dialect)
		if err != nil {
			return nil, fmt.Errorf("serialize: %w", err)
		}
		return []byte(text), nil
	default:
		return nil, fmt.Errorf("unsupported conversion %s -> %s", from, to)
	}
}
