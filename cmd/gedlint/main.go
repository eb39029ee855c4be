package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jacoelho/gedcom/dialect"
	"github.com/jacoelho/gedcom/schema"
)

var (
	dialectFlag string
	schemaFlag  string
	configFlag  string
	verboseFlag bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "gedlint",
	Short:         "Parse, validate, convert, and query GEDCOM documents",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verboseFlag {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		built, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		logger = built
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dialectFlag, "dialect", "", `GEDCOM dialect: "5" or "7" (default "7", or set by --config)`)
	rootCmd.PersistentFlags().StringVar(&schemaFlag, "schema", "", "path to a g7validation-style schema JSON file")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to a YAML config file with dialect/schema/output defaults")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug-level operational logging")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(queryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := err.(errExitCode); ok {
			os.Exit(int(code))
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolvedConfig is the effective dialect/schema/output settings after
// merging --config with command-line flags.
type resolvedConfig struct {
	dialect dialect.Config
	lookup  *schema.Lookup
}

func resolveConfig() (resolvedConfig, error) {
	dialectName, schemaPath := dialectFlag, schemaFlag
	if configFlag != "" {
		fc, err := loadFileConfig(configFlag)
		if err != nil {
			return resolvedConfig{}, err
		}
		dialectName, schemaPath = fc.merge(dialectFlag, schemaFlag)
	}
	if dialectName == "" {
		dialectName = "7"
	}

	var cfg dialect.Config
	switch dialectName {
	case "5":
		cfg = dialect.GEDCOM5()
	case "7":
		cfg = dialect.GEDCOM7()
	default:
		return resolvedConfig{}, fmt.Errorf("unknown dialect %q: must be \"5\" or \"7\"", dialectName)
	}

	var lookup *schema.Lookup
	if schemaPath != "" {
		l, err := schema.Load(os.DirFS(filepath.Dir(schemaPath)), filepath.Base(schemaPath))
		if err != nil {
			return resolvedConfig{}, fmt.Errorf("load schema: %w", err)
		}
		lookup = l
	}
	return resolvedConfig{dialect: cfg, lookup: lookup}, nil
}

func logSink() *zap.Logger {
	if logger != nil {
		return logger
	}
	return zap.NewNop()
}
