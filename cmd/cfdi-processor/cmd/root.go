package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rezonia/cfdi-processor/internal/config"
	"github.com/rezonia/cfdi-processor/internal/paths"
)

var (
	verbose      bool
	outputFormat string
	baseDir      string

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cfdi-processor",
	Short: "Extract key fields from Mexican CFDI invoices",
	Long: `cfdi-processor reads CFDI XML invoices (versions 3.3 and 4.0),
extracts folio, dates, amounts, issuer/recipient data and the TFD stamp,
and prints the result as JSON, a table or CSV.

It can also process the whole pending directory in batch and archive
extracted invoices into the processed directory.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "table", "output format (json, table, csv)")
	rootCmd.PersistentFlags().StringVarP(&baseDir, "base-dir", "b", "", "base directory for the data layout (defaults to CFDI_BASE_DIR or the executable's parent)")
}

func initConfig() {
	// A missing .env file is fine, environment variables still apply.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load configuration: %v\n", err)
		cfg = &config.Config{}
	}
	appConfig = cfg
}

// resolveBase picks the base directory from the flag, the environment
// or the executable location, in that order.
func resolveBase() (string, error) {
	if baseDir != "" {
		return baseDir, nil
	}
	if appConfig != nil && appConfig.App.BaseDir != "" {
		return appConfig.App.BaseDir, nil
	}
	return paths.DefaultBase()
}

func newPathRegistry() (*paths.Registry, error) {
	base, err := resolveBase()
	if err != nil {
		return nil, fmt.Errorf("resolving base directory: %w", err)
	}
	return paths.NewRegistry(base), nil
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
