package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	xmlparser "github.com/rezonia/cfdi-processor/internal/parser/xml"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show the detected CFDI version of an XML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	file := args[0]
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}

	version, supported, err := xmlparser.NewRegistry().DetectBytes(content)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", file, err)
	}

	fmt.Printf("File:      %s\n", filepath.Base(file))
	fmt.Printf("Size:      %d bytes\n", len(content))
	fmt.Printf("Version:   %s\n", version)
	fmt.Printf("Supported: %t\n", supported)
	return nil
}
