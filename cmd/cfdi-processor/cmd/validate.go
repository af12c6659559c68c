package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/cfdi-processor/internal/model"
	"github.com/rezonia/cfdi-processor/internal/processor"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check an extracted CFDI for missing or inconsistent fields",
	Long: `Extract a CFDI XML file and report fields that are missing or do not
add up. Warnings do not fail the command, errors do.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// ValidationIssue describes a single finding on an extracted invoice.
type ValidationIssue struct {
	Severity string `json:"severity"` // "error" or "warning"
	Field    string `json:"field"`
	Message  string `json:"message"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	dirs, err := newPathRegistry()
	if err != nil {
		return err
	}
	pipeline := processor.NewPipeline(dirs)

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	invoice, err := pipeline.ProcessFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("extracting %s: %w", args[0], err)
	}

	issues := checkInvoice(invoice)

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(issues); err != nil {
			return err
		}
	} else {
		if len(issues) == 0 {
			fmt.Printf("%s: OK\n", invoice.SourceFile)
		}
		for _, issue := range issues {
			fmt.Printf("%s: [%s] %s: %s\n", invoice.SourceFile, issue.Severity, issue.Field, issue.Message)
		}
	}

	for _, issue := range issues {
		if issue.Severity == "error" {
			return fmt.Errorf("validation failed")
		}
	}
	return nil
}

func checkInvoice(invoice *model.CFDI) []ValidationIssue {
	var issues []ValidationIssue

	errorIssue := func(field, message string) {
		issues = append(issues, ValidationIssue{Severity: "error", Field: field, Message: message})
	}
	warn := func(field, message string) {
		issues = append(issues, ValidationIssue{Severity: "warning", Field: field, Message: message})
	}

	if invoice.Folio == "" {
		warn("folio", "missing folio")
	}
	if invoice.IssuerTaxID == "" {
		errorIssue("emisor_rfc", "missing issuer RFC")
	}
	if invoice.RecipientTaxID == "" {
		warn("receptor_rfc", "missing recipient RFC")
	}
	if invoice.IssuedAt == nil {
		errorIssue("fecha_emision", "missing or unparsable issue date")
	}
	if invoice.Total == nil {
		errorIssue("total", "missing or unparsable total")
	}
	if invoice.Subtotal == nil {
		warn("subtotal", "missing or unparsable subtotal")
	}
	if invoice.Total != nil && invoice.Subtotal != nil && invoice.Total.LessThan(*invoice.Subtotal) {
		warn("total", fmt.Sprintf("total %s is less than subtotal %s", invoice.Total, invoice.Subtotal))
	}
	if !invoice.IsStamped() {
		warn("uuid", "no TFD stamp found")
	}

	return issues
}
