package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/cfdi-processor/internal/model"
	"github.com/rezonia/cfdi-processor/internal/processor"
	"github.com/rezonia/cfdi-processor/internal/summary"
)

var (
	processPending bool
	processArchive bool
)

var processCmd = &cobra.Command{
	Use:   "process [files...]",
	Short: "Extract fields from CFDI XML invoices",
	Long: `Process one or more CFDI XML files and print the extracted fields.

With --pending, the files in the pending directory are processed instead
of explicit arguments. Adding --archive moves each successfully extracted
pending invoice into the processed directory.`,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().BoolVar(&processPending, "pending", false, "process every XML file in the pending directory")
	processCmd.Flags().BoolVar(&processArchive, "archive", false, "move extracted pending invoices to the processed directory (requires --pending)")
}

// ProcessResult pairs an extracted invoice with its source and any error.
type ProcessResult struct {
	File    string          `json:"archivo"`
	Invoice *model.CFDI     `json:"cfdi,omitempty"`
	Summary summary.Summary `json:"resumen,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func runProcess(cmd *cobra.Command, args []string) error {
	if processArchive && !processPending {
		return fmt.Errorf("--archive only applies with --pending")
	}
	if !processPending && len(args) == 0 {
		return fmt.Errorf("no input files specified (use file arguments or --pending)")
	}

	dirs, err := newPathRegistry()
	if err != nil {
		return err
	}
	pipeline := processor.NewPipeline(dirs)
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	var results []ProcessResult
	if processPending {
		results = processPendingDir(ctx, pipeline)
	} else {
		results = processFiles(ctx, pipeline, args)
	}

	if err := outputResults(results); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d invoices failed", failed, len(results))
	}
	return nil
}

func processFiles(ctx context.Context, pipeline *processor.Pipeline, files []string) []ProcessResult {
	results := make([]ProcessResult, 0, len(files))
	for _, file := range files {
		printVerbose("Processing %s", file)
		result := ProcessResult{File: filepath.Base(file)}
		invoice, err := pipeline.ProcessFile(ctx, file)
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Invoice = invoice
			result.Summary = summary.Summarize(invoice)
		}
		results = append(results, result)
	}
	return results
}

func processPendingDir(ctx context.Context, pipeline *processor.Pipeline) []ProcessResult {
	invoices := pipeline.ProcessPending(ctx)
	printVerbose("Extracted %d invoices from %s", len(invoices), pipeline.Paths().Pending())

	results := make([]ProcessResult, 0, len(invoices))
	for _, invoice := range invoices {
		result := ProcessResult{
			File:    invoice.SourceFile,
			Invoice: invoice,
			Summary: summary.Summarize(invoice),
		}
		if processArchive {
			dest, err := pipeline.Archive(invoice.SourceFile)
			if err != nil {
				result.Error = fmt.Sprintf("archive failed: %v", err)
			} else {
				printVerbose("Archived %s to %s", invoice.SourceFile, dest)
			}
		}
		results = append(results, result)
	}
	return results
}

func outputResults(results []ProcessResult) error {
	switch outputFormat {
	case "json":
		return outputJSON(results)
	case "csv":
		return outputCSV(results)
	case "table":
		return outputTable(results)
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}
}

func outputJSON(results []ProcessResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func outputTable(results []ProcessResult) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ARCHIVO\tFOLIO\tVERSION\tFECHA\tEMISOR\tTOTAL\tUUID")
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(w, "%s\tERROR: %s\t\t\t\t\t\n", r.File, r.Error)
			continue
		}
		inv := r.Invoice
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.File,
			inv.Label(),
			inv.Version,
			r.Summary.IssuedAt,
			r.Summary.Issuer,
			r.Summary.Total,
			inv.StampUUID,
		)
	}
	return nil
}

func outputCSV(results []ProcessResult) error {
	fmt.Println("archivo,folio,version,fecha,emisor,total,uuid,error")
	for _, r := range results {
		if r.Error != "" {
			fmt.Printf("%s,,,,,,,%s\n", escapeCSV(r.File), escapeCSV(r.Error))
			continue
		}
		inv := r.Invoice
		fmt.Printf("%s,%s,%s,%s,%s,%s,%s,\n",
			escapeCSV(r.File),
			escapeCSV(inv.Label()),
			inv.Version,
			escapeCSV(r.Summary.IssuedAt),
			escapeCSV(r.Summary.Issuer),
			escapeCSV(r.Summary.Total),
			escapeCSV(inv.StampUUID),
		)
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
	}
	return s
}
