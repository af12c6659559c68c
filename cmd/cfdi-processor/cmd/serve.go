package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezonia/cfdi-processor/internal/server"
)

var serveAddress string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP extraction API",
	Long: `Start an HTTP server exposing the extractor: process uploaded XML,
list pending invoices, archive processed files and inspect versions.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddress, "address", "a", "", "listen address (defaults to CFDI_SERVER_ADDRESS)")
}

func runServe(cmd *cobra.Command, args []string) error {
	base, err := resolveBase()
	if err != nil {
		return err
	}

	cfg := &server.Config{
		Address:      appConfig.Server.Address,
		BaseDir:      base,
		ReadTimeout:  appConfig.Server.ReadTimeout,
		WriteTimeout: appConfig.Server.WriteTimeout,
		Debug:        appConfig.Server.Debug,
	}
	if serveAddress != "" {
		cfg.Address = serveAddress
	}

	fmt.Printf("Starting CFDI extraction API on %s (base %s)\n", cfg.Address, base)
	return server.NewServer(cfg).Run()
}
