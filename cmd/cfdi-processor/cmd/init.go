package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data directory layout",
	Long: `Create the data, pending and processed directories under the base
directory. Existing directories are left untouched.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dirs, err := newPathRegistry()
	if err != nil {
		return err
	}
	if err := dirs.InitDirectories(); err != nil {
		return fmt.Errorf("creating directories: %w", err)
	}

	fmt.Printf("Base:      %s\n", dirs.Base())
	fmt.Printf("Data:      %s\n", dirs.Data())
	fmt.Printf("Pending:   %s\n", dirs.Pending())
	fmt.Printf("Processed: %s\n", dirs.Processed())
	return nil
}
