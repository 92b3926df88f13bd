package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [user-id] [document-id]",
	Short: "Export a document's annotations as AXF",
	Long:  `Prints the AXF (XFDF) serialization of a document's annotations, or writes it to a file with --output.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runExport,
}

// exportOutput is a flag for the export command.
var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	userID, documentID := args[0], args[1]
	ctx := context.Background()

	data, err := libraryService.Export(ctx, userID, documentID)
	if err != nil {
		return fmt.Errorf("failed to export document: %w", err)
	}

	if exportOutput == "" {
		cmd.Print(string(data))
		return nil
	}

	if err := os.WriteFile(exportOutput, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}
	cmd.Printf("Exported %s to %s\n", documentID, exportOutput)
	return nil
}
