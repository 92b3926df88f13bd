package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

var showCmd = &cobra.Command{
	Use:   "show [user-id] [document-id]",
	Short: "Show the per-page annotation summary of a document",
	Args:  cobra.ExactArgs(2),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	userID, documentID := args[0], args[1]
	ctx := context.Background()

	summary, err := libraryService.Show(ctx, userID, documentID)
	if err != nil {
		return fmt.Errorf("failed to show document: %w", err)
	}

	cmd.Printf("Document: %s (user %s)\n\n", summary.DocumentID, summary.UserID)
	cmd.Printf("  Strokes: %d\n", summary.Strokes)

	if len(summary.Pages) == 0 {
		cmd.Println("\n  No annotations.")
		return nil
	}

	cmd.Println("\n  Pages:")
	for _, page := range summary.Pages {
		cmd.Printf("    Page %d: %d strokes", page.PageIndex, page.Strokes)

		tools := make([]string, 0, len(page.Tools))
		for tool := range page.Tools {
			tools = append(tools, string(tool))
		}
		sort.Strings(tools)
		for _, tool := range tools {
			cmd.Printf(" %s=%d", tool, page.Tools[domain.ToolKind(tool)])
		}
		cmd.Println()
	}

	return nil
}
