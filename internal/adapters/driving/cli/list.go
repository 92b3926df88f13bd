package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [user-id]",
	Short: "List annotated documents for a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	userID := args[0]
	ctx := context.Background()

	entries, err := libraryService.ListDocuments(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(entries) == 0 {
		cmd.Printf("No annotated documents found for user: %s\n", userID)
		return nil
	}

	cmd.Printf("Annotated documents for user %s:\n\n", userID)
	for _, entry := range entries {
		cmd.Printf("  %s\n", entry.DocumentID)
		cmd.Printf("    Strokes: %d across %d pages\n", entry.StrokeCount, entry.PageCount)
		if !entry.UpdatedAt.IsZero() {
			cmd.Printf("    Updated: %s\n", entry.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(entries))
	return nil
}
