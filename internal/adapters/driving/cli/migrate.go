package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [user-id]",
	Short: "Convert a user's legacy JSON annotation files to AXF",
	Long: `Converts every legacy JSON annotation file of the user that has no AXF
counterpart. Legacy files are kept with a .bak suffix, never deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	userID := args[0]
	ctx := context.Background()

	results, err := migrationService.MigrateUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if len(results) == 0 {
		cmd.Printf("Nothing to migrate for user: %s\n", userID)
		return nil
	}

	for _, r := range results {
		cmd.Printf("  %s: %d strokes (backup: %s)\n", r.DocumentID, r.Strokes, r.BackupPath)
	}
	cmd.Printf("Migrated %d documents.\n", len(results))
	return nil
}
