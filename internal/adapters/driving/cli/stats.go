package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog totals across all users",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	totals, err := libraryService.Stats(context.Background())
	if err != nil {
		if errors.Is(err, domain.ErrNotImplemented) {
			return errors.New("stats requires the catalog; set catalog_enabled = true in the config")
		}
		return fmt.Errorf("failed to read stats: %w", err)
	}

	cmd.Printf("Documents: %d\n", totals.Documents)
	cmd.Printf("Strokes:   %d\n", totals.Strokes)
	cmd.Printf("Users:     %d\n", totals.Users)
	return nil
}
