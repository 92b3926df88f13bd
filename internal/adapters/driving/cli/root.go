// Package cli provides the cobra-based command line interface. Each
// command file registers itself on the root command in init(); the
// services behind the commands are wired lazily on first use so tests
// can inject in-memory implementations.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/config/file"
	storefile "github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/storage/file"
	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/storage/sqlite"
	"github.com/inkwell-labs/inkwell-cli/internal/axf"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/inkwell-cli/internal/core/services"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services used by the commands. Wired by initServices, or injected
// directly by tests.
var (
	libraryService   driving.LibraryService
	migrationService driving.MigrationService
	catalogStore     driven.CatalogStore
)

var (
	verbose bool
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Manage handwritten PDF annotations",
	Long: `Inkwell stores freehand ink annotations per user and document,
in the XFDF-based AXF interchange format.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default ~/.inkwell)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices wires the file-backed services on first use. Tests
// bypass this by assigning the service variables directly.
func initServices() error {
	if libraryService != nil && migrationService != nil {
		return nil
	}

	cfg, err := configfile.NewConfigStore(dataDir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	base := dataDir
	if base == "" {
		base = cfg.GetString("data_dir")
	}

	codec := axf.New()
	var opts []storefile.StoreOption
	if cfg.GetBool("catalog_enabled") {
		catalog, err := sqlite.NewCatalog(base)
		if err != nil {
			return fmt.Errorf("opening catalog: %w", err)
		}
		catalogStore = catalog
		opts = append(opts, storefile.WithCatalog(catalog))
	}

	store, err := storefile.NewStore(base, codec, opts...)
	if err != nil {
		return fmt.Errorf("opening annotation store: %w", err)
	}

	libraryService = services.NewLibraryService(store, catalogStore, codec)
	migrationService = services.NewMigrationService(store)
	return nil
}
