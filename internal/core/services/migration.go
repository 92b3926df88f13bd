package services

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// Ensure MigrationService implements the interface.
var _ driving.MigrationService = (*MigrationService)(nil)

// MigrationService runs legacy-format migrations through the driven
// migrator.
type MigrationService struct {
	migrator driven.Migrator
}

// NewMigrationService creates a new migration service.
func NewMigrationService(migrator driven.Migrator) *MigrationService {
	return &MigrationService{migrator: migrator}
}

// MigrateUser converts a user's legacy JSON annotation files to AXF.
func (s *MigrationService) MigrateUser(ctx context.Context, userID string) ([]domain.MigrationResult, error) {
	if s.migrator == nil {
		return nil, domain.ErrNotImplemented
	}

	results, err := s.migrator.MigrateUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		logger.Info("migrated %s (%d strokes) -> backup %s", r.DocumentID, r.Strokes, r.BackupPath)
	}
	return results, nil
}
