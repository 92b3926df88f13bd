package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateCmd_Use(t *testing.T) {
	assert.Equal(t, "migrate [user-id]", migrateCmd.Use)
}

func TestMigrateCmd_ReportsResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"migrate", "user-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "algebra: 2 strokes")
	assert.Contains(t, out, "/tmp/algebra.json.bak")
	assert.Contains(t, out, "Migrated 1 documents.")
}

func TestMigrateCmd_NothingToMigrate(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	migrationService = nil
	setupEmptyMigration()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"migrate", "user-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Nothing to migrate")
}
