package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCmd_Use(t *testing.T) {
	assert.Equal(t, "export [user-id] [document-id]", exportCmd.Use)
}

func TestExportCmd_PrintsAXF(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"export", "user-1", "algebra"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "<?xml")
	assert.Contains(t, out, "algebra.pdf")
	assert.Equal(t, 2, strings.Count(out, "<ink "))
}

func TestExportCmd_WritesFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	outPath := filepath.Join(t.TempDir(), "algebra.xfdf")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"export", "user-1", "algebra", "--output", outPath})
	defer func() {
		rootCmd.SetArgs(nil)
		exportOutput = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Exported algebra")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<ink ")
}
