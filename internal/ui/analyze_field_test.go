package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultArtifactsExist(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RESULTS_PATH", dir)

	stem := "farm_field_NDVI_2026-06-15"
	assert.False(t, resultArtifactsExist(stem))

	// The zoning stage needs the raster and the report needs the render, so a
	// cache hit without both must force recomputation.
	require.NoError(t, os.WriteFile(filepath.Join(dir, stem+".tiff"), []byte("tiff"), 0644))
	assert.False(t, resultArtifactsExist(stem))

	require.NoError(t, os.WriteFile(filepath.Join(dir, stem+".png"), []byte("png"), 0644))
	assert.True(t, resultArtifactsExist(stem))

	require.NoError(t, os.Remove(filepath.Join(dir, stem+".tiff")))
	assert.False(t, resultArtifactsExist(stem))
}
