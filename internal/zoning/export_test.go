package zoning

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnavailableExporter(t *testing.T) {
	result, err := UnavailableExporter{}.ExportZones(nil, "abc")
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrExporterUnavailable))
}

func TestZipDirectory(t *testing.T) {
	dir := t.TempDir()
	shapefileDir := filepath.Join(dir, "zones_test_shp")
	require.NoError(t, os.MkdirAll(shapefileDir, 0755))

	components := map[string]string{
		"zones_test.shp": "shp bytes",
		"zones_test.shx": "shx bytes",
		"zones_test.dbf": "dbf bytes",
		"zones_test.prj": "prj bytes",
	}
	for name, contents := range components {
		require.NoError(t, os.WriteFile(filepath.Join(shapefileDir, name), []byte(contents), 0644))
	}

	zipPath := filepath.Join(dir, "zones_test.zip")
	require.NoError(t, zipDirectory(shapefileDir, zipPath))

	reader, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer reader.Close()

	require.Len(t, reader.File, len(components))
	for _, entry := range reader.File {
		want, ok := components[entry.Name]
		require.True(t, ok, "unexpected archive entry %s", entry.Name)

		rc, err := entry.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}
}

func TestZipDirectoryMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := zipDirectory(filepath.Join(dir, "does-not-exist"), filepath.Join(dir, "out.zip"))
	assert.Error(t, err)
}
