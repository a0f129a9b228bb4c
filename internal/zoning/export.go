package zoning

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/airbusgeo/godal"
	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
)

// ErrExporterUnavailable is returned when a deployment has no vector export
// capability wired in.
var ErrExporterUnavailable = errors.New("vector export capability unavailable")

// ExportResult names the files written for one zoning request. Both files
// share the export id, so a re-download never races a recomputation.
type ExportResult struct {
	ExportID         string `json:"export_id"`
	GeoJSONPath      string `json:"geojson_path"`
	ShapefileZipPath string `json:"shapefile_zip_path"`
}

// Exporter is the vector-serialization capability. One implementation is
// selected at startup; callers treat it as opaque.
type Exporter interface {
	ExportZones(fc *geojson.FeatureCollection, exportID string) (*ExportResult, error)
}

// UnavailableExporter fails every export with ErrExporterUnavailable. Used
// when GDAL vector drivers are not present in the deployment.
type UnavailableExporter struct{}

func (UnavailableExporter) ExportZones(*geojson.FeatureCollection, string) (*ExportResult, error) {
	return nil, ErrExporterUnavailable
}

// GDALExporter writes zone features as GeoJSON and as a zipped ESRI Shapefile
// through GDAL's vector translate.
type GDALExporter struct {
	resultsDir string
}

func NewGDALExporter(resultsDir string) (*GDALExporter, error) {
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}
	godal.RegisterInternalDrivers()
	return &GDALExporter{resultsDir: resultsDir}, nil
}

// ExportZones serializes the dissolved zone features under a zones_<id> stem.
// A failure anywhere removes every partial file before returning, so a success
// response never references half-written exports.
func (e *GDALExporter) ExportZones(fc *geojson.FeatureCollection, exportID string) (*ExportResult, error) {
	if exportID == "" {
		exportID = uuid.New().String()
	}
	stem := "zones_" + exportID
	geojsonPath := filepath.Join(e.resultsDir, stem+".geojson")
	zipPath := filepath.Join(e.resultsDir, stem+".zip")
	shapefileDir := filepath.Join(e.resultsDir, stem+"_shp")

	cleanup := func() {
		os.Remove(geojsonPath)
		os.Remove(zipPath)
		os.RemoveAll(shapefileDir)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode zone geojson: %w", err)
	}
	if err := os.WriteFile(geojsonPath, data, 0644); err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to write zone geojson: %w", err)
	}

	if err := e.writeShapefileZip(geojsonPath, shapefileDir, stem, zipPath); err != nil {
		cleanup()
		return nil, err
	}
	os.RemoveAll(shapefileDir)

	return &ExportResult{
		ExportID:         exportID,
		GeoJSONPath:      geojsonPath,
		ShapefileZipPath: zipPath,
	}, nil
}

func (e *GDALExporter) writeShapefileZip(geojsonPath, shapefileDir, stem, zipPath string) error {
	if err := os.MkdirAll(shapefileDir, 0755); err != nil {
		return fmt.Errorf("failed to create shapefile directory: %w", err)
	}

	src, err := godal.Open(geojsonPath)
	if err != nil {
		return fmt.Errorf("failed to reopen zone geojson: %w", err)
	}
	defer src.Close()

	shapefilePath := filepath.Join(shapefileDir, stem+".shp")
	dst, err := src.VectorTranslate(shapefilePath, []string{"-f", "ESRI Shapefile"})
	if err != nil {
		return fmt.Errorf("failed to translate zones to shapefile: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to finalize shapefile: %w", err)
	}

	return zipDirectory(shapefileDir, zipPath)
}

// zipDirectory bundles every shapefile component (.shp, .shx, .dbf, .prj, ...)
// into one archive.
func zipDirectory(dir, zipPath string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	writer := zip.NewWriter(out)
	entries, err := os.ReadDir(dir)
	if err != nil {
		writer.Close()
		return fmt.Errorf("failed to list shapefile components: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := addFileToZip(writer, filepath.Join(dir, entry.Name()), entry.Name()); err != nil {
			writer.Close()
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

func addFileToZip(writer *zip.Writer, path, name string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	entry, err := writer.Create(name)
	if err != nil {
		return fmt.Errorf("failed to add %s to archive: %w", name, err)
	}
	if _, err := io.Copy(entry, file); err != nil {
		return fmt.Errorf("failed to compress %s: %w", name, err)
	}
	return nil
}
