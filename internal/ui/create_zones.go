package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agrolens/agrolens-api-poc/internal/analysis"
	"github.com/agrolens/agrolens-api-poc/internal/indices"
	"github.com/agrolens/agrolens-api-poc/internal/properties"
	"github.com/agrolens/agrolens-api-poc/internal/zoning"
)

// CreateZones clusters a previously analyzed field into management zones and
// exports the dissolved polygons.
func (u *UI) CreateZones() {
	PrintWarning("Zones are computed from a quality-masked index raster.\nAnalyze the field first, or the raster will be computed now.")

	farm := ReadString("Enter the farm name: ")
	fieldID := ReadString("Enter the field id: ")
	date := ReadDate("Enter the analyzed date (YYYY-MM-DD): ")
	indexName := ChooseOption("Choose the vegetation index: ", indices.Names())
	numZones := ReadInt(fmt.Sprintf("Enter the number of zones (1-%d, typically 3-5): ", zoning.MaxZones))

	stem := fmt.Sprintf("%s_%s_%s_%s", farm, fieldID, indexName, date.Format("2006-01-02"))
	rasterPath := filepath.Join(properties.ResultsPath(), stem+".tiff")
	if _, err := os.Stat(rasterPath); err != nil {
		PrintInfo("No persisted raster found, running the analysis first...\n")
		if _, err := u.analyzeField(farm, fieldID, date, indexName); err != nil {
			PrintError(fmt.Sprintf("Error analyzing field: %s", err.Error()))
			return
		}
	}

	result, err := u.service.CreateManagementZonesFromFile(rasterPath, numZones, "")
	if err != nil {
		PrintError(fmt.Sprintf("Error creating management zones: %s", err.Error()))
		return
	}

	reportPath := filepath.Join(properties.ResultsPath(), fmt.Sprintf("zones_%s_stats.csv", result.Export.ExportID))
	if err := zoning.WriteZoneStatsCSV(result.ZoneStats, reportPath); err != nil {
		PrintError(fmt.Sprintf("Error writing zone report: %s", err.Error()))
		return
	}

	PrintSuccess(fmt.Sprintf("Field divided into %d management zones", result.NumZones))
	printZoneStats(result)
	fmt.Printf("%sGeoJSON:   %s%s\n", ColorGreen, result.Export.GeoJSONPath, ColorReset)
	fmt.Printf("%sShapefile: %s%s\n", ColorGreen, result.Export.ShapefileZipPath, ColorReset)
	fmt.Printf("%sReport:    %s%s\n", ColorGreen, reportPath, ColorReset)
}

func printZoneStats(result *analysis.ZoneResult) {
	for zoneID := 1; zoneID <= result.NumZones; zoneID++ {
		stat, ok := result.ZoneStats[zoneID]
		if !ok {
			continue
		}
		fmt.Printf("%sZone %d (%s): mean %.3f, range [%.3f, %.3f], %d pixels%s\n",
			ColorGreen, stat.ZoneID, stat.Label, stat.MeanIndex, stat.MinIndex, stat.MaxIndex, stat.PixelCount, ColorReset)
	}
}
