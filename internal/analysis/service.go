package analysis

import (
	"fmt"
	"path/filepath"

	"github.com/agrolens/agrolens-api-poc/internal/indices"
	"github.com/agrolens/agrolens-api-poc/internal/raster"
	"github.com/agrolens/agrolens-api-poc/internal/sentinel"
	"github.com/agrolens/agrolens-api-poc/internal/zoning"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// Service runs the vegetation index and management-zone pipeline. It holds no
// request state: each call owns its rasters, and concurrent invocations on
// one Service never interfere. Construct it with its collaborators instead of
// reaching for globals.
type Service struct {
	log        *zap.Logger
	exporter   zoning.Exporter
	resultsDir string
}

func NewService(log *zap.Logger, exporter zoning.Exporter, resultsDir string) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if exporter == nil {
		exporter = zoning.UnavailableExporter{}
	}
	return &Service{log: log, exporter: exporter, resultsDir: resultsDir}
}

// ProcessResult carries the masked index raster and its field summary.
type ProcessResult struct {
	Index  *raster.Grid
	Stats  *FieldStats
	Bounds [2][2]float64 // [[minLat, minLon], [maxLat, maxLon]]
}

// ComputeIndex evaluates one named vegetation index over a band set.
func ComputeIndex(name string, bands *sentinel.BandSet) (*raster.Grid, error) {
	switch name {
	case "NDVI":
		return indices.NDVI(bands.Red, bands.NIR)
	case "EVI":
		return indices.EVI(bands.Red, bands.NIR, bands.Blue)
	case "PSRI":
		return indices.PSRI(bands.Red, bands.Green, bands.NIR)
	case "NBR":
		return indices.NBR(bands.NIR, bands.SWIR2)
	case "NDSI":
		return indices.NDSI(bands.Green, bands.SWIR1)
	default:
		return nil, fmt.Errorf("unknown vegetation index %q", name)
	}
}

// ProcessField runs index computation, cloud masking and field statistics in
// sequence. extraIndices, when given, are computed and masked the same way
// and reduced to scalar summaries on the returned stats.
func (s *Service) ProcessField(bands *sentinel.BandSet, boundary orb.Polygon, captureDate, indexName string, extraIndices []string) (*ProcessResult, error) {
	s.log.Info("calculating index", zap.String("index", indexName))
	index, err := ComputeIndex(indexName, bands)
	if err != nil {
		return nil, err
	}

	s.log.Info("applying cloud mask")
	masked, err := sentinel.ApplyCloudMask(index, bands.SCL)
	if err != nil {
		return nil, err
	}

	s.log.Info("calculating statistics")
	fieldStats, err := CalculateStatistics(masked, boundary, captureDate)
	if err != nil {
		return nil, err
	}

	for _, extra := range extraIndices {
		if extra == indexName {
			continue
		}
		grid, err := ComputeIndex(extra, bands)
		if err != nil {
			return nil, err
		}
		maskedExtra, err := sentinel.ApplyCloudMask(grid, bands.SCL)
		if err != nil {
			return nil, err
		}
		if fieldStats.ExtraIndices == nil {
			fieldStats.ExtraIndices = make(map[string]IndexSummary)
		}
		fieldStats.ExtraIndices[extra] = SummarizeIndex(maskedExtra)
	}

	bound := boundary.Bound()
	return &ProcessResult{
		Index: masked,
		Stats: fieldStats,
		Bounds: [2][2]float64{
			{bound.Min.Y(), bound.Min.X()},
			{bound.Max.Y(), bound.Max.X()},
		},
	}, nil
}

// SaveIndexRaster persists a masked index raster so the zoning stage can rerun
// without recomputation. Returns the file path.
func (s *Service) SaveIndexRaster(index *raster.Grid, name string) (string, error) {
	path := filepath.Join(s.resultsDir, name+".tiff")
	if err := raster.WriteGeoTIFF(index, path); err != nil {
		return "", err
	}
	return path, nil
}

// ZoneResult is the outcome of one management-zone request.
type ZoneResult struct {
	NumZones  int                        `json:"num_zones"`
	Features  *geojson.FeatureCollection `json:"zone_geojson"`
	ZoneStats map[int]zoning.ZoneStat    `json:"zone_statistics"`
	Export    *zoning.ExportResult       `json:"export"`
}

// CreateManagementZones clusters the masked index raster into numZones ordered
// zones, vectorizes them and exports the dissolved features. Export failure
// fails the whole request.
func (s *Service) CreateManagementZones(masked *raster.Grid, numZones int, exportID string) (*ZoneResult, error) {
	s.log.Info("creating management zones", zap.Int("num_zones", numZones))

	zones, err := zoning.CreateZones(masked, numZones)
	if err != nil {
		return nil, err
	}

	zoneStats, err := zoning.CalculateZoneStats(masked, zones, numZones)
	if err != nil {
		return nil, err
	}

	s.log.Info("vectorizing zones")
	features, err := zoning.VectorizeZones(zones, numZones, zoneStats)
	if err != nil {
		return nil, err
	}

	export, err := s.exporter.ExportZones(features, exportID)
	if err != nil {
		return nil, fmt.Errorf("zone export failed: %w", err)
	}
	s.log.Info("exported zones",
		zap.String("geojson", export.GeoJSONPath),
		zap.String("shapefile_zip", export.ShapefileZipPath))

	return &ZoneResult{
		NumZones:  numZones,
		Features:  features,
		ZoneStats: zoneStats,
		Export:    export,
	}, nil
}

// CreateManagementZonesFromFile reruns zoning from a previously persisted
// index raster.
func (s *Service) CreateManagementZonesFromFile(path string, numZones int, exportID string) (*ZoneResult, error) {
	masked, err := raster.ReadGeoTIFF(path)
	if err != nil {
		return nil, err
	}
	return s.CreateManagementZones(masked, numZones, exportID)
}
