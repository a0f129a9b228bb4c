package sentinel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agrolens/agrolens-api-poc/internal/properties"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ValidateBoundary enforces the field boundary contract: a lon/lat polygon
// whose outer ring has at least 3 distinct vertices. Interior rings are not
// supported; only the first ring is ever used.
func ValidateBoundary(boundary orb.Polygon) error {
	if len(boundary) == 0 {
		return errors.New("field boundary has no rings")
	}
	ring := boundary[0]
	// A closed ring repeats its first point, so 4 points = 3 vertices.
	distinct := len(ring)
	if distinct > 1 && ring[0] == ring[len(ring)-1] {
		distinct--
	}
	if distinct < 3 {
		return fmt.Errorf("field boundary ring needs at least 3 vertices, got %d", distinct)
	}
	if _, area := planar.CentroidArea(boundary); area == 0 {
		return errors.New("field boundary ring is degenerate")
	}
	return nil
}

// GetBoundaryFromGeoJSON loads the boundary polygon for one field from the
// farm's GeoJSON file, matched on the field_id feature property.
func GetBoundaryFromGeoJSON(farm, fieldID string) (orb.Polygon, error) {
	filePath := filepath.Join(properties.GeojsonsPath(), farm+".geojson")
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read farm geojson: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse farm geojson: %w", err)
	}

	for _, feature := range fc.Features {
		id, ok := feature.Properties["field_id"].(string)
		if !ok || id != fieldID {
			continue
		}
		switch geom := feature.Geometry.(type) {
		case orb.Polygon:
			if err := ValidateBoundary(geom); err != nil {
				return nil, err
			}
			// First ring only, holes are not supported.
			return orb.Polygon{geom[0]}, nil
		case orb.MultiPolygon:
			if len(geom) == 0 {
				return nil, errors.New("empty multipolygon boundary")
			}
			poly := orb.Polygon{geom[0][0]}
			if err := ValidateBoundary(poly); err != nil {
				return nil, err
			}
			return poly, nil
		default:
			return nil, fmt.Errorf("unsupported boundary geometry %T", feature.Geometry)
		}
	}

	return nil, fmt.Errorf("boundary not found for farm %s and field %s", farm, fieldID)
}

// ListFieldIDs returns every field_id present in the farm's GeoJSON file.
func ListFieldIDs(farm string) ([]string, error) {
	filePath := filepath.Join(properties.GeojsonsPath(), farm+".geojson")
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read farm geojson: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse farm geojson: %w", err)
	}

	var ids []string
	for _, feature := range fc.Features {
		if id, ok := feature.Properties["field_id"].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// GetCentroidLatitudeLongitude returns the centroid of a boundary polygon.
func GetCentroidLatitudeLongitude(boundary orb.Polygon) (float64, float64, error) {
	centroid, area := planar.CentroidArea(boundary)
	if area <= 0 {
		return 0, 0, errors.New("error getting centroid")
	}
	return centroid.Y(), centroid.X(), nil
}
