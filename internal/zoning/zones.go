package zoning

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/agrolens/agrolens-api-poc/internal/raster"
	"github.com/montanaflynn/stats"
)

// ZoneNoData marks masked or invalid pixels in a zone-label raster. It is
// outside the 1..K zone id range by construction.
const ZoneNoData = -9999

// MaxZones bounds the supported zone count; 3-5 zones is the usual request.
const MaxZones = 10

// ErrInsufficientPixels signals that the masked raster does not carry enough
// valid pixels to form the requested number of zones.
var ErrInsufficientPixels = errors.New("not enough valid pixels for the requested zone count")

// CreateZones clusters the valid pixels of a quality-masked index raster into
// numZones groups and paints a zone-label raster. Zone ids are canonical:
// zone 1 holds the lowest index values (weakest vegetation), zone numZones the
// highest. Masked pixels never participate and hold ZoneNoData in the output.
func CreateZones(index *raster.Grid, numZones int) (*raster.IntGrid, error) {
	if numZones < 1 || numZones > MaxZones {
		return nil, fmt.Errorf("zone count must be between 1 and %d, got %d", MaxZones, numZones)
	}

	positions := make([]int, 0, len(index.Data))
	values := make([]float64, 0, len(index.Data))
	for i, v := range index.Data {
		if !math.IsNaN(v) && v >= -1 && v <= 1 {
			positions = append(positions, i)
			values = append(values, v)
		}
	}
	if len(values) < numZones {
		return nil, fmt.Errorf("%w: %d valid pixels, %d zones requested", ErrInsufficientPixels, len(values), numZones)
	}

	centroids, labels := fitKMeans(values, numZones)

	// Raw cluster ids are arbitrary; remap so that ascending zone id tracks
	// ascending centroid value.
	order := make([]int, len(centroids))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return centroids[order[a]] < centroids[order[b]]
	})
	zoneOf := make([]int, len(centroids))
	for rank, cluster := range order {
		zoneOf[cluster] = rank + 1
	}

	zones := raster.NewIntGrid(index.Width, index.Height)
	zones.GeoTransform = index.GeoTransform
	zones.EPSG = index.EPSG
	zones.Fill(ZoneNoData)
	for i, pos := range positions {
		zones.Data[pos] = zoneOf[labels[i]]
	}
	return zones, nil
}

// ZoneStat summarizes the quality-masked index values belonging to one zone.
type ZoneStat struct {
	ZoneID     int     `json:"zone_id" csv:"zone_id"`
	Label      string  `json:"label" csv:"label"`
	MeanIndex  float64 `json:"mean_index" csv:"mean_index"`
	MinIndex   float64 `json:"min_index" csv:"min_index"`
	MaxIndex   float64 `json:"max_index" csv:"max_index"`
	StdIndex   float64 `json:"std_index" csv:"std_index"`
	PixelCount int     `json:"pixel_count" csv:"pixel_count"`
}

// CalculateZoneStats reduces the index values of each zone to
// mean/min/max/std/count.
func CalculateZoneStats(index *raster.Grid, zones *raster.IntGrid, numZones int) (map[int]ZoneStat, error) {
	if index.Width != zones.Width || index.Height != zones.Height {
		return nil, fmt.Errorf("zone raster shape %dx%d does not match index raster %dx%d",
			zones.Width, zones.Height, index.Width, index.Height)
	}

	grouped := make(map[int][]float64, numZones)
	for i, zone := range zones.Data {
		if zone == ZoneNoData {
			continue
		}
		if v := index.Data[i]; !math.IsNaN(v) {
			grouped[zone] = append(grouped[zone], v)
		}
	}

	result := make(map[int]ZoneStat, numZones)
	for zoneID := 1; zoneID <= numZones; zoneID++ {
		values := grouped[zoneID]
		if len(values) == 0 {
			continue
		}
		data := stats.Float64Data(values)
		mean, err := data.Mean()
		if err != nil {
			return nil, fmt.Errorf("zone %d statistics: %w", zoneID, err)
		}
		min, _ := data.Min()
		max, _ := data.Max()
		std, _ := data.StandardDeviation()
		result[zoneID] = ZoneStat{
			ZoneID:     zoneID,
			Label:      ZoneLabel(zoneID, numZones),
			MeanIndex:  mean,
			MinIndex:   min,
			MaxIndex:   max,
			StdIndex:   std,
			PixelCount: len(values),
		}
	}
	return result, nil
}

// ZoneLabel names a zone for reports. Zone 1 is always the weakest vegetation,
// zone numZones the strongest; zone counts without a fixed table fall back to
// a generic label.
func ZoneLabel(zoneID, numZones int) string {
	switch numZones {
	case 3:
		switch zoneID {
		case 1:
			return "weak"
		case 2:
			return "medium"
		case 3:
			return "strong"
		}
	case 4:
		switch zoneID {
		case 1:
			return "very weak"
		case 2:
			return "weak"
		case 3:
			return "medium"
		case 4:
			return "strong"
		}
	case 5:
		switch zoneID {
		case 1:
			return "very weak"
		case 2:
			return "weak"
		case 3:
			return "medium"
		case 4:
			return "strong"
		case 5:
			return "very strong"
		}
	}
	return fmt.Sprintf("Zone %d", zoneID)
}
