package analysis

import (
	"fmt"
	"math"

	"github.com/agrolens/agrolens-api-poc/internal/raster"
	"github.com/agrolens/agrolens-api-poc/internal/sentinel"
	"github.com/montanaflynn/stats"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Planar degrees are converted to meters with a fixed linear factor. This is a
// first-order approximation that ignores the latitude-dependent longitude
// scale; it is acceptable at field scale and documented as a limitation, not
// something to silently correct.
const degreesToMeters = 111320.0

// Histogram bucket edges for the default low/medium/high report split.
const (
	lowZoneEdge  = 0.3
	highZoneEdge = 0.6
)

// IndexSummary reduces one additional index raster to scalar statistics.
type IndexSummary struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Std  float64 `json:"std"`
}

// FieldStats is the field-level summary of one masked index raster.
type FieldStats struct {
	AreaHa               float64                 `json:"area_ha"`
	MeanIndex            float64                 `json:"mean_index"`
	CaptureDate          string                  `json:"capture_date"`
	CloudCoveragePercent float64                 `json:"cloud_coverage_percent"`
	ValidPixelsPercent   float64                 `json:"valid_pixels_percent"`
	ZonesPercent         map[string]float64      `json:"zones_percent"`
	ExtraIndices         map[string]IndexSummary `json:"extra_indices,omitempty"`
}

// CalculateStatistics reduces a quality-masked index raster and the field
// boundary to FieldStats. Zero valid pixels is a defined edge case: every
// derived mean and percentage degrades to 0.0 instead of failing.
func CalculateStatistics(masked *raster.Grid, boundary orb.Polygon, captureDate string) (*FieldStats, error) {
	if err := sentinel.ValidateBoundary(boundary); err != nil {
		return nil, err
	}

	areaHa := math.Abs(planar.Area(boundary)) * degreesToMeters * degreesToMeters / 10_000

	totalPixels := masked.Size()
	if totalPixels == 0 {
		return nil, fmt.Errorf("index raster is empty")
	}
	valid := masked.ValidValues()
	validPixels := len(valid)

	meanIndex := 0.0
	if validPixels > 0 {
		meanIndex, _ = stats.Mean(stats.Float64Data(valid))
	}

	cloudCoverage := float64(totalPixels-validPixels) / float64(totalPixels) * 100

	var low, medium, high float64
	if validPixels > 0 {
		var lowCount, mediumCount, highCount int
		for _, v := range valid {
			switch {
			case v < lowZoneEdge:
				lowCount++
			case v < highZoneEdge:
				mediumCount++
			default:
				highCount++
			}
		}
		low = float64(lowCount) / float64(validPixels) * 100
		medium = float64(mediumCount) / float64(validPixels) * 100
		high = float64(highCount) / float64(validPixels) * 100
	}

	return &FieldStats{
		AreaHa:               round(areaHa, 2),
		MeanIndex:            round(meanIndex, 3),
		CaptureDate:          captureDate,
		CloudCoveragePercent: round(cloudCoverage, 1),
		ValidPixelsPercent:   round(100-cloudCoverage, 1),
		ZonesPercent: map[string]float64{
			"low (<0.3)":       round(low, 1),
			"medium (0.3-0.6)": round(medium, 1),
			"high (>0.6)":      round(high, 1),
		},
	}, nil
}

// SummarizeIndex reduces a masked index raster to mean/min/max/std over its
// valid pixels; all zeros when nothing is valid.
func SummarizeIndex(masked *raster.Grid) IndexSummary {
	valid := masked.ValidValues()
	if len(valid) == 0 {
		return IndexSummary{}
	}
	data := stats.Float64Data(valid)
	mean, _ := data.Mean()
	min, _ := data.Min()
	max, _ := data.Max()
	std, _ := data.StandardDeviation()
	return IndexSummary{
		Mean: round(mean, 3),
		Min:  round(min, 3),
		Max:  round(max, 3),
		Std:  round(std, 3),
	}
}

func round(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
