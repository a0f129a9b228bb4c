package zoning

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/agrolens/agrolens-api-poc/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridFrom(width, height int, values []float64) *raster.Grid {
	g := raster.NewGrid(width, height)
	copy(g.Data, values)
	g.GeoTransform = [6]float64{30, 0.001, 0, 50, 0, -0.001}
	return g
}

func TestCreateZonesFourBands(t *testing.T) {
	// Four distinct value bands, one per row, must map to zones 1..4 in value
	// order.
	grid := gridFrom(4, 4, []float64{
		0.1, 0.1, 0.1, 0.1,
		0.4, 0.4, 0.4, 0.4,
		0.7, 0.7, 0.7, 0.7,
		0.9, 0.9, 0.9, 0.9,
	})

	zones, err := CreateZones(grid, 4)
	require.NoError(t, err)

	for x := 0; x < 4; x++ {
		assert.Equal(t, 1, zones.At(x, 0))
		assert.Equal(t, 2, zones.At(x, 1))
		assert.Equal(t, 3, zones.At(x, 2))
		assert.Equal(t, 4, zones.At(x, 3))
	}

	stats, err := CalculateZoneStats(grid, zones, 4)
	require.NoError(t, err)
	require.Len(t, stats, 4)
	for zoneID := 1; zoneID <= 4; zoneID++ {
		assert.Equal(t, 4, stats[zoneID].PixelCount)
	}
	assert.InDelta(t, 0.1, stats[1].MeanIndex, 1e-9)
	assert.InDelta(t, 0.9, stats[4].MeanIndex, 1e-9)
}

func TestCreateZonesCanonicalOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	values := make([]float64, 400)
	for i := range values {
		values[i] = rng.Float64()*2 - 1
	}
	grid := gridFrom(20, 20, values)

	const k = 5
	zones, err := CreateZones(grid, k)
	require.NoError(t, err)

	stats, err := CalculateZoneStats(grid, zones, k)
	require.NoError(t, err)
	require.Len(t, stats, k, "expected %d non-empty zones", k)

	// Mean of zone i must not exceed mean of zone i+1.
	for zoneID := 1; zoneID < k; zoneID++ {
		assert.LessOrEqual(t, stats[zoneID].MeanIndex, stats[zoneID+1].MeanIndex)
	}
}

func TestCreateZonesDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	values := make([]float64, 100)
	for i := range values {
		values[i] = rng.Float64()
	}

	first, err := CreateZones(gridFrom(10, 10, values), 4)
	require.NoError(t, err)
	second, err := CreateZones(gridFrom(10, 10, values), 4)
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
}

func TestCreateZonesMaskedPixelsExcluded(t *testing.T) {
	nan := math.NaN()
	grid := gridFrom(3, 2, []float64{0.1, nan, 0.5, nan, 0.9, 0.1})

	zones, err := CreateZones(grid, 2)
	require.NoError(t, err)

	assert.Equal(t, ZoneNoData, zones.Data[1])
	assert.Equal(t, ZoneNoData, zones.Data[3])
	for _, idx := range []int{0, 2, 4, 5} {
		assert.GreaterOrEqual(t, zones.Data[idx], 1)
		assert.LessOrEqual(t, zones.Data[idx], 2)
	}
}

func TestCreateZonesInsufficientPixels(t *testing.T) {
	nan := math.NaN()
	grid := gridFrom(2, 2, []float64{0.5, nan, nan, nan})

	_, err := CreateZones(grid, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientPixels))
}

func TestCreateZonesCountOutOfRange(t *testing.T) {
	grid := gridFrom(2, 2, []float64{0.1, 0.2, 0.3, 0.4})

	_, err := CreateZones(grid, 0)
	assert.Error(t, err)
	_, err = CreateZones(grid, MaxZones+1)
	assert.Error(t, err)
}

func TestCreateZonesSingleZone(t *testing.T) {
	grid := gridFrom(2, 2, []float64{0.1, 0.2, 0.3, 0.4})

	zones, err := CreateZones(grid, 1)
	require.NoError(t, err)
	for _, v := range zones.Data {
		assert.Equal(t, 1, v)
	}
}

func TestZoneLabels(t *testing.T) {
	assert.Equal(t, "weak", ZoneLabel(1, 3))
	assert.Equal(t, "strong", ZoneLabel(3, 3))
	assert.Equal(t, "very weak", ZoneLabel(1, 4))
	assert.Equal(t, "strong", ZoneLabel(4, 4))
	assert.Equal(t, "very strong", ZoneLabel(5, 5))
	assert.Equal(t, "medium", ZoneLabel(3, 5))

	// No fixed table outside 3-5 zones.
	assert.Equal(t, "Zone 2", ZoneLabel(2, 7))
	assert.Equal(t, "Zone 1", ZoneLabel(1, 1))
}

func TestZoneStatsValues(t *testing.T) {
	grid := gridFrom(4, 1, []float64{0.1, 0.2, 0.8, 0.9})

	zones, err := CreateZones(grid, 2)
	require.NoError(t, err)
	stats, err := CalculateZoneStats(grid, zones, 2)
	require.NoError(t, err)

	require.Len(t, stats, 2)
	low := stats[1]
	assert.InDelta(t, 0.15, low.MeanIndex, 1e-9)
	assert.InDelta(t, 0.1, low.MinIndex, 1e-9)
	assert.InDelta(t, 0.2, low.MaxIndex, 1e-9)
	assert.InDelta(t, 0.05, low.StdIndex, 1e-9)
	assert.Equal(t, 2, low.PixelCount)
	assert.Equal(t, "Zone 1", low.Label)
}
