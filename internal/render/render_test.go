package render

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/agrolens/agrolens-api-poc/internal/indices"
	"github.com/agrolens/agrolens-api-poc/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRamp(t *testing.T, stops ...indices.ColorStop) ramp {
	t.Helper()
	r, err := buildRamp(stops)
	require.NoError(t, err)
	return r
}

func TestBuildRampBadHex(t *testing.T) {
	_, err := buildRamp([]indices.ColorStop{{Position: 0, Hex: "not-a-color"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-color")
}

func TestRampClampsOutsideRange(t *testing.T) {
	r := testRamp(t,
		indices.ColorStop{Position: 0, Hex: "#000000"},
		indices.ColorStop{Position: 1, Hex: "#FFFFFF"},
	)

	// PSRI values run past the registry range, so positions outside [0, 1]
	// must clamp to the end stops.
	assert.Equal(t, r[0].color, r.at(-0.5))
	assert.Equal(t, r[1].color, r.at(1.5))
}

func TestRampMidpointBlend(t *testing.T) {
	r := testRamp(t,
		indices.ColorStop{Position: 0, Hex: "#000000"},
		indices.ColorStop{Position: 1, Hex: "#FFFFFF"},
	)

	mid := r.at(0.5)
	assert.InDelta(t, 0.5, mid.R, 1e-9)
	assert.InDelta(t, 0.5, mid.G, 1e-9)
	assert.InDelta(t, 0.5, mid.B, 1e-9)
}

func TestRampDuplicateStopPositions(t *testing.T) {
	r := testRamp(t,
		indices.ColorStop{Position: 0, Hex: "#FF0000"},
		indices.ColorStop{Position: 0.5, Hex: "#FFFF00"},
		indices.ColorStop{Position: 0.5, Hex: "#00FF00"},
		indices.ColorStop{Position: 1, Hex: "#0000FF"},
	)

	// The duplicated position must stay well-defined on both sides.
	assert.Equal(t, r[1].color, r.at(0.5))
	end := r.at(1.0)
	assert.InDelta(t, 1.0, end.B, 1e-9)
}

func TestRenderIndexPNGTransparentMask(t *testing.T) {
	grid := raster.NewGrid(2, 1)
	grid.Data = []float64{math.NaN(), 0.8}

	path := filepath.Join(t.TempDir(), "ndvi.png")
	require.NoError(t, RenderIndexPNG(grid, "NDVI", path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	img, err := png.Decode(file)
	require.NoError(t, err)

	_, _, _, maskedAlpha := img.At(0, 0).RGBA()
	assert.Zero(t, maskedAlpha, "masked pixels must stay transparent")
	_, _, _, validAlpha := img.At(1, 0).RGBA()
	assert.NotZero(t, validAlpha)
}

func TestRenderIndexPNGUnknownIndex(t *testing.T) {
	grid := raster.NewGrid(1, 1)
	err := RenderIndexPNG(grid, "SAVI", filepath.Join(t.TempDir(), "savi.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAVI")
}
