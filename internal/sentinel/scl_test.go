package sentinel

import (
	"math"
	"testing"

	"github.com/agrolens/agrolens-api-poc/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexGrid(width, height int, value float64) *raster.Grid {
	g := raster.NewGrid(width, height)
	for i := range g.Data {
		g.Data[i] = value
	}
	return g
}

func sclGrid(width, height, code int) *raster.IntGrid {
	g := raster.NewIntGrid(width, height)
	g.Fill(code)
	return g
}

func TestIsValidSCL(t *testing.T) {
	valid := []int{SCLVegetation, SCLNotVegetated, SCLWater, SCLUnclassified, SCLSnowIce}
	for _, code := range valid {
		assert.True(t, IsValidSCL(code), "code %d", code)
	}

	masked := []int{SCLNoData, SCLSaturated, SCLDarkArea, SCLCloudShadow, SCLCloudMediumProb, SCLCloudHighProb, SCLThinCirrus}
	for _, code := range masked {
		assert.False(t, IsValidSCL(code), "code %d", code)
	}
}

func TestApplyCloudMaskAllMasked(t *testing.T) {
	masked, err := ApplyCloudMask(indexGrid(4, 4, 0.5), sclGrid(4, 4, SCLCloudHighProb))
	require.NoError(t, err)

	for _, v := range masked.Data {
		assert.True(t, math.IsNaN(v))
	}
}

func TestApplyCloudMaskAllValid(t *testing.T) {
	index := indexGrid(4, 4, 0.42)
	masked, err := ApplyCloudMask(index, sclGrid(4, 4, SCLVegetation))
	require.NoError(t, err)

	// No masked category: output equals the input exactly.
	assert.Equal(t, index.Data, masked.Data)
}

func TestApplyCloudMaskInputUntouched(t *testing.T) {
	index := indexGrid(2, 2, 0.3)
	_, err := ApplyCloudMask(index, sclGrid(2, 2, SCLCloudShadow))
	require.NoError(t, err)

	for _, v := range index.Data {
		assert.Equal(t, 0.3, v)
	}
}

func TestApplyCloudMaskMixed(t *testing.T) {
	index := indexGrid(2, 2, 0.7)
	scl := raster.NewIntGrid(2, 2)
	scl.Data = []int{SCLVegetation, SCLCloudMediumProb, SCLWater, SCLThinCirrus}

	masked, err := ApplyCloudMask(index, scl)
	require.NoError(t, err)

	assert.Equal(t, 0.7, masked.Data[0])
	assert.True(t, math.IsNaN(masked.Data[1]))
	assert.Equal(t, 0.7, masked.Data[2])
	assert.True(t, math.IsNaN(masked.Data[3]))
}

func TestApplyCloudMaskResamplesCoarserSCL(t *testing.T) {
	index := indexGrid(4, 4, 0.5)
	scl := raster.NewIntGrid(2, 2)
	scl.Data = []int{SCLVegetation, SCLCloudHighProb, SCLCloudHighProb, SCLVegetation}

	masked, err := ApplyCloudMask(index, scl)
	require.NoError(t, err)

	// Top-left and bottom-right 2x2 blocks stay, the other blocks are masked.
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			inValidBlock := (x < 2 && y < 2) || (x >= 2 && y >= 2)
			if inValidBlock {
				assert.Equal(t, 0.5, masked.At(x, y), "pixel (%d,%d)", x, y)
			} else {
				assert.True(t, math.IsNaN(masked.At(x, y)), "pixel (%d,%d)", x, y)
			}
		}
	}
}
