package sentinel

import (
	"fmt"
	"math"

	"github.com/agrolens/agrolens-api-poc/internal/raster"
)

// Sentinel-2 L2A scene classification codes.
const (
	SCLNoData          = 0
	SCLSaturated       = 1
	SCLDarkArea        = 2
	SCLCloudShadow     = 3
	SCLVegetation      = 4
	SCLNotVegetated    = 5
	SCLWater           = 6
	SCLUnclassified    = 7
	SCLCloudMediumProb = 8
	SCLCloudHighProb   = 9
	SCLThinCirrus      = 10
	SCLSnowIce         = 11
)

// IsValidSCL reports whether pixels of this classification carry usable
// surface reflectance. Everything else (no-data, saturated, dark area, cloud
// shadow, clouds, cirrus) gets masked.
func IsValidSCL(code int) bool {
	switch code {
	case SCLVegetation, SCLNotVegetated, SCLWater, SCLUnclassified, SCLSnowIce:
		return true
	default:
		return false
	}
}

// ApplyCloudMask returns a copy of the index raster with every pixel whose
// scene classification is unreliable replaced by NaN. When the SCL grid is
// coarser than the index raster it is resampled nearest-neighbor first; cells
// that survive the mask are numerically unchanged.
func ApplyCloudMask(index *raster.Grid, scl *raster.IntGrid) (*raster.Grid, error) {
	if index == nil || scl == nil {
		return nil, fmt.Errorf("apply cloud mask: nil raster")
	}
	if scl.Width != index.Width || scl.Height != index.Height {
		scl = raster.ResampleNearest(scl, index.Width, index.Height)
	}

	masked := index.Clone()
	for i, code := range scl.Data {
		if !IsValidSCL(code) {
			masked.Data[i] = math.NaN()
		}
	}
	return masked, nil
}
