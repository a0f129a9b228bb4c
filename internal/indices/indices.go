package indices

import (
	"fmt"

	"github.com/agrolens/agrolens-api-poc/internal/raster"
)

// The calculators below are pure elementwise band math. A denominator of
// exactly zero yields 0 in the output cell, not NaN and not an error; the
// division is guarded per cell so no floating-point state survives the call.

// NDVI computes (NIR - RED) / (NIR + RED), clipped to [-1, 1].
func NDVI(red, nir *raster.Grid) (*raster.Grid, error) {
	if err := checkShapes(red, nir); err != nil {
		return nil, fmt.Errorf("ndvi: %w", err)
	}
	out := newResult(red)
	for i := range out.Data {
		out.Data[i] = clip(safeRatio(nir.Data[i]-red.Data[i], nir.Data[i]+red.Data[i]))
	}
	return out, nil
}

// EVI computes 2.5 * (NIR - RED) / (NIR + 6*RED - 7.5*BLUE + 1), clipped to
// [-1, 1].
func EVI(red, nir, blue *raster.Grid) (*raster.Grid, error) {
	if err := checkShapes(red, nir, blue); err != nil {
		return nil, fmt.Errorf("evi: %w", err)
	}
	out := newResult(red)
	for i := range out.Data {
		denominator := nir.Data[i] + 6*red.Data[i] - 7.5*blue.Data[i] + 1
		out.Data[i] = clip(safeRatio(2.5*(nir.Data[i]-red.Data[i]), denominator))
	}
	return out, nil
}

// PSRI computes (RED - GREEN) / NIR. Its natural range is narrower and
// asymmetric, so the result is left unclipped.
func PSRI(red, green, nir *raster.Grid) (*raster.Grid, error) {
	if err := checkShapes(red, green, nir); err != nil {
		return nil, fmt.Errorf("psri: %w", err)
	}
	out := newResult(red)
	for i := range out.Data {
		out.Data[i] = safeRatio(red.Data[i]-green.Data[i], nir.Data[i])
	}
	return out, nil
}

// NBR computes (NIR - SWIR2) / (NIR + SWIR2), clipped to [-1, 1].
func NBR(nir, swir2 *raster.Grid) (*raster.Grid, error) {
	if err := checkShapes(nir, swir2); err != nil {
		return nil, fmt.Errorf("nbr: %w", err)
	}
	out := newResult(nir)
	for i := range out.Data {
		out.Data[i] = clip(safeRatio(nir.Data[i]-swir2.Data[i], nir.Data[i]+swir2.Data[i]))
	}
	return out, nil
}

// NDSI computes (GREEN - SWIR1) / (GREEN + SWIR1), clipped to [-1, 1].
func NDSI(green, swir1 *raster.Grid) (*raster.Grid, error) {
	if err := checkShapes(green, swir1); err != nil {
		return nil, fmt.Errorf("ndsi: %w", err)
	}
	out := newResult(green)
	for i := range out.Data {
		out.Data[i] = clip(safeRatio(green.Data[i]-swir1.Data[i], green.Data[i]+swir1.Data[i]))
	}
	return out, nil
}

func safeRatio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func clip(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func newResult(ref *raster.Grid) *raster.Grid {
	out := raster.NewGrid(ref.Width, ref.Height)
	out.GeoTransform = ref.GeoTransform
	out.EPSG = ref.EPSG
	return out
}

func checkShapes(grids ...*raster.Grid) error {
	first := grids[0]
	for _, g := range grids[1:] {
		if !first.SameShape(g) {
			return fmt.Errorf("band shape mismatch: %dx%d vs %dx%d",
				first.Width, first.Height, g.Width, g.Height)
		}
	}
	return nil
}
