package sentinel

import (
	"fmt"

	"github.com/agrolens/agrolens-api-poc/internal/raster"
	"github.com/airbusgeo/godal"
)

// Band order in the GeoTIFFs produced by the process-API evalscript. Keep in
// sync with requestImage.
const (
	bandBlue  = 1 // B02
	bandGreen = 2 // B03
	bandRed   = 3 // B04
	bandNIR   = 4 // B08
	bandSWIR1 = 5 // B11
	bandSWIR2 = 6 // B12
	bandSCL   = 7 // SCL
)

// BandSet holds the co-registered spectral bands and scene classification of
// one acquisition, all on the same grid and geotransform.
type BandSet struct {
	Blue  *raster.Grid
	Green *raster.Grid
	Red   *raster.Grid
	NIR   *raster.Grid
	SWIR1 *raster.Grid
	SWIR2 *raster.Grid
	SCL   *raster.IntGrid
}

// ReadBandSet reads all pipeline bands from an acquisition GeoTIFF.
func ReadBandSet(path string) (*BandSet, error) {
	dataset, err := godal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer dataset.Close()

	read := func(index int) (*raster.Grid, error) {
		return raster.ReadBand(dataset, index)
	}

	set := &BandSet{}
	if set.Blue, err = read(bandBlue); err != nil {
		return nil, err
	}
	if set.Green, err = read(bandGreen); err != nil {
		return nil, err
	}
	if set.Red, err = read(bandRed); err != nil {
		return nil, err
	}
	if set.NIR, err = read(bandNIR); err != nil {
		return nil, err
	}
	if set.SWIR1, err = read(bandSWIR1); err != nil {
		return nil, err
	}
	if set.SWIR2, err = read(bandSWIR2); err != nil {
		return nil, err
	}
	if set.SCL, err = raster.ReadIntBand(dataset, bandSCL); err != nil {
		return nil, err
	}
	return set, nil
}
