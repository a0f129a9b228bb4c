package raster

import (
	"fmt"

	"github.com/airbusgeo/godal"
)

// ReadBand reads one band of a GeoTIFF into a Grid. Band indexes start at 1,
// following GDAL.
func ReadBand(dataset *godal.Dataset, bandIndex int) (*Grid, error) {
	bands := dataset.Bands()
	if bandIndex < 1 || bandIndex > len(bands) {
		return nil, fmt.Errorf("invalid band index %d, dataset has %d bands", bandIndex, len(bands))
	}
	band := bands[bandIndex-1]

	xSize := band.Structure().SizeX
	ySize := band.Structure().SizeY
	data := make([]float64, xSize*ySize)
	if err := band.Read(0, 0, data, xSize, ySize); err != nil {
		return nil, fmt.Errorf("failed to read band %d: %w", bandIndex, err)
	}

	grid := &Grid{
		Data:   data,
		Width:  xSize,
		Height: ySize,
		EPSG:   4326,
	}
	if gt, err := dataset.GeoTransform(); err == nil {
		grid.GeoTransform = gt
	}
	return grid, nil
}

// ReadIntBand reads one band and truncates the samples to integer codes.
func ReadIntBand(dataset *godal.Dataset, bandIndex int) (*IntGrid, error) {
	grid, err := ReadBand(dataset, bandIndex)
	if err != nil {
		return nil, err
	}
	out := NewIntGrid(grid.Width, grid.Height)
	out.GeoTransform = grid.GeoTransform
	out.EPSG = grid.EPSG
	for i, v := range grid.Data {
		out.Data[i] = int(v)
	}
	return out, nil
}

// WriteGeoTIFF persists a grid as a single-band float64 GeoTIFF. The zoning
// stage re-reads this file instead of recomputing the index.
func WriteGeoTIFF(grid *Grid, path string) error {
	ds, err := godal.Create(godal.GTiff, path, 1, godal.Float64, grid.Width, grid.Height)
	if err != nil {
		return fmt.Errorf("failed to create GeoTIFF %s: %w", path, err)
	}
	defer ds.Close()

	if err := ds.SetGeoTransform(grid.GeoTransform); err != nil {
		return fmt.Errorf("failed to set geotransform: %w", err)
	}
	sr, err := godal.NewSpatialRefFromEPSG(grid.EPSG)
	if err != nil {
		return fmt.Errorf("failed to create spatial ref for EPSG %d: %w", grid.EPSG, err)
	}
	defer sr.Close()
	if err := ds.SetSpatialRef(sr); err != nil {
		return fmt.Errorf("failed to set spatial ref: %w", err)
	}

	if err := ds.Bands()[0].Write(0, 0, grid.Data, grid.Width, grid.Height); err != nil {
		return fmt.Errorf("failed to write raster data: %w", err)
	}
	return nil
}

// ReadGeoTIFF opens a single-band GeoTIFF written by WriteGeoTIFF.
func ReadGeoTIFF(path string) (*Grid, error) {
	ds, err := godal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer ds.Close()
	return ReadBand(ds, 1)
}
