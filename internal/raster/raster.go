package raster

import (
	"fmt"
	"math"
)

// Grid is a single-band 2D raster stored row-major. GeoTransform follows the
// GDAL convention: origin x, pixel width, row rotation, origin y, column
// rotation, pixel height (negative for north-up imagery).
type Grid struct {
	Data         []float64
	Width        int
	Height       int
	GeoTransform [6]float64
	EPSG         int
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		Data:   make([]float64, width*height),
		Width:  width,
		Height: height,
		EPSG:   4326,
	}
}

func (g *Grid) At(x, y int) float64 {
	return g.Data[y*g.Width+x]
}

func (g *Grid) Set(x, y int, value float64) {
	g.Data[y*g.Width+x] = value
}

func (g *Grid) Size() int {
	return g.Width * g.Height
}

func (g *Grid) SameShape(other *Grid) bool {
	return g.Width == other.Width && g.Height == other.Height
}

// Clone copies the grid, including its georeferencing.
func (g *Grid) Clone() *Grid {
	out := &Grid{
		Data:         make([]float64, len(g.Data)),
		Width:        g.Width,
		Height:       g.Height,
		GeoTransform: g.GeoTransform,
		EPSG:         g.EPSG,
	}
	copy(out.Data, g.Data)
	return out
}

// ValidValues returns every non-NaN cell value in row-major order.
func (g *Grid) ValidValues() []float64 {
	values := make([]float64, 0, len(g.Data))
	for _, v := range g.Data {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	return values
}

// PixelToLonLat converts pixel coordinates to the geographic coordinate of the
// cell center.
func (g *Grid) PixelToLonLat(x, y int) (float64, float64) {
	gt := g.GeoTransform
	lon := gt[0] + gt[1]*(float64(x)+0.5) + gt[2]*(float64(y)+0.5)
	lat := gt[3] + gt[4]*(float64(x)+0.5) + gt[5]*(float64(y)+0.5)
	return lon, lat
}

// CornerToLonLat converts a pixel corner lattice point (x in 0..Width,
// y in 0..Height) to geographic coordinates. Used when tracing cell edges.
func (g *Grid) CornerToLonLat(x, y int) (float64, float64) {
	gt := g.GeoTransform
	lon := gt[0] + gt[1]*float64(x) + gt[2]*float64(y)
	lat := gt[3] + gt[4]*float64(x) + gt[5]*float64(y)
	return lon, lat
}

// LonLatToPixel converts geographic coordinates to pixel coordinates, assuming
// an axis-aligned geotransform (no rotation terms).
func (g *Grid) LonLatToPixel(lon, lat float64) (int, int, error) {
	gt := g.GeoTransform
	if gt[1] == 0 || gt[5] == 0 {
		return 0, 0, fmt.Errorf("grid has no geotransform")
	}
	col := int(math.Floor((lon - gt[0]) / gt[1]))
	row := int(math.Floor((lat - gt[3]) / gt[5]))
	if col < 0 || col >= g.Width || row < 0 || row >= g.Height {
		return 0, 0, fmt.Errorf("coordinates (%f, %f) are out of image bounds", lon, lat)
	}
	return col, row, nil
}

// IntGrid is a 2D raster of small integer codes (scene classification,
// zone labels).
type IntGrid struct {
	Data         []int
	Width        int
	Height       int
	GeoTransform [6]float64
	EPSG         int
}

func NewIntGrid(width, height int) *IntGrid {
	return &IntGrid{
		Data:   make([]int, width*height),
		Width:  width,
		Height: height,
		EPSG:   4326,
	}
}

func (g *IntGrid) At(x, y int) int {
	return g.Data[y*g.Width+x]
}

func (g *IntGrid) Set(x, y int, value int) {
	g.Data[y*g.Width+x] = value
}

func (g *IntGrid) Size() int {
	return g.Width * g.Height
}

// Fill sets every cell to value.
func (g *IntGrid) Fill(value int) {
	for i := range g.Data {
		g.Data[i] = value
	}
}

// ResampleNearest resizes a categorical grid to the target shape using
// nearest-neighbor lookup with per-axis zoom factors target/source. Category
// codes are not numerically interpolable, so no smoothing is ever applied.
func ResampleNearest(src *IntGrid, width, height int) *IntGrid {
	out := NewIntGrid(width, height)
	out.GeoTransform = src.GeoTransform
	out.EPSG = src.EPSG
	zoomX := float64(width) / float64(src.Width)
	zoomY := float64(height) / float64(src.Height)
	for y := 0; y < height; y++ {
		srcY := int(float64(y) / zoomY)
		if srcY >= src.Height {
			srcY = src.Height - 1
		}
		for x := 0; x < width; x++ {
			srcX := int(float64(x) / zoomX)
			if srcX >= src.Width {
				srcX = src.Width - 1
			}
			out.Set(x, y, src.At(srcX, srcY))
		}
	}
	return out
}
