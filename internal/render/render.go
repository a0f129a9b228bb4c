package render

import (
	"fmt"
	"math"

	"github.com/agrolens/agrolens-api-poc/internal/indices"
	"github.com/agrolens/agrolens-api-poc/internal/raster"
	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
)

// RenderIndexPNG paints a masked index raster through the colormap of the
// named index and saves it as a PNG. Masked pixels stay transparent so the
// image can be overlaid on a map.
func RenderIndexPNG(masked *raster.Grid, indexName, outputPath string) error {
	info, ok := indices.Lookup(indexName)
	if !ok {
		return fmt.Errorf("unknown vegetation index %q", indexName)
	}
	ramp, err := buildRamp(info.Colormap)
	if err != nil {
		return fmt.Errorf("colormap for %s: %w", indexName, err)
	}

	dc := gg.NewContext(masked.Width, masked.Height)
	span := info.Max - info.Min
	for y := 0; y < masked.Height; y++ {
		for x := 0; x < masked.Width; x++ {
			value := masked.At(x, y)
			if math.IsNaN(value) {
				continue
			}
			t := (value - info.Min) / span
			c := ramp.at(t)
			dc.SetRGB(c.R, c.G, c.B)
			dc.SetPixel(x, y)
		}
	}

	if err := dc.SavePNG(outputPath); err != nil {
		return fmt.Errorf("failed to save index image: %w", err)
	}
	return nil
}

type rampStop struct {
	position float64
	color    colorful.Color
}

type ramp []rampStop

func buildRamp(stops []indices.ColorStop) (ramp, error) {
	out := make(ramp, 0, len(stops))
	for _, stop := range stops {
		c, err := colorful.Hex(stop.Hex)
		if err != nil {
			return nil, fmt.Errorf("bad color stop %q: %w", stop.Hex, err)
		}
		out = append(out, rampStop{position: stop.Position, color: c})
	}
	return out, nil
}

// at interpolates the ramp at a normalized position, clamping outside [0, 1].
func (r ramp) at(t float64) colorful.Color {
	if t <= r[0].position {
		return r[0].color
	}
	last := r[len(r)-1]
	if t >= last.position {
		return last.color
	}
	for i := 0; i < len(r)-1; i++ {
		a, b := r[i], r[i+1]
		if t <= b.position {
			span := b.position - a.position
			if span == 0 {
				return b.color
			}
			return a.color.BlendRgb(b.color, (t-a.position)/span)
		}
	}
	return last.color
}
