package zoning

import (
	"fmt"

	"github.com/agrolens/agrolens-api-poc/internal/raster"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// VectorizeZones converts a zone-label raster into one dissolved polygon
// feature per zone id. All raster regions sharing a zone id end up in a single
// (multi-)polygon feature, so downstream VRA tooling sees exactly numZones
// features. Coordinates come out in the raster's CRS via its geotransform.
func VectorizeZones(zones *raster.IntGrid, numZones int, zoneStats map[int]ZoneStat) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()

	for zoneID := 1; zoneID <= numZones; zoneID++ {
		stat, ok := zoneStats[zoneID]
		if !ok {
			continue
		}

		var multi orb.MultiPolygon
		for _, component := range connectedComponents(zones, zoneID) {
			polygon, err := tracePolygon(zones, component)
			if err != nil {
				return nil, fmt.Errorf("zone %d: %w", zoneID, err)
			}
			multi = append(multi, polygon)
		}
		if len(multi) == 0 {
			continue
		}

		var geometry orb.Geometry = multi
		if len(multi) == 1 {
			geometry = multi[0]
		}
		feature := geojson.NewFeature(geometry)
		feature.Properties = geojson.Properties{
			"zone_id":     zoneID,
			"mean_index":  stat.MeanIndex,
			"pixel_count": stat.PixelCount,
			"label":       stat.Label,
		}
		fc.Append(feature)
	}

	return fc, nil
}

// connectedComponents finds the 4-connected pixel regions holding zoneID,
// in deterministic row-major discovery order.
func connectedComponents(zones *raster.IntGrid, zoneID int) [][]int {
	visited := make([]bool, len(zones.Data))
	var components [][]int

	for start, zone := range zones.Data {
		if zone != zoneID || visited[start] {
			continue
		}
		var component []int
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			component = append(component, idx)

			x := idx % zones.Width
			y := idx / zones.Width
			for _, n := range [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
				nx, ny := n[0], n[1]
				if nx < 0 || nx >= zones.Width || ny < 0 || ny >= zones.Height {
					continue
				}
				nidx := ny*zones.Width + nx
				if !visited[nidx] && zones.Data[nidx] == zoneID {
					visited[nidx] = true
					queue = append(queue, nidx)
				}
			}
		}
		components = append(components, component)
	}
	return components
}

type lattice struct{ x, y int }

type edge struct{ from, to lattice }

// tracePolygon builds the polygon of one connected component by walking its
// pixel-edge boundary. Edges are oriented so the component interior stays on
// a fixed side, which makes the exterior ring and any hole rings come out with
// opposite winding; the ring with positive lattice area is the exterior.
func tracePolygon(zones *raster.IntGrid, component []int) (orb.Polygon, error) {
	member := make(map[int]struct{}, len(component))
	for _, idx := range component {
		member[idx] = struct{}{}
	}
	inside := func(x, y int) bool {
		if x < 0 || x >= zones.Width || y < 0 || y >= zones.Height {
			return false
		}
		_, ok := member[y*zones.Width+x]
		return ok
	}

	// Boundary edges in row-major cell order keeps ring starts deterministic.
	var edges []edge
	for _, idx := range component {
		x := idx % zones.Width
		y := idx / zones.Width
		if !inside(x, y-1) {
			edges = append(edges, edge{lattice{x, y}, lattice{x + 1, y}})
		}
		if !inside(x+1, y) {
			edges = append(edges, edge{lattice{x + 1, y}, lattice{x + 1, y + 1}})
		}
		if !inside(x, y+1) {
			edges = append(edges, edge{lattice{x + 1, y + 1}, lattice{x, y + 1}})
		}
		if !inside(x-1, y) {
			edges = append(edges, edge{lattice{x, y + 1}, lattice{x, y}})
		}
	}

	outgoing := make(map[lattice][]int)
	used := make([]bool, len(edges))
	for i, e := range edges {
		outgoing[e.from] = append(outgoing[e.from], i)
	}

	var rings [][]lattice
	for i := range edges {
		if used[i] {
			continue
		}
		ring, err := walkRing(edges, outgoing, used, i)
		if err != nil {
			return nil, err
		}
		rings = append(rings, ring)
	}

	var exterior []lattice
	var holes [][]lattice
	for _, ring := range rings {
		if latticeArea(ring) > 0 {
			if exterior != nil {
				return nil, fmt.Errorf("component produced %d exterior rings", len(rings))
			}
			exterior = ring
		} else {
			holes = append(holes, ring)
		}
	}
	if exterior == nil {
		return nil, fmt.Errorf("component produced no exterior ring")
	}

	polygon := orb.Polygon{toRing(zones, exterior)}
	for _, hole := range holes {
		polygon = append(polygon, toRing(zones, hole))
	}
	return polygon, nil
}

// walkRing follows edges end to start until the ring closes. Where two
// component cells touch only at a corner, several outgoing edges share the
// point; hugging the interior (turn toward it first) keeps each ring simple.
func walkRing(edges []edge, outgoing map[lattice][]int, used []bool, start int) ([]lattice, error) {
	first := edges[start]
	used[start] = true
	points := []lattice{first.from}
	current := first

	for current.to != first.from {
		points = append(points, current.to)
		dx := current.to.x - current.from.x
		dy := current.to.y - current.from.y

		// Candidate directions by priority: toward the interior, straight on,
		// away from the interior.
		next := -1
		for _, dir := range [3][2]int{{-dy, dx}, {dx, dy}, {dy, -dx}} {
			target := lattice{current.to.x + dir[0], current.to.y + dir[1]}
			for _, idx := range outgoing[current.to] {
				if !used[idx] && edges[idx].to == target {
					next = idx
					break
				}
			}
			if next >= 0 {
				break
			}
		}
		if next < 0 {
			return nil, fmt.Errorf("open boundary at lattice point (%d, %d)", current.to.x, current.to.y)
		}
		used[next] = true
		current = edges[next]
	}

	return points, nil
}

// latticeArea is the shoelace sum over a lattice ring; positive for exterior
// rings with the edge orientation used above, negative for holes.
func latticeArea(ring []lattice) int {
	sum := 0
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		sum += p.x*q.y - q.x*p.y
	}
	return sum
}

// toRing converts lattice points to a closed geographic ring, collapsing
// collinear run-of-edge points.
func toRing(zones *raster.IntGrid, points []lattice) orb.Ring {
	simplified := make([]lattice, 0, len(points))
	n := len(points)
	for i, p := range points {
		prev := points[(i-1+n)%n]
		next := points[(i+1)%n]
		// Drop p when prev->p->next continues in the same axis direction.
		if (p.x-prev.x)*(next.y-p.y) == (p.y-prev.y)*(next.x-p.x) {
			continue
		}
		simplified = append(simplified, p)
	}

	grid := raster.Grid{GeoTransform: zones.GeoTransform, Width: zones.Width, Height: zones.Height}
	ring := make(orb.Ring, 0, len(simplified)+1)
	for _, p := range simplified {
		lon, lat := grid.CornerToLonLat(p.x, p.y)
		ring = append(ring, orb.Point{lon, lat})
	}
	ring = append(ring, ring[0])
	return ring
}
