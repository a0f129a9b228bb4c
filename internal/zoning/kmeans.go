package zoning

import (
	"math"
	"math/rand"
	"sort"
)

// Clustering must be reproducible run to run: agronomic reports are regenerated
// from the same imagery and have to agree. The seed is fixed and every source
// of randomness goes through one rng.
const (
	kmeansSeed     = 42
	kmeansRestarts = 10
	kmeansMaxIter  = 300
)

// fitKMeans runs 1-D k-means over scalar values with restarts, keeping the
// partition with the lowest inertia. Returned labels are raw cluster indexes
// in 0..k-1 with no ordering guarantee.
func fitKMeans(values []float64, k int) ([]float64, []int) {
	rng := rand.New(rand.NewSource(kmeansSeed))

	bestInertia := math.Inf(1)
	var bestCentroids []float64
	var bestLabels []int

	for restart := 0; restart < kmeansRestarts; restart++ {
		centroids := initialCentroids(rng, values, k)
		labels := make([]int, len(values))

		for iter := 0; iter < kmeansMaxIter; iter++ {
			changed := assignClusters(values, centroids, labels)
			moved := updateCentroids(values, centroids, labels)
			if !changed && !moved {
				break
			}
		}

		inertia := 0.0
		for i, v := range values {
			d := v - centroids[labels[i]]
			inertia += d * d
		}
		if inertia < bestInertia {
			bestInertia = inertia
			bestCentroids = append([]float64(nil), centroids...)
			bestLabels = append([]int(nil), labels...)
		}
	}

	return bestCentroids, bestLabels
}

// initialCentroids seeds clusters from distinct values so that k distinct
// input levels always yield k non-empty clusters.
func initialCentroids(rng *rand.Rand, values []float64, k int) []float64 {
	seen := make(map[float64]struct{}, len(values))
	distinct := make([]float64, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			distinct = append(distinct, v)
		}
	}
	// Map order is not stable; sort before shuffling to keep the rng stream
	// deterministic.
	sort.Float64s(distinct)
	rng.Shuffle(len(distinct), func(i, j int) {
		distinct[i], distinct[j] = distinct[j], distinct[i]
	})

	centroids := make([]float64, k)
	for i := 0; i < k; i++ {
		if i < len(distinct) {
			centroids[i] = distinct[i]
		} else {
			centroids[i] = values[rng.Intn(len(values))]
		}
	}
	return centroids
}

func assignClusters(values, centroids []float64, labels []int) bool {
	changed := false
	for i, v := range values {
		best := 0
		bestDist := math.Abs(v - centroids[0])
		for c := 1; c < len(centroids); c++ {
			if d := math.Abs(v - centroids[c]); d < bestDist {
				best = c
				bestDist = d
			}
		}
		if labels[i] != best {
			labels[i] = best
			changed = true
		}
	}
	return changed
}

func updateCentroids(values, centroids []float64, labels []int) bool {
	sums := make([]float64, len(centroids))
	counts := make([]int, len(centroids))
	for i, v := range values {
		sums[labels[i]] += v
		counts[labels[i]]++
	}

	moved := false
	for c := range centroids {
		if counts[c] == 0 {
			// Re-seed an empty cluster with the value farthest from its
			// current centroid so k clusters survive when the data allows it.
			centroids[c] = farthestValue(values, centroids, labels)
			moved = true
			continue
		}
		mean := sums[c] / float64(counts[c])
		if mean != centroids[c] {
			centroids[c] = mean
			moved = true
		}
	}
	return moved
}

func farthestValue(values, centroids []float64, labels []int) float64 {
	worst := values[0]
	worstDist := -1.0
	for i, v := range values {
		if d := math.Abs(v - centroids[labels[i]]); d > worstDist {
			worst = v
			worstDist = d
		}
	}
	return worst
}
