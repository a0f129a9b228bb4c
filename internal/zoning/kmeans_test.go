package zoning

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitKMeansWellSeparated(t *testing.T) {
	values := []float64{0.1, 0.11, 0.09, 0.5, 0.51, 0.49, 0.9, 0.91, 0.89}

	centroids, labels := fitKMeans(values, 3)
	require.Len(t, centroids, 3)
	require.Len(t, labels, len(values))

	sorted := append([]float64(nil), centroids...)
	sort.Float64s(sorted)
	assert.InDelta(t, 0.1, sorted[0], 1e-9)
	assert.InDelta(t, 0.5, sorted[1], 1e-9)
	assert.InDelta(t, 0.9, sorted[2], 1e-9)

	// Values of one level must share a label.
	assert.Equal(t, labels[0], labels[1])
	assert.Equal(t, labels[0], labels[2])
	assert.Equal(t, labels[3], labels[4])
	assert.Equal(t, labels[6], labels[8])
	assert.NotEqual(t, labels[0], labels[3])
	assert.NotEqual(t, labels[3], labels[6])
}

func TestFitKMeansDeterministic(t *testing.T) {
	values := []float64{0.2, 0.8, 0.35, 0.6, 0.1, 0.95, 0.4, 0.7}

	c1, l1 := fitKMeans(values, 3)
	c2, l2 := fitKMeans(values, 3)
	assert.Equal(t, c1, c2)
	assert.Equal(t, l1, l2)
}

func TestFitKMeansDistinctLevelsSurvive(t *testing.T) {
	// With exactly k distinct levels every cluster must end non-empty.
	values := []float64{0.1, 0.1, 0.1, 0.4, 0.4, 0.7, 0.7, 0.7, 0.7}

	_, labels := fitKMeans(values, 3)
	seen := make(map[int]struct{})
	for _, label := range labels {
		seen[label] = struct{}{}
	}
	assert.Len(t, seen, 3)
}
