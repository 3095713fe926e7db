package pricing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDetectOutliers(t *testing.T) {
	for _, test := range []struct {
		name     string
		prices   []float64
		filtered []float64
		outliers []float64
	}{
		{
			name:     "high outlier is fenced",
			prices:   []float64{100, 102, 101, 103, 99, 100000},
			filtered: []float64{100, 102, 101, 103, 99},
			outliers: []float64{100000},
		},
		{
			name:     "small batches are kept whole",
			prices:   []float64{100, 100000, 5},
			filtered: []float64{100, 100000, 5},
		},
		{
			name:     "tight batch has no outliers",
			prices:   []float64{500, 505, 510, 495, 502},
			filtered: []float64{500, 505, 510, 495, 502},
		},
		{
			name:     "low outlier is fenced",
			prices:   []float64{1, 5000, 5100, 5200, 5300, 5250},
			filtered: []float64{5000, 5100, 5200, 5300, 5250},
			outliers: []float64{1},
		},
		{
			name: "empty batch",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := DetectOutliers(test.prices)
			require.Empty(t, cmp.Diff(test.filtered, got.Filtered))
			require.Empty(t, cmp.Diff(test.outliers, got.Outliers))
		})
	}
}

func TestDetectOutliersDoesNotMutateInput(t *testing.T) {
	prices := []float64{300, 100, 200, 400, 99999}
	DetectOutliers(prices)
	require.Equal(t, []float64{300, 100, 200, 400, 99999}, prices)
}

func TestDetectOutliersNeverEmptiesTheBatch(t *testing.T) {
	// The quartiles are sample points inside the inclusive fences, so
	// at least they survive fencing. The degenerate batches here pin
	// that invariant down for zero-IQR and extreme-spread inputs.
	for _, prices := range [][]float64{
		{1, 1, 1, 1},
		{0.1, 0.1, 0.1, 0.1, 0.1},
		{1, 1, 1, 1e12},
		{1e-9, 1e12, 1e12, 1e12, 1e12},
	} {
		got := DetectOutliers(prices)
		require.NotEmpty(t, got.Filtered, "prices %v", prices)
		require.Len(t, prices, len(got.Filtered)+len(got.Outliers))
	}
}

func TestAggregate(t *testing.T) {
	got := Aggregate([]float64{100, 102, 101, 103, 99, 100000})

	require.NotNil(t, got.Min)
	require.NotNil(t, got.Max)
	require.NotNil(t, got.Mean)
	require.Equal(t, float64(99), *got.Min)
	require.Equal(t, float64(103), *got.Max)
	require.Equal(t, float64(101), *got.Mean)
	require.Equal(t, 5, got.Considered)
	require.Equal(t, 1, got.OutliersRemoved)
}

func TestAggregateSmallBatchSkipsFencing(t *testing.T) {
	got := Aggregate([]float64{50, 100000})

	require.Equal(t, 2, got.Considered)
	require.Equal(t, 0, got.OutliersRemoved)
	require.Equal(t, float64(50), *got.Min)
	require.Equal(t, float64(100000), *got.Max)
}

func TestAggregateDiscardsNonPositive(t *testing.T) {
	got := Aggregate([]float64{0, -10, 500, 510})

	require.Equal(t, 2, got.Considered)
	require.Equal(t, float64(500), *got.Min)
	require.Equal(t, float64(510), *got.Max)
	require.Equal(t, float64(505), *got.Mean)
}

func TestAggregateEmptyBatch(t *testing.T) {
	for _, prices := range [][]float64{nil, {}, {0, -1}} {
		got := Aggregate(prices)
		require.Nil(t, got.Min)
		require.Nil(t, got.Max)
		require.Nil(t, got.Mean)
		require.Equal(t, 0, got.Considered)
		require.Equal(t, 0, got.OutliersRemoved)
	}
}
