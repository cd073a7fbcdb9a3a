package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsForSequence(t *testing.T) {
	samples := []float64{5, 1, 4, 2, 3, 6, 8, 7, 10, 9}
	aggStats := StatsForSequence(samples, []float64{10, 0.5, 90})

	assert.Equal(t, 10, aggStats.Count)
	assert.Equal(t, 1.0, aggStats.Min)
	assert.Equal(t, 10.0, aggStats.Max)
	assert.InDelta(t, 5.5, aggStats.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(55.0/6), aggStats.StdDev, 1e-12)
	assert.Equal(t, 5.0, aggStats.Median)
	require.Len(t, aggStats.Percentiles, 3)
	assert.Equal(t, PercentileValue{P: 0.1, Val: 1}, aggStats.Percentiles[0])
	assert.Equal(t, PercentileValue{P: 0.5, Val: 5}, aggStats.Percentiles[1])
	assert.Equal(t, PercentileValue{P: 0.9, Val: 9}, aggStats.Percentiles[2])

	// The input isn't reordered.
	assert.Equal(t, 5.0, samples[0])
}

func TestStatsForEmptySequence(t *testing.T) {
	aggStats := StatsForSequence(nil, DefaultPercentiles)
	assert.Zero(t, aggStats.Count)
	assert.True(t, math.IsNaN(aggStats.Mean))
	assert.True(t, math.IsNaN(aggStats.Min))
	require.Len(t, aggStats.Percentiles, len(DefaultPercentiles))
	assert.Equal(t, 0.05, aggStats.Percentiles[0].P)
	assert.True(t, math.IsNaN(aggStats.Percentiles[0].Val))
}

func TestFloat64s(t *testing.T) {
	assert.Equal(t, []float64{0.5, -2}, Float64s([]float32{0.5, -2}))
	assert.Empty(t, Float64s([]float64{}))
}

func TestAcceptanceRate(t *testing.T) {
	assert.InDelta(t, 0.5, AcceptanceRate([]float64{0, 0, 1, 1, 2}), 1e-12)
	assert.Equal(t, 1.0, AcceptanceRate([]float64{1, 2}))
	assert.True(t, math.IsNaN(AcceptanceRate([]float64{1})))
}
