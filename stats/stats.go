package stats

import (
	"math"
	"sort"

	gonumstat "gonum.org/v1/gonum/stat"
)

// PercentileValue pairs a percentile in (0, 1] with the sample value at it.
type PercentileValue struct {
	P   float64
	Val float64
}

type AggregatedStatistics struct {
	Count       int
	Min         float64
	Max         float64
	Mean        float64
	Median      float64
	StdDev      float64
	Percentiles []PercentileValue
}

// DefaultPercentiles are reported when the caller doesn't ask for any.
var DefaultPercentiles = []float64{5, 25, 75, 95}

// Float64s widens a sample buffer of either precision for gonum.
func Float64s[F ~float32 | ~float64](samples []F) []float64 {
	widened := make([]float64, len(samples))
	for i, eachSample := range samples {
		widened[i] = float64(eachSample)
	}
	return widened
}

// StatsForSequence summarizes unsortedSamples. Percentiles may be given as
// fractions (0.95) or percentages (95). An empty sequence yields NaN
// aggregates.
func StatsForSequence(unsortedSamples []float64, percentiles []float64) *AggregatedStatistics {
	aggStats := &AggregatedStatistics{
		Count:       len(unsortedSamples),
		Percentiles: make([]PercentileValue, len(percentiles)),
	}
	if len(unsortedSamples) == 0 {
		nan := math.NaN()
		aggStats.Min, aggStats.Max = nan, nan
		aggStats.Mean, aggStats.Median, aggStats.StdDev = nan, nan, nan
		for eachPercentileIndex, eachPercentile := range percentiles {
			aggStats.Percentiles[eachPercentileIndex] = PercentileValue{
				P:   normalizePercentile(eachPercentile),
				Val: nan,
			}
		}
		return aggStats
	}
	sortedSamples := make([]float64, len(unsortedSamples))
	copy(sortedSamples, unsortedSamples)
	sort.Float64s(sortedSamples)

	// Compute aggregates...
	aggStats.Min = sortedSamples[0]
	aggStats.Max = sortedSamples[len(sortedSamples)-1]
	aggStats.Mean, aggStats.StdDev = gonumstat.MeanStdDev(sortedSamples, nil)
	aggStats.Median = gonumstat.Quantile(0.5, gonumstat.Empirical, sortedSamples, nil)

	for eachPercentileIndex := range percentiles {
		percentileValue := normalizePercentile(percentiles[eachPercentileIndex])
		aggStats.Percentiles[eachPercentileIndex] = PercentileValue{
			P: percentileValue,
			Val: gonumstat.Quantile(percentileValue,
				gonumstat.Empirical,
				sortedSamples,
				nil),
		}
	}
	return aggStats
}

func normalizePercentile(percentileValue float64) float64 {
	if percentileValue > 1.00 {
		percentileValue = percentileValue / 100
	}
	return percentileValue
}

// AcceptanceRate is the fraction of consecutive sample pairs that differ.
// Rejected proposals repeat the previous chain state, so for a single lane
// run this is the observed acceptance rate of the chain.
func AcceptanceRate(samples []float64) float64 {
	if len(samples) < 2 {
		return math.NaN()
	}
	moves := 0
	for i := 1; i < len(samples); i++ {
		if samples[i] != samples[i-1] {
			moves++
		}
	}
	return float64(moves) / float64(len(samples)-1)
}
