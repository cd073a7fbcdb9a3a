package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetropolisFixed(t *testing.T) {
	samples, err := MetropolisFixed(standardNormal[float32], -5, 5, &Params{Seed: 99}, discardLogger())
	require.NoError(t, err)
	assert.Len(t, samples, FixedSamples)
	requireWithin(t, samples[:], -5, 5)
}

func TestMetropolisFixedInvalidBounds(t *testing.T) {
	samples, err := MetropolisFixed(standardNormal[float64], 5, -5, nil, discardLogger())
	require.ErrorIs(t, err, ErrInvalidBounds)
	for _, eachSample := range samples {
		require.Zero(t, eachSample)
	}
}

func TestMetropolisN(t *testing.T) {
	samples, err := MetropolisN(standardNormal[float64], 0, 2, 1234, &Params{Seed: 5}, discardLogger())
	require.NoError(t, err)
	assert.Len(t, samples, 1234)
	requireWithin(t, samples, 0, 2)

	empty, emptyErr := MetropolisN(standardNormal[float64], 0, 2, -1, nil, discardLogger())
	require.NoError(t, emptyErr)
	assert.Empty(t, empty)

	invalid, invalidErr := MetropolisN(standardNormal[float64], 2, 2, 10, nil, discardLogger())
	require.ErrorIs(t, invalidErr, ErrInvalidBounds)
	assert.Equal(t, make([]float64, 10), invalid)
}
