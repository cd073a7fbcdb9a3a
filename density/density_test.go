package density

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/mweagle/gometropolis/sampling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/integrate/quad"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestParseCatalogue(t *testing.T) {
	tests := []struct {
		expression string
		name       string
		mean       float64
		lower      float64
		upper      float64
	}{
		{"Normal(1, 2)", "Normal(μ = 1.00, σ = 2.00)", 1, -30, 30},
		{"LogNormal(0, 0.5)", "LogNormal(μ = 0.00, σ = 0.50)", math.Exp(0.125), 0, 40},
		{"Exponential(2)", "Exponential(λ = 2.0000)", 0.5, 0, 20},
		{"Beta(2, 5)", "Beta(α = 2.00, β = 5.00)", 2.0 / 7, 0, 1},
		{"PERT(1, 2, 6)", "PERT(1.00, 2.00, 6.00)", 15.0 / 6, 1, 6},
		{"Triangle(0, 1, 4)", "Triangle(0.00, 1.00, 4.00)", 5.0 / 3, 0, 4},
		{"Pareto(1, 3)", "Pareto(Xmin = 1.00, α = 3.00)", 1.5, 1, 50},
		{"Uniform(-1, 3)", "Uniform(-1.00, 3.00)", 1, -1, 3},
		{"Gamma(3, 2)", "Gamma(α = 3.00, β = 2.00)", 1.5, 0, 30},
		{"Laplace(0.5, 1)", "Laplace(μ = 0.50, b = 1.00)", 0.5, -40, 40},
	}
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			density, err := Parse(tt.expression, testLogger())
			require.NoError(t, err)
			assert.Equal(t, tt.name, density.Name())
			assert.InDelta(t, tt.mean, density.Mean(), 1e-9)

			mass := quad.Fixed(density.Prob, tt.lower, tt.upper, 2000, nil, 0)
			assert.InDelta(t, 1, mass, 1e-2)
		})
	}
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{"exp", "lognormal", "normal"}, Presets())

	exp, err := Parse("exp", testLogger())
	require.NoError(t, err)
	assert.InDelta(t, 2/math.Ln2, exp.Mean(), 1e-12)
	assert.InDelta(t, math.Ln2/2, exp.Prob(0), 1e-12)

	normal, err := NewDensity(map[string]interface{}{"type": " Normal "}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), normal.Prob(0), 1e-12)

	lognormal, err := Parse("lognormal", nil)
	require.NoError(t, err)
	assert.Zero(t, lognormal.Prob(0))
	assert.Zero(t, lognormal.Prob(-1))
	assert.InDelta(t, math.Exp(0.5), lognormal.Mean(), 1e-12)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("Cauchy(0, 1)", nil)
	require.ErrorIs(t, err, ErrUnsupportedDensity)
	assert.Contains(t, err.Error(), "Cauchy")

	_, err = NewDensity(map[string]interface{}{}, nil)
	require.ErrorIs(t, err, ErrUnsupportedDensity)

	for _, eachExpression := range []string{
		"Normal",
		"Normal(0)",
		"Normal(0, one)",
		"Normal(0, -1)",
		"Beta(0, 1)",
		"PERT(3, 1, 2)",
		"Triangle(1, 1, 1)",
		"Pareto(1, 2, 3, 4)",
		"Uniform(2, 1)",
		"Gamma(-1, 1)",
		"Laplace(0, 0)",
		"Exponential(0)",
	} {
		_, parseErr := Parse(eachExpression, nil)
		assert.Error(t, parseErr, eachExpression)
		assert.NotErrorIs(t, parseErr, ErrUnsupportedDensity, eachExpression)
	}
}

func TestTruncatedPareto(t *testing.T) {
	density, err := Parse("Pareto(1, 2, 5)", nil)
	require.NoError(t, err)
	assert.Equal(t, "Pareto(Xmin = 1.00, α = 2.00, max: 5.00)", density.Name())
	assert.Zero(t, density.Prob(5.5))
	assert.Zero(t, density.Prob(0.5))
	assert.InDelta(t, 2.0, density.Prob(1), 1e-12)
	assert.True(t, math.IsNaN(density.Mean()))
}

func TestPERTMode(t *testing.T) {
	density, err := Parse("PERT(0, 3, 10)", nil)
	require.NoError(t, err)
	assert.Zero(t, density.Prob(-0.1))
	assert.Zero(t, density.Prob(10.1))
	assert.Greater(t, density.Prob(3), density.Prob(2))
	assert.Greater(t, density.Prob(3), density.Prob(4))
}

func TestFuncAdaptsPrecision(t *testing.T) {
	density, err := Parse("normal", nil)
	require.NoError(t, err)

	double := Func[float64](density)
	single := Func[float32](density)
	assert.InDelta(t, density.Prob(0.5), double(0.5), 1e-15)
	assert.InDelta(t, float32(density.Prob(0.5)), single(0.5), 1e-7)

	samples, samplesErr := sampling.MetropolisN(double, -5, 5, 20000, &sampling.Params{
		Seed: 17,
		Mode: sampling.ModeSequential,
	}, testLogger())
	require.NoError(t, samplesErr)
	var sum float64
	for _, eachSample := range samples {
		sum += eachSample
	}
	assert.InDelta(t, 0, sum/float64(len(samples)), 0.1)
}

func TestTypesSorted(t *testing.T) {
	types := Types()
	require.Len(t, types, 10)
	for i := 1; i < len(types); i++ {
		assert.Less(t, types[i-1], types[i])
	}
}
