package density

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// ParetoDensity optionally truncates the tail at maxValue. The truncated
// density is not renormalized and its Mean is NaN.
type ParetoDensity struct {
	BaseDensity
	x        float64
	alpha    float64
	maxValue float64
}

func (pd *ParetoDensity) Name() string {
	maxSuffix := ""
	if pd.maxValue != math.MaxFloat64 {
		maxSuffix = fmt.Sprintf(", max: %.2f", pd.maxValue)
	}
	return fmt.Sprintf("Pareto(Xmin = %.2f, α = %.2f%s)",
		pd.x,
		pd.alpha,
		maxSuffix)
}

func (pd *ParetoDensity) Prob(x float64) float64 {
	if x > pd.maxValue {
		return 0
	}
	return pd.BaseDensity.Prob(x)
}

func (pd *ParetoDensity) Mean() float64 {
	if pd.maxValue != math.MaxFloat64 {
		return math.NaN()
	}
	return pd.BaseDensity.Mean()
}

func UnmarshalPareto(typeParameter string, log *slog.Logger) (Density, error) {
	// Supported forms:
	// Pareto(Xmin, alphaShape)
	// Pareto(Xmin, alphaShape, max)
	pd := &ParetoDensity{
		maxValue: math.MaxFloat64,
	}
	reParams := regexp.MustCompile(`[()]`)
	paretoParts := reParams.Split(typeParameter, -1)
	if len(paretoParts) < 2 {
		return nil, fmt.Errorf("invalid Pareto density expression: %s", typeParameter)
	}
	var err error
	switch len(strings.Split(paretoParts[1], ",")) {
	case 2:
		err = pd.parseArguments(typeParameter, &pd.x, &pd.alpha)
	case 3:
		err = pd.parseArguments(typeParameter, &pd.x, &pd.alpha, &pd.maxValue)
	default:
		err = fmt.Errorf("invalid Pareto density expression: %s", typeParameter)
	}
	if err != nil {
		return nil, err
	}
	if pd.x <= 0 || pd.alpha <= 0 {
		return nil, fmt.Errorf("invalid Pareto density: (Xmin=%v, α=%v). Both parameters must be positive",
			pd.x,
			pd.alpha)
	}
	pd.dist = distuv.Pareto{
		Xm:    pd.x,
		Alpha: pd.alpha,
	}
	return pd, nil
}
