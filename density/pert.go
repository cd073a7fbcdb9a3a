package density

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat/distuv"
)

// pertDistribution is a Beta distribution rescaled from [0, 1] to
// [min, max] with shape parameters chosen by the PERT mode rule.
type pertDistribution struct {
	min   float64
	mode  float64
	max   float64
	shape distuv.Beta
}

func newPERTDistribution(min, mode, max float64) *pertDistribution {
	width := max - min
	return &pertDistribution{
		min:  min,
		mode: mode,
		max:  max,
		shape: distuv.Beta{
			Alpha: 1 + 4*(mode-min)/width,
			Beta:  1 + 4*(max-mode)/width,
		},
	}
}

func (pd *pertDistribution) Prob(x float64) float64 {
	if x < pd.min || x > pd.max {
		return 0
	}
	width := pd.max - pd.min
	return pd.shape.Prob((x-pd.min)/width) / width
}

func (pd *pertDistribution) Mean() float64 {
	return (pd.min + 4*pd.mode + pd.max) / 6
}

// /////////////////////////////////////////////////////////////////////////////
// ___ ___ ___ _____
// | _ \ __| _ \_   _|
// |  _/ _||   / | |
// |_| |___|_|_\ |_|
//
// /////////////////////////////////////////////////////////////////////////////
type PERTDensity struct {
	BaseDensity
	min  float64
	mode float64
	max  float64
}

func (pd *PERTDensity) Validate() error {
	var validationError error
	if (pd.min >= pd.max) ||
		(pd.min > pd.mode) ||
		(pd.mode > pd.max) {
		validationError = fmt.Errorf("invalid PERT density: (lower=%.2f, upper=%.2f, mode=%.2f). Density must satisfy: lower <= mode <= upper, lower < upper",
			pd.min,
			pd.max,
			pd.mode)
	}
	return validationError
}

func (pd *PERTDensity) Name() string {
	return fmt.Sprintf("PERT(%.2f, %.2f, %.2f)",
		pd.min,
		pd.mode,
		pd.max)
}

func UnmarshalPERT(typeParameter string, log *slog.Logger) (Density, error) {
	// Supported forms:
	// PERT(min, mode, max)
	pd := &PERTDensity{}
	err := pd.parseArguments(typeParameter, &pd.min, &pd.mode, &pd.max)
	if err != nil {
		return nil, err
	}
	validateErr := pd.Validate()
	if validateErr != nil {
		return nil, validateErr
	}
	pd.dist = newPERTDistribution(pd.min, pd.mode, pd.max)
	return pd, nil
}
