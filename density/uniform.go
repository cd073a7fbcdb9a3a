package density

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat/distuv"
)

type UniformDensity struct {
	BaseDensity
	lowerBound float64
	upperBound float64
}

func (ud *UniformDensity) Name() string {
	return fmt.Sprintf("Uniform(%.2f, %.2f)",
		ud.lowerBound,
		ud.upperBound)
}

func UnmarshalUniform(typeParameter string, log *slog.Logger) (Density, error) {
	// Supported forms:
	// Uniform(min, max)
	ud := &UniformDensity{}
	err := ud.parseArguments(typeParameter, &ud.lowerBound, &ud.upperBound)
	if err != nil {
		return nil, err
	}
	if ud.lowerBound >= ud.upperBound {
		return nil, fmt.Errorf("invalid Uniform density: (min=%v, max=%v). Must satisfy min < max",
			ud.lowerBound,
			ud.upperBound)
	}
	ud.dist = distuv.Uniform{
		Min: ud.lowerBound,
		Max: ud.upperBound,
	}
	return ud, nil
}
