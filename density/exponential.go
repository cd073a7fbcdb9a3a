package density

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat/distuv"
)

type ExponentialDensity struct {
	BaseDensity
	rate float64
}

func (ed *ExponentialDensity) Name() string {
	return fmt.Sprintf("Exponential(λ = %.4f)", ed.rate)
}

func UnmarshalExponential(typeParameter string, log *slog.Logger) (Density, error) {
	// Supported forms:
	// Exponential(rate)
	ed := &ExponentialDensity{}
	err := ed.parseArguments(typeParameter, &ed.rate)
	if err != nil {
		return nil, err
	}
	if ed.rate <= 0 {
		return nil, fmt.Errorf("invalid Exponential density: rate must be positive, got %v", ed.rate)
	}
	ed.dist = distuv.Exponential{
		Rate: ed.rate,
	}
	return ed, nil
}
