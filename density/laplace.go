package density

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat/distuv"
)

type LaplaceDensity struct {
	BaseDensity
	mu    float64
	scale float64
}

func (ld *LaplaceDensity) Name() string {
	return fmt.Sprintf("Laplace(μ = %.2f, b = %.2f)",
		ld.mu,
		ld.scale)
}

func UnmarshalLaplace(typeParameter string, log *slog.Logger) (Density, error) {
	// Supported forms:
	// Laplace(location, scale)
	ld := &LaplaceDensity{}
	err := ld.parseArguments(typeParameter, &ld.mu, &ld.scale)
	if err != nil {
		return nil, err
	}
	if ld.scale <= 0 {
		return nil, fmt.Errorf("invalid Laplace density: scale must be positive, got %v", ld.scale)
	}
	ld.dist = distuv.Laplace{
		Mu:    ld.mu,
		Scale: ld.scale,
	}
	return ld, nil
}
