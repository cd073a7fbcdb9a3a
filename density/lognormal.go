package density

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat/distuv"
)

// LogNormalDensity is supported on (0, ∞); Prob is zero elsewhere.
type LogNormalDensity struct {
	BaseDensity
	mu    float64
	sigma float64
}

func (lnd *LogNormalDensity) Name() string {
	return fmt.Sprintf("LogNormal(μ = %.2f, σ = %.2f)",
		lnd.mu,
		lnd.sigma)
}

func (lnd *LogNormalDensity) Prob(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return lnd.BaseDensity.Prob(x)
}

func UnmarshalLogNormal(typeParameter string, log *slog.Logger) (Density, error) {
	// Supported forms:
	// LogNormal(mu, sigma)
	lnd := &LogNormalDensity{}
	err := lnd.parseArguments(typeParameter, &lnd.mu, &lnd.sigma)
	if err != nil {
		return nil, err
	}
	if lnd.sigma <= 0 {
		return nil, fmt.Errorf("invalid LogNormal density: σ must be positive, got %v", lnd.sigma)
	}
	lnd.dist = distuv.LogNormal{
		Mu:    lnd.mu,
		Sigma: lnd.sigma,
	}
	return lnd, nil
}
