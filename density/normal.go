package density

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat/distuv"
)

// /////////////////////////////////////////////////////////////////////////////
// _  _                    _
// | \| |___ _ _ _ __  __ _| |
// | .` / _ \ '_| '  \/ _` | |
// |_|\_\___/_| |_|_|_\__,_|_|
//
// /////////////////////////////////////////////////////////////////////////////
type NormalDensity struct {
	BaseDensity
	mean   float64
	stddev float64
}

func (nd *NormalDensity) Name() string {
	return fmt.Sprintf("Normal(μ = %.2f, σ = %.2f)",
		nd.mean,
		nd.stddev)
}

func UnmarshalNormal(typeParameter string, log *slog.Logger) (Density, error) {
	// Supported forms:
	// Normal(mean, stddev)
	nd := &NormalDensity{}
	err := nd.parseArguments(typeParameter, &nd.mean, &nd.stddev)
	if err != nil {
		return nil, err
	}
	if nd.stddev <= 0 {
		return nil, fmt.Errorf("invalid Normal density: σ must be positive, got %v", nd.stddev)
	}
	nd.dist = distuv.Normal{
		Mu:    nd.mean,
		Sigma: nd.stddev,
	}
	return nd, nil
}
