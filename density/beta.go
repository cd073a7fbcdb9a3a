package density

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat/distuv"
)

// /////////////////////////////////////////////////////////////////////////////
// ___      _
// | _ ) ___| |_ __ _
// | _ \/ -_)  _/ _` |
// |___/\___|\__\__,_|
//
// /////////////////////////////////////////////////////////////////////////////
type BetaDensity struct {
	BaseDensity
	alpha float64
	beta  float64
}

func (bd *BetaDensity) Name() string {
	return fmt.Sprintf("Beta(α = %.2f, β = %.2f)",
		bd.alpha,
		bd.beta)
}

func UnmarshalBeta(typeParameter string, log *slog.Logger) (Density, error) {
	// Supported forms:
	// Beta(alpha, beta)
	bd := &BetaDensity{}
	err := bd.parseArguments(typeParameter, &bd.alpha, &bd.beta)
	if err != nil {
		return nil, err
	}
	if bd.alpha <= 0 || bd.beta <= 0 {
		return nil, fmt.Errorf("invalid Beta density: (α=%v, β=%v). Both shape parameters must be positive",
			bd.alpha,
			bd.beta)
	}
	bd.dist = distuv.Beta{
		Alpha: bd.alpha,
		Beta:  bd.beta,
	}
	return bd, nil
}
