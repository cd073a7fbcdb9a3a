package density

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat/distuv"
)

// /////////////////////////////////////////////////////////////////////////////
/*
  _____    _                _
  |_   _| _(_)__ _ _ _  __ _| |___
  	| || '_| / _` | ' \/ _` | / -_)
  	|_||_| |_\__,_|_||_\__, |_\___|
  	                   |___/
*/
// /////////////////////////////////////////////////////////////////////////////
type TriangleDensity struct {
	BaseDensity
	min  float64
	mode float64
	max  float64
}

func (td *TriangleDensity) Validate() error {
	var validationError error
	if (td.min >= td.max) ||
		(td.min > td.mode) ||
		(td.mode > td.max) {
		validationError = fmt.Errorf("invalid Triangle density: (lower=%.2f, upper=%.2f, mode=%.2f). Density must satisfy: lower <= mode <= upper, lower < upper",
			td.min,
			td.max,
			td.mode)
	}
	return validationError
}

func (td *TriangleDensity) Name() string {
	return fmt.Sprintf("Triangle(%.2f, %.2f, %.2f)",
		td.min,
		td.mode,
		td.max)
}

func UnmarshalTriangle(typeParameter string, log *slog.Logger) (Density, error) {
	// Supported forms:
	// Triangle(min, mode, max)
	td := &TriangleDensity{}
	err := td.parseArguments(typeParameter, &td.min, &td.mode, &td.max)
	if err != nil {
		return nil, err
	}
	validateErr := td.Validate()
	if validateErr != nil {
		return nil, validateErr
	}
	td.dist = distuv.NewTriangle(td.min, td.max, td.mode, nil)
	return td, nil
}
