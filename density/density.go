package density

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mweagle/gometropolis/json"
	"github.com/mweagle/gometropolis/sampling"
)

// ErrUnsupportedDensity is returned for expressions whose distribution name
// isn't registered.
var ErrUnsupportedDensity = errors.New("unsupported density")

// Density is a one dimensional target density. Prob need not integrate to
// one. Mean returns NaN when the expected value isn't known in closed form.
type Density interface {
	Name() string
	Prob(x float64) float64
	Mean() float64
}

// distribution is the subset of the gonum distuv API every density wraps.
type distribution interface {
	Prob(x float64) float64
	Mean() float64
}

type unmarshalFunc func(string, *slog.Logger) (Density, error)

var unmarshalMap map[string]unmarshalFunc

// presetMap names the densities shipped as ready to run examples.
var presetMap map[string]string

func init() {
	unmarshalMap = map[string]unmarshalFunc{
		"Normal":      UnmarshalNormal,
		"LogNormal":   UnmarshalLogNormal,
		"Exponential": UnmarshalExponential,
		"Beta":        UnmarshalBeta,
		"PERT":        UnmarshalPERT,
		"Triangle":    UnmarshalTriangle,
		"Pareto":      UnmarshalPareto,
		"Uniform":     UnmarshalUniform,
		"Gamma":       UnmarshalGamma,
		"Laplace":     UnmarshalLaplace,
	}
	presetMap = map[string]string{
		"exp":       fmt.Sprintf("Exponential(%v)", math.Ln2/2),
		"lognormal": "LogNormal(0, 1)",
		"normal":    "Normal(0, 1)",
	}
}

// Types returns the registered distribution names, sorted.
func Types() []string {
	types := make([]string, 0, len(unmarshalMap))
	for eachKey := range unmarshalMap {
		types = append(types, eachKey)
	}
	sort.Strings(types)
	return types
}

// Presets returns the preset names, sorted.
func Presets() []string {
	presets := make([]string, 0, len(presetMap))
	for eachKey := range presetMap {
		presets = append(presets, eachKey)
	}
	sort.Strings(presets)
	return presets
}

// /////////////////////////////////////////////////////////////////////////////
// ___                ___             _ _
// | _ ) __ _ ___ ___|   \ ___ _ _  __(_) |_ _  _
// | _ \/ _` (_-</ -_) |) / -_) ' \(_-< |  _| || |
// |___/\__,_/__/\___|___/\___|_||_/__/_|\__|\_, |
//                                          |__/
// /////////////////////////////////////////////////////////////////////////////

type BaseDensity struct {
	dist distribution
}

func (bd *BaseDensity) Prob(x float64) float64 {
	return bd.dist.Prob(x)
}

func (bd *BaseDensity) Mean() float64 {
	return bd.dist.Mean()
}

func (bd *BaseDensity) parseFloat(strVal string, target *float64) error {
	trimmedVal := strings.TrimSpace(strVal)
	parseVal, parseValErr := strconv.ParseFloat(trimmedVal, 64)
	if parseValErr != nil {
		return parseValErr
	}
	*target = parseVal
	return nil
}

// parseArguments splits "Name(x, y, ...)" and parses the arguments into
// targets. The expression must carry exactly len(targets) arguments.
func (bd *BaseDensity) parseArguments(typeParameter string, targets ...*float64) error {
	reParams := regexp.MustCompile(`[()]`)
	expressionParts := reParams.Split(typeParameter, -1)
	if len(expressionParts) < 2 {
		return fmt.Errorf("invalid density expression: %s", typeParameter)
	}
	argumentParts := strings.Split(expressionParts[1], ",")
	if len(argumentParts) != len(targets) {
		return fmt.Errorf("invalid density expression: %s. Expected %d arguments, got %d",
			typeParameter,
			len(targets),
			len(argumentParts))
	}
	for i, eachTarget := range targets {
		parseErr := bd.parseFloat(argumentParts[i], eachTarget)
		if parseErr != nil {
			return fmt.Errorf("invalid density expression: %s. %w", typeParameter, parseErr)
		}
	}
	return nil
}

// NewDensity creates the density described by the "type" entry of
// dictDensityParams. The entry is either an expression such as
// "Normal(0, 1)" or a preset name (see Presets).
func NewDensity(dictDensityParams map[string]interface{}, log *slog.Logger) (Density, error) {
	densityType := strings.TrimSpace(json.String("type", dictDensityParams))
	if presetExpression, presetExists := presetMap[strings.ToLower(densityType)]; presetExists {
		densityType = presetExpression
	}

	// All densities satisfy:
	// DENSITY(...)
	reSplit := regexp.MustCompile(`[\(\)]`)
	densityParts := reSplit.Split(densityType, -1)
	densityBasename := strings.TrimSpace(densityParts[0])

	unmarshal, unmarshalExists := unmarshalMap[densityBasename]
	if !unmarshalExists {
		return nil, fmt.Errorf("%w: %q. Supported types: %v, presets: %v",
			ErrUnsupportedDensity,
			densityBasename,
			Types(),
			Presets())
	}
	density, densityErr := unmarshal(densityType, log)
	if densityErr != nil {
		return nil, densityErr
	}
	if log != nil {
		log.Debug("Created density", "expression", densityType, "name", density.Name())
	}
	return density, nil
}

// Parse is shorthand for NewDensity with a single "type" entry.
func Parse(expression string, log *slog.Logger) (Density, error) {
	return NewDensity(map[string]interface{}{
		"type": expression,
	}, log)
}

// Func adapts a density to the sampling kernel's target signature at
// precision F.
func Func[F sampling.Float](density Density) sampling.Density[F] {
	return func(x F) F {
		return F(density.Prob(float64(x)))
	}
}
