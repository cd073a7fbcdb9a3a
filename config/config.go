package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/mweagle/gometropolis/json"
	"github.com/mweagle/gometropolis/rng"
	"github.com/mweagle/gometropolis/sampling"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported run definition format")
	ErrLoadFailed        = errors.New("failed to load run definition")
	ErrInvalidDefinition = errors.New("invalid run definition")
)

// Format is the encoding of a run definition file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Precision selects the floating point type a run samples in.
const (
	PrecisionSingle = "float32"
	PrecisionDouble = "float64"
)

// Run definition keys. Command line flags use the same names, except
// KeySamples which is set with -n. JSON numbers decode as float64, so JSON
// definitions should quote seeds above 2^53.
const (
	KeyName      = "name"
	KeySamples   = "samples"
	KeyA         = "a"
	KeyB         = "b"
	KeyDensity   = "density"
	KeyPrecision = "precision"
	KeySeed      = "seed"
	KeySeedMode  = "seedMode"
	KeyEngine    = "engine"
	KeyWorkers   = "workers"
	KeyMode      = "mode"
	KeyPlot      = "plot"
	KeyReport    = "report"
	KeyMetrics   = "metrics"
)

// RunDefinition describes one sampling run.
type RunDefinition struct {
	Name    string
	Samples int
	A       float64
	B       float64
	// Density is the loose density dictionary, {"type": "Normal(0, 1)"}.
	Density   map[string]interface{}
	Precision string
	Seed      uint64
	SeedMode  string
	Engine    string
	Workers   int
	Mode      string
	Plot      bool
	Report    bool
	Metrics   bool
}

// Default returns the definition used when neither a file nor flags set a
// value.
func Default() *RunDefinition {
	return &RunDefinition{
		Name:    "exp",
		Samples: 1000,
		A:       0,
		B:       1,
		Density: map[string]interface{}{
			"type": "exp",
		},
		Precision: PrecisionDouble,
		Engine:    string(rng.DefaultEngine),
		Mode:      sampling.ModeParallel.String(),
	}
}

func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %s", ErrUnsupportedFormat, ext)
	}
}

// Load reads the run definition at path on top of Default. The format is
// chosen by file extension.
func Load(path string, log *slog.Logger) (*RunDefinition, error) {
	format, formatErr := detectFormat(path)
	if formatErr != nil {
		return nil, formatErr
	}
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, readErr)
	}
	definition, definitionErr := LoadBytes(data, format)
	if definitionErr != nil {
		return nil, definitionErr
	}
	if log != nil {
		log.Info("Loaded run definition",
			"path", path,
			"format", format,
			"name", definition.Name)
	}
	return definition, nil
}

// LoadBytes parses an encoded run definition on top of Default.
func LoadBytes(data []byte, format Format) (*RunDefinition, error) {
	var parser koanf.Parser
	switch format {
	case FormatJSON:
		parser = koanfjson.Parser()
	case FormatYAML:
		parser = yaml.Parser()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	k := koanf.New(".")
	if len(data) > 0 {
		loadErr := k.Load(rawbytes.Provider(data), parser)
		if loadErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadFailed, loadErr)
		}
	}
	definition := Default()
	definition.Apply(k.Raw())
	return definition, nil
}

// Apply overrides every field whose key is present in values.
func (rd *RunDefinition) Apply(values map[string]interface{}) {
	if _, exists := values[KeyName]; exists {
		rd.Name = json.String(KeyName, values)
	}
	rd.Samples = json.Int(KeySamples, values, rd.Samples)
	rd.A = json.Float(KeyA, values, rd.A)
	rd.B = json.Float(KeyB, values, rd.B)
	if _, exists := values[KeyDensity]; exists {
		// Either {"type": "Normal(0, 1)"} or the bare expression.
		densityDict := json.Map(KeyDensity, values)
		if densityDict == nil {
			densityDict = map[string]interface{}{
				"type": json.String(KeyDensity, values),
			}
		}
		rd.Density = densityDict
	}
	if _, exists := values[KeyPrecision]; exists {
		rd.Precision = json.String(KeyPrecision, values)
	}
	if _, exists := values[KeySeed]; exists {
		rd.Seed = json.Uint(KeySeed, values)
	}
	if _, exists := values[KeySeedMode]; exists {
		rd.SeedMode = json.String(KeySeedMode, values)
	}
	if _, exists := values[KeyEngine]; exists {
		rd.Engine = json.String(KeyEngine, values)
	}
	rd.Workers = json.Int(KeyWorkers, values, rd.Workers)
	if _, exists := values[KeyMode]; exists {
		rd.Mode = json.String(KeyMode, values)
	}
	if _, exists := values[KeyPlot]; exists {
		rd.Plot = json.Boolean(KeyPlot, values)
	}
	if _, exists := values[KeyReport]; exists {
		rd.Report = json.Boolean(KeyReport, values)
	}
	if _, exists := values[KeyMetrics]; exists {
		rd.Metrics = json.Boolean(KeyMetrics, values)
	}
}

// DensityType is the density expression or preset name.
func (rd *RunDefinition) DensityType() string {
	return json.String("type", rd.Density)
}

// Validate checks the fields that can be rejected before sampling. Bounds
// are left to the sampler, which reports them with its own status code.
func (rd *RunDefinition) Validate() error {
	var errs []error
	if rd.Samples < 0 {
		errs = append(errs, fmt.Errorf("samples must be non-negative, got %d", rd.Samples))
	}
	if rd.Precision != PrecisionSingle && rd.Precision != PrecisionDouble {
		errs = append(errs, fmt.Errorf("invalid precision: %s. Must be one of: {%s, %s}",
			rd.Precision,
			PrecisionSingle,
			PrecisionDouble))
	}
	if strings.TrimSpace(rd.DensityType()) == "" {
		errs = append(errs, errors.New("density type is empty"))
	}
	if _, modeErr := sampling.ParseMode(rd.Mode); modeErr != nil {
		errs = append(errs, modeErr)
	}
	if _, seedModeErr := sampling.ParseSeedMode(rd.SeedMode); seedModeErr != nil {
		errs = append(errs, seedModeErr)
	}
	if _, engineErr := rng.ParseEngine(rd.Engine); engineErr != nil {
		errs = append(errs, engineErr)
	}
	if len(errs) != 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, errors.Join(errs...))
	}
	return nil
}

// Params converts the sampler related fields.
func (rd *RunDefinition) Params() (*sampling.Params, error) {
	mode, modeErr := sampling.ParseMode(rd.Mode)
	if modeErr != nil {
		return nil, modeErr
	}
	seedMode, seedModeErr := sampling.ParseSeedMode(rd.SeedMode)
	if seedModeErr != nil {
		return nil, seedModeErr
	}
	engine, engineErr := rng.ParseEngine(rd.Engine)
	if engineErr != nil {
		return nil, engineErr
	}
	return &sampling.Params{
		Seed:     rd.Seed,
		SeedMode: seedMode,
		Engine:   engine,
		Workers:  rd.Workers,
		Mode:     mode,
	}, nil
}
