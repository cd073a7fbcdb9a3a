package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
	"oss.terrastruct.com/d2/d2themes/d2themescatalog"

	"github.com/mweagle/gometropolis/app"
	"github.com/mweagle/gometropolis/buildinfo"
	"github.com/mweagle/gometropolis/config"
	"github.com/mweagle/gometropolis/density"
	"github.com/mweagle/gometropolis/rng"
)

// flagKeys maps the flags that override run definition values to their
// definition keys.
var flagKeys = map[string]string{
	"name":      config.KeyName,
	"n":         config.KeySamples,
	"a":         config.KeyA,
	"b":         config.KeyB,
	"density":   config.KeyDensity,
	"precision": config.KeyPrecision,
	"seed":      config.KeySeed,
	"seedMode":  config.KeySeedMode,
	"engine":    config.KeyEngine,
	"workers":   config.KeyWorkers,
	"mode":      config.KeyMode,
	"plot":      config.KeyPlot,
	"report":    config.KeyReport,
	"metrics":   config.KeyMetrics,
}

// //////////////////////////////////////////////////////////////////////////////
// commandLineArgs
type commandLineArgs struct {
	logLevelValue   int
	logFile         string
	inputFile       string
	outputDirectory string
	createDot       bool
	lightTheme      int64
	darkTheme       int64
	overrides       map[string]interface{}
}

func (cla *commandLineArgs) parseCommandLine(_ *slog.Logger) error {
	logLevelString := ""
	defaults := config.Default()

	flag.StringVar(&logLevelString, "level", "INFO", "Logging verbosity level. Must be one of: {DEBUG, INFO, WARN, ERROR}.")
	flag.StringVar(&cla.logFile, "logFile", "", "Optional rotated log file. Log records are written to stdout and this file.")
	flag.StringVar(&cla.inputFile, "input", "", "Optional run definition file (.json, .yaml). Flags override its values.")
	flag.StringVar(&cla.outputDirectory, "output", "", "Path to output directory for created files. Defaults to the input file directory, or the working directory.")
	flag.BoolVar(&cla.createDot, "dot", false, "Write the run graph in DOT format alongside the report.")
	flag.Int64Var(&cla.lightTheme, "lightTheme", d2themescatalog.NeutralGrey.ID, "Light theme ID to use for generated SVG. Defaults to NeutralGrey.")
	flag.Int64Var(&cla.darkTheme, "darkTheme", d2themescatalog.DarkMauve.ID, "Dark theme ID to use for generated SVG. Defaults to DarkMauve.")

	// Run definition overrides
	flag.String("name", defaults.Name, "Run name used for output file names.")
	flag.Int("n", defaults.Samples, "Number of samples.")
	flag.Float64("a", defaults.A, "Lower sample bound.")
	flag.Float64("b", defaults.B, "Upper sample bound.")
	flag.String("density", defaults.DensityType(),
		fmt.Sprintf("Target density expression, e.g. Normal(0, 1), or a preset. Types: %v. Presets: %v.",
			density.Types(),
			density.Presets()))
	flag.String("precision", defaults.Precision, "Sample precision. Must be one of: {float32, float64}.")
	flag.Uint64("seed", defaults.Seed, "Random seed. 0 selects the seed mode's default.")
	flag.String("seedMode", defaults.SeedMode, "Seed policy for unseeded runs. Must be one of: {deterministic, entropy}. Defaults to the build's policy.")
	flag.String("engine", defaults.Engine, fmt.Sprintf("Random engine. Must be one of: %v.", rng.Engines()))
	flag.Int("workers", defaults.Workers, "Concurrent lanes in parallel mode. 0 uses every CPU.")
	flag.String("mode", defaults.Mode, "Sampling mode. Must be one of: {parallel, sequential}.")
	flag.Bool("plot", defaults.Plot, "Write a histogram PNG of the samples.")
	flag.Bool("report", defaults.Report, "Write a D2 run report and render it to SVG. Implies -plot.")
	flag.Bool("metrics", defaults.Metrics, "Write run metrics in Prometheus textfile format.")
	flag.Parse()

	// Parse the verbosity level
	switch strings.ToLower(logLevelString) {
	case "debug":
		cla.logLevelValue = int(slog.LevelDebug)
	case "info":
		cla.logLevelValue = int(slog.LevelInfo)
	case "warn":
		cla.logLevelValue = int(slog.LevelWarn)
	case "error":
		cla.logLevelValue = int(slog.LevelError)
	default:
		return fmt.Errorf("invalid log level specified: %s", logLevelString)
	}

	// Only explicitly set flags override the definition
	cla.overrides = make(map[string]interface{})
	flag.Visit(func(visited *flag.Flag) {
		if key, keyExists := flagKeys[visited.Name]; keyExists {
			cla.overrides[key] = visited.Value.String()
		}
	})

	if len(cla.inputFile) > 0 {
		absPath, absPathErr := filepath.Abs(cla.inputFile)
		if absPathErr != nil {
			return absPathErr
		}
		cla.inputFile = absPath
		if len(cla.outputDirectory) <= 0 {
			cla.outputDirectory = path.Dir(cla.inputFile)
		}
	} else {
		// Without a definition file a preset names its own outputs, so
		// -density normal writes samples_normal.csv.
		_, densitySet := cla.overrides[config.KeyDensity]
		_, nameSet := cla.overrides[config.KeyName]
		if densitySet && !nameSet {
			cla.overrides[config.KeyName] = cla.overrides[config.KeyDensity]
		}
	}
	if len(cla.outputDirectory) <= 0 {
		cla.outputDirectory = "."
	}
	return nil
}

func (cla *commandLineArgs) runDefinition(log *slog.Logger) (*config.RunDefinition, error) {
	definition := config.Default()
	if len(cla.inputFile) > 0 {
		loaded, loadErr := config.Load(cla.inputFile, log)
		if loadErr != nil {
			return nil, loadErr
		}
		definition = loaded
	}
	definition.Apply(cla.overrides)
	if definition.Report {
		definition.Plot = true
	}
	return definition, nil
}

// //////////////////////////////////////////////////////////////////////////////
//
// _ __  __ _(_)_ _
// | '  \/ _` | | ' \
// |_|_|_\__,_|_|_||_|
//
// //////////////////////////////////////////////////////////////////////////////
func main() {
	os.Exit(mainWithExitCode())
}

// newLogger writes to stdout and, when logFile is set, to a rotated log
// file as well. The returned closer must be closed before exiting.
func newLogger(stdout io.Writer, logFile string, lvl *slog.LevelVar) (*slog.Logger, io.Closer) {
	if len(logFile) <= 0 {
		return slog.New(slog.NewTextHandler(stdout, &slog.HandlerOptions{
			Level: lvl,
		})), io.NopCloser(nil)
	}
	rotatingLog := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10,
		MaxBackups: 3,
		Compress:   true,
	}
	return slog.New(slog.NewTextHandler(io.MultiWriter(stdout, rotatingLog), &slog.HandlerOptions{
		Level: lvl,
	})), rotatingLog
}

func mainWithExitCode() int {
	lvl := &slog.LevelVar{}
	lvl.Set(slog.LevelInfo)
	logger, _ := newLogger(os.Stdout, "", lvl)
	cla := commandLineArgs{}
	parseError := cla.parseCommandLine(logger)
	if parseError != nil {
		logger.Error("Failed to parse command line arguments", "error", parseError)
		return 2
	}
	logger, logCloser := newLogger(os.Stdout, cla.logFile, lvl)
	defer logCloser.Close()
	lvl.Set(slog.Level(cla.logLevelValue))
	logger.Info("Welcome to gometropolis!",
		"version", buildinfo.BuildInfo(),
		"built", buildinfo.BuildTime(),
		"go", runtime.Version())

	return run(&cla, logger)
}

// run returns the process exit code: 0 on success, 1 for invalid sample
// bounds, 2 for any other failure.
func run(cla *commandLineArgs, logger *slog.Logger) int {
	definition, definitionErr := cla.runDefinition(logger)
	if definitionErr != nil {
		logger.Error("Failed to load run definition", "error", definitionErr)
		return 2
	}
	result, runErr := app.Run(context.Background(), &app.RunParams{
		Definition:      definition,
		OutputDirectory: cla.outputDirectory,
		CreateDot:       cla.createDot,
		LightThemeID:    cla.lightTheme,
		DarkThemeID:     cla.darkTheme,
	}, logger)
	if runErr != nil {
		logger.Error("Sampling run failed",
			"name", definition.Name,
			"status", result.Status,
			"error", runErr)
		return result.Status.ExitCode()
	}
	logger.Info("gometropolis complete",
		"name", result.Name,
		"status", result.Status,
		"csv", result.Artifacts.CSVPath)
	return result.Status.ExitCode()
}
