package app

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gonum.org/v1/gonum/graph/encoding/dot"

	"github.com/mweagle/gometropolis/config"
	"github.com/mweagle/gometropolis/density"
	"github.com/mweagle/gometropolis/metrics"
	"github.com/mweagle/gometropolis/sampling"
	"github.com/mweagle/gometropolis/stats"
)

var REPORT_TIME_FORMAT = time.ANSIC

func aggregatedStatsFormatter(aggStats *stats.AggregatedStatistics) string {
	label := fmt.Sprintf("μ=%.4f, σ=%.4f", aggStats.Mean, aggStats.StdDev)
	if len(aggStats.Percentiles) != 0 {
		value := ""
		for i := 0; i != len(aggStats.Percentiles); i++ {
			percentilePair := aggStats.Percentiles[i]
			pVal := percentilePair.P
			if pVal <= 1 {
				pVal *= 100
			}
			if math.Floor(pVal) == pVal {
				value += fmt.Sprintf("p%.0f=%.4f, ", pVal, percentilePair.Val)
			} else {
				value += fmt.Sprintf("p%.2f=%.4f, ", pVal, percentilePair.Val)
			}
		}
		value = strings.TrimSuffix(value, ", ")
		label = fmt.Sprintf("%s (%s)", label, value)
	}
	return label
}

var reUnsafeName = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// outputBaseName turns a run name into a file name stem.
func outputBaseName(name string) string {
	baseName := strings.Trim(reUnsafeName.ReplaceAllString(name, "_"), "_")
	if baseName == "" {
		baseName = "samples"
	}
	return baseName
}

// /////////////////////////////////////////////////////////////////////////////
//
// TYPES
//
// /////////////////////////////////////////////////////////////////////////////

// RunParams configures Run.
type RunParams struct {
	Definition      *config.RunDefinition
	OutputDirectory string
	CreateDot       bool
	LightThemeID    int64
	DarkThemeID     int64
	// Observer receives the sampler events in addition to the run's own
	// acceptance counter and, when enabled, its metrics collector.
	Observer sampling.Observer
}

// Artifacts lists the files a run created. Empty paths weren't written.
type Artifacts struct {
	CSVPath       string
	HistogramPath string
	DotPath       string
	D2Path        string
	SVGPath       string
	MetricsPath   string
}

// RunResult summarizes a completed run.
type RunResult struct {
	Name    string
	Status  sampling.StatusCode
	Density string
	A       float64
	B       float64
	// Samples are widened to float64 regardless of the run precision.
	Samples        []float64
	Stats          *stats.AggregatedStatistics
	ExpectedMean   float64
	AcceptanceRate float64
	// MoveRate is the fraction of consecutive samples that differ. For a
	// sequential run it matches AcceptanceRate.
	MoveRate  float64
	Elapsed   time.Duration
	Artifacts Artifacts
}

func sampleAt[F sampling.Float](target density.Density,
	definition *config.RunDefinition,
	params *sampling.Params,
	log *slog.Logger) ([]float64, error) {
	samples, err := sampling.MetropolisN(density.Func[F](target),
		F(definition.A),
		F(definition.B),
		definition.Samples,
		params,
		log)
	return stats.Float64s(samples), err
}

// Run samples the density of params.Definition and writes the requested
// artifacts. The returned result carries the status even when err is
// non-nil.
func Run(ctx context.Context, params *RunParams, log *slog.Logger) (*RunResult, error) {
	definition := params.Definition
	if definition == nil {
		definition = config.Default()
	}
	result := &RunResult{
		Name:   definition.Name,
		Status: sampling.StatusFailure,
		A:      definition.A,
		B:      definition.B,
	}
	if validateErr := definition.Validate(); validateErr != nil {
		return result, validateErr
	}
	target, targetErr := density.NewDensity(definition.Density, log)
	if targetErr != nil {
		return result, targetErr
	}
	result.Density = target.Name()

	samplingParams, samplingParamsErr := definition.Params()
	if samplingParamsErr != nil {
		return result, samplingParamsErr
	}
	counter := &acceptanceCounter{}
	var collector *metrics.Collector
	if definition.Metrics {
		var collectorErr error
		collector, collectorErr = metrics.NewCollector(prometheus.Labels{
			"run": outputBaseName(definition.Name),
		})
		if collectorErr != nil {
			return result, collectorErr
		}
		samplingParams.Observer = newMultiObserver(counter, collector, params.Observer)
	} else {
		samplingParams.Observer = newMultiObserver(counter, params.Observer)
	}

	log.Info("Sampling",
		"name", definition.Name,
		"density", target.Name(),
		"samples", definition.Samples,
		"a", definition.A,
		"b", definition.B,
		"precision", definition.Precision,
		"mode", samplingParams.Mode,
		"engine", samplingParams.Engine)

	var samples []float64
	var sampleErr error
	switch definition.Precision {
	case config.PrecisionSingle:
		samples, sampleErr = sampleAt[float32](target, definition, samplingParams, log)
	default:
		samples, sampleErr = sampleAt[float64](target, definition, samplingParams, log)
	}
	result.Status = sampling.StatusOf(sampleErr)
	result.Elapsed = counter.Elapsed()
	if sampleErr != nil {
		// Failed runs still export their status series.
		if collector != nil {
			metricsErr := writeMetrics(params, definition, collector, result, log)
			if metricsErr != nil {
				log.Warn("Failed to write metrics textfile", "error", metricsErr)
			}
		}
		return result, sampleErr
	}
	result.Samples = samples
	result.AcceptanceRate = counter.Rate()
	result.MoveRate = stats.AcceptanceRate(samples)
	result.Stats = stats.StatsForSequence(samples, stats.DefaultPercentiles)
	result.ExpectedMean = truncatedMean(target.Prob, definition.A, definition.B)
	log.Info("Sampling complete",
		"samples", len(samples),
		"expected", result.ExpectedMean,
		"observed", result.Stats.Mean,
		"distributionMean", target.Mean(),
		"acceptance", result.AcceptanceRate,
		"moves", result.MoveRate,
		"elapsed", result.Elapsed)

	artifactsErr := writeArtifacts(ctx, params, definition, target, result, collector, log)
	return result, artifactsErr
}

func outputDirectoryOf(params *RunParams) (string, error) {
	outputDirectory := params.OutputDirectory
	if outputDirectory == "" {
		outputDirectory = "."
	}
	return outputDirectory, os.MkdirAll(outputDirectory, 0755)
}

func writeMetrics(params *RunParams,
	definition *config.RunDefinition,
	collector *metrics.Collector,
	result *RunResult,
	log *slog.Logger) error {
	outputDirectory, mkdirErr := outputDirectoryOf(params)
	if mkdirErr != nil {
		return mkdirErr
	}
	metricsPath := filepath.Join(outputDirectory, outputBaseName(definition.Name)+".prom")
	if writeErr := collector.WriteTextfile(metricsPath); writeErr != nil {
		return writeErr
	}
	result.Artifacts.MetricsPath = metricsPath
	log.Info("Created metrics textfile", "path", metricsPath)
	return nil
}

func writeArtifacts(ctx context.Context,
	params *RunParams,
	definition *config.RunDefinition,
	target density.Density,
	result *RunResult,
	collector *metrics.Collector,
	log *slog.Logger) error {

	outputDirectory, mkdirErr := outputDirectoryOf(params)
	if mkdirErr != nil {
		return mkdirErr
	}
	baseName := outputBaseName(definition.Name)

	bitSize := 64
	if definition.Precision == config.PrecisionSingle {
		bitSize = 32
	}
	csvPath := filepath.Join(outputDirectory, fmt.Sprintf("samples_%s.csv", baseName))
	if csvErr := writeSamplesCSV(csvPath, result.Samples, bitSize); csvErr != nil {
		return csvErr
	}
	result.Artifacts.CSVPath = csvPath
	log.Info("Created CSV output file", "path", csvPath)

	if definition.Plot || definition.Report {
		if len(result.Samples) == 0 {
			log.Warn("No samples, skipping histogram and report")
		} else {
			histogramPath := filepath.Join(outputDirectory, baseName+".png")
			plotErr := plotDistribution(histogramPath,
				fmt.Sprintf("%s on [%g, %g]", target.Name(), definition.A, definition.B),
				result.Samples,
				target,
				definition.A,
				definition.B,
				log)
			if plotErr != nil {
				return plotErr
			}
			result.Artifacts.HistogramPath = histogramPath
			log.Info("Created histogram", "path", histogramPath)
		}
	}

	if definition.Report && result.Artifacts.HistogramPath != "" {
		reportErr := writeReport(ctx, params, definition, result, outputDirectory, baseName, log)
		if reportErr != nil {
			return reportErr
		}
	}

	if collector != nil {
		return writeMetrics(params, definition, collector, result, log)
	}
	return nil
}

func writeReport(ctx context.Context,
	params *RunParams,
	definition *config.RunDefinition,
	result *RunResult,
	outputDirectory string,
	baseName string,
	log *slog.Logger) error {

	absHistogramPath, absHistogramPathErr := filepath.Abs(result.Artifacts.HistogramPath)
	if absHistogramPathErr != nil {
		return absHistogramPathErr
	}
	reportGraph := newReportGraph(definition, result, absHistogramPath)

	if params.CreateDot {
		dotOutPath := filepath.Join(outputDirectory, baseName+".dot")
		dotBytes, dotBytesErr := dot.Marshal(reportGraph, baseName, "", " ")
		if dotBytesErr != nil {
			return dotBytesErr
		}
		writeErr := os.WriteFile(dotOutPath, dotBytes, 0644)
		if writeErr != nil {
			return writeErr
		}
		result.Artifacts.DotPath = dotOutPath
		log.Info("Created dot output file", "path", dotOutPath)
	}

	d2File := filepath.Join(outputDirectory, baseName+".d2")
	f, createErr := os.Create(d2File)
	if createErr != nil {
		return createErr
	}
	encoder := D2EncodingVisitor{}
	encodeErr := encoder.Encode(reportGraph, f, log)
	closeErr := f.Close()
	if encodeErr != nil {
		return encodeErr
	}
	if closeErr != nil {
		return closeErr
	}
	result.Artifacts.D2Path = d2File

	svgPath := filepath.Join(outputDirectory, baseName+".svg")
	svgErr := createD2Image(ctx,
		d2File,
		svgPath,
		params.LightThemeID,
		params.DarkThemeID,
		log)
	if svgErr != nil {
		return svgErr
	}
	result.Artifacts.SVGPath = svgPath
	return nil
}

// newReportGraph builds the run graph:
//
//	run -> density -> kernel -> samples -> histogram
//	run -> proposal -> kernel
func newReportGraph(definition *config.RunDefinition, result *RunResult, histogramPath string) *runGraph {
	rg := newRunGraph()

	summary := &runSummaryNode{
		pipelineNode: *rg.newNode("run", definition.Name,
			&d2TableParams{Key: "Samples", Value: definition.Samples},
			&d2TableParams{Key: "Precision", Value: definition.Precision},
			&d2TableParams{Key: "Status", Value: result.Status},
			&d2TableParams{Key: "Elapsed", Value: result.Elapsed},
			&d2TableParams{Key: "Created", Value: time.Now().Format(REPORT_TIME_FORMAT)},
		),
	}
	target := rg.newNode("density", "Target density",
		&d2TableParams{Key: "Type", Value: result.Density},
		&d2TableParams{Key: "Expected", Value: fmt.Sprintf("%.4f", result.ExpectedMean)},
	)
	proposal := rg.newNode("proposal", "Proposal",
		&d2TableParams{Key: "Type", Value: fmt.Sprintf("Uniform[%g, %g)", definition.A, definition.B)},
	)
	seedValue := "unseeded"
	if definition.Seed != 0 {
		seedValue = fmt.Sprintf("%d", definition.Seed)
	}
	kernel := rg.newNode("kernel", "Metropolis-Hastings",
		&d2TableParams{Key: "Mode", Value: definition.Mode},
		&d2TableParams{Key: "Engine", Value: definition.Engine},
		&d2TableParams{Key: "Seed", Value: seedValue},
		&d2TableParams{Key: "Workers", Value: definition.Workers},
	)
	buffer := rg.newNode("samples", "Samples",
		&d2TableParams{Key: "Count", Value: result.Stats.Count},
		&d2TableParams{Key: "Range", Value: fmt.Sprintf("%.4f .. %.4f", result.Stats.Min, result.Stats.Max)},
		&d2TableParams{Key: "Summary", Value: aggregatedStatsFormatter(result.Stats)},
		&d2TableParams{Key: "Moves", Value: fmt.Sprintf("%.1f%%", 100*result.MoveRate)},
	)
	histogram := &histogramNode{
		pipelineNode: *rg.newNode("histogram", "Histogram"),
		imagePath:    histogramPath,
	}

	rg.connect(summary, target, "", false)
	rg.connect(summary, proposal, "", false)
	rg.connect(target, kernel, "target", false)
	rg.connect(proposal, kernel, "proposal", false)
	rg.connect(kernel, buffer, fmt.Sprintf("acceptance %.1f%%", 100*result.AcceptanceRate), true)
	rg.connect(buffer, histogram, "", false)
	return rg
}
