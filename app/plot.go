package app

import (
	"errors"
	"image/color"
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mweagle/gometropolis/density"
)

const (
	histogramBins   = 100
	quadratureNodes = 1000
)

// truncatedMass integrates target over [a, b]. It returns NaN when the
// bounds aren't finite.
func truncatedMass(target func(float64) float64, a, b float64) float64 {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return math.NaN()
	}
	return quad.Fixed(target, a, b, quadratureNodes, nil, 0)
}

// truncatedMean is the mean of target restricted to [a, b], the value the
// sample mean converges to.
func truncatedMean(target func(float64) float64, a, b float64) float64 {
	mass := truncatedMass(target, a, b)
	if math.IsNaN(mass) || mass <= 0 {
		return math.NaN()
	}
	moment := quad.Fixed(func(x float64) float64 {
		return x * target(x)
	}, a, b, quadratureNodes, nil, 0)
	return moment / mass
}

// plotDistribution writes a PNG with the normalized sample histogram, the
// target density rescaled to [a, b] and the empirical CDF.
func plotDistribution(histogramPath string,
	title string,
	samples []float64,
	target density.Density,
	a float64,
	b float64,
	log *slog.Logger) error {
	if len(samples) == 0 {
		return errors.New("no samples to plot")
	}
	// Make a plot and set its title.
	p := plot.New()
	p.X.Label.Text = "x"
	p.Y.Label.Text = "Probability density"
	p.Title.Text = title
	p.Title.TextStyle.Font.Typeface = font.Typeface("Monoco")
	p.Title.TextStyle.Color = color.RGBA{B: 255, A: 255}

	rawHist, rawHistErr := plotter.NewHist(plotter.Values(samples), histogramBins)
	if rawHistErr != nil {
		return rawHistErr
	}
	rawHist.Normalize(1)
	p.Add(rawHist)
	p.Legend.Add("samples", rawHist)

	mass := truncatedMass(target.Prob, a, b)
	if !math.IsNaN(mass) && mass > 0 {
		densityLine := plotter.NewFunction(func(x float64) float64 {
			return target.Prob(x) / mass
		})
		densityLine.XMin = a
		densityLine.XMax = b
		densityLine.Samples = 500
		densityLine.LineStyle.Width = vg.Points(2)
		densityLine.LineStyle.Color = color.RGBA{R: 200, A: 255}
		p.Add(densityLine)
		p.Legend.Add(target.Name(), densityLine)
	} else {
		log.Warn("Skipping density overlay", "mass", mass, "a", a, "b", b)
	}

	// Then plot the CDF
	sortedSamples := make([]float64, len(samples))
	copy(sortedSamples, samples)
	sort.Float64s(sortedSamples)

	hist, histErr := plotter.NewHist(plotter.Values(sortedSamples), histogramBins)
	if histErr != nil {
		return histErr
	}
	cdfValues := make(plotter.XYs, len(hist.Bins))
	cumulativeWeight := float64(0)
	for i := 0; i != len(hist.Bins); i++ {
		activeBin := hist.Bins[i]
		cumulativeWeight += activeBin.Weight
		cdfValues[i].X = activeBin.Max
		cdfValues[i].Y = cumulativeWeight / float64(len(sortedSamples))
	}
	line, lineErr := plotter.NewLine(cdfValues)
	if lineErr != nil {
		return lineErr
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	line.LineStyle.Color = color.RGBA{R: 255, G: 144, A: 255}
	p.Add(line)
	p.Legend.Add("CDF", line)

	log.Debug("Saving histogram", "path", histogramPath, "bins", histogramBins)
	return p.Save(8*vg.Inch, 8*vg.Inch, histogramPath)
}
