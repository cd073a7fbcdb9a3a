package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"oss.terrastruct.com/d2/d2exporter"
	"oss.terrastruct.com/d2/d2layouts/d2elklayout"
	"oss.terrastruct.com/d2/d2lib"
	"oss.terrastruct.com/d2/d2renderers/d2svg"
	"oss.terrastruct.com/d2/d2themes/d2themescatalog"
	"oss.terrastruct.com/d2/lib/textmeasure"
)

// renderD2 compiles D2 source, lays it out with ELK and renders an SVG.
func renderD2(ctx context.Context,
	source string,
	lightTheme int64,
	darkTheme int64,
	log *slog.Logger) ([]byte, error) {
	_, diagramGraph, compileErr := d2lib.Compile(ctx, source, nil, nil)
	if compileErr != nil {
		return nil, fmt.Errorf("failed to compile D2 report: %w", compileErr)
	}
	applyErr := diagramGraph.ApplyTheme(d2themescatalog.ColorblindClear.ID)
	if applyErr != nil {
		return nil, applyErr
	}
	ruler, rulerErr := textmeasure.NewRuler()
	if rulerErr != nil {
		return nil, rulerErr
	}
	dimErr := diagramGraph.SetDimensions(nil, ruler, nil)
	if dimErr != nil {
		return nil, dimErr
	}
	layoutErr := d2elklayout.Layout(ctx, diagramGraph, nil)
	if layoutErr != nil {
		return nil, layoutErr
	}
	diagram, diagramErr := d2exporter.Export(ctx, diagramGraph, nil)
	if diagramErr != nil {
		return nil, diagramErr
	}
	sketch := false
	padding := int64(50)
	log.Debug("Rendering D2 diagram", "lightTheme", lightTheme, "darkTheme", darkTheme)
	return d2svg.Render(diagram, &d2svg.RenderOpts{
		ThemeID:     &lightTheme,
		Sketch:      &sketch,
		DarkThemeID: &darkTheme,
		Pad:         &padding,
	})
}

func createD2Image(ctx context.Context,
	inputFile string,
	outputFile string,
	lightTheme int64,
	darkTheme int64,
	log *slog.Logger) error {
	log.Info("Creating D2 image from source", "path", inputFile)
	srcFile, srcFileErr := os.ReadFile(inputFile)
	if srcFileErr != nil {
		return srcFileErr
	}
	render, renderErr := renderD2(ctx, string(srcFile), lightTheme, darkTheme, log)
	if renderErr != nil {
		return renderErr
	}
	log.Info("Writing D2 image", "path", outputFile)
	return os.WriteFile(outputFile, render, 0600)
}
