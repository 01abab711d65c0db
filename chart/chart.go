package chart

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"pipecut/model"
)

var ErrEmptySeries = errors.New("series has no samples")

const (
	width  = 10 * vg.Inch
	height = 4 * vg.Inch
)

// NewPlot draws the series value against arc length along the centerline.
func NewPlot(series model.SampleSeries) (*plot.Plot, error) {
	if len(series.Samples) == 0 {
		return nil, ErrEmptySeries
	}

	s := series.ArcLength()
	pts := make(plotter.XYs, len(series.Samples))
	for i, sample := range series.Samples {
		pts[i] = plotter.XY{X: s[i], Y: sample.Value}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s along the pipe", series.Field)
	p.X.Label.Text = "Arc length (m)"
	p.Y.Label.Text = series.Field
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Width = vg.Points(1)
	p.Add(line)

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)

	return p, nil
}

// SaveSeries renders the series to path, the format follows the extension.
func SaveSeries(path string, series model.SampleSeries) error {
	p, err := NewPlot(series)
	if err != nil {
		return fmt.Errorf("plot %s: %w", series.Field, err)
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
