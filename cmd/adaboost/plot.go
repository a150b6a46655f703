package main

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/adaboost/pkg/errors"
)

func (c curve) save(path string) error {
	p := plot.New()
	p.Title.Text = "AdaBoost learning curve"
	p.X.Label.Text = "Round"
	p.Y.Label.Text = "Value"
	p.Y.Min = 0
	p.Y.Max = 1
	p.Add(plotter.NewGrid())

	errLine, err := plotter.NewLine(points(c.weightedError))
	if err != nil {
		return errors.Wrap(err, "weighted error line")
	}
	errLine.Color = color.RGBA{R: 220, G: 50, B: 50, A: 255}
	errLine.LineStyle.Width = vg.Points(2)

	accLine, err := plotter.NewLine(points(c.accuracy))
	if err != nil {
		return errors.Wrap(err, "accuracy line")
	}
	accLine.Color = color.RGBA{R: 50, G: 50, B: 220, A: 255}
	accLine.LineStyle.Width = vg.Points(2)

	p.Add(errLine, accLine)
	p.Legend.Add("weighted error", errLine)
	p.Legend.Add("training accuracy", accLine)
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save learning curve to %s", path)
	}
	return nil
}

// points maps values to (round, value) with rounds counted from 1.
func points(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i + 1)
		pts[i].Y = v
	}
	return pts
}
