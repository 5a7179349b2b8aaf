package main

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/twolink/internal/kinematics"
	"github.com/san-kum/twolink/internal/sweep"
)

var seriesColors = []color.Color{
	color.RGBA{R: 100, G: 200, B: 255, A: 255},
	color.RGBA{R: 150, G: 230, B: 180, A: 255},
	color.RGBA{R: 255, G: 200, B: 100, A: 255},
	color.RGBA{R: 255, G: 100, B: 100, A: 255},
}

// plotAngles writes θ1 and θ2 against tick for every result, one colour per
// path, θ2 dashed.
func plotAngles(path string, results []*sweep.Result) error {
	p := plot.New()
	p.Title.Text = "joint angles"
	p.X.Label.Text = "tick"
	p.Y.Label.Text = "degrees"
	p.Add(plotter.NewGrid())

	for i, r := range results {
		c := seriesColors[i%len(seriesColors)]
		for j, series := range [][]float64{r.Theta1, r.Theta2} {
			pts := make(plotter.XYs, len(series))
			for k, v := range series {
				pts[k] = plotter.XY{X: float64(k), Y: kinematics.Degrees(v)}
			}
			line, err := plotter.NewLine(pts)
			if err != nil {
				return err
			}
			line.Color = c
			line.Width = vg.Points(1)
			label := r.Path + " θ1"
			if j == 1 {
				line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
				label = r.Path + " θ2"
			}
			p.Add(line)
			p.Legend.Add(label, line)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return p.Save(10*vg.Inch, 5*vg.Inch, path)
}
