/*
DESCRIPTION
  histogram.go implements the -histogram flag: a per-channel luminance
  histogram of the rendered, encoded output, plotted to a PNG with
  gonum/plot. This is purely a diagnostic aid for judging exposure and
  clipping at a glance; it plays no role in the render itself.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package main

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rawforge/pixelpipe/encode"
)

const histogramBins = 64

// writeHistogram plots a red/green/blue luminance histogram of result's
// pixels to path.
func writeHistogram(path string, result *encode.Result) error {
	p := plot.New()
	p.Title.Text = "channel histogram"
	p.X.Label.Text = "value"
	p.Y.Label.Text = "count"

	channels := []struct {
		name   string
		offset int
	}{
		{"red", 0},
		{"green", 1},
		{"blue", 2},
	}

	for _, ch := range channels {
		values := channelValues(result, ch.offset)
		hist, err := plotter.NewHist(values, histogramBins)
		if err != nil {
			return err
		}
		hist.LineStyle.Width = vg.Points(1)
		hist.FillColor = nil
		p.Add(hist)
		p.Legend.Add(ch.name, hist)
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func channelValues(result *encode.Result, offset int) plotter.Values {
	n := result.Width * result.Height
	if n == 0 {
		return plotter.Values{}
	}
	values := make(plotter.Values, n)
	for i := 0; i < n; i++ {
		values[i] = float64(result.Pixels[i*4+offset])
	}
	return values
}
