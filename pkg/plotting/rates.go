// Package plotting draws rate-by-group bar charts with gonum/plot.
package plotting

import (
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"edakit/pkg/stats"
)

// DefaultRateLabel is the y axis label of rate charts.
const DefaultRateLabel = "Death Rate"

var barColor = color.RGBA{R: 31, G: 119, B: 180, A: 128}

// Labels returns the tick label of each group. A group value v is looked
// up as mapping[strconv.Itoa(int(v))]; a missing entry is an error.
func Labels(rates []stats.GroupRate, mapping map[string]string) ([]string, error) {
	names := make([]string, len(rates))
	for i, r := range rates {
		key := strconv.Itoa(int(r.Value))
		name, ok := mapping[key]
		if !ok {
			return nil, errors.Errorf("plotting: no label for value %s", key)
		}
		names[i] = name
	}
	return names, nil
}

// RateChart draws one bar per group with the group's rate as height.
func RateChart(variable, rateLabel string, rates []stats.GroupRate, mapping map[string]string) (*plot.Plot, error) {
	names, err := Labels(rates, mapping)
	if err != nil {
		return nil, err
	}
	if rateLabel == "" {
		rateLabel = DefaultRateLabel
	}
	values := make(plotter.Values, len(rates))
	for i, r := range rates {
		values[i] = r.Rate
	}

	p := plot.New()
	p.Title.Text = rateLabel + " by " + variable
	p.X.Label.Text = variable
	p.Y.Label.Text = rateLabel
	p.Y.Min = 0

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, errors.Wrap(err, "plotting: bar chart")
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// Save writes p to path; the format follows the file extension.
func Save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "plotting: create output dir")
	}
	if err := p.Save(4*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "plotting: save %s", path)
	}
	return nil
}

// SaveGrid tiles plots into a PNG with cols charts per row.
func SaveGrid(plots []*plot.Plot, cols int, path string) error {
	if len(plots) == 0 {
		return errors.New("plotting: nothing to draw")
	}
	cols = max(1, min(cols, len(plots)))
	rows := (len(plots) + cols - 1) / cols

	grid := make([][]*plot.Plot, rows)
	for r := range grid {
		grid[r] = make([]*plot.Plot, cols)
		for c := range grid[r] {
			if k := r*cols + c; k < len(plots) {
				grid[r][c] = plots[k]
			}
		}
	}

	img := vgimg.New(vg.Length(cols)*4*vg.Inch, vg.Length(rows)*4*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: rows, Cols: cols, PadX: vg.Millimeter, PadY: vg.Millimeter}
	canvases := plot.Align(grid, tiles, dc)
	for r := range grid {
		for c, p := range grid[r] {
			if p != nil {
				p.Draw(canvases[r][c])
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "plotting: create output dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "plotting: create grid file")
	}
	defer f.Close()
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return errors.Wrap(err, "plotting: write png")
	}
	return nil
}
