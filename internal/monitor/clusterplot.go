// Package monitor renders clustering results for visual inspection:
// an interactive HTML scatter via go-echarts and a static PNG via
// gonum/plot. Both group samples by their final-cluster label, with
// unclassed samples as a muted series.
package monitor

import (
	"fmt"
	"image/color"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/piratevector/DynamicClustering/internal/dyclee"
)

// palette cycles across labeled series in the PNG renderer.
var palette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
}

var unclassedGray = color.RGBA{R: 170, G: 170, B: 170, A: 255}

// groupByLabel splits rows into per-label point sets on the first two
// dimensions. Labels are returned ascending with Unclassed first.
func groupByLabel(X [][]float64, labels []int64) ([]int64, map[int64][][2]float64, error) {
	if len(X) != len(labels) {
		return nil, nil, fmt.Errorf("plot: %d rows but %d labels", len(X), len(labels))
	}
	groups := make(map[int64][][2]float64)
	for i, row := range X {
		if len(row) < 2 {
			return nil, nil, fmt.Errorf("plot: row %d has %d dimensions, need at least 2", i, len(row))
		}
		groups[labels[i]] = append(groups[labels[i]], [2]float64{row[0], row[1]})
	}
	order := make([]int64, 0, len(groups))
	for label := range groups {
		order = append(order, label)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	return order, groups, nil
}

func seriesName(label int64) string {
	if label == dyclee.Unclassed {
		return "unclassed"
	}
	return fmt.Sprintf("cluster %d", label)
}

// RenderHTML writes an interactive scatter of the labeled samples.
func RenderHTML(path, title string, X [][]float64, labels []int64) error {
	order, groups, err := groupByLabel(X, labels)
	if err != nil {
		return err
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
	)
	for _, label := range order {
		data := make([]opts.ScatterData, 0, len(groups[label]))
		for _, p := range groups[label] {
			data = append(data, opts.ScatterData{Value: []interface{}{p[0], p[1]}})
		}
		scatter.AddSeries(seriesName(label), data)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	defer f.Close()
	if err := scatter.Render(f); err != nil {
		return fmt.Errorf("render scatter: %w", err)
	}
	return nil
}

// RenderPNG writes a static scatter of the labeled samples.
func RenderPNG(path, title string, X [][]float64, labels []int64) error {
	order, groups, err := groupByLabel(X, labels)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x0"
	p.Y.Label.Text = "x1"
	p.Add(plotter.NewGrid())

	clusterIdx := 0
	for _, label := range order {
		xys := make(plotter.XYs, len(groups[label]))
		for i, pt := range groups[label] {
			xys[i].X = pt[0]
			xys[i].Y = pt[1]
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("build scatter series: %w", err)
		}
		s.GlyphStyle.Radius = vg.Points(2)
		if label == dyclee.Unclassed {
			s.GlyphStyle.Color = unclassedGray
		} else {
			s.GlyphStyle.Color = palette[clusterIdx%len(palette)]
			clusterIdx++
		}
		p.Add(s)
		p.Legend.Add(seriesName(label), s)
	}

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
