package pipeline

import (
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/mlhousing/metrics"
	"github.com/YuminosukeSato/mlhousing/pkg/errors"
)

// plotSplitComparison は所得カテゴリ構成比の比較棒グラフをPNGに書き出す。
// カテゴリごとに全体・層化・無作為の3本の棒を並べる
func plotSplitComparison(rows []metrics.SplitComparison, path string) error {
	if len(rows) == 0 {
		return errors.WithStack(errors.ErrEmptyData)
	}

	overall := make(plotter.Values, len(rows))
	stratified := make(plotter.Values, len(rows))
	random := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		overall[i] = row.Overall
		stratified[i] = row.Stratified
		random[i] = row.Random
		labels[i] = strconv.Itoa(row.Category)
	}

	p := plot.New()
	p.Title.Text = "Income category proportions by sampling strategy"
	p.X.Label.Text = "income category"
	p.Y.Label.Text = "proportion"

	w := vg.Points(12)
	groups := []struct {
		name   string
		values plotter.Values
		offset vg.Length
	}{
		{"overall", overall, -w},
		{"stratified", stratified, 0},
		{"random", random, w},
	}
	for i, g := range groups {
		bars, err := plotter.NewBarChart(g.values, w)
		if err != nil {
			return errors.Wrapf(err, "failed to build %s bars", g.name)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = g.offset
		p.Add(bars)
		p.Legend.Add(g.name, bars)
	}
	p.Legend.Top = true
	p.NominalX(labels...)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create plot directory %s", dir)
		}
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "failed to save plot %s", path)
	}
	return nil
}
