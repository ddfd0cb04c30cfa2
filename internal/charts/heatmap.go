package charts

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg/draw"

	"github.com/jengzang/bikeshare-eda/internal/models"
	"github.com/jengzang/bikeshare-eda/internal/stats"
)

// CorrelationColumns are the numeric columns of the correlation heatmap
var CorrelationColumns = []models.Column{
	models.ColCount, models.ColTemp, models.ColATemp, models.ColHumidity,
	models.ColWindSpeed, models.ColCasual, models.ColRegistered,
}

// CorrelationMatrix computes pairwise Pearson correlations of CorrelationColumns
func CorrelationMatrix(t *models.Table) stats.Matrix {
	names := make([]string, len(CorrelationColumns))
	columns := make([][]float64, len(CorrelationColumns))
	for i, c := range CorrelationColumns {
		names[i] = c.String()
		columns[i] = t.Floats(c)
	}
	return stats.CorrelationMatrix(names, columns)
}

// lowerTriangle exposes a square matrix as a heat map grid with the first
// row on top. Cells above the diagonal are NaN.
type lowerTriangle [][]float64

func (g lowerTriangle) Dims() (c, r int) { return len(g), len(g) }
func (g lowerTriangle) X(c int) float64  { return float64(c) }
func (g lowerTriangle) Y(r int) float64  { return float64(r) }

func (g lowerTriangle) Z(c, r int) float64 {
	i := len(g) - 1 - r
	if c > i {
		return math.NaN()
	}
	// rounding can push |r| just past 1
	return math.Max(-1, math.Min(1, g[i][c]))
}

// Correlation draws the annotated lower-triangle correlation heatmap
func Correlation(t *models.Table, _ Options) (*Figure, error) {
	m := CorrelationMatrix(t)
	n := len(m.Names)

	grid := lowerTriangle(m.Values)
	heat := plotter.NewHeatMap(grid, moreland.SmoothBlueRed().Palette(255))
	heat.Min, heat.Max = -1, 1

	var annotations plotter.XYLabels
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			v := m.Values[i][j]
			if math.IsNaN(v) {
				continue
			}
			annotations.XYs = append(annotations.XYs, plotter.XY{X: float64(j), Y: float64(n - 1 - i)})
			annotations.Labels = append(annotations.Labels, strconv.FormatFloat(v, 'f', 2, 64))
		}
	}

	p := plot.New()
	p.Title.Text = "Correlation"
	p.Add(heat)

	if len(annotations.XYs) > 0 {
		labels, err := plotter.NewLabels(annotations)
		if err != nil {
			return nil, fmt.Errorf("failed to build annotations: %w", err)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].XAlign = text.XCenter
			labels.TextStyle[i].YAlign = text.YCenter
		}
		p.Add(labels)
	}

	reversed := make([]string, n)
	for i, name := range m.Names {
		reversed[n-1-i] = name
	}
	p.NominalX(m.Names...)
	p.NominalY(reversed...)

	return single(p, 15, 8), nil
}

// missingGrid marks missing cells with 1, first table row on top
type missingGrid struct {
	t    *models.Table
	cols []models.Column
}

func (g missingGrid) Dims() (c, r int) { return len(g.cols), g.t.Len() }
func (g missingGrid) X(c int) float64  { return float64(c) }
func (g missingGrid) Y(r int) float64  { return float64(r) }

func (g missingGrid) Z(c, r int) float64 {
	if g.t.Rows[g.t.Len()-1-r].IsMissing(g.cols[c]) {
		return 1
	}
	return 0
}

type colors []color.Color

func (p colors) Colors() []color.Color { return p }

// rasterOnly draws a heat map without per-cell glyph boxes, which would
// otherwise be computed for every cell of a large table
type rasterOnly struct {
	heat *plotter.HeatMap
}

func (r rasterOnly) Plot(c draw.Canvas, p *plot.Plot) { r.heat.Plot(c, p) }

func (r rasterOnly) DataRange() (xmin, xmax, ymin, ymax float64) {
	return r.heat.DataRange()
}

// MissingMatrix draws present cells dark and missing cells light, one
// column per table column and one line per row
func MissingMatrix(t *models.Table, _ Options) (*Figure, error) {
	cols := t.Columns()
	rows := t.Len()
	if rows == 0 {
		return nil, ErrNoData
	}

	heat := plotter.NewHeatMap(missingGrid{t: t, cols: cols}, colors{
		color.RGBA{R: 64, G: 64, B: 64, A: 255},
		color.White,
	})
	heat.Min, heat.Max = 0, 1
	heat.Rasterized = true

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.String()
	}

	p := plot.New()
	p.Title.Text = "Missing values"
	p.Add(rasterOnly{heat: heat})
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	ticks := plot.ConstantTicks{{Value: float64(rows - 1), Label: "1"}}
	if rows > 1 {
		ticks = append(ticks, plot.Tick{Value: 0, Label: strconv.Itoa(rows)})
	}
	p.Y.Tick.Marker = ticks

	return single(p, 20, 10), nil
}
