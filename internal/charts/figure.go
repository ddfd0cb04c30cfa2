package charts

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Figure is a grid of plots drawn onto one canvas
type Figure struct {
	Width, Height vg.Length
	// Plots is row-major; a single plot fills the whole canvas
	Plots [][]*plot.Plot
}

func single(p *plot.Plot, width, height float64) *Figure {
	return &Figure{
		Width:  vg.Length(width) * vg.Inch,
		Height: vg.Length(height) * vg.Inch,
		Plots:  [][]*plot.Plot{{p}},
	}
}

// CheckFormat reports whether figures can be encoded in format
func CheckFormat(format string) error {
	if _, err := draw.NewFormattedCanvas(vg.Inch, vg.Inch, format); err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

// Encode draws the figure and writes it to w in the given format
func (f *Figure) Encode(w io.Writer, format string) error {
	c, err := draw.NewFormattedCanvas(f.Width, f.Height, format)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	dc := draw.New(c)

	if len(f.Plots) == 1 && len(f.Plots[0]) == 1 {
		f.Plots[0][0].Draw(dc)
	} else {
		tiles := draw.Tiles{
			Rows:      len(f.Plots),
			Cols:      len(f.Plots[0]),
			PadX:      vg.Millimeter * 8,
			PadY:      vg.Millimeter * 8,
			PadTop:    vg.Millimeter * 4,
			PadBottom: vg.Millimeter * 4,
			PadLeft:   vg.Millimeter * 4,
			PadRight:  vg.Millimeter * 4,
		}
		canvases := plot.Align(f.Plots, tiles, dc)
		for j, row := range f.Plots {
			for i, p := range row {
				if p != nil {
					p.Draw(canvases[j][i])
				}
			}
		}
	}

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write %s figure: %w", format, err)
	}
	return nil
}
