package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"ribeira/internal/analysis"
)

// Palette matches the dashboard's pastel scheme.
var (
	colorAlerts = color.RGBA{R: 0xB4, G: 0xC7, B: 0xE7, A: 0xFF}
	colorRisk   = color.RGBA{R: 0xF4, G: 0xB2, B: 0xB0, A: 0xFF}
	colorSeries = color.RGBA{R: 0xB5, G: 0xE7, B: 0xA0, A: 0xFF}
)

// MunicipalAlertBar renders total alert area per municipality as a bar
// chart.
func MunicipalAlertBar(rows []analysis.MunicipalSummary) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Área de Alertas por Município (ha)"
	p.Y.Label.Text = "Área (ha)"

	values := make(plotter.Values, len(rows))
	names := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row.TotalAreaHa
		names[i] = row.Municipality
	}
	bars, err := plotter.NewBarChart(values, vg.Points(28))
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = colorAlerts
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.6
	p.X.Tick.Label.XAlign = -0.8
	return p, nil
}

// TopRiskBar renders mean fire risk per municipality as a bar chart.
func TopRiskBar(items []analysis.MunicipalityValue) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Risco Médio de Fogo por Município"
	p.Y.Label.Text = "Risco médio"

	values := make(plotter.Values, len(items))
	names := make([]string, len(items))
	// Items arrive ascending for horizontal layouts; flip so the highest
	// risk leads.
	for i := range items {
		item := items[len(items)-1-i]
		values[i] = item.Value
		names[i] = item.Municipality
	}
	bars, err := plotter.NewBarChart(values, vg.Points(28))
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = colorRisk
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.6
	p.X.Tick.Label.XAlign = -0.8
	return p, nil
}

// MonthlyLine renders a monthly series as a line with point markers.
func MonthlyLine(points []analysis.MonthPoint, title, yLabel string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel

	xys := make(plotter.XYs, len(points))
	labels := make([]string, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: float64(i), Y: pt.Value}
		labels[i] = pt.Month
	}
	line, scatter, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("line chart: %w", err)
	}
	line.Color = colorSeries
	line.Width = vg.Points(2)
	scatter.GlyphStyle.Color = colorSeries
	scatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(line, scatter, plotter.NewGrid())
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = 0.8
	p.X.Tick.Label.XAlign = -0.9
	return p, nil
}

// WritePNG writes the plot to w as a PNG of the given size.
func WritePNG(p *plot.Plot, w io.Writer, width, height vg.Length) error {
	writer, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	if _, err := writer.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
