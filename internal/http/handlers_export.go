package http

import (
	"net/http"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"ribeira/internal/analysis"
	"ribeira/internal/export"
	"ribeira/internal/log"
	"ribeira/internal/render"
)

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	f, err := export.BuildReport(s.snap)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "report build failed", log.FieldError, err)
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}
	if s.metrics != nil {
		s.metrics.ReportsBuilt.Inc()
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=vale_ribeira_relatorio.xlsx")
	if err := f.Write(w); err != nil {
		s.logger.ErrorContext(r.Context(), "report write failed", log.FieldError, err)
	}
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var (
		p   *plot.Plot
		err error
	)
	switch name {
	case "alert-area.png":
		var rows []analysis.MunicipalSummary
		rows, err = analysis.MunicipalAlertArea(analysis.FilterAlerts(s.snap.Alerts))
		if err == nil {
			p, err = render.MunicipalAlertBar(rows)
		}
	case "monthly-alerts.png":
		var points []analysis.MonthPoint
		points, err = analysis.MonthlyAlertArea(analysis.FilterAlerts(s.snap.Alerts))
		if err == nil {
			p, err = render.MonthlyLine(points, "Evolução Mensal de Alertas", "Área (ha)")
		}
	case "fire-risk.png":
		var items []analysis.MunicipalityValue
		items, err = analysis.TopMeanRisk(analysis.FilterFire(s.snap.Fire), topMunicipalities)
		if err == nil {
			p, err = render.TopRiskBar(items)
		}
	default:
		http.NotFound(w, r)
		return
	}

	if err != nil {
		// A chart with nothing to draw is a 404, not a failure: the
		// dashboard falls back to its own placeholder.
		s.logger.WarnContext(r.Context(), "chart unavailable", log.FieldChart, name, log.FieldError, err)
		http.NotFound(w, r)
		return
	}

	if s.metrics != nil {
		s.metrics.ChartsRendered.WithLabelValues(name).Inc()
	}
	w.Header().Set("Content-Type", "image/png")
	if err := render.WritePNG(p, w, 8*vg.Inch, 4*vg.Inch); err != nil {
		s.logger.ErrorContext(r.Context(), "chart render failed", log.FieldChart, name, log.FieldError, err)
	}
}
