package http

import (
	"net/http"

	"ribeira/internal/analysis"
	"ribeira/internal/core"
)

// filteredAlerts applies the municipality filter and the optional year
// filter from the request.
func (s *Server) filteredAlerts(r *http.Request) (core.AlertTable, error) {
	year, err := yearParam(r)
	if err != nil {
		return core.AlertTable{}, err
	}
	return analysis.AlertsForYear(analysis.FilterAlerts(s.snap.Alerts), year), nil
}

func (s *Server) handleAlertYears(w http.ResponseWriter, r *http.Request) {
	years := analysis.AlertYears(analysis.FilterAlerts(s.snap.Alerts))
	if len(years) == 0 {
		s.respond(w, r, nil, analysis.ErrNoData)
		return
	}
	s.respond(w, r, years, nil)
}

func (s *Server) handleAlertMunicipal(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.filteredAlerts(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, payload{Available: false, Reason: err.Error()})
		return
	}
	rows, err := analysis.MunicipalAlertArea(alerts)
	s.respond(w, r, rows, err)
}

func (s *Server) handleAlertMonthly(w http.ResponseWriter, r *http.Request) {
	// The monthly series always spans the full history; the year filter
	// applies to the per-municipality views.
	points, err := analysis.MonthlyAlertArea(analysis.FilterAlerts(s.snap.Alerts))
	s.respond(w, r, points, err)
}

func (s *Server) handleAlertRanking(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.filteredAlerts(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, payload{Available: false, Reason: err.Error()})
		return
	}
	rows, err := analysis.RankAlerts(alerts)
	s.respond(w, r, rows, err)
}

func (s *Server) handleAlertMap(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.filteredAlerts(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, payload{Available: false, Reason: err.Error()})
		return
	}
	markers, err := analysis.AlertMarkers(alerts)
	s.respond(w, r, markers, err)
}

// handleAlertsByUnit is a deliberate placeholder: overlapping alerts with
// conservation-unit boundaries needs shapefile geometry the CSV sources do
// not carry.
func (s *Server) handleAlertsByUnit(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, payload{Available: false, Reason: reasonNeedsGeo})
}
