package http

import (
	"net/http"

	"ribeira/internal/analysis"
	"ribeira/internal/core"
	"ribeira/internal/log"
)

// topMunicipalities caps the fire bar charts at the region size.
const topMunicipalities = 7

func (s *Server) filteredFire(r *http.Request) (core.FireTable, error) {
	year, err := yearParam(r)
	if err != nil {
		return core.FireTable{}, err
	}
	return analysis.FireForYear(analysis.FilterFire(s.snap.Fire), year), nil
}

func (s *Server) handleFireYears(w http.ResponseWriter, r *http.Request) {
	years := analysis.FireYears(analysis.FilterFire(s.snap.Fire))
	if len(years) == 0 {
		s.respond(w, r, nil, analysis.ErrNoData)
		return
	}
	s.respond(w, r, years, nil)
}

func (s *Server) handleFireMonthlyRisk(w http.ResponseWriter, r *http.Request) {
	fire, err := s.filteredFire(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, payload{Available: false, Reason: err.Error()})
		return
	}
	points, err := analysis.MonthlyMeanRisk(fire)
	s.respond(w, r, points, err)
}

func (s *Server) handleFireTopRisk(w http.ResponseWriter, r *http.Request) {
	fire, err := s.filteredFire(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, payload{Available: false, Reason: err.Error()})
		return
	}
	items, err := analysis.TopMeanRisk(fire, topMunicipalities)
	s.respond(w, r, items, err)
}

func (s *Server) handleFireTopPrecipitation(w http.ResponseWriter, r *http.Request) {
	fire, err := s.filteredFire(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, payload{Available: false, Reason: err.Error()})
		return
	}
	items, err := analysis.TopMeanPrecipitation(fire, topMunicipalities)
	s.respond(w, r, items, err)
}

func (s *Server) handleFireRanking(w http.ResponseWriter, r *http.Request) {
	indicator, err := analysis.ParseFireIndicator(r.URL.Query().Get("indicator"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, payload{Available: false, Reason: err.Error()})
		return
	}
	fire, err := s.filteredFire(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, payload{Available: false, Reason: err.Error()})
		return
	}
	rows, err := analysis.RankFire(fire, indicator)
	if err == nil {
		s.logger.Debug("fire ranking computed", log.FieldIndicator, string(indicator), log.FieldRows, len(rows))
	}
	s.respond(w, r, rows, err)
}

func (s *Server) handleFireMap(w http.ResponseWriter, r *http.Request) {
	fire, err := s.filteredFire(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, payload{Available: false, Reason: err.Error()})
		return
	}
	points, err := analysis.FirePoints(fire, s.sampleCap, s.sampleSeed)
	s.respond(w, r, points, err)
}
