package http

import (
	"net/http"

	"ribeira/internal/analysis"
)

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := analysis.Summary(s.snap.Conservation, s.snap.Registry, s.snap.Alerts)
	s.respond(w, r, cards, nil)
}

func (s *Server) handleRegistryDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := analysis.RegistryDistribution(s.snap.Registry)
	s.respond(w, r, dist, err)
}

func (s *Server) handleConservationAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := analysis.ConservationAreas(s.snap.Conservation)
	s.respond(w, r, areas, err)
}

func (s *Server) handleUnified(w http.ResponseWriter, r *http.Request) {
	table := analysis.Combine(s.snap.Alerts, s.snap.Registry, s.snap.Conservation)
	s.respond(w, r, table, nil)
}
