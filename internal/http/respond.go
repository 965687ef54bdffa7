package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"ribeira/internal/analysis"
	"ribeira/internal/log"
)

// payload is the uniform JSON envelope: a consumer always checks available
// before reading data, so "zero rows found" is never confused with "not
// computed".
type payload struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	Data      any    `json:"data,omitempty"`
}

const (
	reasonColumnMissing = "column_missing"
	reasonNoData        = "no_data"
	reasonNeedsGeo      = "requires_geographic_data"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respond maps an aggregation result to the envelope. ErrNoData and
// ErrColumnMissing are expected outcomes and return 200 with
// available:false; anything else is a server fault.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, data any, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, payload{Available: true, Data: data})
	case errors.Is(err, analysis.ErrColumnMissing):
		writeJSON(w, http.StatusOK, payload{Available: false, Reason: reasonColumnMissing})
	case errors.Is(err, analysis.ErrNoData):
		writeJSON(w, http.StatusOK, payload{Available: false, Reason: reasonNoData})
	default:
		s.logger.ErrorContext(r.Context(), "aggregation failed", log.FieldPath, r.URL.Path, log.FieldError, err)
		writeJSON(w, http.StatusInternalServerError, payload{Available: false, Reason: "internal_error"})
	}
}

// yearParam reads the optional ?year= filter; 0 means all years.
func yearParam(r *http.Request) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get("year"))
	if v == "" || v == "all" {
		return 0, nil
	}
	year, err := strconv.Atoi(v)
	if err != nil || year < 1900 || year > 2200 {
		return 0, errors.New("invalid year parameter")
	}
	return year, nil
}
