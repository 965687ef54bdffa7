package analysis

import (
	"math/rand"
	"sort"

	"ribeira/internal/core"
)

// AlertMarker is one municipality on the deforestation map: alert totals
// anchored at the municipal seat, since alert rows carry no geometry.
type AlertMarker struct {
	Municipality string  `json:"municipality"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	TotalAreaHa  float64 `json:"totalAreaHa"`
	AlertCount   int     `json:"alertCount"`
}

// AlertMarkers aggregates filtered alerts per municipality and joins the
// fixed seat coordinates. Municipalities without alerts are omitted.
func AlertMarkers(t core.AlertTable) ([]AlertMarker, error) {
	if t.Empty() || !t.HasMunicipality || !t.HasArea {
		return nil, ErrColumnMissing
	}
	byName := map[string]*AlertMarker{}
	for _, row := range t.Rows {
		m, ok := byName[row.Municipality]
		if !ok {
			seat, found := core.Centroids[row.Municipality]
			if !found {
				continue
			}
			m = &AlertMarker{Municipality: row.Municipality, Lat: seat.Lat, Lon: seat.Lon}
			byName[row.Municipality] = m
		}
		m.AlertCount++
		if row.AreaValid {
			m.TotalAreaHa += row.AreaHa
		}
	}
	if len(byName) == 0 {
		return nil, ErrNoData
	}
	out := make([]AlertMarker, 0, len(byName))
	for _, name := range core.Municipalities {
		if m, ok := byName[name]; ok {
			m.TotalAreaHa = Round(m.TotalAreaHa, 1)
			out = append(out, *m)
		}
	}
	return out, nil
}

// FirePoint is one heat focus on the scatter map.
type FirePoint struct {
	Municipality  string  `json:"municipality"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	Risk          float64 `json:"risk"`
	Precipitation float64 `json:"precipitation"`
}

// FirePoints collects mappable heat foci: valid coordinates and a risk
// score inside [0,1]. When the precipitation column exists, negative values
// drop the row; when it does not, points carry zero precipitation. Results
// beyond limit are randomly sampled with the given seed so the same session
// always maps the same points.
func FirePoints(t core.FireTable, limit int, seed int64) ([]FirePoint, error) {
	if t.Empty() || !t.HasCoords || !t.HasRisk || !t.HasMunicipality {
		return nil, ErrColumnMissing
	}
	out := make([]FirePoint, 0, len(t.Rows))
	for _, row := range t.Rows {
		if !row.CoordsValid || !row.RiskInRange() {
			continue
		}
		p := FirePoint{
			Municipality: fireGroupKey(row),
			Lat:          row.Lat,
			Lon:          row.Lon,
			Risk:         row.Risk,
		}
		if t.HasPrecipitation {
			if !row.PrecipitationValid || row.Precipitation < 0 {
				continue
			}
			p.Precipitation = row.Precipitation
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}
	if limit > 0 && len(out) > limit {
		rng := rand.New(rand.NewSource(seed))
		idx := rng.Perm(len(out))[:limit]
		sort.Ints(idx)
		sampled := make([]FirePoint, 0, limit)
		for _, i := range idx {
			sampled = append(sampled, out[i])
		}
		out = sampled
	}
	return out, nil
}
