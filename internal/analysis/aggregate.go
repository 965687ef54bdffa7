package analysis

import (
	"math"
	"sort"

	"ribeira/internal/core"
)

// MonthPoint is one bucket of a monthly series. Month is "YYYY-MM".
type MonthPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// MunicipalityValue is one bar of a per-municipality chart.
type MunicipalityValue struct {
	Municipality string  `json:"municipality"`
	Value        float64 `json:"value"`
}

// MunicipalityCount is one bar of a per-municipality count chart.
type MunicipalityCount struct {
	Municipality string `json:"municipality"`
	Count        int    `json:"count"`
}

// MunicipalSummary is one row of the per-municipality alert breakdown.
type MunicipalSummary struct {
	Municipality string  `json:"municipality"`
	TotalAreaHa  float64 `json:"totalAreaHa"`
	AlertCount   int     `json:"alertCount"`
}

// UnitArea is one conservation unit with its registered area.
type UnitArea struct {
	Name   string  `json:"name"`
	AreaHa float64 `json:"areaHa"`
}

// MonthlyAlertArea sums alert area per calendar month of the detection
// date, ascending. Rows without a usable date or area are dropped.
func MonthlyAlertArea(t core.AlertTable) ([]MonthPoint, error) {
	if !t.HasDate || !t.HasArea {
		return nil, ErrColumnMissing
	}
	sums := map[string]*MonthPoint{}
	for _, row := range t.Rows {
		if !row.DateValid || !row.AreaValid {
			continue
		}
		key := row.DetectedAt.Format("2006-01")
		p, ok := sums[key]
		if !ok {
			p = &MonthPoint{Month: key}
			sums[key] = p
		}
		p.Value += row.AreaHa
		p.Count++
	}
	return monthOrder(sums)
}

// MonthlyMeanRisk averages the fire-risk score per calendar month,
// ascending. Scores outside [0,1] are unknown-value sentinels and are
// excluded, as are rows without a usable timestamp.
func MonthlyMeanRisk(t core.FireTable) ([]MonthPoint, error) {
	if !t.HasTime || !t.HasRisk {
		return nil, ErrColumnMissing
	}
	sums := map[string]*MonthPoint{}
	for _, row := range t.Rows {
		if !row.TimeValid || !row.RiskInRange() {
			continue
		}
		key := row.Time.Format("2006-01")
		p, ok := sums[key]
		if !ok {
			p = &MonthPoint{Month: key}
			sums[key] = p
		}
		p.Value += row.Risk
		p.Count++
	}
	points, err := monthOrder(sums)
	if err != nil {
		return nil, err
	}
	for i := range points {
		points[i].Value = Round(points[i].Value/float64(points[i].Count), 3)
	}
	return points, nil
}

func monthOrder(sums map[string]*MonthPoint) ([]MonthPoint, error) {
	if len(sums) == 0 {
		return nil, ErrNoData
	}
	out := make([]MonthPoint, 0, len(sums))
	for _, p := range sums {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// TopMeanRisk returns the n municipalities with the highest mean fire-risk
// score, sorted ascending so a horizontal bar chart puts the largest on
// top. Values are rounded to 3 decimals.
func TopMeanRisk(t core.FireTable, n int) ([]MunicipalityValue, error) {
	if !t.HasMunicipality || !t.HasRisk {
		return nil, ErrColumnMissing
	}
	return topMean(t.Rows, n, 3, func(r core.FireRow) (float64, bool) {
		return r.Risk, r.RiskInRange()
	})
}

// TopMeanPrecipitation returns the n municipalities with the highest mean
// accumulated precipitation, sorted ascending for display. Negative
// precipitation values are dropped. Values are rounded to 1 decimal.
func TopMeanPrecipitation(t core.FireTable, n int) ([]MunicipalityValue, error) {
	if !t.HasMunicipality || !t.HasPrecipitation {
		return nil, ErrColumnMissing
	}
	return topMean(t.Rows, n, 1, func(r core.FireRow) (float64, bool) {
		return r.Precipitation, r.PrecipitationValid && r.Precipitation >= 0
	})
}

func topMean(rows []core.FireRow, n, decimals int, value func(core.FireRow) (float64, bool)) ([]MunicipalityValue, error) {
	type acc struct {
		sum   float64
		count int
	}
	groups := map[string]*acc{}
	for _, row := range rows {
		v, ok := value(row)
		if !ok {
			continue
		}
		key := fireGroupKey(row)
		a, ok := groups[key]
		if !ok {
			a = &acc{}
			groups[key] = a
		}
		a.sum += v
		a.count++
	}
	if len(groups) == 0 {
		return nil, ErrNoData
	}
	out := make([]MunicipalityValue, 0, len(groups))
	for name, a := range groups {
		out = append(out, MunicipalityValue{Municipality: name, Value: Round(a.sum/float64(a.count), decimals)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if len(out) > n {
		out = out[:n]
	}
	// Ascending for the horizontal bar layout.
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out, nil
}

// MunicipalAlertArea totals alert area and count per municipality over the
// already-filtered table, including zero rows for the municipalities with
// no alerts, sorted by total area descending.
func MunicipalAlertArea(t core.AlertTable) ([]MunicipalSummary, error) {
	if t.Empty() || !t.HasMunicipality {
		return nil, ErrNoData
	}
	byName := map[string]*MunicipalSummary{}
	for _, row := range t.Rows {
		s, ok := byName[row.Municipality]
		if !ok {
			s = &MunicipalSummary{Municipality: row.Municipality}
			byName[row.Municipality] = s
		}
		s.AlertCount++
		if row.AreaValid {
			s.TotalAreaHa += row.AreaHa
		}
	}
	out := make([]MunicipalSummary, 0, len(core.Municipalities))
	for _, name := range core.Municipalities {
		if s, ok := byName[name]; ok {
			s.TotalAreaHa = Round(s.TotalAreaHa, 1)
			out = append(out, *s)
		} else {
			out = append(out, MunicipalSummary{Municipality: name})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalAreaHa > out[j].TotalAreaHa })
	return out, nil
}

// RegistryDistribution counts land-registry records per municipality,
// resolving the IBGE code; unmapped codes are outside the region and are
// dropped. Sorted ascending by count for the horizontal bar layout.
func RegistryDistribution(t core.RegistryTable) ([]MunicipalityCount, error) {
	if t.Empty() || !t.HasCode {
		return nil, ErrColumnMissing
	}
	counts := map[string]int{}
	for _, row := range t.Rows {
		if !row.CodeValid {
			continue
		}
		if name, ok := core.MunicipalityForCode(row.Code); ok {
			counts[name]++
		}
	}
	if len(counts) == 0 {
		return nil, ErrNoData
	}
	out := make([]MunicipalityCount, 0, len(counts))
	for name, c := range counts {
		out = append(out, MunicipalityCount{Municipality: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count < out[j].Count
		}
		return out[i].Municipality < out[j].Municipality
	})
	return out, nil
}

// ConservationAreas lists conservation units by registered area,
// descending. A missing area column yields zero areas, not an error; the
// unit names are still worth showing.
func ConservationAreas(t core.ConservationTable) ([]UnitArea, error) {
	if t.Empty() || !t.HasName {
		return nil, ErrColumnMissing
	}
	out := make([]UnitArea, 0, len(t.Rows))
	for _, row := range t.Rows {
		u := UnitArea{Name: row.Name}
		if row.AreaValid {
			u.AreaHa = row.AreaHa
		}
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AreaHa > out[j].AreaHa })
	return out, nil
}

// Round rounds v to the given number of decimal places.
func Round(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}
