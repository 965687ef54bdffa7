package analysis

import (
	"fmt"
	"sort"

	"ribeira/internal/core"
)

// FireIndicator selects which fire measurement a ranking is built on.
type FireIndicator string

const (
	IndicatorRisk          FireIndicator = "risk"
	IndicatorPrecipitation FireIndicator = "precipitation"
	IndicatorDryDays       FireIndicator = "dry-days"
)

// ParseFireIndicator validates an indicator name from the API.
func ParseFireIndicator(s string) (FireIndicator, error) {
	switch FireIndicator(s) {
	case IndicatorRisk, IndicatorPrecipitation, IndicatorDryDays:
		return FireIndicator(s), nil
	case "":
		return IndicatorRisk, nil
	}
	return "", fmt.Errorf("unknown fire indicator %q", s)
}

// FireRankingRow is one municipality in a fire-indicator ranking.
type FireRankingRow struct {
	Municipality string  `json:"municipality"`
	Mean         float64 `json:"mean"`
	Max          float64 `json:"max"`
	Count        int     `json:"count"`
}

// RankFire ranks municipalities by the chosen indicator: mean fire risk
// (sorted by mean, rounded to 3), or peak precipitation / dry-day streak
// (sorted by max, rounded to 1). Only rows passing the indicator's
// validity rule take part.
func RankFire(t core.FireTable, indicator FireIndicator) ([]FireRankingRow, error) {
	var (
		value    func(core.FireRow) (float64, bool)
		has      bool
		decimals int
		byMean   bool
	)
	switch indicator {
	case IndicatorRisk:
		has = t.HasRisk
		decimals = 3
		byMean = true
		value = func(r core.FireRow) (float64, bool) { return r.Risk, r.RiskInRange() }
	case IndicatorPrecipitation:
		has = t.HasPrecipitation
		decimals = 1
		value = func(r core.FireRow) (float64, bool) {
			return r.Precipitation, r.PrecipitationValid && r.Precipitation >= 0
		}
	case IndicatorDryDays:
		has = t.HasDryDays
		decimals = 1
		value = func(r core.FireRow) (float64, bool) {
			return r.DryDays, r.DryDaysValid && r.DryDays >= 0
		}
	default:
		return nil, fmt.Errorf("unknown fire indicator %q", indicator)
	}
	if t.Empty() || !t.HasMunicipality || !has {
		return nil, ErrColumnMissing
	}

	type acc struct {
		sum   float64
		max   float64
		count int
	}
	groups := map[string]*acc{}
	for _, row := range t.Rows {
		v, ok := value(row)
		if !ok {
			continue
		}
		key := fireGroupKey(row)
		a, ok := groups[key]
		if !ok {
			a = &acc{max: v}
			groups[key] = a
		}
		if v > a.max {
			a.max = v
		}
		a.sum += v
		a.count++
	}
	if len(groups) == 0 {
		return nil, ErrNoData
	}

	out := make([]FireRankingRow, 0, len(groups))
	for name, a := range groups {
		out = append(out, FireRankingRow{
			Municipality: name,
			Mean:         Round(a.sum/float64(a.count), decimals),
			Max:          Round(a.max, decimals),
			Count:        a.count,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if byMean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Max > out[j].Max
	})
	return out, nil
}

// AlertRankingRow is one municipality in the deforestation ranking.
type AlertRankingRow struct {
	Position     int     `json:"position"`
	Municipality string  `json:"municipality"`
	TotalAreaHa  float64 `json:"totalAreaHa"`
	AlertCount   int     `json:"alertCount"`
	MeanAreaHa   float64 `json:"meanAreaHa"`
	FirstYear    int     `json:"firstYear"`
	LastYear     int     `json:"lastYear"`
}

// maxAlertRankingRows caps the deforestation ranking for display.
const maxAlertRankingRows = 10

// RankAlerts ranks municipalities by total alert area, descending, with
// alert count, mean area (rounded to 2) and the detection-year span. The
// table must carry municipality, area, and year columns.
func RankAlerts(t core.AlertTable) ([]AlertRankingRow, error) {
	if !t.HasMunicipality || !t.HasArea || !t.HasYear {
		return nil, ErrColumnMissing
	}
	type acc struct {
		sum         float64
		count       int
		areaCount   int
		first, last int
	}
	groups := map[string]*acc{}
	for _, row := range t.Rows {
		a, ok := groups[row.Municipality]
		if !ok {
			a = &acc{}
			groups[row.Municipality] = a
		}
		a.count++
		if row.AreaValid {
			a.sum += row.AreaHa
			a.areaCount++
		}
		if row.YearValid {
			if a.first == 0 || row.Year < a.first {
				a.first = row.Year
			}
			if row.Year > a.last {
				a.last = row.Year
			}
		}
	}
	if len(groups) == 0 {
		return nil, ErrNoData
	}

	out := make([]AlertRankingRow, 0, len(groups))
	for name, a := range groups {
		row := AlertRankingRow{
			Municipality: name,
			TotalAreaHa:  Round(a.sum, 2),
			AlertCount:   a.count,
			FirstYear:    a.first,
			LastYear:     a.last,
		}
		if a.areaCount > 0 {
			row.MeanAreaHa = Round(a.sum/float64(a.areaCount), 2)
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalAreaHa > out[j].TotalAreaHa })
	if len(out) > maxAlertRankingRows {
		out = out[:maxAlertRankingRows]
	}
	for i := range out {
		out[i].Position = i + 1
	}
	return out, nil
}
