package analysis

import (
	"sort"

	"ribeira/internal/core"
)

// The two municipality filters are intentionally different, mirroring how
// the upstream sources spell names: the alert export uses properly accented
// mixed case, the fire-focus export uses uppercase. Both return an empty
// table when the municipality column is absent or the input is empty; that
// is "no data", not an error.

// FilterAlerts keeps alert rows whose municipality matches one of the seven
// canonical names exactly.
func FilterAlerts(t core.AlertTable) core.AlertTable {
	if t.Empty() || !t.HasMunicipality {
		return core.AlertTable{}
	}
	out := t
	out.Rows = make([]core.AlertRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		if core.IsCanonical(row.Municipality) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// FilterFire keeps fire rows whose uppercased, trimmed municipality matches
// one of the seven names. Matching rows get their canonical name attached
// so later grouping is spelled consistently.
func FilterFire(t core.FireTable) core.FireTable {
	if t.Empty() || !t.HasMunicipality {
		return core.FireTable{}
	}
	out := t
	out.Rows = make([]core.FireRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		if name, ok := core.MatchUpper(row.Municipality); ok {
			row.Canonical = name
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// AlertsForYear restricts alerts to a single detection year. Year 0 means
// all years. Rows whose year failed to parse are dropped when a specific
// year is requested.
func AlertsForYear(t core.AlertTable, year int) core.AlertTable {
	if year == 0 || !t.HasYear {
		return t
	}
	out := t
	out.Rows = make([]core.AlertRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		if row.YearValid && row.Year == year {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// FireForYear restricts fire rows to a single calendar year of DataHora.
// Year 0 means all years.
func FireForYear(t core.FireTable, year int) core.FireTable {
	if year == 0 || !t.HasTime {
		return t
	}
	out := t
	out.Rows = make([]core.FireRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		if row.TimeValid && row.Time.Year() == year {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// AlertYears lists the distinct detection years present, ascending.
func AlertYears(t core.AlertTable) []int {
	if !t.HasYear {
		return nil
	}
	seen := map[int]struct{}{}
	for _, row := range t.Rows {
		if row.YearValid {
			seen[row.Year] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// FireYears lists the distinct observation years present, ascending.
func FireYears(t core.FireTable) []int {
	if !t.HasTime {
		return nil
	}
	seen := map[int]struct{}{}
	for _, row := range t.Rows {
		if row.TimeValid {
			seen[row.Time.Year()] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[int]struct{}) []int {
	if len(set) == 0 {
		return nil
	}
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// fireGroupKey is the grouping label for a filtered fire row: the canonical
// name when the filter resolved one, otherwise the raw spelling.
func fireGroupKey(row core.FireRow) string {
	if row.Canonical != "" {
		return row.Canonical
	}
	return row.Municipality
}
