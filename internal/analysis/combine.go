package analysis

import "ribeira/internal/core"

// CombinedRow is one municipality of the unified cross-source table.
type CombinedRow struct {
	Municipality   string  `json:"municipality"`
	AlertAreaHa    float64 `json:"alertAreaHa"`
	RegistryCount  int     `json:"registryCount"`
	ConservationHa float64 `json:"conservationHa"`
}

// CombinedTable joins the three per-municipality aggregates, one row per
// canonical municipality plus a trailing total.
type CombinedTable struct {
	Rows  []CombinedRow `json:"rows"`
	Total CombinedRow   `json:"total"`
}

// Combine builds the unified table: alert area per municipality (exact-name
// filter), registry-record count (code lookup), conservation area
// (free-text attribution). A source with nothing for a municipality
// contributes zero. The total row is the column-wise sum of the seven data
// rows. Hectare columns are rounded to 1 decimal.
func Combine(alerts core.AlertTable, registry core.RegistryTable, conservation core.ConservationTable) CombinedTable {
	alertArea := map[string]float64{}
	filtered := FilterAlerts(alerts)
	if filtered.HasArea {
		for _, row := range filtered.Rows {
			if row.AreaValid {
				alertArea[row.Municipality] += row.AreaHa
			}
		}
	}

	registryCount := map[string]int{}
	if registry.HasCode {
		for _, row := range registry.Rows {
			if !row.CodeValid {
				continue
			}
			if name, ok := core.MunicipalityForCode(row.Code); ok {
				registryCount[name]++
			}
		}
	}

	conservationArea := map[string]float64{}
	if conservation.HasMunicipality && conservation.HasArea {
		for _, row := range conservation.Rows {
			if !row.AreaValid {
				continue
			}
			// A unit spanning several municipalities counts fully for
			// each one it names; tabular data has no per-municipality
			// split of the area.
			for _, name := range core.Municipalities {
				if core.Mentions(row.Municipality, name) {
					conservationArea[name] += row.AreaHa
				}
			}
		}
	}

	table := CombinedTable{
		Rows:  make([]CombinedRow, 0, len(core.Municipalities)),
		Total: CombinedRow{Municipality: "TOTAL"},
	}
	for _, name := range core.Municipalities {
		row := CombinedRow{
			Municipality:   name,
			AlertAreaHa:    Round(alertArea[name], 1),
			RegistryCount:  registryCount[name],
			ConservationHa: Round(conservationArea[name], 1),
		}
		table.Rows = append(table.Rows, row)
		table.Total.AlertAreaHa += row.AlertAreaHa
		table.Total.RegistryCount += row.RegistryCount
		table.Total.ConservationHa += row.ConservationHa
	}
	table.Total.AlertAreaHa = Round(table.Total.AlertAreaHa, 1)
	table.Total.ConservationHa = Round(table.Total.ConservationHa, 1)
	return table
}
