package analysis

import "ribeira/internal/core"

// Cards holds the five headline indicators shown above the first tab.
type Cards struct {
	AlertAreaHa        float64 `json:"alertAreaHa"`
	RegistryCount      int     `json:"registryCount"`
	MunicipalityCount  int     `json:"municipalityCount"`
	AlertCount         int     `json:"alertCount"`
	ConservationAreaHa float64 `json:"conservationAreaHa"`
}

// Summary computes the headline indicators. Alert figures are restricted to
// the seven municipalities; the registry count and conservation area are
// plain totals over their sources, matching how the region extracts are
// published (already scoped upstream). An empty or column-less source
// contributes zero; Summary never fails.
func Summary(conservation core.ConservationTable, registry core.RegistryTable, alerts core.AlertTable) Cards {
	cards := Cards{MunicipalityCount: len(core.Municipalities)}

	if conservation.HasArea {
		for _, row := range conservation.Rows {
			if row.AreaValid {
				cards.ConservationAreaHa += row.AreaHa
			}
		}
	}

	if alerts.HasArea {
		filtered := FilterAlerts(alerts)
		cards.AlertCount = len(filtered.Rows)
		for _, row := range filtered.Rows {
			if row.AreaValid {
				cards.AlertAreaHa += row.AreaHa
			}
		}
	}

	cards.RegistryCount = len(registry.Rows)

	return cards
}
