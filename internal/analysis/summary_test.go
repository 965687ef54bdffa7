package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ribeira/internal/core"
)

func TestSummary(t *testing.T) {
	conservation := core.ConservationTable{
		HasName: true, HasArea: true,
		Rows: []core.ConservationRow{
			{Name: "Parque", AreaHa: 100, AreaValid: true},
			{Name: "APA", AreaHa: 50, AreaValid: true},
			{Name: "Sem Área"},
		},
	}
	registry := core.RegistryTable{
		HasCode: true,
		Rows: []core.RegistryRow{
			{Code: 4100103, CodeValid: true},
			{Code: 4106902, CodeValid: true}, // outside the region, still counted
			{CodeValid: false},
		},
	}
	alerts := core.AlertTable{
		HasMunicipality: true, HasArea: true,
		Rows: []core.AlertRow{
			{Municipality: "Cerro Azul", AreaHa: 12.5, AreaValid: true},
			{Municipality: "Curitiba", AreaHa: 99, AreaValid: true}, // filtered out
		},
	}

	cards := Summary(conservation, registry, alerts)

	assert.Equal(t, 12.5, cards.AlertAreaHa)
	assert.Equal(t, 1, cards.AlertCount)
	assert.Equal(t, 3, cards.RegistryCount, "registry count is the raw row count")
	assert.Equal(t, 7, cards.MunicipalityCount)
	assert.Equal(t, 150.0, cards.ConservationAreaHa)
}

func TestSummaryEmptySources(t *testing.T) {
	cards := Summary(core.ConservationTable{}, core.RegistryTable{}, core.AlertTable{})
	assert.Equal(t, Cards{MunicipalityCount: 7}, cards)
}
