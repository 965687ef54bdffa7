package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ribeira/internal/core"
)

func TestCombine(t *testing.T) {
	alerts := core.AlertTable{
		HasMunicipality: true, HasArea: true,
		Rows: []core.AlertRow{
			{Municipality: "Cerro Azul", AreaHa: 12.5, AreaValid: true},
			{Municipality: "Curitiba", AreaHa: 99, AreaValid: true}, // filtered out
		},
	}
	registry := core.RegistryTable{
		HasCode: true,
		Rows: []core.RegistryRow{
			{Code: 4100103, CodeValid: true},
			{Code: 4100103, CodeValid: true},
			{Code: 4104659, CodeValid: true},
		},
	}
	conservation := core.ConservationTable{
		HasName: true, HasMunicipality: true, HasArea: true,
		Rows: []core.ConservationRow{
			{Name: "Parque", Municipality: "Adrianópolis, Cerro Azul", AreaHa: 100, AreaValid: true},
		},
	}

	got := Combine(alerts, registry, conservation)
	require.Len(t, got.Rows, len(core.Municipalities))

	byName := map[string]CombinedRow{}
	for _, row := range got.Rows {
		byName[row.Municipality] = row
	}

	assert.Equal(t, 12.5, byName["Cerro Azul"].AlertAreaHa)
	assert.Equal(t, 1, byName["Cerro Azul"].RegistryCount)
	assert.Equal(t, 2, byName["Adrianópolis"].RegistryCount)

	// A unit naming two municipalities counts fully for both.
	assert.Equal(t, 100.0, byName["Adrianópolis"].ConservationHa)
	assert.Equal(t, 100.0, byName["Cerro Azul"].ConservationHa)
	assert.Zero(t, byName["Itaperuçu"].ConservationHa)

	assert.Equal(t, "TOTAL", got.Total.Municipality)
	assert.Equal(t, 12.5, got.Total.AlertAreaHa)
	assert.Equal(t, 3, got.Total.RegistryCount)
	assert.Equal(t, 200.0, got.Total.ConservationHa)
}

func TestCombineTotalIsColumnSum(t *testing.T) {
	alerts := core.AlertTable{
		HasMunicipality: true, HasArea: true,
		Rows: []core.AlertRow{
			{Municipality: "Cerro Azul", AreaHa: 1.26, AreaValid: true},
			{Municipality: "Adrianópolis", AreaHa: 2.24, AreaValid: true},
		},
	}

	got := Combine(alerts, core.RegistryTable{}, core.ConservationTable{})

	var area float64
	var count int
	for _, row := range got.Rows {
		area += row.AlertAreaHa
		count += row.RegistryCount
	}
	assert.Equal(t, Round(area, 1), got.Total.AlertAreaHa)
	assert.Equal(t, count, got.Total.RegistryCount)
}

func TestCombineEmptySources(t *testing.T) {
	got := Combine(core.AlertTable{}, core.RegistryTable{}, core.ConservationTable{})
	require.Len(t, got.Rows, len(core.Municipalities))
	for _, row := range got.Rows {
		assert.Zero(t, row.AlertAreaHa)
		assert.Zero(t, row.RegistryCount)
		assert.Zero(t, row.ConservationHa)
	}
	assert.Equal(t, CombinedRow{Municipality: "TOTAL"}, got.Total)
}
