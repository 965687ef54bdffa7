package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ribeira/internal/core"
)

func TestMonthlyAlertArea(t *testing.T) {
	table := core.AlertTable{
		HasMunicipality: true, HasArea: true, HasDate: true,
		Rows: []core.AlertRow{
			{Municipality: "Cerro Azul", AreaHa: 2, AreaValid: true,
				DetectedAt: time.Date(2023, 5, 3, 0, 0, 0, 0, time.UTC), DateValid: true},
			{Municipality: "Cerro Azul", AreaHa: 3, AreaValid: true,
				DetectedAt: time.Date(2023, 5, 20, 0, 0, 0, 0, time.UTC), DateValid: true},
			{Municipality: "Adrianópolis", AreaHa: 7, AreaValid: true,
				DetectedAt: time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC), DateValid: true},
			{Municipality: "Cerro Azul", AreaHa: 100, AreaValid: true}, // no date
		},
	}

	points, err := MonthlyAlertArea(table)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, MonthPoint{Month: "2022-12", Value: 7, Count: 1}, points[0])
	assert.Equal(t, MonthPoint{Month: "2023-05", Value: 5, Count: 2}, points[1])
}

func TestMonthlyAlertAreaErrors(t *testing.T) {
	_, err := MonthlyAlertArea(core.AlertTable{HasArea: true})
	assert.ErrorIs(t, err, ErrColumnMissing)

	_, err = MonthlyAlertArea(core.AlertTable{HasArea: true, HasDate: true})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestMonthlyMeanRiskExcludesSentinels(t *testing.T) {
	ts := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	table := core.FireTable{
		HasMunicipality: true, HasRisk: true, HasTime: true,
		Rows: []core.FireRow{
			fireRowAt("CERRO AZUL", 0.2, ts),
			fireRowAt("CERRO AZUL", 1.5, ts), // sentinel, outside [0,1]
			fireRowAt("CERRO AZUL", 0.4, ts),
			fireRowAt("CERRO AZUL", -999, ts), // sentinel
		},
	}

	points, err := MonthlyMeanRisk(table)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "2023-08", points[0].Month)
	assert.Equal(t, 0.3, points[0].Value)
	assert.Equal(t, 2, points[0].Count)
}

func TestTopMeanRiskAscendingOrder(t *testing.T) {
	ts := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	table := core.FireTable{
		HasMunicipality: true, HasRisk: true, HasTime: true,
		Rows: []core.FireRow{
			fireRowAt("CERRO AZUL", 0.9, ts),
			fireRowAt("CERRO AZUL", 0.7, ts),
			fireRowAt("ADRIANÓPOLIS", 0.2, ts),
			fireRowAt("ITAPERUÇU", 0.5, ts),
		},
	}
	filtered := FilterFire(table)

	got, err := TopMeanRisk(filtered, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Top two by mean, then ascending for the bar layout.
	assert.Equal(t, MunicipalityValue{Municipality: "Itaperuçu", Value: 0.5}, got[0])
	assert.Equal(t, MunicipalityValue{Municipality: "Cerro Azul", Value: 0.8}, got[1])
}

func TestTopMeanPrecipitationDropsNegative(t *testing.T) {
	ts := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	row := func(name string, p float64) core.FireRow {
		r := fireRowAt(name, 0.1, ts)
		r.Precipitation, r.PrecipitationValid = p, true
		return r
	}
	table := core.FireTable{
		HasMunicipality: true, HasRisk: true, HasTime: true, HasPrecipitation: true,
		Rows: []core.FireRow{
			row("CERRO AZUL", 10.0),
			row("CERRO AZUL", -3.0), // invalid reading
			row("ADRIANÓPOLIS", 4.0),
		},
	}
	filtered := FilterFire(table)

	got, err := TopMeanPrecipitation(filtered, 7)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, MunicipalityValue{Municipality: "Adrianópolis", Value: 4.0}, got[0])
	assert.Equal(t, MunicipalityValue{Municipality: "Cerro Azul", Value: 10.0}, got[1])
}

func TestMunicipalAlertAreaIncludesZeroRows(t *testing.T) {
	table := core.AlertTable{
		HasMunicipality: true, HasArea: true,
		Rows: []core.AlertRow{
			{Municipality: "Cerro Azul", AreaHa: 12.5, AreaValid: true},
			{Municipality: "Cerro Azul", AreaHa: 2.51, AreaValid: true},
			{Municipality: "Adrianópolis", AreaHa: 30, AreaValid: true},
		},
	}

	got, err := MunicipalAlertArea(table)
	require.NoError(t, err)
	require.Len(t, got, len(core.Municipalities))

	assert.Equal(t, MunicipalSummary{Municipality: "Adrianópolis", TotalAreaHa: 30, AlertCount: 1}, got[0])
	assert.Equal(t, MunicipalSummary{Municipality: "Cerro Azul", TotalAreaHa: 15, AlertCount: 2}, got[1])
	for _, s := range got[2:] {
		assert.Zero(t, s.TotalAreaHa)
		assert.Zero(t, s.AlertCount)
	}
}

func TestRegistryDistribution(t *testing.T) {
	code := func(c int) core.RegistryRow { return core.RegistryRow{Code: c, CodeValid: true} }
	table := core.RegistryTable{
		HasCode: true,
		Rows: []core.RegistryRow{
			code(4100103), code(4100103), code(4100103), // Adrianópolis
			code(4104659),       // Cerro Azul
			code(4106902),       // Curitiba, outside the region
			{CodeValid: false},  // unparseable
		},
	}

	got, err := RegistryDistribution(table)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, MunicipalityCount{Municipality: "Cerro Azul", Count: 1}, got[0])
	assert.Equal(t, MunicipalityCount{Municipality: "Adrianópolis", Count: 3}, got[1])
}

func TestRegistryDistributionNoMappableCodes(t *testing.T) {
	table := core.RegistryTable{
		HasCode: true,
		Rows:    []core.RegistryRow{{Code: 4106902, CodeValid: true}},
	}
	_, err := RegistryDistribution(table)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestConservationAreas(t *testing.T) {
	table := core.ConservationTable{
		HasName: true, HasArea: true, HasMunicipality: true,
		Rows: []core.ConservationRow{
			{Name: "APA Pequena", AreaHa: 100, AreaValid: true},
			{Name: "Parque Grande", AreaHa: 27524.3, AreaValid: true},
			{Name: "Sem Área"},
		},
	}

	got, err := ConservationAreas(table)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Parque Grande", got[0].Name)
	assert.Equal(t, "APA Pequena", got[1].Name)
	assert.Equal(t, UnitArea{Name: "Sem Área", AreaHa: 0}, got[2])
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.3, Round(0.30000000000000004, 3))
	assert.Equal(t, 15.0, Round(15.01, 1))
	assert.Equal(t, 0.667, Round(2.0/3.0, 3))
	assert.Equal(t, -1.5, Round(-1.46, 1))
}
