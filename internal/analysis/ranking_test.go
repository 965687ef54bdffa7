package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ribeira/internal/core"
)

func TestParseFireIndicator(t *testing.T) {
	cases := []struct {
		in   string
		want FireIndicator
		ok   bool
	}{
		{"", IndicatorRisk, true},
		{"risk", IndicatorRisk, true},
		{"precipitation", IndicatorPrecipitation, true},
		{"dry-days", IndicatorDryDays, true},
		{"humidity", "", false},
		{"RISK", "", false},
	}
	for _, tc := range cases {
		got, err := ParseFireIndicator(tc.in)
		if tc.ok {
			require.NoError(t, err, tc.in)
			assert.Equal(t, tc.want, got)
		} else {
			assert.Error(t, err, tc.in)
		}
	}
}

func TestRankFireByRisk(t *testing.T) {
	ts := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	table := core.FireTable{
		HasMunicipality: true, HasRisk: true, HasTime: true,
		Rows: []core.FireRow{
			fireRowAt("CERRO AZUL", 0.9, ts),
			fireRowAt("CERRO AZUL", 0.5, ts),
			fireRowAt("CERRO AZUL", 1.2, ts), // sentinel, ignored
			fireRowAt("ADRIANÓPOLIS", 0.3, ts),
		},
	}
	filtered := FilterFire(table)

	got, err := RankFire(filtered, IndicatorRisk)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, FireRankingRow{Municipality: "Cerro Azul", Mean: 0.7, Max: 0.9, Count: 2}, got[0])
	assert.Equal(t, FireRankingRow{Municipality: "Adrianópolis", Mean: 0.3, Max: 0.3, Count: 1}, got[1])
}

func TestRankFireByPrecipitationSortsByMax(t *testing.T) {
	ts := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	row := func(name string, p float64) core.FireRow {
		r := fireRowAt(name, 0.1, ts)
		r.Precipitation, r.PrecipitationValid = p, true
		return r
	}
	table := core.FireTable{
		HasMunicipality: true, HasRisk: true, HasTime: true, HasPrecipitation: true,
		Rows: []core.FireRow{
			row("CERRO AZUL", 5.0),
			row("CERRO AZUL", 5.0), // high mean, low peak
			row("ADRIANÓPOLIS", 1.0),
			row("ADRIANÓPOLIS", 20.0), // low mean, high peak
		},
	}
	filtered := FilterFire(table)

	got, err := RankFire(filtered, IndicatorPrecipitation)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Adrianópolis", got[0].Municipality, "peak precipitation decides the order")
	assert.Equal(t, 20.0, got[0].Max)
	assert.Equal(t, 10.5, got[0].Mean)
}

func TestRankFireErrors(t *testing.T) {
	_, err := RankFire(core.FireTable{HasMunicipality: true, HasRisk: true}, IndicatorRisk)
	assert.ErrorIs(t, err, ErrColumnMissing)

	ts := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	onlySentinels := core.FireTable{
		HasMunicipality: true, HasRisk: true,
		Rows: []core.FireRow{fireRowAt("CERRO AZUL", -999, ts)},
	}
	_, err = RankFire(onlySentinels, IndicatorRisk)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = RankFire(onlySentinels, FireIndicator("bogus"))
	assert.Error(t, err)
}

func TestRankAlerts(t *testing.T) {
	table := core.AlertTable{
		HasMunicipality: true, HasArea: true, HasYear: true,
		Rows: []core.AlertRow{
			alertRow("Cerro Azul", 10, 2021),
			alertRow("Cerro Azul", 20, 2023),
			alertRow("Adrianópolis", 5, 2022),
		},
	}

	got, err := RankAlerts(table)
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, 1, first.Position)
	assert.Equal(t, "Cerro Azul", first.Municipality)
	assert.Equal(t, 30.0, first.TotalAreaHa)
	assert.Equal(t, 2, first.AlertCount)
	assert.Equal(t, 15.0, first.MeanAreaHa)
	assert.Equal(t, 2021, first.FirstYear)
	assert.Equal(t, 2023, first.LastYear)

	assert.Equal(t, 2, got[1].Position)
	assert.Equal(t, "Adrianópolis", got[1].Municipality)
}

func TestRankAlertsCap(t *testing.T) {
	table := core.AlertTable{HasMunicipality: true, HasArea: true, HasYear: true}
	for i := 0; i < 15; i++ {
		name := string(rune('A' + i))
		table.Rows = append(table.Rows, alertRow(name, float64(i+1), 2023))
	}

	got, err := RankAlerts(table)
	require.NoError(t, err)
	assert.Len(t, got, maxAlertRankingRows)
	assert.Equal(t, "O", got[0].Municipality, "largest area first")
}

func TestRankAlertsMissingYearColumn(t *testing.T) {
	table := core.AlertTable{
		HasMunicipality: true, HasArea: true,
		Rows: []core.AlertRow{alertRow("Cerro Azul", 1, 2023)},
	}
	_, err := RankAlerts(table)
	assert.ErrorIs(t, err, ErrColumnMissing)
}
