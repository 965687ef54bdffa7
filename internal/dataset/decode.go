package dataset

import (
	"strconv"
	"strings"
	"time"

	"ribeira/internal/core"
)

// Column names as they appear in the upstream CSV exports. Each source
// spells its headers differently; that is upstream reality, not ours to fix.
const (
	ColAlertMunicipality = "MUNICIPIO"
	ColAlertArea         = "AREAHA"
	ColAlertYear         = "ANODETEC"
	ColAlertDate         = "DATADETEC"

	ColRegistryCode = "municipio_"

	ColUnitName         = "nome_uc"
	ColUnitArea         = "ha_total"
	ColUnitMunicipality = "municipio"

	ColFireMunicipality  = "Municipio"
	ColFireTime          = "DataHora"
	ColFireRisk          = "RiscoFogo"
	ColFirePrecipitation = "Precipitacao"
	ColFireDryDays       = "DiaSemChuva"
	ColFireLatitude      = "Latitude"
	ColFireLongitude     = "Longitude"
)

// DecodeAlerts turns a raw table into the typed alert snapshot.
func DecodeAlerts(t Table) core.AlertTable {
	out := core.AlertTable{
		HasMunicipality: t.HasColumn(ColAlertMunicipality),
		HasArea:         t.HasColumn(ColAlertArea),
		HasYear:         t.HasColumn(ColAlertYear),
		HasDate:         t.HasColumn(ColAlertDate),
	}
	out.Rows = make([]core.AlertRow, 0, len(t.Rows))
	for i := range t.Rows {
		var row core.AlertRow
		row.Municipality = strings.TrimSpace(t.Cell(i, ColAlertMunicipality))
		row.AreaHa, row.AreaValid = parseFloat(t.Cell(i, ColAlertArea))
		row.Year, row.YearValid = parseYear(t.Cell(i, ColAlertYear))
		row.DetectedAt, row.DateValid = parseTime(t.Cell(i, ColAlertDate))
		out.Rows = append(out.Rows, row)
	}
	return out
}

// DecodeRegistry turns a raw table into the typed land-registry snapshot.
func DecodeRegistry(t Table) core.RegistryTable {
	out := core.RegistryTable{HasCode: t.HasColumn(ColRegistryCode)}
	out.Rows = make([]core.RegistryRow, 0, len(t.Rows))
	for i := range t.Rows {
		var row core.RegistryRow
		row.Code, row.CodeValid = parseInt(t.Cell(i, ColRegistryCode))
		out.Rows = append(out.Rows, row)
	}
	return out
}

// DecodeConservation turns a raw table into the typed conservation-unit
// snapshot.
func DecodeConservation(t Table) core.ConservationTable {
	out := core.ConservationTable{
		HasName:         t.HasColumn(ColUnitName),
		HasMunicipality: t.HasColumn(ColUnitMunicipality),
		HasArea:         t.HasColumn(ColUnitArea),
	}
	out.Rows = make([]core.ConservationRow, 0, len(t.Rows))
	for i := range t.Rows {
		var row core.ConservationRow
		row.Name = strings.TrimSpace(t.Cell(i, ColUnitName))
		row.Municipality = strings.TrimSpace(t.Cell(i, ColUnitMunicipality))
		row.AreaHa, row.AreaValid = parseFloat(t.Cell(i, ColUnitArea))
		out.Rows = append(out.Rows, row)
	}
	return out
}

// DecodeFire turns a raw table into the typed fire-risk snapshot.
func DecodeFire(t Table) core.FireTable {
	out := core.FireTable{
		HasMunicipality:  t.HasColumn(ColFireMunicipality),
		HasTime:          t.HasColumn(ColFireTime),
		HasRisk:          t.HasColumn(ColFireRisk),
		HasPrecipitation: t.HasColumn(ColFirePrecipitation),
		HasDryDays:       t.HasColumn(ColFireDryDays),
		HasCoords:        t.HasColumn(ColFireLatitude) && t.HasColumn(ColFireLongitude),
	}
	out.Rows = make([]core.FireRow, 0, len(t.Rows))
	for i := range t.Rows {
		var row core.FireRow
		row.Municipality = strings.TrimSpace(t.Cell(i, ColFireMunicipality))
		row.Time, row.TimeValid = parseTime(t.Cell(i, ColFireTime))
		row.Risk, row.RiskValid = parseFloat(t.Cell(i, ColFireRisk))
		row.Precipitation, row.PrecipitationValid = parseFloat(t.Cell(i, ColFirePrecipitation))
		row.DryDays, row.DryDaysValid = parseFloat(t.Cell(i, ColFireDryDays))
		lat, latOK := parseFloat(t.Cell(i, ColFireLatitude))
		lon, lonOK := parseFloat(t.Cell(i, ColFireLongitude))
		row.Lat, row.Lon = lat, lon
		row.CoordsValid = latOK && lonOK
		out.Rows = append(out.Rows, row)
	}
	return out
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	// Some exports write integer codes as floats ("4100103.0").
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return int(f), true
	}
	return 0, false
}

func parseYear(s string) (int, bool) {
	v, ok := parseInt(s)
	if !ok || v < 1900 || v > 2200 {
		return 0, false
	}
	return v, true
}

// timeLayouts covers the formats seen across the upstream exports.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
