package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ribeira/internal/analysis"
	"ribeira/internal/core"
)

// Sheet names, as shown to the report's readers.
const (
	sheetSummary  = "Resumo"
	sheetUnified  = "Municípios"
	sheetAlerts   = "Desmatamento"
	sheetFireRisk = "Queimadas"
)

// BuildReport assembles the dashboard's tables into a workbook: headline
// indicators, the unified per-municipality table with its TOTAL row, the
// deforestation ranking, and the fire-indicator rankings. Sources with no
// data produce sheets with headers only.
func BuildReport(snap *core.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeSummary(f, snap); err != nil {
		return nil, fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeUnified(f, snap); err != nil {
		return nil, fmt.Errorf("unified sheet: %w", err)
	}
	if err := writeAlertRanking(f, snap); err != nil {
		return nil, fmt.Errorf("alert ranking sheet: %w", err)
	}
	if err := writeFireRankings(f, snap); err != nil {
		return nil, fmt.Errorf("fire ranking sheet: %w", err)
	}

	// The default sheet is replaced by Resumo.
	_ = f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(sheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

func writeSummary(f *excelize.File, snap *core.Snapshot) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}
	cards := analysis.Summary(snap.Conservation, snap.Registry, snap.Alerts)

	rows := []struct {
		label string
		value any
	}{
		{"Área de Alertas (ha)", analysis.Round(cards.AlertAreaHa, 1)},
		{"Registros SIGEF", cards.RegistryCount},
		{"Municípios", cards.MunicipalityCount},
		{"Quantidade de Alertas", cards.AlertCount},
		{"Área das UCs (ha)", analysis.Round(cards.ConservationAreaHa, 1)},
	}
	f.SetCellValue(sheetSummary, "A1", "Indicador")
	f.SetCellValue(sheetSummary, "B1", "Valor")
	for i, row := range rows {
		f.SetCellValue(sheetSummary, "A"+fmt.Sprint(i+2), row.label)
		f.SetCellValue(sheetSummary, "B"+fmt.Sprint(i+2), row.value)
	}
	return nil
}

func writeUnified(f *excelize.File, snap *core.Snapshot) error {
	if _, err := f.NewSheet(sheetUnified); err != nil {
		return err
	}
	table := analysis.Combine(snap.Alerts, snap.Registry, snap.Conservation)

	f.SetCellValue(sheetUnified, "A1", "Município")
	f.SetCellValue(sheetUnified, "B1", "Alertas (ha)")
	f.SetCellValue(sheetUnified, "C1", "SIGEF (registros)")
	f.SetCellValue(sheetUnified, "D1", "CNUC (ha)")
	line := 2
	for _, row := range append(table.Rows, table.Total) {
		f.SetCellValue(sheetUnified, "A"+fmt.Sprint(line), row.Municipality)
		f.SetCellValue(sheetUnified, "B"+fmt.Sprint(line), row.AlertAreaHa)
		f.SetCellValue(sheetUnified, "C"+fmt.Sprint(line), row.RegistryCount)
		f.SetCellValue(sheetUnified, "D"+fmt.Sprint(line), row.ConservationHa)
		line++
	}
	return nil
}

func writeAlertRanking(f *excelize.File, snap *core.Snapshot) error {
	if _, err := f.NewSheet(sheetAlerts); err != nil {
		return err
	}
	f.SetCellValue(sheetAlerts, "A1", "Posição")
	f.SetCellValue(sheetAlerts, "B1", "Município")
	f.SetCellValue(sheetAlerts, "C1", "Área Total (ha)")
	f.SetCellValue(sheetAlerts, "D1", "Qtd Alertas")
	f.SetCellValue(sheetAlerts, "E1", "Área Média (ha)")
	f.SetCellValue(sheetAlerts, "F1", "Ano Inicial")
	f.SetCellValue(sheetAlerts, "G1", "Ano Final")

	rows, err := analysis.RankAlerts(analysis.FilterAlerts(snap.Alerts))
	if err != nil {
		// Header-only sheet when the source has nothing usable.
		return nil
	}
	for i, row := range rows {
		line := fmt.Sprint(i + 2)
		f.SetCellValue(sheetAlerts, "A"+line, row.Position)
		f.SetCellValue(sheetAlerts, "B"+line, row.Municipality)
		f.SetCellValue(sheetAlerts, "C"+line, row.TotalAreaHa)
		f.SetCellValue(sheetAlerts, "D"+line, row.AlertCount)
		f.SetCellValue(sheetAlerts, "E"+line, row.MeanAreaHa)
		f.SetCellValue(sheetAlerts, "F"+line, row.FirstYear)
		f.SetCellValue(sheetAlerts, "G"+line, row.LastYear)
	}
	return nil
}

var fireIndicators = []struct {
	indicator analysis.FireIndicator
	title     string
}{
	{analysis.IndicatorRisk, "Risco de Fogo"},
	{analysis.IndicatorPrecipitation, "Precipitação (mm)"},
	{analysis.IndicatorDryDays, "Dias Sem Chuva"},
}

func writeFireRankings(f *excelize.File, snap *core.Snapshot) error {
	if _, err := f.NewSheet(sheetFireRisk); err != nil {
		return err
	}
	fire := analysis.FilterFire(snap.Fire)

	line := 1
	for _, block := range fireIndicators {
		f.SetCellValue(sheetFireRisk, "A"+fmt.Sprint(line), block.title)
		line++
		f.SetCellValue(sheetFireRisk, "A"+fmt.Sprint(line), "Município")
		f.SetCellValue(sheetFireRisk, "B"+fmt.Sprint(line), "Média")
		f.SetCellValue(sheetFireRisk, "C"+fmt.Sprint(line), "Máximo")
		f.SetCellValue(sheetFireRisk, "D"+fmt.Sprint(line), "Registros")
		line++

		rows, err := analysis.RankFire(fire, block.indicator)
		if err == nil {
			for _, row := range rows {
				f.SetCellValue(sheetFireRisk, "A"+fmt.Sprint(line), row.Municipality)
				f.SetCellValue(sheetFireRisk, "B"+fmt.Sprint(line), row.Mean)
				f.SetCellValue(sheetFireRisk, "C"+fmt.Sprint(line), row.Max)
				f.SetCellValue(sheetFireRisk, "D"+fmt.Sprint(line), row.Count)
				line++
			}
		}
		line++ // blank separator between indicator blocks
	}
	return nil
}
