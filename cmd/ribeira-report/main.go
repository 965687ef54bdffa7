// Command ribeira-report builds the XLSX report and the chart PNGs
// offline, without starting the HTTP server.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"ribeira/internal/analysis"
	"ribeira/internal/config"
	"ribeira/internal/core"
	"ribeira/internal/dataset"
	"ribeira/internal/export"
	"ribeira/internal/log"
	"ribeira/internal/render"
)

func main() {
	out := flag.String("out", ".", "directory to write the report and charts into")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentExport,
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		logger.Error("Failed to create output directory", log.FieldError, err, log.FieldPath, *out)
		os.Exit(1)
	}

	loader := dataset.NewLoader(logger.WithComponent(log.ComponentDataset))
	snap := dataset.LoadSnapshot(context.Background(), loader, dataset.SourcePaths{
		Alerts:       cfg.AlertsPath(),
		Registry:     cfg.RegistryPath(),
		Conservation: cfg.ConservationPath(),
		Fire:         cfg.FirePath(),
	})

	reportPath := filepath.Join(*out, "vale_ribeira_relatorio.xlsx")
	f, err := export.BuildReport(snap)
	if err != nil {
		logger.Error("Failed to build report", log.FieldError, err)
		os.Exit(1)
	}
	if err := f.SaveAs(reportPath); err != nil {
		logger.Error("Failed to save report", log.FieldError, err, log.FieldPath, reportPath)
		os.Exit(1)
	}
	logger.Info("Report written", log.FieldPath, reportPath)

	writeCharts(logger, snap, *out)
}

func writeCharts(logger *log.Logger, snap *core.Snapshot, out string) {
	alerts := analysis.FilterAlerts(snap.Alerts)

	if rows, err := analysis.MunicipalAlertArea(alerts); err == nil {
		if p, err := render.MunicipalAlertBar(rows); err == nil {
			savePNG(logger, p, filepath.Join(out, "alert-area.png"))
		}
	} else {
		logger.Warn("Skipping alert area chart", log.FieldError, err)
	}

	if points, err := analysis.MonthlyAlertArea(alerts); err == nil {
		if p, err := render.MonthlyLine(points, "Evolução Mensal dos Alertas", "Área (ha)"); err == nil {
			savePNG(logger, p, filepath.Join(out, "monthly-alerts.png"))
		}
	} else {
		logger.Warn("Skipping monthly alerts chart", log.FieldError, err)
	}

	fire := analysis.FilterFire(snap.Fire)
	if items, err := analysis.TopMeanRisk(fire, 7); err == nil {
		if p, err := render.TopRiskBar(items); err == nil {
			savePNG(logger, p, filepath.Join(out, "fire-risk.png"))
		}
	} else {
		logger.Warn("Skipping fire risk chart", log.FieldError, err)
	}
}

func savePNG(logger *log.Logger, p *plot.Plot, path string) {
	f, err := os.Create(path)
	if err != nil {
		logger.Error("Failed to create chart file", log.FieldError, err, log.FieldPath, path)
		return
	}
	defer f.Close()
	if err := render.WritePNG(p, f, 8*vg.Inch, 4*vg.Inch); err != nil {
		logger.Error("Failed to render chart", log.FieldError, err, log.FieldPath, path)
		return
	}
	logger.Info("Chart written", log.FieldPath, path)
}
