package dataset

import (
	"testing"
	"time"
)

func TestDecodeAlerts(t *testing.T) {
	tbl := NewTable(
		[]string{"MUNICIPIO", "AREAHA", "ANODETEC", "DATADETEC"},
		[][]string{
			{"Cerro Azul", "12.5", "2023", "2023-05-10"},
			{" Adrianópolis ", "not-a-number", "abc", ""},
			{"Curitiba", "3.0", "1500", "2023/01/02"},
		},
	)
	out := DecodeAlerts(tbl)

	if !out.HasMunicipality || !out.HasArea || !out.HasYear || !out.HasDate {
		t.Fatalf("column flags wrong: %+v", out)
	}
	if len(out.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(out.Rows))
	}

	r := out.Rows[0]
	if r.Municipality != "Cerro Azul" || !r.AreaValid || r.AreaHa != 12.5 || !r.YearValid || r.Year != 2023 || !r.DateValid {
		t.Fatalf("row 0 decoded wrong: %+v", r)
	}
	if r.DetectedAt != time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("row 0 date wrong: %v", r.DetectedAt)
	}

	r = out.Rows[1]
	if r.Municipality != "Adrianópolis" || r.AreaValid || r.YearValid || r.DateValid {
		t.Fatalf("row 1 should trim name and flag fields invalid: %+v", r)
	}

	// Years outside a plausible range are invalid even when numeric.
	if out.Rows[2].YearValid {
		t.Fatalf("year 1500 should be invalid")
	}
}

func TestDecodeAlertsMissingColumns(t *testing.T) {
	tbl := NewTable([]string{"MUNICIPIO"}, [][]string{{"Cerro Azul"}})
	out := DecodeAlerts(tbl)
	if out.HasArea || out.HasYear || out.HasDate {
		t.Fatalf("missing columns should be flagged absent: %+v", out)
	}
	if out.Rows[0].AreaValid || out.Rows[0].YearValid {
		t.Fatalf("fields from absent columns must be invalid")
	}
}

func TestDecodeRegistryFloatCodes(t *testing.T) {
	tbl := NewTable(
		[]string{"municipio_"},
		[][]string{{"4100103"}, {"4104659.0"}, {"4104659.5"}, {""}},
	)
	out := DecodeRegistry(tbl)
	if !out.HasCode {
		t.Fatal("code column should be present")
	}

	if !out.Rows[0].CodeValid || out.Rows[0].Code != 4100103 {
		t.Fatalf("plain integer code decoded wrong: %+v", out.Rows[0])
	}
	if !out.Rows[1].CodeValid || out.Rows[1].Code != 4104659 {
		t.Fatalf("float-typed code should decode: %+v", out.Rows[1])
	}
	if out.Rows[2].CodeValid {
		t.Fatalf("fractional code should be invalid: %+v", out.Rows[2])
	}
	if out.Rows[3].CodeValid {
		t.Fatalf("empty code should be invalid")
	}
}

func TestDecodeConservation(t *testing.T) {
	tbl := NewTable(
		[]string{"nome_uc", "ha_total", "municipio"},
		[][]string{
			{"Parque Estadual das Lauráceas", "27524.3", "Adrianópolis"},
			{"APA", "", "Cerro Azul"},
		},
	)
	out := DecodeConservation(tbl)
	if !out.HasName || !out.HasArea || !out.HasMunicipality {
		t.Fatalf("column flags wrong: %+v", out)
	}
	if !out.Rows[0].AreaValid || out.Rows[0].AreaHa != 27524.3 {
		t.Fatalf("area decoded wrong: %+v", out.Rows[0])
	}
	if out.Rows[1].AreaValid {
		t.Fatalf("empty area should be invalid")
	}
}

func TestDecodeFire(t *testing.T) {
	tbl := NewTable(
		[]string{"Municipio", "DataHora", "RiscoFogo", "Precipitacao", "DiaSemChuva", "Latitude", "Longitude"},
		[][]string{
			{"CERRO AZUL", "2023-08-01 12:00:00", "0.75", "0.0", "14", "-24.82", "-49.25"},
			{"ADRIANÓPOLIS", "2023-08-02", "-999", "3.2", "-1", "-24.65", ""},
		},
	)
	out := DecodeFire(tbl)
	if !out.HasRisk || !out.HasCoords || !out.HasTime {
		t.Fatalf("column flags wrong: %+v", out)
	}

	r := out.Rows[0]
	if !r.RiskValid || r.Risk != 0.75 || !r.CoordsValid || !r.TimeValid {
		t.Fatalf("row 0 decoded wrong: %+v", r)
	}
	if !r.RiskInRange() {
		t.Fatal("0.75 is a valid risk")
	}

	r = out.Rows[1]
	if !r.RiskValid {
		t.Fatal("-999 parses as a number; range filtering happens later")
	}
	if r.RiskInRange() {
		t.Fatal("-999 is outside the valid risk range")
	}
	if r.CoordsValid {
		t.Fatal("missing longitude should invalidate coordinates")
	}
}
