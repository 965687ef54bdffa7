package core

import "time"

// The four source tables are lenient snapshots of whatever the CSVs held.
// Column presence is tracked per table and parse validity per field, so an
// aggregation can decide row by row what it may use, the same way the
// upstream exports are consumed: a missing column means "feature
// unavailable", a bad cell means "drop this row from this aggregate".

// AlertRow is one deforestation alert.
type AlertRow struct {
	Municipality string

	AreaHa    float64
	AreaValid bool

	Year      int
	YearValid bool

	DetectedAt time.Time
	DateValid  bool
}

// AlertTable is the alert source snapshot.
type AlertTable struct {
	Rows []AlertRow

	HasMunicipality bool
	HasArea         bool
	HasYear         bool
	HasDate         bool
}

// Empty reports whether the table holds no rows.
func (t AlertTable) Empty() bool { return len(t.Rows) == 0 }

// RegistryRow is one SIGEF land-registry record, attributed to a
// municipality by IBGE code.
type RegistryRow struct {
	Code      int
	CodeValid bool
}

// RegistryTable is the land-registry source snapshot.
type RegistryTable struct {
	Rows    []RegistryRow
	HasCode bool
}

func (t RegistryTable) Empty() bool { return len(t.Rows) == 0 }

// ConservationRow is one CNUC conservation unit. Municipality is free text
// and may name several municipalities.
type ConservationRow struct {
	Name         string
	Municipality string

	AreaHa    float64
	AreaValid bool
}

// ConservationTable is the conservation-unit source snapshot.
type ConservationTable struct {
	Rows []ConservationRow

	HasName         bool
	HasMunicipality bool
	HasArea         bool
}

func (t ConservationTable) Empty() bool { return len(t.Rows) == 0 }

// FireRow is one satellite heat-focus observation.
type FireRow struct {
	Municipality string
	// Canonical is set by the municipality filter once the raw name has
	// been resolved; empty until then.
	Canonical string

	Time      time.Time
	TimeValid bool

	Risk      float64
	RiskValid bool

	Precipitation      float64
	PrecipitationValid bool

	DryDays      float64
	DryDaysValid bool

	Lat, Lon    float64
	CoordsValid bool
}

// RiskInRange reports whether the fire-risk score is usable: the upstream
// feed uses values outside [0,1] as "unknown" sentinels.
func (r FireRow) RiskInRange() bool {
	return r.RiskValid && r.Risk >= 0 && r.Risk <= 1
}

// FireTable is the fire-risk source snapshot.
type FireTable struct {
	Rows []FireRow

	HasMunicipality  bool
	HasTime          bool
	HasRisk          bool
	HasPrecipitation bool
	HasDryDays       bool
	HasCoords        bool
}

func (t FireTable) Empty() bool { return len(t.Rows) == 0 }

// Snapshot bundles the four sources loaded at startup. It is immutable for
// the lifetime of the process; every request computes from it.
type Snapshot struct {
	Alerts       AlertTable
	Registry     RegistryTable
	Conservation ConservationTable
	Fire         FireTable
}
