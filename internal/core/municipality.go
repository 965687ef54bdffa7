package core

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Municipalities is the canonical set of the seven Vale do Ribeira (PR)
// municipalities, in the fixed order used by every per-municipality table.
var Municipalities = []string{
	"Adrianópolis",
	"Bocaiúva do Sul",
	"Cerro Azul",
	"Doutor Ulysses",
	"Itaperuçu",
	"Rio Branco do Sul",
	"Tunas do Paraná",
}

// CodeToMunicipality maps IBGE municipality codes to canonical names.
// The mapping is a bijection over the seven entries; any other code is
// outside the region and dropped from aggregates.
var CodeToMunicipality = map[int]string{
	4100103: "Adrianópolis",
	4102703: "Bocaiúva do Sul",
	4104659: "Cerro Azul",
	4107405: "Doutor Ulysses",
	4111258: "Itaperuçu",
	4122404: "Rio Branco do Sul",
	4127700: "Tunas do Paraná",
}

// LatLon is a municipal seat coordinate, used when alert rows carry no
// geometry of their own.
type LatLon struct {
	Lat float64
	Lon float64
}

// Centroids holds approximate municipal seat coordinates for the map view.
var Centroids = map[string]LatLon{
	"Adrianópolis":      {Lat: -24.6577, Lon: -48.9933},
	"Bocaiúva do Sul":   {Lat: -25.2069, Lon: -49.1172},
	"Cerro Azul":        {Lat: -24.8267, Lon: -49.2597},
	"Doutor Ulysses":    {Lat: -25.4406, Lon: -49.2775},
	"Itaperuçu":         {Lat: -25.2397, Lon: -49.3442},
	"Rio Branco do Sul": {Lat: -25.1858, Lon: -49.3106},
	"Tunas do Paraná":   {Lat: -24.9639, Lon: -49.1053},
}

// upperPT performs locale-aware uppercasing; the fire-focus source spells
// municipality names in uppercase with diacritics preserved, so the
// comparison must keep accents intact.
var upperPT = cases.Upper(language.BrazilianPortuguese)

var (
	exactSet = make(map[string]struct{}, len(Municipalities))
	upperSet = make(map[string]string, len(Municipalities))
)

func init() {
	for _, m := range Municipalities {
		exactSet[m] = struct{}{}
		upperSet[upperPT.String(m)] = m
	}
}

// UpperPT uppercases a string using Brazilian-Portuguese case mapping.
func UpperPT(s string) string {
	return upperPT.String(s)
}

// IsCanonical reports whether name matches one of the seven municipalities
// exactly, accents and case included. This is how the alert source spells
// names.
func IsCanonical(name string) bool {
	_, ok := exactSet[name]
	return ok
}

// MatchUpper uppercases and trims raw and returns the canonical name it
// resolves to. The two matching modes are intentionally distinct: the
// upstream alert and fire sources encode names differently.
func MatchUpper(raw string) (string, bool) {
	name, ok := upperSet[strings.TrimSpace(upperPT.String(raw))]
	return name, ok
}

// MunicipalityForCode resolves an IBGE code to its canonical name.
func MunicipalityForCode(code int) (string, bool) {
	name, ok := CodeToMunicipality[code]
	return name, ok
}

// Mentions reports whether the free-text municipality field of a
// conservation unit names the given municipality. Conservation units may
// span several municipalities, so this is a case-insensitive substring
// check rather than an exact match.
func Mentions(freeText, municipality string) bool {
	return strings.Contains(upperPT.String(freeText), upperPT.String(municipality))
}
