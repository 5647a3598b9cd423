package domain

import (
	"fmt"
	"strings"
)

// brazilianAirports maps city display names to their primary IATA code.
// Flight searches only work for cities present here; anything else is a
// resolution failure surfaced to the user.
var brazilianAirports = map[string]string{
	"São Paulo":      "GRU",
	"Rio de Janeiro": "GIG",
	"Brasília":       "BSB",
	"Salvador":       "SSA",
	"Fortaleza":      "FOR",
	"Recife":         "REC",
	"Porto Alegre":   "POA",
	"Manaus":         "MAO",
	"Belém":          "BEL",
	"Curitiba":       "CWB",
	"Florianópolis":  "FLN",
	"Natal":          "NAT",
	"Vitória":        "VIX",
	"Cuiabá":         "CGB",
	"Campo Grande":   "CGR",
	"João Pessoa":    "JPA",
	"Maceió":         "MCZ",
	"Goiânia":        "GYN",
}

// ResolveAirportCode returns the IATA code for a city display string such as
// "São Paulo, São Paulo". The state suffix, if any, is dropped before the
// lookup. A city absent from the table yields ErrAirportNotFound.
func ResolveAirportCode(cityDisplay string) (string, error) {
	city := strings.TrimSpace(strings.SplitN(cityDisplay, ",", 2)[0])
	if code, ok := brazilianAirports[city]; ok {
		return code, nil
	}
	return "", fmt.Errorf("%w: %s", ErrAirportNotFound, city)
}

// AirportCodeFor returns the IATA code for a bare city name, or the empty
// string when the table has none. Autocomplete uses this to annotate
// candidates without failing on cities that lack an airport.
func AirportCodeFor(cityName string) string {
	return brazilianAirports[cityName]
}
