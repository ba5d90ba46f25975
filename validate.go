package tzcountry

import (
	"fmt"

	"github.com/andreiashu/tzcountry/internal/generate"
)

// Validation thresholds for the embedded tables.
// zone.tab lists ~420 zones in ~250 countries.
const (
	minZoneCount    = 400
	minCountryCount = 200
)

// validationZone defines a known zone for functional validation.
type validationZone struct {
	zone        string
	wantCode    string
	wantCountry string
}

var knownZones = []validationZone{
	{"Europe/Paris", "FR", "France"},
	{"America/New_York", "US", "United States"},
	{"Asia/Tokyo", "JP", "Japan"},
	{"Australia/Sydney", "AU", "Australia"},
	{"Africa/Abidjan", "CI", "Côte d'Ivoire"},
	{"Antarctica/Troll", "AQ", "Antarctica"},
}

// ValidateData checks the embedded tables: sizes, that every zone's code has
// a country name, that both tables are ordered by country name, and a few
// known lookups.
func ValidateData() error {
	tz, err := decodeOrdered(generate.TimezoneFile, timezoneToCode)
	if err != nil {
		return err
	}
	cc, err := decodeOrdered(generate.CountryFile, codeToCountry)
	if err != nil {
		return err
	}

	if tz.Len() < minZoneCount {
		return fmt.Errorf("zone count too low: got %d, want >= %d", tz.Len(), minZoneCount)
	}
	if cc.Len() < minCountryCount {
		return fmt.Errorf("country count too low: got %d, want >= %d", cc.Len(), minCountryCount)
	}
	if err := generate.CheckReferences(tz, cc); err != nil {
		return err
	}

	nameOf := func(code string) string {
		name, _ := cc.Get(code)
		return name
	}
	if err := checkOrdered(generate.TimezoneFile, tz, nameOf); err != nil {
		return err
	}
	if err := checkOrdered(generate.CountryFile, cc, func(name string) string { return name }); err != nil {
		return err
	}

	ix, err := NewIndex()
	if err != nil {
		return err
	}
	for _, tc := range knownZones {
		code, err := ix.Code(tc.zone)
		if err != nil {
			return err
		}
		if code != tc.wantCode {
			return fmt.Errorf("code(%q) = %q, want %q", tc.zone, code, tc.wantCode)
		}
		country, err := ix.Country(tc.zone)
		if err != nil {
			return err
		}
		if country != tc.wantCountry {
			return fmt.Errorf("country(%q) = %q, want %q", tc.zone, country, tc.wantCountry)
		}
	}
	return nil
}

// checkOrdered reports the first entry whose name sorts before the
// previous one.
func checkOrdered(file string, m *generate.OrderedMap, nameOf func(string) string) error {
	prevKey, prev := "", ""
	var err error
	m.Each(func(k, v string) {
		name := nameOf(v)
		if err == nil && name < prev {
			err = fmt.Errorf("%s: %q (%s) sorts before %q (%s)", file, k, name, prevKey, prev)
		}
		prevKey, prev = k, name
	})
	return err
}
