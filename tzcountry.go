// Package tzcountry maps IANA timezone identifiers to the ISO 3166-1 country
// that owns them, and country codes to display names.
//
// The tables are generated by cmd/update-data from the moment-timezone meta
// data and embedded into the package, so lookups need no network or files.
package tzcountry

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/andreiashu/tzcountry/internal/generate"
)

//go:embed data/tzcode.json
var timezoneToCode []byte

//go:embed data/codecountry.json
var codeToCountry []byte

//go:embed data/zonegeo.json
var zoneGeo []byte

var (
	ErrUnknownZone = errors.New("unknown timezone")
	ErrUnknownCode = errors.New("unknown country code")
)

// maxSuggestDistance caps the edit distance of a "did you mean" suggestion.
const maxSuggestDistance = 3

// TimezoneCodeMap maps a timezone identifier to a country code.
type TimezoneCodeMap map[string]string

// CodeCountryMap maps a country code to a country name.
type CodeCountryMap map[string]string

// NewTimezoneCodeMap decodes the embedded zone table.
func NewTimezoneCodeMap() (TimezoneCodeMap, error) {
	om, err := decodeOrdered(generate.TimezoneFile, timezoneToCode)
	if err != nil {
		return nil, err
	}
	return TimezoneCodeMap(toMap(om)), nil
}

// NewCodeCountryMap decodes the embedded country table.
func NewCodeCountryMap() (CodeCountryMap, error) {
	om, err := decodeOrdered(generate.CountryFile, codeToCountry)
	if err != nil {
		return nil, err
	}
	return CodeCountryMap(toMap(om)), nil
}

// GetCode returns the country code for a timezone. Unknown identifiers that
// are close to a known one get a suggestion in the error.
func (m TimezoneCodeMap) GetCode(tz string) (string, error) {
	if code, ok := m[tz]; ok {
		return code, nil
	}
	if s := m.suggest(tz); s != "" {
		return "", fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownZone, tz, s)
	}
	return "", fmt.Errorf("%w %q", ErrUnknownZone, tz)
}

// suggest returns the known zone closest to tz, ignoring case. Ties go to
// the lexically smaller name.
func (m TimezoneCodeMap) suggest(tz string) string {
	if tz == "" {
		return ""
	}
	needle := strings.ToLower(tz)
	best, bestDist := "", maxSuggestDistance+1
	for zone := range m {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(zone))
		if d < bestDist || (d == bestDist && zone < best) {
			best, bestDist = zone, d
		}
	}
	if bestDist > maxSuggestDistance {
		return ""
	}
	return best
}

// GetCountry returns the country name for a country code.
func (m CodeCountryMap) GetCountry(code string) (string, error) {
	if country, ok := m[code]; ok {
		return country, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownCode, code)
}

// Index answers zone and country queries over the embedded tables.
// Safe for concurrent use.
type Index struct {
	codes     TimezoneCodeMap
	countries CodeCountryMap
	zones     map[string][]string // country code -> zones, in file order
	geo       *geoIndex
}

// Singleton pattern for the default Index.
var (
	defaultIndex     *Index
	defaultIndexOnce sync.Once
	defaultIndexErr  error
)

// Default returns a shared Index, loading it on first call.
func Default() (*Index, error) {
	defaultIndexOnce.Do(func() {
		defaultIndex, defaultIndexErr = NewIndex()
	})
	return defaultIndex, defaultIndexErr
}

// NewIndex loads the embedded tables into a new Index.
func NewIndex() (*Index, error) {
	tz, err := decodeOrdered(generate.TimezoneFile, timezoneToCode)
	if err != nil {
		return nil, err
	}
	cc, err := decodeOrdered(generate.CountryFile, codeToCountry)
	if err != nil {
		return nil, err
	}
	geo, err := loadGeoIndex(zoneGeo)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", generate.GeoFile, err)
	}

	ix := &Index{
		codes:     TimezoneCodeMap(toMap(tz)),
		countries: CodeCountryMap(toMap(cc)),
		zones:     make(map[string][]string),
		geo:       geo,
	}
	tz.Each(func(zone, code string) {
		ix.zones[code] = append(ix.zones[code], zone)
	})
	return ix, nil
}

// Code returns the country code owning zone.
func (ix *Index) Code(zone string) (string, error) {
	return ix.codes.GetCode(zone)
}

// Country returns the name of the country owning zone.
func (ix *Index) Country(zone string) (string, error) {
	code, err := ix.codes.GetCode(zone)
	if err != nil {
		return "", err
	}
	return ix.countries.GetCountry(code)
}

// CountryName returns the display name for a country code.
func (ix *Index) CountryName(code string) (string, error) {
	return ix.countries.GetCountry(strings.ToUpper(code))
}

// Zones returns the zones owned by a country code, or nil.
func (ix *Index) Zones(code string) []string {
	return append([]string(nil), ix.zones[strings.ToUpper(code)]...)
}

// CountryCodes returns every country code, sorted.
func (ix *Index) CountryCodes() []string {
	codes := make([]string, 0, len(ix.countries))
	for code := range ix.countries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// NearestZone returns the zone whose representative location is closest to
// the given coordinates. It reports false for NaN or infinite input.
func (ix *Index) NearestZone(lat, lng float64) (string, bool) {
	return ix.geo.nearest(lat, lng)
}

func decodeOrdered(name string, b []byte) (*generate.OrderedMap, error) {
	om := generate.NewOrderedMap(0)
	if err := om.UnmarshalJSON(b); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return om, nil
}

func toMap(om *generate.OrderedMap) map[string]string {
	m := make(map[string]string, om.Len())
	om.Each(func(k, v string) { m[k] = v })
	return m
}
