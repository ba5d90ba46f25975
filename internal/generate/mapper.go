package generate

import (
	"golang.org/x/text/unicode/norm"
)

// CountrySource resolves a country code to its display name.
type CountrySource interface {
	CountryName(code string) (string, bool)
}

// MomentCountries resolves names from the moment-timezone country table,
// title-casing the raw name.
type MomentCountries []CountryRecord

func (mc MomentCountries) CountryName(code string) (string, bool) {
	for _, c := range mc {
		if c.Code == code {
			return norm.NFC.String(TitleCase(c.Name)), true
		}
	}
	return "", false
}

// ISOCountries resolves names from ISO 3166-1 records, preferring the common
// name over the formal one.
type ISOCountries map[string]ISOCountry

// NewISOCountries indexes records by alpha-2 code.
func NewISOCountries(records []ISOCountry) ISOCountries {
	ic := make(ISOCountries, len(records))
	for _, r := range records {
		ic[r.Alpha2] = r
	}
	return ic
}

func (ic ISOCountries) CountryName(code string) (string, bool) {
	r, ok := ic[code]
	if !ok {
		return "", false
	}
	name := r.CommonName
	if name == "" {
		name = r.Name
	}
	if name == "" {
		return "", false
	}
	return norm.NFC.String(name), true
}

// ChainSources asks each source in turn and returns the first hit.
type ChainSources []CountrySource

func (cs ChainSources) CountryName(code string) (string, bool) {
	for _, s := range cs {
		if name, ok := s.CountryName(code); ok {
			return name, true
		}
	}
	return "", false
}

// DeriveTimezoneMap maps every zone to its primary (first listed) country.
func DeriveTimezoneMap(zones []ZoneRecord) (*OrderedMap, error) {
	tz := NewOrderedMap(len(zones))
	for _, z := range zones {
		if len(z.Countries) == 0 || z.Countries[0] == "" {
			return nil, &LookupError{Zone: z.Name}
		}
		tz.Set(z.Name, z.Countries[0])
	}
	return tz, nil
}

// DeriveCountryNameMap resolves a display name for every distinct country
// code in tz, in the order the codes first appear.
func DeriveCountryNameMap(tz *OrderedMap, src CountrySource) (*OrderedMap, error) {
	names := NewOrderedMap(0)
	for _, zone := range tz.keys {
		code := tz.vals[zone]
		if _, done := names.Get(code); done {
			continue
		}
		name, ok := src.CountryName(code)
		if !ok {
			return nil, &LookupError{Code: code, Zone: zone}
		}
		names.Set(code, name)
	}
	return names, nil
}

// MergeOverrides returns the union of base and overrides. Overrides win on
// key collision.
func MergeOverrides(base, overrides *OrderedMap) *OrderedMap {
	out := base.Clone()
	overrides.Each(out.Set)
	return out
}

// ParseOverrides decodes the curated zone to country code list.
func ParseOverrides(b []byte) (*OrderedMap, error) {
	m := NewOrderedMap(0)
	if err := m.UnmarshalJSON(b); err != nil {
		return nil, &ParseError{Source: OverridesFile, Err: err}
	}
	return m, nil
}
