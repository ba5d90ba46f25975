package generate

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ISOCountry is one ISO 3166-1 record as published by the iso-codes project.
type ISOCountry struct {
	Alpha2       string
	Alpha3       string
	Numeric      string
	Name         string
	OfficialName string
	CommonName   string
}

// isoEnvelope is the key iso-codes wraps its 3166-1 list in.
const isoEnvelope = "3166-1"

// ParseISO decodes ISO 3166-1 records from either a bare JSON array or the
// iso-codes {"3166-1": [...]} envelope. Records without alpha_2 are skipped.
func ParseISO(b []byte) ([]ISOCountry, error) {
	if !gjson.ValidBytes(b) {
		return nil, &ParseError{Source: SourceISO, Err: errors.New("invalid JSON")}
	}
	list := gjson.ParseBytes(b)
	if list.IsObject() {
		list = list.Get(gjson.Escape(isoEnvelope))
	}
	if !list.IsArray() {
		return nil, &ParseError{Source: SourceISO, Err: errors.New("expected an array of country records")}
	}

	var out []ISOCountry
	for _, r := range list.Array() {
		code := r.Get("alpha_2").String()
		if code == "" {
			continue
		}
		out = append(out, ISOCountry{
			Alpha2:       code,
			Alpha3:       r.Get("alpha_3").String(),
			Numeric:      r.Get("numeric").String(),
			Name:         r.Get("name").String(),
			OfficialName: r.Get("official_name").String(),
			CommonName:   r.Get("common_name").String(),
		})
	}
	return out, nil
}
