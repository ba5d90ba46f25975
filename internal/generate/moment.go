package generate

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ZoneRecord is one entry of the moment-timezone "zones" table.
type ZoneRecord struct {
	Name      string
	Countries []string // owning country codes, primary first
	Lat       float64
	Long      float64
	Comments  string
}

// CountryRecord is one entry of the moment-timezone "countries" table.
type CountryRecord struct {
	Code  string
	Name  string
	Abbr  string
	Zones []string
}

// MomentData holds the two tables of a moment-timezone meta document, in
// document order.
type MomentData struct {
	Zones     []ZoneRecord
	Countries []CountryRecord
}

// ParseMoment decodes a moment-timezone meta document
// ({"countries": {...}, "zones": {...}}) keeping the order of both tables.
func ParseMoment(b []byte) (*MomentData, error) {
	if !gjson.ValidBytes(b) {
		return nil, &ParseError{Source: SourceMoment, Err: errors.New("invalid JSON")}
	}
	doc := gjson.ParseBytes(b)
	countries, zones := doc.Get("countries"), doc.Get("zones")
	if !countries.IsObject() {
		return nil, &ParseError{Source: SourceMoment, Err: errors.New(`missing "countries" object`)}
	}
	if !zones.IsObject() {
		return nil, &ParseError{Source: SourceMoment, Err: errors.New(`missing "zones" object`)}
	}

	md := &MomentData{}
	countries.ForEach(func(key, value gjson.Result) bool {
		md.Countries = append(md.Countries, CountryRecord{
			Code:  key.String(),
			Name:  value.Get("name").String(),
			Abbr:  value.Get("abbr").String(),
			Zones: stringArray(value.Get("zones")),
		})
		return true
	})

	var err error
	zones.ForEach(func(key, value gjson.Result) bool {
		owners := value.Get("countries")
		if owners.Exists() && !owners.IsArray() {
			err = fmt.Errorf("zone %s: countries is %s, want array", key.String(), owners.Type)
			return false
		}
		md.Zones = append(md.Zones, ZoneRecord{
			Name:      key.String(),
			Countries: stringArray(owners),
			Lat:       value.Get("lat").Float(),
			Long:      value.Get("long").Float(),
			Comments:  value.Get("comments").String(),
		})
		return true
	})
	if err != nil {
		return nil, &ParseError{Source: SourceMoment, Err: err}
	}
	return md, nil
}

// Country returns the country record for code.
func (md *MomentData) Country(code string) (CountryRecord, bool) {
	for _, c := range md.Countries {
		if c.Code == code {
			return c, true
		}
	}
	return CountryRecord{}, false
}

func stringArray(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	arr := r.Array()
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		out = append(out, v.String())
	}
	return out
}
