package generate

import (
	"bytes"
	"strconv"
)

// ZoneCoord is the representative location of a zone.
type ZoneCoord struct {
	Zone string
	Lat  float64
	Long float64
}

// ZoneCoords is an ordered list of zone locations, persisted as
// {"Europe/Paris": [48.8667, 2.3333], ...}.
type ZoneCoords []ZoneCoord

// DeriveZoneCoords returns the locations of the zones in tz, in tz order.
// Zones the moment data has no record for (overrides) are left out.
func DeriveZoneCoords(tz *OrderedMap, zones []ZoneRecord) ZoneCoords {
	byName := make(map[string]ZoneRecord, len(zones))
	for _, z := range zones {
		byName[z.Name] = z
	}
	out := make(ZoneCoords, 0, len(zones))
	for _, name := range tz.keys {
		z, ok := byName[name]
		if !ok {
			continue
		}
		out = append(out, ZoneCoord{Zone: name, Lat: z.Lat, Long: z.Long})
	}
	return out
}

func (zc ZoneCoords) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range zc {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, c.Zone); err != nil {
			return nil, err
		}
		buf.WriteString(":[")
		buf.WriteString(strconv.FormatFloat(c.Lat, 'f', -1, 64))
		buf.WriteByte(',')
		buf.WriteString(strconv.FormatFloat(c.Long, 'f', -1, 64))
		buf.WriteByte(']')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalIndent returns the list in the committed file format.
func (zc ZoneCoords) MarshalIndent() ([]byte, error) {
	b, err := zc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return indent(b), nil
}
