package generate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const momentFixture = `{
  "countries": {
    "FR": {"name": "france", "abbr": "FR", "zones": ["Europe/Paris"]},
    "DE": {"name": "germany", "abbr": "DE", "zones": ["Europe/Berlin", "Europe/Busingen"]},
    "CI": {"name": "ivory coast", "abbr": "CI", "zones": ["Africa/Abidjan"]},
    "AQ": {"name": "antarctica", "abbr": "AQ", "zones": ["Antarctica/Troll"]},
    "CH": {"name": "switzerland", "abbr": "CH", "zones": ["Europe/Zurich"]}
  },
  "zones": {
    "Europe/Paris": {"name": "Europe/Paris", "lat": 48.8667, "long": 2.3333, "countries": ["FR"], "comments": ""},
    "Europe/Berlin": {"name": "Europe/Berlin", "lat": 52.5, "long": 13.3667, "countries": ["DE", "DK", "NO", "SE", "SJ"], "comments": "most of Germany"},
    "Africa/Abidjan": {"name": "Africa/Abidjan", "lat": 5.3167, "long": -4.0333, "countries": ["CI", "BF", "GH"], "comments": ""},
    "Antarctica/Troll": {"name": "Antarctica/Troll", "lat": -72.0114, "long": 2.5350, "countries": ["AQ"], "comments": "Troll"},
    "Europe/Zurich": {"name": "Europe/Zurich", "lat": 47.3833, "long": 8.5333, "countries": ["CH", "DE", "LI"], "comments": ""}
  }
}`

func TestParseMoment(t *testing.T) {
	md, err := ParseMoment([]byte(momentFixture))
	if err != nil {
		t.Fatalf("ParseMoment() error = %v", err)
	}

	var zoneNames []string
	for _, z := range md.Zones {
		zoneNames = append(zoneNames, z.Name)
	}
	wantZones := []string{"Europe/Paris", "Europe/Berlin", "Africa/Abidjan", "Antarctica/Troll", "Europe/Zurich"}
	if diff := cmp.Diff(wantZones, zoneNames); diff != "" {
		t.Errorf("zone order mismatch (-want +got):\n%s", diff)
	}

	wantBerlin := ZoneRecord{
		Name:      "Europe/Berlin",
		Countries: []string{"DE", "DK", "NO", "SE", "SJ"},
		Lat:       52.5,
		Long:      13.3667,
		Comments:  "most of Germany",
	}
	if diff := cmp.Diff(wantBerlin, md.Zones[1]); diff != "" {
		t.Errorf("Berlin record mismatch (-want +got):\n%s", diff)
	}

	de, ok := md.Country("DE")
	if !ok {
		t.Fatal("Country(DE) not found")
	}
	want := CountryRecord{Code: "DE", Name: "germany", Abbr: "DE", Zones: []string{"Europe/Berlin", "Europe/Busingen"}}
	if diff := cmp.Diff(want, de); diff != "" {
		t.Errorf("Country(DE) mismatch (-want +got):\n%s", diff)
	}
	if _, ok := md.Country("XX"); ok {
		t.Error("Country(XX) found, want not found")
	}
}

func TestParseMomentErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", `<html>rate limited</html>`},
		{"truncated", `{"countries": {`},
		{"no zones", `{"countries": {}}`},
		{"no countries", `{"zones": {}}`},
		{"zones is array", `{"countries": {}, "zones": []}`},
		{"countries not array", `{"countries": {}, "zones": {"A/B": {"countries": "FR"}}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseMoment([]byte(tc.in))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("ParseMoment() error = %v, want *ParseError", err)
			}
			if pe.Source != SourceMoment {
				t.Errorf("Source = %q, want %q", pe.Source, SourceMoment)
			}
		})
	}
}

func TestParseISO(t *testing.T) {
	want := []ISOCountry{
		{Alpha2: "CI", Alpha3: "CIV", Numeric: "384", Name: "Côte d'Ivoire", OfficialName: "Republic of Côte d'Ivoire"},
		{Alpha2: "TW", Alpha3: "TWN", Numeric: "158", Name: "Taiwan, Province of China", OfficialName: "Taiwan, Province of China", CommonName: "Taiwan"},
	}
	records := `[
	  {"alpha_2": "CI", "alpha_3": "CIV", "numeric": "384", "name": "Côte d'Ivoire", "official_name": "Republic of Côte d'Ivoire"},
	  {"alpha_3": "XXX", "name": "no alpha-2"},
	  {"alpha_2": "TW", "alpha_3": "TWN", "numeric": "158", "name": "Taiwan, Province of China", "official_name": "Taiwan, Province of China", "common_name": "Taiwan"}
	]`

	for name, in := range map[string]string{
		"array":    records,
		"envelope": `{"3166-1": ` + records + `}`,
	} {
		t.Run(name, func(t *testing.T) {
			got, err := ParseISO([]byte(in))
			if err != nil {
				t.Fatalf("ParseISO() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ParseISO() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseISOErrors(t *testing.T) {
	for _, in := range []string{`nope`, `{"3166-2": []}`, `"CI"`} {
		_, err := ParseISO([]byte(in))
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Source != SourceISO {
			t.Errorf("ParseISO(%s) error = %v, want *ParseError for %s", in, err, SourceISO)
		}
	}
}
