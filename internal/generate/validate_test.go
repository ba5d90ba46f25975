package generate

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCheckCompleteness(t *testing.T) {
	tests := []struct {
		name        string
		derived     []string
		authority   []string
		wantMissing []string
	}{
		{
			name:      "complete",
			derived:   []string{"Europe/Paris", "Antarctica/Troll", "Asia/Calcutta"},
			authority: []string{"Antarctica/Troll", "Europe/Paris"},
		},
		{
			name:        "troll missing",
			derived:     []string{"Europe/Paris"},
			authority:   []string{"Europe/Paris", "Antarctica/Troll"},
			wantMissing: []string{"Antarctica/Troll"},
		},
		{
			name:        "sorted and deduplicated",
			derived:     nil,
			authority:   []string{"Pacific/Yap", "Africa/Asmera", "Pacific/Yap"},
			wantMissing: []string{"Africa/Asmera", "Pacific/Yap"},
		},
		{
			name:    "empty authority",
			derived: []string{"Europe/Paris"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckCompleteness(tc.derived, tc.authority)
			if tc.wantMissing == nil {
				if err != nil {
					t.Fatalf("CheckCompleteness() error = %v, want nil", err)
				}
				return
			}
			var me *MissingTimezonesError
			if !errors.As(err, &me) {
				t.Fatalf("CheckCompleteness() error = %v, want *MissingTimezonesError", err)
			}
			if diff := cmp.Diff(tc.wantMissing, me.Missing); diff != "" {
				t.Errorf("Missing mismatch (-want +got):\n%s", diff)
			}
			for _, z := range tc.wantMissing {
				if !strings.Contains(err.Error(), z) {
					t.Errorf("error %q does not name %s", err, z)
				}
			}
		})
	}
}

func TestCheckReferences(t *testing.T) {
	tz := orderedOf("Europe/Paris", "FR", "Asia/Calcutta", "IN")

	if err := CheckReferences(tz, orderedOf("FR", "France", "IN", "India")); err != nil {
		t.Errorf("CheckReferences() error = %v, want nil", err)
	}

	err := CheckReferences(tz, orderedOf("FR", "France"))
	var le *LookupError
	if !errors.As(err, &le) {
		t.Fatalf("CheckReferences() error = %v, want *LookupError", err)
	}
	if le.Code != "IN" || le.Zone != "Asia/Calcutta" {
		t.Errorf("LookupError = %+v", le)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&LookupError{Zone: "Etc/Lonely"}, "zone Etc/Lonely lists no owning country"},
		{&LookupError{Code: "XK"}, "no country entry for code XK"},
		{&LookupError{Code: "XK", Zone: "Europe/Pristina"}, "no country entry for code XK (referenced by Europe/Pristina)"},
		{&FetchError{Source: "moment", URL: "http://x", StatusCode: 503}, "fetching moment (http://x): status 503"},
		{&ParseError{Source: "iso3166", Err: errors.New("invalid JSON")}, "parsing iso3166: invalid JSON"},
		{&MissingTimezonesError{Missing: []string{"A/B", "C/D"}}, "2 timezone(s) missing from derived map: A/B, C/D"},
		{&StageError{Stage: StageValidating, Err: errors.New("boom")}, "validating: boom"},
	}
	for _, tc := range tests {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q, want %q", got, tc.want)
		}
	}
}
