package tzcountry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andreiashu/tzcountry/internal/generate"
)

func TestCheckOrdered(t *testing.T) {
	identity := func(s string) string { return s }
	tests := []struct {
		name    string
		json    string
		wantErr string
	}{
		{"ordered", `{"AQ":"Antarctica","CI":"Côte d'Ivoire","FR":"France"}`, ""},
		{"equal names", `{"A":"Same","B":"Same"}`, ""},
		{"out of order", `{"FR":"France","AQ":"Antarctica"}`, `"AQ" (Antarctica) sorts before "FR" (France)`},
		{"case sensitive", `{"X":"alpha","Y":"Beta"}`, `"Y" (Beta) sorts before "X" (alpha)`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := decodeOrdered("test.json", []byte(tc.json))
			if err != nil {
				t.Fatal(err)
			}
			err = checkOrdered("test.json", m, identity)
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("checkOrdered() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("checkOrdered() error = %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestEmbeddedOverridesCovered(t *testing.T) {
	overrides, err := generate.ParseOverrides(mustReadData(t, generate.OverridesFile))
	if err != nil {
		t.Fatal(err)
	}
	tz, err := NewTimezoneCodeMap()
	if err != nil {
		t.Fatal(err)
	}
	overrides.Each(func(zone, code string) {
		if got := tz[zone]; got != code {
			t.Errorf("override %s -> %s, embedded table has %q", zone, code, got)
		}
	})
}

func mustReadData(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("data", name))
	if err != nil {
		t.Fatal(err)
	}
	return b
}
