package generate

import "sort"

// CheckCompleteness fails with a *MissingTimezonesError when authority holds
// identifiers that derived does not.
func CheckCompleteness(derived, authority []string) error {
	have := make(map[string]bool, len(derived))
	for _, z := range derived {
		have[z] = true
	}
	var missing []string
	for _, z := range authority {
		if !have[z] {
			missing = append(missing, z)
			have[z] = true // report duplicates once
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &MissingTimezonesError{Missing: missing}
}

// CheckReferences fails with a *LookupError when a code used in tz has no
// entry in names.
func CheckReferences(tz, names *OrderedMap) error {
	for _, zone := range tz.keys {
		code := tz.vals[zone]
		if _, ok := names.Get(code); !ok {
			return &LookupError{Code: code, Zone: zone}
		}
	}
	return nil
}
