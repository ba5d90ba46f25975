// Package generate rebuilds the zone to country tables from upstream data.
//
// A run fetches the moment-timezone meta document (and optionally the ISO
// 3166-1 list), maps every zone to its primary country, merges the curated
// overrides, checks the result against the platform zone database and only
// then writes tzcode.json, codecountry.json and zonegeo.json.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Stage is a step of a generator run.
type Stage int

const (
	StageFetching Stage = iota
	StageDeriving
	StageMerging
	StageValidating
	StagePersisting
	StageDone
)

var stageNames = [...]string{
	StageFetching:   "fetching",
	StageDeriving:   "deriving",
	StageMerging:    "merging",
	StageValidating: "validating",
	StagePersisting: "persisting",
	StageDone:       "done",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// Result holds the tables a successful run wrote.
type Result struct {
	Timezones *OrderedMap // zone -> country code, ordered by country name
	Countries *OrderedMap // country code -> name, ordered by name
	Coords    ZoneCoords
	Overrides int // number of curated entries merged in
}

// Generator runs the fetch, derive, merge, validate, persist pipeline.
type Generator struct {
	cfg     *Config
	fetcher *Fetcher
	data    Store
	log     *slog.Logger
}

// New creates a Generator. Without options it fetches from the default URLs,
// caches raw documents in ./tzcountry-data and writes to ./data.
func New(opts ...Option) *Generator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Authority == nil {
		cfg.Authority = DefaultAuthority()
	}
	data := cfg.DataStore
	if data == nil {
		data = DirStore{Dir: cfg.DataDir}
	}
	cache := cfg.CacheStore
	if cache == nil {
		cache = DirStore{Dir: cfg.CacheDir}
	}
	return &Generator{
		cfg: cfg,
		fetcher: &Fetcher{
			Client:  cfg.HTTPClient,
			Cache:   cache,
			Logger:  cfg.Logger,
			Offline: cfg.Offline,
		},
		data: data,
		log:  cfg.Logger,
	}
}

// Run executes one pipeline pass. Nothing is written unless every stage
// before persisting succeeds. Errors are *StageError values.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	stage := StageFetching
	fail := func(err error) (*Result, error) {
		g.log.Error("generate failed", "stage", stage, "error", err)
		return nil, &StageError{Stage: stage, Err: err}
	}
	enter := func(s Stage) {
		stage = s
		g.log.Debug("stage", "stage", s)
	}

	enter(StageFetching)
	srcs := []Source{{Name: SourceMoment, URL: g.cfg.MomentURL}}
	if g.cfg.ISOURL != "" {
		srcs = append(srcs, Source{Name: SourceISO, URL: g.cfg.ISOURL})
	}
	bodies, err := g.fetcher.FetchAll(ctx, srcs...)
	if err != nil {
		return fail(err)
	}
	md, err := ParseMoment(bodies[SourceMoment])
	if err != nil {
		return fail(err)
	}
	var countries CountrySource = MomentCountries(md.Countries)
	if b, ok := bodies[SourceISO]; ok {
		records, err := ParseISO(b)
		if err != nil {
			return fail(err)
		}
		countries = ChainSources{NewISOCountries(records), countries}
	}

	enter(StageDeriving)
	tz, err := DeriveTimezoneMap(md.Zones)
	if err != nil {
		return fail(err)
	}
	g.log.Info("derived zones", "zones", tz.Len(), "countries", len(md.Countries))

	enter(StageMerging)
	overrides, err := g.loadOverrides()
	if err != nil {
		return fail(err)
	}
	merged := MergeOverrides(tz, overrides)
	names, err := DeriveCountryNameMap(merged, countries)
	if err != nil {
		return fail(err)
	}
	nameOf := func(code string) string {
		name, _ := names.Get(code)
		return name
	}
	res := &Result{
		Timezones: SortByName(merged, nameOf),
		Countries: SortByName(names, func(name string) string { return name }),
		Overrides: overrides.Len(),
	}
	res.Coords = DeriveZoneCoords(res.Timezones, md.Zones)

	enter(StageValidating)
	authority, err := g.cfg.Authority.Zones(ctx)
	if err != nil {
		return fail(fmt.Errorf("listing platform zones: %w", err))
	}
	if err := CheckCompleteness(res.Timezones.Keys(), authority); err != nil {
		return fail(err)
	}
	if err := CheckReferences(res.Timezones, res.Countries); err != nil {
		return fail(err)
	}

	enter(StagePersisting)
	if err := g.persist(res); err != nil {
		return fail(err)
	}

	enter(StageDone)
	g.log.Info("generate complete",
		"zones", res.Timezones.Len(),
		"countries", res.Countries.Len(),
		"overrides", res.Overrides,
		"authority", len(authority))
	return res, nil
}

// loadOverrides reads the curated list from the data store. A missing file
// means no overrides.
func (g *Generator) loadOverrides() (*OrderedMap, error) {
	b, err := g.data.Get(OverridesFile)
	if errors.Is(err, ErrNotStored) {
		g.log.Warn("no overrides file", "file", OverridesFile)
		return NewOrderedMap(0), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading overrides: %w", err)
	}
	return ParseOverrides(b)
}

// persist encodes every output before writing the first one, so an encoding
// failure leaves the data store untouched.
func (g *Generator) persist(res *Result) error {
	tzJSON, err := res.Timezones.MarshalIndent()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", TimezoneFile, err)
	}
	ccJSON, err := res.Countries.MarshalIndent()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", CountryFile, err)
	}
	geoJSON, err := res.Coords.MarshalIndent()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", GeoFile, err)
	}

	for _, out := range []struct {
		name string
		b    []byte
	}{
		{TimezoneFile, tzJSON},
		{CountryFile, ccJSON},
		{GeoFile, geoJSON},
	} {
		if err := g.data.Put(out.name, out.b); err != nil {
			return fmt.Errorf("writing %s: %w", out.name, err)
		}
		g.log.Info("wrote data file", "file", out.name, "bytes", len(out.b))
	}
	return nil
}
