package generate

import (
	"log/slog"
	"net/http"
)

// File names inside the data directory.
const (
	TimezoneFile  = "tzcode.json"
	CountryFile   = "codecountry.json"
	GeoFile       = "zonegeo.json"
	OverridesFile = "overrides.json"
)

// Config contains the settings of a Generator.
type Config struct {
	DataDir   string // Directory holding overrides.json and the generated files (default: "./data")
	CacheDir  string // Directory for raw source documents (default: "./tzcountry-data")
	MomentURL string // moment-timezone meta document
	ISOURL    string // ISO 3166-1 document; empty disables the ISO names
	Offline   bool   // Read sources from CacheDir instead of the network

	HTTPClient *http.Client
	Authority  TimezoneAuthority
	Logger     *slog.Logger

	// Stores override DataDir and CacheDir when set.
	DataStore  Store
	CacheStore Store
}

// Option is a functional option for configuring a Generator.
type Option func(*Config)

// WithDataDir sets the directory the data files are read from and written to.
func WithDataDir(dir string) Option {
	return func(c *Config) {
		c.DataDir = dir
	}
}

// WithCacheDir sets the directory raw source documents are cached in.
func WithCacheDir(dir string) Option {
	return func(c *Config) {
		c.CacheDir = dir
	}
}

// WithMomentURL sets the moment-timezone meta document URL.
func WithMomentURL(url string) Option {
	return func(c *Config) {
		c.MomentURL = url
	}
}

// WithISOURL sets the ISO 3166-1 document URL.
func WithISOURL(url string) Option {
	return func(c *Config) {
		c.ISOURL = url
	}
}

// WithoutISO resolves country names from the moment-timezone table only.
func WithoutISO() Option {
	return func(c *Config) {
		c.ISOURL = ""
	}
}

// WithOffline reads the sources from the cache instead of the network.
func WithOffline(offline bool) Option {
	return func(c *Config) {
		c.Offline = offline
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithAuthority sets the zone list the output is validated against.
func WithAuthority(a TimezoneAuthority) Option {
	return func(c *Config) {
		c.Authority = a
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithDataStore replaces the data directory with s.
func WithDataStore(s Store) Option {
	return func(c *Config) {
		c.DataStore = s
	}
}

// WithCacheStore replaces the cache directory with s.
func WithCacheStore(s Store) Option {
	return func(c *Config) {
		c.CacheStore = s
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	return &Config{
		DataDir:   "./data",
		CacheDir:  "./tzcountry-data",
		MomentURL: DefaultMomentURL,
		ISOURL:    DefaultISOURL,
	}
}
