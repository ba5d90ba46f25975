// Command update-data regenerates the tzcountry data files from upstream.
//
// Usage:
//
//	go run ./cmd/update-data [flags]
//
// This fetches the moment-timezone meta data and the ISO 3166-1 list, caches
// the raw documents in ./tzcountry-data/ and writes ./data/tzcode.json,
// ./data/codecountry.json and ./data/zonegeo.json. Nothing is written when
// the result does not cover every zone of the platform zone database; add
// the missing identifiers to ./data/overrides.json and run again.
//
// Settings are read from .env, then the environment, then flags.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"

	"github.com/andreiashu/tzcountry"
	"github.com/andreiashu/tzcountry/internal/generate"
)

type config struct {
	DataDir   string
	CacheDir  string
	MomentURL string
	ISOURL    string
	Zoneinfo  string
	LogLevel  string
	Offline   bool
	NoISO     bool
	Validate  bool
}

func loadConfig(args []string) (*config, error) {
	cfg := &config{
		DataDir:   getEnv("TZCOUNTRY_DATA_DIR", "./data"),
		CacheDir:  getEnv("TZCOUNTRY_CACHE_DIR", "./tzcountry-data"),
		MomentURL: getEnv("TZCOUNTRY_MOMENT_URL", generate.DefaultMomentURL),
		ISOURL:    getEnv("TZCOUNTRY_ISO_URL", generate.DefaultISOURL),
		Zoneinfo:  getEnv("ZONEINFO", ""),
		LogLevel:  getEnv("TZCOUNTRY_LOG_LEVEL", "info"),
	}

	fs := pflag.NewFlagSet("update-data", pflag.ContinueOnError)
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding overrides.json and the generated files")
	fs.StringVar(&cfg.CacheDir, "cache-dir", cfg.CacheDir, "directory for raw source documents")
	fs.StringVar(&cfg.MomentURL, "moment-url", cfg.MomentURL, "moment-timezone meta document")
	fs.StringVar(&cfg.ISOURL, "iso-url", cfg.ISOURL, "ISO 3166-1 document")
	fs.StringVar(&cfg.Zoneinfo, "zoneinfo", cfg.Zoneinfo, "zoneinfo directory or zip to validate against")
	fs.StringVarP(&cfg.LogLevel, "log-level", "l", cfg.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&cfg.Offline, "offline", false, "read sources from the cache directory")
	fs.BoolVar(&cfg.NoISO, "no-iso", false, "take country names from the moment-timezone data only")
	fs.BoolVar(&cfg.Validate, "validate", false, "validate the embedded data files and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(strings.ToUpper(s)))
	return lvl, err
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: reading .env: %v\n", err)
	}

	cfg, err := loadConfig(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: log level %q: %v\n", cfg.LogLevel, err)
		os.Exit(2)
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	if cfg.Validate {
		if err := tzcountry.ValidateData(); err != nil {
			logger.Error("validation failed", "error", err)
			os.Exit(1)
		}
		logger.Info("embedded data OK")
		return
	}

	os.Exit(run(context.Background(), cfg, logger))
}

func run(ctx context.Context, cfg *config, logger *slog.Logger) int {
	opts := []generate.Option{
		generate.WithDataDir(cfg.DataDir),
		generate.WithCacheDir(cfg.CacheDir),
		generate.WithMomentURL(cfg.MomentURL),
		generate.WithISOURL(cfg.ISOURL),
		generate.WithOffline(cfg.Offline),
		generate.WithLogger(logger),
	}
	if cfg.NoISO {
		opts = append(opts, generate.WithoutISO())
	}
	if cfg.Zoneinfo != "" {
		opts = append(opts, generate.WithAuthority(generate.AuthorityFor(cfg.Zoneinfo)))
	}

	res, err := generate.New(opts...).Run(ctx)
	if err != nil {
		var missing *generate.MissingTimezonesError
		if errors.As(err, &missing) {
			fmt.Fprintf(os.Stderr, "Missing timezones (add them to %s/%s):\n", cfg.DataDir, generate.OverridesFile)
			for _, z := range missing.Missing {
				fmt.Fprintf(os.Stderr, "  %s\n", z)
			}
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("Wrote %d zones and %d countries to %s.\n", res.Timezones.Len(), res.Countries.Len(), cfg.DataDir)
	fmt.Println("Run 'go run ./cmd/update-data --validate' to check the embedded copy.")
	return 0
}
