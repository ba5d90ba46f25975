package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// Source names, also used as cache blob names (with a .json suffix).
const (
	SourceMoment = "moment"
	SourceISO    = "iso3166"
)

// Default upstream documents.
const (
	DefaultMomentURL = "https://raw.githubusercontent.com/moment/moment-timezone/develop/data/meta/latest.json"
	DefaultISOURL    = "https://salsa.debian.org/iso-codes-team/iso-codes/-/raw/main/data/iso_3166-1.json"
)

// Source is a remote JSON document the pipeline reads.
type Source struct {
	Name string
	URL  string
}

// blobName is the cache key a source's raw body is stored under.
func (s Source) blobName() string { return s.Name + ".json" }

// defaultHTTPClient is shared by fetchers that are not given their own.
var defaultHTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}

// Fetcher retrieves source documents and keeps a raw copy in Cache.
type Fetcher struct {
	Client *http.Client
	Cache  Store
	Logger *slog.Logger

	// Offline makes Fetch read the previously cached body instead of
	// going to the network.
	Offline bool
}

// Fetch retrieves src in a single attempt and checks that the body is JSON.
// The raw body is written to the cache, replacing any earlier copy.
func (f *Fetcher) Fetch(ctx context.Context, src Source) ([]byte, error) {
	if f.Offline {
		if f.Cache == nil {
			return nil, &FetchError{Source: src.Name, URL: src.URL, Err: errors.New("offline without a cache")}
		}
		b, err := f.Cache.Get(src.blobName())
		if err != nil {
			return nil, &FetchError{Source: src.Name, URL: "cache:" + src.blobName(), Err: err}
		}
		if !gjson.ValidBytes(b) {
			return nil, &ParseError{Source: src.Name, Err: errors.New("cached body is not valid JSON")}
		}
		f.logger().Debug("read cached source", "source", src.Name, "bytes", len(b))
		return b, nil
	}

	b, err := f.download(ctx, src)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(b) {
		return nil, &ParseError{Source: src.Name, Err: errors.New("response body is not valid JSON")}
	}
	if f.Cache != nil {
		if err := f.Cache.Put(src.blobName(), b); err != nil {
			return nil, fmt.Errorf("caching %s: %w", src.Name, err)
		}
	}
	f.logger().Info("fetched source", "source", src.Name, "url", src.URL, "bytes", len(b))
	return b, nil
}

func (f *Fetcher) download(ctx context.Context, src Source) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, &FetchError{Source: src.Name, URL: src.URL, Err: err}
	}
	client := f.Client
	if client == nil {
		client = defaultHTTPClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: src.Name, URL: src.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			Source:     src.Name,
			URL:        src.URL,
			StatusCode: resp.StatusCode,
			Err:        errors.New(resp.Status),
		}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Source: src.Name, URL: src.URL, Err: err}
	}
	return b, nil
}

// FetchAll fetches every source concurrently and returns the bodies keyed by
// source name. The first failure cancels the rest.
func (f *Fetcher) FetchAll(ctx context.Context, srcs ...Source) (map[string][]byte, error) {
	bodies := make([][]byte, len(srcs))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range srcs {
		i, src := i, src
		g.Go(func() error {
			b, err := f.Fetch(ctx, src)
			if err != nil {
				return err
			}
			bodies[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string][]byte, len(srcs))
	for i, src := range srcs {
		out[src.Name] = bodies[i]
	}
	return out, nil
}

func (f *Fetcher) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return slog.Default()
}
