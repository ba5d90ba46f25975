package generate

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// TimezoneAuthority supplies the zone identifiers the platform recognizes.
// The derived map has to cover all of them.
type TimezoneAuthority interface {
	Zones(ctx context.Context) ([]string, error)
}

// zoneAreas are the top-level tzdb areas holding geographic zones. Legacy
// names such as "US/Eastern" and the Etc/ offsets are not country-bound.
var zoneAreas = map[string]bool{
	"Africa":     true,
	"America":    true,
	"Antarctica": true,
	"Arctic":     true,
	"Asia":       true,
	"Atlantic":   true,
	"Australia":  true,
	"Europe":     true,
	"Indian":     true,
	"Pacific":    true,
}

func isGeographicZone(name string) bool {
	area, _, ok := strings.Cut(name, "/")
	return ok && zoneAreas[area]
}

// tzifMagic starts every compiled zone file.
var tzifMagic = []byte("TZif")

// ZoneinfoDir lists the compiled zone files of a zoneinfo tree such as
// /usr/share/zoneinfo.
type ZoneinfoDir struct {
	FS fs.FS
}

func (z ZoneinfoDir) Zones(ctx context.Context) ([]string, error) {
	var names []string
	err := fs.WalkDir(z.FS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			// The posix/ and right/ mirrors repeat every zone.
			if path != "." && !zoneAreas[strings.SplitN(path, "/", 2)[0]] {
				return fs.SkipDir
			}
			return nil
		}
		if !isGeographicZone(path) {
			return nil
		}
		ok, err := hasTZifMagic(z.FS, path)
		if err != nil {
			return err
		}
		if ok {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking zoneinfo: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func hasTZifMagic(fsys fs.FS, path string) (bool, error) {
	fh, err := fsys.Open(path)
	if err != nil {
		return false, err
	}
	defer fh.Close()
	head := make([]byte, len(tzifMagic))
	if _, err := io.ReadFull(fh, head); err != nil {
		return false, nil
	}
	return bytes.Equal(head, tzifMagic), nil
}

// ZoneinfoZip lists the zones in a zoneinfo.zip archive, the format Go ships
// in $GOROOT/lib/time.
type ZoneinfoZip struct {
	Path string
}

func (z ZoneinfoZip) Zones(ctx context.Context) ([]string, error) {
	zr, err := zip.OpenReader(z.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", z.Path, err)
	}
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		if f.Mode().IsDir() || !isGeographicZone(f.Name) {
			continue
		}
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names, ctx.Err()
}

// StaticAuthority is a fixed zone list.
type StaticAuthority []string

func (s StaticAuthority) Zones(context.Context) ([]string, error) {
	return append([]string(nil), s...), nil
}

// DefaultAuthority picks the platform zone database: $ZONEINFO (a directory
// or a zip), then /usr/share/zoneinfo, then Go's own zoneinfo.zip.
func DefaultAuthority() TimezoneAuthority {
	if p := os.Getenv("ZONEINFO"); p != "" {
		return AuthorityFor(p)
	}
	if fi, err := os.Stat("/usr/share/zoneinfo"); err == nil && fi.IsDir() {
		return ZoneinfoDir{FS: os.DirFS("/usr/share/zoneinfo")}
	}
	return ZoneinfoZip{Path: filepath.Join(runtime.GOROOT(), "lib", "time", "zoneinfo.zip")}
}

// AuthorityFor returns the authority reading the zone database at path.
func AuthorityFor(path string) TimezoneAuthority {
	if strings.HasSuffix(path, ".zip") {
		return ZoneinfoZip{Path: path}
	}
	return ZoneinfoDir{FS: os.DirFS(path)}
}
