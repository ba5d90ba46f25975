package generate

import (
	"fmt"
	"strings"
)

// FetchError reports a transport failure or a non-success HTTP status
// while retrieving a source document.
type FetchError struct {
	Source     string
	URL        string
	StatusCode int // 0 when the request never produced a response
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s (%s): status %d", e.Source, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s (%s): %v", e.Source, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a source document that is not valid JSON or does not
// have the expected shape.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LookupError reports a referential integrity failure between the zone
// table and the country table.
type LookupError struct {
	Code string // country code that could not be resolved
	Zone string // zone that referenced it, if known
}

func (e *LookupError) Error() string {
	switch {
	case e.Code == "":
		return fmt.Sprintf("zone %s lists no owning country", e.Zone)
	case e.Zone == "":
		return fmt.Sprintf("no country entry for code %s", e.Code)
	default:
		return fmt.Sprintf("no country entry for code %s (referenced by %s)", e.Code, e.Zone)
	}
}

// MissingTimezonesError lists zone identifiers the authority recognizes but
// the derived map does not cover.
type MissingTimezonesError struct {
	Missing []string
}

func (e *MissingTimezonesError) Error() string {
	return fmt.Sprintf("%d timezone(s) missing from derived map: %s",
		len(e.Missing), strings.Join(e.Missing, ", "))
}

// StageError wraps the error that aborted the pipeline with the stage it
// happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
