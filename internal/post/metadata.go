// Package post holds the typed view of a converted post and the policies that
// order posts within a site.
package post

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	FieldTitle        = "title"
	FieldCreationDate = "creation_date"

	// DateLayout is the only accepted textual form of creation_date.
	DateLayout = "2006-01-02"
)

var (
	// ErrMissingCreationDate is returned when date ordering is active and a
	// post has no creation_date.
	ErrMissingCreationDate = errors.New("creation_date is required")
	// ErrMalformedCreationDate is returned for any creation_date that is not a
	// YYYY-MM-DD date.
	ErrMalformedCreationDate = errors.New("creation_date is malformed")
)

// Metadata is a post's metadata block resolved into typed fields. Fields keeps
// the full mapping for templates.
type Metadata struct {
	Title           string
	HasTitle        bool
	CreationDate    time.Time
	HasCreationDate bool
	Fields          map[string]any
}

// ParseMetadata resolves the well-known keys of fields. A malformed
// creation_date is always an error; a missing one only when requireDate is set.
func ParseMetadata(fields map[string]any, requireDate bool) (Metadata, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	md := Metadata{Fields: fields}

	if v, ok := fields[FieldTitle]; ok && v != nil {
		md.Title = strings.TrimSpace(fmt.Sprint(v))
		md.HasTitle = md.Title != ""
	}

	raw, ok := fields[FieldCreationDate]
	if !ok || raw == nil {
		if requireDate {
			return Metadata{}, ErrMissingCreationDate
		}
		return md, nil
	}

	date, err := parseDate(raw)
	if err != nil {
		return Metadata{}, err
	}
	md.CreationDate = date
	md.HasCreationDate = true
	return md, nil
}

func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 || d.Nanosecond() != 0 {
			return time.Time{}, fmt.Errorf("%w: %s is not a calendar date", ErrMalformedCreationDate, d.Format(time.RFC3339))
		}
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, fmt.Errorf("%w: empty value", ErrMalformedCreationDate)
		}
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q: want YYYY-MM-DD", ErrMalformedCreationDate, s)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported value %v (%T)", ErrMalformedCreationDate, v, v)
	}
}
