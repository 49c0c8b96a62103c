// Package locale renders the date and time strings stored on logged exercises and
// sessions. The format is fixed (day/month/year, 24-hour clock) so that stored dates
// can be compared as strings.
package locale

import (
	"fmt"
	"time"
)

const (
	DateLayout     = "02/01/2006"
	TimeLayout     = "15:04"
	CalendarLayout = "2006-01-02"
)

// Formatter formats instants in one timezone.
type Formatter struct {
	loc *time.Location
}

// NewFormatter loads the named IANA timezone; an empty name means the local zone.
func NewFormatter(timezone string) (*Formatter, error) {
	if timezone == "" {
		return &Formatter{loc: time.Local}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &Formatter{loc: loc}, nil
}

// NewFormatterIn uses an already resolved location.
func NewFormatterIn(loc *time.Location) *Formatter {
	return &Formatter{loc: loc}
}

func (f *Formatter) Location() *time.Location {
	return f.loc
}

func (f *Formatter) Date(t time.Time) string {
	return t.In(f.loc).Format(DateLayout)
}

func (f *Formatter) Time(t time.Time) string {
	return t.In(f.loc).Format(TimeLayout)
}

// ParseCalendarDate reads a YYYY-MM-DD date as local midnight.
func (f *Formatter) ParseCalendarDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(CalendarLayout, s, f.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// MidnightOf returns the start of t's day.
func (f *Formatter) MidnightOf(t time.Time) time.Time {
	t = t.In(f.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, f.loc)
}
