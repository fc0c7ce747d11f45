package service

import (
	"time"
)

// DateLayout is the calendar-date format stored on log and aggregate rows.
const DateLayout = "2006-01-02"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// Calendar decides which calendar day "today" is for a user. A valid IANA
// zone on the user wins; otherwise the server default applies.
type Calendar struct {
	clock    Clock
	fallback *time.Location
}

// NewCalendar creates a calendar. A nil clock means the wall clock and a nil
// location means UTC.
func NewCalendar(clock Clock, fallback *time.Location) *Calendar {
	if clock == nil {
		clock = SystemClock()
	}
	if fallback == nil {
		fallback = time.UTC
	}
	return &Calendar{clock: clock, fallback: fallback}
}

// Location resolves the zone used for a user with the given timezone name.
func (c *Calendar) Location(userTZ string) *time.Location {
	if userTZ != "" {
		if loc, err := time.LoadLocation(userTZ); err == nil {
			return loc
		}
	}
	return c.fallback
}

// Now returns the current instant in the user's zone.
func (c *Calendar) Now(userTZ string) time.Time {
	return c.clock.Now().In(c.Location(userTZ))
}

// Today returns the user's current calendar date as YYYY-MM-DD.
func (c *Calendar) Today(userTZ string) string {
	return c.Now(userTZ).Format(DateLayout)
}

// ValidDate reports whether s is a YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
