package model

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

const (
	// DateLayout is the ISO 8601 calendar date layout used for input and output.
	DateLayout = "2006-01-02"

	// GestationDays is the average length of a human pregnancy (40 weeks).
	GestationDays = 280

	// WindowRadiusDays is how far the chart search extends on each side of
	// the conception date. The Hot 100 is published weekly, so a 7 day
	// window always contains at least one issue.
	WindowRadiusDays = 3
)

// EarliestBirthDate is the first date the chart API has data for.
var EarliestBirthDate = time.Date(1959, time.February, 13, 0, 0, 0, 0, time.UTC)

var (
	// ErrInvalidFormat is returned when a date string is not YYYY-MM-DD.
	ErrInvalidFormat = errors.New(`invalid date: must be formatted "YYYY-MM-DD"`)

	// ErrInvalidDate is returned when a correctly formatted string names a
	// day that does not exist, such as 2020-13-40 or 2021-02-29.
	ErrInvalidDate = errors.New("invalid date")

	// ErrOutOfRange is returned when a birth date is before
	// EarliestBirthDate or after today.
	ErrOutOfRange = errors.New("invalid date: must be between 1959-02-13 and today")
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseBirthDate validates s and returns it as a UTC calendar date.
//
// Validation happens in three stages, each with its own sentinel error:
//  1. s must literally match YYYY-MM-DD (ErrInvalidFormat)
//  2. s must name a real calendar day (ErrInvalidDate)
//  3. the day must lie in [EarliestBirthDate, today] (ErrOutOfRange)
//
// today is reduced to its calendar date in its own location, so a birth
// date equal to today is always accepted regardless of the time of day.
//
// Example:
//
//	birth, err := model.ParseBirthDate("1990-01-01", time.Now())
//	if errors.Is(err, model.ErrOutOfRange) {
//	    // ...
//	}
func ParseBirthDate(s string, today time.Time) (time.Time, error) {
	if !isoDatePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w, got %q", ErrInvalidFormat, s)
	}

	date, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, s, err)
	}

	if date.Before(EarliestBirthDate) || date.After(CalendarDate(today)) {
		return time.Time{}, fmt.Errorf("%w, got %s", ErrOutOfRange, s)
	}

	return date, nil
}

// CalendarDate strips the clock time from t, keeping the year, month and
// day as seen in t's location, and returns midnight UTC of that day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ConceptionDate returns the estimated conception date for a birth date.
func ConceptionDate(birth time.Time) time.Time {
	return birth.AddDate(0, 0, -GestationDays)
}

// Window is an inclusive range of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow returns the chart search window centred on the conception date.
func NewWindow(conception time.Time) Window {
	return Window{
		Start: conception.AddDate(0, 0, -WindowRadiusDays),
		End:   conception.AddDate(0, 0, WindowRadiusDays),
	}
}

// Days returns the number of calendar days covered, counting both ends.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// String formats the window as "start..end".
func (w Window) String() string {
	return w.Start.Format(DateLayout) + ".." + w.End.Format(DateLayout)
}
