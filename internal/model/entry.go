package model

import (
	"encoding/json"
	"sort"
	"time"
)

// ChartEntry is one single on a weekly chart.
//
// Distribution is an optional label the chart API attaches to some items.
// A nil Distribution means the API sent none; it is kept as an explicit
// absent value rather than an empty string so output can tell the two apart.
type ChartEntry struct {
	Rank         int
	Title        string
	Artist       string
	Distribution *string
}

// DistributionOr returns the distribution label, or placeholder if absent.
func (e ChartEntry) DistributionOr(placeholder string) string {
	if e.Distribution == nil {
		return placeholder
	}
	return *e.Distribution
}

// MarshalJSON encodes the entry as a positional array:
//
//	[rank, "title", "artist", "distribution" | null]
func (e ChartEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Rank, e.Title, e.Artist, e.Distribution})
}

// SortByRank orders entries by ascending rank in place. Entries with equal
// rank keep their relative order.
func SortByRank(entries []ChartEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rank < entries[j].Rank
	})
}

// Truncate returns at most n entries. A negative n means no limit.
func Truncate(entries []ChartEntry, n int) []ChartEntry {
	if n < 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}

// Report is the result of one conception-songs lookup.
type Report struct {
	// BirthDate is the validated input date.
	BirthDate time.Time

	// ConceptionDate is BirthDate minus GestationDays.
	ConceptionDate time.Time

	// Window is the chart search range around ConceptionDate.
	Window Window

	// Songs holds the chart entries, sorted by rank and truncated if requested.
	Songs []ChartEntry

	// Pages is the number of API pages fetched.
	Pages int

	// TotalRecords is the record count the API reported for the window,
	// before any truncation.
	TotalRecords int
}

// NewReport builds a Report for a birth date with no songs yet.
func NewReport(birth time.Time) *Report {
	conception := ConceptionDate(birth)
	return &Report{
		BirthDate:      birth,
		ConceptionDate: conception,
		Window:         NewWindow(conception),
	}
}
