package search

import (
	"context"
	"fmt"
	"time"

	"github.com/handiism/conception-songs/internal/billboard"
	"github.com/handiism/conception-songs/internal/clock"
	"github.com/handiism/conception-songs/internal/config"
	"github.com/handiism/conception-songs/internal/model"
	"github.com/handiism/conception-songs/internal/ratelimit"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a lookup progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel

	// Page and TotalPages are set on page events. TotalPages is an
	// estimate derived from the record count the API reported.
	Page       int
	TotalPages int
}

// Manager coordinates a conception-songs lookup.
type Manager struct {
	settings *config.Settings
	clock    clock.Clock
	fetcher  *billboard.Fetcher

	onProgress func(ProgressEvent)
}

// NewManager creates a new lookup Manager.
//
// getter performs the HTTP requests (normally *http.Client from
// internal/http) and clk supplies both today's date and rate-limit waits.
func NewManager(settings *config.Settings, getter billboard.Getter, clk clock.Clock, onProgress func(ProgressEvent)) *Manager {
	m := &Manager{
		settings:   settings,
		clock:      clk,
		onProgress: onProgress,
	}

	m.fetcher = billboard.NewFetcher(getter, settings.ToFetcherConfig(), ratelimit.NewPacer(clk, settings.CallsPerSecond))
	m.fetcher.OnPage(m.pageFetched)

	return m
}

// ParseBirthDate validates s against today's date on the Manager's clock.
func (m *Manager) ParseBirthDate(s string) (time.Time, error) {
	return model.ParseBirthDate(s, m.clock.Now())
}

// Lookup fetches every chart entry in the conception window of birth,
// sorts them by rank and truncates to settings.Number (if set). An empty
// window is not an error; it is reported as a warning.
func (m *Manager) Lookup(ctx context.Context, birth time.Time) (*model.Report, error) {
	rep := model.NewReport(birth)

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Conception date %s, searching charts %s",
			rep.ConceptionDate.Format(model.DateLayout), rep.Window),
		Level: LevelInfo,
	})

	result, err := m.fetcher.FetchWindow(ctx, rep.Window)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error fetching charts: %v", err), Level: LevelError})
		return nil, err
	}

	songs := result.Entries
	if len(songs) == 0 {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("No chart entries found for %s", rep.Window),
			Level:   LevelWarning,
		})
	}
	model.SortByRank(songs)
	rep.Songs = model.Truncate(songs, m.settings.Limit())
	rep.Pages = result.Pages
	rep.TotalRecords = result.TotalRecords

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Found %d chart entries in %d page(s), returning %d", len(songs), result.Pages, len(rep.Songs)),
		Level:   LevelSuccess,
	})

	return rep, nil
}

// Run parses the birth date string and performs the lookup.
func (m *Manager) Run(ctx context.Context, birthDate string) (*model.Report, error) {
	birth, err := m.ParseBirthDate(birthDate)
	if err != nil {
		return nil, err
	}
	return m.Lookup(ctx, birth)
}

func (m *Manager) pageFetched(page billboard.PageInfo) {
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Fetched page %d: %d item(s) from position %d of %d",
			page.Number, page.Items, page.FirstPosition, page.TotalRecords),
		Level:      LevelVerbose,
		Page:       page.Number,
		TotalPages: totalPages(page.TotalRecords, m.settings.PageSize),
	})
}

// totalPages estimates how many pages a query will take.
func totalPages(totalRecords, pageSize int) int {
	if pageSize <= 0 || totalRecords <= 0 {
		return 1
	}
	return (totalRecords + pageSize - 1) / pageSize
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
