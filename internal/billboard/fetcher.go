package billboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/handiism/conception-songs/internal/billboard/dto"
	"github.com/handiism/conception-songs/internal/http"
	"github.com/handiism/conception-songs/internal/model"
	"github.com/handiism/conception-songs/internal/ratelimit"
)

var (
	// ErrMalformedPage is returned when a response lacks the searchResults
	// object or its firstPosition/totalRecords counters.
	ErrMalformedPage = errors.New("malformed chart page")

	// ErrPaginationStalled is returned when the API reports a page that
	// does not move past the previous one, which would otherwise loop forever.
	ErrPaginationStalled = errors.New("chart pagination did not advance")
)

// Getter performs a GET request and returns the response body.
//
// *http.Client from internal/http satisfies Getter.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Config describes which chart to query and how.
type Config struct {
	// Endpoint is the chart list URL. Empty selects DefaultEndpoint.
	Endpoint string

	// ChartID selects the chart. Zero selects HotSinglesChartID.
	ChartID int

	// APIKey is the caller's developer key.
	APIKey string

	// PageSize is the number of items per request. Zero selects DefaultPageSize.
	PageSize int
}

// PageInfo reports the outcome of one fetched page.
type PageInfo struct {
	Number        int
	FirstPosition int
	TotalRecords  int
	Items         int
}

// Result holds every entry fetched for a window, in page order.
type Result struct {
	Entries      []model.ChartEntry
	Pages        int
	TotalRecords int
}

// Fetcher pages through the chart list endpoint for a date window.
//
// Requests are strictly sequential and paced by a ratelimit.Pacer. The
// first error (transport, status, decoding, missing fields) aborts the
// whole fetch; no partial result is returned and nothing is retried.
//
// Example usage:
//
//	fetcher := billboard.NewFetcher(http.NewClient(0, ""), billboard.Config{
//	    APIKey: key,
//	}, ratelimit.NewPacer(clock.Real(), 2))
//
//	result, err := fetcher.FetchWindow(ctx, model.NewWindow(conception))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d entries in %d pages\n", len(result.Entries), result.Pages)
type Fetcher struct {
	getter Getter
	config Config
	pacer  *ratelimit.Pacer
	onPage func(PageInfo)
}

// NewFetcher creates a Fetcher. A nil pacer disables pacing.
func NewFetcher(getter Getter, cfg Config, pacer *ratelimit.Pacer) *Fetcher {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.ChartID == 0 {
		cfg.ChartID = HotSinglesChartID
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	return &Fetcher{
		getter: getter,
		config: cfg,
		pacer:  pacer,
	}
}

// OnPage registers a callback invoked after each page is decoded.
func (f *Fetcher) OnPage(fn func(PageInfo)) {
	f.onPage = fn
}

// FetchWindow retrieves every chart item published within w.
//
// The cursor starts at 1 and advances by the page size after each page.
// Positions are 1-based, so a page starting at firstPosition covers up to
// firstPosition + pageSize - 1. The loop ends once that reaches
// totalRecords, as reported by the most recent page.
func (f *Fetcher) FetchWindow(ctx context.Context, w model.Window) (*Result, error) {
	result := &Result{}
	start := 1
	prevFirst := 0

	for done := false; !done; {
		if f.pacer != nil {
			if err := f.pacer.Wait(ctx); err != nil {
				return nil, err
			}
		}

		page := result.Pages + 1
		results, err := f.fetchPage(ctx, w, start)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}

		first, total := *results.FirstPosition, *results.TotalRecords
		if page > 1 && first <= prevFirst {
			return nil, fmt.Errorf("%w: page %d starts at %d after %d", ErrPaginationStalled, page, first, prevFirst)
		}
		prevFirst = first

		entries, err := results.ToEntries()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		result.Entries = append(result.Entries, entries...)
		result.Pages = page
		result.TotalRecords = total

		if f.onPage != nil {
			f.onPage(PageInfo{
				Number:        page,
				FirstPosition: first,
				TotalRecords:  total,
				Items:         len(entries),
			})
		}

		start += f.config.PageSize
		done = first+f.config.PageSize > total
	}

	return result, nil
}

// fetchPage requests and decodes the page beginning at start.
func (f *Fetcher) fetchPage(ctx context.Context, w model.Window, start int) (*dto.JSONSearchResults, error) {
	pageURL, err := BuildURL(f.config.Endpoint, Query{
		ChartID: f.config.ChartID,
		APIKey:  f.config.APIKey,
		Window:  w,
		Start:   start,
		Count:   f.config.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}

	body, err := f.getter.Get(ctx, pageURL)
	if err != nil {
		return nil, redactError(err)
	}

	return decodePage(body)
}

// decodePage parses a page body and checks the pagination counters exist.
func decodePage(body []byte) (*dto.JSONSearchResults, error) {
	var resp dto.JSONResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse chart JSON: %w", err)
	}

	switch {
	case resp.SearchResults == nil:
		return nil, fmt.Errorf("%w: no searchResults", ErrMalformedPage)
	case resp.SearchResults.FirstPosition == nil:
		return nil, fmt.Errorf("%w: no firstPosition", ErrMalformedPage)
	case resp.SearchResults.TotalRecords == nil:
		return nil, fmt.Errorf("%w: no totalRecords", ErrMalformedPage)
	}

	return resp.SearchResults, nil
}

// redactError strips the API key from URLs embedded in transport and
// status errors before they reach logs or the terminal.
func redactError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = RedactURL(urlErr.URL)
	}
	var statusErr *http.StatusError
	if errors.As(err, &statusErr) {
		statusErr.URL = RedactURL(statusErr.URL)
	}
	return err
}
