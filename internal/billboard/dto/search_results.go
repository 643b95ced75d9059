package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/handiism/conception-songs/internal/model"
)

// ErrMissingField is returned when a chart item lacks one of the fields
// every entry needs: rank, song or artist.
var ErrMissingField = errors.New("chart item missing required field")

// JSONResponse is the top-level body of a chart list response.
type JSONResponse struct {
	SearchResults *JSONSearchResults `json:"searchResults"`
}

// JSONSearchResults describes one page of chart items.
//
// FirstPosition is the 1-based cursor of the first item on the page and
// TotalRecords the number of items available for the whole query.
type JSONSearchResults struct {
	FirstPosition *int           `json:"firstPosition"`
	TotalRecords  *int           `json:"totalRecords"`
	ChartItems    JSONChartItems `json:"chartItem"`
}

// JSONChartItem is a single chart position as sent by the API.
//
// Pointer fields distinguish "absent" from the zero value so that missing
// required fields can be reported instead of silently becoming 0 or "".
type JSONChartItem struct {
	Rank         *int    `json:"rank"`
	Song         *string `json:"song"`
	Artist       *string `json:"artist"`
	Distribution *string `json:"distribution"`
}

// JSONChartItems decodes chartItem, which the API sends as an array when a
// page holds several items and as a bare object when it holds exactly one.
type JSONChartItems []JSONChartItem

// UnmarshalJSON accepts an array, a single object, or null.
func (items *JSONChartItems) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*items = nil
		return nil
	case trimmed[0] == '{':
		var single JSONChartItem
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		*items = JSONChartItems{single}
		return nil
	}

	var list []JSONChartItem
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return err
	}
	*items = list
	return nil
}

// ToEntry converts JSONChartItem to a model.ChartEntry.
//
// A missing distribution becomes a nil Distribution; a missing rank, song
// or artist is an ErrMissingField error.
func (ji *JSONChartItem) ToEntry() (model.ChartEntry, error) {
	switch {
	case ji.Rank == nil:
		return model.ChartEntry{}, fmt.Errorf("%w: rank", ErrMissingField)
	case ji.Song == nil:
		return model.ChartEntry{}, fmt.Errorf("%w: song (rank %d)", ErrMissingField, *ji.Rank)
	case ji.Artist == nil:
		return model.ChartEntry{}, fmt.Errorf("%w: artist (rank %d)", ErrMissingField, *ji.Rank)
	}

	return model.ChartEntry{
		Rank:         *ji.Rank,
		Title:        *ji.Song,
		Artist:       *ji.Artist,
		Distribution: ji.Distribution,
	}, nil
}

// ToEntries converts every item on the page, stopping at the first error.
func (jr *JSONSearchResults) ToEntries() ([]model.ChartEntry, error) {
	entries := make([]model.ChartEntry, 0, len(jr.ChartItems))
	for i := range jr.ChartItems {
		entry, err := jr.ChartItems[i].ToEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
