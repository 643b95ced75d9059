package dto

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestJSONChartItems_Unmarshal(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCount int
	}{
		{"array", `{"chartItem":[{"rank":1},{"rank":2}]}`, 2},
		{"single object", `{"chartItem":{"rank":1}}`, 1},
		{"null", `{"chartItem":null}`, 0},
		{"absent", `{}`, 0},
		{"empty array", `{"chartItem":[]}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var results JSONSearchResults
			if err := json.Unmarshal([]byte(tt.body), &results); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if len(results.ChartItems) != tt.wantCount {
				t.Errorf("got %d items, want %d", len(results.ChartItems), tt.wantCount)
			}
		})
	}
}

func TestJSONChartItems_UnmarshalInvalid(t *testing.T) {
	var results JSONSearchResults
	if err := json.Unmarshal([]byte(`{"chartItem":"oops"}`), &results); err == nil {
		t.Error("expected error for string chartItem")
	}
}

func TestJSONChartItem_ToEntry(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErr  bool
		wantDist bool
	}{
		{"complete", `{"rank":1,"song":"Like a Prayer","artist":"Madonna","distribution":"Sire"}`, false, true},
		{"no distribution", `{"rank":2,"song":"Eternal Flame","artist":"The Bangles"}`, false, false},
		{"null distribution", `{"rank":2,"song":"Eternal Flame","artist":"The Bangles","distribution":null}`, false, false},
		{"missing rank", `{"song":"X","artist":"Y"}`, true, false},
		{"missing song", `{"rank":3,"artist":"Y"}`, true, false},
		{"missing artist", `{"rank":3,"song":"X"}`, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item JSONChartItem
			if err := json.Unmarshal([]byte(tt.body), &item); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}

			entry, err := item.ToEntry()
			if tt.wantErr {
				if !errors.Is(err, ErrMissingField) {
					t.Errorf("error = %v, want ErrMissingField", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (entry.Distribution != nil) != tt.wantDist {
				t.Errorf("Distribution = %v, wantDist %v", entry.Distribution, tt.wantDist)
			}
		})
	}
}

func TestJSONSearchResults_ToEntries(t *testing.T) {
	body := `{"firstPosition":1,"totalRecords":3,"chartItem":[
		{"rank":2,"song":"B","artist":"b"},
		{"rank":1,"song":"A","artist":"a","distribution":"Label"},
		{"rank":3,"artist":"c"}
	]}`

	var results JSONSearchResults
	if err := json.Unmarshal([]byte(body), &results); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if _, err := results.ToEntries(); !errors.Is(err, ErrMissingField) {
		t.Errorf("ToEntries error = %v, want ErrMissingField", err)
	}

	results.ChartItems = results.ChartItems[:2]
	entries, err := results.ToEntries()
	if err != nil {
		t.Fatalf("ToEntries failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Rank != 2 || entries[1].Rank != 1 {
		t.Errorf("ToEntries = %+v, want page order preserved", entries)
	}
}
