package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/conception-songs/internal/clock"
	"github.com/handiism/conception-songs/internal/config"
	"github.com/handiism/conception-songs/internal/search"
)

type pageGetter struct{ calls int }

func (g *pageGetter) Get(context.Context, string) ([]byte, error) {
	g.calls++
	return []byte(`{"searchResults":{"firstPosition":1,"totalRecords":2,"chartItem":[
		{"rank":2,"song":"Eternal Flame","artist":"The Bangles"},
		{"rank":1,"song":"Like a Prayer","artist":"Madonna","distribution":"Sire"}
	]}}`), nil
}

func newTestModel(getter *pageGetter) Model {
	fake := clock.Fake(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))
	return NewModel(config.DefaultSettings(), fake, getter)
}

func press(m Model, key tea.KeyType) Model {
	next, _ := m.Update(tea.KeyMsg{Type: key})
	return next.(Model)
}

func TestModel_InvalidDateStaysOnInput(t *testing.T) {
	getter := &pageGetter{}
	m := newTestModel(getter)
	m.inputs[fieldDate].SetValue("1990/01/01")
	m.inputs[fieldKey].SetValue("key")

	m = press(m, tea.KeyEnter)

	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
	if !strings.Contains(m.View(), "YYYY-MM-DD") {
		t.Error("view should show the date format hint")
	}
	if getter.calls != 0 {
		t.Errorf("made %d requests for an invalid date", getter.calls)
	}
}

func TestModel_MissingKeyMovesFocus(t *testing.T) {
	m := newTestModel(&pageGetter{})
	m.inputs[fieldDate].SetValue("1990-01-01")

	m = press(m, tea.KeyEnter)

	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
	if m.focus != fieldKey {
		t.Errorf("focus = %d, want key field", m.focus)
	}
}

func TestModel_LookupShowsResults(t *testing.T) {
	getter := &pageGetter{}
	m := newTestModel(getter)
	m.inputs[fieldDate].SetValue("1990-01-01")
	m.inputs[fieldKey].SetValue("key")

	m = press(m, tea.KeyEnter)
	if m.state != StateFetching {
		t.Fatalf("state = %v, want StateFetching", m.state)
	}

	events := make(chan search.ProgressEvent, 16)
	msg := m.startLookup(events)()
	done, ok := msg.(FetchDoneMsg)
	if !ok {
		t.Fatalf("lookup returned %T, want FetchDoneMsg", msg)
	}
	if done.Err != nil {
		t.Fatalf("lookup failed: %v", done.Err)
	}

	next, _ := m.Update(done)
	m = next.(Model)

	if m.state != StateResults {
		t.Fatalf("state = %v, want StateResults", m.state)
	}
	rows := m.results.Rows()
	if len(rows) != 2 || rows[0][1] != "Like a Prayer" || rows[1][3] != "n/a" {
		t.Errorf("rows = %v, want sorted songs with placeholder", rows)
	}
	if !strings.Contains(m.View(), "1989-03-27") {
		t.Error("results view should show the conception date")
	}

	var sawPage bool
	for e := range events {
		if e.Page == 1 {
			sawPage = true
		}
	}
	if !sawPage {
		t.Error("expected a page progress event")
	}
}

func TestModel_EscCancelsFetch(t *testing.T) {
	m := newTestModel(&pageGetter{})
	m.inputs[fieldDate].SetValue("1990-01-01")
	m.inputs[fieldKey].SetValue("key")

	m = press(m, tea.KeyEnter)
	m = press(m, tea.KeyEsc)

	if m.state != StateError {
		t.Fatalf("state = %v, want StateError", m.state)
	}
	if m.ctx.Err() == nil {
		t.Error("context should be cancelled")
	}

	// A late result from the cancelled lookup is ignored.
	next, _ := m.Update(FetchDoneMsg{})
	if next.(Model).state != StateError {
		t.Error("late FetchDoneMsg should not change state")
	}
}

func TestModel_CancelledLookupDoesNotLeakIntoNext(t *testing.T) {
	m := newTestModel(&pageGetter{})
	m.inputs[fieldDate].SetValue("1990-01-01")
	m.inputs[fieldKey].SetValue("key")

	m = press(m, tea.KeyEnter)
	first := m.lookup
	m = press(m, tea.KeyEsc)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(Model)
	m.inputs[fieldDate].SetValue("1991-05-20")
	m = press(m, tea.KeyEnter)
	if m.state != StateFetching {
		t.Fatalf("state = %v, want StateFetching", m.state)
	}
	if m.lookup == first {
		t.Fatal("new lookup should get a new number")
	}

	next, _ = m.Update(ProgressMsg{Lookup: first, Event: search.ProgressEvent{Message: "old", Page: 3, TotalPages: 3}})
	m = next.(Model)
	if len(m.logs) != 0 || m.page != 0 {
		t.Errorf("progress from the cancelled lookup was applied: logs=%v page=%d", m.logs, m.page)
	}

	next, _ = m.Update(FetchDoneMsg{Lookup: first, Err: context.Canceled})
	m = next.(Model)
	if m.state != StateFetching {
		t.Errorf("state = %v after stale result, want StateFetching", m.state)
	}
	if m.err != nil {
		t.Errorf("err = %v, want nil", m.err)
	}
}

func TestModel_ResetAfterError(t *testing.T) {
	m := newTestModel(&pageGetter{})
	m.state = StateError

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(Model)

	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
	if m.ctx.Err() != nil {
		t.Error("reset should create a fresh context")
	}
}

func TestPagePercent(t *testing.T) {
	tests := []struct {
		page, total int
		want        float64
	}{
		{0, 0, 0},
		{1, 3, 1.0 / 3},
		{3, 3, 1},
		{4, 3, 1},
	}
	for _, tt := range tests {
		if got := pagePercent(tt.page, tt.total); got != tt.want {
			t.Errorf("pagePercent(%d, %d) = %v, want %v", tt.page, tt.total, got, tt.want)
		}
	}
}
