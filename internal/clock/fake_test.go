package clock

import (
	"testing"
	"time"
)

func TestFakeClock_AfterAdvancesAndRecords(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := Fake(start)

	got := <-c.After(500 * time.Millisecond)
	if want := start.Add(500 * time.Millisecond); !got.Equal(want) {
		t.Errorf("After fired at %v, want %v", got, want)
	}
	if !c.Now().Equal(got) {
		t.Errorf("Now() = %v, want %v", c.Now(), got)
	}

	<-c.After(0)
	waits := c.Waits()
	if len(waits) != 1 || waits[0] != 500*time.Millisecond {
		t.Errorf("Waits() = %v, want [500ms]", waits)
	}
}

func TestFakeClock_Advance(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	c := Fake(start)
	c.Advance(24 * time.Hour)

	if got := c.Now(); !got.Equal(start.AddDate(0, 0, 1)) {
		t.Errorf("Now() = %v after Advance, want next day", got)
	}
	if len(c.Waits()) != 0 {
		t.Error("Advance should not record a wait")
	}
}
