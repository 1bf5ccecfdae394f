package clock

import (
	"testing"
	"time"

	"github.com/smallbiznis/boardinghouse/pkg/date"
)

func TestTodayTruncatesToDate(t *testing.T) {
	c := NewFakeClock(time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC))

	want := date.New(2024, time.March, 15)
	if got := Today(c); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	c.Advance(2 * time.Minute)
	if got := Today(c); got != want.AddDays(1) {
		t.Fatalf("expected next day after advance, got %s", got)
	}
}
