package clock

import (
	"time"

	"github.com/smallbiznis/boardinghouse/pkg/date"
)

// Clock abstracts wall-clock time so overdue and expiry derivations can be
// exercised deterministically.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Today returns the clock's current UTC calendar date.
func Today(c Clock) date.Date {
	return date.Of(c.Now())
}
