package lazy

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

type TimeSpan = timespan.TimeSpan

func NewTimeSpan(from, to time.Time) TimeSpan {
	return timespan.BetweenTimes(from, to)
}

// InitializationSpan reports when the winning initializer run started and
// ended. ok is false until the cell is initialized. Under Publication the
// span belongs to the run that got published, not to discarded ones.
func (v *Value[T]) InitializationSpan() (span TimeSpan, ok bool) {
	if !v.hasValue.Load() {
		return TimeSpan{}, false
	}
	return v.span, true
}
