package debounce

import (
	"time"
)

// stopTimer stops t if it is not nil. A deadline that already fired is left to
// run its callback, which is expected to find out on its own that it is stale.
func stopTimer(t *time.Timer) bool {
	if t == nil {
		return false
	}

	return t.Stop()
}
