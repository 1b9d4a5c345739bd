package debounce

// verdict is the outcome of a deadline expiring.
type verdict int

const (
	// verdictStale means the call was superseded and must be rejected.
	verdictStale verdict = iota
	// verdictDispatch means the call is the latest one and must be invoked.
	verdictDispatch
	// verdictClose means a leading call's window ended with no further calls.
	verdictClose
	// verdictIgnore means the deadline of a leading call outlived its window.
	verdictIgnore
)

func (v verdict) String() string {
	switch v {
	case verdictStale:
		return "stale"
	case verdictDispatch:
		return "dispatch"
	case verdictClose:
		return "close"
	case verdictIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

// admission describes how a call was let into the session.
type admission struct {
	// seq is the sequence number assigned to the call.
	seq uint64
	// leading is true when the call must be invoked immediately.
	leading bool
	// superseded is the sequence number of the trailing call this one replaced,
	// or zero if there was none.
	superseded uint64
}

// session is the scheduling state shared by every call of one Debouncer. It
// knows nothing about timers, futures or the wrapped function; callers are
// expected to serialize access to it.
//
// Call identity is an increasing sequence number. Zero is never assigned, so
// it doubles as "none".
type session struct {
	seq     uint64 // last assigned sequence number
	open    bool   // a window is in progress
	pending uint64 // trailing call awaiting its deadline, or zero
	latest  uint64 // most recently admitted call, or zero when idle
}

// admit registers a new call and decides whether it opens a window on the
// leading edge or waits for its own deadline.
func (s *session) admit(leading bool) admission {
	s.seq++
	a := admission{seq: s.seq}

	if !s.open {
		s.open = true
		s.latest = a.seq

		if leading {
			a.leading = true
			return a
		}

		s.pending = a.seq

		return a
	}

	a.superseded = s.pending
	s.pending = a.seq
	s.latest = a.seq

	return a
}

// expire is called when the deadline armed for an admitted call elapses.
//
// A trailing call is dispatched only if it is still the pending one; anything
// else has been superseded. A leading call's deadline closes the window if no
// other call arrived since, and is otherwise ignored.
func (s *session) expire(a admission) verdict {
	if a.leading {
		if s.open && s.latest == a.seq && s.pending == 0 {
			s.reset()
			return verdictClose
		}

		return verdictIgnore
	}

	if s.open && s.pending == a.seq {
		s.reset()
		return verdictDispatch
	}

	return verdictStale
}

// cancel closes the window and returns the sequence number of the trailing
// call that was waiting for dispatch, or zero.
func (s *session) cancel() uint64 {
	pending := s.pending
	s.reset()

	return pending
}

func (s *session) reset() {
	s.open = false
	s.pending = 0
	s.latest = 0
}
