package browser

import (
	"github.com/sandevgo/factdeck/internal/core"
)

// FetchFailedMessage is the only error text a user ever sees.
const FetchFailedMessage = "Failed to fetch a new fact. Please try again."

// NoFact is the cursor value while history is empty.
const NoFact = -1

// Ticket identifies the single in-flight fetch. The zero Ticket is never issued.
type Ticket uint64

// State is an immutable snapshot of the browser. Every transition returns a
// new State and leaves the receiver untouched, so snapshots can be handed to
// renderers without copying.
//
// Invariants: cursor == NoFact iff history is empty, otherwise
// 0 <= cursor < len(history). history only ever grows.
type State struct {
	history []core.Fact
	cursor  int
	errMsg  string
	pending Ticket // non-zero while a fetch is in flight
	issued  Ticket
}

// New returns the empty state a session starts with.
func New() State {
	return State{cursor: NoFact}
}

// Len is the number of facts fetched so far.
func (s State) Len() int { return len(s.history) }

// Cursor is the index of the displayed fact, or NoFact.
func (s State) Cursor() int { return s.cursor }

// Loading reports whether a fetch is in flight.
func (s State) Loading() bool { return s.pending != 0 }

// ErrorMessage is empty unless the last fetch failed.
func (s State) ErrorMessage() string { return s.errMsg }

// Pending returns the in-flight ticket, zero when idle.
func (s State) Pending() Ticket { return s.pending }

// AtEnd reports whether the cursor sits on the newest fact (or there is none),
// i.e. whether Next would fetch.
func (s State) AtEnd() bool { return s.cursor >= len(s.history)-1 }

// Current returns the fact under the cursor.
func (s State) Current() (core.Fact, bool) {
	if s.cursor < 0 || s.cursor >= len(s.history) {
		return core.Fact{}, false
	}
	return s.history[s.cursor], true
}

// At returns the fact at index i.
func (s State) At(i int) (core.Fact, bool) {
	if i < 0 || i >= len(s.history) {
		return core.Fact{}, false
	}
	return s.history[i], true
}

// History returns a copy of all fetched facts in fetch order.
func (s State) History() []core.Fact {
	out := make([]core.Fact, len(s.history))
	copy(out, s.history)
	return out
}

// BeginFetch marks a fetch as started and clears the error. It returns
// ok=false and the unchanged state when a fetch is already in flight.
func (s State) BeginFetch() (State, Ticket, bool) {
	if s.pending != 0 {
		return s, 0, false
	}
	s.issued++
	s.pending = s.issued
	s.errMsg = ""
	return s, s.pending, true
}

// CompleteFetch appends f and moves the cursor onto it. A ticket that is not
// the pending one is stale and leaves the state unchanged.
func (s State) CompleteFetch(t Ticket, f core.Fact) State {
	if t == 0 || t != s.pending {
		return s
	}

	// Full slice expression forces a copy on append so earlier snapshots
	// never observe the new element through a shared backing array.
	s.history = append(s.history[:len(s.history):len(s.history)], f)
	s.cursor = len(s.history) - 1
	s.pending = 0
	s.errMsg = ""
	return s
}

// FailFetch records a failed fetch. History and cursor are left as they were.
func (s State) FailFetch(t Ticket) State {
	if t == 0 || t != s.pending {
		return s
	}
	s.pending = 0
	s.errMsg = FetchFailedMessage
	return s
}

// Previous moves the cursor back by one. No-op at the first fact.
func (s State) Previous() State {
	if s.cursor > 0 {
		s.cursor--
	}
	return s
}

// Next moves the cursor forward. At the end of history it leaves the state
// unchanged and returns needFetch=true: the caller advances by fetching.
func (s State) Next() (next State, needFetch bool) {
	if s.cursor < len(s.history)-1 {
		s.cursor++
		return s, false
	}
	return s, true
}

// GoTo moves the cursor to index. Out-of-range indexes are ignored.
func (s State) GoTo(index int) State {
	if index < 0 || index >= len(s.history) {
		return s
	}
	s.cursor = index
	return s
}
