// Package watcher drives the repeating update check cycle and owns the
// per-source result state handed to consumers.
package watcher

// HistoryState is the tri-state of a per-source result history.
type HistoryState int

const (
	// StateError means no check has succeeded yet; there is no value.
	// The zero history starts here.
	StateError HistoryState = iota
	// StateOk means the last check succeeded and the value is current.
	StateOk
	// StateErrorWithHistory means the last check failed but an earlier
	// success left a value behind.
	StateErrorWithHistory
)

// History retains the last-known-good result of one source across
// failures. A failure never discards a previously seen good value; it
// only ages an Ok into ErrorWithHistory so consumers can render stale
// data with an error indicator instead of silently showing nothing.
//
// History is a value type: Apply returns the successor state.
type History[T any] struct {
	state HistoryState
	value []T
}

// Apply folds a new per-source result into the history.
func (h History[T]) Apply(value []T, err error) History[T] {
	if err == nil {
		return History[T]{state: StateOk, value: value}
	}
	if h.state == StateOk {
		return History[T]{state: StateErrorWithHistory, value: h.value}
	}
	// Error and ErrorWithHistory stay as they are.
	return h
}

// State returns the current tri-state.
func (h History[T]) State() HistoryState {
	return h.state
}

// Value returns the held result and whether one exists.
func (h History[T]) Value() ([]T, bool) {
	switch h.state {
	case StateOk, StateErrorWithHistory:
		return h.value, true
	default:
		return nil, false
	}
}

// Count returns the number of held results, 0 when no value exists.
func (h History[T]) Count() int {
	value, ok := h.Value()
	if !ok {
		return 0
	}
	return len(value)
}

// HasError reports whether the history is anything but a pure success.
func (h History[T]) HasError() bool {
	return h.state != StateOk
}
