package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/openarch/archwatch/internal/common/logger"
	"github.com/openarch/archwatch/internal/updates"
)

// Source identifies one of the three update sources.
type Source string

const (
	SourcePacman Source = "pacman"
	SourceAur    Source = "aur"
	SourceDevel  Source = "devel"
)

// AllSources lists every source in display order.
var AllSources = []Source{SourcePacman, SourceAur, SourceDevel}

// Status is the full result bundle published after each cycle: the three
// history-wrapped collections plus the time of the last online pass.
type Status struct {
	Pacman     History[updates.PacmanUpdate]
	Aur        History[updates.AurUpdate]
	Devel      History[updates.DevelUpdate]
	LastOnline time.Time
}

// TotalDue returns the total number of due updates, skipping the given
// sources. A source can be hidden from a badge count while still being
// visible in detail views.
func (s Status) TotalDue(exclude ...Source) int {
	excluded := make(map[Source]bool, len(exclude))
	for _, source := range exclude {
		excluded[source] = true
	}

	total := 0
	if !excluded[SourcePacman] {
		total += s.Pacman.Count()
	}
	if !excluded[SourceAur] {
		total += s.Aur.Count()
	}
	if !excluded[SourceDevel] {
		total += s.Devel.Count()
	}
	return total
}

// HasErrors reports whether any source is in an error state, including
// errors that still hold stale data.
func (s Status) HasErrors() bool {
	return s.Pacman.HasError() || s.Aur.HasError() || s.Devel.HasError()
}

// Event is one message to the consumer. Exactly one of Status or Err is
// set: a full bundle after a completed cycle, or a source-scoped error.
type Event struct {
	Status *Status
	Source Source
	Err    string
}

// UpdateChecker is the per-source check surface the watcher drives.
// Implemented by *updates.Checker.
type UpdateChecker interface {
	CheckPacmanOnline(ctx context.Context) ([]updates.PacmanUpdate, updates.SourcesList, error)
	CheckPacmanOffline(ctx context.Context, cache updates.SourcesList) ([]updates.PacmanUpdate, error)
	CheckAurOnline(ctx context.Context) ([]updates.AurUpdate, updates.AurCache, error)
	CheckAurOffline(ctx context.Context, cache updates.AurCache) ([]updates.AurUpdate, error)
	CheckDevelOnline(ctx context.Context) ([]updates.DevelUpdate, updates.DevelCache, error)
	CheckDevelOffline(ctx context.Context, cache updates.DevelCache) ([]updates.DevelUpdate, error)
}

// Options configures the watcher's schedule.
type Options struct {
	// Interval between scheduler ticks
	Interval time.Duration
	// OnlineCheckPeriod is how many ticks pass between online checks;
	// every OnlineCheckPeriod-th tick goes online, the rest run offline
	// against the caches
	OnlineCheckPeriod int
	// Timeout bounds every single per-source check
	Timeout time.Duration
}

// eventBufSize decouples the run loop from a briefly busy consumer.
const eventBufSize = 16

// Watcher periodically checks all sources for updates and streams the
// results. Per-source caches and histories are owned by the Run loop and
// mutated only there; consumers get immutable snapshots.
type Watcher struct {
	checker UpdateChecker
	opts    Options

	events  chan Event
	refresh chan struct{}

	mu     sync.RWMutex
	status *Status
}

// New creates a watcher. Zero option fields fall back to defaults
// (60s interval, online every 10th tick, 2m timeout).
func New(checker UpdateChecker, opts Options) *Watcher {
	if opts.Interval <= 0 {
		opts.Interval = 60 * time.Second
	}
	if opts.OnlineCheckPeriod <= 0 {
		opts.OnlineCheckPeriod = 10
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Minute
	}
	return &Watcher{
		checker: checker,
		opts:    opts,
		events:  make(chan Event, eventBufSize),
		refresh: make(chan struct{}, 1),
	}
}

// Events returns the stream of cycle results and source errors.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// ForceRefresh requests an immediate online pass. Never blocks; requests
// arriving before the previous one is serviced coalesce into one.
func (w *Watcher) ForceRefresh() {
	select {
	case w.refresh <- struct{}{}:
	default:
	}
}

// Status returns the latest published snapshot, false before the first
// completed cycle.
func (w *Watcher) Status() (Status, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.status == nil {
		return Status{}, false
	}
	return *w.status, true
}

// TotalDue returns the current total due count, skipping the given
// sources. 0 before the first completed cycle.
func (w *Watcher) TotalDue(exclude ...Source) int {
	status, ok := w.Status()
	if !ok {
		return 0
	}
	return status.TotalDue(exclude...)
}

// loopState is the per-source state owned exclusively by the Run loop.
// Nil cache pointers mean no successful online check has produced one
// yet; the matching offline check is skipped until one has.
type loopState struct {
	pacman History[updates.PacmanUpdate]
	aur    History[updates.AurUpdate]
	devel  History[updates.DevelUpdate]

	pacmanCache *updates.SourcesList
	aurCache    *updates.AurCache
	develCache  *updates.DevelCache

	lastOnline time.Time
}

// Run drives the check cycle until ctx is done. Every
// OnlineCheckPeriod-th tick all three sources are checked online
// concurrently; other ticks run offline against the caches. A force
// refresh resets the cycle so the next regular tick is online again and
// triggers an immediate out-of-cycle online pass.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	counter := 0
	state := &loopState{}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			online := counter == 0
			counter++
			if counter >= w.opts.OnlineCheckPeriod {
				counter = 0
			}
			if online {
				w.runOnline(ctx, state)
			} else {
				w.runOffline(ctx, state)
			}
		case <-w.refresh:
			counter = 0
			w.runOnline(ctx, state)
		}
	}
}

type pacmanResult struct {
	updates []updates.PacmanUpdate
	cache   updates.SourcesList
}

type aurResult struct {
	updates []updates.AurUpdate
	cache   updates.AurCache
}

type develResult struct {
	updates []updates.DevelUpdate
	cache   updates.DevelCache
}

// runOnline fans the three online checks out concurrently and joins them
// independently: one source failing or timing out never blocks or
// cancels the others. Results are folded into the loop state here, on
// the Run goroutine - the single mutation point.
func (w *Watcher) runOnline(ctx context.Context, state *loopState) {
	var (
		pacman    pacmanResult
		pacmanErr error
		aur       aurResult
		aurErr    error
		devel     develResult
		develErr  error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		pacman, pacmanErr = WithTimeout(ctx, w.opts.Timeout, func(ctx context.Context) (pacmanResult, error) {
			due, cache, err := w.checker.CheckPacmanOnline(ctx)
			return pacmanResult{updates: due, cache: cache}, err
		})
	}()
	go func() {
		defer wg.Done()
		aur, aurErr = WithTimeout(ctx, w.opts.Timeout, func(ctx context.Context) (aurResult, error) {
			due, cache, err := w.checker.CheckAurOnline(ctx)
			return aurResult{updates: due, cache: cache}, err
		})
	}()
	go func() {
		defer wg.Done()
		devel, develErr = WithTimeout(ctx, w.opts.Timeout, func(ctx context.Context) (develResult, error) {
			due, cache, err := w.checker.CheckDevelOnline(ctx)
			return develResult{updates: due, cache: cache}, err
		})
	}()
	wg.Wait()

	// A failed online check discards the source's cache entirely - no
	// fallback to an older snapshot.
	if pacmanErr != nil {
		state.pacmanCache = nil
		w.emitError(ctx, SourcePacman, pacmanErr)
	} else {
		state.pacmanCache = &pacman.cache
	}
	state.pacman = state.pacman.Apply(pacman.updates, pacmanErr)

	if aurErr != nil {
		state.aurCache = nil
		w.emitError(ctx, SourceAur, aurErr)
	} else {
		state.aurCache = &aur.cache
	}
	state.aur = state.aur.Apply(aur.updates, aurErr)

	if develErr != nil {
		state.develCache = nil
		w.emitError(ctx, SourceDevel, develErr)
	} else {
		state.develCache = &devel.cache
	}
	state.devel = state.devel.Apply(devel.updates, develErr)

	state.lastOnline = time.Now()
	w.publish(ctx, state)
}

// runOffline checks every source that has a cache, concurrently. A
// source without a cache yet simply skips the tick: not an error, not a
// retry, and a no-op on its history.
func (w *Watcher) runOffline(ctx context.Context, state *loopState) {
	var (
		pacmanUpd []updates.PacmanUpdate
		pacmanErr error
		aurUpd    []updates.AurUpdate
		aurErr    error
		develUpd  []updates.DevelUpdate
		develErr  error
	)

	var wg sync.WaitGroup
	if state.pacmanCache != nil {
		cache := *state.pacmanCache
		wg.Add(1)
		go func() {
			defer wg.Done()
			pacmanUpd, pacmanErr = WithTimeout(ctx, w.opts.Timeout, func(ctx context.Context) ([]updates.PacmanUpdate, error) {
				return w.checker.CheckPacmanOffline(ctx, cache)
			})
		}()
	}
	if state.aurCache != nil {
		cache := *state.aurCache
		wg.Add(1)
		go func() {
			defer wg.Done()
			aurUpd, aurErr = WithTimeout(ctx, w.opts.Timeout, func(ctx context.Context) ([]updates.AurUpdate, error) {
				return w.checker.CheckAurOffline(ctx, cache)
			})
		}()
	}
	if state.develCache != nil {
		cache := *state.develCache
		wg.Add(1)
		go func() {
			defer wg.Done()
			develUpd, develErr = WithTimeout(ctx, w.opts.Timeout, func(ctx context.Context) ([]updates.DevelUpdate, error) {
				return w.checker.CheckDevelOffline(ctx, cache)
			})
		}()
	}
	wg.Wait()

	if state.pacmanCache != nil {
		if pacmanErr != nil {
			w.emitError(ctx, SourcePacman, pacmanErr)
		}
		state.pacman = state.pacman.Apply(pacmanUpd, pacmanErr)
	}
	if state.aurCache != nil {
		if aurErr != nil {
			w.emitError(ctx, SourceAur, aurErr)
		}
		state.aur = state.aur.Apply(aurUpd, aurErr)
	}
	if state.develCache != nil {
		if develErr != nil {
			w.emitError(ctx, SourceDevel, develErr)
		}
		state.devel = state.devel.Apply(develUpd, develErr)
	}

	w.publish(ctx, state)
}

// publish snapshots the loop state for queries and emits the bundle.
func (w *Watcher) publish(ctx context.Context, state *loopState) {
	status := Status{
		Pacman:     state.pacman,
		Aur:        state.aur,
		Devel:      state.devel,
		LastOnline: state.lastOnline,
	}

	w.mu.Lock()
	w.status = &status
	w.mu.Unlock()

	w.emit(ctx, Event{Status: &status})
}

func (w *Watcher) emitError(ctx context.Context, source Source, err error) {
	logger.Warn("%s updates check failed: %v", source, err)
	w.emit(ctx, Event{Source: source, Err: fmt.Sprintf("%s updates check failed: %v", source, err)})
}

func (w *Watcher) emit(ctx context.Context, event Event) {
	select {
	case w.events <- event:
	case <-ctx.Done():
	}
}
