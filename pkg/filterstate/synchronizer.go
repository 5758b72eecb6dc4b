package filterstate

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/coursebook/pkg/filters"
	"github.com/vango-dev/coursebook/pkg/toast"
	"github.com/vango-dev/coursebook/pkg/urlparam"
)

const (
	// DefaultSyncDelay is the quiet period before the URL is rewritten.
	DefaultSyncDelay = 500 * time.Millisecond

	// DefaultSearchDelay is the quiet period before the search re-runs.
	DefaultSearchDelay = 300 * time.Millisecond
)

// Navigator replaces the view's URL query.
type Navigator interface {
	Navigate(params map[string]string, mode urlparam.URLMode)
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithNotifier sets the toast notifier used by Reset and Apply.
func WithNotifier(n toast.Notifier) Option {
	return func(s *Synchronizer) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithSyncDelay sets the URL write-back debounce delay.
func WithSyncDelay(d time.Duration) Option {
	return func(s *Synchronizer) {
		s.syncDelay = d
	}
}

// WithSearch registers a function run whenever the filters change.
// It receives no arguments; read the current state with Filters.
func WithSearch(fn func()) Option {
	return func(s *Synchronizer) {
		s.searchFn = fn
	}
}

// WithSearchDelay sets the search debounce delay.
func WithSearchDelay(d time.Duration) Option {
	return func(s *Synchronizer) {
		s.searchDelay = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Synchronizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSyncObserver registers a callback invoked after every URL write.
func WithSyncObserver(fn func(params map[string]string)) Option {
	return func(s *Synchronizer) {
		s.onSync = fn
	}
}

// Synchronizer owns one view's SearchFilters. It is safe for concurrent
// use; debounced work runs on timer goroutines.
type Synchronizer struct {
	nav      Navigator
	notifier toast.Notifier
	logger   *slog.Logger
	onSync   func(map[string]string)

	syncDelay   time.Duration
	searchDelay time.Duration
	searchFn    func()

	mu      sync.Mutex
	filters filters.SearchFilters
	watched filters.SearchFilters
	closed  bool

	syncer   *urlparam.Debouncer
	searcher *urlparam.Debouncer
}

// New creates a Synchronizer holding initial. nav may be nil, in which
// case URL writes are dropped.
func New(initial filters.SearchFilters, nav Navigator, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		nav:         nav,
		notifier:    toast.Discard,
		logger:      slog.Default().With("component", "filterstate"),
		syncDelay:   DefaultSyncDelay,
		searchDelay: DefaultSearchDelay,
		filters:     initial.Clone(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.watched = s.filters.Clone()
	s.syncer = urlparam.NewDebouncer(s.syncDelay, s.flush)
	if s.searchFn != nil {
		s.searcher = urlparam.NewDebouncer(s.searchDelay, s.searchFn)
	}
	return s
}

// FromLocation creates a Synchronizer from the query the view was opened
// with.
func FromLocation(query map[string]string, nav Navigator, opts ...Option) *Synchronizer {
	return New(filters.Decode(query), nav, opts...)
}

// Filters returns a copy of the current filters.
func (s *Synchronizer) Filters() filters.SearchFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.Clone()
}

// Query returns the encoded form of the current filters.
func (s *Synchronizer) Query() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filters.Encode(s.filters)
}

// AppliedCount returns the number of active filter conditions.
func (s *Synchronizer) AppliedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filters.CountApplied(s.filters)
}

// IsApplied reports whether any filter condition is active.
func (s *Synchronizer) IsApplied() bool {
	return s.AppliedCount() > 0
}

// ScheduleSync makes f the current state and (re)starts the URL write-back
// timer. The write encodes whatever state is current when the timer fires.
func (s *Synchronizer) ScheduleSync(f filters.SearchFilters) {
	next := f.Clone()
	if s.mutate(func(filters.SearchFilters) filters.SearchFilters { return next }) {
		s.syncer.Trigger()
	}
}

// Update merges p into the current filters and schedules a URL sync.
func (s *Synchronizer) Update(p filters.Patch) {
	if s.mutate(p.Apply) {
		s.syncer.Trigger()
	}
}

// Reset restores every filter to its default except the keyword, writes
// the URL immediately and shows an info toast.
func (s *Synchronizer) Reset() {
	var next filters.SearchFilters
	ok := s.mutate(func(cur filters.SearchFilters) filters.SearchFilters {
		next = filters.ResetKeepingKeyword(cur)
		return next
	})
	if !ok {
		return
	}

	s.syncer.Cancel()
	s.navigate(filters.Encode(next))
	toast.Info(s.notifier, "Filters reset", "All filters have been cleared")
}

// Apply schedules a URL sync through the usual debounce and reports
// matchCount in a success toast.
func (s *Synchronizer) Apply(matchCount int) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}

	s.syncer.Trigger()
	toast.Success(s.notifier, "Filters applied", fmt.Sprintf("Found %d matching courses", matchCount))
}

// Close cancels pending URL and search work. Later mutations are ignored.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.syncer.Stop()
	if s.searcher != nil {
		s.searcher.Stop()
	}
}

// mutate replaces the state with fn(current) and triggers the search when
// the value changed. It returns false once the synchronizer is closed.
func (s *Synchronizer) mutate(fn func(filters.SearchFilters) filters.SearchFilters) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.filters = fn(s.filters)

	changed := false
	if s.searcher != nil && !filters.Equal(s.filters, s.watched) {
		s.watched = s.filters.Clone()
		changed = true
	}
	s.mu.Unlock()

	if changed {
		s.searcher.Trigger()
	}
	return true
}

// flush writes the current state to the URL. It runs on the sync timer.
func (s *Synchronizer) flush() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	params := filters.Encode(s.filters)
	s.mu.Unlock()

	s.navigate(params)
}

func (s *Synchronizer) navigate(params map[string]string) {
	s.logger.Debug("url sync", "params", params)
	if s.nav != nil {
		s.nav.Navigate(params, urlparam.ModeReplace)
	}
	if s.onSync != nil {
		s.onSync(params)
	}
}
