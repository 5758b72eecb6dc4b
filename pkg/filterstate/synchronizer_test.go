package filterstate

import (
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vango-dev/coursebook/pkg/catalog"
	"github.com/vango-dev/coursebook/pkg/filters"
	"github.com/vango-dev/coursebook/pkg/toast"
	"github.com/vango-dev/coursebook/pkg/urlparam"
)

const testDelay = 40 * time.Millisecond

// settle waits long enough for any pending debounced work to run.
func settle() {
	time.Sleep(4 * testDelay)
}

type navCall struct {
	params map[string]string
	mode   urlparam.URLMode
}

type recordingNav struct {
	mu    sync.Mutex
	calls []navCall
}

func (r *recordingNav) Navigate(params map[string]string, mode urlparam.URLMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, navCall{params: params, mode: mode})
}

func (r *recordingNav) snapshot() []navCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]navCall(nil), r.calls...)
}

type recordingNotifier struct {
	mu     sync.Mutex
	toasts []toast.Toast
}

func (r *recordingNotifier) Notify(t toast.Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

func (r *recordingNotifier) snapshot() []toast.Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]toast.Toast(nil), r.toasts...)
}

func newTestSync(t *testing.T, initial filters.SearchFilters, opts ...Option) (*Synchronizer, *recordingNav, *recordingNotifier) {
	t.Helper()
	nav := &recordingNav{}
	notifier := &recordingNotifier{}
	opts = append([]Option{WithSyncDelay(testDelay), WithNotifier(notifier)}, opts...)
	s := New(initial, nav, opts...)
	t.Cleanup(s.Close)
	return s, nav, notifier
}

func TestFromLocation(t *testing.T) {
	s := FromLocation(map[string]string{"keyword": "yoga", "regions": "TPE,KHH", "minPoints": "20"}, nil)
	defer s.Close()

	f := s.Filters()
	if f.Keyword != "yoga" || f.MinPoints != 20 || len(f.Regions) != 2 {
		t.Errorf("Filters() = %+v", f)
	}
	if s.AppliedCount() != 2 {
		t.Errorf("AppliedCount() = %d, want 2", s.AppliedCount())
	}
	if !s.IsApplied() {
		t.Error("IsApplied() = false")
	}
}

func TestScheduleSyncDebounce(t *testing.T) {
	s, nav, _ := newTestSync(t, filters.Defaults())

	for _, maxPoints := range []int{80, 60, 50} {
		f := filters.Defaults()
		f.MaxPoints = maxPoints
		s.ScheduleSync(f)
		time.Sleep(testDelay / 8)
	}

	if got := nav.snapshot(); len(got) != 0 {
		t.Fatalf("navigated before the delay elapsed: %v", got)
	}

	settle()

	calls := nav.snapshot()
	if len(calls) != 1 {
		t.Fatalf("got %d navigations, want 1", len(calls))
	}
	want := map[string]string{"maxPoints": "50"}
	if !reflect.DeepEqual(calls[0].params, want) {
		t.Errorf("params = %v, want %v", calls[0].params, want)
	}
	if calls[0].mode != urlparam.ModeReplace {
		t.Errorf("mode = %v, want replace", calls[0].mode)
	}
}

func TestSyncReadsLiveState(t *testing.T) {
	s, nav, _ := newTestSync(t, filters.Defaults())

	s.Update(filters.Patch{NewCourses: filters.Ptr(true)})
	// A mutation that lands before the timer fires is picked up by the
	// already scheduled write.
	s.mu.Lock()
	s.filters.Keyword = "late"
	s.mu.Unlock()

	settle()

	calls := nav.snapshot()
	if len(calls) != 1 {
		t.Fatalf("got %d navigations, want 1", len(calls))
	}
	want := map[string]string{"keyword": "late", "newCourses": "true"}
	if !reflect.DeepEqual(calls[0].params, want) {
		t.Errorf("params = %v, want %v", calls[0].params, want)
	}
}

func TestUpdate(t *testing.T) {
	initial := filters.Defaults()
	initial.PageNum = 4
	s, nav, _ := newTestSync(t, initial)

	s.Update(filters.Patch{Regions: []catalog.RegionCode{"TPE"}})
	s.Update(filters.Patch{Regions: []catalog.RegionCode{"KHH", "TNN"}, MinPoints: filters.Ptr(10)})

	f := s.Filters()
	if !reflect.DeepEqual(f.Regions, []catalog.RegionCode{"KHH", "TNN"}) {
		t.Errorf("Regions = %v, want whole-set replacement", f.Regions)
	}
	if f.PageNum != 1 {
		t.Errorf("PageNum = %d, want reset to 1", f.PageNum)
	}

	settle()

	calls := nav.snapshot()
	if len(calls) != 1 {
		t.Fatalf("got %d navigations, want 1", len(calls))
	}
	want := map[string]string{"regions": "KHH,TNN", "minPoints": "10"}
	if !reflect.DeepEqual(calls[0].params, want) {
		t.Errorf("params = %v, want %v", calls[0].params, want)
	}
}

func TestReset(t *testing.T) {
	t.Run("KeepsKeyword", func(t *testing.T) {
		initial := filters.Defaults()
		initial.Keyword = "pottery"
		initial.Regions = []catalog.RegionCode{"TPE"}
		initial.HasOpenSlots = true
		initial.SortBy = filters.SortRating
		s, nav, notifier := newTestSync(t, initial)

		s.Update(filters.Patch{MaxPoints: filters.Ptr(40)})
		s.Reset()

		// Reset writes synchronously.
		calls := nav.snapshot()
		if len(calls) != 1 {
			t.Fatalf("got %d navigations, want 1", len(calls))
		}
		want := map[string]string{"keyword": "pottery"}
		if !reflect.DeepEqual(calls[0].params, want) {
			t.Errorf("params = %v, want %v", calls[0].params, want)
		}

		wantFilters := filters.Defaults()
		wantFilters.Keyword = "pottery"
		if got := s.Filters(); !reflect.DeepEqual(got, wantFilters) {
			t.Errorf("Filters() = %+v, want %+v", got, wantFilters)
		}
		if s.AppliedCount() != 0 {
			t.Errorf("AppliedCount() = %d", s.AppliedCount())
		}

		toasts := notifier.snapshot()
		if len(toasts) != 1 || toasts[0].Kind != toast.KindInfo {
			t.Errorf("toasts = %+v", toasts)
		}

		// The pending debounced write from Update was cancelled.
		settle()
		if got := len(nav.snapshot()); got != 1 {
			t.Errorf("got %d navigations after settle, want 1", got)
		}
	})

	t.Run("EmptyKeyword", func(t *testing.T) {
		initial := filters.Defaults()
		initial.FavouritesOnly = true
		s, nav, _ := newTestSync(t, initial)

		s.Reset()

		calls := nav.snapshot()
		if len(calls) != 1 || len(calls[0].params) != 0 {
			t.Errorf("calls = %+v, want one empty query", calls)
		}
	})
}

func TestApply(t *testing.T) {
	s, nav, notifier := newTestSync(t, filters.Defaults())

	s.Update(filters.Patch{SortBy: filters.Ptr(filters.SortNewest)})
	s.Apply(7)

	toasts := notifier.snapshot()
	if len(toasts) != 1 {
		t.Fatalf("got %d toasts, want 1", len(toasts))
	}
	if toasts[0].Kind != toast.KindSuccess || toasts[0].Detail != "Found 7 matching courses" {
		t.Errorf("toast = %+v", toasts[0])
	}

	// Apply goes through the debounce: still a single write.
	if len(nav.snapshot()) != 0 {
		t.Error("Apply should not write synchronously")
	}
	settle()
	calls := nav.snapshot()
	if len(calls) != 1 || calls[0].params["sortBy"] != "newest" {
		t.Errorf("calls = %+v", calls)
	}
}

func TestSearchTrigger(t *testing.T) {
	var runs atomic.Int32
	var s *Synchronizer
	var lastSeen atomic.Value

	s, _, _ = newTestSync(t, filters.Defaults(),
		WithSearchDelay(testDelay),
		WithSearch(func() {
			runs.Add(1)
			lastSeen.Store(s.Filters().Keyword)
		}),
	)

	s.Update(filters.Patch{Keyword: filters.Ptr("y")})
	s.Update(filters.Patch{Keyword: filters.Ptr("yo")})
	s.Update(filters.Patch{Keyword: filters.Ptr("yoga")})
	settle()

	if got := runs.Load(); got != 1 {
		t.Fatalf("search ran %d times, want 1", got)
	}
	if got := lastSeen.Load(); got != "yoga" {
		t.Errorf("search saw keyword %v, want yoga", got)
	}

	// Scheduling an equal value does not re-run the search.
	s.ScheduleSync(s.Filters())
	s.Update(filters.Patch{Regions: []catalog.RegionCode{}})
	settle()
	if got := runs.Load(); got != 1 {
		t.Errorf("search ran %d times after no-op updates, want 1", got)
	}

	// Paging is a change.
	s.Update(filters.Patch{PageNum: filters.Ptr(2)})
	settle()
	if got := runs.Load(); got != 2 {
		t.Errorf("search ran %d times after paging, want 2", got)
	}
}

func TestSyncObserver(t *testing.T) {
	var observed atomic.Int32
	s, _, _ := newTestSync(t, filters.Defaults(), WithSyncObserver(func(map[string]string) {
		observed.Add(1)
	}))

	s.Reset()
	s.Update(filters.Patch{NewCourses: filters.Ptr(true)})
	settle()

	if got := observed.Load(); got != 2 {
		t.Errorf("observer called %d times, want 2", got)
	}
}

func TestClose(t *testing.T) {
	var searches atomic.Int32
	s, nav, notifier := newTestSync(t, filters.Defaults(),
		WithSearchDelay(testDelay),
		WithSearch(func() { searches.Add(1) }),
	)

	s.Update(filters.Patch{HasOpenSlots: filters.Ptr(true)})
	s.Close()
	settle()

	if len(nav.snapshot()) != 0 {
		t.Error("pending sync ran after Close")
	}
	if searches.Load() != 0 {
		t.Error("pending search ran after Close")
	}

	before := s.Filters()
	s.Update(filters.Patch{Keyword: filters.Ptr("ignored")})
	s.Reset()
	s.Apply(3)
	settle()

	if !reflect.DeepEqual(s.Filters(), before) {
		t.Error("state changed after Close")
	}
	if len(nav.snapshot()) != 0 || len(notifier.snapshot()) != 0 {
		t.Error("side effects after Close")
	}

	s.Close()
}

func TestNilNavigator(t *testing.T) {
	s := New(filters.Defaults(), nil, WithSyncDelay(0))
	defer s.Close()

	s.Update(filters.Patch{Keyword: filters.Ptr("x")})
	s.Reset()
	if s.Query()["keyword"] != "x" {
		t.Errorf("Query() = %v", s.Query())
	}
}

func TestFiltersReturnsCopy(t *testing.T) {
	initial := filters.Defaults()
	initial.Regions = []catalog.RegionCode{"TPE"}
	s, _, _ := newTestSync(t, initial)

	f := s.Filters()
	f.Regions[0] = "KHH"
	if s.Filters().Regions[0] != "TPE" {
		t.Error("Filters() exposed internal state")
	}

	initial.Regions[0] = "PEN"
	if s.Filters().Regions[0] != "TPE" {
		t.Error("New did not copy the initial filters")
	}
}
