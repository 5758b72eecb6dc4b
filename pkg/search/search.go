// Package search runs SearchFilters against the course catalog.
package search

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/vango-dev/coursebook/pkg/catalog"
	"github.com/vango-dev/coursebook/pkg/filters"
)

// DefaultNewCourseWindow is how long a course counts as new.
const DefaultNewCourseWindow = 30 * 24 * time.Hour

// Request is a single search.
type Request struct {
	Filters filters.SearchFilters

	// Favourites holds the IDs of the user's favourite courses; it is
	// consulted only when Filters.FavouritesOnly is set.
	Favourites map[int64]bool
}

// Result is one page of matching courses.
type Result struct {
	Items      []catalog.Course `json:"items"`
	Total      int              `json:"total"`
	PageNum    int              `json:"pageNum"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

// Engine searches an in-memory catalog.
type Engine struct {
	store     *catalog.Store
	newWindow time.Duration
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithNewCourseWindow sets the age limit for the new-courses filter.
func WithNewCourseWindow(d time.Duration) Option {
	return func(e *Engine) {
		e.newWindow = d
	}
}

// WithClock sets the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine over store.
func NewEngine(store *catalog.Store, opts ...Option) *Engine {
	e := &Engine{
		store:     store,
		newWindow: DefaultNewCourseWindow,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search returns the requested page of courses matching req.Filters.
func (e *Engine) Search(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	f := req.Filters
	m := newMatcher(f, req.Favourites, e.now(), e.newWindow)

	var matched []catalog.Course
	for _, c := range e.store.All() {
		if m.match(c) {
			matched = append(matched, c)
		}
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	sortCourses(matched, f.SortBy, m.keyword)
	return paginate(matched, f.PageNum, f.PageSize), nil
}

// Count returns the number of matches without paginating.
func (e *Engine) Count(ctx context.Context, req Request) (int, error) {
	res, err := e.Search(ctx, req)
	if err != nil {
		return 0, err
	}
	return res.Total, nil
}

type matcher struct {
	f          filters.SearchFilters
	keyword    string
	regions    map[catalog.RegionCode]bool
	categories map[catalog.CategoryCode]bool
	favourites map[int64]bool
	now        time.Time
	window     time.Duration
}

func newMatcher(f filters.SearchFilters, favourites map[int64]bool, now time.Time, window time.Duration) *matcher {
	m := &matcher{
		f:          f,
		keyword:    strings.ToLower(strings.TrimSpace(f.Keyword)),
		favourites: favourites,
		now:        now,
		window:     window,
	}
	if len(f.Regions) > 0 {
		m.regions = make(map[catalog.RegionCode]bool, len(f.Regions))
		for _, r := range f.Regions {
			m.regions[r] = true
		}
	}
	if len(f.Categories) > 0 {
		m.categories = make(map[catalog.CategoryCode]bool, len(f.Categories))
		for _, c := range f.Categories {
			m.categories[c] = true
		}
	}
	return m
}

func (m *matcher) match(c catalog.Course) bool {
	if m.keyword != "" && !containsKeyword(c, m.keyword) {
		return false
	}
	if m.regions != nil && !m.regions[c.Region] {
		return false
	}
	// Selecting a main category matches all of its sub-categories.
	if m.categories != nil && !m.categories[c.Category] && !m.categories[c.Category.Main()] {
		return false
	}
	if c.PointsRequired < m.f.MinPoints || c.PointsRequired > m.f.MaxPoints {
		return false
	}
	if m.f.HasOpenSlots && !c.HasOpenSlots() {
		return false
	}
	if m.f.NewCourses && !c.CreatedWithin(m.window, m.now) {
		return false
	}
	if m.f.FavouritesOnly && !m.favourites[c.ID] {
		return false
	}
	return true
}

func containsKeyword(c catalog.Course, keyword string) bool {
	return strings.Contains(strings.ToLower(c.Title), keyword) ||
		strings.Contains(strings.ToLower(c.Description), keyword) ||
		strings.Contains(strings.ToLower(c.Merchant), keyword)
}

// sortCourses orders courses in place. Unknown sort keys fall back to
// relevance.
func sortCourses(courses []catalog.Course, by filters.SortBy, keyword string) {
	var compare func(a, b catalog.Course) int

	switch by {
	case filters.SortPointsAsc:
		compare = func(a, b catalog.Course) int {
			return cmp.Compare(a.PointsRequired, b.PointsRequired)
		}
	case filters.SortPointsDesc:
		compare = func(a, b catalog.Course) int {
			return cmp.Compare(b.PointsRequired, a.PointsRequired)
		}
	case filters.SortNewest:
		compare = compareNewest
	case filters.SortRating:
		compare = func(a, b catalog.Course) int {
			return cmp.Compare(b.Rating, a.Rating)
		}
	default:
		compare = func(a, b catalog.Course) int {
			if keyword != "" {
				at := strings.Contains(strings.ToLower(a.Title), keyword)
				bt := strings.Contains(strings.ToLower(b.Title), keyword)
				if at != bt {
					if at {
						return -1
					}
					return 1
				}
			}
			return cmp.Compare(b.JoinCount, a.JoinCount)
		}
	}

	slices.SortStableFunc(courses, compare)
}

// compareNewest orders by creation date, newest first; undated courses
// sort last.
func compareNewest(a, b catalog.Course) int {
	switch {
	case a.CreatedAt == nil && b.CreatedAt == nil:
		return 0
	case a.CreatedAt == nil:
		return 1
	case b.CreatedAt == nil:
		return -1
	}
	return b.CreatedAt.Compare(*a.CreatedAt)
}

func paginate(courses []catalog.Course, pageNum, pageSize int) Result {
	if pageSize <= 0 {
		pageSize = filters.PageSize
	}
	if pageNum < filters.FirstPage {
		pageNum = filters.FirstPage
	}

	total := len(courses)
	res := Result{
		Items:      []catalog.Course{},
		Total:      total,
		PageNum:    pageNum,
		PageSize:   pageSize,
		TotalPages: total / pageSize,
	}
	if total%pageSize != 0 {
		res.TotalPages++
	}

	// Compare page indexes before multiplying so huge page numbers
	// cannot overflow into a negative offset.
	if pageNum > res.TotalPages {
		return res
	}
	start := (pageNum - 1) * pageSize
	end := min(start+pageSize, total)
	res.Items = courses[start:end]
	return res
}
