package filters

import (
	"slices"

	"github.com/vango-dev/coursebook/pkg/catalog"
)

// SortBy selects the ordering of search results.
type SortBy string

const (
	SortRelevance  SortBy = "relevance"
	SortPointsAsc  SortBy = "points-asc"
	SortPointsDesc SortBy = "points-desc"
	SortNewest     SortBy = "newest"
	SortRating     SortBy = "rating"
)

var sortOptions = []SortBy{SortRelevance, SortPointsAsc, SortPointsDesc, SortNewest, SortRating}

// SortOptions returns the known sort keys in display order.
func SortOptions() []SortBy {
	return slices.Clone(sortOptions)
}

// Valid reports whether s is one of the known sort keys.
func (s SortBy) Valid() bool {
	return slices.Contains(sortOptions, s)
}

// Defaults and fixed values.
const (
	DefaultMinPoints = 0
	DefaultMaxPoints = 100
	DefaultSortBy    = SortRelevance
	SortOrder        = "desc"
	FirstPage        = 1
	PageSize         = 9

	// MaxPage bounds page numbers accepted from clients.
	MaxPage = 10000
)

// SearchFilters is the complete set of course search criteria.
//
// Regions and Categories are sets: order carries no meaning and decoding
// drops duplicates. MinPoints <= MaxPoints is not enforced; an inverted
// range matches nothing.
type SearchFilters struct {
	Keyword        string                 `json:"keyword"`
	Regions        []catalog.RegionCode   `json:"regions"`
	Categories     []catalog.CategoryCode `json:"categories"`
	MinPoints      int                    `json:"minPoints"`
	MaxPoints      int                    `json:"maxPoints"`
	HasOpenSlots   bool                   `json:"hasOpenSlots"`
	NewCourses     bool                   `json:"newCourses"`
	FavouritesOnly bool                   `json:"favouritesOnly"`
	SortBy         SortBy                 `json:"sortBy"`
	SortOrder      string                 `json:"sortOrder"`
	PageNum        int                    `json:"pageNum"`
	PageSize       int                    `json:"pageSize"`
}

// Defaults returns the filters of a fresh search view.
func Defaults() SearchFilters {
	return SearchFilters{
		MinPoints: DefaultMinPoints,
		MaxPoints: DefaultMaxPoints,
		SortBy:    DefaultSortBy,
		SortOrder: SortOrder,
		PageNum:   FirstPage,
		PageSize:  PageSize,
	}
}

// Clone returns a deep copy of f.
func (f SearchFilters) Clone() SearchFilters {
	f.Regions = slices.Clone(f.Regions)
	f.Categories = slices.Clone(f.Categories)
	return f
}

// ResetKeepingKeyword returns the defaults with f's keyword preserved.
func ResetKeepingKeyword(f SearchFilters) SearchFilters {
	d := Defaults()
	d.Keyword = f.Keyword
	return d
}

// CountApplied returns how many filter conditions differ from their
// defaults. The keyword is a search term, not a filter, and never counts.
// Each condition counts once, so narrowing both point bounds counts two.
func CountApplied(f SearchFilters) int {
	n := 0
	for _, applied := range []bool{
		len(f.Regions) > 0,
		len(f.Categories) > 0,
		f.MinPoints > DefaultMinPoints,
		f.MaxPoints < DefaultMaxPoints,
		f.HasOpenSlots,
		f.NewCourses,
		f.FavouritesOnly,
		f.SortBy != DefaultSortBy,
	} {
		if applied {
			n++
		}
	}
	return n
}

// IsApplied reports whether any filter condition is active.
func IsApplied(f SearchFilters) bool {
	return CountApplied(f) > 0
}

// Equal reports whether a and b describe the same search. Regions and
// Categories compare as sets; nil and empty are equal.
func Equal(a, b SearchFilters) bool {
	return a.Keyword == b.Keyword &&
		a.MinPoints == b.MinPoints &&
		a.MaxPoints == b.MaxPoints &&
		a.HasOpenSlots == b.HasOpenSlots &&
		a.NewCourses == b.NewCourses &&
		a.FavouritesOnly == b.FavouritesOnly &&
		a.SortBy == b.SortBy &&
		a.SortOrder == b.SortOrder &&
		a.PageNum == b.PageNum &&
		a.PageSize == b.PageSize &&
		sameSet(a.Regions, b.Regions) &&
		sameSet(a.Categories, b.Categories)
}

func sameSet[T comparable](a, b []T) bool {
	if slices.Equal(a, b) {
		return true
	}
	sa, sb := setOf(a), setOf(b)
	if len(sa) != len(sb) {
		return false
	}
	for k := range sa {
		if _, ok := sb[k]; !ok {
			return false
		}
	}
	return true
}

func setOf[T comparable](items []T) map[T]struct{} {
	s := make(map[T]struct{}, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}
