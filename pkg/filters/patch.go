package filters

import (
	"fmt"
	"slices"

	"github.com/vango-dev/coursebook/pkg/catalog"
)

// Patch is a partial update of SearchFilters. Nil fields are left
// unchanged. A non-nil Regions or Categories replaces the whole set, so an
// empty non-nil slice clears it.
type Patch struct {
	Keyword        *string                `json:"keyword,omitempty"`
	Regions        []catalog.RegionCode   `json:"regions,omitempty"`
	Categories     []catalog.CategoryCode `json:"categories,omitempty"`
	MinPoints      *int                   `json:"minPoints,omitempty"`
	MaxPoints      *int                   `json:"maxPoints,omitempty"`
	HasOpenSlots   *bool                  `json:"hasOpenSlots,omitempty"`
	NewCourses     *bool                  `json:"newCourses,omitempty"`
	FavouritesOnly *bool                  `json:"favouritesOnly,omitempty"`
	SortBy         *SortBy                `json:"sortBy,omitempty"`

	// PageNum moves to another result page. It is applied after the
	// filter fields, so a patch may change filters and page together.
	PageNum *int `json:"pageNum,omitempty"`
}

// Ptr returns a pointer to v, for building patches.
func Ptr[T any](v T) *T {
	return &v
}

// Apply merges p into f field by field and returns the result. Changing
// any filter field sends the view back to the first page.
func (p Patch) Apply(f SearchFilters) SearchFilters {
	out := f.Clone()
	changed := false

	if p.Keyword != nil {
		out.Keyword = *p.Keyword
		changed = true
	}
	if p.Regions != nil {
		out.Regions = cloneSet(p.Regions)
		changed = true
	}
	if p.Categories != nil {
		out.Categories = cloneSet(p.Categories)
		changed = true
	}
	if p.MinPoints != nil {
		out.MinPoints = *p.MinPoints
		changed = true
	}
	if p.MaxPoints != nil {
		out.MaxPoints = *p.MaxPoints
		changed = true
	}
	if p.HasOpenSlots != nil {
		out.HasOpenSlots = *p.HasOpenSlots
		changed = true
	}
	if p.NewCourses != nil {
		out.NewCourses = *p.NewCourses
		changed = true
	}
	if p.FavouritesOnly != nil {
		out.FavouritesOnly = *p.FavouritesOnly
		changed = true
	}
	if p.SortBy != nil {
		out.SortBy = *p.SortBy
		changed = true
	}

	if changed {
		out.PageNum = FirstPage
	}
	if p.PageNum != nil {
		out.PageNum = min(max(*p.PageNum, FirstPage), MaxPage)
	}
	return out
}

// IsEmpty reports whether p changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Keyword == nil && p.Regions == nil && p.Categories == nil &&
		p.MinPoints == nil && p.MaxPoints == nil && p.HasOpenSlots == nil &&
		p.NewCourses == nil && p.FavouritesOnly == nil && p.SortBy == nil &&
		p.PageNum == nil
}

// Validate reports the first region, category or sort key in p that is
// not part of the catalog, or a page outside FirstPage..MaxPage. Unlike
// Decode, which drops unknown codes from a URL, a patch comes from a
// client that should know better.
func (p Patch) Validate() error {
	for _, r := range p.Regions {
		if !r.Valid() {
			return fmt.Errorf("unknown region %q", r)
		}
	}
	for _, c := range p.Categories {
		if !c.Valid() {
			return fmt.Errorf("unknown category %q", c)
		}
	}
	if p.SortBy != nil && !p.SortBy.Valid() {
		return fmt.Errorf("unknown sort key %q", *p.SortBy)
	}
	if p.PageNum != nil && (*p.PageNum < FirstPage || *p.PageNum > MaxPage) {
		return fmt.Errorf("page %d out of range %d..%d", *p.PageNum, FirstPage, MaxPage)
	}
	return nil
}

func cloneSet[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}
