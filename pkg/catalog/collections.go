package catalog

import (
	"cmp"
	"slices"
)

// HighlightSize is the number of courses in each highlight collection.
const HighlightSize = 6

// Highlights groups the derived collections shown on the home page.
type Highlights struct {
	Popular     []Course `json:"popular"`
	Latest      []Course `json:"latest"`
	Recommended []Course `json:"recommended"`
}

// BuildHighlights computes all highlight collections from courses.
func BuildHighlights(courses []Course) Highlights {
	return Highlights{
		Popular:     Popular(courses, HighlightSize),
		Latest:      Latest(courses, HighlightSize),
		Recommended: Recommended(courses, HighlightSize),
	}
}

// Popular returns the top n courses by join count, highest first.
func Popular(courses []Course, n int) []Course {
	return topN(courses, n, func(a, b Course) int {
		return cmp.Compare(b.JoinCount, a.JoinCount)
	})
}

// Latest returns the top n courses by creation date, newest first.
// When either course of a pair has no creation date the pair is ordered
// by ID, highest first.
//
// That pairwise rule is not transitive when dated and undated courses are
// mixed (dated A newer than dated B, but B's ID above undated C above A),
// so the order of such a mix can depend on the input order. Catalogs that
// are entirely dated or entirely undated always sort the same way.
func Latest(courses []Course, n int) []Course {
	return topN(courses, n, func(a, b Course) int {
		if a.CreatedAt != nil && b.CreatedAt != nil {
			return b.CreatedAt.Compare(*a.CreatedAt)
		}
		return cmp.Compare(b.ID, a.ID)
	})
}

// Recommended returns the top n courses by points required, highest first.
// There is no personalization; points act as a proxy for course value.
func Recommended(courses []Course, n int) []Course {
	return topN(courses, n, func(a, b Course) int {
		return cmp.Compare(b.PointsRequired, a.PointsRequired)
	})
}

// topN stable-sorts a copy of courses and keeps the first n.
func topN(courses []Course, n int, compare func(a, b Course) int) []Course {
	if n <= 0 || len(courses) == 0 {
		return []Course{}
	}
	sorted := slices.Clone(courses)
	slices.SortStableFunc(sorted, compare)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
