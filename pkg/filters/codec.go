package filters

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/vango-dev/coursebook/pkg/catalog"
)

// Query keys of the flat URL form.
const (
	KeyKeyword        = "keyword"
	KeyRegions        = "regions"
	KeyCategories     = "categories"
	KeyMinPoints      = "minPoints"
	KeyMaxPoints      = "maxPoints"
	KeyHasOpenSlots   = "hasOpenSlots"
	KeyNewCourses     = "newCourses"
	KeyFavouritesOnly = "favouritesOnly"
	KeySortBy         = "sortBy"
)

// Decode builds filters from a parsed query, starting from Defaults.
//
// Region and category lists are comma separated; tokens outside the closed
// code sets are dropped. Point bounds that do not parse as integers keep
// their defaults. Flags are set only by the exact value "true". SortOrder,
// PageNum and PageSize are never read from the query.
func Decode(query map[string]string) SearchFilters {
	f := Defaults()

	if v := query[KeyKeyword]; v != "" {
		f.Keyword = v
	}
	if v, ok := query[KeyRegions]; ok {
		f.Regions = splitCodes(v, catalog.RegionCode.Valid)
	}
	if v, ok := query[KeyCategories]; ok {
		f.Categories = splitCodes(v, catalog.CategoryCode.Valid)
	}
	if v, ok := query[KeyMinPoints]; ok {
		f.MinPoints = parseInt(v, DefaultMinPoints)
	}
	if v, ok := query[KeyMaxPoints]; ok {
		f.MaxPoints = parseInt(v, DefaultMaxPoints)
	}
	f.HasOpenSlots = query[KeyHasOpenSlots] == "true"
	f.NewCourses = query[KeyNewCourses] == "true"
	f.FavouritesOnly = query[KeyFavouritesOnly] == "true"
	if v := query[KeySortBy]; v != "" {
		f.SortBy = SortBy(v)
	}

	return f
}

// DecodeValues is Decode over url.Values, using the first value of each key.
func DecodeValues(values url.Values) SearchFilters {
	flat := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			flat[k] = v[0]
		}
	}
	return Decode(flat)
}

// Encode returns the sparse query form of f: a key is present only when
// its field differs from the default. Pagination and sort order are never
// encoded.
func Encode(f SearchFilters) map[string]string {
	q := make(map[string]string)

	if f.Keyword != "" {
		q[KeyKeyword] = f.Keyword
	}
	if len(f.Regions) > 0 {
		q[KeyRegions] = joinCodes(f.Regions)
	}
	if len(f.Categories) > 0 {
		q[KeyCategories] = joinCodes(f.Categories)
	}
	if f.MinPoints > DefaultMinPoints {
		q[KeyMinPoints] = strconv.Itoa(f.MinPoints)
	}
	if f.MaxPoints < DefaultMaxPoints {
		q[KeyMaxPoints] = strconv.Itoa(f.MaxPoints)
	}
	if f.HasOpenSlots {
		q[KeyHasOpenSlots] = "true"
	}
	if f.NewCourses {
		q[KeyNewCourses] = "true"
	}
	if f.FavouritesOnly {
		q[KeyFavouritesOnly] = "true"
	}
	if f.SortBy != DefaultSortBy && f.SortBy != "" {
		q[KeySortBy] = string(f.SortBy)
	}

	return q
}

// EncodeValues is Encode as url.Values.
func EncodeValues(f SearchFilters) url.Values {
	values := make(url.Values)
	for k, v := range Encode(f) {
		values.Set(k, v)
	}
	return values
}

// QueryString returns the encoded query, sorted by key, without a leading "?".
func QueryString(f SearchFilters) string {
	return EncodeValues(f).Encode()
}

// parseInt falls back to def when s is not an integer.
func parseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func splitCodes[T ~string](s string, valid func(T) bool) []T {
	var out []T
	seen := make(map[T]bool)
	for _, token := range strings.Split(s, ",") {
		code := T(token)
		if !valid(code) || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

func joinCodes[T ~string](codes []T) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}
