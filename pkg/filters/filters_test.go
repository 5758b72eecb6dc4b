package filters

import (
	"reflect"
	"testing"

	"github.com/vango-dev/coursebook/pkg/catalog"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d.MinPoints != 0 || d.MaxPoints != 100 {
		t.Errorf("points = %d..%d, want 0..100", d.MinPoints, d.MaxPoints)
	}
	if d.SortBy != SortRelevance || d.SortOrder != "desc" {
		t.Errorf("sort = %s %s", d.SortBy, d.SortOrder)
	}
	if d.PageNum != 1 || d.PageSize != 9 {
		t.Errorf("page = %d/%d", d.PageNum, d.PageSize)
	}
}

func TestDecodeEmptyYieldsDefaults(t *testing.T) {
	got := Decode(map[string]string{})
	if !reflect.DeepEqual(got, Defaults()) {
		t.Errorf("Decode({}) = %+v, want %+v", got, Defaults())
	}
	if got.Keyword != "" {
		t.Errorf("Keyword = %q", got.Keyword)
	}
}

func TestDecodeScenario(t *testing.T) {
	got := Decode(map[string]string{
		"keyword":   "yoga",
		"regions":   "TPE,KHH",
		"minPoints": "20",
	})

	want := Defaults()
	want.Keyword = "yoga"
	want.Regions = []catalog.RegionCode{"TPE", "KHH"}
	want.MinPoints = 20

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode = %+v, want %+v", got, want)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		query map[string]string
		check func(t *testing.T, f SearchFilters)
	}{
		{
			name:  "UnknownRegionTokensDropped",
			query: map[string]string{"regions": "TPE,XXX,,khh,KHH"},
			check: func(t *testing.T, f SearchFilters) {
				want := []catalog.RegionCode{"TPE", "KHH"}
				if !reflect.DeepEqual(f.Regions, want) {
					t.Errorf("Regions = %v, want %v", f.Regions, want)
				}
			},
		},
		{
			name:  "DuplicateRegionsCollapse",
			query: map[string]string{"regions": "TPE,TPE"},
			check: func(t *testing.T, f SearchFilters) {
				if len(f.Regions) != 1 {
					t.Errorf("Regions = %v", f.Regions)
				}
			},
		},
		{
			name:  "MainAndSubCategories",
			query: map[string]string{"categories": "MUSIC,SPORTS_YOGA,KNITTING"},
			check: func(t *testing.T, f SearchFilters) {
				want := []catalog.CategoryCode{"MUSIC", "SPORTS_YOGA"}
				if !reflect.DeepEqual(f.Categories, want) {
					t.Errorf("Categories = %v, want %v", f.Categories, want)
				}
			},
		},
		{
			name:  "AllTokensInvalid",
			query: map[string]string{"regions": "XXX", "categories": ""},
			check: func(t *testing.T, f SearchFilters) {
				if f.Regions != nil || f.Categories != nil {
					t.Errorf("Regions = %v, Categories = %v", f.Regions, f.Categories)
				}
			},
		},
		{
			name:  "MalformedNumbersFallBack",
			query: map[string]string{"minPoints": "abc", "maxPoints": "12.5"},
			check: func(t *testing.T, f SearchFilters) {
				if f.MinPoints != 0 || f.MaxPoints != 100 {
					t.Errorf("points = %d..%d, want defaults", f.MinPoints, f.MaxPoints)
				}
			},
		},
		{
			name:  "NumbersNotClamped",
			query: map[string]string{"minPoints": "80", "maxPoints": "500"},
			check: func(t *testing.T, f SearchFilters) {
				if f.MinPoints != 80 || f.MaxPoints != 500 {
					t.Errorf("points = %d..%d", f.MinPoints, f.MaxPoints)
				}
			},
		},
		{
			name:  "FlagsRequireExactTrue",
			query: map[string]string{"hasOpenSlots": "true", "newCourses": "1", "favouritesOnly": "TRUE"},
			check: func(t *testing.T, f SearchFilters) {
				if !f.HasOpenSlots || f.NewCourses || f.FavouritesOnly {
					t.Errorf("flags = %v %v %v", f.HasOpenSlots, f.NewCourses, f.FavouritesOnly)
				}
			},
		},
		{
			name:  "SortByVerbatim",
			query: map[string]string{"sortBy": "points-asc"},
			check: func(t *testing.T, f SearchFilters) {
				if f.SortBy != SortPointsAsc {
					t.Errorf("SortBy = %q", f.SortBy)
				}
			},
		},
		{
			name:  "PaginationNeverRead",
			query: map[string]string{"pageNum": "4", "pageSize": "50", "sortOrder": "asc"},
			check: func(t *testing.T, f SearchFilters) {
				if f.PageNum != 1 || f.PageSize != 9 || f.SortOrder != "desc" {
					t.Errorf("pagination = %d/%d %s", f.PageNum, f.PageSize, f.SortOrder)
				}
			},
		},
		{
			name:  "UnknownKeysIgnored",
			query: map[string]string{"utm_source": "newsletter", "view": "grid"},
			check: func(t *testing.T, f SearchFilters) {
				if !reflect.DeepEqual(f, Defaults()) {
					t.Errorf("got %+v", f)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Decode(tt.query))
		})
	}
}

func TestEncodeDefaultsIsEmpty(t *testing.T) {
	if got := Encode(Defaults()); len(got) != 0 {
		t.Errorf("Encode(Defaults()) = %v, want empty", got)
	}
}

func TestEncodeScenario(t *testing.T) {
	f := Defaults()
	f.MaxPoints = 50
	f.NewCourses = true
	f.PageNum = 3

	got := Encode(f)
	want := map[string]string{"maxPoints": "50", "newCourses": "true"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Encode = %v, want %v", got, want)
	}
}

func TestEncodeFull(t *testing.T) {
	f := SearchFilters{
		Keyword:        "piano",
		Regions:        []catalog.RegionCode{"KHH", "TPE"},
		Categories:     []catalog.CategoryCode{"MUSIC_PIANO"},
		MinPoints:      10,
		MaxPoints:      90,
		HasOpenSlots:   true,
		NewCourses:     true,
		FavouritesOnly: true,
		SortBy:         SortRating,
		SortOrder:      "asc",
		PageNum:        2,
		PageSize:       30,
	}
	want := map[string]string{
		"keyword":        "piano",
		"regions":        "KHH,TPE",
		"categories":     "MUSIC_PIANO",
		"minPoints":      "10",
		"maxPoints":      "90",
		"hasOpenSlots":   "true",
		"newCourses":     "true",
		"favouritesOnly": "true",
		"sortBy":         "rating",
	}
	if got := Encode(f); !reflect.DeepEqual(got, want) {
		t.Errorf("Encode = %v, want %v", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []SearchFilters{
		Defaults(),
		func() SearchFilters {
			f := Defaults()
			f.Keyword = "coffee & cake"
			f.Regions = []catalog.RegionCode{"TXG", "TNN", "PEN"}
			f.MinPoints = 15
			return f
		}(),
		func() SearchFilters {
			f := Defaults()
			f.Categories = []catalog.CategoryCode{"COOKING", "TECH_DATA"}
			f.MaxPoints = 0
			f.HasOpenSlots = true
			f.FavouritesOnly = true
			f.SortBy = SortNewest
			return f
		}(),
		func() SearchFilters {
			f := Defaults()
			f.NewCourses = true
			f.SortBy = SortPointsDesc
			f.MinPoints = 100
			f.MaxPoints = 1
			return f
		}(),
	}

	for i, f := range cases {
		got := Decode(Encode(f))
		if !reflect.DeepEqual(got, f) {
			t.Errorf("case %d: round trip = %+v, want %+v", i, got, f)
		}
	}
}

func TestRoundTripResetsPagination(t *testing.T) {
	f := Defaults()
	f.Keyword = "yoga"
	f.PageNum = 5

	got := Decode(Encode(f))
	if got.PageNum != FirstPage {
		t.Errorf("PageNum = %d, want %d", got.PageNum, FirstPage)
	}
	if got.Keyword != "yoga" {
		t.Errorf("Keyword = %q", got.Keyword)
	}
}

func TestDecodeValuesAndQueryString(t *testing.T) {
	f := Defaults()
	f.Keyword = "yoga"
	f.Regions = []catalog.RegionCode{"TPE", "KHH"}

	qs := QueryString(f)
	if qs != "keyword=yoga&regions=TPE%2CKHH" {
		t.Errorf("QueryString = %q", qs)
	}

	values := EncodeValues(f)
	values.Add("keyword", "ignored second value")
	if got := DecodeValues(values); !reflect.DeepEqual(got, f) {
		t.Errorf("DecodeValues = %+v, want %+v", got, f)
	}
}

func TestCountApplied(t *testing.T) {
	if n := CountApplied(Defaults()); n != 0 {
		t.Fatalf("CountApplied(Defaults()) = %d", n)
	}
	if IsApplied(Defaults()) {
		t.Fatal("IsApplied(Defaults()) = true")
	}

	mutations := map[string]func(*SearchFilters){
		"regions":        func(f *SearchFilters) { f.Regions = []catalog.RegionCode{"TPE"} },
		"categories":     func(f *SearchFilters) { f.Categories = []catalog.CategoryCode{"ARTS"} },
		"minPoints":      func(f *SearchFilters) { f.MinPoints = 1 },
		"maxPoints":      func(f *SearchFilters) { f.MaxPoints = 99 },
		"hasOpenSlots":   func(f *SearchFilters) { f.HasOpenSlots = true },
		"newCourses":     func(f *SearchFilters) { f.NewCourses = true },
		"favouritesOnly": func(f *SearchFilters) { f.FavouritesOnly = true },
		"sortBy":         func(f *SearchFilters) { f.SortBy = SortRating },
	}

	all := Defaults()
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			f := Defaults()
			mutate(&f)
			if n := CountApplied(f); n != 1 {
				t.Errorf("CountApplied = %d, want 1", n)
			}
			if !IsApplied(f) {
				t.Error("IsApplied = false")
			}
		})
		mutate(&all)
	}

	if n := CountApplied(all); n != len(mutations) {
		t.Errorf("all mutations: CountApplied = %d, want %d", n, len(mutations))
	}

	t.Run("KeywordDoesNotCount", func(t *testing.T) {
		f := Defaults()
		f.Keyword = "yoga"
		if n := CountApplied(f); n != 0 {
			t.Errorf("CountApplied = %d, want 0", n)
		}
	})
}

func TestResetKeepingKeyword(t *testing.T) {
	f := Defaults()
	f.Keyword = "yoga"
	f.Regions = []catalog.RegionCode{"TPE"}
	f.MinPoints = 30
	f.PageNum = 4

	got := ResetKeepingKeyword(f)
	want := Defaults()
	want.Keyword = "yoga"
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResetKeepingKeyword = %+v, want %+v", got, want)
	}
}

func TestEqual(t *testing.T) {
	a := Defaults()
	a.Regions = []catalog.RegionCode{"TPE", "KHH"}
	b := Defaults()
	b.Regions = []catalog.RegionCode{"KHH", "TPE"}

	if !Equal(a, b) {
		t.Error("region order should not matter")
	}

	c := Defaults()
	c.Regions = []catalog.RegionCode{}
	if !Equal(Defaults(), c) {
		t.Error("nil and empty regions should be equal")
	}

	d := Defaults()
	d.PageNum = 2
	if Equal(Defaults(), d) {
		t.Error("page change should be observed")
	}

	e := Defaults()
	e.Regions = []catalog.RegionCode{"TPE", "TPE"}
	g := Defaults()
	g.Regions = []catalog.RegionCode{"TPE", "KHH"}
	if Equal(e, g) {
		t.Error("different sets reported equal")
	}
}

func TestSortByValid(t *testing.T) {
	for _, s := range []SortBy{SortRelevance, SortPointsAsc, SortPointsDesc, SortNewest, SortRating} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if SortBy("price").Valid() {
		t.Error(`"price" should be invalid`)
	}
}

func TestClone(t *testing.T) {
	f := Defaults()
	f.Regions = []catalog.RegionCode{"TPE"}
	c := f.Clone()
	c.Regions[0] = "KHH"
	if f.Regions[0] != "TPE" {
		t.Error("Clone shares region storage")
	}
}
