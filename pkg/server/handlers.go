package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/coursebook/internal/errors"
	"github.com/vango-dev/coursebook/pkg/catalog"
	"github.com/vango-dev/coursebook/pkg/filters"
	"github.com/vango-dev/coursebook/pkg/search"
)

// Query parameters outside the filter codec.
const (
	pageParam       = "page"
	favouritesParam = "favourites"
)

// searchResponse is the body of GET /api/courses and of live "results"
// messages.
type searchResponse struct {
	search.Result
	Query          string `json:"query"`
	AppliedFilters int    `json:"appliedFilters"`
	FiltersApplied bool   `json:"filtersApplied"`
}

func newSearchResponse(res search.Result, f filters.SearchFilters) searchResponse {
	n := filters.CountApplied(f)
	return searchResponse{
		Result:         res,
		Query:          filters.QueryString(f),
		AppliedFilters: n,
		FiltersApplied: n > 0,
	}
}

type taxonomyResponse struct {
	Regions    []catalog.Region   `json:"regions"`
	Categories []catalog.Category `json:"categories"`
	SortBy     []filters.SortBy   `json:"sortBy"`
	MinPoints  int                `json:"minPoints"`
	MaxPoints  int                `json:"maxPoints"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"courses": s.store.Len(),
	})
}

func (s *Server) handleTaxonomy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, taxonomyResponse{
		Regions:    catalog.Regions(),
		Categories: catalog.Taxonomy(),
		SortBy:     filters.SortOptions(),
		MinPoints:  filters.DefaultMinPoints,
		MaxPoints:  filters.DefaultMaxPoints,
	})
}

func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := filters.DecodeValues(q)

	page, err := parsePage(q)
	if err != nil {
		writeError(w, err)
		return
	}
	f.PageNum = page

	favourites, err := parseFavourites(q.Get(favouritesParam))
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.engine.Search(r.Context(), search.Request{Filters: f, Favourites: favourites})
	if err != nil {
		writeError(w, errors.FromError(err, "E302"))
		return
	}
	s.metrics.SearchRan("http")

	writeJSON(w, http.StatusOK, newSearchResponse(res, f))
}

func (s *Server) handleHighlights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.BuildHighlights(s.store.All()))
}

func (s *Server) handleCourse(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, errors.New("E300").WithDetail("course id must be a positive integer, got "+strconv.Quote(raw)))
		return
	}

	course, ok := s.store.Get(id)
	if !ok {
		writeError(w, errors.New("E301").WithDetail("no course with id "+raw))
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// parsePage reads the page parameter. Absent means the first page.
func parsePage(q url.Values) (int, error) {
	raw := q.Get(pageParam)
	if raw == "" {
		return filters.FirstPage, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < filters.FirstPage || page > filters.MaxPage {
		return 0, errors.New("E300").
			WithDetail("page must be an integer from 1 to " + strconv.Itoa(filters.MaxPage) + ", got " + strconv.Quote(raw))
	}
	return page, nil
}

// parseFavourites reads a comma-separated list of course ids.
func parseFavourites(raw string) (map[int64]bool, error) {
	if raw == "" {
		return nil, nil
	}
	out := make(map[int64]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, errors.New("E300").
				WithDetail("favourites must be course ids, got " + strconv.Quote(part))
		}
		out[id] = true
	}
	return out, nil
}

func notFound(path string) *errors.Error {
	return errors.Newf(errors.CategoryNotFound, "No route for %s", path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError renders err as a JSON error body. Errors that are not
// structured are reported as internal errors without their cause.
func writeError(w http.ResponseWriter, err error) {
	e := errors.FromError(err, "E302")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode())
	w.Write([]byte(`{"error":` + e.FormatJSON() + "}\n"))
}
