// Package filters defines SearchFilters, the structured course search
// criteria, and its flat query-string form.
//
// The query form is sparse: only fields that differ from their defaults are
// written. Pagination and the fixed sort order are view state and never
// appear in the query, so decoding always resets them:
//
//	f := filters.Decode(map[string]string{"keyword": "yoga", "regions": "TPE,KHH"})
//	q := filters.Encode(f) // {"keyword": "yoga", "regions": "TPE,KHH"}
//
// Decoding never fails. Unknown keys, unknown region or category tokens and
// malformed numbers are ignored in favour of defaults, so bookmarked URLs
// keep working across releases.
package filters
