// Package filterstate keeps a search view's SearchFilters and the view's
// URL query consistent.
//
// A Synchronizer is created per search view, seeded from the query the view
// was opened with, and mutated through Update, Reset and Apply. Every
// mutation schedules a debounced write-back of the encoded filters to the
// URL (history replace, never push). When the timer fires it encodes the
// filters current at that moment, so a burst of edits produces one URL
// update with the final state.
//
// An optional search function is re-run, through its own debounce, whenever
// the filters actually change.
//
//	s := filterstate.FromLocation(query, nav,
//	    filterstate.WithNotifier(notifier),
//	    filterstate.WithSearch(runSearch),
//	)
//	defer s.Close()
//
//	s.Update(filters.Patch{Regions: []catalog.RegionCode{"TPE"}})
package filterstate
