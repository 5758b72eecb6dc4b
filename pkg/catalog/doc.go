// Package catalog holds the course catalog: the closed region and category
// enumerations, the Course record, a concurrency-safe in-memory Store and
// the derived highlight collections (popular, latest, recommended).
//
// Catalogs are JSON arrays of courses and can be loaded from a local file,
// from an S3 object, or from the embedded sample used in development:
//
//	store, err := catalog.LoadFile("courses.json")
//	if err != nil {
//	    return err
//	}
//	h := catalog.BuildHighlights(store.All())
package catalog
