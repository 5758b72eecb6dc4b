package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vango-dev/coursebook/internal/errors"
)

//go:embed sample.json
var sampleCatalog []byte

// Decode reads a JSON array of courses and validates every record.
func Decode(r io.Reader) ([]Course, error) {
	var courses []Course
	if err := json.NewDecoder(r).Decode(&courses); err != nil {
		return nil, errors.New("E201").Wrap(err)
	}
	if err := Validate(courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Validate checks that IDs are positive and unique and that every region
// and category belongs to the closed code sets.
func Validate(courses []Course) error {
	seen := make(map[int64]bool, len(courses))
	for i, c := range courses {
		switch {
		case c.ID <= 0:
			return errors.New("E202").WithDetail(fmt.Sprintf("record %d: id must be positive", i))
		case seen[c.ID]:
			return errors.New("E202").WithDetail(fmt.Sprintf("record %d: duplicate id %d", i, c.ID))
		case !c.Region.Valid():
			return errors.New("E202").WithDetail(fmt.Sprintf("course %d: unknown region %q", c.ID, c.Region))
		case !c.Category.Valid():
			return errors.New("E202").WithDetail(fmt.Sprintf("course %d: unknown category %q", c.ID, c.Category))
		case c.PointsRequired < 0:
			return errors.New("E202").WithDetail(fmt.Sprintf("course %d: negative points", c.ID))
		}
		seen[c.ID] = true
	}
	return nil
}

// LoadFile loads a catalog from a JSON file.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("E200").WithDetail(path).Wrap(err)
	}
	defer f.Close()

	courses, err := Decode(f)
	if err != nil {
		return nil, err
	}
	return NewStore(courses), nil
}

// Sample returns the embedded development catalog.
func Sample() *Store {
	courses, err := Decode(bytes.NewReader(sampleCatalog))
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded sample is invalid: %v", err))
	}
	return NewStore(courses)
}
