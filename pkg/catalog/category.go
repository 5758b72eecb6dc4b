package catalog

// CategoryCode identifies a main category or a sub-category of the course
// taxonomy. Every sub-category belongs to exactly one main category.
type CategoryCode string

const (
	CategorySports   CategoryCode = "SPORTS"
	CategoryArts     CategoryCode = "ARTS"
	CategoryMusic    CategoryCode = "MUSIC"
	CategoryLanguage CategoryCode = "LANGUAGE"
	CategoryCooking  CategoryCode = "COOKING"
	CategoryTech     CategoryCode = "TECH"
	CategoryWellness CategoryCode = "WELLNESS"
)

// Category is a taxonomy node. Main categories carry their sub-categories.
type Category struct {
	Code          CategoryCode `json:"code"`
	Name          string       `json:"name"`
	Parent        CategoryCode `json:"parent,omitempty"`
	Subcategories []Category   `json:"subcategories,omitempty"`
}

type subCategory struct {
	code CategoryCode
	name string
}

type mainCategory struct {
	code CategoryCode
	name string
	subs []subCategory
}

var taxonomy = []mainCategory{
	{CategorySports, "Sports", []subCategory{
		{"SPORTS_YOGA", "Yoga"},
		{"SPORTS_SWIMMING", "Swimming"},
		{"SPORTS_CLIMBING", "Climbing"},
		{"SPORTS_BALL", "Ball Games"},
	}},
	{CategoryArts, "Arts & Crafts", []subCategory{
		{"ARTS_PAINTING", "Painting"},
		{"ARTS_POTTERY", "Pottery"},
		{"ARTS_PHOTOGRAPHY", "Photography"},
		{"ARTS_CALLIGRAPHY", "Calligraphy"},
	}},
	{CategoryMusic, "Music", []subCategory{
		{"MUSIC_PIANO", "Piano"},
		{"MUSIC_GUITAR", "Guitar"},
		{"MUSIC_VOCAL", "Vocal"},
		{"MUSIC_DRUMS", "Drums"},
	}},
	{CategoryLanguage, "Languages", []subCategory{
		{"LANGUAGE_ENGLISH", "English"},
		{"LANGUAGE_JAPANESE", "Japanese"},
		{"LANGUAGE_KOREAN", "Korean"},
	}},
	{CategoryCooking, "Cooking", []subCategory{
		{"COOKING_BAKING", "Baking"},
		{"COOKING_COFFEE", "Coffee"},
		{"COOKING_LOCAL", "Local Cuisine"},
	}},
	{CategoryTech, "Technology", []subCategory{
		{"TECH_PROGRAMMING", "Programming"},
		{"TECH_DESIGN", "Digital Design"},
		{"TECH_DATA", "Data Analysis"},
	}},
	{CategoryWellness, "Wellness", []subCategory{
		{"WELLNESS_MEDITATION", "Meditation"},
		{"WELLNESS_AROMA", "Aromatherapy"},
	}},
}

type categoryInfo struct {
	name   string
	parent CategoryCode
}

var categoryIndex = func() map[CategoryCode]categoryInfo {
	m := make(map[CategoryCode]categoryInfo)
	for _, main := range taxonomy {
		m[main.code] = categoryInfo{name: main.name}
		for _, sub := range main.subs {
			m[sub.code] = categoryInfo{name: sub.name, parent: main.code}
		}
	}
	return m
}()

// Taxonomy returns the main categories with their sub-categories.
func Taxonomy() []Category {
	out := make([]Category, 0, len(taxonomy))
	for _, main := range taxonomy {
		c := Category{Code: main.code, Name: main.name}
		for _, sub := range main.subs {
			c.Subcategories = append(c.Subcategories, Category{
				Code:   sub.code,
				Name:   sub.name,
				Parent: main.code,
			})
		}
		out = append(out, c)
	}
	return out
}

// Valid reports whether c is a known main or sub-category.
func (c CategoryCode) Valid() bool {
	_, ok := categoryIndex[c]
	return ok
}

// IsMain reports whether c is a main category.
func (c CategoryCode) IsMain() bool {
	info, ok := categoryIndex[c]
	return ok && info.parent == ""
}

// IsSub reports whether c is a sub-category.
func (c CategoryCode) IsSub() bool {
	info, ok := categoryIndex[c]
	return ok && info.parent != ""
}

// Parent returns the main category of a sub-category.
func (c CategoryCode) Parent() (CategoryCode, bool) {
	info, ok := categoryIndex[c]
	if !ok || info.parent == "" {
		return "", false
	}
	return info.parent, true
}

// Main returns c itself for a main category and the parent for a sub-category.
func (c CategoryCode) Main() CategoryCode {
	if parent, ok := c.Parent(); ok {
		return parent
	}
	return c
}

// Name returns the display name, or the raw code if unknown.
func (c CategoryCode) Name() string {
	if info, ok := categoryIndex[c]; ok {
		return info.name
	}
	return string(c)
}
