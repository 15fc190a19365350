package model

// Category is the closed set of article categories. Raw form values are
// parsed exactly once, at the ingestion boundary.
type Category string

const (
	CategoryZahranici   Category = "zahranici"
	CategoryRepublika   Category = "republika"
	CategoryFinance     Category = "finance"
	CategoryTechnologie Category = "technologie"
	CategoryVeda        Category = "veda"
)

var categoryDisplay = map[Category]string{
	CategoryZahranici:   "Zahraničí",
	CategoryRepublika:   "Republika",
	CategoryFinance:     "Finance",
	CategoryTechnologie: "Technologie",
	CategoryVeda:        "Věda",
}

// Categories lists all categories in their page order.
func Categories() []Category {
	return []Category{
		CategoryZahranici,
		CategoryRepublika,
		CategoryFinance,
		CategoryTechnologie,
		CategoryVeda,
	}
}

// ParseCategory validates a raw form value against the closed set.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if _, ok := categoryDisplay[c]; !ok {
		return "", ErrUnknownCategory
	}
	return c, nil
}

// Display is the Czech page heading for the category.
func (c Category) Display() string {
	return categoryDisplay[c]
}

func (c Category) String() string {
	return string(c)
}
