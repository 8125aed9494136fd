package domain

import "strings"

// Show is one tracked TV show.
//
// Title is the identity key within a collection: lookups, edits and deletes
// match it exactly (case-sensitive). There is no surrogate ID.
//
// Shows are values. Description and Rating point at data that is never
// mutated in place, so copying a Show (or a []Show) is a safe snapshot.
type Show struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"` // nil = no description
	Genres      []string `json:"genres"`      // lowercase, trimmed
	Rating      *int     `json:"rating"`      // nil = unseen, otherwise 1-5
}

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// Seen returns true if the show has a rating
func (s Show) Seen() bool {
	return s.Rating != nil
}

// RatingValue returns the rating, or 0 for unseen shows
func (s Show) RatingValue() int {
	if s.Rating == nil {
		return 0
	}
	return *s.Rating
}

// DescriptionText returns the description or "" when absent
func (s Show) DescriptionText() string {
	if s.Description == nil {
		return ""
	}
	return *s.Description
}

// SortTitle returns the case-folded title used for alphabetical ordering
func (s Show) SortTitle() string {
	return strings.ToLower(s.Title)
}

// HasGenre reports whether the show is tagged with genre (exact match)
func (s Show) HasGenre(genre string) bool {
	for _, g := range s.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// WithRating returns a copy of the show with its rating replaced.
// A nil rating marks the show unseen.
func (s Show) WithRating(rating *int) Show {
	s.Rating = rating
	return s
}

// ValidRating reports whether r is within MinRating..MaxRating
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// IntPtr returns a pointer to a copy of v
func IntPtr(v int) *int {
	return &v
}

// StringPtr returns a pointer to a copy of v
func StringPtr(v string) *string {
	return &v
}

// OrderBy is the active sort criterion for the show list
type OrderBy int

const (
	OrderTitleAsc OrderBy = iota
	OrderRatingAsc
	OrderRatingDesc
)

// String returns the display name for the order
func (o OrderBy) String() string {
	switch o {
	case OrderTitleAsc:
		return "Title"
	case OrderRatingAsc:
		return "Rating ↑"
	case OrderRatingDesc:
		return "Rating ↓"
	default:
		return "Unknown"
	}
}

// Orders returns every available order in display sequence
func Orders() []OrderBy {
	return []OrderBy{OrderTitleAsc, OrderRatingAsc, OrderRatingDesc}
}

// ParseOrder converts a config value ("title", "rating_asc", "rating_desc")
// into an OrderBy. Unknown values fall back to OrderTitleAsc.
func ParseOrder(s string) OrderBy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rating_asc", "rating-asc", "rating":
		return OrderRatingAsc
	case "rating_desc", "rating-desc":
		return OrderRatingDesc
	default:
		return OrderTitleAsc
	}
}

// FormState is the in-progress add/edit form.
// EditingTitle == nil means submit adds Draft as a new show; otherwise submit
// replaces the show whose title equals *EditingTitle.
type FormState struct {
	Draft        Show
	Errors       []string
	EditingTitle *string
}

// IsEditing returns true if the form edits an existing show
func (f FormState) IsEditing() bool {
	return f.EditingTitle != nil
}
