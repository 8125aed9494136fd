// Package collection holds the pure operations over a show list.
//
// Every function returns a new slice and leaves its input untouched, so a
// caller may hand the old slice to a background save while working on the new
// one. Operations keyed by title are silent no-ops when the title is absent.
package collection

import (
	"cmp"
	"slices"
	"strings"

	"github.com/mmcdole/showlist/internal/domain"
)

// Sort returns the shows ordered by order.
//
// OrderTitleAsc is a stable sort on the case-folded title. OrderRatingAsc
// sorts by rating with unseen shows counting as 0, breaking ties by title so
// the result does not depend on input order. Shows with equal ratings
// therefore come out by title, not in insertion order. OrderRatingDesc is
// exactly the reverse of OrderRatingAsc.
func Sort(order domain.OrderBy, shows []domain.Show) []domain.Show {
	sorted := slices.Clone(shows)

	switch order {
	case domain.OrderRatingAsc:
		slices.SortStableFunc(sorted, compareRating)
	case domain.OrderRatingDesc:
		slices.SortStableFunc(sorted, compareRating)
		slices.Reverse(sorted)
	default:
		slices.SortStableFunc(sorted, func(a, b domain.Show) int {
			return strings.Compare(a.SortTitle(), b.SortTitle())
		})
	}

	return sorted
}

func compareRating(a, b domain.Show) int {
	return cmp.Or(
		cmp.Compare(a.RatingValue(), b.RatingValue()),
		strings.Compare(a.SortTitle(), b.SortTitle()),
		strings.Compare(a.Title, b.Title),
	)
}

// FilterGenre keeps the shows tagged with genre, preserving order.
// An empty genre means no filter.
func FilterGenre(genre string, shows []domain.Show) []domain.Show {
	if genre == "" {
		return slices.Clone(shows)
	}

	filtered := make([]domain.Show, 0, len(shows))
	for _, s := range shows {
		if s.HasGenre(genre) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// UpdateByTitle replaces the first show titled title with fn(show).
func UpdateByTitle(title string, fn func(domain.Show) domain.Show, shows []domain.Show) []domain.Show {
	updated := slices.Clone(shows)
	for i, s := range updated {
		if s.Title == title {
			updated[i] = fn(s)
			break
		}
	}
	return updated
}

// Rate marks the show seen with the given rank
func Rate(title string, rank int, shows []domain.Show) []domain.Show {
	rating := domain.IntPtr(rank)
	return UpdateByTitle(title, func(s domain.Show) domain.Show {
		return s.WithRating(rating)
	}, shows)
}

// MarkUnseen clears the show's rating
func MarkUnseen(title string, shows []domain.Show) []domain.Show {
	return UpdateByTitle(title, func(s domain.Show) domain.Show {
		return s.WithRating(nil)
	}, shows)
}

// DeleteByTitle removes the show titled title
func DeleteByTitle(title string, shows []domain.Show) []domain.Show {
	remaining := make([]domain.Show, 0, len(shows))
	for _, s := range shows {
		if s.Title != title {
			remaining = append(remaining, s)
		}
	}
	return remaining
}

// Insert adds show at the front of the list
func Insert(show domain.Show, shows []domain.Show) []domain.Show {
	return append([]domain.Show{show}, shows...)
}

// Contains reports whether a show titled title exists
func Contains(title string, shows []domain.Show) bool {
	return slices.ContainsFunc(shows, func(s domain.Show) bool {
		return s.Title == title
	})
}

// Genres returns the sorted set of every genre used across shows
func Genres(shows []domain.Show) []string {
	seen := make(map[string]struct{})
	for _, s := range shows {
		for _, g := range s.Genres {
			seen[g] = struct{}{}
		}
	}

	genres := make([]string, 0, len(seen))
	for g := range seen {
		genres = append(genres, g)
	}
	slices.Sort(genres)
	return genres
}
