package collection

import "github.com/mmcdole/showlist/internal/domain"

// SampleShows returns a small starter collection for trying the app out
func SampleShows() []domain.Show {
	return []domain.Show{
		{
			Title:       "The Wire",
			Description: domain.StringPtr("Baltimore drug scene, seen through the eyes of dealers and law enforcement."),
			Genres:      []string{"crime", "drama"},
			Rating:      domain.IntPtr(5),
		},
		{
			Title:       "Dexter",
			Description: domain.StringPtr("A forensics expert who moonlights as a serial killer."),
			Genres:      []string{"crime", "drama", "thriller"},
			Rating:      domain.IntPtr(4),
		},
		{
			Title:  "Archer",
			Genres: []string{"animation", "comedy"},
			Rating: domain.IntPtr(3),
		},
		{
			Title:       "Severance",
			Description: domain.StringPtr("Office workers whose memories are split between work and home."),
			Genres:      []string{"drama", "mystery", "sci-fi"},
		},
		{
			Title:  "Parks and Recreation",
			Genres: []string{"comedy"},
		},
	}
}
