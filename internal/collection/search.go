package collection

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/showlist/internal/domain"
)

// Search returns the shows whose title fuzzy-matches query, best match first.
// Ties keep the input order. A blank query returns the input unchanged.
func Search(query string, shows []domain.Show) []domain.Show {
	query = strings.TrimSpace(query)
	if query == "" {
		return shows
	}

	titles := make([]string, len(shows))
	for i, s := range shows {
		titles[i] = s.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	results := make([]domain.Show, len(ranks))
	for i, r := range ranks {
		results[i] = shows[r.OriginalIndex]
	}
	return results
}
