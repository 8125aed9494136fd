package collection

import "strings"

// ParseGenres splits user input on commas into lowercase, trimmed tags.
// Empty tokens are dropped; duplicates are kept.
// "Drama, Crime" -> ["drama", "crime"].
func ParseGenres(raw string) []string {
	parts := strings.Split(raw, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		g := strings.ToLower(strings.TrimSpace(p))
		if g == "" {
			continue
		}
		genres = append(genres, g)
	}
	return genres
}

// UniqueGenres removes duplicates, keeping the first occurrence of each tag
func UniqueGenres(genres []string) []string {
	seen := make(map[string]struct{}, len(genres))
	unique := make([]string, 0, len(genres))
	for _, g := range genres {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		unique = append(unique, g)
	}
	return unique
}

// JoinGenres renders tags back into the comma separated form ParseGenres reads
func JoinGenres(genres []string) string {
	return strings.Join(genres, ", ")
}
