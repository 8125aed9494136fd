// Package codec converts show collections to and from their JSON documents.
//
// A collection is a JSON array of shows:
//
//	[{"title": "Dexter", "description": null, "genres": ["drama"], "rating": 4}]
//
// The remote backup document wraps the same array as {"shows": [...]}.
package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mmcdole/showlist/internal/domain"
)

// Backup is the remote backup document
type Backup struct {
	Shows []domain.Show `json:"shows"`
}

// normalize returns a copy whose genre lists are never nil, so documents
// always carry "genres": [] rather than null.
func normalize(shows []domain.Show) []domain.Show {
	out := make([]domain.Show, len(shows))
	for i, s := range shows {
		if s.Genres == nil {
			s.Genres = []string{}
		}
		out[i] = s
	}
	return out
}

// EncodeShows serializes a collection as a JSON array
func EncodeShows(shows []domain.Show) ([]byte, error) {
	data, err := json.Marshal(normalize(shows))
	if err != nil {
		return nil, fmt.Errorf("encode shows: %w", err)
	}
	return data, nil
}

// DecodeShows parses a JSON array of shows
func DecodeShows(data []byte) ([]domain.Show, error) {
	var shows []domain.Show
	if err := json.Unmarshal(data, &shows); err != nil {
		return nil, fmt.Errorf("decode shows: %w", err)
	}
	return normalize(shows), nil
}

// EncodeBackup writes the {"shows": [...]} document to w
func EncodeBackup(w io.Writer, shows []domain.Show) error {
	if err := json.NewEncoder(w).Encode(Backup{Shows: normalize(shows)}); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// DecodeBackup reads a {"shows": [...]} document from r
func DecodeBackup(r io.Reader) ([]domain.Show, error) {
	var doc Backup
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	return normalize(doc.Shows), nil
}
