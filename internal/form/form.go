// Package form implements the add/edit form state machine.
//
// The form is either Adding (EditingTitle nil) or Editing(title). Field
// updates only touch the draft; Submit validates and commits the draft into
// a collection.
package form

import (
	"strconv"
	"strings"

	"github.com/mmcdole/showlist/internal/collection"
	"github.com/mmcdole/showlist/internal/domain"
	"github.com/mmcdole/showlist/internal/validation"
)

// Field identifies an editable draft field
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldGenres
	FieldRating
)

// String returns the field label
func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldDescription:
		return "Description"
	case FieldGenres:
		return "Genres"
	case FieldRating:
		return "Rating"
	default:
		return "Unknown"
	}
}

// Fields returns every field in form order
func Fields() []Field {
	return []Field{FieldTitle, FieldDescription, FieldGenres, FieldRating}
}

// New returns a blank form in the Adding state
func New() domain.FormState {
	return domain.FormState{Draft: domain.Show{Genres: []string{}}}
}

// StartEdit loads show into the draft and switches to Editing(show.Title)
func StartEdit(show domain.Show) domain.FormState {
	return domain.FormState{
		Draft:        show,
		EditingTitle: domain.StringPtr(show.Title),
	}
}

// UpdateField applies raw user input to one draft field.
//
// Rating accepts an integer 1-5; anything else clears it. An empty
// description is stored as absent. Genres are parsed but not deduplicated
// until submit.
func UpdateField(state domain.FormState, field Field, raw string) domain.FormState {
	draft := state.Draft

	switch field {
	case FieldTitle:
		draft.Title = raw
	case FieldDescription:
		if raw == "" {
			draft.Description = nil
		} else {
			draft.Description = domain.StringPtr(raw)
		}
	case FieldGenres:
		draft.Genres = collection.ParseGenres(raw)
	case FieldRating:
		draft.Rating = parseRating(raw)
	}

	state.Draft = draft
	return state
}

func parseRating(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !domain.ValidRating(n) {
		return nil
	}
	return &n
}

// FieldValue renders a draft field as the text an input would hold
func FieldValue(state domain.FormState, field Field) string {
	draft := state.Draft

	switch field {
	case FieldTitle:
		return draft.Title
	case FieldDescription:
		return draft.DescriptionText()
	case FieldGenres:
		return collection.JoinGenres(draft.Genres)
	case FieldRating:
		if draft.Rating == nil {
			return ""
		}
		return strconv.Itoa(*draft.Rating)
	default:
		return ""
	}
}

// Submit validates the draft against shows and commits it.
//
// On validation failure the state is returned with Errors set and shows is
// returned unchanged. On success the draft's genres are deduplicated, the
// draft is prepended (Adding) or replaces the show being edited (Editing),
// and a blank Adding form is returned. A rename while editing is not
// checked against other titles.
func Submit(state domain.FormState, shows []domain.Show) (domain.FormState, []domain.Show, bool) {
	if errs := validation.Validate(shows, state, state.Draft); len(errs) > 0 {
		state.Errors = errs
		return state, shows, false
	}

	draft := state.Draft
	draft.Genres = collection.UniqueGenres(draft.Genres)

	var updated []domain.Show
	if state.EditingTitle == nil {
		updated = collection.Insert(draft, shows)
	} else {
		updated = collection.UpdateByTitle(*state.EditingTitle, func(domain.Show) domain.Show {
			return draft
		}, shows)
	}

	return New(), updated, true
}

// Cancel abandons the current draft and returns to Adding
func Cancel() domain.FormState {
	return New()
}
