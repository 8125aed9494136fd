// Package validation checks candidate shows before they enter a collection.
package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/mmcdole/showlist/internal/domain"
)

// Messages surfaced to the user through FormState.Errors
const (
	MsgBlankTitle     = "Please enter a title."
	MsgDuplicateTitle = "This show is already listed."
	MsgRatingRange    = "Please choose a rating between 1 and 5."
)

// showRules carries the field-level constraints for a single show.
type showRules struct {
	Title  string `json:"title" validate:"notblank"`
	Rating *int   `json:"rating" validate:"omitempty,min=1,max=5"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Use JSON tag names in field errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank: %v", err))
	}
	return v
}

// fieldErrors returns the failed rule per JSON field name
func fieldErrors(s domain.Show) map[string]string {
	err := validate.Struct(showRules{Title: s.Title, Rating: s.Rating})
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return map[string]string{"": err.Error()}
	}

	failed := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		failed[e.Field()] = e.Tag()
	}
	return failed
}

// Validate checks candidate against the current collection and form state.
// All rules are evaluated; the result is empty iff the candidate is valid.
//
// Title uniqueness is only enforced when adding. While editing, the check is
// skipped entirely, so renaming onto another show's title is not caught.
func Validate(shows []domain.Show, state domain.FormState, candidate domain.Show) []string {
	var errs []string
	failed := fieldErrors(candidate)

	if _, ok := failed["title"]; ok {
		errs = append(errs, MsgBlankTitle)
	}

	if !state.IsEditing() {
		for _, s := range shows {
			if s.Title == candidate.Title {
				errs = append(errs, MsgDuplicateTitle)
				break
			}
		}
	}

	if _, ok := failed["rating"]; ok {
		errs = append(errs, MsgRatingRange)
	}

	return errs
}

// ValidateBackup checks a whole document received from a client: every show
// has a title and an in-range rating, and no title repeats.
func ValidateBackup(shows []domain.Show) error {
	seen := make(map[string]struct{}, len(shows))
	for i, s := range shows {
		failed := fieldErrors(s)
		if _, ok := failed["title"]; ok {
			return fmt.Errorf("show %d: %s", i, MsgBlankTitle)
		}
		if _, ok := failed["rating"]; ok {
			return fmt.Errorf("show %q: %s", s.Title, MsgRatingRange)
		}
		if _, ok := seen[s.Title]; ok {
			return fmt.Errorf("show %q: %s", s.Title, MsgDuplicateTitle)
		}
		seen[s.Title] = struct{}{}
	}
	return nil
}
