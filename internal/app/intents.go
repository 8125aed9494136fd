package app

import (
	"github.com/mmcdole/showlist/internal/domain"
	"github.com/mmcdole/showlist/internal/form"
)

// Intent is a request to change application state.
// Intents are processed one at a time by Controller.Dispatch.
type Intent interface {
	intent()
}

// Rate marks a show seen with Rank (1-5)
type Rate struct {
	Title string
	Rank  int
}

// MarkUnseen clears a show's rating
type MarkUnseen struct {
	Title string
}

// Edit loads a show into the form for editing
type Edit struct {
	Show domain.Show
}

// Delete removes a show
type Delete struct {
	Show domain.Show
}

// SetOrder changes the sort criterion
type SetOrder struct {
	Order domain.OrderBy
}

// SetGenreFilter restricts the view to one genre
type SetGenreFilter struct {
	Genre string
}

// ClearGenreFilter removes the genre restriction
type ClearGenreFilter struct{}

// FormFieldUpdate applies raw input to one draft field
type FormFieldUpdate struct {
	Field form.Field
	Value string
}

// FormSubmit validates and commits the draft
type FormSubmit struct{}

// CancelEdit abandons the draft and returns the form to adding
type CancelEdit struct{}

// LoadSource tells where a ShowsLoaded collection came from
type LoadSource int

const (
	SourceStore  LoadSource = iota // local store or remote backup
	SourceSample                   // built-in sample data
)

// ShowsLoaded replaces the whole collection
type ShowsLoaded struct {
	Shows  []domain.Show
	Source LoadSource
}

// SessionStarted installs a session token and requests a load
type SessionStarted struct {
	Token string
}

// Logout clears the collection, form and session
type Logout struct{}

// SaveCompleted reports the outcome of a Save effect
type SaveCompleted struct {
	Err error
}

// TokenCleared reports the outcome of a ClearToken effect
type TokenCleared struct {
	Err error
}

func (Rate) intent()             {}
func (MarkUnseen) intent()       {}
func (Edit) intent()             {}
func (Delete) intent()           {}
func (SetOrder) intent()         {}
func (SetGenreFilter) intent()   {}
func (ClearGenreFilter) intent() {}
func (FormFieldUpdate) intent()  {}
func (FormSubmit) intent()       {}
func (CancelEdit) intent()       {}
func (ShowsLoaded) intent()      {}
func (SessionStarted) intent()   {}
func (Logout) intent()           {}
func (SaveCompleted) intent()    {}
func (TokenCleared) intent()     {}

// Effect is an asynchronous persistence request produced by Dispatch.
// A nil Effect means nothing to do.
type Effect interface {
	effect()
}

// Save persists Shows, a snapshot taken right after the triggering mutation.
// Token is the session token at that moment ("" = local only). Seq increases
// with every save the controller issues; a snapshot older than one already
// written must be dropped.
type Save struct {
	Shows []domain.Show
	Token string
	Seq   uint64
}

// Load fetches the collection for Token ("" = local only)
type Load struct {
	Token string
}

// ClearToken forgets the persisted session token
type ClearToken struct{}

func (Save) effect()       {}
func (Load) effect()       {}
func (ClearToken) effect() {}
