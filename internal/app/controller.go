// Package app holds the application state controller: the single owner of
// the show list, sort and filter selection, form state and session token.
//
// Dispatch is synchronous and must be called from one goroutine. It applies
// an intent and returns at most one persistence effect for the caller to run
// in the background. Effect results come back as intents.
package app

import (
	"log/slog"

	"github.com/mmcdole/showlist/internal/collection"
	"github.com/mmcdole/showlist/internal/domain"
	"github.com/mmcdole/showlist/internal/form"
)

// Controller is the application state
type Controller struct {
	shows       []domain.Show
	order       domain.OrderBy
	genreFilter string
	allGenres   []string
	form        domain.FormState
	token       string
	saves       uint64

	logger *slog.Logger
}

// NewController creates a controller with an empty collection
func NewController(token string, order domain.OrderBy, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		shows:     []domain.Show{},
		order:     order,
		allGenres: []string{},
		form:      form.New(),
		token:     token,
		logger:    logger,
	}
}

// Init returns the startup effect: load the collection for the current session
func (c *Controller) Init() Effect {
	return Load{Token: c.token}
}

// View returns the shows to display: sorted, then filtered by genre.
// It is recomputed on every call.
func (c *Controller) View() []domain.Show {
	return collection.FilterGenre(c.genreFilter, collection.Sort(c.order, c.shows))
}

// Shows returns the current collection snapshot
func (c *Controller) Shows() []domain.Show { return c.shows }

// Genres returns the sorted set of genres in the collection
func (c *Controller) Genres() []string { return c.allGenres }

// Order returns the active sort criterion
func (c *Controller) Order() domain.OrderBy { return c.order }

// GenreFilter returns the active genre filter ("" = none)
func (c *Controller) GenreFilter() string { return c.genreFilter }

// Form returns the current form state
func (c *Controller) Form() domain.FormState { return c.form }

// Token returns the session token ("" = signed out)
func (c *Controller) Token() string { return c.token }

// Dispatch applies intent and returns the effect to run, if any
func (c *Controller) Dispatch(intent Intent) Effect {
	switch in := intent.(type) {
	case Rate:
		if !domain.ValidRating(in.Rank) {
			c.logger.Debug("ignoring out of range rating", "title", in.Title, "rank", in.Rank)
			return nil
		}
		return c.commit(collection.Rate(in.Title, in.Rank, c.shows))

	case MarkUnseen:
		return c.commit(collection.MarkUnseen(in.Title, c.shows))

	case Delete:
		return c.commit(collection.DeleteByTitle(in.Show.Title, c.shows))

	case Edit:
		c.form = form.StartEdit(in.Show)
		return nil

	case SetOrder:
		c.order = in.Order
		return nil

	case SetGenreFilter:
		c.genreFilter = in.Genre
		return nil

	case ClearGenreFilter:
		c.genreFilter = ""
		return nil

	case FormFieldUpdate:
		c.form = form.UpdateField(c.form, in.Field, in.Value)
		return nil

	case FormSubmit:
		state, shows, ok := form.Submit(c.form, c.shows)
		c.form = state
		if !ok {
			c.logger.Debug("form rejected", "errors", state.Errors)
			return nil
		}
		return c.commit(shows)

	case CancelEdit:
		c.form = form.Cancel()
		return nil

	case ShowsLoaded:
		shows := in.Shows
		if shows == nil {
			shows = []domain.Show{}
		}
		c.replace(shows)
		c.logger.Debug("shows loaded", "count", len(shows), "source", in.Source)
		if in.Source == SourceSample {
			return c.save()
		}
		return nil

	case SessionStarted:
		c.token = in.Token
		return Load{Token: c.token}

	case Logout:
		c.replace([]domain.Show{})
		c.form = form.New()
		c.token = ""
		return ClearToken{}

	case SaveCompleted:
		if in.Err != nil {
			c.logger.Error("failed to save shows", "error", in.Err)
		}
		return nil

	case TokenCleared:
		if in.Err != nil {
			c.logger.Error("failed to clear session token", "error", in.Err)
		}
		return nil
	}

	c.logger.Warn("unhandled intent", "intent", intent)
	return nil
}

// commit installs a mutated collection and requests a save of it
func (c *Controller) commit(shows []domain.Show) Effect {
	c.replace(shows)
	return c.save()
}

func (c *Controller) replace(shows []domain.Show) {
	c.shows = shows
	c.allGenres = collection.Genres(shows)
}

func (c *Controller) save() Effect {
	c.saves++
	return Save{Shows: c.shows, Token: c.token, Seq: c.saves}
}
