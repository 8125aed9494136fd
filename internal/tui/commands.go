package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/showlist/internal/app"
	"github.com/mmcdole/showlist/internal/domain"
)

// Persistence is the storage boundary the TUI runs effects against.
// persist.Adapter implements it.
type Persistence interface {
	Load(ctx context.Context, token string) ([]domain.Show, error)
	Save(ctx context.Context, seq uint64, shows []domain.Show, token string) error
	SaveToken(token string) error
	ClearToken() error
	HasRemote() bool
}

const persistTimeout = 30 * time.Second

// Command factories for async operations

// effectCmd turns a controller effect into the command that runs it
func effectCmd(store Persistence, effect app.Effect) tea.Cmd {
	switch e := effect.(type) {
	case app.Save:
		return SaveShowsCmd(store, e)
	case app.Load:
		return LoadShowsCmd(store, e.Token)
	case app.ClearToken:
		return ClearTokenCmd(store)
	default:
		return nil
	}
}

// LoadShowsCmd loads the collection for token
func LoadShowsCmd(store Persistence, token string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		shows, err := store.Load(ctx, token)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading shows"}
		}
		return app.ShowsLoaded{Shows: shows, Source: app.SourceStore}
	}
}

// SaveShowsCmd persists the snapshot carried by a save effect
func SaveShowsCmd(store Persistence, save app.Save) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		return app.SaveCompleted{Err: store.Save(ctx, save.Seq, save.Shows, save.Token)}
	}
}

// ClearTokenCmd forgets the session token
func ClearTokenCmd(store Persistence) tea.Cmd {
	return func() tea.Msg {
		return app.TokenCleared{Err: store.ClearToken()}
	}
}

// StartSessionCmd persists token and starts a session with it
func StartSessionCmd(store Persistence, token string) tea.Cmd {
	return func() tea.Msg {
		if err := store.SaveToken(token); err != nil {
			return ErrMsg{Err: err, Context: "saving token"}
		}
		return app.SessionStarted{Token: token}
	}
}

// LoadSampleCmd delivers built-in sample shows
func LoadSampleCmd(shows []domain.Show) tea.Cmd {
	return func() tea.Msg {
		return app.ShowsLoaded{Shows: shows, Source: app.SourceSample}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
