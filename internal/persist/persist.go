// Package persist is the boundary between the in-memory show list and its
// durable copies: the local store and, when a session token is present, the
// remote backup.
package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmcdole/showlist/internal/domain"
)

// Adapter composes the local store and the optional remote backup.
// A nil local store or remote client disables that side.
type Adapter struct {
	local  domain.ShowStore
	remote domain.BackupClient
	tokens domain.TokenStore
	logger *slog.Logger

	// saveMu serializes writes; written is the newest save sequence attempted
	saveMu  sync.Mutex
	written uint64
}

// NewAdapter creates a persistence adapter
func NewAdapter(local domain.ShowStore, remote domain.BackupClient, tokens domain.TokenStore, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{local: local, remote: remote, tokens: tokens, logger: logger}
}

// HasRemote returns true if a backup server is configured
func (a *Adapter) HasRemote() bool {
	return a.remote != nil
}

// Load returns the collection to start the session with.
//
// With a token and a configured remote, the remote backup wins; if it cannot
// be fetched the local copy is used instead. Without a token only the local
// store is read.
func (a *Adapter) Load(ctx context.Context, token string) ([]domain.Show, error) {
	if token != "" && a.remote != nil {
		shows, err := a.remote.FetchBackup(ctx, token)
		if err == nil {
			a.logger.Info("loaded shows from backup", "count", len(shows))
			return shows, nil
		}
		if a.local == nil {
			return nil, fmt.Errorf("load backup: %w", err)
		}
		a.logger.Warn("backup unavailable, using local copy", "error", err)
	}

	if a.local == nil {
		return []domain.Show{}, nil
	}

	shows, err := a.local.LoadShows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load local shows: %w", err)
	}
	a.logger.Info("loaded shows from local store", "count", len(shows))
	return shows, nil
}

// Save writes shows to the local store and, with a token, to the remote
// backup. Both sides are attempted; their errors are joined.
//
// Saves run one at a time. seq orders snapshots by when they were taken: a
// snapshot with a seq at or below one already written is dropped, so a slow
// or retried write can never overwrite a newer one. A zero seq is always
// written.
func (a *Adapter) Save(ctx context.Context, seq uint64, shows []domain.Show, token string) error {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()

	if seq != 0 {
		if seq <= a.written {
			a.logger.Debug("dropping superseded save", "seq", seq, "written", a.written)
			return nil
		}
		a.written = seq
	}

	var errs []error

	if a.local != nil {
		if err := a.local.SaveShows(ctx, shows); err != nil {
			errs = append(errs, fmt.Errorf("save local shows: %w", err))
		}
	}

	if token != "" && a.remote != nil {
		if err := a.remote.PushBackup(ctx, token, shows); err != nil {
			errs = append(errs, fmt.Errorf("push backup: %w", err))
		}
	}

	return errors.Join(errs...)
}

// SaveToken remembers token for the next run
func (a *Adapter) SaveToken(token string) error {
	if a.tokens == nil {
		return nil
	}
	return a.tokens.SaveToken(token)
}

// ClearToken forgets the persisted session token
func (a *Adapter) ClearToken() error {
	if a.tokens == nil {
		return nil
	}
	return a.tokens.ClearToken()
}
