package domain

import "context"

// ShowStore persists a whole collection to a local medium.
// Implementations receive immutable snapshots and must not retain them for
// mutation.
type ShowStore interface {
	LoadShows(ctx context.Context) ([]Show, error)
	SaveShows(ctx context.Context, shows []Show) error
}

// BackupClient reads and writes the remote backup document for a session token.
type BackupClient interface {
	FetchBackup(ctx context.Context, token string) ([]Show, error)
	PushBackup(ctx context.Context, token string, shows []Show) error
}

// TokenStore persists the session token between runs.
type TokenStore interface {
	SaveToken(token string) error
	ClearToken() error
}
