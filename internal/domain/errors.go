package domain

import "errors"

// Sentinel errors for persistence operations
var (
	// ErrServerOffline indicates the backup server is unreachable
	ErrServerOffline = errors.New("backup server is unreachable")

	// ErrAuthFailed indicates the session token was rejected
	ErrAuthFailed = errors.New("session token is invalid")

	// ErrNoSession indicates a remote operation was attempted without a token
	ErrNoSession = errors.New("no session token")

	// ErrRemoteNotConfigured indicates no backup server URL is configured
	ErrRemoteNotConfigured = errors.New("backup server not configured")

	// ErrBackupNotFound indicates the server holds no backup for the token
	ErrBackupNotFound = errors.New("backup not found")
)
