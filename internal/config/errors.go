package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration values are missing or invalid.
var (
	// ErrMissingTokenSignKey indicates that no JWT signing key was provided
	// by any configuration source. The server cannot issue tokens without it.
	ErrMissingTokenSignKey = errors.New("missing token sign key")
	// ErrMissingDatabaseDSN indicates that no database connection string was
	// provided by any configuration source.
	ErrMissingDatabaseDSN = errors.New("missing database DSN")
	// ErrUnsupportedDBDriver indicates a driver name other than pgx or sqlite3.
	ErrUnsupportedDBDriver = errors.New("unsupported database driver")
)
