package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/avdeenko/bookclub/internal/logger"
	"github.com/avdeenko/bookclub/migrations"
)

// Dialect names accepted by the store. They double as database/sql driver
// names and goose dialect names.
const (
	DialectPostgres = "pgx"
	DialectSQLite   = "sqlite3"
)

// DB wraps the raw connection with the dialect-specific pieces repositories
// need: a squirrel statement builder preconfigured with the right
// placeholder format, an error classifier, and a logger.
type DB struct {
	*sql.DB
	builder            sq.StatementBuilderType
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies all embedded goose migrations to the connected database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Builder returns the squirrel statement builder bound to the connection's
// placeholder format ($1 for PostgreSQL, ? for SQLite).
func (db *DB) Builder() sq.StatementBuilderType {
	return db.builder
}

// icontains builds a case-insensitive substring predicate for the dialect.
// PostgreSQL needs ILIKE; SQLite's plain LIKE is already case-insensitive
// for ASCII.
func (db *DB) icontains(column, value string) sq.Sqlizer {
	pattern := "%" + value + "%"
	if db.dialect == DialectPostgres {
		return sq.ILike{column: pattern}
	}
	return sq.Like{column: pattern}
}
