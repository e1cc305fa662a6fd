package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/require"

	"github.com/avdeenko/bookclub/internal/logger"
)

// newTestDB wraps a sqlmock connection in the postgres-flavoured DB so the
// repositories under test build $N placeholder queries.
func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	return &DB{
		DB:                 raw,
		builder:            sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		dialect:            DialectPostgres,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.NewLogger("test"),
	}, mock
}
