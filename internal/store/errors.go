package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when an attempt to register a new
	// user fails because the username is already taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrPostNotFound is returned when a post lookup or mutation targets a
	// post that does not exist.
	ErrPostNotFound = errors.New("post was not found")

	// ErrCommentNotFound is returned when a comment lookup or mutation
	// targets a comment that does not exist.
	ErrCommentNotFound = errors.New("comment was not found")

	// ErrAuthorNotFound is returned when an author lookup or mutation targets
	// an author that does not exist.
	ErrAuthorNotFound = errors.New("author was not found")

	// ErrAuthorReferenceInvalid is returned when a book write names an
	// author_id that does not exist. Unlike [ErrAuthorNotFound] this is a
	// problem with the submitted document, not with the requested resource.
	ErrAuthorReferenceInvalid = errors.New("referenced author does not exist")

	// ErrBookNotFound is returned when a book lookup or mutation targets a
	// book that does not exist.
	ErrBookNotFound = errors.New("book was not found")

	// ErrISBNAlreadyExists is returned when a book write violates the unique
	// ISBN constraint.
	ErrISBNAlreadyExists = errors.New("a book with this ISBN already exists")

	// ErrBookAlreadyExists is returned when a book write violates the unique
	// (title, author, publication year) constraint.
	ErrBookAlreadyExists = errors.New("a book with this title, author and publication year already exists")

	// ErrNothingToUpdate is returned when a sparse update document carries no
	// fields at all.
	ErrNothingToUpdate = errors.New("no fields to update")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
