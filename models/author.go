package models

import "time"

// Author represents a catalog author with biographical information and
// statistics computed over the author's books.
type Author struct {
	AuthorID int64 `json:"id"`

	// Name is the author's full name, 2..100 characters.
	Name string `json:"name" validate:"required,min=2,max=100"`

	// Bio is a free-form biography.
	Bio string `json:"bio,omitempty"`

	// BirthDate is optional and may never lie in the future.
	BirthDate *time.Time `json:"birth_date,omitempty" validate:"omitempty,notfuture"`

	// Nationality is the author's country of origin.
	Nationality string `json:"nationality,omitempty" validate:"max=50"`

	// Website must start with http:// or https:// when present.
	Website string `json:"website,omitempty" validate:"omitempty,webaddress"`

	// BookCount is the number of books by this author. Computed on reads.
	BookCount int64 `json:"book_count"`

	// LatestBook references the book with the highest publication year,
	// nil when the author has no books. Computed on reads.
	LatestBook *BookRef `json:"latest_book"`

	// AverageRating is the mean rating over books that have one,
	// 0 when none do. Computed on reads.
	AverageRating float64 `json:"average_rating"`

	// Books is embedded on detail reads only, in the list shape.
	Books []BookListItem `json:"books,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Author model.
func (a Author) TableName() string {
	return "authors"
}

// Summary returns the compact representation embedded in book detail reads.
func (a Author) Summary() AuthorSummary {
	return AuthorSummary{AuthorID: a.AuthorID, Name: a.Name}
}

// AuthorSummary is the compact author shape embedded in books.
type AuthorSummary struct {
	AuthorID int64  `json:"id"`
	Name     string `json:"name"`
}

// BookRef is the minimal book reference used for an author's latest book.
type BookRef struct {
	BookID          int64    `json:"id"`
	Title           string   `json:"title"`
	PublicationYear int      `json:"publication_year"`
	Rating          *float64 `json:"rating"`
}

// AuthorUpdate is a sparse update document for an author.
type AuthorUpdate struct {
	Name        *string    `json:"name" validate:"omitempty,min=2,max=100"`
	Bio         *string    `json:"bio"`
	BirthDate   *time.Time `json:"birth_date" validate:"omitempty,notfuture"`
	Nationality *string    `json:"nationality" validate:"omitempty,max=50"`
	Website     *string    `json:"website" validate:"omitempty,webaddress"`
}

// AuthorFilter captures the supported query parameters of the author list
// endpoint. Nil/zero values mean "not filtered".
type AuthorFilter struct {
	// Name, Bio and Nationality match case-insensitive substrings.
	Name        string
	Bio         string
	Nationality string

	// Search matches name, bio or nationality.
	Search string

	// BirthDateAfter/BirthDateBefore bound the birth date inclusively.
	BirthDateAfter  *time.Time
	BirthDateBefore *time.Time

	// HasBooks keeps only authors with (true) or without (false) books.
	HasBooks *bool

	// MinBooks/MaxBooks bound the number of books inclusively.
	MinBooks *int
	MaxBooks *int

	// BookGenre keeps authors having at least one book of the genre.
	BookGenre string

	// Ordering is one of name, birth_date, created_at, optionally prefixed
	// with "-". Empty means name ascending.
	Ordering string
}

// GenreCount is one bucket of an author's genre distribution.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int64  `json:"count"`
}

// YearCount is one bucket of an author's publication-year distribution.
type YearCount struct {
	PublicationYear int   `json:"publication_year"`
	Count           int64 `json:"count"`
}

// PriceRange holds the price bounds over an author's books.
type PriceRange struct {
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
}

// AuthorStatistics is the aggregate view returned by the author statistics
// endpoint.
type AuthorStatistics struct {
	TotalBooks       int64        `json:"total_books"`
	AverageRating    *float64     `json:"average_rating"`
	Genres           []GenreCount `json:"genres"`
	PublicationYears []YearCount  `json:"publication_years"`
	PriceRange       PriceRange   `json:"price_range"`
}
