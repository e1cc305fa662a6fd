package models

import "time"

// Genres is the closed set of accepted book genres.
var Genres = []string{
	"fiction", "non-fiction", "mystery", "romance", "sci-fi", "fantasy",
	"biography", "history", "self-help", "business", "technology", "other",
}

// DefaultGenre is assigned when a book is created without a genre.
const DefaultGenre = "other"

// IsValidGenre reports whether g belongs to [Genres].
func IsValidGenre(g string) bool {
	for _, known := range Genres {
		if g == known {
			return true
		}
	}
	return false
}

// recentYears is the window within which a book counts as recently published.
const recentYears = 5

// Book represents a catalog book with full metadata. The combination of
// title, author and publication year is unique, as is the ISBN.
type Book struct {
	BookID   int64 `json:"id"`
	AuthorID int64 `json:"author_id"`

	Title string `json:"title" validate:"required,min=1,max=200"`

	// Author is the compact author shape, populated on detail reads.
	Author *AuthorSummary `json:"author,omitempty"`

	// AuthorName duplicates Author.Name for list-friendly consumption.
	AuthorName string `json:"author_name"`

	// ISBN is exactly 13 digits and unique across the catalog.
	ISBN string `json:"isbn" validate:"required,isbn13digits"`

	// PublicationYear lies in 1000..current year.
	PublicationYear int `json:"publication_year" validate:"required,min=1000,notfutureyear"`

	// Genre is one of [Genres].
	Genre string `json:"genre" validate:"omitempty,bookgenre"`

	// Pages is optional and positive when present.
	Pages *int `json:"pages" validate:"omitempty,gt=0"`

	// Rating is optional and lies in 0.0..5.0 when present.
	Rating *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`

	// Price is non-negative.
	Price float64 `json:"price" validate:"gte=0"`

	Description string `json:"description,omitempty"`

	// InStock marks availability. Defaults to true.
	InStock bool `json:"in_stock"`

	// BookAge is the number of years since publication. Computed on reads.
	BookAge int `json:"book_age"`

	// IsRecent reports publication within the last five years. Computed on reads.
	IsRecent bool `json:"is_recent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Book model.
func (b Book) TableName() string {
	return "books"
}

// Age returns the number of years since publication relative to now.
func (b Book) Age(now time.Time) int {
	return now.Year() - b.PublicationYear
}

// Recent reports whether the book was published within the last five years.
func (b Book) Recent(now time.Time) bool {
	return b.Age(now) <= recentYears
}

// ListItem converts the book to its compact list shape.
func (b Book) ListItem() BookListItem {
	return BookListItem{
		BookID:          b.BookID,
		Title:           b.Title,
		AuthorName:      b.AuthorName,
		PublicationYear: b.PublicationYear,
		Genre:           b.Genre,
		Rating:          b.Rating,
		Price:           b.Price,
		InStock:         b.InStock,
	}
}

// Ref converts the book to the minimal reference shape.
func (b Book) Ref() BookRef {
	return BookRef{
		BookID:          b.BookID,
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
		Rating:          b.Rating,
	}
}

// BookListItem is the compact book shape used by list endpoints and by
// author detail reads.
type BookListItem struct {
	BookID          int64    `json:"id"`
	Title           string   `json:"title"`
	AuthorName      string   `json:"author_name"`
	PublicationYear int      `json:"publication_year"`
	Genre           string   `json:"genre"`
	Rating          *float64 `json:"rating"`
	Price           float64  `json:"price"`
	InStock         bool     `json:"in_stock"`
}

// BookUpdate is a sparse update document for a book.
type BookUpdate struct {
	Title           *string  `json:"title" validate:"omitempty,min=1,max=200"`
	AuthorID        *int64   `json:"author_id" validate:"omitempty,gt=0"`
	ISBN            *string  `json:"isbn" validate:"omitempty,isbn13digits"`
	PublicationYear *int     `json:"publication_year" validate:"omitempty,min=1000,notfutureyear"`
	Genre           *string  `json:"genre" validate:"omitempty,bookgenre"`
	Pages           *int     `json:"pages" validate:"omitempty,gt=0"`
	Rating          *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Price           *float64 `json:"price" validate:"omitempty,gte=0"`
	Description     *string  `json:"description"`
	InStock         *bool    `json:"in_stock"`
}

// BookFilter captures the supported query parameters of the book list
// endpoints. Nil/zero values mean "not filtered". Every field maps onto one
// WHERE predicate; the store composes them with AND.
type BookFilter struct {
	// Title and Description match case-insensitive substrings.
	Title       string
	Description string

	// ISBN matches exactly.
	ISBN string

	// Genre matches exactly and must be a member of [Genres].
	Genre string

	// AuthorID matches the owning author exactly.
	AuthorID *int64

	// AuthorName matches a case-insensitive substring of the author's name.
	AuthorName string

	// Search matches title, author name, description or ISBN.
	Search string

	// InStock keeps only (un)available books.
	InStock *bool

	// Inclusive numeric range bounds.
	PriceMin  *float64
	PriceMax  *float64
	RatingMin *float64
	RatingMax *float64
	PagesMin  *int
	PagesMax  *int

	// Publication year: exact match or inclusive range.
	Year    *int
	YearMin *int
	YearMax *int

	// Inclusive timestamp range bounds.
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	UpdatedAfter  *time.Time
	UpdatedBefore *time.Time

	// Ordering is one of title, publication_year, rating, price, created_at,
	// optionally prefixed with "-". Empty means -publication_year, title.
	Ordering string
}
