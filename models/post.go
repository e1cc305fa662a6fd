package models

import "time"

// Post is a user-authored publication. Posts are always owned: only the
// author may mutate or delete one, regardless of role.
type Post struct {
	PostID   int64 `json:"id"`
	AuthorID int64 `json:"-"`

	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`

	// Author is the compact author shape, populated on reads.
	Author *UserSummary `json:"author,omitempty"`

	// Comments are embedded on detail reads only, oldest first.
	Comments []Comment `json:"comments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Post model.
func (p Post) TableName() string {
	return "posts"
}

// PostUpdate is a sparse update document for a post. Nil fields are left
// untouched.
type PostUpdate struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

// PostFilter captures the supported query parameters of the post list
// endpoints. Zero values mean "not filtered".
type PostFilter struct {
	// AuthorUsername restricts to posts authored by the exact username.
	AuthorUsername string

	// AuthorIDs restricts to posts authored by any of the given users.
	// Used by the personalized feed.
	AuthorIDs []int64

	// Search matches a case-insensitive substring of title or content.
	Search string

	// Ordering is one of created_at, updated_at, title, optionally prefixed
	// with "-" for descending. Empty means newest first.
	Ordering string
}

// Comment is a user-authored reply attached to a post. Like posts, comments
// are owned by their author.
type Comment struct {
	CommentID int64 `json:"id"`
	PostID    int64 `json:"post"`
	AuthorID  int64 `json:"-"`

	Content string `json:"content" validate:"required"`

	Author *UserSummary `json:"author,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Comment model.
func (c Comment) TableName() string {
	return "comments"
}

// CommentUpdate is a sparse update document for a comment.
type CommentUpdate struct {
	Content *string `json:"content" validate:"omitempty,min=1"`
}
