package models

import "time"

// Role controls what a user may do with catalog resources.
// Social resources (posts, comments) are always governed by ownership,
// not by role.
type Role string

const (
	// RoleMember is the default role: read everything, write own social content.
	RoleMember Role = "member"

	// RoleEditor may additionally create and edit catalog authors and books.
	RoleEditor Role = "editor"

	// RoleAdmin may additionally delete catalog authors and books.
	RoleAdmin Role = "admin"
)

// CanEditCatalog reports whether the role is allowed to create or update
// catalog resources.
func (r Role) CanEditCatalog() bool {
	return r == RoleEditor || r == RoleAdmin
}

// CanDeleteCatalog reports whether the role is allowed to delete catalog
// resources.
func (r Role) CanDeleteCatalog() bool {
	return r == RoleAdmin
}

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique login identifier.
	Username string `json:"username" validate:"required,min=3,max=150,username"`

	// Email is optional and may be shown on the public profile.
	Email string `json:"email" validate:"omitempty,email"`

	// Password carries the plaintext password on register/login requests only.
	// It is never persisted and never serialized in responses because
	// handlers zero it before writing a user back.
	Password string `json:"password,omitempty" validate:"required,min=8,max=128"`

	// PasswordHash is the bcrypt hash of the password.
	// It is not exposed via JSON and is used only at the persistence layer.
	PasswordHash string `json:"-"`

	// Role determines catalog permissions. Defaults to RoleMember.
	Role Role `json:"role"`

	// Bio is a free-form profile text, at most 500 characters.
	Bio string `json:"bio,omitempty" validate:"max=500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Summary returns the compact representation embedded in posts, comments
// and profiles.
func (u User) Summary() UserSummary {
	return UserSummary{UserID: u.UserID, Username: u.Username, Email: u.Email}
}

// UserSummary is the compact user shape embedded in other resources.
type UserSummary struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Profile is the public profile view of a user: identity, bio and
// follow-graph counters.
type Profile struct {
	User           UserSummary `json:"user"`
	Bio            string      `json:"bio"`
	FollowersCount int64       `json:"followers_count"`
	FollowingCount int64       `json:"following_count"`
	CreatedAt      time.Time   `json:"created_at"`
}
