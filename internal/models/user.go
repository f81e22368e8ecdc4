package models

import (
	"time"
)

// Roles a user account can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserDB represents a user record in the database.
// The password hash never leaves the repository/service layer.
type UserDB struct {
	UserID       int64     `db:"user_id"`       // Primary key
	Username     string    `db:"username"`      // Display name
	Email        string    `db:"email"`         // Unique email
	PasswordHash string    `db:"password_hash"` // bcrypt hash
	Role         string    `db:"role"`          // "user" or "admin"
	CreatedAt    time.Time `db:"created_at"`    // Registration timestamp
}
