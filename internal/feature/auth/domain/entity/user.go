// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is used to log in. It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:64;not null"`

	// Username is the public handle shown next to posts, comments and likes.
	// It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:64;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext passwords.
	Password string `gorm:"size:128;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
