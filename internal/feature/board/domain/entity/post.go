// Package entity defines the domain entities for the board feature.
package entity

import "time"

// MaxTitleLength and MaxCommentLength are counted in characters.
const (
	MaxTitleLength   = 140
	MaxCommentLength = 140
)

// Post is a text entry owned by one user. UserID never changes after creation.
type Post struct {
	ID      uint   `gorm:"primaryKey"`
	UserID  uint   `gorm:"index;not null"`
	Title   string `gorm:"size:140;not null"`
	Content string `gorm:"type:text;not null"`

	// AuthorName is filled by joined reads and never stored.
	AuthorName string `gorm:"->;-:migration"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether userID may edit or delete the post.
func (p *Post) OwnedBy(userID uint) bool {
	return p.UserID == userID
}

// Author is the read-only view of a user as seen by the board.
type Author struct {
	ID       uint
	Username string
}

// TableName maps Author onto the users table owned by the auth feature.
func (Author) TableName() string {
	return "users"
}
