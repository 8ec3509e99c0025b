package entity

import "time"

// Comment is a short reply to a post.
type Comment struct {
	ID     uint   `gorm:"primaryKey"`
	Body   string `gorm:"size:140;not null"`
	UserID uint   `gorm:"index;not null"`
	PostID uint   `gorm:"index;not null"`

	AuthorName string `gorm:"->;-:migration"`

	CreatedAt time.Time

	Post *Post `gorm:"constraint:OnDelete:CASCADE"`
}
