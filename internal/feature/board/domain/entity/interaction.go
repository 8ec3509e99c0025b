package entity

import "time"

// ReactionLike is the only reaction users can leave.
const ReactionLike = "like"

// Interaction records that a user liked a post.
// The (user_id, post_id) pair is unique.
type Interaction struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_interaction_user_post"`
	PostID   uint   `gorm:"not null;uniqueIndex:idx_interaction_user_post;index"`
	Reaction string `gorm:"size:10;not null;default:like"`

	CreatedAt time.Time

	Post *Post `gorm:"constraint:OnDelete:CASCADE"`
}

// Liker is a user who liked a post, in the order the likes were made.
type Liker struct {
	UserID   uint
	Username string
}

// PostSummary is a post as shown on the home feed.
type PostSummary struct {
	Post       Post
	Comments   []Comment
	LikedUsers []string
	Liked      bool
}
