// Package dto defines the request and response bodies of the board endpoints.
package dto

import (
	"time"

	"postboard/internal/feature/board/domain/entity"
)

// PostReq is the body of /add_post.
type PostReq struct {
	Title   string `json:"title" form:"title" binding:"required,max=140"`
	Content string `json:"content" form:"content" binding:"required"`
}

// EditPostReq is the body of /post/:id/edit. It carries no binding rules so that
// existence and ownership are decided before the fields are validated.
type EditPostReq struct {
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
}

// CommentReq is the body of /post/:id/comment. Browsers post the field as
// "comment", API clients as "content". Emptiness is checked by the board rules.
type CommentReq struct {
	Content string `json:"content" form:"content"`
	Comment string `json:"comment" form:"comment"`
}

// Body returns whichever of the two fields was sent, preferring content.
func (r CommentReq) Body() string {
	if r.Content != "" {
		return r.Content
	}
	return r.Comment
}

type PostResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    uint      `json:"user_id"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	UserID    uint      `json:"user_id"`
	Author    string    `json:"author,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type LikerResponse struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// FeedItem is one post on the home feed.
type FeedItem struct {
	Post       PostResponse      `json:"post"`
	Comments   []CommentResponse `json:"comments"`
	LikedUsers []string          `json:"liked_users"`
	LikeCount  int               `json:"like_count"`
	Liked      bool              `json:"liked"`
}

type FeedResponse struct {
	Posts []FeedItem `json:"posts"`
}

type UserPostsResponse struct {
	UserID   uint           `json:"user_id"`
	Username string         `json:"username"`
	Posts    []PostResponse `json:"posts"`
}

type CommentsResponse struct {
	Post     PostResponse      `json:"post"`
	Comments []CommentResponse `json:"comments"`
}

type LikersResponse struct {
	PostID uint            `json:"post_id"`
	Count  int             `json:"count"`
	Likers []LikerResponse `json:"likers"`
}

// LikeResponse keeps the shape browsers already expect from /like/:id.
type LikeResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username,omitempty"`
	Error    string `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func FromPost(p *entity.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		UserID:    p.UserID,
		Author:    p.AuthorName,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func FromPosts(posts []entity.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, FromPost(&posts[i]))
	}
	return out
}

func FromComment(c *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Author:    c.AuthorName,
		Content:   c.Body,
		CreatedAt: c.CreatedAt,
	}
}

func FromComments(comments []entity.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, FromComment(&comments[i]))
	}
	return out
}

func FromLikers(likers []entity.Liker) []LikerResponse {
	out := make([]LikerResponse, 0, len(likers))
	for _, l := range likers {
		out = append(out, LikerResponse{UserID: l.UserID, Username: l.Username})
	}
	return out
}

func FromFeed(feed []entity.PostSummary) FeedResponse {
	items := make([]FeedItem, 0, len(feed))
	for i := range feed {
		s := &feed[i]
		liked := s.LikedUsers
		if liked == nil {
			liked = []string{}
		}
		items = append(items, FeedItem{
			Post:       FromPost(&s.Post),
			Comments:   FromComments(s.Comments),
			LikedUsers: liked,
			LikeCount:  len(liked),
			Liked:      s.Liked,
		})
	}
	return FeedResponse{Posts: items}
}
