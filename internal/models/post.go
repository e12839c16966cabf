package models

import (
	"slices"
	"time"
)

// MaxPostImages is the number of images kept on a post; extra attachments are dropped.
const MaxPostImages = 6

// Comment is a reply attached to exactly one post.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post represents a post in the NetGRO feed.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"createdAt"`
	// Likes holds the ids of users who liked the post; no duplicates.
	Likes    []string  `json:"likes"`
	Comments []Comment `json:"comments"`
}

// Clone returns a deep copy of the post.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	c.Images = slices.Clone(p.Images)
	c.Likes = slices.Clone(p.Likes)
	c.Comments = slices.Clone(p.Comments)
	return &c
}

// LikedBy reports whether userID is in the liker set.
func (p *Post) LikedBy(userID string) bool {
	return slices.Contains(p.Likes, userID)
}

// AuthorCard is the author information shown next to a post or comment.
type AuthorCard struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Headline string `json:"headline"`
	Avatar   string `json:"avatar"`
}

// CommentItem is a comment with its resolved author.
type CommentItem struct {
	Comment
	Author AuthorCard `json:"author"`
}

// FeedItem is the read model handed to the presentation layer for one post.
type FeedItem struct {
	Post          *Post         `json:"post"`
	Author        AuthorCard    `json:"author"`
	Comments      []CommentItem `json:"comments"`
	LikesCount    int           `json:"likes_count"`
	CommentsCount int           `json:"comments_count"`
	LikedByViewer bool          `json:"liked"`
	CanDelete     bool          `json:"can_delete"`
}
