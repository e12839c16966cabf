package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"netgro/internal/models"
	"netgro/internal/notifications"
	"netgro/internal/observability"
	"netgro/internal/repository"
)

// Author fallbacks for ids that no longer resolve to a user.
const (
	deletedAuthorName = "Deleted"
	unknownAuthorName = "Unknown"
)

// PostService owns the feed: posts with their likes and comments.
type PostService struct {
	posts    repository.PostRepository
	users    repository.UserRepository
	notifier *notifications.Notifier
}

type CreatePostInput struct {
	AuthorID string
	Content  string
	Images   []string
}

type CreateCommentInput struct {
	PostID   string
	AuthorID string
	Content  string
}

type DeletePostInput struct {
	PostID      string
	RequesterID string
}

func NewPostService(
	posts repository.PostRepository,
	users repository.UserRepository,
	notifier *notifications.Notifier,
) *PostService {
	return &PostService{
		posts:    posts,
		users:    users,
		notifier: notifier,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (post *models.Post, err error) {
	ctx, span := observability.TraceServiceCall(ctx, "PostService", "CreatePost")
	defer func() { observability.EndSpan(span, err) }()

	if in.AuthorID == "" {
		return nil, models.ErrUnauthenticated
	}

	content := strings.TrimSpace(in.Content)
	images := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		if strings.TrimSpace(img) != "" {
			images = append(images, img)
		}
	}
	if content == "" && len(images) == 0 {
		return nil, models.ErrEmptyPost
	}
	if len(images) > models.MaxPostImages {
		images = images[:models.MaxPostImages]
	}

	post = &models.Post{
		ID:        newID(postIDPrefix),
		UserID:    in.AuthorID,
		Content:   content,
		Images:    images,
		CreatedAt: nowUTC(),
		Likes:     []string{},
		Comments:  []models.Comment{},
	}
	if err := s.posts.Prepend(ctx, post); err != nil {
		return nil, err
	}

	observability.PostMutations.WithLabelValues("create").Inc()
	publish(ctx, s.notifier, "PostService", notifications.Event{Type: notifications.EventPostsChanged, UserID: in.AuthorID, PostID: post.ID, Action: "create"})
	return post.Clone(), nil
}

// ToggleLike flips userID's membership in the post's liker set. A missing post
// is ignored.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) error {
	if userID == "" {
		return models.ErrUnauthenticated
	}

	kind := "like"
	_, err := s.posts.Update(ctx, postID, func(p *models.Post) error {
		if i := slices.Index(p.Likes, userID); i >= 0 {
			p.Likes = slices.Delete(p.Likes, i, i+1)
			kind = "unlike"
		} else {
			p.Likes = append(p.Likes, userID)
		}
		return nil
	})
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	observability.PostMutations.WithLabelValues(kind).Inc()
	publish(ctx, s.notifier, "PostService", notifications.Event{Type: notifications.EventPostsChanged, UserID: userID, PostID: postID, Action: kind})
	return nil
}

// AddComment appends a comment to the post. A missing post is ignored.
func (s *PostService) AddComment(ctx context.Context, in CreateCommentInput) error {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return models.ErrEmptyComment
	}
	if in.AuthorID == "" {
		return models.ErrUnauthenticated
	}

	_, err := s.posts.Update(ctx, in.PostID, func(p *models.Post) error {
		p.Comments = append(p.Comments, models.Comment{
			ID:        newID(commentIDPrefix),
			UserID:    in.AuthorID,
			Content:   content,
			CreatedAt: nowUTC(),
		})
		return nil
	})
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	observability.PostMutations.WithLabelValues("comment").Inc()
	publish(ctx, s.notifier, "PostService", notifications.Event{Type: notifications.EventPostsChanged, UserID: in.AuthorID, PostID: in.PostID, Action: "comment"})
	return nil
}

// DeletePost removes a post and its comments. Only the author may delete it.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	if in.RequesterID == "" {
		return models.ErrUnauthenticated
	}

	post, err := s.posts.GetByID(ctx, in.PostID)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if post.UserID != in.RequesterID {
		return models.ErrForbidden
	}

	if err := s.posts.Delete(ctx, in.PostID); err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}

	observability.PostMutations.WithLabelValues("delete").Inc()
	publish(ctx, s.notifier, "PostService", notifications.Event{Type: notifications.EventPostsChanged, UserID: in.RequesterID, PostID: in.PostID, Action: "delete"})
	return nil
}

// ListPosts returns every post, newest first.
func (s *PostService) ListPosts(ctx context.Context) []*models.Post {
	return s.posts.List(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *PostService) GetUserPosts(ctx context.Context, userID string) []*models.Post {
	return s.posts.GetByUserID(ctx, userID)
}

// Feed returns the read model for every post as seen by viewerID, which may be empty.
func (s *PostService) Feed(ctx context.Context, viewerID string) []models.FeedItem {
	authors := s.authorIndex(ctx)
	posts := s.posts.List(ctx)

	items := make([]models.FeedItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, buildFeedItem(p, viewerID, authors))
	}
	return items
}

// FeedItem returns the read model of a single post.
func (s *PostService) FeedItem(ctx context.Context, postID, viewerID string) (*models.FeedItem, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	item := buildFeedItem(post, viewerID, s.authorIndex(ctx))
	return &item, nil
}

func (s *PostService) authorIndex(ctx context.Context) map[string]*models.User {
	users := s.users.List(ctx)
	index := make(map[string]*models.User, len(users))
	for _, u := range users {
		index[u.ID] = u
	}
	return index
}

func buildFeedItem(p *models.Post, viewerID string, authors map[string]*models.User) models.FeedItem {
	comments := make([]models.CommentItem, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, models.CommentItem{
			Comment: c,
			Author:  authorCard(c.UserID, authors, unknownAuthorName),
		})
	}
	return models.FeedItem{
		Post:          p,
		Author:        authorCard(p.UserID, authors, deletedAuthorName),
		Comments:      comments,
		LikesCount:    len(p.Likes),
		CommentsCount: len(p.Comments),
		LikedByViewer: viewerID != "" && p.LikedBy(viewerID),
		CanDelete:     viewerID != "" && viewerID == p.UserID,
	}
}

func authorCard(id string, authors map[string]*models.User, fallback string) models.AuthorCard {
	u, ok := authors[id]
	if !ok {
		return models.AuthorCard{ID: id, Name: fallback}
	}
	return models.AuthorCard{
		ID:       u.ID,
		Name:     u.DisplayName(),
		Headline: u.Headline,
		Avatar:   u.Avatar,
	}
}
