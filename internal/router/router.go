package router

import (
	"context"
	"sync"

	"netgro/internal/models"
)

// Session reports the signed-in user id. service.AuthService implements it.
type Session interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

// FeedSource provides feed read models. service.PostService implements it.
type FeedSource interface {
	Feed(ctx context.Context, viewerID string) []models.FeedItem
	FeedItem(ctx context.Context, postID, viewerID string) (*models.FeedItem, error)
}

// ProfileSource provides profile read models. service.ProfileService implements it.
type ProfileSource interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
}

// Renderer is the presentation layer. It only receives read-only snapshots.
type Renderer interface {
	RenderLanding(ctx context.Context) error
	RenderAuth(ctx context.Context, mode AuthMode) error
	RenderFeed(ctx context.Context, items []models.FeedItem) error
	RenderProfile(ctx context.Context, profile *models.Profile) error
	RenderPost(ctx context.Context, item *models.FeedItem) error
	Notify(ctx context.Context, message string)
}

// Router holds the current page and runs the enter action of each page.
type Router struct {
	session  Session
	feed     FeedSource
	profiles ProfileSource
	renderer Renderer

	mu       sync.Mutex
	current  State
	rendered bool
}

func New(session Session, feed FeedSource, profiles ProfileSource, renderer Renderer) *Router {
	return &Router{
		session:  session,
		feed:     feed,
		profiles: profiles,
		renderer: renderer,
		current:  State{Page: PageLanding},
	}
}

// Navigate resolves token and renders the resulting page. Navigating to the
// page already shown does not render again; a sign-in notice is emitted on
// every redirect.
func (r *Router) Navigate(ctx context.Context, token string) (State, error) {
	return r.navigate(ctx, token, false)
}

// Refresh re-resolves and re-renders the current page, for example after the
// data behind it changed.
func (r *Router) Refresh(ctx context.Context) (State, error) {
	r.mu.Lock()
	token := r.current.Token()
	r.mu.Unlock()
	return r.navigate(ctx, token, true)
}

// Back always returns to the feed.
func (r *Router) Back(ctx context.Context) (State, error) {
	return r.Navigate(ctx, string(PageFeed))
}

// Current returns the page currently shown.
func (r *Router) Current() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Router) navigate(ctx context.Context, token string, force bool) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	viewerID, authenticated := r.session.CurrentUserID(ctx)
	next := Resolve(authenticated, token)
	if next.Page == PageProfile && next.UserID == viewerID {
		next.UserID = ""
	}

	if next.Notice != "" {
		r.renderer.Notify(ctx, next.Notice)
	}
	if !force && r.rendered && r.current.SamePage(next) {
		return r.current, nil
	}

	if err := r.enter(ctx, next, viewerID); err != nil {
		return r.current, err
	}
	r.current = next
	r.rendered = true
	return next, nil
}

func (r *Router) enter(ctx context.Context, st State, viewerID string) error {
	switch st.Page {
	case PageAuth:
		return r.renderer.RenderAuth(ctx, st.Mode)
	case PageFeed:
		return r.renderer.RenderFeed(ctx, r.feed.Feed(ctx, viewerID))
	case PageProfile:
		profile, err := r.profiles.GetProfile(ctx, st.UserID)
		if err != nil {
			return err
		}
		return r.renderer.RenderProfile(ctx, profile)
	case PagePost:
		item, err := r.feed.FeedItem(ctx, st.PostID, viewerID)
		if err != nil {
			return err
		}
		return r.renderer.RenderPost(ctx, item)
	default:
		return r.renderer.RenderLanding(ctx)
	}
}
