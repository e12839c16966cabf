package router

import (
	"context"
	"testing"

	"netgro/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionStub struct{ userID string }

func (s *sessionStub) CurrentUserID(context.Context) (string, bool) {
	return s.userID, s.userID != ""
}

type sourceStub struct {
	posts []models.FeedItem
}

func (s *sourceStub) Feed(_ context.Context, _ string) []models.FeedItem { return s.posts }

func (s *sourceStub) FeedItem(_ context.Context, postID, _ string) (*models.FeedItem, error) {
	for i := range s.posts {
		if s.posts[i].Post.ID == postID {
			return &s.posts[i], nil
		}
	}
	return nil, models.NewNotFoundError("Post", postID)
}

func (s *sourceStub) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	if userID == "" {
		return &models.Profile{User: &models.User{ID: "u_me"}, Self: true}, nil
	}
	return &models.Profile{User: &models.User{ID: userID}}, nil
}

// recordingRenderer records every call as a short string.
type recordingRenderer struct {
	calls []string
}

func (r *recordingRenderer) RenderLanding(context.Context) error {
	r.calls = append(r.calls, "landing")
	return nil
}

func (r *recordingRenderer) RenderAuth(_ context.Context, mode AuthMode) error {
	r.calls = append(r.calls, "auth:"+string(mode))
	return nil
}

func (r *recordingRenderer) RenderFeed(_ context.Context, items []models.FeedItem) error {
	r.calls = append(r.calls, "feed")
	return nil
}

func (r *recordingRenderer) RenderProfile(_ context.Context, p *models.Profile) error {
	r.calls = append(r.calls, "profile:"+p.User.ID)
	return nil
}

func (r *recordingRenderer) RenderPost(_ context.Context, item *models.FeedItem) error {
	r.calls = append(r.calls, "post:"+item.Post.ID)
	return nil
}

func (r *recordingRenderer) Notify(_ context.Context, message string) {
	r.calls = append(r.calls, "notice:"+message)
}

func newTestRouter(userID string) (*Router, *sessionStub, *recordingRenderer) {
	session := &sessionStub{userID: userID}
	source := &sourceStub{posts: []models.FeedItem{{Post: &models.Post{ID: "p_1"}}}}
	renderer := &recordingRenderer{}
	return New(session, source, source, renderer), session, renderer
}

func TestRouter_NavigateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r, _, renderer := newTestRouter("u_me")

	st, err := r.Navigate(ctx, "feed")
	require.NoError(t, err)
	assert.Equal(t, PageFeed, st.Page)
	_, err = r.Navigate(ctx, "#feed")
	require.NoError(t, err)

	assert.Equal(t, []string{"feed"}, renderer.calls)
	assert.Equal(t, PageFeed, r.Current().Page)
}

func TestRouter_RedirectEmitsNoticeEveryTime(t *testing.T) {
	ctx := context.Background()
	r, _, renderer := newTestRouter("")

	st, err := r.Navigate(ctx, "feed")
	require.NoError(t, err)
	assert.Equal(t, State{Page: PageAuth, Mode: AuthLogin, Notice: SignInNotice}, st)

	_, err = r.Navigate(ctx, "me")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"notice:" + SignInNotice,
		"auth:login",
		"notice:" + SignInNotice,
	}, renderer.calls)
}

func TestRouter_ProfileRoutes(t *testing.T) {
	ctx := context.Background()
	r, _, renderer := newTestRouter("u_me")

	_, err := r.Navigate(ctx, "me")
	require.NoError(t, err)
	st, err := r.Navigate(ctx, "profile/u_me")
	require.NoError(t, err)
	assert.Empty(t, st.UserID)
	_, err = r.Navigate(ctx, "profile/u-002")
	require.NoError(t, err)

	assert.Equal(t, []string{"profile:u_me", "profile:u-002"}, renderer.calls)
}

func TestRouter_PostRoute(t *testing.T) {
	ctx := context.Background()
	r, _, renderer := newTestRouter("u_me")

	_, err := r.Navigate(ctx, "post/p_1")
	require.NoError(t, err)

	_, err = r.Navigate(ctx, "post/p_missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, "p_1", r.Current().PostID)

	st, err := r.Back(ctx)
	require.NoError(t, err)
	assert.Equal(t, PageFeed, st.Page)
	assert.Equal(t, []string{"post:p_1", "feed"}, renderer.calls)
}

func TestRouter_RefreshRerenders(t *testing.T) {
	ctx := context.Background()
	r, session, renderer := newTestRouter("u_me")

	_, err := r.Navigate(ctx, "feed")
	require.NoError(t, err)
	_, err = r.Refresh(ctx)
	require.NoError(t, err)

	session.userID = ""
	st, err := r.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, PageAuth, st.Page)

	assert.Equal(t, []string{"feed", "feed", "notice:" + SignInNotice, "auth:login"}, renderer.calls)
}

func TestRouter_StartsOnLanding(t *testing.T) {
	r, _, renderer := newTestRouter("")
	assert.Equal(t, PageLanding, r.Current().Page)

	_, err := r.Navigate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"landing"}, renderer.calls)
}
