// Package router maps route tokens to pages and drives the renderer.
package router

import (
	"strings"
)

// Page is a visible page of the application.
type Page string

const (
	PageLanding Page = "landing"
	PageAuth    Page = "auth"
	PageFeed    Page = "feed"
	PageProfile Page = "profile"
	PagePost    Page = "post"
)

// AuthMode selects the form shown on the auth page.
type AuthMode string

const (
	AuthLogin    AuthMode = "login"
	AuthRegister AuthMode = "register"
)

// SignInNotice is shown when a protected page is requested without a session.
const SignInNotice = "Please sign in first."

// State is the outcome of resolving a route token.
type State struct {
	Page Page
	// Mode is set for PageAuth.
	Mode AuthMode
	// UserID is set for another user's profile; empty means the signed-in user.
	UserID string
	// PostID is set for PagePost.
	PostID string
	// Notice is a user-visible message attached to a redirect.
	Notice string
}

// Token returns the canonical route token of the state.
func (s State) Token() string {
	switch s.Page {
	case PageAuth:
		return "auth/" + string(s.Mode)
	case PageProfile:
		if s.UserID != "" {
			return "profile/" + s.UserID
		}
		return "profile"
	case PagePost:
		return "post/" + s.PostID
	default:
		return string(s.Page)
	}
}

// SamePage reports whether both states show the same page, ignoring notices.
func (s State) SamePage(o State) bool {
	return s.Page == o.Page && s.Mode == o.Mode && s.UserID == o.UserID && s.PostID == o.PostID
}

// Split breaks a token such as "#auth/register" into its head and sub segment.
func Split(token string) (head, sub string) {
	token = strings.TrimSpace(token)
	token = strings.TrimPrefix(token, "#")
	token = strings.TrimPrefix(token, "/")
	head, sub, _ = strings.Cut(token, "/")
	if i := strings.Index(sub, "/"); i >= 0 {
		sub = sub[:i]
	}
	return strings.ToLower(head), sub
}

// Resolve is the transition function from a route token and the
// authentication flag to the page to show. It has no side effects.
func Resolve(authenticated bool, token string) State {
	head, sub := Split(token)

	switch head {
	case "auth":
		if strings.EqualFold(sub, string(AuthRegister)) {
			return State{Page: PageAuth, Mode: AuthRegister}
		}
		return State{Page: PageAuth, Mode: AuthLogin}
	case "feed":
		if !authenticated {
			return signInRedirect()
		}
		return State{Page: PageFeed}
	case "profile", "me":
		if !authenticated {
			return signInRedirect()
		}
		return State{Page: PageProfile, UserID: sub}
	case "post":
		if !authenticated {
			return signInRedirect()
		}
		if sub == "" {
			return State{Page: PageFeed}
		}
		return State{Page: PagePost, PostID: sub}
	default:
		return State{Page: PageLanding}
	}
}

func signInRedirect() State {
	return State{Page: PageAuth, Mode: AuthLogin, Notice: SignInNotice}
}
