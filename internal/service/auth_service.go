package service

import (
	"context"
	"errors"
	"strings"

	"netgro/internal/models"
	"netgro/internal/notifications"
	"netgro/internal/observability"
	"netgro/internal/repository"
	"netgro/internal/security"
	"netgro/internal/validation"
)

// Demo account created on first boot.
const (
	DemoUserID       = "u_demo"
	DemoUserEmail    = "demo@netgro.local"
	DemoUserPassword = "demo123"
)

// AuthService registers and authenticates users and owns the session pointer.
type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	hasher   security.PasswordHasher
	notifier *notifications.Notifier
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Headline string
	// Avatar is an image reference (data URL or external URL). Optional.
	Avatar string
}

type LoginInput struct {
	Email    string
	Password string
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	hasher security.PasswordHasher,
	notifier *notifications.Notifier,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		notifier: notifier,
	}
}

// IsAuthenticated reports whether a session is set and still points at an existing user.
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	return s.CurrentUser(ctx) != nil
}

// CurrentUser returns the signed-in user without its password hash, or nil.
func (s *AuthService) CurrentUser(ctx context.Context) *models.User {
	id, ok := s.sessions.Current(ctx)
	if !ok {
		return nil
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	return user.Public()
}

// CurrentUserID returns the session user id when the session is valid.
func (s *AuthService) CurrentUserID(ctx context.Context) (string, bool) {
	if u := s.CurrentUser(ctx); u != nil {
		return u.ID, true
	}
	return "", false
}

// GetUser returns the public view of any user.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (user *models.User, err error) {
	ctx, span := observability.TraceServiceCall(ctx, "AuthService", "Register")
	defer func() {
		observability.RecordAuth("register", err)
		observability.EndSpan(span, err)
	}()

	email := validation.NormalizeEmail(in.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, models.ErrDuplicateEmail
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	passHash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, err
	}

	user = &models.User{
		ID:         newID(userIDPrefix),
		Name:       strings.TrimSpace(in.Name),
		Email:      email,
		PassHash:   passHash,
		Headline:   strings.TrimSpace(in.Headline),
		Skills:     []string{},
		Education:  []models.Education{},
		Experience: []models.Experience{},
		Avatar:     in.Avatar,
		CreatedAt:  nowUTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	// The user list is already written; a failure here leaves a registered
	// account without a session, which a later login recovers.
	if err := s.sessions.Set(ctx, user.ID); err != nil {
		return nil, err
	}

	structuredLogger.LogServiceCall(ctx, "AuthService", "Register", map[string]interface{}{"user_id": user.ID})
	publish(ctx, s.notifier, "AuthService", notifications.Event{Type: notifications.EventSessionChanged, UserID: user.ID, Action: "register"})
	return user.Public(), nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (user *models.User, err error) {
	ctx, span := observability.TraceServiceCall(ctx, "AuthService", "Login")
	defer func() {
		observability.RecordAuth("login", err)
		observability.EndSpan(span, err)
	}()

	email := validation.NormalizeEmail(in.Email)
	user, err = s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	ok, err := s.hasher.Verify(ctx, in.Password, user.PassHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.ErrInvalidCredentials
	}

	if err := s.sessions.Set(ctx, user.ID); err != nil {
		return nil, err
	}

	structuredLogger.LogServiceCall(ctx, "AuthService", "Login", map[string]interface{}{"user_id": user.ID})
	publish(ctx, s.notifier, "AuthService", notifications.Event{Type: notifications.EventSessionChanged, UserID: user.ID, Action: "login"})
	return user.Public(), nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	userID, _ := s.sessions.Current(ctx)
	if err := s.sessions.Clear(ctx); err != nil {
		return err
	}
	publish(ctx, s.notifier, "AuthService", notifications.Event{Type: notifications.EventSessionChanged, UserID: userID, Action: "logout"})
	return nil
}

// EnsureDemoUser creates the demo account when no user exists yet. It reports
// whether the account was created.
func (s *AuthService) EnsureDemoUser(ctx context.Context) (bool, error) {
	if s.users.Count(ctx) > 0 {
		return false, nil
	}

	passHash, err := s.hasher.Hash(ctx, DemoUserPassword)
	if err != nil {
		return false, err
	}
	demo := &models.User{
		ID:         DemoUserID,
		Name:       "Demo User",
		Email:      DemoUserEmail,
		PassHash:   passHash,
		Headline:   "Aspiring Developer",
		Bio:        "This is a demo account.",
		Skills:     []string{"JavaScript", "HTML", "CSS"},
		Education:  []models.Education{{School: "Example University", Degree: "B.Tech CSE", Years: "2023–2027"}},
		Experience: []models.Experience{{Title: "Intern", Company: "Acme", Years: "2024"}},
		CreatedAt:  nowUTC(),
	}
	if err := s.users.Create(ctx, demo); err != nil {
		return false, err
	}
	structuredLogger.LogServiceCall(ctx, "AuthService", "EnsureDemoUser", map[string]interface{}{"user_id": demo.ID})
	return true, nil
}
