package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"netgro/internal/models"
	"netgro/internal/notifications"
	"netgro/internal/repository"
	"netgro/internal/validation"
)

// ProfileService edits the signed-in user's own profile.
type ProfileService struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	sessions repository.SessionRepository
	notifier *notifications.Notifier
}

type SaveProfileInput struct {
	Name     string
	Headline string
	Bio      string
	// Skills is a comma separated list.
	Skills string
	// Avatar replaces the stored image reference unless blank.
	Avatar string
}

func NewProfileService(
	users repository.UserRepository,
	posts repository.PostRepository,
	sessions repository.SessionRepository,
	notifier *notifications.Notifier,
) *ProfileService {
	return &ProfileService{
		users:    users,
		posts:    posts,
		sessions: sessions,
		notifier: notifier,
	}
}

// currentUserID returns the session user, failing when no valid session exists.
func (s *ProfileService) currentUserID(ctx context.Context) (string, error) {
	id, ok := s.sessions.Current(ctx)
	if !ok {
		return "", models.ErrUnauthenticated
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return "", models.ErrUnauthenticated
	}
	return id, nil
}

func (s *ProfileService) SaveProfile(ctx context.Context, in SaveProfileInput) (*models.User, error) {
	id, err := s.currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Update(ctx, id, func(u *models.User) error {
		u.Name = strings.TrimSpace(in.Name)
		u.Headline = strings.TrimSpace(in.Headline)
		u.Bio = strings.TrimSpace(in.Bio)
		u.Skills = validation.SplitSkills(in.Skills)
		if avatar := strings.TrimSpace(in.Avatar); avatar != "" {
			u.Avatar = avatar
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.changed(ctx, id, "save")
	return user.Public(), nil
}

// AddEducation appends a trimmed record. A record with every field blank is ignored.
func (s *ProfileService) AddEducation(ctx context.Context, e models.Education) error {
	id, err := s.currentUserID(ctx)
	if err != nil {
		return err
	}
	e = models.Education{
		School: strings.TrimSpace(e.School),
		Degree: strings.TrimSpace(e.Degree),
		Years:  strings.TrimSpace(e.Years),
	}
	if e.IsBlank() {
		return nil
	}

	if _, err := s.users.Update(ctx, id, func(u *models.User) error {
		u.Education = append(u.Education, e)
		return nil
	}); err != nil {
		return err
	}
	s.changed(ctx, id, "add_education")
	return nil
}

// RemoveEducation removes the record at index. An out-of-range index is ignored.
func (s *ProfileService) RemoveEducation(ctx context.Context, index int) error {
	id, err := s.currentUserID(ctx)
	if err != nil {
		return err
	}
	removed := false
	if _, err := s.users.Update(ctx, id, func(u *models.User) error {
		if index < 0 || index >= len(u.Education) {
			return errNothingToRemove
		}
		u.Education = slices.Delete(u.Education, index, index+1)
		removed = true
		return nil
	}); err != nil && !errors.Is(err, errNothingToRemove) {
		return err
	}
	if removed {
		s.changed(ctx, id, "remove_education")
	}
	return nil
}

// AddExperience appends a trimmed record. A record with every field blank is ignored.
func (s *ProfileService) AddExperience(ctx context.Context, e models.Experience) error {
	id, err := s.currentUserID(ctx)
	if err != nil {
		return err
	}
	e = models.Experience{
		Title:   strings.TrimSpace(e.Title),
		Company: strings.TrimSpace(e.Company),
		Years:   strings.TrimSpace(e.Years),
	}
	if e.IsBlank() {
		return nil
	}

	if _, err := s.users.Update(ctx, id, func(u *models.User) error {
		u.Experience = append(u.Experience, e)
		return nil
	}); err != nil {
		return err
	}
	s.changed(ctx, id, "add_experience")
	return nil
}

// RemoveExperience removes the record at index. An out-of-range index is ignored.
func (s *ProfileService) RemoveExperience(ctx context.Context, index int) error {
	id, err := s.currentUserID(ctx)
	if err != nil {
		return err
	}
	removed := false
	if _, err := s.users.Update(ctx, id, func(u *models.User) error {
		if index < 0 || index >= len(u.Experience) {
			return errNothingToRemove
		}
		u.Experience = slices.Delete(u.Experience, index, index+1)
		removed = true
		return nil
	}); err != nil && !errors.Is(err, errNothingToRemove) {
		return err
	}
	if removed {
		s.changed(ctx, id, "remove_experience")
	}
	return nil
}

// GetProfile returns the public profile of userID together with their posts.
// An empty userID means the signed-in user.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	viewerID, _ := s.sessions.Current(ctx)
	if userID == "" {
		id, err := s.currentUserID(ctx)
		if err != nil {
			return nil, err
		}
		userID = id
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.Profile{
		User:  user.Public(),
		Posts: s.posts.GetByUserID(ctx, userID),
		Self:  viewerID == userID,
	}, nil
}

func (s *ProfileService) changed(ctx context.Context, userID, action string) {
	publish(ctx, s.notifier, "ProfileService", notifications.Event{Type: notifications.EventProfileChanged, UserID: userID, Action: action})
}
