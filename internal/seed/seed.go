package seed

import (
	"context"
	"errors"
	"log"
	"slices"

	"netgro/internal/models"
	"netgro/internal/repository"
	"netgro/internal/security"
	"netgro/internal/validation"
)

// DefaultPassword is shared by every generated user.
const DefaultPassword = "password123"

// Result counts what a seeding run created.
type Result struct {
	Users    int
	Posts    int
	Comments int
	Likes    int
}

func (r *Result) add(o Result) {
	r.Users += o.Users
	r.Posts += o.Posts
	r.Comments += o.Comments
	r.Likes += o.Likes
}

// Seeder writes fixtures and generated data through the repositories.
type Seeder struct {
	users  repository.UserRepository
	posts  repository.PostRepository
	hasher security.PasswordHasher
}

func NewSeeder(users repository.UserRepository, posts repository.PostRepository, hasher security.PasswordHasher) *Seeder {
	return &Seeder{users: users, posts: posts, hasher: hasher}
}

// ApplyFixture stores the fixture's users and posts. Records whose id (or, for
// users, email) already exists are skipped, so applying twice is harmless.
// Posts are inserted oldest first so the feed stays newest first.
func (s *Seeder) ApplyFixture(ctx context.Context, f *Fixture) (Result, error) {
	var res Result

	password := f.Password
	if password == "" {
		password = DefaultPassword
	}
	passHash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return res, err
	}

	// Fixture users whose email is already registered map onto that account.
	ids := map[string]string{}
	for _, fu := range f.Users {
		user := &models.User{
			ID:         fu.ID,
			Name:       fu.Name,
			Email:      validation.NormalizeEmail(fu.Email),
			PassHash:   passHash,
			Headline:   fu.Headline,
			Bio:        fu.Bio,
			Skills:     nonNil(fu.Skills),
			Education:  nonNil(fu.Education),
			Experience: nonNil(fu.Experience),
			Avatar:     fu.Avatar,
			CreatedAt:  nowUTC(),
		}
		ownerID, created, err := s.createUser(ctx, user)
		if err != nil {
			return res, err
		}
		if created {
			res.Users++
		}
		if ownerID != fu.ID {
			ids[fu.ID] = ownerID
		}
	}

	posts := slices.Clone(f.Posts)
	slices.SortStableFunc(posts, func(a, b FixturePost) int { return a.CreatedAt.Compare(b.CreatedAt) })
	for _, fp := range posts {
		if _, err := s.posts.GetByID(ctx, fp.ID); err == nil {
			continue
		}
		post := fp.toPost()
		remapUsers(post, ids)
		if err := s.posts.Prepend(ctx, post); err != nil {
			return res, err
		}
		res.add(Result{Posts: 1, Comments: len(post.Comments), Likes: len(post.Likes)})
	}

	log.Printf("Seeded fixture: %d users, %d posts, %d comments, %d likes", res.Users, res.Posts, res.Comments, res.Likes)
	return res, nil
}

// createUser stores user unless its id or email is taken. It returns the id of
// the account that ends up owning the email.
func (s *Seeder) createUser(ctx context.Context, user *models.User) (string, bool, error) {
	if _, err := s.users.GetByID(ctx, user.ID); err == nil {
		return user.ID, false, nil
	}
	err := s.users.Create(ctx, user)
	if errors.Is(err, models.ErrDuplicateEmail) {
		existing, err := s.users.GetByEmail(ctx, user.Email)
		if err != nil {
			return "", false, err
		}
		return existing.ID, false, nil
	}
	if err != nil {
		return "", false, err
	}
	return user.ID, true, nil
}

// remapUsers rewrites the author, liker and commenter ids of p through ids.
// Likes that collapse onto one account are kept once.
func remapUsers(p *models.Post, ids map[string]string) {
	if len(ids) == 0 {
		return
	}
	if id, ok := ids[p.UserID]; ok {
		p.UserID = id
	}
	likes := make([]string, 0, len(p.Likes))
	for _, l := range p.Likes {
		if id, ok := ids[l]; ok {
			l = id
		}
		if !slices.Contains(likes, l) {
			likes = append(likes, l)
		}
	}
	p.Likes = likes
	for i := range p.Comments {
		if id, ok := ids[p.Comments[i].UserID]; ok {
			p.Comments[i].UserID = id
		}
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
