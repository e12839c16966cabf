package seed

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"netgro/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Options controls how much random data a Factory generates.
type Options struct {
	Users        int
	PostsPerUser int
	MaxComments  int
	MaxLikes     int
	// MaxDays spreads creation times over the given number of past days.
	MaxDays int
	// Seed makes runs reproducible; zero picks a time based seed.
	Seed   int64
	DryRun bool
}

// Factory builds random users, posts, comments and likes and persists them
// through a Seeder.
type Factory struct {
	seeder *Seeder
	opts   Options
	faker  *gofakeit.Faker
}

// NewFactory creates a new Factory bound to seeder.
func NewFactory(seeder *Seeder, opts Options) *Factory {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{seeder: seeder, opts: opts, faker: gofakeit.New(seed)}
}

// BuildUser constructs a sample user without persisting it.
func (f *Factory) BuildUser(passHash string, overrides ...func(*models.User)) *models.User {
	name := f.faker.Name()
	user := &models.User{
		ID:       "u_" + uuid.NewString(),
		Name:     name,
		Email:    fmt.Sprintf("%s.%s@netgro.local", slug(name), f.faker.UUID()[:8]),
		PassHash: passHash,
		Headline: f.faker.JobTitle() + " at " + f.faker.Company(),
		Bio:      f.faker.Sentence(12),
		Skills: []string{
			f.faker.ProgrammingLanguage(),
			f.faker.ProgrammingLanguage(),
		},
		Education: []models.Education{{
			School: f.faker.City() + " University",
			Degree: "B.Sc " + f.faker.JobDescriptor(),
			Years:  fmt.Sprintf("%d–%d", 2016+f.faker.Number(0, 6), 2020+f.faker.Number(0, 6)),
		}},
		Experience: []models.Experience{{
			Title:   f.faker.JobTitle(),
			Company: f.faker.Company(),
			Years:   fmt.Sprint(2018 + f.faker.Number(0, 7)),
		}},
		Avatar:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.faker.UUID()),
		CreatedAt: f.pastTime(),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// BuildPost constructs a sample post by author without persisting it.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		ID:        "p_" + uuid.NewString(),
		UserID:    author.ID,
		Content:   f.faker.Paragraph(1, 3, 12, "\n"),
		Images:    []string{},
		CreatedAt: f.pastTime(),
		Likes:     []string{},
		Comments:  []models.Comment{},
	}
	if f.faker.Number(0, 3) == 0 {
		post.Images = append(post.Images, fmt.Sprintf("https://picsum.photos/seed/%s/800/600", f.faker.UUID()))
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// Run generates users and posts, then lets random users like and comment on
// the posts. In DryRun mode nothing is written.
func (f *Factory) Run(ctx context.Context) (Result, error) {
	var res Result

	passHash, err := f.seeder.hasher.Hash(ctx, DefaultPassword)
	if err != nil {
		return res, err
	}

	users := make([]*models.User, 0, f.opts.Users)
	for i := 0; i < f.opts.Users; i++ {
		users = append(users, f.BuildUser(passHash))
	}

	posts := make([]*models.Post, 0, f.opts.Users*f.opts.PostsPerUser)
	for _, u := range users {
		for j := 0; j < f.opts.PostsPerUser; j++ {
			posts = append(posts, f.BuildPost(u))
		}
	}
	for _, p := range posts {
		f.decorate(p, users)
	}
	slices.SortStableFunc(posts, func(a, b *models.Post) int { return a.CreatedAt.Compare(b.CreatedAt) })

	if f.opts.DryRun {
		for _, p := range posts {
			res.add(Result{Posts: 1, Comments: len(p.Comments), Likes: len(p.Likes)})
		}
		res.Users = len(users)
		log.Printf("[dry-run] Factory: %d users, %d posts (no writes)", res.Users, res.Posts)
		return res, nil
	}

	ids := map[string]string{}
	for _, u := range users {
		ownerID, created, err := f.seeder.createUser(ctx, u)
		if err != nil {
			return res, err
		}
		if created {
			res.Users++
		}
		if ownerID != u.ID {
			ids[u.ID] = ownerID
		}
	}
	for _, p := range posts {
		remapUsers(p, ids)
		if err := f.seeder.posts.Prepend(ctx, p); err != nil {
			return res, err
		}
		res.add(Result{Posts: 1, Comments: len(p.Comments), Likes: len(p.Likes)})
	}
	return res, nil
}

// decorate adds random likes and comments from users to p.
func (f *Factory) decorate(p *models.Post, users []*models.User) {
	if len(users) == 0 {
		return
	}
	likes := f.faker.Number(0, max(f.opts.MaxLikes, 0))
	for i := 0; i < likes; i++ {
		id := users[f.faker.Number(0, len(users)-1)].ID
		if !slices.Contains(p.Likes, id) {
			p.Likes = append(p.Likes, id)
		}
	}

	comments := f.faker.Number(0, max(f.opts.MaxComments, 0))
	at := p.CreatedAt
	for i := 0; i < comments; i++ {
		at = at.Add(time.Duration(f.faker.Number(1, 180)) * time.Minute)
		p.Comments = append(p.Comments, models.Comment{
			ID:        "c_" + uuid.NewString(),
			UserID:    users[f.faker.Number(0, len(users)-1)].ID,
			Content:   f.faker.Sentence(f.faker.Number(4, 14)),
			CreatedAt: at,
		})
	}
}

func (f *Factory) pastTime() time.Time {
	back := time.Duration(f.faker.Number(0, f.opts.MaxDays*24*60)) * time.Minute
	return time.Now().UTC().Add(-back).Truncate(time.Second)
}
