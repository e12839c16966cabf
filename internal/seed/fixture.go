// Package seed provides helpers to create demo data in the store. These
// helpers are intended for development and testing only.
package seed

import (
	_ "embed"
	"fmt"
	"slices"
	"time"

	"netgro/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed educonnect.yml
var eduConnectYAML []byte

// Fixture is a static dataset of users and posts.
type Fixture struct {
	Password string        `yaml:"password"`
	Users    []FixtureUser `yaml:"users"`
	Posts    []FixturePost `yaml:"posts"`
}

type FixtureUser struct {
	ID         string              `yaml:"id"`
	Name       string              `yaml:"name"`
	Email      string              `yaml:"email"`
	Headline   string              `yaml:"headline"`
	Bio        string              `yaml:"bio"`
	Avatar     string              `yaml:"avatar"`
	Skills     []string            `yaml:"skills"`
	Education  []models.Education  `yaml:"education"`
	Experience []models.Experience `yaml:"experience"`
}

type FixturePost struct {
	ID        string           `yaml:"id"`
	AuthorID  string           `yaml:"author"`
	Content   string           `yaml:"content"`
	Images    []string         `yaml:"images"`
	CreatedAt time.Time        `yaml:"created_at"`
	Likes     []string         `yaml:"likes"`
	Comments  []FixtureComment `yaml:"comments"`
}

type FixtureComment struct {
	ID        string    `yaml:"id"`
	AuthorID  string    `yaml:"author"`
	Content   string    `yaml:"content"`
	CreatedAt time.Time `yaml:"created_at"`
}

// EduConnect returns the embedded EduConnect dataset.
func EduConnect() (*Fixture, error) {
	return ParseFixture(eduConnectYAML)
}

// ParseFixture decodes and checks a YAML fixture. Post authors, likers and
// comment authors must reference users of the fixture.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	ids := make(map[string]bool, len(f.Users))
	for _, u := range f.Users {
		if u.ID == "" || u.Email == "" {
			return nil, fmt.Errorf("fixture user %q needs an id and an email", u.Name)
		}
		ids[u.ID] = true
	}
	for _, p := range f.Posts {
		if !ids[p.AuthorID] {
			return nil, fmt.Errorf("post %s: unknown author %q", p.ID, p.AuthorID)
		}
		for _, l := range p.Likes {
			if !ids[l] {
				return nil, fmt.Errorf("post %s: unknown liker %q", p.ID, l)
			}
		}
		for _, c := range p.Comments {
			if !ids[c.AuthorID] {
				return nil, fmt.Errorf("comment %s: unknown author %q", c.ID, c.AuthorID)
			}
		}
	}
	return &f, nil
}

// toPost converts a fixture post into the persisted model, oldest comments first.
func (p FixturePost) toPost() *models.Post {
	post := &models.Post{
		ID:        p.ID,
		UserID:    p.AuthorID,
		Content:   p.Content,
		Images:    []string{},
		CreatedAt: p.CreatedAt.UTC(),
		Likes:     []string{},
		Comments:  []models.Comment{},
	}
	if len(p.Images) > 0 {
		post.Images = slices.Clone(p.Images[:min(len(p.Images), models.MaxPostImages)])
	}
	for _, l := range p.Likes {
		if !slices.Contains(post.Likes, l) {
			post.Likes = append(post.Likes, l)
		}
	}
	comments := slices.Clone(p.Comments)
	slices.SortStableFunc(comments, func(a, b FixtureComment) int { return a.CreatedAt.Compare(b.CreatedAt) })
	for _, c := range comments {
		post.Comments = append(post.Comments, models.Comment{
			ID:        c.ID,
			UserID:    c.AuthorID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt.UTC(),
		})
	}
	return post
}
