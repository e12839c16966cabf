// Package models contains data structures for the application's domain models.
package models

import (
	"slices"
	"time"
)

// Education is one entry of a user's education history. All fields are free text.
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Years  string `json:"years"`
}

// IsBlank reports whether every field is empty.
func (e Education) IsBlank() bool {
	return e.School == "" && e.Degree == "" && e.Years == ""
}

// Experience is one entry of a user's work history. All fields are free text.
type Experience struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	Years   string `json:"years"`
}

// IsBlank reports whether every field is empty.
func (e Experience) IsBlank() bool {
	return e.Title == "" && e.Company == "" && e.Years == ""
}

// User represents a registered NetGRO member.
//
// JSON field names follow the persisted storage layout and must not be renamed:
// the stored documents carry no schema version.
type User struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	PassHash   string       `json:"passHash"`
	Headline   string       `json:"headline"`
	Bio        string       `json:"bio"`
	Skills     []string     `json:"skills"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Avatar     string       `json:"avatar"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Skills = slices.Clone(u.Skills)
	c.Education = slices.Clone(u.Education)
	c.Experience = slices.Clone(u.Experience)
	return &c
}

// Public returns a copy with the password hash stripped.
func (u *User) Public() *User {
	c := u.Clone()
	if c != nil {
		c.PassHash = ""
	}
	return c
}

// DisplayName returns the name, falling back to the email address.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Profile is the public view of a user together with their posts.
type Profile struct {
	User  *User   `json:"user"`
	Posts []*Post `json:"posts"`
	Self  bool    `json:"self"`
}
