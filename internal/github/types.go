package github

import (
	"time"

	gh "github.com/google/go-github/v72/github"
)

type User struct {
	Login       string    `json:"username"`
	Name        string    `json:"name,omitempty"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Repository is the subset of repository metadata used for profile analysis.
// Empty Description or Language means the field was absent; a zero UpdatedAt
// means the timestamp was missing.
type Repository struct {
	Name        string    `json:"name"`
	Owner       string    `json:"-"`
	Description string    `json:"description,omitempty"`
	Language    string    `json:"language,omitempty"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	UpdatedAt   time.Time `json:"-"`
}

func userFromAPI(u *gh.User) *User {
	user := &User{
		Login:       u.GetLogin(),
		Name:        u.GetName(),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
	}
	if u.CreatedAt != nil {
		user.CreatedAt = u.CreatedAt.Time
	}
	return user
}

func repositoryFromAPI(r *gh.Repository) *Repository {
	repo := &Repository{
		Name:        r.GetName(),
		Owner:       r.GetOwner().GetLogin(),
		Description: r.GetDescription(),
		Language:    r.GetLanguage(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
	}
	if r.UpdatedAt != nil {
		repo.UpdatedAt = r.UpdatedAt.Time
	}
	return repo
}
