// Package profile turns a user's public repositories into a skill set and a
// set of activity statistics.
package profile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/trusthire/internal/github"
)

const (
	defaultMaxRepos    = 300
	defaultPerPage     = github.MaxPerPage
	defaultTopRepos    = 10
	defaultConcurrency = 5

	recentWindow = 180 * 24 * time.Hour
	popularStars = 50
)

// ErrUserNotFound is returned by Analyze when the provider reports that the user does not exist.
var ErrUserNotFound = errors.New("user not found")

// Provider is the remote source of profile data. Implementations wrap
// github.ErrNotFound when the user does not exist.
type Provider interface {
	User(ctx context.Context, username string) (*github.User, error)
	Repositories(ctx context.Context, username string, page, perPage int) ([]*github.Repository, error)
	Languages(ctx context.Context, owner, repo string) (map[string]int, error)
}

// Config bounds how much of a profile is fetched.
type Config struct {
	// MaxRepos caps the number of collected repositories.
	MaxRepos int
	PerPage  int
	// TopRepos is how many of the most starred and forked repositories get a
	// detailed language breakdown.
	TopRepos    int
	Concurrency int
}

func (c Config) withDefaults() Config {
	if c.MaxRepos <= 0 {
		c.MaxRepos = defaultMaxRepos
	}
	if c.PerPage <= 0 || c.PerPage > github.MaxPerPage {
		c.PerPage = defaultPerPage
	}
	if c.TopRepos <= 0 {
		c.TopRepos = defaultTopRepos
	}
	if c.Concurrency <= 0 {
		c.Concurrency = defaultConcurrency
	}
	return c
}

// Stats summarises a profile's repository activity. It feeds the trust score.
type Stats struct {
	TotalRepos        int     `json:"total_repos" mapstructure:"total_repos"`
	TotalStars        int     `json:"total_stars" mapstructure:"total_stars"`
	TotalForks        int     `json:"total_forks" mapstructure:"total_forks"`
	RecentActivity    int     `json:"recent_activity" mapstructure:"recent_activity"`
	LanguageDiversity int     `json:"language_diversity" mapstructure:"language_diversity"`
	AccountAgeYears   float64 `json:"account_age_years" mapstructure:"account_age_years"`
	AvgStarsPerRepo   float64 `json:"avg_stars_per_repo" mapstructure:"avg_stars_per_repo"`
	HasPopularRepos   bool    `json:"has_popular_repos" mapstructure:"has_popular_repos"`
}

// Profile is the analysed view of a GitHub user.
type Profile struct {
	User      *github.User       `json:"user"`
	Languages map[string]float64 `json:"languages"`
	Skills    []string           `json:"skills"`
	Stats     Stats              `json:"stats"`
	// Repositories holds the first collected repositories, most recently updated first.
	Repositories []*github.Repository `json:"repositories"`
}

type Analyzer struct {
	provider Provider
	logger   *zap.Logger
	cfg      Config
	now      func() time.Time
}

// NewAnalyzer returns an Analyzer with zero Config fields set to defaults.
func NewAnalyzer(provider Provider, logger *zap.Logger, cfg Config) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Analyzer{
		provider: provider,
		logger:   logger,
		cfg:      cfg.withDefaults(),
		now:      time.Now,
	}
}

// Analyze fetches the user's profile and derives skills and statistics from it.
//
// Failures of individual language breakdowns and of repository pages after the
// first one are tolerated; everything else is returned to the caller.
func (a *Analyzer) Analyze(ctx context.Context, username string) (*Profile, error) {
	logger := a.logger.With(zap.String("username", username))

	user, err := a.provider.User(ctx, username)
	if err != nil {
		if errors.Is(err, github.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	repos, err := a.collectRepositories(ctx, logger, username)
	if err != nil {
		return nil, err
	}

	logger.Debug("collected repositories", zap.Int("count", len(repos)))

	languages := a.tallyLanguages(ctx, logger, username, repos)
	skills := deriveSkills(repos, languages)
	stats := computeStats(user, repos, languages, a.now())

	logger.Info("profile analyzed",
		zap.Int("repositories", stats.TotalRepos),
		zap.Int("languages", stats.LanguageDiversity),
		zap.Int("skills", len(skills)),
	)

	top := repos
	if len(top) > a.cfg.TopRepos {
		top = top[:a.cfg.TopRepos]
	}

	return &Profile{
		User:         user,
		Languages:    languages,
		Skills:       skills,
		Stats:        stats,
		Repositories: top,
	}, nil
}

func (a *Analyzer) collectRepositories(ctx context.Context, logger *zap.Logger, username string) ([]*github.Repository, error) {
	var repos []*github.Repository

	for page := 1; ; page++ {
		batch, err := a.provider.Repositories(ctx, username, page, a.cfg.PerPage)
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("fetch repositories: %w", err)
			}
			logger.Warn("repository pagination interrupted, keeping partial result",
				zap.Int("page", page),
				zap.Int("collected", len(repos)),
				zap.Error(err),
			)
			break
		}

		if len(batch) == 0 {
			break
		}

		repos = append(repos, batch...)

		if len(repos) >= a.cfg.MaxRepos {
			repos = repos[:a.cfg.MaxRepos]
			break
		}

		if len(batch) < a.cfg.PerPage {
			break
		}
	}

	return repos, nil
}

// computeStats aggregates the activity statistics. Repositories without an
// update timestamp are not counted as recent.
func computeStats(user *github.User, repos []*github.Repository, languages map[string]float64, now time.Time) Stats {
	stats := Stats{
		TotalRepos:        len(repos),
		LanguageDiversity: len(languages),
	}

	recentSince := now.Add(-recentWindow)
	for _, repo := range repos {
		stats.TotalStars += repo.Stars
		stats.TotalForks += repo.Forks

		if !repo.UpdatedAt.IsZero() && repo.UpdatedAt.After(recentSince) {
			stats.RecentActivity++
		}

		if repo.Stars > popularStars {
			stats.HasPopularRepos = true
		}
	}

	if user != nil && !user.CreatedAt.IsZero() {
		days := math.Floor(now.Sub(user.CreatedAt).Hours() / 24)
		stats.AccountAgeYears = round(days/365, 1)
	}

	stats.AvgStarsPerRepo = round(float64(stats.TotalStars)/float64(max(len(repos), 1)), 2)

	return stats
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func topRepositories(repos []*github.Repository, n int) []*github.Repository {
	sorted := append([]*github.Repository(nil), repos...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Stars+sorted[i].Forks > sorted[j].Stars+sorted[j].Forks
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}
