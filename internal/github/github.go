// Package github fetches the public profile data the analyzer needs from the
// GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v72/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	apiURL    = "https://api.github.com/"
	userAgent = "spigell/trusthire"
	// Max value for per_page on list endpoints.
	MaxPerPage = 100

	defaultTimeout = 15 * time.Second
)

// ErrNotFound is returned when the requested user does not exist.
var ErrNotFound = errors.New("github user not found")

type Config struct {
	APIURL    string
	Token     string
	UserAgent string
	Timeout   time.Duration
}

type Client struct {
	api    *gh.Client
	logger *zap.Logger
}

// New builds a client. An empty token falls back to anonymous access, which
// GitHub limits to 60 requests per hour.
func New(ctx context.Context, logger *zap.Logger, cfg Config) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{Timeout: timeout}
	if token := strings.TrimSpace(cfg.Token); token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
		httpClient.Timeout = timeout
	}

	api := gh.NewClient(httpClient)

	api.UserAgent = userAgent
	if cfg.UserAgent != "" {
		api.UserAgent = cfg.UserAgent
	}

	if base := strings.TrimSpace(cfg.APIURL); base != "" && base != apiURL {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse github api url %q: %w", cfg.APIURL, err)
		}
		api.BaseURL = u
	}

	return &Client{api: api, logger: logger}, nil
}

// User returns the public profile of username or an error wrapping ErrNotFound.
func (c *Client) User(ctx context.Context, username string) (*User, error) {
	c.logger.Debug("make request", zap.String("endpoint", "users"), zap.String("username", username))

	user, resp, err := c.api.Users.Get(ctx, username)
	if err != nil {
		if isNotFound(resp) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, username)
		}
		return nil, fmt.Errorf("get user %s: %w", username, err)
	}

	return userFromAPI(user), nil
}

// Repositories returns a single page of the user's public repositories,
// most recently updated first.
func (c *Client) Repositories(ctx context.Context, username string, page, perPage int) ([]*Repository, error) {
	if perPage <= 0 || perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	c.logger.Debug("make request",
		zap.String("endpoint", "repos"),
		zap.String("username", username),
		zap.Int("page", page),
		zap.Int("per_page", perPage),
	)

	opts := &gh.RepositoryListByUserOptions{
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: gh.ListOptions{Page: page, PerPage: perPage},
	}

	repos, resp, err := c.api.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		if isNotFound(resp) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, username)
		}
		return nil, fmt.Errorf("list repositories of %s (page %d): %w", username, page, err)
	}

	out := make([]*Repository, 0, len(repos))
	for _, repo := range repos {
		out = append(out, repositoryFromAPI(repo))
	}

	return out, nil
}

// Languages returns the byte count per language of a single repository.
func (c *Client) Languages(ctx context.Context, owner, repo string) (map[string]int, error) {
	c.logger.Debug("make request", zap.String("endpoint", "languages"), zap.String("repo", owner+"/"+repo))

	langs, _, err := c.api.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("list languages of %s/%s: %w", owner, repo, err)
	}

	return langs, nil
}

func isNotFound(resp *gh.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusNotFound
}
