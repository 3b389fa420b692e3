package profile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/trusthire/internal/github"
)

var fixedNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeProvider struct {
	mu sync.Mutex

	user    *github.User
	userErr error

	pages    [][]*github.Repository
	pageFn   func(page, perPage int) []*github.Repository
	pageErrs map[int]error

	languages    map[string]map[string]int
	languageErrs map[string]error

	repoCalls     int
	languageCalls []string
}

func (f *fakeProvider) User(_ context.Context, username string) (*github.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	if f.user == nil {
		return &github.User{Login: username}, nil
	}
	return f.user, nil
}

func (f *fakeProvider) Repositories(_ context.Context, _ string, page, perPage int) ([]*github.Repository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.repoCalls++

	if err := f.pageErrs[page]; err != nil {
		return nil, err
	}
	if f.pageFn != nil {
		return f.pageFn(page, perPage), nil
	}
	if page-1 < len(f.pages) {
		return f.pages[page-1], nil
	}
	return nil, nil
}

func (f *fakeProvider) Languages(_ context.Context, owner, repo string) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.languageCalls = append(f.languageCalls, owner+"/"+repo)

	if err := f.languageErrs[repo]; err != nil {
		return nil, err
	}
	return f.languages[repo], nil
}

func newTestAnalyzer(p Provider, cfg Config) *Analyzer {
	a := NewAnalyzer(p, zap.NewNop(), cfg)
	a.now = func() time.Time { return fixedNow }
	return a
}

func makeRepos(prefix string, n int) []*github.Repository {
	repos := make([]*github.Repository, 0, n)
	for i := 0; i < n; i++ {
		repos = append(repos, &github.Repository{Name: fmt.Sprintf("%s-%d", prefix, i), Owner: "octocat"})
	}
	return repos
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		user: &github.User{Login: "octocat", CreatedAt: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)},
		pages: [][]*github.Repository{{
			{Name: "docker-compose-demo", Owner: "octocat", Description: "Containerized Flask API", Language: "Python", Stars: 120, Forks: 10, UpdatedAt: fixedNow.Add(-10 * 24 * time.Hour)},
			{Name: "dotfiles", Owner: "octocat", Language: "Shell", Stars: 2, UpdatedAt: fixedNow.Add(-400 * 24 * time.Hour)},
			{Name: "web", Owner: "octocat"},
		}},
		languages: map[string]map[string]int{
			"docker-compose-demo": {"Python": 250000, "Dockerfile": 500},
			"web":                 {"HTML": 20000},
		},
		languageErrs: map[string]error{"dotfiles": errors.New("timeout")},
	}

	got, err := newTestAnalyzer(provider, Config{}).Analyze(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, "octocat", got.User.Login)
	assert.Len(t, got.Repositories, 3)

	assert.InDelta(t, 11.0, got.Languages["python"], 1e-9)
	assert.InDelta(t, 1.0, got.Languages["shell"], 1e-9)
	assert.InDelta(t, 0.05, got.Languages["dockerfile"], 1e-9)
	assert.InDelta(t, 2.0, got.Languages["html"], 1e-9)
	assert.Len(t, got.Languages, 4)

	assert.Subset(t, got.Skills, []string{"python", "shell", "dockerfile", "html", "docker", "flask"})
	assert.NotContains(t, got.Skills, "kubernetes")
	assert.True(t, sort.StringsAreSorted(got.Skills))

	assert.Equal(t, Stats{
		TotalRepos:        3,
		TotalStars:        122,
		TotalForks:        10,
		RecentActivity:    1,
		LanguageDiversity: 4,
		AccountAgeYears:   6.0,
		AvgStarsPerRepo:   40.67,
		HasPopularRepos:   true,
	}, got.Stats)
}

func TestAnalyzeUserNotFound(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{userErr: fmt.Errorf("%w: ghost", github.ErrNotFound)}

	_, err := newTestAnalyzer(provider, Config{}).Analyze(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestAnalyzeUserFailureIsNotNotFound(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{userErr: errors.New("connection reset")}

	_, err := newTestAnalyzer(provider, Config{}).Analyze(context.Background(), "octocat")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUserNotFound))
}

func TestCollectRepositories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		provider  *fakeProvider
		cfg       Config
		wantRepos int
		wantCalls int
		wantErr   bool
	}{
		{
			name: "stops at max repos",
			provider: &fakeProvider{pageFn: func(page, perPage int) []*github.Repository {
				return makeRepos(fmt.Sprintf("p%d", page), perPage)
			}},
			cfg:       Config{PerPage: 2, MaxRepos: 5},
			wantRepos: 5,
			wantCalls: 3,
		},
		{
			name:      "stops on short page",
			provider:  &fakeProvider{pages: [][]*github.Repository{makeRepos("a", 2), makeRepos("b", 1), makeRepos("c", 2)}},
			cfg:       Config{PerPage: 2},
			wantRepos: 3,
			wantCalls: 2,
		},
		{
			name:      "stops on empty page",
			provider:  &fakeProvider{pages: [][]*github.Repository{makeRepos("a", 2), {}}},
			cfg:       Config{PerPage: 2},
			wantRepos: 2,
			wantCalls: 2,
		},
		{
			name: "later page failure keeps partial result",
			provider: &fakeProvider{
				pages:    [][]*github.Repository{makeRepos("a", 2), makeRepos("b", 2)},
				pageErrs: map[int]error{2: errors.New("rate limited")},
			},
			cfg:       Config{PerPage: 2},
			wantRepos: 2,
			wantCalls: 2,
		},
		{
			name:      "first page failure is fatal",
			provider:  &fakeProvider{pageErrs: map[int]error{1: errors.New("timeout")}},
			cfg:       Config{PerPage: 2},
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name:      "default cap is 300",
			provider:  &fakeProvider{pageFn: func(_, perPage int) []*github.Repository { return makeRepos("r", perPage) }},
			wantRepos: 300,
			wantCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := newTestAnalyzer(tt.provider, tt.cfg)
			repos, err := a.collectRepositories(context.Background(), zap.NewNop(), "octocat")
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Len(t, repos, tt.wantRepos)
			assert.Equal(t, tt.wantCalls, tt.provider.repoCalls)
		})
	}
}

func TestTallyLanguagesUsesTopRepositoriesOnly(t *testing.T) {
	t.Parallel()

	repos := []*github.Repository{
		{Name: "small", Stars: 1, Language: "Go"},
		{Name: "big", Stars: 50, Forks: 5, Language: "Rust"},
		{Name: "medium", Stars: 10, Owner: "someone-else"},
	}
	provider := &fakeProvider{languages: map[string]map[string]int{
		"big":    {"Rust": 1_000_000},
		"medium": {"TypeScript": 5000},
		"small":  {"Go": 5000},
	}}

	a := newTestAnalyzer(provider, Config{TopRepos: 2})
	languages := a.tallyLanguages(context.Background(), zap.NewNop(), "octocat", repos)

	assert.ElementsMatch(t, []string{"octocat/big", "someone-else/medium"}, provider.languageCalls)
	assert.Equal(t, map[string]float64{
		"go":         1,
		"rust":       11,
		"typescript": 0.5,
	}, languages)
}

func TestDeriveSkillsKeywordPatterns(t *testing.T) {
	t.Parallel()

	repos := []*github.Repository{
		{Name: "k8s-manifests"},
		{Name: "blog", Description: "Built with Nuxt"},
		{Name: "serverless-lambda"},
	}

	skills := deriveSkills(repos, map[string]float64{"JavaScript": 1})

	// language keys are kept verbatim next to their normalized form
	assert.Subset(t, skills, []string{"kubernetes", "vue", "aws", "JavaScript", "javascript"})
}

func TestComputeStatsWithoutRepositories(t *testing.T) {
	t.Parallel()

	stats := computeStats(&github.User{Login: "empty"}, nil, map[string]float64{}, fixedNow)
	assert.Equal(t, Stats{}, stats)
}
