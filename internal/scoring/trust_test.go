package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/trusthire/internal/profile"
)

func TestTrustScoreMaximum(t *testing.T) {
	t.Parallel()

	stats := profile.Stats{
		TotalRepos:        60,
		RecentActivity:    12,
		TotalStars:        150,
		HasPopularRepos:   true,
		AccountAgeYears:   6,
		LanguageDiversity: 5,
	}

	c := TrustComponents(100, stats, 3, 3)
	assert.Equal(t, Components{Base: 50, Activity: 20, Credibility: 15, SkillDepth: 15}, c)
	assert.Equal(t, 100.0, TrustScore(100, stats, 3, 3))
}

func TestTrustScoreComponents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		match        float64
		stats        profile.Stats
		resume, prof int
		want         Components
	}{
		{
			name: "empty profile",
			want: Components{},
		},
		{
			name:  "partial activity",
			match: 40,
			stats: profile.Stats{TotalRepos: 25, RecentActivity: 5, TotalStars: 50},
			want:  Components{Base: 20, Activity: 7.5},
		},
		{
			name:  "young account earns no age credit",
			stats: profile.Stats{AccountAgeYears: 1, LanguageDiversity: 4},
			want:  Components{Credibility: 5},
		},
		{
			name:  "account age is capped",
			stats: profile.Stats{AccountAgeYears: 2.5},
			want:  Components{Credibility: 5},
		},
		{
			name:   "skill depth ten",
			resume: 10, prof: 5,
			want: Components{SkillDepth: 10},
		},
		{
			name:   "skill depth five",
			resume: 10, prof: 3,
			want: Components{SkillDepth: 5},
		},
		{
			name:   "skill depth none below thirty percent",
			resume: 10, prof: 2,
			want: Components{},
		},
		{
			name:   "no profile skills means no depth",
			resume: 0, prof: 0,
			want: Components{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TrustComponents(tt.match, tt.stats, tt.resume, tt.prof))
		})
	}
}

func TestTrustScoreIsMonotonicAndBounded(t *testing.T) {
	t.Parallel()

	profiles := []profile.Stats{
		{},
		{TotalRepos: 3, RecentActivity: 1, TotalStars: 2, AccountAgeYears: 0.4},
		{TotalRepos: 60, RecentActivity: 12, TotalStars: 150, HasPopularRepos: true, AccountAgeYears: 9, LanguageDiversity: 7},
	}

	for _, stats := range profiles {
		prev := -1.0
		for pct := 0.0; pct <= 100; pct += 2.5 {
			score := TrustScore(pct, stats, 10, 8)
			assert.GreaterOrEqual(t, score, prev)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
			prev = score
		}
	}
}
