package scoring

import (
	"math"

	"github.com/spigell/trusthire/internal/profile"
)

// Components is the breakdown of a trust score before clamping.
type Components struct {
	Base        float64 `json:"base"`
	Activity    float64 `json:"activity"`
	Credibility float64 `json:"credibility"`
	SkillDepth  float64 `json:"skill_depth"`
}

// Total is the clamped sum of all components.
func (c Components) Total() float64 {
	return math.Min(math.Max(c.Base+c.Activity+c.Credibility+c.SkillDepth, 0), 100)
}

// TrustComponents computes every weighted term of the trust score. Base is up
// to 50, activity up to 20, credibility and skill depth up to 15 each.
func TrustComponents(matchPercentage float64, stats profile.Stats, resumeSkillCount, profileSkillCount int) Components {
	var c Components

	c.Base = matchPercentage * 0.5

	c.Activity = ratio(float64(stats.TotalRepos), 50)*5 +
		ratio(float64(stats.RecentActivity), 10)*5 +
		ratio(float64(stats.TotalStars), 100)*5
	if stats.HasPopularRepos {
		c.Activity += 5
	}

	if stats.AccountAgeYears > 1 {
		c.Credibility += ratio(stats.AccountAgeYears, 5) * 10
	}
	if stats.LanguageDiversity > 3 {
		c.Credibility += 5
	}

	if profileSkillCount > 0 {
		resume := float64(resumeSkillCount)
		profileCount := float64(profileSkillCount)
		switch {
		case profileCount >= resume*0.7:
			c.SkillDepth = 15
		case profileCount >= resume*0.5:
			c.SkillDepth = 10
		case profileCount >= resume*0.3:
			c.SkillDepth = 5
		}
	}

	return c
}

// TrustScore returns the composite trust score in [0, 100].
func TrustScore(matchPercentage float64, stats profile.Stats, resumeSkillCount, profileSkillCount int) float64 {
	return TrustComponents(matchPercentage, stats, resumeSkillCount, profileSkillCount).Total()
}

// ratio returns v/limit capped at 1. Negative inputs count as zero.
func ratio(v, limit float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Min(v/limit, 1)
}
