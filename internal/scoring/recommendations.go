package scoring

import (
	"fmt"
	"strings"

	"github.com/spigell/trusthire/internal/profile"
)

const maxListedUnmatched = 5

const (
	MsgLowTrust         = "⚠️ Low trust score detected. Further verification recommended."
	MsgLowMatch         = "📊 Low skill match percentage. Consider technical assessment."
	MsgFewRepos         = "📁 Limited GitHub activity. Request additional portfolio items."
	MsgNoRecentActivity = "📅 No recent GitHub activity. Verify current skill proficiency."
	MsgNoPopularRepos   = "⭐ No popular repositories found. Consider code review."
	MsgNewAccount       = "🆕 New GitHub account. Additional verification suggested."
	MsgStrongMatch      = "✅ Strong profile match. Candidate shows good technical credibility."
	MsgStandard         = "ℹ️ Profile analysis complete. Proceed with standard evaluation."

	msgUnmatchedFormat = "🔍 Several claimed skills not found on GitHub: %s. Recommend skill-specific assessment."
)

// Recommendations returns reviewer guidance. Messages always appear in the
// same order; MsgStandard is returned alone when nothing else applies.
func Recommendations(trustScore, matchPercentage float64, stats profile.Stats, unmatched []string) []string {
	var out []string

	if trustScore < 50 {
		out = append(out, MsgLowTrust)
	}

	if matchPercentage < 40 {
		out = append(out, MsgLowMatch)
	}

	if stats.TotalRepos < 5 {
		out = append(out, MsgFewRepos)
	}

	if stats.RecentActivity < 2 {
		out = append(out, MsgNoRecentActivity)
	}

	if len(unmatched) > maxListedUnmatched {
		out = append(out, fmt.Sprintf(msgUnmatchedFormat, strings.Join(unmatched[:maxListedUnmatched], ", ")))
	}

	if !stats.HasPopularRepos {
		out = append(out, MsgNoPopularRepos)
	}

	if stats.AccountAgeYears < 1 {
		out = append(out, MsgNewAccount)
	}

	if trustScore >= 75 && matchPercentage >= 70 {
		out = append(out, MsgStrongMatch)
	}

	if len(out) == 0 {
		out = append(out, MsgStandard)
	}

	return out
}
