package verification

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/trusthire/internal/catalog"
	"github.com/spigell/trusthire/internal/profile"
	"github.com/spigell/trusthire/internal/scoring"
)

// Report is the outcome of a single verification.
type Report struct {
	ID           string    `json:"id"`
	Username     string    `json:"github_username"`
	Timestamp    time.Time `json:"timestamp"`
	ResumeSkills []string  `json:"resume_skills"`
	// ResumeSkillsByCategory groups ResumeSkills by catalog category.
	ResumeSkillsByCategory map[catalog.Category][]string `json:"resume_skills_by_category"`
	GitHubSkills           []string                      `json:"github_skills"`
	Matches                []scoring.SkillMatch          `json:"matched_skills"`
	TotalResumeSkills      int                           `json:"total_resume_skills"`
	TotalGitHubSkills      int                           `json:"total_github_skills"`
	MatchedCount           int                           `json:"matched_count"`
	MatchPercentage        float64                       `json:"match_percentage"`
	TrustScore             float64                       `json:"trust_score"`
	TrustComponents        scoring.Components            `json:"trust_components"`
	RiskLevel              scoring.RiskLevel             `json:"risk_level"`
	Recommendations        []string                      `json:"recommendations"`
	GitHubStats            map[string]any                `json:"github_stats"`
	UnmatchedSkills        []string                      `json:"unmatched_skills"`
}

// buildReport scores resume skills against an analysed profile. Scores are
// computed on raw values and rounded to two decimals only for presentation.
func buildReport(id, username string, ts time.Time, resumeSkills []string, prof *profile.Profile) (*Report, error) {
	profileSkills := prof.Skills
	if profileSkills == nil {
		profileSkills = []string{}
	}

	matches, matchPct := scoring.Match(resumeSkills, profileSkills)
	components := scoring.TrustComponents(matchPct, prof.Stats, len(resumeSkills), len(profileSkills))
	trust := components.Total()
	unmatched := scoring.Unmatched(matches)

	stats, err := statsMap(prof.Stats)
	if err != nil {
		return nil, err
	}

	return &Report{
		ID:                     id,
		Username:               username,
		Timestamp:              ts.UTC(),
		ResumeSkills:           resumeSkills,
		ResumeSkillsByCategory: catalog.Group(resumeSkills),
		GitHubSkills:           profileSkills,
		Matches:                matches,
		TotalResumeSkills:      len(resumeSkills),
		TotalGitHubSkills:      len(profileSkills),
		MatchedCount:           scoring.MatchedCount(matches),
		MatchPercentage:        round2(matchPct),
		TrustScore:             round2(trust),
		TrustComponents:        components,
		RiskLevel:              scoring.Risk(trust, matchPct),
		Recommendations:        scoring.Recommendations(trust, matchPct, prof.Stats, unmatched),
		GitHubStats:            stats,
		UnmatchedSkills:        unmatched,
	}, nil
}

func statsMap(stats profile.Stats) (map[string]any, error) {
	out := make(map[string]any)
	if err := mapstructure.Decode(stats, &out); err != nil {
		return nil, fmt.Errorf("encode profile stats: %w", err)
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DumpToTmpFile writes the report as indented JSON to a new temporary file
// and returns its name.
func (r *Report) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "trusthire_report_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
