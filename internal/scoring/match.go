// Package scoring compares claimed and observed skills and turns the result
// into a trust score, a risk tier and reviewer recommendations.
package scoring

import (
	"sort"
	"strings"
)

const maxRelatedProjects = 3

// Confidence values assigned by Match.
const (
	ConfidenceNone    = 0.0
	ConfidencePartial = 0.5
	ConfidenceExact   = 1.0
)

// SkillMatch describes how well a single claimed skill is evidenced by the profile.
type SkillMatch struct {
	Skill      string   `json:"skill"`
	Found      bool     `json:"found_in_github"`
	Confidence float64  `json:"confidence"`
	Projects   []string `json:"github_projects"`
}

// Match pairs every resume skill with evidence from the profile skill set and
// returns the share of resume skills that found any evidence, in percent.
//
// An exact case-insensitive hit has confidence 1. Otherwise the first profile
// skill, in alphabetical order, that contains or is contained in the resume
// skill gives confidence 0.5. Only that first hit is recorded.
func Match(resumeSkills, profileSkills []string) ([]SkillMatch, float64) {
	profileLower := make(map[string]struct{}, len(profileSkills))
	for _, skill := range profileSkills {
		profileLower[strings.ToLower(skill)] = struct{}{}
	}

	candidates := make([]string, 0, len(profileLower))
	for skill := range profileLower {
		candidates = append(candidates, skill)
	}
	sort.Strings(candidates)

	matches := make([]SkillMatch, 0, len(resumeSkills))
	for _, skill := range resumeSkills {
		skillLower := strings.ToLower(skill)
		m := SkillMatch{Skill: skill, Confidence: ConfidenceNone, Projects: []string{}}

		if _, ok := profileLower[skillLower]; ok {
			m.Found = true
			m.Confidence = ConfidenceExact
			for _, candidate := range profileSkills {
				if strings.ToLower(candidate) == skillLower {
					m.Projects = append(m.Projects, candidate)
				}
			}
		} else {
			for _, candidate := range candidates {
				if strings.Contains(candidate, skillLower) || strings.Contains(skillLower, candidate) {
					m.Found = true
					m.Confidence = ConfidencePartial
					m.Projects = append(m.Projects, candidate)
					break
				}
			}
		}

		if len(m.Projects) > maxRelatedProjects {
			m.Projects = m.Projects[:maxRelatedProjects]
		}

		matches = append(matches, m)
	}

	if len(resumeSkills) == 0 {
		return matches, 0
	}

	matched := 0
	for _, m := range matches {
		if m.Found || m.Confidence > 0 {
			matched++
		}
	}

	return matches, float64(matched) / float64(len(resumeSkills)) * 100
}

// Unmatched returns the skills without any evidence, in input order.
func Unmatched(matches []SkillMatch) []string {
	out := make([]string, 0)
	for _, m := range matches {
		if !m.Found {
			out = append(out, m.Skill)
		}
	}
	return out
}

// MatchedCount returns how many skills found evidence.
func MatchedCount(matches []SkillMatch) int {
	n := 0
	for _, m := range matches {
		if m.Found {
			n++
		}
	}
	return n
}
