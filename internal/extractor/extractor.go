// Package extractor finds claimed technical skills in free resume text.
package extractor

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/trusthire/internal/catalog"
)

// Ranked is a skill together with the number of times it is mentioned.
type Ranked struct {
	Skill     string `json:"skill"`
	Frequency int    `json:"frequency"`
}

var triggerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)proficient in (.+?)(?:\.|,|\n|$)`),
	regexp.MustCompile(`(?i)experience with (.+?)(?:\.|,|\n|$)`),
	regexp.MustCompile(`(?i)skilled in (.+?)(?:\.|,|\n|$)`),
	regexp.MustCompile(`(?i)knowledge of (.+?)(?:\.|,|\n|$)`),
	regexp.MustCompile(`(?i)familiar with (.+?)(?:\.|,|\n|$)`),
	regexp.MustCompile(`(?i)expertise in (.+?)(?:\.|,|\n|$)`),
}

var fragmentSeparator = regexp.MustCompile(`[,;]|(?:^|[^\p{L}\p{N}_])and(?:[^\p{L}\p{N}_]|$)`)

var extensions = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".java":  "java",
	".cpp":   "c++",
	".cs":    "c#",
	".rb":    "ruby",
	".go":    "go",
	".rs":    "rust",
	".kt":    "kotlin",
	".swift": "swift",
	".ts":    "typescript",
	".php":   "php",
	".r":     "r",
	".scala": "scala",
}

// isWordRune mirrors the Unicode \w class: letters, digits and underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// boundaryAt reports whether a word boundary lies at byte offset i of s.
// Unlike RE2 \b, accented letters count as word characters.
func boundaryAt(s string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = isWordRune(r)
	}
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = isWordRune(r)
	}
	return before != after
}

// countWord counts non-overlapping whole-word occurrences of word in text,
// stopping at limit when limit is positive.
func countWord(text, word string, limit int) int {
	if word == "" {
		return 0
	}

	count := 0
	for i := 0; i < len(text); {
		j := strings.Index(text[i:], word)
		if j < 0 {
			break
		}
		start := i + j
		end := start + len(word)

		if boundaryAt(text, start) && boundaryAt(text, end) {
			count++
			if limit > 0 && count >= limit {
				break
			}
			i = end
			continue
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		i = start + size
	}

	return count
}

// Extract returns the sorted set of canonical skills mentioned in text.
// Empty text yields an empty, non-nil slice.
func Extract(text string) []string {
	found := make(map[string]struct{})
	lower := strings.ToLower(text)

	for _, skill := range catalog.All() {
		if countWord(lower, skill, 1) > 0 {
			found[skill] = struct{}{}
		}
	}

	for _, skill := range fromTriggerPhrases(text) {
		found[skill] = struct{}{}
	}

	for ext, lang := range extensions {
		if strings.Contains(lower, ext) {
			found[lang] = struct{}{}
		}
	}

	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	return skills
}

// fromTriggerPhrases collects catalog skills listed after phrases such as
// "experience with". The captured list ends at the first '.', ',' or newline.
func fromTriggerPhrases(text string) []string {
	var skills []string

	for _, pattern := range triggerPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			for _, fragment := range fragmentSeparator.Split(match[1], -1) {
				normalized := catalog.Normalize(strings.ToLower(strings.TrimSpace(fragment)))
				if catalog.IsKnown(normalized) {
					skills = append(skills, normalized)
				}
			}
		}
	}

	return skills
}

// Rank counts whole-word mentions of each skill in text and orders the result
// by frequency, highest first. Skills with equal counts keep their input order.
func Rank(skills []string, text string) []Ranked {
	lower := strings.ToLower(text)

	ranked := make([]Ranked, 0, len(skills))
	for _, skill := range skills {
		count := countWord(lower, strings.ToLower(skill), 0)
		ranked = append(ranked, Ranked{Skill: skill, Frequency: count})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Frequency > ranked[j].Frequency
	})

	return ranked
}
