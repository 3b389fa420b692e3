package profile

import (
	"sort"
	"strings"

	"github.com/spigell/trusthire/internal/catalog"
	"github.com/spigell/trusthire/internal/github"
)

type keywordPattern struct {
	skill    string
	keywords []string
}

var keywordPatterns = []keywordPattern{
	{skill: "docker", keywords: []string{"docker", "containerized", "dockerfile"}},
	{skill: "kubernetes", keywords: []string{"k8s", "kubernetes", "kubectl"}},
	{skill: "react", keywords: []string{"react", "jsx", "next.js", "nextjs", "gatsby"}},
	{skill: "vue", keywords: []string{"vue", "nuxt", "vuex"}},
	{skill: "angular", keywords: []string{"angular", "ng-", "ngrx"}},
	{skill: "django", keywords: []string{"django"}},
	{skill: "flask", keywords: []string{"flask"}},
	{skill: "fastapi", keywords: []string{"fastapi", "fast-api"}},
	{skill: "spring", keywords: []string{"spring", "springboot", "spring-boot"}},
	{skill: "aws", keywords: []string{"aws", "amazon", "s3", "ec2", "lambda"}},
	{skill: "machine learning", keywords: []string{"ml", "machine-learning", "tensorflow", "pytorch", "scikit"}},
	{skill: "data science", keywords: []string{"data-science", "pandas", "numpy", "jupyter"}},
}

// deriveSkills builds the profile skill set from language names and from
// substring hits in repository names and descriptions.
func deriveSkills(repos []*github.Repository, languages map[string]float64) []string {
	found := make(map[string]struct{})

	for lang := range languages {
		if normalized := catalog.Normalize(lang); catalog.IsKnown(normalized) {
			found[normalized] = struct{}{}
		}
		found[lang] = struct{}{}
	}

	known := catalog.All()
	for _, repo := range repos {
		name := strings.ToLower(repo.Name)
		description := strings.ToLower(repo.Description)

		for _, skill := range known {
			if strings.Contains(name, skill) || strings.Contains(description, skill) {
				found[skill] = struct{}{}
			}
		}

		for _, pattern := range keywordPatterns {
			for _, keyword := range pattern.keywords {
				if strings.Contains(name, keyword) || strings.Contains(description, keyword) {
					found[pattern.skill] = struct{}{}
					break
				}
			}
		}
	}

	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	return skills
}
