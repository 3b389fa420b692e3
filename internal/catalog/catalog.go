// Package catalog holds the static vocabulary of technical skills and the
// normalization rules that map textual variants onto canonical skill names.
package catalog

import (
	"regexp"
	"sort"
	"strings"
)

// Category names a vocabulary group inside the catalog.
type Category string

const (
	Languages       Category = "languages"
	Frameworks      Category = "frameworks"
	Databases       Category = "databases"
	Cloud           Category = "cloud"
	DevOps          Category = "devops"
	DataScience     Category = "data_science"
	Mobile          Category = "mobile"
	UnknownCategory Category = ""
	// Other collects skills outside the catalog in Group.
	Other Category = "other"
)

// categoryOrder is the declaration order used when a skill belongs to several groups.
var categoryOrder = []Category{Languages, Frameworks, Databases, Cloud, DevOps, DataScience, Mobile}

var vocabulary = map[Category][]string{
	Languages: {
		"python", "java", "javascript", "typescript", "c++", "c#", "ruby",
		"go", "rust", "swift", "kotlin", "scala", "r", "matlab", "perl",
		"php", "objective-c", "dart", "lua", "haskell", "clojure", "elixir",
		"c", "cpp", "csharp", "js", "ts", "py", "rb", "rs", "kt", "html",
		"css", "sql", "bash", "shell", "powershell", "vba", "assembly",
	},
	Frameworks: {
		"react", "angular", "vue", "django", "flask", "fastapi", "express",
		"spring", "springboot", "rails", "laravel", "asp.net", ".net",
		"tensorflow", "pytorch", "keras", "scikit-learn", "pandas", "numpy",
		"nodejs", "nextjs", "gatsby", "svelte", "ember", "backbone",
		"jquery", "bootstrap", "tailwind", "material-ui", "mui", "ant-design",
	},
	Databases: {
		"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "cassandra",
		"oracle", "sqlserver", "sqlite", "dynamodb", "firebase", "firestore",
		"neo4j", "couchdb", "mariadb", "influxdb", "clickhouse",
	},
	Cloud: {
		"aws", "azure", "gcp", "google cloud", "heroku", "digitalocean",
		"linode", "vercel", "netlify", "cloudflare", "oracle cloud", "ibm cloud",
	},
	DevOps: {
		"docker", "kubernetes", "jenkins", "git", "github", "gitlab", "bitbucket",
		"terraform", "ansible", "puppet", "chef", "circleci", "travis", "github actions",
		"prometheus", "grafana", "elk", "nginx", "apache", "tomcat", "jira",
		"confluence", "slack", "datadog", "newrelic", "sentry",
	},
	DataScience: {
		"machine learning", "deep learning", "nlp", "computer vision", "data analysis",
		"data science", "statistics", "data visualization", "big data", "spark",
		"hadoop", "kafka", "airflow", "tableau", "power bi", "looker", "etl",
		"data engineering", "ml", "ai", "artificial intelligence", "neural networks",
	},
	Mobile: {
		"android", "ios", "react native", "flutter", "xamarin", "ionic",
		"swift", "swiftui", "kotlin", "java", "cordova", "phonegap",
	},
}

// aliases are applied only when the cleaned input equals the key exactly.
var aliases = map[string]string{
	"node.js":     "nodejs",
	"node js":     "nodejs",
	"react.js":    "react",
	"vue.js":      "vue",
	"angular.js":  "angular",
	"aspnet":      "asp.net",
	"asp net":     "asp.net",
	"c sharp":     "c#",
	"c plus plus": "c++",
	"cpp":         "c++",
	"js":          "javascript",
	"ts":          "typescript",
	"py":          "python",
	"ml":          "machine learning",
	"ai":          "artificial intelligence",
}

var (
	disallowed = regexp.MustCompile(`[^a-z0-9#+\-.\s]`)

	all        map[string]struct{}
	sorted     []string
	categoryOf map[string]Category
)

func init() {
	all = make(map[string]struct{})
	categoryOf = make(map[string]Category)
	for _, category := range categoryOrder {
		for _, skill := range vocabulary[category] {
			all[skill] = struct{}{}
			if _, ok := categoryOf[skill]; !ok {
				categoryOf[skill] = category
			}
		}
	}

	sorted = make([]string, 0, len(all))
	for skill := range all {
		sorted = append(sorted, skill)
	}
	sort.Strings(sorted)
}

// All returns every canonical skill in alphabetical order. The returned slice is a copy.
func All() []string {
	out := make([]string, len(sorted))
	copy(out, sorted)
	return out
}

// IsKnown reports whether skill is a catalog member. The check is exact.
func IsKnown(skill string) bool {
	_, ok := all[skill]
	return ok
}

// CategoryOf returns the first category (in declaration order) that lists skill.
func CategoryOf(skill string) Category {
	return categoryOf[skill]
}

// Group buckets skills by category. Input order is kept inside a bucket and
// skills outside the catalog land in Other.
func Group(skills []string) map[Category][]string {
	groups := make(map[Category][]string)
	for _, skill := range skills {
		category := CategoryOf(skill)
		if category == UnknownCategory {
			category = Other
		}
		groups[category] = append(groups[category], skill)
	}
	return groups
}

// Normalize maps a raw skill mention to its canonical form.
//
// The input is lowercased and trimmed, every character other than letters,
// digits, '#', '+', '-', '.' and whitespace is dropped, and the alias table is
// consulted for an exact match. The result is not guaranteed to be a catalog
// member; callers check with IsKnown.
func Normalize(raw string) string {
	skill := strings.TrimSpace(strings.ToLower(raw))
	skill = disallowed.ReplaceAllString(skill, "")

	if canonical, ok := aliases[skill]; ok {
		return canonical
	}

	return skill
}
