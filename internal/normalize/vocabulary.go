package normalize

import "strings"

// skillVocabulary is the curated list of technology and soft-skill terms
// matched against free text. Terms are lower-case; multi-word terms are
// matched as phrases.
var skillVocabulary = []string{
	"python", "java", "javascript", "typescript", "html", "css", "react",
	"angular", "vue", "node.js", "express", "django", "flask", "ruby",
	"rails", "php", "laravel", "c++", "c#", ".net", "swift", "kotlin",
	"go", "rust", "sql", "mysql", "postgresql", "mongodb", "oracle",
	"nosql", "redis", "aws", "azure", "gcp", "docker", "kubernetes",
	"terraform", "jenkins", "git", "github", "gitlab", "ci/cd", "agile",
	"scrum", "jira", "confluence", "tensorflow", "pytorch",
	"machine learning", "data science", "artificial intelligence", "nlp",
	"computer vision", "tableau", "power bi", "excel", "rest", "graphql",
	"grpc", "kafka", "rabbitmq", "elasticsearch", "linux", "figma",
	"sketch", "leadership", "communication", "teamwork", "problem solving",
	"critical thinking", "mentoring", "project management",
}

// skillAliases maps common variants to the canonical vocabulary token.
var skillAliases = map[string]string{
	"golang":     "go",
	"js":         "javascript",
	"ts":         "typescript",
	"k8s":        "kubernetes",
	"reactjs":    "react",
	"react.js":   "react",
	"vuejs":      "vue",
	"vue.js":     "vue",
	"nodejs":     "node.js",
	"node":       "node.js",
	"postgres":   "postgresql",
	"ml":         "machine learning",
	"ai":         "artificial intelligence",
	"cicd":       "ci/cd",
	"powerbi":    "power bi",
	"dotnet":     ".net",
	"cpp":        "c++",
	"es":         "elasticsearch",
	"gke":        "kubernetes",
	"amazon web services": "aws",
	"google cloud":        "gcp",
}

// CanonicalSkill resolves a raw token to its canonical vocabulary form,
// lower-cased and trimmed. Unknown tokens are returned normalized but
// otherwise unchanged.
func CanonicalSkill(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := skillAliases[s]; ok {
		return canonical
	}
	return s
}
