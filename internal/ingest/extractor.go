package ingest

import "strings"

// SkillExtractor turns free-form posting text into canonical skill names.
type SkillExtractor interface {
	Extract(text string) []string
}

// skillVocabulary is the canonical skill list matched against posting text.
// Order is significant: extracted skills come back in vocabulary order so
// repeated runs over the same text stay deterministic.
var skillVocabulary = []string{
	"python", "javascript", "react", "node.js", "django", "flask",
	"sql", "postgresql", "mongodb", "aws", "docker", "kubernetes",
	"html", "css", "typescript", "java", "c++", "c#", "ruby", "php",
	"go", "swift", "kotlin", "rust", "scala", "r",
	"machine learning", "data science", "ai", "artificial intelligence",
	"deep learning", "devops", "ci/cd", "git", "agile", "scrum",
	"rest api", "graphql", "redux", "angular", "vue.js", "express",
	"spring", "asp.net", "laravel", "rails",
}

// skillAliases maps spellings that show up in postings to their
// canonical vocabulary entry.
var skillAliases = map[string][]string{
	"go":         {"golang"},
	"postgresql": {"postgres"},
	"kubernetes": {"k8s"},
	"javascript": {"js"},
	"node.js":    {"nodejs", "node js"},
	"vue.js":     {"vuejs", "vue"},
	"react":      {"reactjs", "react.js"},
	"ci/cd":      {"continuous integration"},
	"rest api":   {"restful api", "rest apis"},
}

// KeywordExtractor matches a fixed vocabulary against lowercased posting
// text. Matches are anchored on word boundaries so short terms like "go"
// and "r" do not fire inside words such as "django" or "senior".
type KeywordExtractor struct {
	vocabulary []string
	aliases    map[string][]string
}

func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{vocabulary: skillVocabulary, aliases: skillAliases}
}

func (e *KeywordExtractor) Extract(text string) []string {
	text = strings.ToLower(text)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	out := make([]string, 0, 8)
	for _, kw := range e.vocabulary {
		if e.matches(text, kw) {
			out = append(out, kw)
		}
	}
	return out
}

func (e *KeywordExtractor) matches(text, canonical string) bool {
	if containsTerm(text, canonical) {
		return true
	}
	for _, alias := range e.aliases[canonical] {
		if containsTerm(text, alias) {
			return true
		}
	}
	return false
}

func containsTerm(text, term string) bool {
	for i := 0; ; {
		j := strings.Index(text[i:], term)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(term)
		if isBoundary(text, start-1) && isBoundary(text, end) {
			return true
		}
		i = start + 1
	}
}

// isBoundary reports whether position i sits outside a word. Characters
// that extend a term name ("c" vs "c++", "c#") count as word characters.
func isBoundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' {
		return false
	}
	return c != '+' && c != '#'
}
