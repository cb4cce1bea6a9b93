// Package normalize extracts a canonical skill and section vocabulary from
// free resume or job-description text. Normalization is deterministic and
// pure: the same text always produces the same entity.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/interview-coach/internal/types"
)

// Kind selects the header patterns used for section splitting.
type Kind string

// Input kinds.
const (
	KindResume         Kind = "resume"
	KindJobDescription Kind = "job_description"
)

// maxHeaderLen is the cutoff for treating a line as a section header. Prose
// sentences that merely mention a header keyword are longer than this.
const maxHeaderLen = 50

var resumeHeaders = []string{
	"education", "work experience", "experience", "skills", "projects",
	"certifications", "awards", "publications", "interests", "activities",
	"references", "summary", "objective",
}

var jobHeaders = []string{
	"requirements", "responsibilities", "qualifications", "preferred",
	"nice to have", "benefits", "about the role", "about us",
	"what you'll do", "who you are",
}

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	urlPattern   = regexp.MustCompile(`https?://[^\s)>"]+`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
)

// experienceLevels maps a seniority label to the phrases that indicate it.
var experienceLevels = map[string][]string{
	"junior":    {"junior", "entry-level", "entry level", "0-2 years", "1-2 years"},
	"mid-level": {"mid-level", "mid level", "intermediate", "2-5 years", "3-5 years"},
	"senior":    {"senior", "staff", "principal", "5+ years", "lead"},
}

// Resume normalizes resume text into a profile. Malformed or empty input
// never fails; it yields a profile with empty collections.
func Resume(text string) *types.NormalizedProfile {
	sections := splitSections(text, resumeHeaders)
	return &types.NormalizedProfile{
		Skills:   extractSkills(text),
		Sections: sections,
		Entities: resumeEntities(text),
	}
}

// ResumeStrict behaves like Resume but signals EmptyInputError on blank
// input instead of returning an empty profile.
func ResumeStrict(text string) (*types.NormalizedProfile, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &EmptyInputError{Kind: KindResume}
	}
	return Resume(text), nil
}

// JobDescription normalizes job-description text into a requirement.
// Skills found in "preferred" style sections become preferred skills; skills
// found anywhere else count as required.
func JobDescription(text string) *types.NormalizedRequirement {
	sections := splitSections(text, jobHeaders)

	preferredText := sections["preferred"] + "\n" + sections["nice to have"]
	preferred := extractSkills(preferredText)

	requiredSource := text
	if reqSection, ok := sections["requirements"]; ok {
		requiredSource = reqSection + "\n" + sections["qualifications"] + "\n" + sections["responsibilities"]
	}
	required := subtractSet(extractSkills(requiredSource), preferred)

	return &types.NormalizedRequirement{
		Title:            extractTitle(text),
		Summary:          extractSummary(text, sections),
		RequiredSkills:   required,
		PreferredSkills:  preferred,
		Responsibilities: bulletLines(sections["responsibilities"]),
		Sections:         sections,
		Entities:         jobEntities(text),
	}
}

// JobDescriptionStrict behaves like JobDescription but signals
// EmptyInputError on blank input.
func JobDescriptionStrict(text string) (*types.NormalizedRequirement, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &EmptyInputError{Kind: KindJobDescription}
	}
	return JobDescription(text), nil
}

// splitSections scans lines and groups them under the most recent section
// header. Text preceding any header lands in the "header" section. A line
// counts as a header only if it is short and starts with (or is entirely) a
// known header keyword, or is an all-caps variant of one.
func splitSections(text string, headers []string) map[string]string {
	sections := make(map[string]string)
	var current strings.Builder
	currentName := "header"

	flush := func() {
		body := strings.TrimSpace(current.String())
		if body != "" {
			if prev, ok := sections[currentName]; ok && prev != "" {
				body = prev + "\n" + body
			}
			sections[currentName] = body
		}
		current.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if name, ok := matchHeader(trimmed, headers); ok {
			flush()
			currentName = name
			continue
		}
		current.WriteString(trimmed)
		current.WriteString("\n")
	}
	flush()

	return sections
}

func matchHeader(line string, headers []string) (string, bool) {
	if len(line) >= maxHeaderLen {
		return "", false
	}
	// Markdown heading and bullet markers do not disqualify a header line.
	lower := strings.ToLower(strings.TrimLeft(line, "#*- \t"))
	lower = strings.TrimRight(lower, ":- ")
	for _, h := range headers {
		if lower == h || strings.HasPrefix(lower, h+" ") || strings.HasPrefix(lower, h+":") {
			return h, true
		}
	}
	return "", false
}

// extractSkills matches the curated vocabulary against text using
// case-insensitive word-boundary matching, returning a deduplicated,
// sorted, lower-cased skill set.
func extractSkills(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0, 16)
	for _, skill := range skillVocabulary {
		if containsWord(lower, skill) {
			found = append(found, skill)
		}
	}
	for alias, canonical := range skillAliases {
		if containsWord(lower, alias) {
			found = append(found, canonical)
		}
	}
	return types.NewSkillSet(found)
}

// containsWord reports whether term occurs in text delimited by
// non-word characters. Terms like "c++" or "node.js" contain punctuation,
// so a plain \b regexp would misfire; boundaries are checked manually.
func containsWord(text, term string) bool {
	for from := 0; ; {
		idx := strings.Index(text[from:], term)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(term)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		from = start + 1
	}
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	return !isWordChar(rune(text[i-1]))
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	return !isWordChar(rune(text[i]))
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func subtractSet(a, b []string) []string {
	out := make([]string, 0, len(a))
	for _, s := range a {
		if !types.HasSkill(b, s) {
			out = append(out, s)
		}
	}
	return out
}

func resumeEntities(text string) map[string][]string {
	entities := make(map[string][]string)
	if emails := emailPattern.FindAllString(text, -1); len(emails) > 0 {
		entities["email"] = dedupe(emails)
	}
	if urls := urlPattern.FindAllString(text, -1); len(urls) > 0 {
		entities["url"] = dedupe(urls)
	}
	if phones := phonePattern.FindAllString(text, -1); len(phones) > 0 {
		entities["phone"] = dedupe(phones)
	}
	return entities
}

func jobEntities(text string) map[string][]string {
	entities := make(map[string][]string)
	lower := strings.ToLower(text)
	for _, level := range []string{"junior", "mid-level", "senior"} {
		for _, phrase := range experienceLevels[level] {
			if strings.Contains(lower, phrase) {
				entities["experience_level"] = append(entities["experience_level"], level)
				break
			}
		}
	}
	return entities
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

// extractTitle takes the first non-empty line as the job title when it is
// short enough to plausibly be one.
func extractTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if len(trimmed) <= 80 {
			return trimmed
		}
		return ""
	}
	return ""
}

// extractSummary prefers an explicit about/summary section and otherwise
// falls back to the leading text, truncated.
func extractSummary(text string, sections map[string]string) string {
	for _, name := range []string{"about the role", "about us", "header"} {
		if body, ok := sections[name]; ok && body != "" {
			return truncate(body, 500)
		}
	}
	return truncate(strings.TrimSpace(text), 500)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

// bulletLines splits a section body into cleaned list items, stripping
// common bullet markers.
func bulletLines(body string) []string {
	if body == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•· \t")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
