// Package types provides type definitions for structured data used throughout the interview-coach system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"sort"
	"strings"
)

// NormalizedProfile is the canonical representation of a candidate resume.
// It is built once per resume and never mutated afterward.
type NormalizedProfile struct {
	Skills   []string            `json:"skills"`
	Sections map[string]string   `json:"sections"`
	Entities map[string][]string `json:"entities"`
}

// NormalizedRequirement is the canonical representation of a job description.
type NormalizedRequirement struct {
	Title            string              `json:"title"`
	Summary          string              `json:"summary"`
	RequiredSkills   []string            `json:"required_skills"`
	PreferredSkills  []string            `json:"preferred_skills"`
	Responsibilities []string            `json:"responsibilities"`
	Sections         map[string]string   `json:"sections"`
	Entities         map[string][]string `json:"entities"`
}

// NewSkillSet normalizes a list of skill tokens into a sorted, deduplicated,
// lower-cased set representation.
func NewSkillSet(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// HasSkill reports whether the normalized skill set contains the given token.
func HasSkill(set []string, skill string) bool {
	skill = strings.ToLower(strings.TrimSpace(skill))
	for _, s := range set {
		if s == skill {
			return true
		}
	}
	return false
}
