package suite

import (
	"fmt"
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Planner generates deterministic output file names.
type Planner struct {
	used map[string]int
}

// NewPlanner creates a name planner with collision tracking.
func NewPlanner() *Planner {
	return &Planner{used: make(map[string]int)}
}

// Next returns the next unique file name for the group description.
func (p *Planner) Next(description string) string {
	base := Slug(description)

	p.used[base]++
	count := p.used[base]

	filename := base
	if count > 1 {
		filename = fmt.Sprintf("%s-%d", base, count-1)
	}

	return filename + ".yaml"
}

// Slug converts arbitrary descriptions into deterministic file-safe names.
func Slug(input string) string {
	slug := strings.ToLower(strings.TrimSpace(input))
	slug = nonAlnum.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "case"
	}
	return slug
}
