package domain

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every run of non [a-z0-9] characters
// into a single hyphen, without leading or trailing hyphens.
func Slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

// SlugOrName slugifies the override, falling back to the name when the
// override is blank or has no usable characters.
func SlugOrName(override, name string) string {
	if slug := Slugify(override); slug != "" {
		return slug
	}
	return Slugify(name)
}
