package blog

import (
	"regexp"
	"strings"
)

var (
	slugPattern  = regexp.MustCompile(`^[a-z0-9-]+$`)
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// DeriveSlug lowercases s, collapses every run of characters outside
// [a-z0-9] into one hyphen and trims hyphens at both ends.
// DeriveSlug(DeriveSlug(s)) == DeriveSlug(s).
func DeriveSlug(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

// ValidSlug reports whether s is a non-empty, URL-safe slug.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
