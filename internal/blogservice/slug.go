package blogservice

import (
	"regexp"
	"strings"
)

var (
	slugInvalidRX    = regexp.MustCompile(`[^a-z0-9 -]`)
	slugWhitespaceRX = regexp.MustCompile(`\s+`)
)

// Slugify derives a URL-friendly slug from a post title: lowercase, strip
// everything outside [a-z0-9 -], collapse whitespace runs into single
// hyphens and trim leading/trailing hyphens. Collisions are not checked;
// the post id remains the identity key.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugInvalidRX.ReplaceAllString(s, "")
	s = slugWhitespaceRX.ReplaceAllString(strings.TrimSpace(s), "-")
	return strings.Trim(s, "-")
}
