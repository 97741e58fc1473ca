package brand

import (
	"regexp"
	"strings"
)

var (
	// the JavaScript \s class: ASCII space, \v, Unicode space separators,
	// line/paragraph separators and the BOM
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slugify derives a URL slug from a display name: lower-case, whitespace runs
// become a single hyphen, anything outside [a-z0-9-] is dropped.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = whitespaceRun.ReplaceAllString(s, "-")
	return nonSlugChars.ReplaceAllString(s, "")
}
