package scout

import (
	"regexp"
	"strings"
)

// \s alone is ASCII-only in RE2; \p{Z} picks up NBSP and friends.
var whitespaceRuns = regexp.MustCompile(`[\s\p{Z}]+`)

// Normalize lowercases the text, collapses every whitespace run to a single
// space and trims the result. All pattern tables in this package are written
// against normalized text.
func Normalize(text string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(strings.ToLower(text), " "))
}
