// Package contacts picks a primary outreach contact from a paper's author
// list and builds web-search links for finding that person.
package contacts

import (
	"fmt"
	"strings"
)

// PickPrimary chooses the author most likely worth contacting and a short
// hint explaining the choice. With one author it is that author; with two,
// the first (often primary); with three or more, the last (often the PI),
// naming the first author as an alternate in the hint.
func PickPrimary(authors []string) (name, hint string) {
	cleaned := make([]string, 0, len(authors))
	for _, a := range authors {
		if a = strings.TrimSpace(a); a != "" {
			cleaned = append(cleaned, a)
		}
	}

	switch len(cleaned) {
	case 0:
		return "", "no authors listed"
	case 1:
		return cleaned[0], "single-author paper"
	case 2:
		return cleaned[0], "2 authors: using first author as primary"
	default:
		first := cleaned[0]
		last := cleaned[len(cleaned)-1]
		return last, fmt.Sprintf("3+ authors: using last author (often PI). Alternate: first author = %s", first)
	}
}
