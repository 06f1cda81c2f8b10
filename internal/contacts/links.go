package contacts

import (
	"fmt"
	"net/url"
)

// Disclaimer accompanies every generated search link.
const Disclaimer = "Auto-generated search link (not verified). Please confirm the correct profile manually."

// BuildSearchQuery templates a LinkedIn profile search for a contact name,
// optionally narrowed by affiliation. Returns an empty string for an empty
// name.
func BuildSearchQuery(name, affiliation string) string {
	if name == "" {
		return ""
	}
	if affiliation != "" {
		return fmt.Sprintf("%q %q site:linkedin.com/in", name, affiliation)
	}
	return fmt.Sprintf("%q site:linkedin.com/in", name)
}

func GoogleSearchURL(query string) string {
	if query == "" {
		return ""
	}
	return "https://www.google.com/search?q=" + url.QueryEscape(query)
}

func DuckDuckGoSearchURL(query string) string {
	if query == "" {
		return ""
	}
	return "https://duckduckgo.com/?q=" + url.QueryEscape(query)
}
