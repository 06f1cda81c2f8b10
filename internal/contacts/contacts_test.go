package contacts

import (
	"strings"
	"testing"
)

func TestPickPrimary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		authors  []string
		wantName string
		wantHint string
	}{
		{
			name:     "no authors",
			authors:  nil,
			wantName: "",
			wantHint: "no authors listed",
		},
		{
			name:     "blank authors only",
			authors:  []string{"", "  "},
			wantName: "",
			wantHint: "no authors listed",
		},
		{
			name:     "single author",
			authors:  []string{"Jane Doe"},
			wantName: "Jane Doe",
			wantHint: "single-author paper",
		},
		{
			name:     "two authors",
			authors:  []string{"Jane Doe", "John Roe"},
			wantName: "Jane Doe",
			wantHint: "2 authors: using first author as primary",
		},
		{
			name:     "three authors picks last",
			authors:  []string{"Jane Doe", "John Roe", "Ada Lovelace"},
			wantName: "Ada Lovelace",
			wantHint: "3+ authors: using last author (often PI). Alternate: first author = Jane Doe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, hint := PickPrimary(tt.authors)
			if name != tt.wantName {
				t.Fatalf("name = %q, want %q", name, tt.wantName)
			}
			if hint != tt.wantHint {
				t.Fatalf("hint = %q, want %q", hint, tt.wantHint)
			}
		})
	}
}

func TestBuildSearchQuery(t *testing.T) {
	t.Parallel()

	if got := BuildSearchQuery("", ""); got != "" {
		t.Fatalf("empty name must produce an empty query, got %q", got)
	}

	got := BuildSearchQuery("Jane Doe", "")
	if got != `"Jane Doe" site:linkedin.com/in` {
		t.Fatalf("unexpected query: %q", got)
	}

	got = BuildSearchQuery("Jane Doe", "Example University")
	if got != `"Jane Doe" "Example University" site:linkedin.com/in` {
		t.Fatalf("unexpected query with affiliation: %q", got)
	}
}

func TestSearchURLs(t *testing.T) {
	t.Parallel()

	if GoogleSearchURL("") != "" || DuckDuckGoSearchURL("") != "" {
		t.Fatalf("empty query must produce empty URLs")
	}

	google := GoogleSearchURL(`"Jane Doe" site:linkedin.com/in`)
	if !strings.HasPrefix(google, "https://www.google.com/search?q=") {
		t.Fatalf("unexpected google URL: %q", google)
	}
	if strings.Contains(google, " ") {
		t.Fatalf("URL must be escaped: %q", google)
	}

	ddg := DuckDuckGoSearchURL("jane doe")
	if !strings.HasPrefix(ddg, "https://duckduckgo.com/?q=") {
		t.Fatalf("unexpected duckduckgo URL: %q", ddg)
	}
}
