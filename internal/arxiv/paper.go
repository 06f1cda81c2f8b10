package arxiv

import (
	"encoding/json"
	"os"
	"sort"
	"time"
)

// Paper is one fetched arXiv record plus the fields downstream stages merge
// back onto it (scoring, pitch, contact heuristics).
type Paper struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Authors    []string  `json:"authors"`
	Abstract   string    `json:"abstract"`
	URL        string    `json:"url"`
	Published  time.Time `json:"published_at"`
	Source     string    `json:"source"`
	Categories []string  `json:"categories"`
	DOI        string    `json:"doi,omitempty"`

	FitScore   int      `json:"fit_score"`
	FitTags    []string `json:"fit_tags,omitempty"`
	FitReasons []string `json:"fit_reasons,omitempty"`
	Benchmarks []string `json:"benchmarks,omitempty"`

	PitchLine    string   `json:"pitch_line,omitempty"`
	PitchBullets []string `json:"pitch_bullets,omitempty"`

	ContactName      string `json:"contact_name,omitempty"`
	ContactHint      string `json:"contact_hint,omitempty"`
	SearchQuery      string `json:"linkedin_search_query,omitempty"`
	SearchURL        string `json:"linkedin_search_url,omitempty"`
	SearchDisclaimer string `json:"linkedin_search_disclaimer,omitempty"`
}

type Papers struct {
	Items []*Paper
}

func (p *Papers) Len() int {
	return len(p.Items)
}

func (p *Papers) FindByID(id string) *Paper {
	for _, paper := range p.Items {
		if paper.ID == id {
			return paper
		}
	}
	return nil
}

// SortByFitScore orders papers best-first. Equal scores keep fetch order.
func (p *Papers) SortByFitScore() {
	sort.SliceStable(p.Items, func(i, j int) bool {
		return p.Items[i].FitScore > p.Items[j].FitScore
	})
}

// Top returns up to n leading papers without copying them.
func (p *Papers) Top(n int) []*Paper {
	if n < 0 || n > len(p.Items) {
		n = len(p.Items)
	}
	return p.Items[:n]
}

// Exclude removes papers whose ID is in targets and returns the removed IDs.
func (p *Papers) Exclude(targets []string) []string {
	drop := make(map[string]struct{}, len(targets))
	for _, id := range targets {
		drop[id] = struct{}{}
	}

	var excluded []string
	kept := p.Items[:0]
	for _, paper := range p.Items {
		if _, ok := drop[paper.ID]; ok {
			excluded = append(excluded, paper.ID)
			continue
		}
		kept = append(kept, paper)
	}
	p.Items = kept
	return excluded
}

func (p *Papers) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "papers_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// SeenPapers is the persistent record of papers already surfaced in earlier
// runs, kept in a small JSON file between invocations.
type SeenPapers struct {
	Items []*SeenPaper
}

type SeenPaper struct {
	ID     string
	URL    string
	Title  string
	SeenAt time.Time
}

func (p *Papers) ToSeen() *SeenPapers {
	seen := &SeenPapers{}
	for _, paper := range p.Items {
		seen.Items = append(seen.Items, &SeenPaper{
			ID:     paper.ID,
			URL:    paper.URL,
			Title:  paper.Title,
			SeenAt: time.Now().UTC(),
		})
	}
	return seen
}

func SeenFromFile(path string) (*SeenPapers, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &SeenPapers{}, nil
	}

	var seen SeenPapers
	if err := json.NewDecoder(file).Decode(&seen); err != nil {
		return nil, err
	}
	return &seen, nil
}

func (s *SeenPapers) Append(other *SeenPapers) {
	s.Items = append(s.Items, other.Items...)
}

func (s *SeenPapers) IDs() []string {
	ids := make([]string, 0, len(s.Items))
	for _, paper := range s.Items {
		ids = append(ids, paper.ID)
	}
	return ids
}

func (s *SeenPapers) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
