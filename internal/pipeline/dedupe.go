package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"paperscout/internal/arxiv"
)

type dedupeFilter struct{}

// NewDedupe creates a filter that drops duplicate papers by stable key. The
// first occurrence wins; every kept paper gets its ID rewritten to the key so
// downstream stages and the seen file agree on identity.
func NewDedupe() Filter {
	return &dedupeFilter{}
}

func (f *dedupeFilter) Name() string { return "dedupe" }

func (f *dedupeFilter) IsEnabled() bool { return true }

func (f *dedupeFilter) Apply(_ context.Context, papers *arxiv.Papers) (*arxiv.Papers, Step, error) {
	initial := papers.Len()

	seen := make(map[string]struct{}, initial)
	kept := papers.Items[:0]
	for _, paper := range papers.Items {
		key := StableKey(paper)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		paper.ID = key
		kept = append(kept, paper)
	}
	papers.Items = kept

	return papers, Step{Initial: initial, Dropped: initial - papers.Len(), Left: papers.Len()}, nil
}

// StableKey derives a deterministic identity for a paper: the arXiv ID when
// present, otherwise a short hash of title, first author and year.
func StableKey(p *arxiv.Paper) string {
	if strings.HasPrefix(p.ID, "arxiv:") {
		return p.ID
	}

	firstAuthor := ""
	if len(p.Authors) > 0 {
		firstAuthor = p.Authors[0]
	}

	year := ""
	if !p.Published.IsZero() {
		year = fmt.Sprintf("%d", p.Published.Year())
	}

	raw := strings.TrimSpace(strings.ToLower(fmt.Sprintf("%s|%s|%s", p.Title, firstAuthor, year)))
	sum := sha256.Sum256([]byte(raw))

	return "hash:" + hex.EncodeToString(sum[:])[:16]
}
