package pipeline

import (
	"context"
	"fmt"
	"strings"

	"paperscout/internal/arxiv"
)

type seenFileFilter struct {
	path string
}

// NewSeenFile creates a filter that removes papers recorded in a seen file
// from previous runs. The filter is disabled when no path is configured.
func NewSeenFile(path string) Filter {
	return &seenFileFilter{path: strings.TrimSpace(path)}
}

func (f *seenFileFilter) Name() string { return "seen_file" }

func (f *seenFileFilter) IsEnabled() bool { return f.path != "" }

func (f *seenFileFilter) Apply(_ context.Context, papers *arxiv.Papers) (*arxiv.Papers, Step, error) {
	initial := papers.Len()

	seen, err := arxiv.SeenFromFile(f.path)
	if err != nil {
		return nil, Step{}, fmt.Errorf("reading seen file: %w", err)
	}

	removed := papers.Exclude(seen.IDs())

	return papers, Step{Initial: initial, Dropped: len(removed), Left: papers.Len()}, nil
}

type categoryFilter struct {
	categories []string
}

// NewCategory creates a filter that keeps only papers carrying at least one
// of the given arXiv categories. Cross-listed papers from other primary
// categories are dropped. A no-op when the list is empty.
func NewCategory(categories []string) Filter {
	return &categoryFilter{categories: categories}
}

func (f *categoryFilter) Name() string { return "category" }

func (f *categoryFilter) IsEnabled() bool { return true }

func (f *categoryFilter) Apply(_ context.Context, papers *arxiv.Papers) (*arxiv.Papers, Step, error) {
	initial := papers.Len()
	if len(f.categories) == 0 {
		return papers, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	wanted := make(map[string]struct{}, len(f.categories))
	for _, cat := range f.categories {
		wanted[strings.TrimSpace(cat)] = struct{}{}
	}

	kept := papers.Items[:0]
	for _, paper := range papers.Items {
		for _, cat := range paper.Categories {
			if _, ok := wanted[cat]; ok {
				kept = append(kept, paper)
				break
			}
		}
	}
	papers.Items = kept

	return papers, Step{Initial: initial, Dropped: initial - papers.Len(), Left: papers.Len()}, nil
}

type minScoreFilter struct {
	min int
}

// NewMinScore creates a filter that drops papers scored under the threshold.
// It only makes sense after the scoring stage has run. A no-op when the
// threshold is zero or negative.
func NewMinScore(min int) Filter {
	return &minScoreFilter{min: min}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) IsEnabled() bool { return f.min > 0 }

func (f *minScoreFilter) Apply(_ context.Context, papers *arxiv.Papers) (*arxiv.Papers, Step, error) {
	initial := papers.Len()

	kept := papers.Items[:0]
	for _, paper := range papers.Items {
		if paper.FitScore >= f.min {
			kept = append(kept, paper)
		}
	}
	papers.Items = kept

	return papers, Step{Initial: initial, Dropped: initial - papers.Len(), Left: papers.Len()}, nil
}
