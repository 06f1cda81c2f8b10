// Package export renders already-scored papers to CSV, JSON and report
// files. It computes nothing; every field it writes was produced upstream.
package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"paperscout/internal/arxiv"
)

var csvHeader = []string{
	"id",
	"published_at",
	"title",
	"authors",
	"url",
	"source",
	"categories",
	"fit_score",
	"fit_tags",
	"fit_reasons",
	"benchmarks",
	"pitch_line",
	"contact_name",
	"contact_hint",
	"linkedin_search_url",
	"abstract",
}

// WriteCSV writes one row per paper, creating parent directories as needed.
func WriteCSV(path string, papers *arxiv.Papers) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, p := range papers.Items {
		row := []string{
			p.ID,
			p.Published.Format(time.RFC3339),
			p.Title,
			strings.Join(p.Authors, "; "),
			p.URL,
			p.Source,
			strings.Join(p.Categories, "; "),
			strconv.Itoa(p.FitScore),
			strings.Join(p.FitTags, "; "),
			strings.Join(p.FitReasons, " | "),
			strings.Join(p.Benchmarks, "; "),
			p.PitchLine,
			p.ContactName,
			p.ContactHint,
			p.SearchURL,
			p.Abstract,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
