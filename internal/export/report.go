package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"paperscout/internal/arxiv"

	"github.com/yuin/goldmark"
)

// ReportMeta carries the run context printed in the report header.
type ReportMeta struct {
	GeneratedAt time.Time
	WindowLabel string
	Categories  string
	TotalPapers int
	TopN        int
}

// BuildReport renders the top-N papers as a markdown document: fit score,
// tags, pitch, benchmark names and contact hints per paper.
func BuildReport(papers *arxiv.Papers, meta ReportMeta) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Paper scout report\n\n")
	fmt.Fprintf(&b, "- Generated: %s\n", meta.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Window: %s\n", meta.WindowLabel)
	fmt.Fprintf(&b, "- Categories: %s\n", meta.Categories)
	fmt.Fprintf(&b, "- Papers scanned: %d\n\n", meta.TotalPapers)

	for i, p := range papers.Top(meta.TopN) {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, p.Title)
		fmt.Fprintf(&b, "**Score: %d**", p.FitScore)
		if len(p.FitTags) > 0 {
			fmt.Fprintf(&b, " · tags: %s", strings.Join(p.FitTags, ", "))
		}
		b.WriteString("\n\n")

		fmt.Fprintf(&b, "- Published: %s\n", p.Published.Format("2006-01-02"))
		fmt.Fprintf(&b, "- URL: %s\n", p.URL)
		if len(p.Authors) > 0 {
			fmt.Fprintf(&b, "- Authors: %s\n", strings.Join(p.Authors, ", "))
		}
		if len(p.Benchmarks) > 0 {
			fmt.Fprintf(&b, "- Benchmarks: %s\n", strings.Join(p.Benchmarks, ", "))
		}
		for _, reason := range p.FitReasons {
			fmt.Fprintf(&b, "- %s\n", reason)
		}

		if p.PitchLine != "" {
			fmt.Fprintf(&b, "\n> %s\n", p.PitchLine)
			for _, bullet := range p.PitchBullets {
				fmt.Fprintf(&b, ">\n> - %s\n", bullet)
			}
		}

		if p.ContactName != "" {
			fmt.Fprintf(&b, "\nContact: %s (%s)\n", p.ContactName, p.ContactHint)
			if p.SearchURL != "" {
				fmt.Fprintf(&b, "Search: %s\n", p.SearchURL)
			}
		}

		b.WriteString("\n")
	}

	return b.String()
}

// WriteMarkdown writes the report to disk as-is.
func WriteMarkdown(path string, report string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(report), 0o644)
}

// WriteHTML converts the markdown report to a standalone HTML page.
func WriteHTML(path string, report string) error {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(report), &body); err != nil {
		return fmt.Errorf("rendering report to HTML: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Paper scout report</title>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, page.Bytes(), 0o644)
}
