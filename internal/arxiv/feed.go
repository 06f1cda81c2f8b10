package arxiv

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"paperscout/internal/utils"

	"go.uber.org/zap"
)

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string `xml:"id"`
	Title     string `xml:"title"`
	Summary   string `xml:"summary"`
	Published string `xml:"published"`
	DOI       string `xml:"doi"`
	Authors   []struct {
		Name string `xml:"name"`
	} `xml:"author"`
	Links []struct {
		Href string `xml:"href,attr"`
		Rel  string `xml:"rel,attr"`
	} `xml:"link"`
	Categories []struct {
		Term string `xml:"term,attr"`
	} `xml:"category"`
}

func (c *Client) fetch(params *SearchParams) (*Papers, error) {
	params.applyDefaults()

	now := time.Now().UTC()
	cutoff := now.Add(-time.Duration(float64(params.Months)*30.5*24) * time.Hour)

	papers := &Papers{}
	start := 0

	for papers.Len() < params.MaxTotal {
		if err := c.limiter.Wait(c.ctx); err != nil {
			return nil, err
		}

		feed, err := c.queryPage(params, start)
		if err != nil {
			return nil, err
		}
		if len(feed.Entries) == 0 {
			break
		}

		c.logger.Debug("got arXiv page",
			zap.Int("start", start),
			zap.Int("entries", len(feed.Entries)),
		)

		reachedCutoff := false
		for _, entry := range feed.Entries {
			paper := entry.toPaper(now)
			if paper.Published.Before(cutoff) {
				reachedCutoff = true
				break
			}
			papers.Items = append(papers.Items, paper)
			if papers.Len() >= params.MaxTotal {
				break
			}
		}
		if reachedCutoff {
			break
		}

		start += params.PageSize
	}

	return papers, nil
}

func (c *Client) queryPage(params *SearchParams, start int) (*atomFeed, error) {
	q := url.Values{}
	q.Set("search_query", buildSearchQuery(params.Categories))
	q.Set("start", strconv.Itoa(start))
	q.Set("max_results", strconv.Itoa(params.PageSize))
	q.Set("sortBy", "submittedDate")
	q.Set("sortOrder", "descending")

	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * c.RetryBackoff
			c.logger.Debug("retrying arXiv request",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr),
			)
			if err := utils.WaitFor(c.ctx, backoff); err != nil {
				return nil, err
			}
		}

		feed, err := c.requestPage(q)
		if err == nil {
			return feed, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("querying arXiv page at offset %d: %w", start, lastErr)
}

func (c *Client) requestPage(q url.Values) (*atomFeed, error) {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, c.APIURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.URL.RawQuery = q.Encode()

	c.logger.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv feed: %w", err)
	}

	return &feed, nil
}

func buildSearchQuery(categories []string) string {
	terms := make([]string, 0, len(categories))
	for _, cat := range categories {
		cat = strings.TrimSpace(cat)
		if cat == "" {
			continue
		}
		terms = append(terms, "cat:"+cat)
	}
	return strings.Join(terms, " OR ")
}

func (e *atomEntry) toPaper(now time.Time) *Paper {
	published := now
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(e.Published)); err == nil {
		published = t.UTC()
	}

	pageURL := ""
	for _, link := range e.Links {
		if link.Rel == "" || link.Rel == "alternate" {
			pageURL = link.Href
			break
		}
	}
	if pageURL == "" {
		pageURL = strings.TrimSpace(e.ID)
	}

	rawID := strings.TrimSpace(e.ID)
	if rawID == "" {
		rawID = pageURL
	}
	arxivID := rawID
	if idx := strings.LastIndex(strings.TrimRight(rawID, "/"), "/"); idx != -1 {
		arxivID = strings.TrimRight(rawID, "/")[idx+1:]
	}

	authors := make([]string, 0, len(e.Authors))
	for _, a := range e.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}

	categories := make([]string, 0, len(e.Categories))
	for _, cat := range e.Categories {
		if term := strings.TrimSpace(cat.Term); term != "" {
			categories = append(categories, term)
		}
	}

	return &Paper{
		ID:         "arxiv:" + arxivID,
		Title:      collapseLines(e.Title),
		Authors:    authors,
		Abstract:   collapseLines(e.Summary),
		URL:        pageURL,
		Published:  published,
		Source:     "arxiv",
		Categories: categories,
		DOI:        strings.TrimSpace(e.DOI),
	}
}

// collapseLines flattens the hard-wrapped text arXiv returns in titles and
// abstracts into a single trimmed line.
func collapseLines(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
