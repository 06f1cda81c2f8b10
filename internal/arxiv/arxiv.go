package arxiv

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	apiURL    = "https://export.arxiv.org/api/query"
	userAgent = "paper-scout/0.1"

	defaultMonths       = 6
	defaultPageSize     = 200
	defaultMaxTotal     = 5000
	defaultPageInterval = 3 * time.Second
)

type Client struct {
	// ctx used only for http requests right now
	ctx          context.Context
	logger       *zap.Logger
	limiter      *rate.Limiter
	HTTPClient   *http.Client
	UserAgent    string
	APIURL       string
	MaxRetries   int
	RetryBackoff time.Duration
}

// New creates an arXiv API client. pageInterval throttles consecutive page
// requests; the arXiv terms of use ask for no more than one request every
// few seconds.
func New(ctx context.Context, logger *zap.Logger, pageInterval time.Duration) *Client {
	if pageInterval <= 0 {
		pageInterval = defaultPageInterval
	}

	return &Client{
		ctx:     ctx,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(pageInterval), 1),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		UserAgent:    userAgent,
		APIURL:       apiURL,
		MaxRetries:   3,
		RetryBackoff: 2 * time.Second,
	}
}

// SearchParams selects which slice of arXiv the client pages through.
type SearchParams struct {
	Categories   []string      `yaml:"categories" mapstructure:"categories"`
	Months       int           `yaml:"months" mapstructure:"months"`
	PageSize     int           `yaml:"page-size" mapstructure:"page-size"`
	MaxTotal     int           `yaml:"max-total" mapstructure:"max-total"`
	PageInterval time.Duration `yaml:"page-interval" mapstructure:"page-interval"`
}

func (p *SearchParams) applyDefaults() {
	if p.Months <= 0 {
		p.Months = defaultMonths
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultPageSize
	}
	if p.MaxTotal <= 0 {
		p.MaxTotal = defaultMaxTotal
	}
}

// Fetch pages through the arXiv API newest-first and returns every paper
// published after the cutoff (now minus the configured months), up to the
// configured total cap.
func (c *Client) Fetch(params *SearchParams) (*Papers, error) {
	return c.fetch(params)
}
