// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/credit-engine/pkg/types"
)

const (
	// DefaultBaseURL is the NewsAPI root.
	DefaultBaseURL = "https://newsapi.org"

	// DefaultMaxArticles bounds the number of article texts per query.
	DefaultMaxArticles = 5

	everythingPath = "/v2/everything"
)

// NewsAPIFetcher searches the NewsAPI "everything" endpoint. It performs one
// request per Fetch and never retries.
type NewsAPIFetcher struct {
	Client *http.Client
	Config types.NewsConfig
	Log    zerolog.Logger
}

// NewNewsAPIFetcher builds a fetcher with a client honouring cfg.Timeout.
func NewNewsAPIFetcher(cfg types.NewsConfig, log zerolog.Logger) *NewsAPIFetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxArticles <= 0 {
		cfg.MaxArticles = DefaultMaxArticles
	}
	return &NewsAPIFetcher{
		Client: &http.Client{Timeout: cfg.Timeout},
		Config: cfg,
		Log:    log.With().Str("component", "newsapi").Logger(),
	}
}

// Fetch returns up to MaxArticles texts (title + " " + description) for
// query. Every failure collapses to an empty result; the cause is logged.
func (f *NewsAPIFetcher) Fetch(ctx context.Context, query string) []string {
	texts, err := f.fetch(ctx, query)
	if err != nil {
		f.Log.Warn().Err(err).Str("query", query).Msg("news fetch failed")
		return nil
	}
	return texts
}

func (f *NewsAPIFetcher) fetch(ctx context.Context, query string) ([]string, error) {
	limit := f.Config.MaxArticles
	if limit <= 0 {
		limit = DefaultMaxArticles
	}

	params := url.Values{
		"q":        {query},
		"pageSize": {strconv.Itoa(limit)},
	}
	if f.Config.APIKey != "" {
		params.Set("apiKey", f.Config.APIKey)
	}
	reqURL := strings.TrimRight(f.Config.BaseURL, "/") + everythingPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if f.Config.UserAgent != "" {
		req.Header.Set("User-Agent", f.Config.UserAgent)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("NewsAPI request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NewsAPI returned HTTP %d", resp.StatusCode)
	}

	var nr newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return nil, fmt.Errorf("parsing NewsAPI response: %w", err)
	}
	if nr.Status != "" && nr.Status != "ok" {
		return nil, fmt.Errorf("NewsAPI status %q: %s", nr.Status, nr.Message)
	}

	articles := nr.Articles
	if len(articles) > limit {
		articles = articles[:limit]
	}
	texts := make([]string, 0, len(articles))
	for _, a := range articles {
		texts = append(texts, a.Title+" "+a.Description)
	}

	f.Log.Debug().Str("query", query).Int("total", nr.TotalResults).Int("kept", len(texts)).Msg("news fetched")
	return texts, nil
}

// NewsAPI JSON structures.
type newsAPIResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source      newsAPISource `json:"source"`
	Author      string        `json:"author"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
}

type newsAPISource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
