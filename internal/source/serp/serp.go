// Package serp is the web/news search adapter (SerpAPI).
package serp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"prospector-engine/internal/domain"
	"prospector-engine/internal/query"
	"prospector-engine/internal/source/util"
)

const defaultBaseURL = "https://serpapi.com"

type Client struct {
	apiKey  string
	baseURL string
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(apiKey string, limiter *util.HostLimiter) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		hc:      &http.Client{Timeout: 40 * time.Second},
		limiter: limiter,
	}
}

func (c *Client) Name() string { return "serpapi" }

// Response schema: organic_results and news_results carry different field
// sets; we defensively parse only what we map.
type searchResponse struct {
	OrganicResults []organicResult `json:"organic_results"`
	NewsResults    []newsResult    `json:"news_results"`
}

type organicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
	Date    string `json:"date"`
}

type newsResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
	Date    string `json:"date"`
}

// Fetch runs one search and maps organic results to type "web" and news
// results to type "news". This adapter degrades inline: on failure it
// returns one synthetic "error"-typed prospect alongside the error, so the
// failure stays visible in merged results.
func (c *Client) Fetch(ctx context.Context, p query.Params) ([]domain.Prospect, error) {
	u, err := c.buildURL(p)
	if err != nil {
		return c.fail(err), err
	}

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, u); err != nil {
			return c.fail(err), err
		}
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	res, err := c.hc.Do(req)
	if err != nil {
		err = fmt.Errorf("serpapi get: %w", err)
		return c.fail(err), err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		err = fmt.Errorf("serpapi status %d: %s", res.StatusCode, body)
		return c.fail(err), err
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		err = fmt.Errorf("serpapi decode: %w", err)
		return c.fail(err), err
	}

	var out []domain.Prospect
	if p.Type != "news" {
		for _, r := range sr.OrganicResults {
			out = append(out, mapResult(r.Title, r.Link, r.Snippet, r.Source, r.Date, "web"))
		}
	}
	if p.Type != "web" {
		for _, r := range sr.NewsResults {
			out = append(out, mapResult(r.Title, r.Link, r.Snippet, r.Source, r.Date, "news"))
		}
	}
	return out, nil
}

func (c *Client) buildURL(p query.Params) (string, error) {
	base, err := url.Parse(c.baseURL + "/search.json")
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("q", p.Effective)
	q.Set("api_key", c.apiKey)
	q.Set("num", fmt.Sprint(p.Limit+2))
	if p.Region != "" {
		q.Set("gl", p.Region)
	}
	if p.Type == "news" {
		q.Set("tbm", "nws")
	}
	if tbs := recencyTBS(p.Recency); tbs != "" {
		q.Set("tbs", tbs)
	}
	base.RawQuery = q.Encode()
	return base.String(), nil
}

func recencyTBS(recency string) string {
	switch recency {
	case "1d":
		return "qdr:d"
	case "7d":
		return "qdr:w"
	case "30d":
		return "qdr:m"
	}
	return ""
}

func mapResult(title, link, snippet, src, date, typ string) domain.Prospect {
	if src == "" {
		src = "serpapi"
	}
	return domain.Prospect{
		ID:            util.ProspectID(link, title),
		Title:         util.CleanText(title),
		URL:           link,
		Catalyst:      util.CleanText(snippet),
		PublishedDate: util.NormalizeDate(date),
		Type:          typ,
		Source:        src,
		Host:          util.HostOf(link),
	}
}

// fail builds the single inline error record for a failed call.
func (c *Client) fail(err error) []domain.Prospect {
	return []domain.Prospect{{
		ID:       util.HashString("error:serpapi:" + err.Error()),
		Title:    "Web search unavailable",
		Catalyst: err.Error(),
		Type:     "error",
		Source:   "serpapi",
	}}
}
