// Package openai is the LLM-discovery adapter: it asks a chat model for a
// fixed-shape JSON array of organizations matching the query.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"prospector-engine/internal/domain"
	"prospector-engine/internal/query"
	"prospector-engine/internal/source/util"
)

const (
	defaultBaseURL = "https://api.openai.com"
	model          = "gpt-4o-mini"
	maxOrgs        = 5
)

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

func (c *Client) Name() string { return "openai" }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// org is the shape the prompt demands back. Anything that does not decode
// into this fails the adapter; we never partially trust malformed output.
type org struct {
	CompanyName string `json:"companyName"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

func (c *Client) Fetch(ctx context.Context, p query.Params) ([]domain.Prospect, error) {
	prompt := fmt.Sprintf(`Find %d REAL organizations relevant to %q in %s. Focus on organizations that actually exist. Return a JSON array with this exact format:
[
  {
    "companyName": "Actual Organization Name",
    "contactName": "Real Contact Person",
    "email": "email@domain.com",
    "phone": "phone number",
    "location": "City, State",
    "description": "What they do"
  }
]
Only return valid JSON. No other text.`, maxOrgs, p.Effective, p.Region)

	body, _ := json.Marshal(chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   2000,
		Temperature: 0.3,
	})

	endpoint := c.baseURL + "/v1/chat/completions"
	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, endpoint); err != nil {
			return nil, err
		}
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai post: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("openai status %d: %s", res.StatusCode, b)
	}

	var cr chatResponse
	if err := json.NewDecoder(res.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("openai decode: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty choices")
	}

	orgs, err := parseOrgs(cr.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Prospect, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, mapOrg(o))
	}
	return out, nil
}

// parseOrgs tolerates markdown code fences around the array but nothing
// else; structurally invalid JSON fails the whole call.
func parseOrgs(content string) ([]org, error) {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	var orgs []org
	if err := json.Unmarshal([]byte(s), &orgs); err != nil {
		return nil, fmt.Errorf("openai returned invalid JSON: %w", err)
	}
	return orgs, nil
}

func mapOrg(o org) domain.Prospect {
	name := util.CleanText(o.CompanyName)
	if name == "" {
		name = "Unknown Organization"
	}
	return domain.Prospect{
		ID:           util.ProspectID("", name),
		Title:        name,
		Organization: name,
		Location:     util.CleanText(o.Location),
		Catalyst:     util.CleanText(o.Description),
		Reasoning:    "Model-suggested organization: " + util.CleanText(o.Description),
		Type:         "Research",
		Source:       "openai",
		Contact:      util.CleanText(o.ContactName),
		Phone:        util.CleanText(o.Phone),
		Email:        util.CleanText(o.Email),
	}
}
