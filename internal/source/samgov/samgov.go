// Package samgov is the government-opportunity adapter (SAM.gov
// opportunities v2).
package samgov

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"prospector-engine/internal/domain"
	"prospector-engine/internal/query"
	"prospector-engine/internal/source/util"
)

const defaultBaseURL = "https://api.sam.gov"

type Client struct {
	apiKey  string
	baseURL string
	hc      *http.Client
	limiter *util.HostLimiter
	now     func() time.Time
}

func New(apiKey string, limiter *util.HostLimiter) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		hc:      &http.Client{Timeout: 40 * time.Second},
		limiter: limiter,
		now:     time.Now,
	}
}

func (c *Client) Name() string { return "sam.gov" }

type searchResponse struct {
	OpportunitiesData []opportunity `json:"opportunitiesData"`
}

type opportunity struct {
	NoticeID         string `json:"noticeId"`
	Title            string `json:"title"`
	Department       string `json:"department"`
	SubTier          string `json:"subTier"`
	Office           string `json:"office"`
	PostedDate       string `json:"postedDate"`
	ResponseDeadLine string `json:"responseDeadLine"`
	UILink           string `json:"uiLink"`
	OfficeAddress    struct {
		Name  string `json:"name"`
		City  string `json:"city"`
		State string `json:"state"`
	} `json:"officeAddress"`
}

func (c *Client) Fetch(ctx context.Context, p query.Params) ([]domain.Prospect, error) {
	base, err := url.Parse(c.baseURL + "/opportunities/v2/search")
	if err != nil {
		return nil, err
	}

	// Window opportunities to the last year; SAM rejects open-ended queries.
	from := c.now().AddDate(-1, 0, 0).Format("01/02/2006")
	to := c.now().Format("01/02/2006")

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("keyword", p.Effective)
	q.Set("limit", fmt.Sprint(p.Limit))
	q.Set("postedFrom", from)
	q.Set("postedTo", to)
	base.RawQuery = q.Encode()

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, base.String()); err != nil {
			return nil, err
		}
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sam.gov get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("sam.gov status %d: %s", res.StatusCode, body)
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("sam.gov decode: %w", err)
	}

	out := make([]domain.Prospect, 0, len(sr.OpportunitiesData))
	for _, opp := range sr.OpportunitiesData {
		out = append(out, mapOpportunity(opp))
	}
	return out, nil
}

func mapOpportunity(opp opportunity) domain.Prospect {
	// First non-empty of office address name, office, sub-tier, department.
	org := firstNonEmpty(opp.OfficeAddress.Name, opp.Office, opp.SubTier, opp.Department)
	if org == "" {
		org = "Government Agency"
	}

	return domain.Prospect{
		ID:            util.ProspectID(opp.UILink, opp.Title),
		Title:         util.CleanText(opp.Title),
		URL:           opp.UILink,
		Organization:  util.CleanText(org),
		Location:      joinLocation(opp.OfficeAddress.City, opp.OfficeAddress.State),
		PublishedDate: opp.PostedDate,
		BidDueDate:    opp.ResponseDeadLine,
		Catalyst:      util.CleanText(opp.Title),
		Fit:           "Testing equipment and services for government contracts",
		Type:          "Government Contract",
		Source:        "sam.gov",
		Host:          util.HostOf(opp.UILink),
		Contact:       "Contracting Officer",
	}
}

func firstNonEmpty(xs ...string) string {
	for _, x := range xs {
		if strings.TrimSpace(x) != "" {
			return strings.TrimSpace(x)
		}
	}
	return ""
}

// joinLocation drops empty parts; "Dayton" + "" is "Dayton", not "Dayton, ".
func joinLocation(parts ...string) string {
	var keep []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keep = append(keep, p)
		}
	}
	return strings.Join(keep, ", ")
}
