package samgov

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"prospector-engine/internal/domain"
	"prospector-engine/internal/query"
)

const sampleBody = `{
  "opportunitiesData": [
    {
      "noticeId": "n1",
      "title": "Fire Resistance Testing Services",
      "department": "DEPT OF DEFENSE",
      "subTier": "DEPT OF THE AIR FORCE",
      "office": "AFRL",
      "postedDate": "2026-02-10",
      "responseDeadLine": "2026-04-01T17:00:00-04:00",
      "uiLink": "https://sam.gov/opp/n1/view",
      "officeAddress": {"name": "", "city": "Dayton", "state": "OH"}
    },
    {
      "noticeId": "n2",
      "title": "Lab Equipment",
      "postedDate": "2026-02-11",
      "uiLink": "https://sam.gov/opp/n2/view",
      "officeAddress": {}
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New("sam-key", nil)
	c.baseURL = srv.URL
	c.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	return c
}

func params(req domain.SearchRequest) query.Params {
	req.Normalize()
	return query.Expander{}.Expand(req)
}

func TestFetchMapsOpportunities(t *testing.T) {
	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(sampleBody))
	})

	out, err := c.Fetch(context.Background(), params(domain.SearchRequest{Query: "fire testing", Limit: 10}))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}

	p := out[0]
	if p.Organization != "AFRL" {
		t.Fatalf("org = %q, want office fallback", p.Organization)
	}
	if p.Location != "Dayton, OH" {
		t.Fatalf("location = %q", p.Location)
	}
	if p.Type != "Government Contract" || p.Contact != "Contracting Officer" {
		t.Fatalf("prospect = %+v", p)
	}
	if p.BidDueDate != "2026-04-01T17:00:00-04:00" {
		t.Fatalf("due date = %q", p.BidDueDate)
	}

	if out[1].Organization != "Government Agency" {
		t.Fatalf("empty org fallback = %q", out[1].Organization)
	}
	if out[1].Location != "" {
		t.Fatalf("empty location = %q", out[1].Location)
	}

	if gotQuery.Get("keyword") != "fire testing" || gotQuery.Get("api_key") != "sam-key" {
		t.Fatalf("query = %v", gotQuery)
	}
	if gotQuery.Get("postedFrom") != "03/01/2025" || gotQuery.Get("postedTo") != "03/01/2026" {
		t.Fatalf("window = %q..%q", gotQuery.Get("postedFrom"), gotQuery.Get("postedTo"))
	}
}

func TestFetchHTTPErrorReturnsNoProspects(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})
	out, err := c.Fetch(context.Background(), params(domain.SearchRequest{Query: "q"}))
	if err == nil {
		t.Fatal("expected error")
	}
	if out != nil {
		t.Fatalf("out = %+v, want nil", out)
	}
}

func TestJoinLocationDropsEmpties(t *testing.T) {
	if got := joinLocation("Dayton", ""); got != "Dayton" {
		t.Fatalf("got %q", got)
	}
	if got := joinLocation("", ""); got != "" {
		t.Fatalf("got %q", got)
	}
}
