package serp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"prospector-engine/internal/domain"
	"prospector-engine/internal/query"
)

const sampleBody = `{
  "organic_results": [
    {"title": "Fire Lab Expansion", "link": "https://example.edu/lab", "snippet": "New UL 94 chamber", "date": "2026-03-05"}
  ],
  "news_results": [
    {"title": "University opens test facility", "link": "https://news.example.com/a", "snippet": "coverage", "source": "Example News", "date": "Mar 5, 2026"}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New("test-key", nil)
	c.baseURL = srv.URL
	return c, srv
}

func params(req domain.SearchRequest) query.Params {
	req.Normalize()
	return query.Expander{}.Expand(req)
}

func TestFetchMapsWebAndNews(t *testing.T) {
	var gotQuery url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
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

	web, news := out[0], out[1]
	if web.Type != "web" || web.Title != "Fire Lab Expansion" || web.Host != "example.edu" {
		t.Fatalf("web = %+v", web)
	}
	if web.PublishedDate != "2026-03-05" {
		t.Fatalf("web date = %q", web.PublishedDate)
	}
	if news.Type != "news" || news.Source != "Example News" {
		t.Fatalf("news = %+v", news)
	}
	if news.PublishedDate != "2026-03-05" {
		t.Fatalf("news date = %q", news.PublishedDate)
	}

	if gotQuery.Get("q") != "fire testing" || gotQuery.Get("api_key") != "test-key" {
		t.Fatalf("query = %v", gotQuery)
	}
	if gotQuery.Get("num") != "12" {
		t.Fatalf("num = %q, want limit+2", gotQuery.Get("num"))
	}
	if gotQuery.Get("gl") != "us" {
		t.Fatalf("gl = %q", gotQuery.Get("gl"))
	}
}

func TestFetchNewsTypeSetsTBMAndFiltersOrganic(t *testing.T) {
	var gotQuery url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(sampleBody))
	})

	out, err := c.Fetch(context.Background(), params(domain.SearchRequest{Query: "q", Type: "news", Recency: "7d"}))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Type != "news" {
		t.Fatalf("out = %+v", out)
	}
	if gotQuery.Get("tbm") != "nws" {
		t.Fatalf("tbm = %q", gotQuery.Get("tbm"))
	}
	if gotQuery.Get("tbs") != "qdr:w" {
		t.Fatalf("tbs = %q", gotQuery.Get("tbs"))
	}
}

func TestFetchWebTypeFiltersNews(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleBody))
	})
	out, err := c.Fetch(context.Background(), params(domain.SearchRequest{Query: "q", Type: "web"}))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Type != "web" {
		t.Fatalf("out = %+v", out)
	}
}

func TestFetchErrorReturnsInlineErrorRecord(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	out, err := c.Fetch(context.Background(), params(domain.SearchRequest{Query: "q"}))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(out) != 1 || out[0].Type != "error" || out[0].Source != "serpapi" {
		t.Fatalf("out = %+v", out)
	}
}

func TestRecencyTBS(t *testing.T) {
	cases := map[string]string{"1d": "qdr:d", "7d": "qdr:w", "30d": "qdr:m", "": "", "90d": ""}
	for in, want := range cases {
		if got := recencyTBS(in); got != want {
			t.Errorf("recencyTBS(%q) = %q, want %q", in, got, want)
		}
	}
}
