package domain

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	r := SearchRequest{Query: "  fire testing  "}
	r.Normalize()
	if r.Query != "fire testing" {
		t.Fatalf("query = %q", r.Query)
	}
	if r.Region != "us" {
		t.Fatalf("region = %q", r.Region)
	}
	if r.Limit != LimitDefault {
		t.Fatalf("limit = %d", r.Limit)
	}
}

func TestNormalizeClampsLimit(t *testing.T) {
	cases := map[int]int{-3: 1, 0: 10, 1: 1, 25: 25, 50: 50, 999: 50}
	for in, want := range cases {
		r := SearchRequest{Query: "q", Limit: in}
		r.Normalize()
		if r.Limit != want {
			t.Errorf("limit %d -> %d, want %d", in, r.Limit, want)
		}
	}
}

func TestEnsureShape(t *testing.T) {
	var resp SearchResponse
	resp.EnsureShape()
	if resp.Prospects == nil || resp.Sources == nil || resp.Errors == nil {
		t.Fatal("slices must be non-nil")
	}
}

func TestDedupeKeyPrecedence(t *testing.T) {
	p := Prospect{ID: "i", Title: "T", URL: "HTTPS://X"}
	if p.DedupeKey() != "https://x" {
		t.Fatalf("key = %q", p.DedupeKey())
	}
	p.URL = ""
	if p.DedupeKey() != "t" {
		t.Fatalf("key = %q", p.DedupeKey())
	}
	p.Title = ""
	if p.DedupeKey() != "i" {
		t.Fatalf("key = %q", p.DedupeKey())
	}
}
