package util

import "testing"

func TestCanonicalizeURLStripsTracking(t *testing.T) {
	got := CanonicalizeURL("HTTPS://Example.com/path?utm_source=x&b=2&a=1&gclid=abc#frag")
	want := "https://example.com/path?a=1&b=2"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCanonicalizeURLSameForEquivalentInputs(t *testing.T) {
	a := CanonicalizeURL("https://example.com/p?x=1&utm_campaign=spring")
	b := CanonicalizeURL("https://EXAMPLE.com/p?x=1")
	if a != b {
		t.Fatalf("%q != %q", a, b)
	}
}

func TestCanonicalizeURLEmptyAndGarbage(t *testing.T) {
	if got := CanonicalizeURL("   "); got != "" {
		t.Fatalf("blank input: got %q", got)
	}
	if got := CanonicalizeURL("::not a url"); got != "::not a url" {
		t.Fatalf("unparseable input should pass through, got %q", got)
	}
}

func TestHostOf(t *testing.T) {
	cases := map[string]string{
		"https://www.Example.EDU/page": "example.edu",
		"https://sam.gov/opp/123":      "sam.gov",
		"not a url":                    "",
		"":                             "",
	}
	for in, want := range cases {
		if got := HostOf(in); got != want {
			t.Errorf("HostOf(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanText(t *testing.T) {
	if got := CleanText("  a b \n c  "); got != "a b c" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"2026-03-05T10:00:00Z": "2026-03-05",
		"2026-03-05":           "2026-03-05",
		"Mar 5, 2026":          "2026-03-05",
		"2 days ago":           "",
		"":                     "",
	}
	for in, want := range cases {
		if got := NormalizeDate(in); got != want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProspectIDStable(t *testing.T) {
	a := ProspectID("https://example.com/x?utm_source=a", "Title")
	b := ProspectID("https://EXAMPLE.com/x", "Different Title")
	if a != b {
		t.Fatal("same canonical URL must give same id")
	}

	c := ProspectID("", "Fire Lab Opening")
	d := ProspectID("", "fire lab opening")
	if c != d {
		t.Fatal("title ids must be case-insensitive")
	}
	if a == c {
		t.Fatal("url and title ids should differ")
	}
}
