package alerts

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"prospector-engine/internal/source/util"
)

// item is one link pulled out of an alert digest email.
type item struct {
	Title string
	URL   string
}

// ParseAlertHTML extracts result links from an alert digest body. Multiple
// anchors can point at the same target (image + headline); they merge by
// canonical URL, keeping the longest anchor text as the title.
func ParseAlertHTML(htmlBody string) ([]item, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return nil, err
	}

	byURL := map[string]*item{}
	var order []string

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		target := unwrapRedirect(href)
		if target == "" || isServiceLink(target) {
			return
		}
		canon := util.CanonicalizeURL(target)

		it, ok := byURL[canon]
		if !ok {
			it = &item{URL: canon}
			byURL[canon] = it
			order = append(order, canon)
		}

		title := util.CleanText(a.Text())
		if len(title) > len(it.Title) {
			it.Title = title
		}
	})

	out := make([]item, 0, len(order))
	for _, k := range order {
		it := byURL[k]
		if it.Title == "" {
			continue
		}
		out = append(out, *it)
	}
	return out, nil
}

// unwrapRedirect resolves Google redirect wrappers
// (google.com/url?...&url=<target>) to the real target URL.
func unwrapRedirect(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}

	host := strings.ToLower(u.Host)
	if strings.HasSuffix(host, "google.com") && u.Path == "/url" {
		q := u.Query()
		for _, k := range []string{"url", "q"} {
			if v := q.Get(k); v != "" {
				return v
			}
		}
		return ""
	}
	return raw
}

// isServiceLink drops unsubscribe/settings/share links that appear in every
// digest.
func isServiceLink(raw string) bool {
	l := strings.ToLower(raw)
	for _, frag := range []string{
		"google.com/alerts",
		"unsubscribe",
		"notifications",
		"preferences",
		"mailto:",
	} {
		if strings.Contains(l, frag) {
			return true
		}
	}
	return false
}
