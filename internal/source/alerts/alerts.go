// Package alerts is the email-digest adapter: it reads alert emails (e.g.
// Google Alerts) over IMAP and turns their result links into web prospects.
package alerts

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"prospector-engine/internal/config"
	"prospector-engine/internal/domain"
	"prospector-engine/internal/query"
	"prospector-engine/internal/source/util"
)

type Fetcher struct {
	Cfg      config.Config
	Password string
}

func (f *Fetcher) Name() string { return "alerts" }

// Fetch opens a read-only IMAP session, pulls recent unseen digests from the
// configured senders, and maps their links to prospects. Messages are fetched
// with BODY.PEEK[] and the mailbox is opened read-only, so repeated calls
// within a cache window see the same digests.
func (f *Fetcher) Fetch(ctx context.Context, p query.Params) ([]domain.Prospect, error) {
	a := f.Cfg.Alerts

	addr := fmt.Sprintf("%s:%d", a.IMAPHost, a.IMAPPort)
	c, err := imapclient.DialTLS(addr, &imapclient.Options{
		TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12, ServerName: a.IMAPHost},
	})
	if err != nil {
		return nil, fmt.Errorf("alerts dial: %w", err)
	}
	defer c.Close()

	// Best-effort close when the aggregation timeout fires.
	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()

	if err := c.Login(a.Username, f.Password).Wait(); err != nil {
		return nil, fmt.Errorf("alerts login: %w", err)
	}

	if _, err := c.Select(a.Mailbox, &imap.SelectOptions{ReadOnly: true}).Wait(); err != nil {
		return nil, fmt.Errorf("alerts select %s: %w", a.Mailbox, err)
	}

	msgs, err := fetchRecentUnseen(ctx, c, a.MaxMessages)
	if err != nil {
		return nil, err
	}

	var out []domain.Prospect
	for _, m := range msgs {
		if !fromAllowedSender(m.From, a.Senders) {
			continue
		}
		htmlBody := htmlFromRFC822(m.Raw)
		if htmlBody == "" {
			continue
		}
		items, err := ParseAlertHTML(htmlBody)
		if err != nil {
			continue
		}
		date := m.Date.Format("2006-01-02")
		for _, it := range items {
			out = append(out, domain.Prospect{
				ID:            util.ProspectID(it.URL, it.Title),
				Title:         it.Title,
				URL:           it.URL,
				Catalyst:      util.CleanText(m.Subject),
				PublishedDate: date,
				Type:          "web",
				Source:        "alerts",
				Host:          util.HostOf(it.URL),
			})
		}
	}

	if err := c.Logout().Wait(); err != nil {
		// Session is done either way; the prospects are already ours.
		_ = err
	}
	return out, nil
}

type message struct {
	From    string
	Subject string
	Date    time.Time
	Raw     []byte
}

func fetchRecentUnseen(ctx context.Context, c *imapclient.Client, max int) ([]message, error) {
	if max <= 0 {
		max = 25
	}

	criteria := &imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
		Since:   time.Now().AddDate(0, 0, -7),
	}
	searchData, err := c.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("alerts uid search: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}

	// Newest first.
	for i, j := 0, len(uids)-1; i < j; i, j = i+1, j-1 {
		uids[i], uids[j] = uids[j], uids[i]
	}
	if len(uids) > max {
		uids = uids[:max]
	}

	bodyAll := &imap.FetchItemBodySection{
		Specifier: imap.PartSpecifierNone,
		Peek:      true,
	}
	fetchCmd := c.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		UID:         true,
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{bodyAll},
	})
	defer func() { _ = fetchCmd.Close() }()

	var out []message
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		msgData := fetchCmd.Next()
		if msgData == nil {
			break
		}
		buf, err := msgData.Collect()
		if err != nil {
			return nil, fmt.Errorf("alerts fetch collect: %w", err)
		}

		var m message
		if buf.Envelope != nil {
			m.Subject = buf.Envelope.Subject
			m.Date = buf.Envelope.Date
			if len(buf.Envelope.From) > 0 {
				m.From = buf.Envelope.From[0].Addr()
			}
		}
		if b := buf.FindBodySection(bodyAll); b != nil {
			m.Raw = append([]byte(nil), b...)
		}
		if m.Date.IsZero() {
			m.Date = time.Now()
		}
		out = append(out, m)
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("alerts fetch close: %w", err)
	}
	return out, nil
}

func fromAllowedSender(from string, senders []string) bool {
	if len(senders) == 0 {
		return false
	}
	lf := strings.ToLower(strings.TrimSpace(from))
	if lf == "" {
		return false
	}
	for _, s := range senders {
		if strings.Contains(lf, strings.ToLower(strings.TrimSpace(s))) {
			return true
		}
	}
	return false
}

// Enabled reports whether this adapter has everything it needs to run.
func (f *Fetcher) Enabled() bool {
	a := f.Cfg.Alerts
	return a.Enabled &&
		strings.TrimSpace(a.IMAPHost) != "" &&
		a.IMAPPort != 0 &&
		strings.TrimSpace(a.Username) != "" &&
		strings.TrimSpace(f.Password) != ""
}
