package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus any findings. Defaults
// are filled in here so the rest of the engine never sees zero values.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	if out.App.Port <= 0 {
		out.App.Port = 8471
	}
	if out.Cache.TTLSeconds <= 0 {
		out.Cache.TTLSeconds = 3600
	}
	if out.Search.SourceTimeoutSeconds <= 0 {
		out.Search.SourceTimeoutSeconds = 45
	}
	if out.Search.HostRatePerSec <= 0 {
		out.Search.HostRatePerSec = 3
	}
	if out.Search.HostBurst <= 0 {
		out.Search.HostBurst = 2
	}
	if strings.TrimSpace(out.Search.Version) == "" {
		out.Search.Version = "v1"
	}
	if out.Alerts.MaxMessages <= 0 {
		out.Alerts.MaxMessages = 25
	}
	if strings.TrimSpace(out.Alerts.Mailbox) == "" {
		out.Alerts.Mailbox = "INBOX"
	}

	out.Warm.Queries = trimList(out.Warm.Queries)
	out.Alerts.Senders = trimList(out.Alerts.Senders)
	out.Scoring.TrustedSuffixes = trimList(out.Scoring.TrustedSuffixes)
	out.Scoring.TrustedHosts = trimList(out.Scoring.TrustedHosts)
	out.Scoring.StandardCodes = trimList(out.Scoring.StandardCodes)
	for name, clauses := range out.Presets {
		out.Presets[name] = trimList(clauses)
	}

	if out.Cache.TTLSeconds < 60 {
		res.addWarn("cache.ttl_seconds is very low (%d); upstreams may be hit on nearly every request.", out.Cache.TTLSeconds)
	}

	if out.Warm.Enabled && len(out.Warm.Queries) == 0 {
		res.addWarn("warm.enabled is true but warm.queries is empty; nothing will be primed.")
	}

	if out.Alerts.Enabled {
		if strings.TrimSpace(out.Alerts.IMAPHost) == "" {
			res.addErr("alerts.imap_host is required when alerts.enabled=true")
		}
		if out.Alerts.IMAPPort == 0 {
			res.addErr("alerts.imap_port is required when alerts.enabled=true")
		}
		if strings.TrimSpace(out.Alerts.Username) == "" {
			res.addErr("alerts.username is required when alerts.enabled=true")
		}
		if len(out.Alerts.Senders) == 0 {
			res.addWarn("alerts.senders is empty; the alerts source may match nothing.")
		}
	}

	if len(out.Scoring.StandardCodes) == 0 {
		res.addWarn("scoring.standard_codes is empty; keyword bonuses are disabled.")
	}

	return out, res
}
