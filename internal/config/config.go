// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Cache struct {
		TTLSeconds int `yaml:"ttl_seconds" json:"ttl_seconds"`
	} `yaml:"cache" json:"cache"`

	Search struct {
		SourceTimeoutSeconds int     `yaml:"source_timeout_seconds" json:"source_timeout_seconds"`
		HostRatePerSec       float64 `yaml:"host_rate_per_sec" json:"host_rate_per_sec"`
		HostBurst            int     `yaml:"host_burst" json:"host_burst"`
		Version              string  `yaml:"version" json:"version"`
	} `yaml:"search" json:"search"`

	Warm struct {
		Enabled bool     `yaml:"enabled" json:"enabled"`
		Queries []string `yaml:"queries" json:"queries"`
	} `yaml:"warm" json:"warm"`

	Alerts struct {
		Enabled     bool     `yaml:"enabled" json:"enabled"`
		IMAPHost    string   `yaml:"imap_host" json:"imap_host"`
		IMAPPort    int      `yaml:"imap_port" json:"imap_port"`
		Username    string   `yaml:"username" json:"username"`
		Mailbox     string   `yaml:"mailbox" json:"mailbox"`
		Senders     []string `yaml:"senders" json:"senders"`
		MaxMessages int      `yaml:"max_messages" json:"max_messages"`
	} `yaml:"alerts" json:"alerts"`

	// Presets map a named category to query clauses appended in list order.
	Presets map[string][]string `yaml:"presets" json:"presets"`

	Scoring ScoringConfig `yaml:"scoring" json:"scoring"`
}

// ScoringConfig holds the ranking tables. They are data, not logic, so they
// can be tuned without touching the aggregation code.
type ScoringConfig struct {
	NewsBonus          int      `yaml:"news_bonus" json:"news_bonus"`
	TrustedSuffixBonus int      `yaml:"trusted_suffix_bonus" json:"trusted_suffix_bonus"`
	TrustedSuffixes    []string `yaml:"trusted_suffixes" json:"trusted_suffixes"`
	TrustedHosts       []string `yaml:"trusted_hosts" json:"trusted_hosts"`
	CodeBonus          int      `yaml:"code_bonus" json:"code_bonus"`
	StandardCodes      []string `yaml:"standard_codes" json:"standard_codes"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
