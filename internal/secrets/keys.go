// Package secrets resolves upstream credentials. Environment variables win;
// the OS keychain is the fallback so keys never have to live in the yaml
// config.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"prospector-engine/internal/config"
)

// KeyringService groups the engine's secrets in the OS keychain.
const KeyringService = "prospector"

// Env var names per adapter. Absence disables the adapter, it is not an
// error.
const (
	EnvSerpAPIKey = "SERPAPI_KEY"
	EnvSamAPIKey  = "SAM_API_KEY"
	EnvOpenAIKey  = "OPENAI_API_KEY"
	EnvRedisURL   = "REDIS_URL"
	EnvCronSecret = "CRON_SECRET"
)

// APIKey returns the credential stored under name: the env var when set,
// else the keychain entry of the same name, else "".
func APIKey(name string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	if v, err := keyring.Get(KeyringService, name); err == nil {
		return strings.TrimSpace(v)
	}
	return ""
}

func SetAPIKey(name, value string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("key name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("key value is empty")
	}
	return keyring.Set(KeyringService, name, value)
}

func DeleteAPIKey(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("key name is empty")
	}
	return keyring.Delete(KeyringService, name)
}

// IMAPPassword looks up the alerts mailbox password for the configured
// account.
func IMAPPassword(cfg config.Config) (string, error) {
	account := IMAPKeyringAccount(cfg)
	pw, err := keyring.Get(KeyringService, account)
	if err == nil && strings.TrimSpace(pw) != "" {
		return pw, nil
	}
	return "", errors.New("alerts IMAP password not found in keychain")
}

func SetIMAPPassword(cfg config.Config, password string) error {
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, IMAPKeyringAccount(cfg), password)
}

func IMAPKeyringAccount(cfg config.Config) string {
	return fmt.Sprintf("prospector:imap:%s@%s",
		cfg.Alerts.Username, cfg.Alerts.IMAPHost)
}
