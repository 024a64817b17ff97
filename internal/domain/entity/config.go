package entity

import (
	"fmt"
	"net/url"
	"time"

	"github.com/lite-lake/mijnhost-dns/internal/domain"
	"github.com/lite-lake/mijnhost-dns/internal/domain/valueobject"
)

// Config is the content of mijnhost.yaml after environment overrides.
type Config struct {
	APIKey          valueobject.SecretRef `yaml:"api_key"`
	UserAgent       string                `yaml:"user_agent,omitempty"`
	BaseURL         string                `yaml:"base_url,omitempty"`
	Timeout         time.Duration         `yaml:"timeout,omitempty"`
	ChallengeTarget string                `yaml:"challenge_target,omitempty"`
	Concurrency     int                   `yaml:"concurrency,omitempty"`
}

func (c *Config) Validate() error {
	if err := c.APIKey.Validate(); err != nil {
		return fmt.Errorf("api_key: %w", domain.ErrMissingAPIKey)
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: base_url %q", domain.ErrConfigValidateFail, c.BaseURL)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be non-negative", domain.ErrConfigValidateFail)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must be non-negative", domain.ErrConfigValidateFail)
	}
	return nil
}
