package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultTokenRenewBefore mirrors the processor-side race window: a
	// token that expires at the processor while still valid locally would
	// fail mid-flight, so expiry is pulled in by this margin.
	DefaultTokenRenewBefore = 50 * time.Second

	DefaultRequestTimeout = 60 * time.Second
)

// ProfileConfig flags are pointers so an unset flag keeps its default
// while an explicit false still overrides it.
type ProfileConfig struct {
	Name            string `koanf:"name" mapstructure:"name"`
	BrandName       string `koanf:"brand_name" mapstructure:"brand_name"`
	LocaleCode      string `koanf:"locale_code" mapstructure:"locale_code"`
	NoShipping      *bool  `koanf:"no_shipping" mapstructure:"no_shipping"`
	AddressOverride *bool  `koanf:"address_override" mapstructure:"address_override"`
}

// Bool returns a pointer to v for the optional profile flags.
func Bool(v bool) *bool { return &v }

type Config struct {
	Environment         string        `koanf:"environment" mapstructure:"environment"`
	ClientID            string        `koanf:"client_id" mapstructure:"client_id"`
	ClientSecret        string        `koanf:"client_secret" mapstructure:"client_secret"`
	CurrencyCode        string        `koanf:"currency_code" mapstructure:"currency_code"`
	SiteName            string        `koanf:"site_name" mapstructure:"site_name"`
	ReturnURL           string        `koanf:"return_url" mapstructure:"return_url"`
	CancelURL           string        `koanf:"cancel_url" mapstructure:"cancel_url"`
	ExperienceProfileID string        `koanf:"experience_profile_id" mapstructure:"experience_profile_id"`
	RequestTimeout      time.Duration `koanf:"request_timeout" mapstructure:"request_timeout"`
	TokenRenewBefore    time.Duration `koanf:"token_renew_before" mapstructure:"token_renew_before"`
	Profile             ProfileConfig `koanf:"profile" mapstructure:"profile"`
}

func DefaultConfig() Config {
	return Config{
		Environment:      string(EnvironmentLive),
		CurrencyCode:     "BRL",
		RequestTimeout:   DefaultRequestTimeout,
		TokenRenewBefore: DefaultTokenRenewBefore,
		Profile: ProfileConfig{
			LocaleCode:      "BR",
			NoShipping:      Bool(false),
			AddressOverride: Bool(true),
		},
	}
}

func (c Config) Validate() error {
	if _, err := ParseEnvironment(c.Environment); err != nil {
		return err
	}
	if strings.TrimSpace(c.ClientID) == "" {
		return fmt.Errorf("core: client_id is required")
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		return fmt.Errorf("core: client_secret is required")
	}
	if len(strings.TrimSpace(c.CurrencyCode)) != 3 {
		return fmt.Errorf("core: currency_code must be a 3-letter code")
	}
	if c.TokenRenewBefore <= 0 {
		return fmt.Errorf("core: token_renew_before must be positive")
	}
	return nil
}

// Env returns the parsed environment; Validate guarantees it parses.
func (c Config) Env() Environment {
	env, err := ParseEnvironment(c.Environment)
	if err != nil {
		return EnvironmentLive
	}
	return env
}
