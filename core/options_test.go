package core

import (
	"context"
	"errors"
	"testing"
)

type mapLoader map[string]any

func (l mapLoader) LoadRaw(context.Context) (map[string]any, error) {
	return l, nil
}

type failingLoader struct{}

func (failingLoader) LoadRaw(context.Context) (map[string]any, error) {
	return nil, errors.New("config backend unavailable")
}

func TestCfgxConfigProviderLoadsOverDefaults(t *testing.T) {
	provider := NewCfgxConfigProvider(mapLoader{
		"environment":   "sandbox",
		"client_id":     "file-client",
		"client_secret": "file-secret",
		"site_name":     "Loja Exemplo",
	})

	cfg, err := provider.Load(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ClientID != "file-client" {
		t.Fatalf("expected loaded client id, got %q", cfg.ClientID)
	}
	if cfg.CurrencyCode != "BRL" {
		t.Fatalf("expected default currency to survive, got %q", cfg.CurrencyCode)
	}
	if cfg.Profile.LocaleCode != "BR" {
		t.Fatalf("expected default profile locale to survive, got %q", cfg.Profile.LocaleCode)
	}
}

func TestCfgxConfigProviderValidatesLoadedConfig(t *testing.T) {
	provider := NewCfgxConfigProvider(mapLoader{
		"environment": "sandbox",
		"client_id":   "file-client",
		// client_secret intentionally absent
	})

	if _, err := provider.Load(context.Background(), DefaultConfig()); err == nil {
		t.Fatalf("expected incomplete file config to fail validation")
	}
}

func TestCfgxConfigProviderPropagatesLoaderErrors(t *testing.T) {
	provider := NewCfgxConfigProvider(failingLoader{})
	if _, err := provider.Load(context.Background(), DefaultConfig()); err == nil {
		t.Fatalf("expected loader failure to propagate")
	}
}

func TestGoOptionsResolverLayering(t *testing.T) {
	defaults := DefaultConfig()

	loaded := defaults
	loaded.Environment = "sandbox"
	loaded.ClientID = "file-client"
	loaded.ClientSecret = "file-secret"
	loaded.CurrencyCode = "BRL"
	loaded.SiteName = "Loja Exemplo"

	runtime := Config{
		ClientID:     "runtime-client",
		ClientSecret: "runtime-secret",
	}

	resolved, err := GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ClientID != "runtime-client" {
		t.Fatalf("expected runtime client id to win, got %q", resolved.ClientID)
	}
	if resolved.SiteName != "Loja Exemplo" {
		t.Fatalf("expected file site name to survive, got %q", resolved.SiteName)
	}
	if resolved.Environment != "sandbox" {
		t.Fatalf("expected file environment to survive, got %q", resolved.Environment)
	}
	if resolved.CurrencyCode != "BRL" {
		t.Fatalf("expected default currency, got %q", resolved.CurrencyCode)
	}
}

func TestGoOptionsResolverProfileFlags(t *testing.T) {
	defaults := DefaultConfig()

	loaded := defaults
	loaded.Environment = "sandbox"
	loaded.ClientID = "file-client"
	loaded.ClientSecret = "file-secret"
	loaded.Profile.AddressOverride = Bool(false)

	resolved, err := GoOptionsResolver{}.Resolve(defaults, loaded, Config{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Profile.AddressOverride == nil || *resolved.Profile.AddressOverride {
		t.Fatalf("expected explicit address_override false to win over the default")
	}
	if resolved.Profile.NoShipping == nil || *resolved.Profile.NoShipping {
		t.Fatalf("expected default no_shipping false to survive, got %+v", resolved.Profile.NoShipping)
	}

	runtime := Config{Profile: ProfileConfig{NoShipping: Bool(true)}}
	resolved, err = GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Profile.NoShipping == nil || !*resolved.Profile.NoShipping {
		t.Fatalf("expected runtime no_shipping true to win")
	}
	if resolved.Profile.AddressOverride == nil || *resolved.Profile.AddressOverride {
		t.Fatalf("expected file address_override false to survive the runtime layer")
	}
}

func TestGoOptionsResolverValidatesResult(t *testing.T) {
	defaults := DefaultConfig()
	loaded := defaults

	// no layer supplies credentials
	if _, err := (GoOptionsResolver{}).Resolve(defaults, loaded, Config{}); err == nil {
		t.Fatalf("expected unresolved credentials to fail validation")
	}
}

func TestResolveConfigWithoutProvider(t *testing.T) {
	runtime := Config{
		Environment:  "sandbox",
		ClientID:     "runtime-client",
		ClientSecret: "runtime-secret",
	}

	resolved, err := ResolveConfig(context.Background(), nil, nil, runtime)
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if resolved.ClientID != "runtime-client" {
		t.Fatalf("expected runtime credentials, got %q", resolved.ClientID)
	}
	if resolved.CurrencyCode != "BRL" {
		t.Fatalf("expected defaults underneath runtime, got %q", resolved.CurrencyCode)
	}
	if resolved.TokenRenewBefore != DefaultTokenRenewBefore {
		t.Fatalf("expected default renewal margin, got %s", resolved.TokenRenewBefore)
	}
}
