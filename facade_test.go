package paypalplus

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-paypal-plus/core"
)

type staticTokenSource struct{}

func (staticTokenSource) Token(context.Context) (core.Credential, error) {
	return core.Credential{
		AccessToken: "token-1",
		TokenType:   "Bearer",
		ExpiresAt:   time.Now().Add(time.Hour),
	}, nil
}

func (staticTokenSource) Invalidate() {}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Environment = string(EnvironmentSandbox)
	cfg.ClientID = "client-id"
	cfg.ClientSecret = "client-secret"
	cfg.SiteName = "Example Store"
	cfg.ReturnURL = "https://store.example.com/return"
	cfg.CancelURL = "https://store.example.com/cancel"
	return cfg
}

func TestNewGatewayWiresComponents(t *testing.T) {
	gateway, err := New(testConfig(), WithTokenSource(staticTokenSource{}))
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}

	if gateway.Client() == nil {
		t.Fatalf("expected processor client")
	}
	if gateway.Orchestrator() == nil {
		t.Fatalf("expected checkout orchestrator")
	}
	if gateway.Profiles() == nil {
		t.Fatalf("expected experience profile manager")
	}

	commands := gateway.Commands()
	if commands.CreatePayment == nil || commands.ExecutePayment == nil {
		t.Fatalf("expected payment commands to be wired")
	}
	if commands.CreateWebProfile == nil || commands.DeleteWebProfile == nil {
		t.Fatalf("expected web profile commands to be wired")
	}

	queries := gateway.Queries()
	if queries.LoadPaymentAnnotation == nil || queries.LoadRememberedCards == nil {
		t.Fatalf("expected query handlers to be wired")
	}
}

func TestNewGatewayRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.ClientSecret = ""
	if _, err := New(cfg); err == nil {
		t.Fatalf("expected missing client secret to fail construction")
	}

	cfg = testConfig()
	cfg.Environment = "staging"
	if _, err := New(cfg); err == nil {
		t.Fatalf("expected unknown environment to fail construction")
	}
}

type staticLoader map[string]any

func (l staticLoader) LoadRaw(context.Context) (map[string]any, error) {
	return l, nil
}

func TestSetupLayersRuntimeOverConfig(t *testing.T) {
	provider := core.NewCfgxConfigProvider(staticLoader{
		"environment":   string(EnvironmentSandbox),
		"client_id":     "client-id",
		"client_secret": "client-secret",
		"currency_code": "BRL",
		"site_name":     "Example Store",
	})

	runtime := testConfig()
	runtime.CurrencyCode = "USD"

	gateway, err := Setup(context.Background(), runtime,
		WithConfigProvider(provider),
		WithTokenSource(staticTokenSource{}),
	)
	if err != nil {
		t.Fatalf("setup gateway: %v", err)
	}
	if got := gateway.Config().CurrencyCode; got != "USD" {
		t.Fatalf("expected runtime currency to win, got %q", got)
	}
	if gateway.Config().Env() != EnvironmentSandbox {
		t.Fatalf("expected sandbox environment, got %q", gateway.Config().Env())
	}
}
