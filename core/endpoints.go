package core

import (
	"fmt"
	"strings"
)

// Environment selects the processor host. Every endpoint derived from one
// Endpoints value targets the same environment.
type Environment string

const (
	EnvironmentLive    Environment = "live"
	EnvironmentSandbox Environment = "sandbox"
)

func ParseEnvironment(value string) (Environment, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", string(EnvironmentLive):
		return EnvironmentLive, nil
	case string(EnvironmentSandbox):
		return EnvironmentSandbox, nil
	default:
		return "", fmt.Errorf("core: unknown environment %q", value)
	}
}

func (e Environment) Sandbox() bool {
	return e == EnvironmentSandbox
}

func (e Environment) BaseURL() string {
	if e.Sandbox() {
		return "https://api.sandbox.paypal.com"
	}
	return "https://api.paypal.com"
}

// Endpoints builds the processor URLs for one configured environment.
type Endpoints struct {
	base string
}

func NewEndpoints(env Environment) Endpoints {
	return Endpoints{base: env.BaseURL()}
}

// NewEndpointsWithBase overrides the host, used by tests to point the
// client at a local fake processor.
func NewEndpointsWithBase(base string) Endpoints {
	return Endpoints{base: strings.TrimRight(strings.TrimSpace(base), "/")}
}

func (e Endpoints) Token() string {
	return e.base + "/v1/oauth2/token"
}

func (e Endpoints) Payments() string {
	return e.base + "/v1/payments/payment"
}

func (e Endpoints) PaymentExecute(paymentID string) string {
	return e.base + "/v1/payments/payment/" + strings.TrimSpace(paymentID) + "/execute/"
}

func (e Endpoints) WebProfiles() string {
	return e.base + "/v1/payment-experience/web-profiles/"
}

func (e Endpoints) WebProfile(profileID string) string {
	return e.base + "/v1/payment-experience/" + strings.TrimSpace(profileID)
}
