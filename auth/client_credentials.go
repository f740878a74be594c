package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-paypal-plus/core"
	"github.com/goliatone/go-paypal-plus/transport"
)

// ClientCredentialsConfig wires the processor token endpoint. RenewBefore
// is subtracted from the reported expires_in so the local expiry always
// precedes the processor-side one.
type ClientCredentialsConfig struct {
	ClientID       string
	ClientSecret   string
	Endpoints      core.Endpoints
	RequestTimeout time.Duration
	RenewBefore    time.Duration
	Transport      core.TransportAdapter
	Logger         core.Logger
	Now            func() time.Time
}

// ClientCredentialsTokenSource caches a single process-wide credential
// slot. Concurrent refreshes are tolerated: a refresh is idempotent and
// the last writer wins.
type ClientCredentialsTokenSource struct {
	config    ClientCredentialsConfig
	transport core.TransportAdapter
	logger    core.Logger

	mu     sync.Mutex
	cached core.Credential
}

func NewClientCredentialsTokenSource(cfg ClientCredentialsConfig) *ClientCredentialsTokenSource {
	renewBefore := cfg.RenewBefore
	if renewBefore <= 0 {
		renewBefore = core.DefaultTokenRenewBefore
	}
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = core.DefaultRequestTimeout
	}
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	adapter := cfg.Transport
	if adapter == nil {
		adapter = transport.NewRESTAdapter(nil)
	}
	_, logger := glog.Resolve("paypalplus.auth", nil, cfg.Logger)

	return &ClientCredentialsTokenSource{
		config: ClientCredentialsConfig{
			ClientID:       strings.TrimSpace(cfg.ClientID),
			ClientSecret:   strings.TrimSpace(cfg.ClientSecret),
			Endpoints:      cfg.Endpoints,
			RequestTimeout: requestTimeout,
			RenewBefore:    renewBefore,
			Now:            now,
		},
		transport: adapter,
		logger:    logger,
	}
}

// Token returns the cached credential when still fresh, performing zero
// network calls; otherwise it requests a new one and caches it. On any
// failure the slot stays empty and the typed error surfaces to the caller.
func (s *ClientCredentialsTokenSource) Token(ctx context.Context) (core.Credential, error) {
	if cached, ok := s.lookup(); ok {
		return cached, nil
	}

	issued, err := s.requestToken(ctx)
	if err != nil {
		return core.Credential{}, err
	}
	s.store(issued)
	return issued, nil
}

// Invalidate empties the credential slot; the next Token call refreshes.
func (s *ClientCredentialsTokenSource) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = core.Credential{}
}

func (s *ClientCredentialsTokenSource) lookup() (core.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.config.Now().UTC()
	if !s.cached.Valid(now) {
		s.cached = core.Credential{}
		return core.Credential{}, false
	}
	return s.cached, true
}

func (s *ClientCredentialsTokenSource) store(cred core.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = cred
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (s *ClientCredentialsTokenSource) requestToken(ctx context.Context) (core.Credential, error) {
	endpoint := s.config.Endpoints.Token()
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	body := []byte(form.Encode())

	res, err := s.transport.Do(ctx, core.TransportRequest{
		Method: http.MethodPost,
		URL:    endpoint,
		Headers: map[string]string{
			"Content-Type":  "application/x-www-form-urlencoded",
			"Accept":        "application/json",
			"Authorization": "Basic " + s.basicAuth(),
		},
		Body:    body,
		Timeout: s.config.RequestTimeout,
	})
	if err != nil {
		s.logger.Error("token request failed",
			"endpoint", endpoint,
			"error", err.Error(),
		)
		return core.Credential{}, err
	}

	s.logger.Info("token response received",
		"endpoint", endpoint,
		"status_code", res.StatusCode,
	)

	switch {
	case res.StatusCode == http.StatusOK:
	case res.StatusCode == http.StatusUnauthorized:
		s.logger.Error("token request unauthorized", "endpoint", endpoint)
		return core.Credential{}, core.AuthError(
			"auth: client credentials were rejected",
			map[string]any{"endpoint": endpoint},
		)
	default:
		s.logger.Error("token request rejected",
			"endpoint", endpoint,
			"status_code", res.StatusCode,
			"response_body", string(res.Body),
		)
		return core.Credential{}, core.ProcessorError(
			"auth: token endpoint returned unexpected status",
			res.StatusCode,
			res.Body,
			map[string]any{"endpoint": endpoint},
		)
	}

	var payload tokenResponse
	if err := json.Unmarshal(res.Body, &payload); err != nil {
		return core.Credential{}, core.UnexpectedStateError(
			"auth: decode token response",
			map[string]any{"endpoint": endpoint, "error": err.Error()},
		)
	}
	if strings.TrimSpace(payload.AccessToken) == "" {
		return core.Credential{}, core.UnexpectedStateError(
			"auth: token response missing access token",
			map[string]any{"endpoint": endpoint},
		)
	}

	ttl := time.Duration(payload.ExpiresIn)*time.Second - s.config.RenewBefore
	if ttl <= 0 {
		return core.Credential{}, core.UnexpectedStateError(
			"auth: reported token lifetime is shorter than the renewal margin",
			map[string]any{"endpoint": endpoint, "expires_in": payload.ExpiresIn},
		)
	}
	tokenType := strings.ToLower(strings.TrimSpace(payload.TokenType))
	if tokenType == "" {
		tokenType = "bearer"
	}

	return core.Credential{
		AccessToken: strings.TrimSpace(payload.AccessToken),
		TokenType:   tokenType,
		ExpiresAt:   s.config.Now().UTC().Add(ttl),
	}, nil
}

func (s *ClientCredentialsTokenSource) basicAuth() string {
	return base64.StdEncoding.EncodeToString([]byte(s.config.ClientID + ":" + s.config.ClientSecret))
}

var _ core.TokenSource = (*ClientCredentialsTokenSource)(nil)
