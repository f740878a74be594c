// Package paypal is the typed client for the processor's payment,
// payment-execution, and payment-experience endpoints. It injects bearer
// credentials from the token source, serializes JSON payloads, and logs
// every request/response pair for auditability.
package paypal

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-paypal-plus/core"
	"github.com/goliatone/go-paypal-plus/transport"
)

type ClientConfig struct {
	Endpoints      core.Endpoints
	RequestTimeout time.Duration
	Transport      core.TransportAdapter
	Tokens         core.TokenSource
	Logger         core.Logger
}

type Client struct {
	endpoints      core.Endpoints
	requestTimeout time.Duration
	transport      core.TransportAdapter
	tokens         core.TokenSource
	logger         core.Logger
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Tokens == nil {
		return nil, core.BadInputError("paypal: token source is required")
	}
	adapter := cfg.Transport
	if adapter == nil {
		adapter = transport.NewRESTAdapter(nil)
	}
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = core.DefaultRequestTimeout
	}
	_, logger := glog.Resolve("paypalplus.client", nil, cfg.Logger)

	return &Client{
		endpoints:      cfg.Endpoints,
		requestTimeout: requestTimeout,
		transport:      adapter,
		tokens:         cfg.Tokens,
		logger:         logger,
	}, nil
}

func (c *Client) Endpoints() core.Endpoints {
	return c.endpoints
}

// authenticatedRequest serializes body as JSON when present, injects the
// bearer credential, and logs the exchange. A missing token is fatal for
// the operation; the typed failure from the token source surfaces as-is.
func (c *Client) authenticatedRequest(
	ctx context.Context,
	method string,
	endpoint string,
	body any,
) (core.TransportResponse, error) {
	cred, err := c.tokens.Token(ctx)
	if err != nil {
		return core.TransportResponse{}, err
	}

	var payload []byte
	if body != nil {
		encoded, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return core.TransportResponse{}, core.BadInputError("paypal: encode request body")
		}
		payload = encoded
	}

	c.logger.Info("processor request",
		"endpoint", endpoint,
		"method", method,
		"request_body", string(payload),
	)

	res, err := c.transport.Do(ctx, core.TransportRequest{
		Method: method,
		URL:    endpoint,
		Headers: map[string]string{
			"Content-Type":  "application/json",
			"Accept":        "application/json",
			"Authorization": "Bearer " + cred.AccessToken,
		},
		Body:    payload,
		Timeout: c.requestTimeout,
	})
	if err != nil {
		c.logger.Error("processor request failed",
			"endpoint", endpoint,
			"method", method,
			"error", err.Error(),
		)
		return core.TransportResponse{}, err
	}

	c.logger.Info("processor response",
		"endpoint", endpoint,
		"method", method,
		"status_code", res.StatusCode,
		"response_body", string(res.Body),
	)
	return res, nil
}

// statusError maps a non-success response onto the gateway taxonomy: 401
// is an auth failure, anything else a processor rejection.
func statusError(operation string, endpoint string, res core.TransportResponse) error {
	if res.StatusCode == http.StatusUnauthorized {
		return core.AuthError(
			"paypal: "+operation+" was not authorized",
			map[string]any{"endpoint": endpoint},
		)
	}
	return core.ProcessorError(
		"paypal: "+operation+" returned unexpected status",
		res.StatusCode,
		res.Body,
		map[string]any{"endpoint": endpoint},
	)
}
