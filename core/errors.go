package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	PaymentErrorBadInput        = "PAYMENT_BAD_INPUT"
	PaymentErrorTransportFailed = "PAYMENT_TRANSPORT_FAILED"
	PaymentErrorUnauthorized    = "PAYMENT_UNAUTHORIZED"
	PaymentErrorProcessor       = "PAYMENT_PROCESSOR_REJECTED"
	PaymentErrorUnexpectedState = "PAYMENT_UNEXPECTED_STATE"
	PaymentErrorInternal        = "PAYMENT_INTERNAL_ERROR"
)

// TransportError marks a request that produced no processor response.
func TransportError(source error, message string, metadata map[string]any) error {
	err := goerrors.Wrap(source, goerrors.CategoryExternal, message).
		WithCode(http.StatusBadGateway).
		WithTextCode(PaymentErrorTransportFailed)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// AuthError marks an HTTP 401: bad client credentials or an expired or
// invalid token.
func AuthError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(PaymentErrorUnauthorized)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// ProcessorError marks any other non-success status. The raw status code
// and response body travel in the metadata for diagnostics.
func ProcessorError(message string, statusCode int, body []byte, metadata map[string]any) error {
	merged := map[string]any{
		"status_code":   statusCode,
		"response_body": string(body),
	}
	for key, value := range metadata {
		merged[key] = value
	}
	return goerrors.New(message, goerrors.CategoryExternal).
		WithCode(http.StatusBadGateway).
		WithTextCode(PaymentErrorProcessor).
		WithMetadata(merged)
}

// UnexpectedStateError marks a parsed response whose shape or state value
// falls outside the known contract.
func UnexpectedStateError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryOperation).
		WithCode(http.StatusBadGateway).
		WithTextCode(PaymentErrorUnexpectedState)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func BadInputError(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(PaymentErrorBadInput)
}

func hasTextCode(err error, textCode string) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == textCode
}

func IsTransportError(err error) bool {
	return hasTextCode(err, PaymentErrorTransportFailed)
}

func IsAuthError(err error) bool {
	return hasTextCode(err, PaymentErrorUnauthorized)
}

func IsProcessorError(err error) bool {
	return hasTextCode(err, PaymentErrorProcessor)
}

func IsUnexpectedState(err error) bool {
	return hasTextCode(err, PaymentErrorUnexpectedState)
}

// GatewayErrorMapper normalizes any error into the gateway envelope so
// nothing escapes a component boundary without a category, an HTTP code,
// and a PAYMENT_* text code.
func GatewayErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureGatewayEnvelope(richErr)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureGatewayEnvelope(mapped)
}

func ensureGatewayEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = gatewayHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultGatewayTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultGatewayTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return PaymentErrorBadInput
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return PaymentErrorUnauthorized
	case goerrors.CategoryExternal:
		return PaymentErrorProcessor
	case goerrors.CategoryOperation:
		return PaymentErrorUnexpectedState
	default:
		return PaymentErrorInternal
	}
}

func gatewayHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryExternal, goerrors.CategoryOperation:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
