// Package paypalplus assembles the PayPal Plus payment gateway: token
// acquisition, the typed processor client, the checkout orchestrator, the
// experience profile manager, and the command/query handlers over them.
package paypalplus

import "github.com/goliatone/go-paypal-plus/core"

type Config = core.Config

type ProfileConfig = core.ProfileConfig

type Environment = core.Environment

type ConfigProvider = core.ConfigProvider
type OptionsResolver = core.OptionsResolver

type Credential = core.Credential
type TokenSource = core.TokenSource
type TransportAdapter = core.TransportAdapter
type AnnotationStore = core.AnnotationStore
type PreferenceStore = core.PreferenceStore
type CartResetter = core.CartResetter
type MetricsRecorder = core.MetricsRecorder
type Logger = core.Logger
type LoggerProvider = core.LoggerProvider

type BuyerInfo = core.BuyerInfo
type CheckoutSource = core.CheckoutSource
type CheckoutView = core.CheckoutView
type OrderSnapshot = core.OrderSnapshot
type CartSnapshot = core.CartSnapshot

type CreatePaymentRequest = core.CreatePaymentRequest
type ExecutePaymentRequest = core.ExecutePaymentRequest

type CreatedPayment = core.CreatedPayment
type ExecutedPayment = core.ExecutedPayment
type ExecutionResult = core.ExecutionResult
type ExecutionStatus = core.ExecutionStatus
type PaymentAnnotation = core.PaymentAnnotation
type ExperienceProfile = core.ExperienceProfile

const (
	EnvironmentSandbox = core.EnvironmentSandbox
	EnvironmentLive    = core.EnvironmentLive

	ExecutionCompleted = core.ExecutionCompleted
	ExecutionPending   = core.ExecutionPending
	ExecutionDenied    = core.ExecutionDenied
	ExecutionError     = core.ExecutionError
)

var (
	FromOrder             = core.FromOrder
	FromCart              = core.FromCart
	ResolveCheckoutSource = core.ResolveCheckoutSource

	// Bool sets the optional profile flags on Config.
	Bool = core.Bool
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}
