package paypalplus

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-paypal-plus/auth"
	"github.com/goliatone/go-paypal-plus/checkout"
	paycommand "github.com/goliatone/go-paypal-plus/command"
	"github.com/goliatone/go-paypal-plus/core"
	"github.com/goliatone/go-paypal-plus/paypal"
	payquery "github.com/goliatone/go-paypal-plus/query"
)

// Commands bundles the mutation handlers wired to a gateway instance.
type Commands struct {
	CreatePayment    *paycommand.CreatePaymentCommand
	ExecutePayment   *paycommand.ExecutePaymentCommand
	CreateWebProfile *paycommand.CreateWebProfileCommand
	DeleteWebProfile *paycommand.DeleteWebProfileCommand
}

// Queries bundles the read handlers over the gateway's stores.
type Queries struct {
	LoadPaymentAnnotation *payquery.LoadPaymentAnnotationQuery
	LoadRememberedCards   *payquery.LoadRememberedCardsQuery
}

// Gateway is the composed connector. Every collaborator is injected or
// built from Config; nothing hangs off package-level state.
type Gateway struct {
	config       Config
	tokens       core.TokenSource
	client       *paypal.Client
	orchestrator *checkout.Orchestrator
	profiles     *checkout.ExperienceProfileManager
	commands     Commands
	queries      Queries
}

type GatewayOption func(*gatewayOptions)

type gatewayOptions struct {
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	transport       core.TransportAdapter
	tokens          core.TokenSource
	annotations     core.AnnotationStore
	preferences     core.PreferenceStore
	cart            core.CartResetter
	metrics         core.MetricsRecorder
	configProvider  core.ConfigProvider
	optionsResolver core.OptionsResolver
}

func WithLogger(logger core.Logger) GatewayOption {
	return func(o *gatewayOptions) {
		o.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) GatewayOption {
	return func(o *gatewayOptions) {
		o.loggerProvider = provider
	}
}

func WithTransportAdapter(adapter core.TransportAdapter) GatewayOption {
	return func(o *gatewayOptions) {
		o.transport = adapter
	}
}

func WithTokenSource(tokens core.TokenSource) GatewayOption {
	return func(o *gatewayOptions) {
		o.tokens = tokens
	}
}

func WithAnnotationStore(store core.AnnotationStore) GatewayOption {
	return func(o *gatewayOptions) {
		o.annotations = store
	}
}

func WithPreferenceStore(store core.PreferenceStore) GatewayOption {
	return func(o *gatewayOptions) {
		o.preferences = store
	}
}

func WithCartResetter(resetter core.CartResetter) GatewayOption {
	return func(o *gatewayOptions) {
		o.cart = resetter
	}
}

func WithMetricsRecorder(metrics core.MetricsRecorder) GatewayOption {
	return func(o *gatewayOptions) {
		o.metrics = metrics
	}
}

func WithConfigProvider(provider core.ConfigProvider) GatewayOption {
	return func(o *gatewayOptions) {
		o.configProvider = provider
	}
}

func WithOptionsResolver(resolver core.OptionsResolver) GatewayOption {
	return func(o *gatewayOptions) {
		o.optionsResolver = resolver
	}
}

// New builds a gateway from an already resolved configuration.
func New(cfg Config, opts ...GatewayOption) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	options := gatewayOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&options)
	}

	_, logger := glog.Resolve("paypalplus", options.loggerProvider, options.logger)
	endpoints := core.NewEndpoints(cfg.Env())

	tokens := options.tokens
	if tokens == nil {
		tokens = auth.NewClientCredentialsTokenSource(auth.ClientCredentialsConfig{
			ClientID:       cfg.ClientID,
			ClientSecret:   cfg.ClientSecret,
			Endpoints:      endpoints,
			RequestTimeout: cfg.RequestTimeout,
			RenewBefore:    cfg.TokenRenewBefore,
			Transport:      options.transport,
			Logger:         logger,
		})
	}

	client, err := paypal.NewClient(paypal.ClientConfig{
		Endpoints:      endpoints,
		RequestTimeout: cfg.RequestTimeout,
		Transport:      options.transport,
		Tokens:         tokens,
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}

	builder := checkout.IntentBuilder{
		Currency:            cfg.CurrencyCode,
		ExperienceProfileID: cfg.ExperienceProfileID,
		Redirects: core.RedirectURLs{
			ReturnURL: cfg.ReturnURL,
			CancelURL: cfg.CancelURL,
		},
	}

	orchestratorOptions := []checkout.OrchestratorOption{
		checkout.WithSandbox(cfg.Env().Sandbox()),
		checkout.WithLogger(logger),
	}
	if options.annotations != nil {
		orchestratorOptions = append(orchestratorOptions, checkout.WithAnnotationStore(options.annotations))
	}
	if options.preferences != nil {
		orchestratorOptions = append(orchestratorOptions, checkout.WithPreferenceStore(options.preferences))
	}
	if options.cart != nil {
		orchestratorOptions = append(orchestratorOptions, checkout.WithCartResetter(options.cart))
	}
	if options.metrics != nil {
		orchestratorOptions = append(orchestratorOptions, checkout.WithMetricsRecorder(options.metrics))
	}

	orchestrator, err := checkout.NewOrchestrator(client, builder, orchestratorOptions...)
	if err != nil {
		return nil, err
	}

	profiles, err := checkout.NewExperienceProfileManager(client, cfg.SiteName, cfg.Profile, logger)
	if err != nil {
		return nil, err
	}

	gateway := &Gateway{
		config:       cfg,
		tokens:       tokens,
		client:       client,
		orchestrator: orchestrator,
		profiles:     profiles,
	}
	gateway.commands = Commands{
		CreatePayment:    paycommand.NewCreatePaymentCommand(orchestrator),
		ExecutePayment:   paycommand.NewExecutePaymentCommand(orchestrator),
		CreateWebProfile: paycommand.NewCreateWebProfileCommand(profiles),
		DeleteWebProfile: paycommand.NewDeleteWebProfileCommand(profiles),
	}
	gateway.queries = Queries{
		LoadPaymentAnnotation: payquery.NewLoadPaymentAnnotationQuery(options.annotations),
		LoadRememberedCards:   payquery.NewLoadRememberedCardsQuery(options.preferences),
	}
	return gateway, nil
}

// Setup resolves configuration through the provider and resolver layers,
// then builds the gateway. The runtime config is the highest-precedence
// layer; file config and defaults sit underneath.
func Setup(ctx context.Context, runtime Config, opts ...GatewayOption) (*Gateway, error) {
	options := gatewayOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&options)
	}
	resolved, err := core.ResolveConfig(ctx, options.configProvider, options.optionsResolver, runtime)
	if err != nil {
		return nil, err
	}
	return New(resolved, opts...)
}

func (g *Gateway) Config() Config {
	if g == nil {
		return Config{}
	}
	return g.config
}

func (g *Gateway) TokenSource() core.TokenSource {
	if g == nil {
		return nil
	}
	return g.tokens
}

func (g *Gateway) Client() *paypal.Client {
	if g == nil {
		return nil
	}
	return g.client
}

func (g *Gateway) Orchestrator() *checkout.Orchestrator {
	if g == nil {
		return nil
	}
	return g.orchestrator
}

func (g *Gateway) Profiles() *checkout.ExperienceProfileManager {
	if g == nil {
		return nil
	}
	return g.profiles
}

func (g *Gateway) Commands() Commands {
	if g == nil {
		return Commands{}
	}
	return g.commands
}

func (g *Gateway) Queries() Queries {
	if g == nil {
		return Queries{}
	}
	return g.queries
}
