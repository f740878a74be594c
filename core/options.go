package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	opts "github.com/goliatone/go-options"
)

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type staticRawConfigLoader struct {
	Values map[string]any
}

func (l staticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = staticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GoOptionsResolver layers defaults < loaded < runtime, so credentials set
// programmatically win over file config which wins over built-ins.
type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	defaultLayer := configToLayerMap(defaults, true)
	loadedLayer := configToLayerMap(loaded, false)
	runtimeLayer := configToLayerMap(runtime, false)

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	setString := func(key string, value string) {
		if includeZero || strings.TrimSpace(value) != "" {
			layer[key] = value
		}
	}
	setString("environment", cfg.Environment)
	setString("client_id", cfg.ClientID)
	setString("client_secret", cfg.ClientSecret)
	setString("currency_code", cfg.CurrencyCode)
	setString("site_name", cfg.SiteName)
	setString("return_url", cfg.ReturnURL)
	setString("cancel_url", cfg.CancelURL)
	setString("experience_profile_id", cfg.ExperienceProfileID)

	if includeZero || cfg.RequestTimeout > 0 {
		layer["request_timeout"] = cfg.RequestTimeout
	}
	if includeZero || cfg.TokenRenewBefore > 0 {
		layer["token_renew_before"] = cfg.TokenRenewBefore
	}

	profile := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.Profile.Name) != "" {
		profile["name"] = cfg.Profile.Name
	}
	if includeZero || strings.TrimSpace(cfg.Profile.BrandName) != "" {
		profile["brand_name"] = cfg.Profile.BrandName
	}
	if includeZero || strings.TrimSpace(cfg.Profile.LocaleCode) != "" {
		profile["locale_code"] = cfg.Profile.LocaleCode
	}
	if cfg.Profile.NoShipping != nil {
		profile["no_shipping"] = *cfg.Profile.NoShipping
	}
	if cfg.Profile.AddressOverride != nil {
		profile["address_override"] = *cfg.Profile.AddressOverride
	}
	if len(profile) > 0 {
		layer["profile"] = profile
	}
	return layer
}

// ResolveConfig runs the provider and resolver in sequence; either may be
// nil, in which case defaults plus the runtime layer apply.
func ResolveConfig(
	ctx context.Context,
	provider ConfigProvider,
	resolver OptionsResolver,
	runtime Config,
) (Config, error) {
	defaults := DefaultConfig()
	loaded := defaults
	if provider != nil {
		var err error
		loaded, err = provider.Load(ctx, defaults)
		if err != nil {
			return Config{}, err
		}
	}
	if resolver == nil {
		resolver = GoOptionsResolver{}
	}
	return resolver.Resolve(defaults, loaded, runtime)
}

var _ OptionsResolver = GoOptionsResolver{}
