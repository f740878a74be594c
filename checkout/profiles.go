package checkout

import (
	"context"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-paypal-plus/core"
)

// ProfileAPI is the slice of the processor client the profile manager
// needs.
type ProfileAPI interface {
	CreateWebProfile(ctx context.Context, profile core.ExperienceProfile) (core.ExperienceProfile, error)
	DeleteWebProfile(ctx context.Context, profileID string) error
}

// ExperienceProfileManager maintains the checkout-presentation profile the
// gateway references by id in every payment intent. Profile settings merge
// over site-derived defaults; empty or unset settings keep the default.
type ExperienceProfileManager struct {
	api      ProfileAPI
	siteName string
	settings core.ProfileConfig
	logger   core.Logger
}

func NewExperienceProfileManager(api ProfileAPI, siteName string, settings core.ProfileConfig, logger core.Logger) (*ExperienceProfileManager, error) {
	if api == nil {
		return nil, core.BadInputError("checkout: profile api is required")
	}
	_, logger = glog.Resolve("paypalplus.profiles", nil, logger)
	return &ExperienceProfileManager{
		api:      api,
		siteName: strings.TrimSpace(siteName),
		settings: settings,
		logger:   logger,
	}, nil
}

// Profile returns the merged profile definition without touching the
// processor.
func (m *ExperienceProfileManager) Profile() core.ExperienceProfile {
	name := strings.TrimSpace(m.settings.Name)
	if name == "" {
		name = m.siteName
	}
	brand := strings.TrimSpace(m.settings.BrandName)
	if brand == "" {
		brand = m.siteName
	}
	locale := strings.TrimSpace(m.settings.LocaleCode)
	if locale == "" {
		locale = "BR"
	}
	noShipping := false
	if m.settings.NoShipping != nil {
		noShipping = *m.settings.NoShipping
	}
	addressOverride := true
	if m.settings.AddressOverride != nil {
		addressOverride = *m.settings.AddressOverride
	}
	return core.ExperienceProfile{
		Name: name,
		Presentation: core.ExperienceProfilePresentation{
			BrandName:  brand,
			LocaleCode: locale,
		},
		InputFields: core.ExperienceProfileInputFields{
			NoShipping:      noShipping,
			AddressOverride: addressOverride,
		},
	}
}

// Create registers the merged profile and returns it with the assigned id.
func (m *ExperienceProfileManager) Create(ctx context.Context) (core.ExperienceProfile, error) {
	profile, err := m.api.CreateWebProfile(ctx, m.Profile())
	if err != nil {
		m.logger.Error("experience profile creation failed", "error", err.Error())
		return core.ExperienceProfile{}, err
	}
	m.logger.Info("experience profile created",
		"profile_id", profile.ID,
		"profile_name", profile.Name,
	)
	return profile, nil
}

// Delete removes a previously created profile by id.
func (m *ExperienceProfileManager) Delete(ctx context.Context, profileID string) error {
	if err := m.api.DeleteWebProfile(ctx, profileID); err != nil {
		m.logger.Error("experience profile deletion failed",
			"profile_id", profileID,
			"error", err.Error(),
		)
		return err
	}
	m.logger.Info("experience profile deleted", "profile_id", profileID)
	return nil
}
