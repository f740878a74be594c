package paypal

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/goliatone/go-paypal-plus/core"
)

// CreateWebProfile registers a checkout-presentation profile and returns
// it with the processor-assigned id.
func (c *Client) CreateWebProfile(ctx context.Context, profile core.ExperienceProfile) (core.ExperienceProfile, error) {
	if strings.TrimSpace(profile.Name) == "" {
		return core.ExperienceProfile{}, core.BadInputError("paypal: web profile requires a name")
	}

	endpoint := c.endpoints.WebProfiles()
	res, err := c.authenticatedRequest(ctx, http.MethodPost, endpoint, webProfileRequest{
		Name: profile.Name,
		Presentation: profilePresentation{
			BrandName:  profile.Presentation.BrandName,
			LocaleCode: profile.Presentation.LocaleCode,
		},
		InputFields: profileInputFields{
			NoShipping:      boolToFlag(profile.InputFields.NoShipping),
			AddressOverride: boolToFlag(profile.InputFields.AddressOverride),
		},
	})
	if err != nil {
		return core.ExperienceProfile{}, err
	}
	if res.StatusCode != http.StatusCreated {
		return core.ExperienceProfile{}, statusError("create web profile", endpoint, res)
	}

	var resource webProfileResource
	if err := json.Unmarshal(res.Body, &resource); err != nil {
		return core.ExperienceProfile{}, core.UnexpectedStateError(
			"paypal: decode create web profile response",
			map[string]any{"endpoint": endpoint, "error": err.Error()},
		)
	}
	if strings.TrimSpace(resource.ID) == "" {
		return core.ExperienceProfile{}, core.UnexpectedStateError(
			"paypal: create web profile response is missing the profile id",
			map[string]any{"endpoint": endpoint},
		)
	}

	return core.ExperienceProfile{
		ID:   strings.TrimSpace(resource.ID),
		Name: resource.Name,
		Presentation: core.ExperienceProfilePresentation{
			BrandName:  resource.Presentation.BrandName,
			LocaleCode: resource.Presentation.LocaleCode,
		},
		InputFields: core.ExperienceProfileInputFields{
			NoShipping:      flagToBool(resource.InputFields.NoShipping),
			AddressOverride: flagToBool(resource.InputFields.AddressOverride),
		},
	}, nil
}

// DeleteWebProfile removes a profile by id. Deleting an already-deleted
// profile surfaces as a processor rejection, matching the API.
func (c *Client) DeleteWebProfile(ctx context.Context, profileID string) error {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return core.BadInputError("paypal: profile id is required")
	}

	endpoint := c.endpoints.WebProfile(profileID)
	res, err := c.authenticatedRequest(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusNoContent {
		return statusError("delete web profile", endpoint, res)
	}
	return nil
}
