package services

import (
	"fmt"
	"slices"

	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driving"
)

// Ensure SourceRegistry implements the interface.
var _ driving.SourceRegistry = (*SourceRegistry)(nil)

// SourceRegistry provides information about the supported lead sources.
type SourceRegistry struct {
	order       []string
	descriptors map[string]domain.Descriptor
}

// NewSourceRegistry creates a registry with the built-in source table.
func NewSourceRegistry() *SourceRegistry {
	return NewSourceRegistryFrom(builtinDescriptors())
}

// NewSourceRegistryFrom creates a registry from an explicit table.
// Later entries with a duplicate ID replace earlier ones in place.
func NewSourceRegistryFrom(descriptors []domain.Descriptor) *SourceRegistry {
	r := &SourceRegistry{
		descriptors: make(map[string]domain.Descriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if _, exists := r.descriptors[d.ID]; !exists {
			r.order = append(r.order, d.ID)
		}
		r.descriptors[d.ID] = d
	}
	return r
}

// Get returns the descriptor for a source.
func (r *SourceRegistry) Get(id string) (domain.Descriptor, error) {
	d, ok := r.descriptors[id]
	if !ok {
		return domain.Descriptor{}, &domain.UnknownSourceError{ID: id}
	}
	return d, nil
}

// List returns every descriptor in table order.
func (r *SourceRegistry) List() []domain.Descriptor {
	result := make([]domain.Descriptor, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.descriptors[id])
	}
	return result
}

// IDs returns every source id in table order.
func (r *SourceRegistry) IDs() []string {
	return slices.Clone(r.order)
}

// Shared step descriptions for the placeholder steps.
const (
	filtersStepDescription = "Set up filters for the type of leads you want to collect"
	settingsStepFormat     = "Configure rate limits and access settings for %s"
)

func builtinDescriptors() []domain.Descriptor {
	return []domain.Descriptor{
		{
			ID:          domain.SourceLinkedIn,
			Name:        "LinkedIn",
			Description: "Professional network data with detailed company and employee information",
			Capabilities: []string{
				"Company profiles", "Employee data", "Job postings", "Industry insights",
			},
			AvgResponseTime: "2-3s",
			Availability:    domain.AvailabilityActive,
			Flow:            domain.FlowWizard,
			Steps: []domain.Step{
				{
					Label:       "API Credentials",
					Description: "Enter the OAuth application credentials for LinkedIn",
					Fields: []domain.Field{
						{Key: "clientId", Label: "Client ID", Secret: true},
						{Key: "clientSecret", Label: "Client Secret", Secret: true},
						{Key: "refreshToken", Label: "Refresh Token", Secret: true},
					},
				},
				settingsStep("Rate Limits", "linkedin"),
				filtersStep(),
			},
			DefaultRateLimit: domain.RateLimit{RequestsPerMinute: 100, MaxRequests: 1000},
		},
		{
			ID:          domain.SourceGoogle,
			Name:        "Google My Business",
			Description: "Local business data with contact details and customer reviews",
			Capabilities: []string{
				"Business listings", "Contact information", "Customer reviews", "Location data",
			},
			AvgResponseTime: "1-2s",
			Availability:    domain.AvailabilityActive,
			Flow:            domain.FlowWizard,
			Steps: []domain.Step{
				apiKeyStep("API Key", "API Key"),
				settingsStep("Location Settings", "google"),
				filtersStep(),
			},
			DefaultRateLimit: domain.RateLimit{RequestsPerMinute: 300, MaxRequests: 3000},
		},
		{
			ID:          domain.SourceBing,
			Name:        "Bing Places",
			Description: "Business listings with detailed location and service information",
			Capabilities: []string{
				"Business profiles", "Service details", "Location data", "Contact information",
			},
			AvgResponseTime: "1-2s",
			Availability:    domain.AvailabilityMaintenance,
			Flow:            domain.FlowWizard,
			Steps: []domain.Step{
				apiKeyStep("API Key", "API Key"),
				settingsStep("Search Settings", "bing"),
				filtersStep(),
			},
			DefaultRateLimit: domain.RateLimit{RequestsPerMinute: 150, MaxRequests: 1500},
		},
		{
			ID:          domain.SourceYellowPages,
			Name:        "Yellow Pages",
			Description: "Comprehensive business directory with industry categorization",
			Capabilities: []string{
				"Business listings", "Industry categories", "Contact details", "Service areas",
			},
			AvgResponseTime: "2-3s",
			Availability:    domain.AvailabilityActive,
			Flow:            domain.FlowWizard,
			Steps: []domain.Step{
				apiKeyStep("Access Token", "Access Token"),
				settingsStep("Location Settings", "yellow-pages"),
				filtersStep(),
			},
			DefaultRateLimit: domain.RateLimit{RequestsPerMinute: 200, MaxRequests: 2000},
		},
		{
			ID:          domain.SourceCrunchbase,
			Name:        "Crunchbase",
			Description: "Detailed company data including funding and investment information",
			Capabilities: []string{
				"Company profiles", "Funding data", "Investment history", "Industry analysis",
			},
			AvgResponseTime: "3-4s",
			Availability:    domain.AvailabilityActive,
			Flow:            domain.FlowWizard,
			Steps: []domain.Step{
				{
					Label:       "API Key",
					Description: "Enter the Crunchbase API credentials",
					Fields: []domain.Field{
						{Key: "apiKey", Label: "API Key", Secret: true},
						{Key: "userKey", Label: "User Key", Secret: true},
					},
				},
				settingsStep("Data Settings", "crunchbase"),
				filtersStep(),
			},
			DefaultRateLimit: domain.RateLimit{RequestsPerMinute: 50, MaxRequests: 500},
		},
		{
			ID:          domain.SourceRoleBased,
			Name:        "Role/Job Title",
			Description: "Filter leads by specific roles and job titles",
			Capabilities: []string{
				"Role filtering", "Title matching", "Seniority levels", "Department targeting",
			},
			AvgResponseTime: "1-2s",
			Availability:    domain.AvailabilityActive,
			Flow:            domain.FlowRoleSelection,
			Steps: []domain.Step{
				{Label: "Role Selection", Description: "Search and select target roles"},
				filtersStep(),
			},
			DefaultRateLimit: domain.RateLimit{RequestsPerMinute: 200, MaxRequests: 2000},
		},
	}
}

func apiKeyStep(label, fieldLabel string) domain.Step {
	return domain.Step{
		Label:       label,
		Description: "Enter the credential issued by the provider",
		Fields: []domain.Field{
			{Key: "apiKey", Label: fieldLabel, Secret: true},
		},
	}
}

func settingsStep(label, sourceID string) domain.Step {
	return domain.Step{
		Label:       label,
		Description: fmt.Sprintf(settingsStepFormat, sourceID),
	}
}

func filtersStep() domain.Step {
	return domain.Step{Label: "Filters", Description: filtersStepDescription}
}
