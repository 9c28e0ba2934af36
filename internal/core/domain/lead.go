package domain

import "time"

// Lead is a company record returned by a lead search.
type Lead struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	CompanyName string    `json:"companyName"`
	Industry    string    `json:"industry,omitempty"`
	Location    string    `json:"location,omitempty"`
	Size        string    `json:"size,omitempty"`
	Revenue     string    `json:"revenue,omitempty"`
	Founded     string    `json:"founded,omitempty"`
	Description string    `json:"description,omitempty"`
	Website     string    `json:"website,omitempty"`
	Contacts    []Contact `json:"contacts,omitempty"`
	LastUpdated string    `json:"lastUpdated"`
	Confidence  float64   `json:"confidence"`
	Roles       []string  `json:"roles,omitempty"`
}

// Contact is a person attached to a lead.
type Contact struct {
	Name     string `json:"name"`
	Title    string `json:"title,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// LeadSearchParams filters a lead search.
type LeadSearchParams struct {
	Query       string
	Location    []string
	Industry    []string
	CompanySize []string
	Founded     string
	Revenue     string
	Roles       []string
	Page        int
	Limit       int
}

// LeadPage is one page of search results.
type LeadPage struct {
	Leads []Lead `json:"leads"`
	Total int    `json:"total"`
}

// SavedLead is a lead kept in the local lead cache.
type SavedLead struct {
	Lead
	SavedAt time.Time
}

// SourceStats reports usage for one source.
type SourceStats struct {
	TotalLeads        int    `json:"totalLeads"`
	LastSync          string `json:"lastSync"`
	RequestsRemaining int    `json:"requestsRemaining"`
	RequestsLimit     int    `json:"requestsLimit"`
}

// SourceFilterOptions lists the filter values a source accepts.
type SourceFilterOptions struct {
	Locations    []string `json:"locations"`
	Industries   []string `json:"industries"`
	CompanySizes []string `json:"companySizes"`
}

// SyncResult is the outcome of a remote sync request.
type SyncResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ConnectionTest is the outcome of a remote connectivity test.
type ConnectionTest struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
