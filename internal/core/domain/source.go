package domain

import (
	"maps"
	"slices"
	"time"
)

// SourceStatus is the configuration state of a source.
type SourceStatus string

// Source statuses. Within one configuration attempt the status only moves
// forward: unconfigured|error -> configuring -> configured|error.
const (
	StatusUnconfigured SourceStatus = "unconfigured"
	StatusConfiguring  SourceStatus = "configuring"
	StatusConfigured   SourceStatus = "configured"
	StatusError        SourceStatus = "error"
)

// IsValid returns true if the status is recognised.
func (s SourceStatus) IsValid() bool {
	switch s {
	case StatusUnconfigured, StatusConfiguring, StatusConfigured, StatusError:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SourceStatus) String() string {
	return string(s)
}

// Label returns the short label shown on status chips.
func (s SourceStatus) Label() string {
	switch s {
	case StatusUnconfigured:
		return "Not configured"
	case StatusConfiguring:
		return "Configuring"
	case StatusConfigured:
		return "Configured"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Filters narrows the leads a source returns. It is a sparse union across
// all source kinds; each kind uses the subset that applies to it.
type Filters struct {
	Location    []string `json:"location,omitempty"`
	Industry    []string `json:"industry,omitempty"`
	CompanySize []string `json:"companySize,omitempty"`
	Founded     string   `json:"founded,omitempty"`
	Revenue     string   `json:"revenue,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

// Clone returns a deep copy.
func (f *Filters) Clone() *Filters {
	if f == nil {
		return nil
	}
	return &Filters{
		Location:    slices.Clone(f.Location),
		Industry:    slices.Clone(f.Industry),
		CompanySize: slices.Clone(f.CompanySize),
		Founded:     f.Founded,
		Revenue:     f.Revenue,
		Roles:       slices.Clone(f.Roles),
	}
}

// RateLimit is the request ceiling applied to a source.
type RateLimit struct {
	RequestsPerMinute int `json:"requestsPerMinute"`
	MaxRequests       int `json:"maxRequests"`
}

// SourceConfig is the in-session configuration of one source.
type SourceConfig struct {
	// Credentials maps credential field keys to their values.
	Credentials map[string]string `json:"credentials,omitempty"`

	// Filters narrows the leads collected from this source.
	Filters *Filters `json:"filters,omitempty"`

	// RateLimit caps requests made against this source.
	RateLimit *RateLimit `json:"rateLimit,omitempty"`

	// Status is the configuration state.
	Status SourceStatus `json:"status"`

	// Error is the last failure message. Only set when Status is StatusError.
	Error string `json:"error,omitempty"`

	// LastSync is when the source last synced successfully.
	LastSync *time.Time `json:"lastSync,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (c SourceConfig) Clone() SourceConfig {
	out := c
	out.Credentials = maps.Clone(c.Credentials)
	out.Filters = c.Filters.Clone()
	if c.RateLimit != nil {
		rl := *c.RateLimit
		out.RateLimit = &rl
	}
	if c.LastSync != nil {
		ts := *c.LastSync
		out.LastSync = &ts
	}
	return out
}

// IsConfigured returns true if the status is StatusConfigured.
func (c SourceConfig) IsConfigured() bool {
	return c.Status == StatusConfigured
}

// SourceConfigPatch is a partial SourceConfig. Nil fields are absent and
// leave the stored value untouched; present fields replace it wholesale.
type SourceConfigPatch struct {
	Credentials map[string]string `json:"credentials,omitempty"`
	Filters     *Filters          `json:"filters,omitempty"`
	RateLimit   *RateLimit        `json:"rateLimit,omitempty"`
	Status      *SourceStatus     `json:"status,omitempty"`
	Error       *string           `json:"error,omitempty"`
	LastSync    *time.Time        `json:"lastSync,omitempty"`
}

// StatusPatch returns a patch that only sets the status.
func StatusPatch(status SourceStatus) SourceConfigPatch {
	return SourceConfigPatch{Status: &status}
}

// ErrorPatch returns a patch that records a failure.
func ErrorPatch(message string) SourceConfigPatch {
	status := StatusError
	return SourceConfigPatch{Status: &status, Error: &message}
}

// WithStatus returns a copy of the patch with the status set.
func (p SourceConfigPatch) WithStatus(status SourceStatus) SourceConfigPatch {
	p.Status = &status
	return p
}

// Apply merges the patch into cfg one level deep and returns the result.
// An Error is only kept while the resulting status is StatusError.
func (p SourceConfigPatch) Apply(cfg SourceConfig) SourceConfig {
	out := cfg.Clone()
	if p.Credentials != nil {
		out.Credentials = maps.Clone(p.Credentials)
	}
	if p.Filters != nil {
		out.Filters = p.Filters.Clone()
	}
	if p.RateLimit != nil {
		rl := *p.RateLimit
		out.RateLimit = &rl
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Error != nil {
		out.Error = *p.Error
	}
	if p.LastSync != nil {
		ts := *p.LastSync
		out.LastSync = &ts
	}
	if out.Status != StatusError {
		out.Error = ""
	}
	return out
}

// SourceState is a read-only view combining a descriptor, its current
// configuration and whether it is selected.
type SourceState struct {
	Descriptor Descriptor
	Config     SourceConfig
	Selected   bool
}
