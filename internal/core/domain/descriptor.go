package domain

// Availability is the operational state advertised for a source.
type Availability string

const (
	// AvailabilityActive means the source is fully available.
	AvailabilityActive Availability = "active"
	// AvailabilityMaintenance means the source is under maintenance.
	AvailabilityMaintenance Availability = "maintenance"
	// AvailabilityLimited means the source works with reduced capacity.
	AvailabilityLimited Availability = "limited"
)

// Label returns the human-readable availability.
func (a Availability) Label() string {
	switch a {
	case AvailabilityActive:
		return "Active"
	case AvailabilityMaintenance:
		return "Maintenance"
	default:
		return "Limited"
	}
}

// Flow identifies how a source is configured.
type Flow string

const (
	// FlowWizard walks the user through the descriptor's steps.
	FlowWizard Flow = "wizard"
	// FlowRoleSelection delegates to the role selector.
	FlowRoleSelection Flow = "role-selection"
)

// Source identifiers known to the registry.
const (
	SourceLinkedIn    = "linkedin"
	SourceGoogle      = "google"
	SourceBing        = "bing"
	SourceYellowPages = "yellow-pages"
	SourceCrunchbase  = "crunchbase"
	SourceRoleBased   = "role-based"
)

// Field describes one free-text credential input.
type Field struct {
	// Key is the credential key the value is stored under.
	Key string
	// Label is the human-readable label for UI display.
	Label string
	// Secret indicates whether this field should be masked in UI.
	Secret bool
}

// Step is one page of the configuration wizard.
type Step struct {
	// Label is the step title shown in the progress bar.
	Label string
	// Description explains the step. Steps without fields only show this.
	Description string
	// Fields lists the inputs collected on this step.
	Fields []Field
}

// Descriptor statically describes a supported source kind.
type Descriptor struct {
	// ID is the unique identifier (e.g., "linkedin", "yellow-pages").
	ID string
	// Name is the human-readable display name.
	Name string
	// Description provides a brief explanation of the source.
	Description string
	// Capabilities lists what data the source provides.
	Capabilities []string
	// AvgResponseTime is the advertised typical response time.
	AvgResponseTime string
	// Availability is the advertised operational state.
	Availability Availability
	// Flow selects the wizard or the role selector.
	Flow Flow
	// Steps is the ordered list of wizard steps.
	Steps []Step
	// DefaultRateLimit seeds the source's configuration.
	DefaultRateLimit RateLimit
}

// Fields returns every credential field across all steps, in step order.
func (d Descriptor) Fields() []Field {
	var fields []Field
	for _, step := range d.Steps {
		fields = append(fields, step.Fields...)
	}
	return fields
}

// HasField returns true if key is one of the descriptor's credential fields.
func (d Descriptor) HasField(key string) bool {
	for _, f := range d.Fields() {
		if f.Key == key {
			return true
		}
	}
	return false
}

// DefaultConfig returns the configuration a source starts the session with.
func (d Descriptor) DefaultConfig() SourceConfig {
	rl := d.DefaultRateLimit
	cfg := SourceConfig{
		Status:    StatusUnconfigured,
		RateLimit: &rl,
	}
	if d.Flow == FlowRoleSelection {
		cfg.Filters = &Filters{Roles: []string{}}
	}
	return cfg
}
