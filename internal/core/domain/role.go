package domain

// RoleCategory groups related job titles.
type RoleCategory struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Roles       []string `json:"roles"`
	Description string   `json:"description"`
}

// IndustryCount is one entry of RoleStats.TopIndustries.
type IndustryCount struct {
	Industry string `json:"industry"`
	Count    int    `json:"count"`
}

// RoleShare is one entry of RoleStats.RoleDistribution.
type RoleShare struct {
	Role       string  `json:"role"`
	Percentage float64 `json:"percentage"`
}

// RoleStats is aggregate, informational data about a set of roles.
type RoleStats struct {
	TotalLeads       int             `json:"totalLeads"`
	AverageSeniority string          `json:"averageSeniority"`
	TopIndustries    []IndustryCount `json:"topIndustries"`
	RoleDistribution []RoleShare     `json:"roleDistribution"`
}

// RoleSearchMinLength is the trimmed query length a role search must exceed.
const RoleSearchMinLength = 2

// SearchUpdate carries the results of the latest applied role search.
type SearchUpdate struct {
	Query string
	Roles []string
	Err   error
}
