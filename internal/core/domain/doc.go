// Package domain defines the core business entities for leadscout.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Descriptor: A static description of a supported lead source
//   - SourceConfig: The in-session configuration and status of one source
//   - SourceConfigPatch: A partial update merged into a SourceConfig
//   - RoleCategory, RoleStats: Role-targeting reference data
//   - Lead: A company/contact record returned by a lead search
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
