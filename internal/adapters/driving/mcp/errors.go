// Package mcp provides an MCP (Model Context Protocol) server adapter for LeadScout.
// It lets AI assistants inspect source configuration and run lead searches.
package mcp

import "errors"

// ErrMissingSourceService is returned when the source config service is not provided.
var ErrMissingSourceService = errors.New("mcp: source config service is required")

// ErrLeadsUnavailable is returned by lead tools when no lead service is wired.
var ErrLeadsUnavailable = errors.New("mcp: lead search is not available")

// ErrConfigurationUnavailable is returned by configuration tools when no
// configuration service is wired.
var ErrConfigurationUnavailable = errors.New("mcp: source configuration is not available")
