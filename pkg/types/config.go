// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for outbound requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "spacefrontiers-mcp/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ClientConfig holds settings for the Space Frontiers API client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the API endpoint (default "https://api.spacefrontiers.org").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is the default key used when a request carries no
	// authorization of its own.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// ServerConfig holds settings for the MCP server surface.
type ServerConfig struct {
	// Addr is the listen address for the HTTP transport (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// Transport selects "http" (streamable HTTP) or "stdio".
	Transport string `json:"transport" yaml:"transport"`
}
