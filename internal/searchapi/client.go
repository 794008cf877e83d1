// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package searchapi is the client for the Space Frontiers search API.
// It exposes the API's four operations and does nothing else: request
// shaping happens in the callers, failures propagate unmodified and
// nothing is retried here.
package searchapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/spacefrontiers-mcp/internal/auth"
	"github.com/pdiddy/spacefrontiers-mcp/internal/httputil"
	"github.com/pdiddy/spacefrontiers-mcp/pkg/types"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.spacefrontiers.org"

const defaultTimeout = 30 * time.Second

// Request source tags sent with every call so the API can attribute
// traffic to its origin.
const (
	RequestSourceMCP = "mcp"
	RequestSourceCLI = "cli"
)

// RequestContext tags a call's origin for the upstream API.
type RequestContext struct {
	RequestSource string
}

// Client talks to one Space Frontiers deployment. It is constructed
// once at process start, shared read-only by all concurrent calls, and
// holds no per-request state.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// New builds a client from configuration, applying the production
// endpoint and a 30 s timeout as defaults.
func New(cfg types.ClientConfig) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  cfg.UserAgent,
	}
}

// Search runs a relevance-ranked, query-driven search.
func (c *Client) Search(ctx context.Context, req *types.SearchRequest, creds auth.Credentials, rc RequestContext) (*types.SearchResponse, error) {
	var resp types.SearchResponse
	if err := c.post(ctx, "/v1/search", creds, rc, req, &resp); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return &resp, nil
}

// SimpleSearch runs an unranked or recency-ordered retrieval.
func (c *Client) SimpleSearch(ctx context.Context, req *types.SimpleSearchRequest, creds auth.Credentials, rc RequestContext) (*types.SearchResponse, error) {
	var resp types.SearchResponse
	if err := c.post(ctx, "/v1/simple_search", creds, rc, req, &resp); err != nil {
		return nil, fmt.Errorf("simple search: %w", err)
	}
	return &resp, nil
}

// DocumentsSearch runs a direct field-projected lookup.
func (c *Client) DocumentsSearch(ctx context.Context, req *types.DocumentsSearchRequest, creds auth.Credentials, rc RequestContext) (*types.SearchResponse, error) {
	var resp types.SearchResponse
	if err := c.post(ctx, "/v1/documents_search", creds, rc, req, &resp); err != nil {
		return nil, fmt.Errorf("documents search: %w", err)
	}
	return &resp, nil
}

// ResolveID classifies a free-text identifier into canonical URIs.
func (c *Client) ResolveID(ctx context.Context, req *types.ResolveIDRequest, creds auth.Credentials, rc RequestContext) (*types.ResolveIDResponse, error) {
	var resp types.ResolveIDResponse
	if err := c.post(ctx, "/v1/resolve_id", creds, rc, req, &resp); err != nil {
		return nil, fmt.Errorf("resolve id: %w", err)
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, creds auth.Credentials, rc RequestContext, in, out any) error {
	return httputil.PostJSON(ctx, c.httpClient, c.baseURL+path, c.headers(creds, rc), in, out)
}

// headers builds the per-call header set: identity (at most one of the
// bearer key or user id), the origin tag and the user agent.
func (c *Client) headers(creds auth.Credentials, rc RequestContext) http.Header {
	h := http.Header{}
	switch {
	case creds.UserID != "":
		h.Set("X-User-Id", creds.UserID)
	case creds.APIKey != "":
		h.Set("Authorization", "Bearer "+creds.APIKey)
	}
	if rc.RequestSource != "" {
		h.Set("X-Request-Source", rc.RequestSource)
	}
	if c.userAgent != "" {
		h.Set("User-Agent", c.userAgent)
	}
	return h
}
