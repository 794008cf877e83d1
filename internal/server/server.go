// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the Space Frontiers search API as MCP tools
// and prompts. Every tool is a thin composition: resolve authorization,
// build filters from parameters, call the API client, shape the result.
package server

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/pdiddy/spacefrontiers-mcp/internal/auth"
	"github.com/pdiddy/spacefrontiers-mcp/internal/searchapi"
)

const serverName = "spacefrontiers-mcp"

const instructions = `Searches over Space Frontiers datasets (scholarly
and general documents, Telegram posts, Reddit posts) and returns the
matching documents for analysis.`

// mcpRequest tags every upstream call as originating from this server.
var mcpRequest = searchapi.RequestContext{RequestSource: searchapi.RequestSourceMCP}

// Server wires the API client into an MCP tool surface. The client is
// the only shared state and is read-only; each tool invocation builds
// its request in freshly allocated values, so concurrent calls do not
// interfere.
type Server struct {
	api      *searchapi.Client
	resolver auth.Resolver
	log      zerolog.Logger
	mcp      *mcp.Server
}

// New builds the server and registers all tools and prompts.
func New(api *searchapi.Client, resolver auth.Resolver, version string, log zerolog.Logger) *Server {
	s := &Server{
		api:      api,
		resolver: resolver,
		log:      log,
	}
	s.mcp = mcp.NewServer(
		&mcp.Implementation{Name: serverName, Version: version},
		&mcp.ServerOptions{Instructions: instructions},
	)
	s.registerTools()
	s.registerPrompts()
	return s
}

// HTTPHandler serves the MCP streamable HTTP transport. Inbound headers
// are captured into each request's context so tool handlers can resolve
// the caller's identity.
func (s *Server) HTTPHandler() http.Handler {
	h := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.mcp }, nil)
	return auth.Middleware(h)
}

// RunStdio serves MCP over stdin/stdout until the client disconnects.
// There are no inbound headers on stdio, so every call resolves to the
// configured default key.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
