// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package auth resolves the caller's identity from inbound request
// headers, with an environment-configured key as fallback. Absence of
// any credential is not an error here: unauthenticated calls are
// forwarded and the search API makes the authorization decision.
package auth

import (
	"context"
	"net/http"
	"strings"
)

// Credentials carries at most one of an API key or a user id. Both
// empty means anonymous.
type Credentials struct {
	APIKey string
	UserID string
}

// IsAnonymous reports whether no credential was resolved.
func (c Credentials) IsAnonymous() bool {
	return c.APIKey == "" && c.UserID == ""
}

type headerKey struct{}

// WithHeaders returns a context carrying the inbound HTTP headers. The
// HTTP transport installs this via Middleware; stdio transports install
// nothing, so resolution falls back to the default key.
func WithHeaders(ctx context.Context, h http.Header) context.Context {
	return context.WithValue(ctx, headerKey{}, h)
}

// headersFromContext returns the captured headers, if any.
func headersFromContext(ctx context.Context) (http.Header, bool) {
	h, ok := ctx.Value(headerKey{}).(http.Header)
	return h, ok
}

// Middleware captures each request's headers into its context so that
// tool handlers further down can resolve the caller's identity.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithHeaders(r.Context(), r.Header)))
	})
}

// Resolver resolves credentials with a fixed precedence.
type Resolver struct {
	// DefaultAPIKey is used when the request carries no credential of
	// its own (or there is no inbound request at all). May be empty.
	DefaultAPIKey string
}

// Resolve inspects the context's captured headers, first match wins:
// X-User-Id, then Authorization (a leading "Bearer" token is stripped),
// then X-Api-Key, then the default key. Without captured headers the
// invocation is in-process and the default key applies directly.
func (r Resolver) Resolve(ctx context.Context) Credentials {
	h, ok := headersFromContext(ctx)
	if !ok {
		return Credentials{APIKey: r.DefaultAPIKey}
	}
	if v := h.Get("X-User-Id"); v != "" {
		return Credentials{UserID: v}
	}
	if v := h.Get("Authorization"); v != "" {
		return Credentials{APIKey: strings.TrimSpace(strings.TrimPrefix(v, "Bearer"))}
	}
	if v := h.Get("X-Api-Key"); v != "" {
		return Credentials{APIKey: v}
	}
	return Credentials{APIKey: r.DefaultAPIKey}
}
