// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolvePrecedence(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		defaultKey string
		want       Credentials
	}{
		{
			name:    "user id wins over bearer key",
			headers: map[string]string{"X-User-Id": "u1", "Authorization": "Bearer k1"},
			want:    Credentials{UserID: "u1"},
		},
		{
			name:    "bearer key stripped and trimmed",
			headers: map[string]string{"Authorization": "Bearer   k1  "},
			want:    Credentials{APIKey: "k1"},
		},
		{
			name:    "authorization without bearer prefix",
			headers: map[string]string{"Authorization": "k1"},
			want:    Credentials{APIKey: "k1"},
		},
		{
			name:    "bearer wins over x-api-key",
			headers: map[string]string{"Authorization": "Bearer k1", "X-Api-Key": "k2"},
			want:    Credentials{APIKey: "k1"},
		},
		{
			name:    "x-api-key",
			headers: map[string]string{"X-Api-Key": "k2"},
			want:    Credentials{APIKey: "k2"},
		},
		{
			name:       "default key when headers carry nothing",
			headers:    map[string]string{"Content-Type": "application/json"},
			defaultKey: "env-key",
			want:       Credentials{APIKey: "env-key"},
		},
		{
			name:    "anonymous when nothing is configured",
			headers: map[string]string{},
			want:    Credentials{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			r := Resolver{DefaultAPIKey: tt.defaultKey}
			got := r.Resolve(WithHeaders(context.Background(), h))
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveNoRequestContext(t *testing.T) {
	r := Resolver{DefaultAPIKey: "env-key"}
	got := r.Resolve(context.Background())
	if got != (Credentials{APIKey: "env-key"}) {
		t.Errorf("Resolve() = %+v, want default key", got)
	}
}

func TestResolveNoRequestContextNoDefault(t *testing.T) {
	var r Resolver
	got := r.Resolve(context.Background())
	if !got.IsAnonymous() {
		t.Errorf("Resolve() = %+v, want anonymous", got)
	}
}

func TestMiddlewareCapturesHeaders(t *testing.T) {
	var got Credentials
	inner := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = Resolver{}.Resolve(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-User-Id", "u42")
	Middleware(inner).ServeHTTP(httptest.NewRecorder(), req)

	if got != (Credentials{UserID: "u42"}) {
		t.Errorf("resolved %+v, want user u42", got)
	}
}
