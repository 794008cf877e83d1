// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/spacefrontiers-mcp/internal/auth"
	"github.com/pdiddy/spacefrontiers-mcp/internal/searchapi"
	"github.com/pdiddy/spacefrontiers-mcp/pkg/types"
)

// upstream captures the last request the server forwarded to the API.
type upstream struct {
	path    string
	headers http.Header
	body    map[string]any
	reply   string
}

func (u *upstream) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u.path = r.URL.Path
		u.headers = r.Header.Clone()
		u.body = map[string]any{}
		json.NewDecoder(r.Body).Decode(&u.body)
		fmt.Fprint(w, u.reply)
	}
}

func newTestServer(t *testing.T, reply string) (*Server, *upstream) {
	t.Helper()
	u := &upstream{reply: reply}
	ts := httptest.NewServer(u.handler())
	t.Cleanup(ts.Close)

	api := searchapi.New(types.ClientConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 10 * time.Second, UserAgent: "test/0.1"},
		BaseURL:    ts.URL,
	})
	return New(api, auth.Resolver{DefaultAPIKey: "env-key"}, "test", zerolog.Nop()), u
}

const emptySearchJSON = `{"search_documents": []}`

func TestUnifiedSearchDefaults(t *testing.T) {
	s, u := newTestServer(t, emptySearchJSON)

	_, _, err := s.handleUnifiedSearch(context.Background(), nil, UnifiedSearchInput{Query: "dark matter"})
	if err != nil {
		t.Fatalf("handleUnifiedSearch: %v", err)
	}

	if u.path != "/v1/search" {
		t.Errorf("path = %q, want /v1/search", u.path)
	}
	if u.body["limit"] != float64(70) {
		t.Errorf("limit = %v, want 70", u.body["limit"])
	}
	sf, ok := u.body["sources_filters"].(map[string]any)
	if !ok {
		t.Fatalf("sources_filters = %v", u.body["sources_filters"])
	}
	for _, src := range []string{"library", "telegram", "reddit"} {
		if _, ok := sf[src]; !ok {
			t.Errorf("sources_filters missing %q", src)
		}
	}
}

func TestUnifiedSearchRequiresQuery(t *testing.T) {
	s, _ := newTestServer(t, emptySearchJSON)
	_, _, err := s.handleUnifiedSearch(context.Background(), nil, UnifiedSearchInput{})
	if err == nil || !strings.Contains(err.Error(), "query") {
		t.Errorf("expected query-required error, got %v", err)
	}
}

func TestLimitValidation(t *testing.T) {
	s, _ := newTestServer(t, emptySearchJSON)

	for _, limit := range []int{-5, 101, 1000} {
		_, _, err := s.handleResearch(context.Background(), nil, ResearchInput{
			Query: "q", Source: "wiki", Limit: limit,
		})
		if err == nil || !strings.Contains(err.Error(), "out of range") {
			t.Errorf("limit %d: expected out-of-range error, got %v", limit, err)
		}
	}

	// Boundary values pass through.
	for _, limit := range []int{1, 100} {
		_, _, err := s.handleResearch(context.Background(), nil, ResearchInput{
			Query: "q", Source: "wiki", Limit: limit,
		})
		if err != nil {
			t.Errorf("limit %d: unexpected error %v", limit, err)
		}
	}
}

func TestResearchFilterMapping(t *testing.T) {
	s, u := newTestServer(t, emptySearchJSON)

	_, _, err := s.handleResearch(context.Background(), nil, ResearchInput{
		Query: "crispr", Source: "pubmed",
	})
	if err != nil {
		t.Fatalf("handleResearch: %v", err)
	}

	sf := u.body["sources_filters"].(map[string]any)
	library, ok := sf["library"].(map[string]any)
	if !ok {
		t.Fatalf("library filters = %v", sf["library"])
	}
	pubmed, ok := library["metadata.is_pubmed"].([]any)
	if !ok || len(pubmed) != 1 || pubmed[0] != true {
		t.Errorf("metadata.is_pubmed = %v, want [true]", library["metadata.is_pubmed"])
	}
	if _, ok := library["type"]; ok {
		t.Errorf("pubmed must not produce a type filter, got %v", library["type"])
	}
}

func TestResearchRejectsUnknownSource(t *testing.T) {
	s, _ := newTestServer(t, emptySearchJSON)
	_, _, err := s.handleResearch(context.Background(), nil, ResearchInput{Query: "q", Source: "usenet"})
	if err == nil || !strings.Contains(err.Error(), "unknown source") {
		t.Errorf("expected unknown-source error, got %v", err)
	}
}

func TestRecentScholarRequest(t *testing.T) {
	s, u := newTestServer(t, emptySearchJSON)

	_, _, err := s.handleRecentScholar(context.Background(), nil, RecentScholarInput{Source: "arxiv"})
	if err != nil {
		t.Fatalf("handleRecentScholar: %v", err)
	}

	if u.path != "/v1/simple_search" {
		t.Errorf("path = %q, want /v1/simple_search", u.path)
	}
	if u.body["source"] != "library" {
		t.Errorf("source = %v, want library", u.body["source"])
	}
	if u.body["scoring"] != "temporal" {
		t.Errorf("scoring = %v, want temporal", u.body["scoring"])
	}
	if u.body["mode"] != "or" {
		t.Errorf("mode = %v, want or", u.body["mode"])
	}
	fl := u.body["filters"].(map[string]any)
	pubs, ok := fl["metadata.publisher"].([]any)
	if !ok || len(pubs) != 1 || pubs[0] != "arxiv" {
		t.Errorf("metadata.publisher = %v, want [arxiv]", fl["metadata.publisher"])
	}
}

func TestTelegramSearchRequest(t *testing.T) {
	s, u := newTestServer(t, emptySearchJSON)

	_, _, err := s.handleTelegramSearch(context.Background(), nil, TelegramSearchInput{
		Query:            "space launch",
		ChannelUsernames: []string{"@spacenews", "rockets"},
		StartDate:        "2024-01-01",
	})
	if err != nil {
		t.Fatalf("handleTelegramSearch: %v", err)
	}

	qc := u.body["query_classifier"].(map[string]any)
	if qc["related_queries"] != float64(3) {
		t.Errorf("related_queries = %v, want 3", qc["related_queries"])
	}

	sf := u.body["sources_filters"].(map[string]any)
	tg := sf["telegram"].(map[string]any)
	channels, _ := tg["telegram_channel_usernames"].([]any)
	if len(channels) != 2 || channels[0] != "spacenews" || channels[1] != "rockets" {
		t.Errorf("telegram_channel_usernames = %v", tg["telegram_channel_usernames"])
	}
	if _, ok := tg["issued_at"]; !ok {
		t.Error("date range filter missing")
	}
}

func TestRedditSearchUsesRedditFilters(t *testing.T) {
	s, u := newTestServer(t, emptySearchJSON)

	_, _, err := s.handleRedditSearch(context.Background(), nil, RedditSearchInput{
		Query:      "fusion",
		Subreddits: []string{"r/physics"},
	})
	if err != nil {
		t.Fatalf("handleRedditSearch: %v", err)
	}

	sf := u.body["sources_filters"].(map[string]any)
	if _, ok := sf["telegram"]; ok {
		t.Error("reddit search must not touch the telegram filter map")
	}
	rd, ok := sf["reddit"].(map[string]any)
	if !ok {
		t.Fatalf("reddit filters = %v", sf["reddit"])
	}
	subs, _ := rd["metadata.subreddit"].([]any)
	if len(subs) != 1 || subs[0] != "physics" {
		t.Errorf("metadata.subreddit = %v, want [physics]", rd["metadata.subreddit"])
	}
}

func TestRecentRedditRequiresSubreddits(t *testing.T) {
	s, _ := newTestServer(t, emptySearchJSON)
	_, _, err := s.handleRecentReddit(context.Background(), nil, RecentRedditInput{})
	if err == nil || !strings.Contains(err.Error(), "subreddit") {
		t.Errorf("expected subreddit-required error, got %v", err)
	}
}

func TestResolveIDAttachesSource(t *testing.T) {
	s, _ := newTestServer(t, `{
	  "success": true,
	  "matches": [
	    {"kind": "doi", "value": "10.1/x", "uri": "doi://10.1/x", "confidence": 0.97},
	    {"kind": "url", "value": "t", "uri": "telegram://chan/7", "confidence": 0.8}
	  ]
	}`)

	_, out, err := s.handleResolveID(context.Background(), nil, ResolveIDInput{Text: "10.1/x", FindAll: true})
	if err != nil {
		t.Fatalf("handleResolveID: %v", err)
	}
	if len(out.Matches) != 2 {
		t.Fatalf("len(Matches) = %d, want 2", len(out.Matches))
	}
	if out.Matches[0].Source != types.SourceLibrary {
		t.Errorf("match 0 source = %q, want library", out.Matches[0].Source)
	}
	if out.Matches[1].Source != types.SourceTelegram {
		t.Errorf("match 1 source = %q, want telegram", out.Matches[1].Source)
	}
}

func TestGetDocumentContentSynthesis(t *testing.T) {
	s, u := newTestServer(t, `{
	  "search_documents": [
	    {
	      "document": {"uri": "doi://10.1/x", "title": "Paper", "issued_at": 0},
	      "snippets": [{"text": "a"}, {"text": "b"}],
	      "source": "library"
	    }
	  ]
	}`)

	_, out, err := s.handleGetDocument(context.Background(), nil, GetDocumentInput{
		URI: "doi://10.1/x", Query: "what about a",
	})
	if err != nil {
		t.Fatalf("handleGetDocument: %v", err)
	}

	if u.body["limit"] != float64(1) {
		t.Errorf("limit = %v, want 1", u.body["limit"])
	}
	sf := u.body["sources_filters"].(map[string]any)
	library := sf["library"].(map[string]any)
	uris, _ := library["uris"].([]any)
	if len(uris) != 1 || uris[0] != "doi://10.1/x" {
		t.Errorf("uris = %v", library["uris"])
	}

	if out.Error != "" {
		t.Fatalf("unexpected error payload %q", out.Error)
	}
	if out.Document["content"] != "a <...> b" {
		t.Errorf("content = %v, want %q", out.Document["content"], "a <...> b")
	}
	if _, isString := out.Document["issued_at"].(string); !isString {
		t.Errorf("issued_at not normalized: %v", out.Document["issued_at"])
	}
}

func TestGetDocumentRequiresQuery(t *testing.T) {
	s, _ := newTestServer(t, emptySearchJSON)
	_, _, err := s.handleGetDocument(context.Background(), nil, GetDocumentInput{URI: "doi://10.1/x"})
	if err == nil || !strings.Contains(err.Error(), "query is required") {
		t.Errorf("expected query-required error, got %v", err)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	s, _ := newTestServer(t, emptySearchJSON)

	_, out, err := s.handleGetDocument(context.Background(), nil, GetDocumentInput{
		URI: "doi://10.1/missing", Query: "q",
	})
	if err != nil {
		t.Fatalf("handleGetDocument: %v", err)
	}
	if out.Error != "Document not found" {
		t.Errorf("Error = %q, want %q", out.Error, "Document not found")
	}
	if out.Document != nil || out.Source != "" {
		t.Errorf("not-found payload must carry only the error field, got %+v", out)
	}
}

func TestGetDocumentSourceAutoDetect(t *testing.T) {
	s, u := newTestServer(t, emptySearchJSON)

	_, _, err := s.handleGetDocument(context.Background(), nil, GetDocumentInput{
		URI: "reddit://r/science/abc", Query: "q",
	})
	if err != nil {
		t.Fatalf("handleGetDocument: %v", err)
	}
	sf := u.body["sources_filters"].(map[string]any)
	if _, ok := sf["reddit"]; !ok {
		t.Errorf("source not auto-detected from URI, sources_filters = %v", sf)
	}
}

func TestGetDocumentMetadataRequest(t *testing.T) {
	s, u := newTestServer(t, `{
	  "search_documents": [
	    {"document": {"id": "1", "title": "Paper", "issued_at": 1717200000}, "source": "library"}
	  ]
	}`)

	_, out, err := s.handleGetDocumentMetadata(context.Background(), nil, GetDocumentMetadataInput{
		URI: "pubmed://12345",
	})
	if err != nil {
		t.Fatalf("handleGetDocumentMetadata: %v", err)
	}

	if u.path != "/v1/documents_search" {
		t.Errorf("path = %q, want /v1/documents_search", u.path)
	}
	fields, _ := u.body["fields"].([]any)
	if len(fields) != len(metadataFields) {
		t.Errorf("fields = %v, want %v", u.body["fields"], metadataFields)
	}

	if out.Source != types.SourceLibrary {
		t.Errorf("Source = %q, want library", out.Source)
	}
	if _, isString := out.Document["issued_at"].(string); !isString {
		t.Errorf("issued_at not normalized: %v", out.Document["issued_at"])
	}
}

func TestAuthorizationPrecedenceEndToEnd(t *testing.T) {
	s, u := newTestServer(t, emptySearchJSON)

	h := http.Header{}
	h.Set("X-User-Id", "u1")
	h.Set("Authorization", "Bearer k1")
	ctx := auth.WithHeaders(context.Background(), h)

	_, _, err := s.handleUnifiedSearch(ctx, nil, UnifiedSearchInput{Query: "q"})
	if err != nil {
		t.Fatalf("handleUnifiedSearch: %v", err)
	}

	if got := u.headers.Get("X-User-Id"); got != "u1" {
		t.Errorf("X-User-Id = %q, want u1", got)
	}
	if got := u.headers.Get("Authorization"); got != "" {
		t.Errorf("Authorization = %q, want empty (user id takes precedence)", got)
	}
	if got := u.headers.Get("X-Request-Source"); got != "mcp" {
		t.Errorf("X-Request-Source = %q, want mcp", got)
	}
}

func TestUpstreamFailurePropagates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	api := searchapi.New(types.ClientConfig{BaseURL: ts.URL})
	s := New(api, auth.Resolver{}, "test", zerolog.Nop())

	_, _, err := s.handleResearch(context.Background(), nil, ResearchInput{Query: "q", Source: "wiki"})
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("expected upstream 503 to propagate, got %v", err)
	}
}
