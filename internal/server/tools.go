// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/spacefrontiers-mcp/internal/filters"
	"github.com/pdiddy/spacefrontiers-mcp/internal/shape"
	"github.com/pdiddy/spacefrontiers-mcp/internal/source"
	"github.com/pdiddy/spacefrontiers-mcp/pkg/types"
)

// Limit bounds shared by every tool that accepts a limit parameter.
// Out-of-range values are rejected, not clamped.
const (
	minLimit            = 1
	maxLimit            = 100
	defaultLimit        = 50
	defaultUnifiedLimit = 70
)

// metadataFields is the projection for metadata-only document lookups.
var metadataFields = []string{
	"id", "title", "authors", "abstract", "references", "metadata", "issued_at", "type",
}

// scholarlySources are the datasets research_tool accepts.
var scholarlySources = map[string]bool{
	"wiki":     true,
	"pubmed":   true,
	"standard": true,
	"arxiv":    true,
	"biorxiv":  true,
	"medrxiv":  true,
}

// recentScholarSources are the datasets recent-publication retrieval accepts.
var recentScholarSources = map[string]bool{
	"pubmed":  true,
	"arxiv":   true,
	"biorxiv": true,
	"medrxiv": true,
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "search",
		Description: "Unified search across all Space Frontiers sources (scholarly/general " +
			"documents, Telegram posts, Reddit posts) with a single free-text query. " +
			"Use a source-specific tool when the request names one dataset.",
		Annotations: &mcp.ToolAnnotations{Title: "Unified search", ReadOnlyHint: true},
	}, s.handleUnifiedSearch)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "research_tool",
		Description: "Query-based search across Wiki, scholarly and general sources. " +
			"Use for queries like \"find papers about X\" or \"wiki info about Y\"; requires a textual query. " +
			"For recent publications without a query, use get_recent_scholar_publications instead.",
		Annotations: &mcp.ToolAnnotations{Title: "Scholarly/General search (Wiki, PubMed, Arxiv, BioRxiv, medRxiv)", ReadOnlyHint: true},
	}, s.handleResearch)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "get_recent_scholar_publications",
		Description: "Get the most recent publications from a scholarly source, ordered by recency. " +
			"Use for requests like \"recent arxiv papers\" or \"latest medrxiv\". " +
			"Does NOT accept a free-text query; for query-based search use research_tool.",
		Annotations: &mcp.ToolAnnotations{Title: "Recent scholarly publications", ReadOnlyHint: true},
	}, s.handleRecentScholar)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "telegram_search",
		Description: "Query-based search over Telegram posts. Optional filters: channel usernames, date range. " +
			"For \"recent posts in Telegram\" without a query, use get_recent_posts_from_telegram.",
		Annotations: &mcp.ToolAnnotations{Title: "Telegram search (query-based)", ReadOnlyHint: true},
	}, s.handleTelegramSearch)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "get_recent_posts_from_telegram",
		Description: "Retrieve recent Telegram posts ordered by recency (no free-text query). " +
			"Optionally filter by channel usernames and/or a date range. " +
			"For query-based Telegram search, use telegram_search.",
		Annotations: &mcp.ToolAnnotations{Title: "Recent posts from Telegram", ReadOnlyHint: true},
	}, s.handleRecentTelegram)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "reddit_search",
		Description: "Query-based search over Reddit posts. Optional filters: subreddits (with or without " +
			"a leading r/), date range. For \"recent posts from Reddit\" without a query, use " +
			"get_recent_posts_from_reddit.",
		Annotations: &mcp.ToolAnnotations{Title: "Reddit search (query-based)", ReadOnlyHint: true},
	}, s.handleRedditSearch)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "get_recent_posts_from_reddit",
		Description: "Retrieve the latest posts from specific subreddits ordered by recency. " +
			"Use for requests like \"latest on r/sub1, r/sub2\". Does not accept a free-text query; " +
			"for query-based Reddit search use reddit_search.",
		Annotations: &mcp.ToolAnnotations{Title: "Recent posts from Reddit", ReadOnlyHint: true},
	}, s.handleRecentReddit)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "resolve_id",
		Description: "Classify a free-text identifier (DOI, ISBN, PubMed ID, ArXiv ID, URL) into a " +
			"canonical document URI and source category. Use before fetching a document by identifier.",
		Annotations: &mcp.ToolAnnotations{Title: "Resolve identifier", ReadOnlyHint: true},
	}, s.handleResolveID)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "get_document",
		Description: "Fetch a single document by URI with content filtered by a mandatory query: " +
			"only snippets matching the query are extracted and joined into a content field. " +
			"For plain metadata without content, use get_document_metadata (faster).",
		Annotations: &mcp.ToolAnnotations{Title: "Document fetch (content-filtered)", ReadOnlyHint: true},
	}, s.handleGetDocument)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "get_document_metadata",
		Description: "Fetch a single document's metadata by URI: id, title, authors, abstract, " +
			"references, metadata, issued_at and type. No query matching is performed, which makes " +
			"this strictly faster than get_document.",
		Annotations: &mcp.ToolAnnotations{Title: "Document metadata fetch", ReadOnlyHint: true},
	}, s.handleGetDocumentMetadata)
}

// --- inputs and outputs ---

// UnifiedSearchInput is the input for the unified search tool.
type UnifiedSearchInput struct {
	Query     string `json:"query" jsonschema:"Free-text search query (short descriptive phrase)"`
	StartDate string `json:"start_date,omitempty" jsonschema:"ISO date (YYYY-MM-DD). Include documents on/after this date"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"ISO date (YYYY-MM-DD). Include documents up to and including this date"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Approximate number of documents to return (1-100, default 70)"`
}

// ResearchInput is the input for the scholarly search tool.
type ResearchInput struct {
	Query     string `json:"query" jsonschema:"Free-text search query (short descriptive phrase)"`
	Source    string `json:"source" jsonschema:"The dataset to search in: wiki, pubmed, standard, arxiv, biorxiv or medrxiv"`
	StartDate string `json:"start_date,omitempty" jsonschema:"ISO date (YYYY-MM-DD). Include documents on/after this date"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"ISO date (YYYY-MM-DD). Include documents up to and including this date"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Approximate number of documents to return (1-100, default 50)"`
}

// RecentScholarInput is the input for recent-publication retrieval.
type RecentScholarInput struct {
	Source string `json:"source" jsonschema:"The dataset to fetch recent publications from: pubmed, arxiv, biorxiv or medrxiv"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Approximate number of publications to return (1-100, default 50)"`
}

// TelegramSearchInput is the input for query-based Telegram search.
type TelegramSearchInput struct {
	Query            string   `json:"query" jsonschema:"Free-text query to match in Telegram posts"`
	ChannelUsernames []string `json:"telegram_channel_usernames,omitempty" jsonschema:"Telegram channel usernames to filter by (with or without a leading @)"`
	StartDate        string   `json:"start_date,omitempty" jsonschema:"ISO date (YYYY-MM-DD). Include posts on/after this date"`
	EndDate          string   `json:"end_date,omitempty" jsonschema:"ISO date (YYYY-MM-DD). Include posts up to and including this date"`
	Limit            int      `json:"limit,omitempty" jsonschema:"Approximate number of Telegram posts to return (1-100, default 50)"`
}

// RecentTelegramInput is the input for recency-ordered Telegram retrieval.
type RecentTelegramInput struct {
	ChannelUsernames []string `json:"telegram_channel_usernames,omitempty" jsonschema:"Telegram channel usernames to filter by (with or without a leading @)"`
	StartDate        string   `json:"start_date,omitempty" jsonschema:"ISO date (YYYY-MM-DD). Include posts on/after this date"`
	EndDate          string   `json:"end_date,omitempty" jsonschema:"ISO date (YYYY-MM-DD). Include posts up to and including this date"`
	Limit            int      `json:"limit,omitempty" jsonschema:"Total number of Telegram posts to return (1-100, default 50)"`
}

// RedditSearchInput is the input for query-based Reddit search.
type RedditSearchInput struct {
	Query      string   `json:"query" jsonschema:"Free-text query to match in Reddit posts"`
	Subreddits []string `json:"subreddits,omitempty" jsonschema:"Subreddit names (with or without a leading r/)"`
	StartDate  string   `json:"start_date,omitempty" jsonschema:"ISO date (YYYY-MM-DD). Include posts on/after this date"`
	EndDate    string   `json:"end_date,omitempty" jsonschema:"ISO date (YYYY-MM-DD). Include posts up to and including this date"`
	Limit      int      `json:"limit,omitempty" jsonschema:"Approximate number of Reddit submissions to return (1-100, default 50)"`
}

// RecentRedditInput is the input for recency-ordered Reddit retrieval.
type RecentRedditInput struct {
	Subreddits   []string `json:"subreddits" jsonschema:"Subreddit names to load posts from (with or without a leading r/)"`
	Limit        int      `json:"limit,omitempty" jsonschema:"Total number of Reddit posts to return (1-100, default 50)"`
	WithComments bool     `json:"with_comments,omitempty" jsonschema:"Best-effort: include comments if available in the backend (may be ignored)"`
}

// ResolveIDInput is the input for identifier resolution.
type ResolveIDInput struct {
	Text    string `json:"text" jsonschema:"Raw text containing an identifier (DOI, ISBN, PubMed ID, ArXiv ID or URL)"`
	FindAll bool   `json:"find_all,omitempty" jsonschema:"Return every identifier found instead of the single best match"`
}

// GetDocumentInput is the input for a content-filtered document fetch.
type GetDocumentInput struct {
	URI    string `json:"uri" jsonschema:"Canonical document URI, e.g. doi://10.1145/3297280 or telegram://channel/42"`
	Query  string `json:"query" jsonschema:"Mandatory free-text query; it determines which snippets are extracted"`
	Source string `json:"source,omitempty" jsonschema:"Source category (library, telegram, reddit, youtube); auto-detected from the URI when omitted"`
}

// GetDocumentMetadataInput is the input for a metadata-only fetch.
type GetDocumentMetadataInput struct {
	URI string `json:"uri" jsonschema:"Canonical document URI, e.g. doi://10.1145/3297280"`
}

// DocumentOutput is a single-document result. On a miss it carries
// exactly the error field and nothing else, so callers can branch on a
// field instead of handling a fault.
type DocumentOutput struct {
	Document map[string]any `json:"document,omitempty"`
	Source   types.Source   `json:"source,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// --- handlers ---

func (s *Server) handleUnifiedSearch(ctx context.Context, _ *mcp.CallToolRequest, in UnifiedSearchInput) (*mcp.CallToolResult, types.SearchResponse, error) {
	if strings.TrimSpace(in.Query) == "" {
		return nil, types.SearchResponse{}, fmt.Errorf("query is required")
	}
	limit, err := validateLimit(in.Limit, defaultUnifiedLimit)
	if err != nil {
		return nil, types.SearchResponse{}, err
	}
	start, end, err := parseDates(in.StartDate, in.EndDate)
	if err != nil {
		return nil, types.SearchResponse{}, err
	}

	// Each category gets its own independently built filter map; there
	// is no cross-talk between them.
	now := time.Now()
	sourcesFilters := make(map[types.Source]types.FilterMap, 3)
	for _, src := range []types.Source{types.SourceLibrary, types.SourceTelegram, types.SourceReddit} {
		var f filters.Filters
		f.ApplyDateRange(start, end, now)
		sourcesFilters[src] = f.Wire()
	}

	resp, err := s.api.Search(ctx, &types.SearchRequest{
		Query:          in.Query,
		SourcesFilters: sourcesFilters,
		Limit:          limit,
	}, s.resolver.Resolve(ctx), mcpRequest)
	if err != nil {
		return s.toolError("search", err)
	}
	s.log.Info().Str("tool", "search").Str("query", in.Query).Int("documents", len(resp.SearchDocuments)).Msg("tool call")
	return nil, *shape.FormatResponse(resp), nil
}

func (s *Server) handleResearch(ctx context.Context, _ *mcp.CallToolRequest, in ResearchInput) (*mcp.CallToolResult, types.SearchResponse, error) {
	if strings.TrimSpace(in.Query) == "" {
		return nil, types.SearchResponse{}, fmt.Errorf("query is required")
	}
	if !scholarlySources[strings.ToLower(in.Source)] {
		return nil, types.SearchResponse{}, fmt.Errorf("unknown source %q: expected wiki, pubmed, standard, arxiv, biorxiv or medrxiv", in.Source)
	}
	limit, err := validateLimit(in.Limit, defaultLimit)
	if err != nil {
		return nil, types.SearchResponse{}, err
	}
	start, end, err := parseDates(in.StartDate, in.EndDate)
	if err != nil {
		return nil, types.SearchResponse{}, err
	}

	var f filters.Filters
	f.ApplySources([]string{in.Source})
	f.ApplyDateRange(start, end, time.Now())

	resp, err := s.api.Search(ctx, &types.SearchRequest{
		Query:          in.Query,
		SourcesFilters: map[types.Source]types.FilterMap{types.SourceLibrary: f.Wire()},
		Limit:          limit,
	}, s.resolver.Resolve(ctx), mcpRequest)
	if err != nil {
		return s.toolError("research_tool", err)
	}
	s.log.Info().Str("tool", "research_tool").Str("source", in.Source).Int("documents", len(resp.SearchDocuments)).Msg("tool call")
	return nil, *shape.FormatResponse(resp), nil
}

func (s *Server) handleRecentScholar(ctx context.Context, _ *mcp.CallToolRequest, in RecentScholarInput) (*mcp.CallToolResult, types.SearchResponse, error) {
	if !recentScholarSources[strings.ToLower(in.Source)] {
		return nil, types.SearchResponse{}, fmt.Errorf("unknown source %q: expected pubmed, arxiv, biorxiv or medrxiv", in.Source)
	}
	limit, err := validateLimit(in.Limit, defaultLimit)
	if err != nil {
		return nil, types.SearchResponse{}, err
	}

	var f filters.Filters
	f.ApplySources([]string{in.Source})

	resp, err := s.api.SimpleSearch(ctx, &types.SimpleSearchRequest{
		Source:  types.SourceLibrary,
		Filters: f.Wire(),
		Scoring: types.ScoringTemporal,
		Limit:   limit,
		Mode:    types.ModeOr,
	}, s.resolver.Resolve(ctx), mcpRequest)
	if err != nil {
		return s.toolError("get_recent_scholar_publications", err)
	}
	s.log.Info().Str("tool", "get_recent_scholar_publications").Str("source", in.Source).Int("documents", len(resp.SearchDocuments)).Msg("tool call")
	return nil, *shape.FormatResponse(resp), nil
}

func (s *Server) handleTelegramSearch(ctx context.Context, _ *mcp.CallToolRequest, in TelegramSearchInput) (*mcp.CallToolResult, types.SearchResponse, error) {
	if strings.TrimSpace(in.Query) == "" {
		return nil, types.SearchResponse{}, fmt.Errorf("query is required")
	}
	limit, err := validateLimit(in.Limit, defaultLimit)
	if err != nil {
		return nil, types.SearchResponse{}, err
	}
	start, end, err := parseDates(in.StartDate, in.EndDate)
	if err != nil {
		return nil, types.SearchResponse{}, err
	}

	var f filters.Filters
	f.SetChannels(in.ChannelUsernames)
	f.ApplyDateRange(start, end, time.Now())

	resp, err := s.api.Search(ctx, &types.SearchRequest{
		Query:           in.Query,
		QueryClassifier: &types.QueryClassifierConfig{RelatedQueries: 3},
		SourcesFilters:  map[types.Source]types.FilterMap{types.SourceTelegram: f.Wire()},
		Limit:           limit,
	}, s.resolver.Resolve(ctx), mcpRequest)
	if err != nil {
		return s.toolError("telegram_search", err)
	}
	s.log.Info().Str("tool", "telegram_search").Int("documents", len(resp.SearchDocuments)).Msg("tool call")
	return nil, *shape.FormatResponse(resp), nil
}

func (s *Server) handleRecentTelegram(ctx context.Context, _ *mcp.CallToolRequest, in RecentTelegramInput) (*mcp.CallToolResult, types.SearchResponse, error) {
	limit, err := validateLimit(in.Limit, defaultLimit)
	if err != nil {
		return nil, types.SearchResponse{}, err
	}
	start, end, err := parseDates(in.StartDate, in.EndDate)
	if err != nil {
		return nil, types.SearchResponse{}, err
	}

	var f filters.Filters
	f.SetChannels(in.ChannelUsernames)
	f.ApplyDateRange(start, end, time.Now())

	resp, err := s.api.SimpleSearch(ctx, &types.SimpleSearchRequest{
		Source:  types.SourceTelegram,
		Filters: f.Wire(),
		Scoring: types.ScoringTemporal,
		Limit:   limit,
	}, s.resolver.Resolve(ctx), mcpRequest)
	if err != nil {
		return s.toolError("get_recent_posts_from_telegram", err)
	}
	s.log.Info().Str("tool", "get_recent_posts_from_telegram").Int("documents", len(resp.SearchDocuments)).Msg("tool call")
	return nil, *shape.FormatResponse(resp), nil
}

func (s *Server) handleRedditSearch(ctx context.Context, _ *mcp.CallToolRequest, in RedditSearchInput) (*mcp.CallToolResult, types.SearchResponse, error) {
	if strings.TrimSpace(in.Query) == "" {
		return nil, types.SearchResponse{}, fmt.Errorf("query is required")
	}
	limit, err := validateLimit(in.Limit, defaultLimit)
	if err != nil {
		return nil, types.SearchResponse{}, err
	}
	start, end, err := parseDates(in.StartDate, in.EndDate)
	if err != nil {
		return nil, types.SearchResponse{}, err
	}

	var f filters.Filters
	f.SetSubreddits(in.Subreddits)
	f.ApplyDateRange(start, end, time.Now())

	resp, err := s.api.Search(ctx, &types.SearchRequest{
		Query:           in.Query,
		QueryClassifier: &types.QueryClassifierConfig{RelatedQueries: 3},
		SourcesFilters:  map[types.Source]types.FilterMap{types.SourceReddit: f.Wire()},
		Limit:           limit,
	}, s.resolver.Resolve(ctx), mcpRequest)
	if err != nil {
		return s.toolError("reddit_search", err)
	}
	s.log.Info().Str("tool", "reddit_search").Int("documents", len(resp.SearchDocuments)).Msg("tool call")
	return nil, *shape.FormatResponse(resp), nil
}

func (s *Server) handleRecentReddit(ctx context.Context, _ *mcp.CallToolRequest, in RecentRedditInput) (*mcp.CallToolResult, types.SearchResponse, error) {
	if len(in.Subreddits) == 0 {
		return nil, types.SearchResponse{}, fmt.Errorf("at least one subreddit is required")
	}
	limit, err := validateLimit(in.Limit, defaultLimit)
	if err != nil {
		return nil, types.SearchResponse{}, err
	}

	var f filters.Filters
	f.SetSubreddits(in.Subreddits)

	resp, err := s.api.SimpleSearch(ctx, &types.SimpleSearchRequest{
		Source:  types.SourceReddit,
		Filters: f.Wire(),
		Scoring: types.ScoringTemporal,
		Limit:   limit,
	}, s.resolver.Resolve(ctx), mcpRequest)
	if err != nil {
		return s.toolError("get_recent_posts_from_reddit", err)
	}
	s.log.Info().Str("tool", "get_recent_posts_from_reddit").Int("documents", len(resp.SearchDocuments)).Msg("tool call")
	return nil, *shape.FormatResponse(resp), nil
}

func (s *Server) handleResolveID(ctx context.Context, _ *mcp.CallToolRequest, in ResolveIDInput) (*mcp.CallToolResult, types.ResolveIDResponse, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, types.ResolveIDResponse{}, fmt.Errorf("text is required")
	}

	resp, err := s.api.ResolveID(ctx, &types.ResolveIDRequest{
		Text:    in.Text,
		FindAll: in.FindAll,
	}, s.resolver.Resolve(ctx), mcpRequest)
	if err != nil {
		s.log.Error().Str("tool", "resolve_id").Err(err).Msg("tool call failed")
		return nil, types.ResolveIDResponse{}, err
	}

	// The API reports canonical URIs; the source category is ours to
	// attach from the URI scheme.
	for i := range resp.Matches {
		resp.Matches[i].Source = source.ClassifyURI(resp.Matches[i].URI)
	}
	s.log.Info().Str("tool", "resolve_id").Int("matches", len(resp.Matches)).Msg("tool call")
	return nil, *resp, nil
}

func (s *Server) handleGetDocument(ctx context.Context, _ *mcp.CallToolRequest, in GetDocumentInput) (*mcp.CallToolResult, DocumentOutput, error) {
	if strings.TrimSpace(in.URI) == "" {
		return nil, DocumentOutput{}, fmt.Errorf("uri is required")
	}
	if strings.TrimSpace(in.Query) == "" {
		return nil, DocumentOutput{}, fmt.Errorf("query is required: it determines which snippets are extracted")
	}
	src, err := documentSource(in.Source, in.URI)
	if err != nil {
		return nil, DocumentOutput{}, err
	}

	var f filters.Filters
	f.SetURI(in.URI)

	resp, err := s.api.Search(ctx, &types.SearchRequest{
		Query:          in.Query,
		SourcesFilters: map[types.Source]types.FilterMap{src: f.Wire()},
		Limit:          1,
	}, s.resolver.Resolve(ctx), mcpRequest)
	if err != nil {
		s.log.Error().Str("tool", "get_document").Err(err).Msg("tool call failed")
		return nil, DocumentOutput{}, err
	}
	if len(resp.SearchDocuments) == 0 {
		s.log.Info().Str("tool", "get_document").Str("uri", in.URI).Msg("document not found")
		return nil, DocumentOutput{Error: shape.NotFound()["error"]}, nil
	}

	doc := resp.SearchDocuments[0]
	shape.NormalizeTimestamp(doc.Document)
	shape.SynthesizeContent(&doc)
	if doc.Source == "" {
		doc.Source = src
	}
	s.log.Info().Str("tool", "get_document").Str("uri", in.URI).Msg("tool call")
	return nil, DocumentOutput{Document: doc.Document, Source: doc.Source}, nil
}

func (s *Server) handleGetDocumentMetadata(ctx context.Context, _ *mcp.CallToolRequest, in GetDocumentMetadataInput) (*mcp.CallToolResult, DocumentOutput, error) {
	if strings.TrimSpace(in.URI) == "" {
		return nil, DocumentOutput{}, fmt.Errorf("uri is required")
	}
	src := source.ClassifyURI(in.URI)

	var f filters.Filters
	f.SetURI(in.URI)

	resp, err := s.api.DocumentsSearch(ctx, &types.DocumentsSearchRequest{
		Source:  src,
		Filters: f.Wire(),
		Fields:  metadataFields,
		Limit:   1,
	}, s.resolver.Resolve(ctx), mcpRequest)
	if err != nil {
		s.log.Error().Str("tool", "get_document_metadata").Err(err).Msg("tool call failed")
		return nil, DocumentOutput{}, err
	}
	if len(resp.SearchDocuments) == 0 {
		s.log.Info().Str("tool", "get_document_metadata").Str("uri", in.URI).Msg("document not found")
		return nil, DocumentOutput{Error: shape.NotFound()["error"]}, nil
	}

	doc := resp.SearchDocuments[0]
	shape.NormalizeTimestamp(doc.Document)
	if doc.Source == "" {
		doc.Source = src
	}
	s.log.Info().Str("tool", "get_document_metadata").Str("uri", in.URI).Msg("tool call")
	return nil, DocumentOutput{Document: doc.Document, Source: doc.Source}, nil
}

// --- helpers ---

// toolError logs an upstream failure and propagates it unmodified.
func (s *Server) toolError(tool string, err error) (*mcp.CallToolResult, types.SearchResponse, error) {
	s.log.Error().Str("tool", tool).Err(err).Msg("tool call failed")
	return nil, types.SearchResponse{}, err
}

// validateLimit applies the default for an omitted limit and rejects
// values outside [1,100].
func validateLimit(limit, def int) (int, error) {
	if limit == 0 {
		return def, nil
	}
	if limit < minLimit || limit > maxLimit {
		return 0, fmt.Errorf("limit %d out of range [%d,%d]", limit, minLimit, maxLimit)
	}
	return limit, nil
}

// parseDates parses optional start/end ISO dates.
func parseDates(startDate, endDate string) (start, end time.Time, err error) {
	if start, err = filters.ParseDate(startDate); err != nil {
		return start, end, fmt.Errorf("start_date: %w", err)
	}
	if end, err = filters.ParseDate(endDate); err != nil {
		return start, end, fmt.Errorf("end_date: %w", err)
	}
	return start, end, nil
}

// documentSource validates an explicit source category or classifies
// the URI when none was supplied.
func documentSource(explicit, uri string) (types.Source, error) {
	if explicit == "" {
		return source.ClassifyURI(uri), nil
	}
	switch src := types.Source(strings.ToLower(explicit)); src {
	case types.SourceLibrary, types.SourceTelegram, types.SourceReddit, types.SourceYoutube:
		return src, nil
	default:
		return "", fmt.Errorf("unknown source %q: expected library, telegram, reddit or youtube", explicit)
	}
}
