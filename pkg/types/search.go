// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures exchanged with the Space
// Frontiers search API and between the server's internal layers.
package types

import "strings"

// Source is a top-level partition of document kinds on the search API.
type Source string

const (
	SourceLibrary  Source = "library"
	SourceTelegram Source = "telegram"
	SourceReddit   Source = "reddit"
	SourceYoutube  Source = "youtube"
)

// Scoring selects the ranking strategy for simple (non-query) retrieval.
type Scoring string

const (
	ScoringDefault  Scoring = "default"
	ScoringTemporal Scoring = "temporal"
)

// Mode selects the match semantics across filter predicates.
type Mode string

const (
	ModeAnd Mode = "and"
	ModeOr  Mode = "or"
)

// FilterMap is the external API's filter language: predicate name to a
// list of accepted values. Keys are conjunctive, values within a key
// disjunctive. Values are always list-wrapped, even single scalars.
type FilterMap map[string]any

// QueryClassifierConfig tunes server-side query expansion.
type QueryClassifierConfig struct {
	// RelatedQueries is the number of related queries the API may
	// generate and fan out alongside the original query.
	RelatedQueries int `json:"related_queries,omitempty" yaml:"related_queries,omitempty"`
}

// SearchRequest is a relevance-ranked, query-driven search.
type SearchRequest struct {
	// Query is the free-text search query.
	Query string `json:"query" yaml:"query"`

	// SourcesFilters maps a source category to the filter map applied
	// within that category. Each category's filters are independent.
	SourcesFilters map[Source]FilterMap `json:"sources_filters,omitempty" yaml:"sources_filters,omitempty"`

	// Limit is the approximate number of documents to return.
	Limit int `json:"limit,omitempty" yaml:"limit,omitempty"`

	// Mode selects AND/OR semantics for filter predicates.
	Mode Mode `json:"mode,omitempty" yaml:"mode,omitempty"`

	// QueryClassifier configures server-side query expansion.
	QueryClassifier *QueryClassifierConfig `json:"query_classifier,omitempty" yaml:"query_classifier,omitempty"`

	// RefiningTarget optionally narrows ranking to a refinement goal.
	RefiningTarget string `json:"refining_target,omitempty" yaml:"refining_target,omitempty"`
}

// SimpleSearchRequest is an unranked or recency-ordered retrieval
// within a single source category.
type SimpleSearchRequest struct {
	// Source is the category to retrieve from.
	Source Source `json:"source" yaml:"source"`

	// Filters restricts the retrieved documents.
	Filters FilterMap `json:"filters,omitempty" yaml:"filters,omitempty"`

	// Scoring selects the ordering strategy ("temporal" for recency).
	Scoring Scoring `json:"scoring,omitempty" yaml:"scoring,omitempty"`

	// Limit is the total number of documents to return.
	Limit int `json:"limit,omitempty" yaml:"limit,omitempty"`

	// Mode selects AND/OR semantics for filter predicates.
	Mode Mode `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// DocumentsSearchRequest is a direct lookup with a restricted output
// field set. No ranking and no snippet extraction are performed.
type DocumentsSearchRequest struct {
	// Source is the category to look up in.
	Source Source `json:"source" yaml:"source"`

	// Filters identifies the documents, typically a "uris" predicate.
	Filters FilterMap `json:"filters,omitempty" yaml:"filters,omitempty"`

	// Fields is the projection: only these document fields are returned.
	Fields []string `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Limit is the maximum number of documents to return.
	Limit int `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// Snippet is a matched excerpt of a document's content.
type Snippet struct {
	Text string `json:"text" yaml:"text"`
}

// SearchDocument wraps one returned document with its matched snippets
// and the source category it came from.
type SearchDocument struct {
	// Document is the raw field mapping as returned by the API.
	Document map[string]any `json:"document" yaml:"document"`

	// Snippets are the matched excerpts, if any.
	Snippets []Snippet `json:"snippets,omitempty" yaml:"snippets,omitempty"`

	// Source is the category the document belongs to.
	Source Source `json:"source,omitempty" yaml:"source,omitempty"`
}

// JoinSnippetTexts concatenates all snippet texts with sep.
func (d *SearchDocument) JoinSnippetTexts(sep string) string {
	texts := make([]string, 0, len(d.Snippets))
	for _, s := range d.Snippets {
		texts = append(texts, s.Text)
	}
	return strings.Join(texts, sep)
}

// SearchResponse is the payload returned by search, simple_search and
// documents_search.
type SearchResponse struct {
	SearchDocuments []SearchDocument `json:"search_documents" yaml:"search_documents"`
}

// ResolveIDRequest asks the API to classify a free-text identifier.
type ResolveIDRequest struct {
	// Text is the raw input span to classify.
	Text string `json:"text" yaml:"text"`

	// FindAll requests every match rather than the single best one.
	FindAll bool `json:"find_all,omitempty" yaml:"find_all,omitempty"`
}

// IDMatch is one classified identifier inside the input text.
type IDMatch struct {
	// Kind names the identifier class (doi, isbn, pubmed_id, arxiv_id, url).
	Kind string `json:"kind" yaml:"kind"`

	// Value is the normalized identifier value.
	Value string `json:"value" yaml:"value"`

	// URI is the canonical form "scheme://value".
	URI string `json:"uri" yaml:"uri"`

	// Confidence is the classifier's confidence in [0,1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Source is the category the URI maps to. The API leaves it empty;
	// it is attached locally from the URI scheme.
	Source Source `json:"source,omitempty" yaml:"source,omitempty"`
}

// ResolveIDResponse is the payload returned by resolve_id.
type ResolveIDResponse struct {
	Success bool      `json:"success" yaml:"success"`
	Matches []IDMatch `json:"matches" yaml:"matches"`
}
