// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package shape post-processes search API responses before they are
// returned to the caller: timestamp normalization, snippet joining and
// not-found error shaping. Every operation is idempotent and touches
// only the document payload.
package shape

import (
	"time"

	"github.com/pdiddy/spacefrontiers-mcp/pkg/types"
)

// SnippetSeparator joins matched snippet texts into a single content field.
const SnippetSeparator = " <...> "

// timestampFormat renders issued_at as a local ISO-8601 date-time,
// without a zone suffix.
const timestampFormat = "2006-01-02T15:04:05"

// Epoch-second bounds for years 1 through 9999. Values outside are left
// untouched rather than rendered as nonsense dates.
const (
	minEpochSeconds = -62135596800
	maxEpochSeconds = 253402300799
)

// FormatResponse normalizes the issued_at timestamp of every document
// in the response. The response is modified in place and returned for
// chaining. Malformed timestamps are left untouched: a presentation
// nicety must never abort an otherwise-valid response.
func FormatResponse(resp *types.SearchResponse) *types.SearchResponse {
	for i := range resp.SearchDocuments {
		NormalizeTimestamp(resp.SearchDocuments[i].Document)
	}
	return resp
}

// NormalizeTimestamp rewrites a numeric epoch issued_at field to an
// ISO-8601 string. Absent, non-numeric or out-of-range values are left
// as they are.
func NormalizeTimestamp(doc map[string]any) {
	raw, ok := doc["issued_at"]
	if !ok {
		return
	}
	sec, ok := epochSeconds(raw)
	if !ok || sec < minEpochSeconds || sec > maxEpochSeconds {
		return
	}
	doc["issued_at"] = time.Unix(sec, 0).In(time.Local).Format(timestampFormat)
}

// epochSeconds extracts an integral epoch value from the numeric types
// a decoded JSON document may carry.
func epochSeconds(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

// SynthesizeContent joins the document's matched snippets into a single
// content field. When no snippets matched, no field is added.
func SynthesizeContent(doc *types.SearchDocument) {
	if len(doc.Snippets) == 0 {
		return
	}
	if doc.Document == nil {
		doc.Document = map[string]any{}
	}
	doc.Document["content"] = doc.JoinSnippetTexts(SnippetSeparator)
}

// NotFound is the structured payload for a single-document lookup that
// yielded zero results. Callers branch on the error field instead of
// handling a fault.
func NotFound() map[string]string {
	return map[string]string{"error": "Document not found"}
}
