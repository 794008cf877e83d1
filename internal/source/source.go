// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source classifies document URIs into search API source
// categories.
package source

import (
	"strings"

	"github.com/pdiddy/spacefrontiers-mcp/pkg/types"
)

// schemePrefixes maps recognized URI scheme prefixes to categories.
// Everything else, including scholarly schemes such as doi://,
// pubmed://, arxiv:// and isbn://, belongs to the library.
var schemePrefixes = []struct {
	prefix string
	source types.Source
}{
	{"telegram://", types.SourceTelegram},
	{"t.me://", types.SourceTelegram},
	{"reddit://", types.SourceReddit},
	{"youtube://", types.SourceYoutube},
	{"yt://", types.SourceYoutube},
}

// ClassifyURI maps a document URI to its source category. It is total:
// every input, including the empty string, yields exactly one category,
// defaulting to library when the scheme is unrecognized.
func ClassifyURI(uri string) types.Source {
	lower := strings.ToLower(uri)
	for _, sp := range schemePrefixes {
		if strings.HasPrefix(lower, sp.prefix) {
			return sp.source
		}
	}
	return types.SourceLibrary
}
