// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// promptTemplate is a static instructional text keyed by name. Prompts
// carry no parameters and no runtime logic.
type promptTemplate struct {
	name        string
	description string
	text        string
}

var promptTemplates = []promptTemplate{
	{
		name:        "research_workflow",
		description: "Recommended multi-step tool-calling workflow for research agents.",
		text: `You are a research agent with access to Space Frontiers search tools.
Follow this workflow when answering a research question:

1. If the question contains an identifier (DOI, ISBN, PubMed ID, ArXiv ID
   or URL), call resolve_id first to obtain the canonical document URI and
   its source category.
2. For broad questions, start with the unified search tool to see which
   sources carry relevant material, then narrow down with a source-specific
   tool (research_tool, telegram_search, reddit_search).
3. For "latest" or "recent" requests without a topical query, use the
   recency tools (get_recent_scholar_publications,
   get_recent_posts_from_telegram, get_recent_posts_from_reddit) instead of
   a query-based search.
4. To read a specific document, call get_document with the document URI and
   a query describing what you want from it; only matching passages are
   returned. When you need bibliographic fields alone, call
   get_document_metadata instead, which is faster.
5. Restrict date ranges with start_date/end_date when the question implies
   a period. Dates are ISO calendar dates (YYYY-MM-DD).

Cite documents by their URI and issued_at date when presenting findings.`,
	},
	{
		name:        "analyse_telegram_channel_content",
		description: "Analyse a set of Telegram messages from one channel and derive the channel's main traits.",
		text: `You are provided with a list of Telegram messages from a particular
channel (retrieve them with telegram_search or
get_recent_posts_from_telegram filtered to the channel). Analyse all
messages and describe the main properties of the channel using this
template:

**Theme:** one of News, Entertainment, Politics, Science, Lifestyle, Other
**Style of presentation:** formal or informal
**Tone:** e.g. neutral, ironic, humorous, aggressive
**Key topics:** dash-separated list of recurring topics
**Commercial activity:** yes or no
**About the channel:** two or three sentences summarizing what the channel publishes
**Political views:** the closest ideology, or None
**Political views reasoning:** quote specific messages that support the
assessment and explain the inference step by step; if the messages carry no
political signal, state that explicitly.`,
	},
}

func (s *Server) registerPrompts() {
	for _, p := range promptTemplates {
		s.mcp.AddPrompt(&mcp.Prompt{
			Name:        p.name,
			Description: p.description,
		}, promptHandler(p))
	}
}

func promptHandler(p promptTemplate) mcp.PromptHandler {
	return func(context.Context, *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Description: p.description,
			Messages: []*mcp.PromptMessage{
				{Role: "user", Content: &mcp.TextContent{Text: p.text}},
			},
		}, nil
	}
}
