// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/spacefrontiers-mcp/internal/auth"
	"github.com/pdiddy/spacefrontiers-mcp/internal/filters"
	"github.com/pdiddy/spacefrontiers-mcp/internal/searchapi"
	"github.com/pdiddy/spacefrontiers-mcp/internal/shape"
	"github.com/pdiddy/spacefrontiers-mcp/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Issue a one-off search against the Space Frontiers API",
	Long: `Search sends a single query to the configured endpoint and prints the
results. It exercises the same filter construction and response shaping
as the server tools, which makes it useful for debugging filters,
credentials and endpoint configuration without an agent attached.

Results can be saved to a YAML query file with --save and reloaded later.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "free-text search query")
	searchCmd.Flags().StringSlice("sources", nil, "scholarly sources to filter by (wiki, pubmed, standard, arxiv, biorxiv, medrxiv)")
	searchCmd.Flags().StringSlice("categories", []string{"library"}, "source categories to search (library, telegram, reddit)")
	searchCmd.Flags().String("from", "", "date range start (YYYY-MM-DD)")
	searchCmd.Flags().String("to", "", "date range end (YYYY-MM-DD)")
	searchCmd.Flags().Int("limit", 20, "maximum number of results to return")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save", "", "write the request and results to a YAML query file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	if query == "" {
		return fmt.Errorf("provide a search query as an argument or with --query")
	}

	sources, _ := cmd.Flags().GetStringSlice("sources")
	categories, _ := cmd.Flags().GetStringSlice("categories")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	limit, _ := cmd.Flags().GetInt("limit")

	start, err := filters.ParseDate(from)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	end, err := filters.ParseDate(to)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	now := time.Now()
	sourcesFilters := make(map[types.Source]types.FilterMap, len(categories))
	for _, c := range categories {
		var f filters.Filters
		if types.Source(c) == types.SourceLibrary {
			f.ApplySources(sources)
		}
		f.ApplyDateRange(start, end, now)
		sourcesFilters[types.Source(c)] = f.Wire()
	}

	req := &types.SearchRequest{
		Query:          query,
		SourcesFilters: sourcesFilters,
		Limit:          limit,
	}

	cfg := clientConfig()
	client := searchapi.New(cfg)
	resp, err := client.Search(context.Background(), req,
		auth.Credentials{APIKey: cfg.APIKey},
		searchapi.RequestContext{RequestSource: searchapi.RequestSourceCLI})
	if err != nil {
		return err
	}
	resp = shape.FormatResponse(resp)

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := searchapi.WriteQueryFile(savePath, cfg.BaseURL, req, resp); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved query file: %s\n", savePath)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(resp, jsonOutput)
}

func formatSearchOutput(resp *types.SearchResponse, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if len(resp.SearchDocuments) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-8s  %-50s  %-19s  %s\n",
		"Rank", "Source", "Title", "Issued", "URI")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 120))

	for i, d := range resp.SearchDocuments {
		title := docString(d.Document, "title")
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-8s  %-50s  %-19s  %s\n",
			i+1, d.Source, title, docString(d.Document, "issued_at"), docString(d.Document, "uri"))
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(resp.SearchDocuments))
	return nil
}

// docString reads a document field as a string, empty when absent or
// of another type.
func docString(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}
