// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package searchapi

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/spacefrontiers-mcp/pkg/types"
)

// QueryFile is the on-disk representation of a search and its result
// documents. The operator can save a CLI search to a file and inspect
// or reload it later without re-querying the API.
type QueryFile struct {
	Request   types.SearchRequest    `yaml:"request"`
	Summary   QuerySummary           `yaml:"summary"`
	Documents []types.SearchDocument `yaml:"documents"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Endpoint  string    `yaml:"endpoint"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a search request and its response to a YAML file.
func WriteQueryFile(path string, endpoint string, req *types.SearchRequest, resp *types.SearchResponse) error {
	qf := QueryFile{
		Request: *req,
		Summary: QuerySummary{
			Total:     len(resp.SearchDocuments),
			Endpoint:  endpoint,
			Timestamp: time.Now(),
		},
		Documents: resp.SearchDocuments,
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
