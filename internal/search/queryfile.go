// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// QueryFile is the on-disk representation of a site search and its
// results, so a search can be reviewed later without reloading the index.
type QueryFile struct {
	Query   string        `yaml:"query"`
	Source  string        `yaml:"source"`
	Results []SavedResult `yaml:"results"`
	Summary QuerySummary  `yaml:"summary"`
}

// SavedResult is the persisted subset of a hit.
type SavedResult struct {
	Title     string `yaml:"title"`
	Type      string `yaml:"type,omitempty"`
	Permalink string `yaml:"permalink,omitempty"`
	Score     int    `yaml:"score"`
	Snippet   string `yaml:"snippet,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a search and its results to a YAML file. source
// names the index the results came from.
func WriteQueryFile(path, source string, out Output) error {
	qf := QueryFile{
		Query:   out.Term,
		Source:  source,
		Results: make([]SavedResult, len(out.Hits)),
		Summary: QuerySummary{
			Total:     len(out.Hits),
			Timestamp: time.Now(),
		},
	}
	for i, h := range out.Hits {
		qf.Results[i] = SavedResult{
			Title:     h.Title,
			Type:      string(h.Type),
			Permalink: h.Permalink,
			Score:     h.Score,
			Snippet:   Snippet(SummaryText(h.SearchRecord), out.Words),
		}
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
