// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/pdiddy/labsite/pkg/types"
)

const (
	titleWeight    = 3
	haystackWeight = 1
)

// Words splits a query into lowercased, whitespace-separated words.
func Words(term string) []string {
	return strings.Fields(strings.ToLower(term))
}

// Score returns the relevance of rec for the lowercased query words: each
// word found in the title earns 3, and each word found anywhere in the
// haystack earns 1 more. Records without a title score 0.
func Score(rec types.SearchRecord, words []string) int {
	if rec.Title == "" {
		return 0
	}
	title := strings.ToLower(rec.Title)
	haystack := rec.Haystack()

	score := 0
	for _, w := range words {
		if strings.Contains(title, w) {
			score += titleWeight
		}
		if strings.Contains(haystack, w) {
			score += haystackWeight
		}
	}
	return score
}

// Rank scores every record against words and returns the matches in
// descending score order. Equal scores keep index order. A record whose
// scoring fails is logged and skipped.
func Rank(records []types.SearchRecord, words []string, logger *slog.Logger) []types.ScoredResult {
	if len(words) == 0 {
		return nil
	}

	var results []types.ScoredResult
	for i, rec := range records {
		score, err := safeScore(rec, words)
		if err != nil {
			logger.Warn("skipping search record", "index", i, "title", rec.Title, "err", err)
			continue
		}
		if score > 0 {
			results = append(results, types.ScoredResult{SearchRecord: rec, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func safeScore(rec types.SearchRecord, words []string) (score int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scoring record: %v", r)
		}
	}()
	return Score(rec, words), nil
}
