//go:build mage

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/pdiddy/labsite/internal/papers"
	"github.com/pdiddy/labsite/internal/search"
	"github.com/pdiddy/labsite/internal/tabs"
)

const indexFile = "public/searchindex.json"

// Check validates the search index and the site data files, printing a
// record count per type.
func Check() error {
	data, err := os.ReadFile(indexFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", indexFile, err)
	}
	ix, err := search.DecodeIndex(data, nil)
	if err != nil {
		return err
	}
	counts := map[string]int{}
	for _, r := range ix.Records() {
		counts[string(r.Type)]++
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	fmt.Printf("[check] %s: %d records\n", indexFile, ix.Len())
	for _, k := range kinds {
		name := k
		if name == "" {
			name = "(untyped)"
		}
		fmt.Printf("  %-10s %d\n", name, counts[k])
	}

	entries, err := papers.LoadEntries("data/papers.yaml")
	if err != nil {
		return err
	}
	fmt.Printf("[check] data/papers.yaml: %d papers, years %v\n", len(entries), papers.Years(entries))

	ts, err := tabs.LoadTabs("data/research.yaml")
	if err != nil {
		return err
	}
	fmt.Printf("[check] data/research.yaml: %d tabs\n", len(ts))
	return nil
}
