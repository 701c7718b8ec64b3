package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/labsite/internal/papers"
	"github.com/pdiddy/labsite/internal/search"
	"github.com/pdiddy/labsite/internal/tabs"
	"github.com/pdiddy/labsite/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "labsite/0.1"
)

// addSourceFlags registers the flags that select the search index.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("base-url", "", "published site root; the index is fetched from <base-url>/searchindex.json")
	cmd.Flags().String("index-file", "", "local searchindex.json (default public/searchindex.json)")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
}

// searchConfig returns siteCfg.Search with any explicitly set flags applied.
func searchConfig(cmd *cobra.Command) types.SearchConfig {
	cfg := siteCfg.Search
	overrideString(cmd, "base-url", &cfg.BaseURL)
	overrideString(cmd, "index-file", &cfg.IndexFile)
	if cmd.Flags().Changed("index-file") && !cmd.Flags().Changed("base-url") {
		cfg.BaseURL = ""
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	if cmd.Flags().Lookup("max-results") != nil && cmd.Flags().Changed("max-results") {
		cfg.MaxResults, _ = cmd.Flags().GetInt("max-results")
	}
	if cmd.Flags().Lookup("compat-highlight") != nil && cmd.Flags().Changed("compat-highlight") {
		cfg.CompatHighlight, _ = cmd.Flags().GetBool("compat-highlight")
	}
	return cfg
}

func overrideString(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return
	}
	*dst, _ = cmd.Flags().GetString(name)
}

// indexSource picks the index source: a base URL wins over a local file.
// The returned name identifies the source in saved query files.
func indexSource(cfg types.SearchConfig) (search.Source, string, error) {
	switch {
	case cfg.BaseURL != "":
		src := &search.HTTPSource{
			Client:    &http.Client{Timeout: cfg.Timeout},
			BaseURL:   cfg.BaseURL,
			UserAgent: cfg.UserAgent,
		}
		return src, strings.TrimRight(cfg.BaseURL, "/") + search.IndexPath, nil
	case cfg.IndexFile != "":
		return search.FileSource{Path: cfg.IndexFile}, cfg.IndexFile, nil
	}
	return nil, "", errors.New("no search index configured: set --base-url or --index-file")
}

// loadPapers reads the paper list, warning and continuing with an empty
// list when the file is missing.
func loadPapers(path string) ([]types.PaperEntry, error) {
	entries, err := papers.LoadEntries(path)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: paper list %s not found\n", path)
		return nil, nil
	}
	return entries, err
}

// loadTabs reads the research tabs, warning and continuing with no tabs
// when the file is missing.
func loadTabs(path string) ([]types.ResearchTab, error) {
	list, err := tabs.LoadTabs(path)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: research tabs %s not found\n", path)
		return nil, nil
	}
	return list, err
}
