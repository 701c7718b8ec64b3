package main

import (
	"context"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/labsite/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Search the site index",
	Long: `Search loads the generated searchindex.json, from a local build or a
published site, and ranks records by how many query words appear in their
title and searchable fields. Title matches weigh more.

Output is a table by default; --format selects json, csl (paper hits as a
CSL-YAML bibliography) or html (the markup the search page shows).`,
	RunE: runSearch,
}

func init() {
	addSourceFlags(searchCmd)
	searchCmd.Flags().String("format", "table", "output format: table, json, csl or html")
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (0 = all)")
	searchCmd.Flags().Bool("compat-highlight", false, "highlight words one after another like the original site script")
	searchCmd.Flags().String("save", "", "write the query and its results to a YAML file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	term := strings.Join(args, " ")
	format, _ := cmd.Flags().GetString("format")
	savePath, _ := cmd.Flags().GetString("save")

	cfg := searchConfig(cmd)
	src, name, err := indexSource(cfg)
	if err != nil {
		return err
	}
	opts, err := search.OptionsFromConfig(cfg, logger)
	if err != nil {
		return err
	}
	engine := search.New(src, opts)
	ctx := cmd.Context()

	if format == "html" {
		return printHTML(ctx, engine, term)
	}

	out, err := engine.Search(ctx, term)
	if err != nil {
		return fmt.Errorf("searching %s: %w", name, err)
	}

	if savePath != "" {
		if err := search.WriteQueryFile(savePath, name, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %d results to %s\n", len(out.Hits), savePath)
	}

	switch format {
	case "json":
		return search.FormatJSON(out, os.Stdout)
	case "csl":
		return search.FormatCSL(out, os.Stdout)
	case "table", "":
		search.FormatTable(out, os.Stdout)
		return nil
	}
	return fmt.Errorf("unknown format %q (want table, json, csl or html)", format)
}

// printHTML runs term through a search page session and prints the stats
// line and result markup it produces.
func printHTML(ctx context.Context, engine *search.Engine, term string) error {
	view := &htmlView{}
	sess := search.NewSession(engine, view, "/search/")
	sess.Open(ctx, "/search/?"+url.Values{"q": {term}}.Encode())
	if err := sess.Wait(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(term) == "" {
		sess.Submit("")
	}
	if view.stats != "" {
		fmt.Println(view.stats)
	}
	if view.visible || view.stats == "" {
		fmt.Println(view.results)
	}
	if view.noResults {
		fmt.Println(`<div class="no-results">没有找到相关结果</div>`)
	}
	if _, err := engine.Loader().Index(); err != nil {
		return fmt.Errorf("loading search index: %w", err)
	}
	return nil
}

// htmlView keeps the last state a Session wrote.
type htmlView struct {
	results   template.HTML
	stats     template.HTML
	visible   bool
	noResults bool
}

func (v *htmlView) SetResults(h template.HTML) { v.results = h }
func (v *htmlView) SetResultsVisible(b bool)   { v.visible = b }
func (v *htmlView) SetStats(h template.HTML)   { v.stats = h }
func (v *htmlView) SetNoResults(b bool)        { v.noResults = b }
func (v *htmlView) SetInput(string)            {}
func (v *htmlView) PushURL(string)             {}
