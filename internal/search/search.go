// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search implements the lab site's full-text search over the
// generated searchindex.json: loading the index once, relevance scoring,
// snippet extraction, highlighting and result rendering.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/pdiddy/labsite/internal/logging"
	"github.com/pdiddy/labsite/pkg/types"
)

// Options configures an Engine.
type Options struct {
	// MaxResults truncates ranked results (0 = unlimited).
	MaxResults int

	// CompatHighlight selects HighlightSequential instead of Highlight.
	CompatHighlight bool

	// Location is used to display numeric record dates (nil = time.Local).
	Location *time.Location

	// Logger receives per-record warnings (nil = discard).
	Logger *slog.Logger
}

// OptionsFromConfig maps the search section of the site config to Options.
func OptionsFromConfig(cfg types.SearchConfig, logger *slog.Logger) (Options, error) {
	opts := Options{
		MaxResults:      cfg.MaxResults,
		CompatHighlight: cfg.CompatHighlight,
		Logger:          logger,
	}
	if cfg.TimeZone != "" {
		loc, err := time.LoadLocation(cfg.TimeZone)
		if err != nil {
			return opts, fmt.Errorf("loading time zone %q: %w", cfg.TimeZone, err)
		}
		opts.Location = loc
	}
	return opts, nil
}

// Engine owns one index loader and answers queries against it.
type Engine struct {
	loader *Loader
	opts   Options
	logger *slog.Logger
}

// New returns an engine whose index is read from src on first use.
func New(src Source, opts Options) *Engine {
	logger := logging.OrDiscard(opts.Logger)
	return &Engine{
		loader: NewLoader(src, logger),
		opts:   opts,
		logger: logger,
	}
}

// Loader exposes the engine's index loader.
func (e *Engine) Loader() *Loader { return e.loader }

// Start begins loading the index in the background.
func (e *Engine) Start(ctx context.Context) { e.loader.Start(ctx) }

// Output holds the results of one query.
type Output struct {
	Term  string   `json:"term"`
	Words []string `json:"words"`
	Hits  []Hit    `json:"hits"`
}

// Results returns the scored results without presentation fields.
func (o Output) Results() []types.ScoredResult {
	out := make([]types.ScoredResult, len(o.Hits))
	for i, h := range o.Hits {
		out[i] = h.ScoredResult
	}
	return out
}

// Search waits for the index and runs term against it.
func (e *Engine) Search(ctx context.Context, term string) (Output, error) {
	ix, err := e.loader.Wait(ctx)
	if err != nil {
		return Output{Term: term}, err
	}
	return e.Query(ix, term), nil
}

// Query runs term against ix: rank, then prepare each hit for display. A
// hit that cannot be prepared is logged and dropped.
func (e *Engine) Query(ix *Index, term string) Output {
	words := Words(term)
	out := Output{Term: term, Words: words}

	ranked := Rank(ix.Records(), words, e.logger)
	if e.opts.MaxResults > 0 && len(ranked) > e.opts.MaxResults {
		ranked = ranked[:e.opts.MaxResults]
	}

	out.Hits = make([]Hit, 0, len(ranked))
	for _, r := range ranked {
		h, err := e.prepare(r, words)
		if err != nil {
			e.logger.Warn("skipping search result", "title", r.Title, "err", err)
			continue
		}
		out.Hits = append(out.Hits, h)
	}
	return out
}

func (e *Engine) prepare(r types.ScoredResult, words []string) (h Hit, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("preparing result: %v", p)
		}
	}()
	return Hit{
		ScoredResult: r,
		TypeLabel:    TypeLabel(r.Type),
		TitleHTML:    e.highlight(r.Title, words),
		Meta:         MetaLine(r.SearchRecord, e.opts.Location),
		SnippetHTML:  e.highlight(Snippet(SummaryText(r.SearchRecord), words), words),
	}, nil
}

func (e *Engine) highlight(text string, words []string) template.HTML {
	if e.opts.CompatHighlight {
		return HighlightSequential(text, words)
	}
	return Highlight(text, words)
}

// Render returns the result markup for out.
func (e *Engine) Render(out Output) template.HTML {
	return RenderResults(out.Hits, e.logger)
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	if len(out.Hits) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-8s  %-50s  %-5s  %s\n",
		"Rank", "Type", "Title", "Score", "Link")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, h := range out.Hits {
		fmt.Fprintf(w, "%-4d  %-8s  %-50s  %-5d  %s\n",
			i+1, truncate(h.TypeLabel, 8), truncate(h.Title, 50), h.Score, h.Permalink)
	}

	fmt.Fprintf(w, "\n找到 %d 条搜索结果\n", len(out.Hits))
}

// FormatJSON writes hits as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	hits := out.Hits
	if hits == nil {
		hits = []Hit{}
	}
	return enc.Encode(hits)
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
