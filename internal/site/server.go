// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package site serves the lab website's interactive pages: full-text
// search, the filterable paper list and the research tabs, plus a JSON
// search API.
package site

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/pdiddy/labsite/internal/logging"
	"github.com/pdiddy/labsite/internal/papers"
	"github.com/pdiddy/labsite/internal/search"
	"github.com/pdiddy/labsite/internal/tabs"
	"github.com/pdiddy/labsite/pkg/types"
)

const (
	defaultAddr      = ":8080"
	defaultCacheSize = 256
	shutdownTimeout  = 10 * time.Second
)

// Config wires a Server.
type Config struct {
	Serve  types.ServeConfig
	Search search.Options

	// NewSource returns the index source; it is called again on every
	// reload.
	NewSource func() search.Source

	// IndexFile is watched for changes when Serve.Watch is set.
	IndexFile string

	Papers []types.PaperEntry
	Tabs   []types.ResearchTab
	Logger *slog.Logger
}

// Server holds the current search engine and the static page data.
type Server struct {
	cfg       Config
	logger    *slog.Logger
	current   atomic.Pointer[generation]
	cacheSize int
	limiter   *rate.Limiter
}

// generation pairs an engine with the cache of results it produced.
// Handlers write only into the cache of the generation they queried.
type generation struct {
	engine *search.Engine
	cache  *lru.Cache[string, []byte]
}

func (s *Server) newGeneration(e *search.Engine) (*generation, error) {
	cache, err := lru.New[string, []byte](s.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating result cache: %w", err)
	}
	return &generation{engine: e, cache: cache}, nil
}

// New builds a server. The index is not loaded until Start or the first
// search request.
func New(cfg Config) (*Server, error) {
	if cfg.NewSource == nil {
		return nil, errors.New("site: no index source configured")
	}
	size := cfg.Serve.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}

	s := &Server{
		cfg:       cfg,
		logger:    logging.OrDiscard(cfg.Logger),
		cacheSize: size,
		limiter:   newLimiter(cfg.Serve.RateLimit, cfg.Serve.RateBurst),
	}
	s.cfg.Search.Logger = s.logger
	gen, err := s.newGeneration(search.New(cfg.NewSource(), s.cfg.Search))
	if err != nil {
		return nil, err
	}
	s.current.Store(gen)
	return s, nil
}

// Engine returns the engine currently answering queries.
func (s *Server) Engine() *search.Engine { return s.current.Load().engine }

// Start begins loading the index in the background.
func (s *Server) Start(ctx context.Context) { s.Engine().Start(ctx) }

// Reload loads a fresh index and swaps it in. On failure the current
// engine stays in place.
func (s *Server) Reload(ctx context.Context) error {
	next := search.New(s.cfg.NewSource(), s.cfg.Search)
	ix, err := next.Loader().Wait(ctx)
	if err != nil {
		return fmt.Errorf("reloading search index: %w", err)
	}
	gen, err := s.newGeneration(next)
	if err != nil {
		return err
	}
	s.current.Store(gen)
	s.logger.Info("search index reloaded", "records", ix.Len())
	return nil
}

// Handler returns the full route table wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	api := Chain(http.HandlerFunc(s.handleAPISearch),
		CORS(s.cfg.Serve.CORSOrigin),
		RateLimit(s.limiter),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("GET /search/", s.handleSearch)
	mux.Handle("GET /api/search", api)
	if s.cfg.Serve.CORSOrigin != "" {
		mux.Handle("OPTIONS /api/search", api)
	}
	mux.HandleFunc("GET /papers", s.handlePapers)
	mux.HandleFunc("GET /research", s.handleResearch)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return Chain(mux,
		Recover(s.logger),
		Logger(s.logger),
		OTel("labsite"),
	)
}

// Run serves until ctx is cancelled, then shuts down gracefully. When
// watching is enabled the index file is reloaded on change.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Serve.Addr
	if addr == "" {
		addr = defaultAddr
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.Start(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening on %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
	if s.cfg.Serve.Watch && s.cfg.IndexFile != "" {
		g.Go(func() error {
			return s.watchIndex(gctx, s.cfg.IndexFile)
		})
	}
	return g.Wait()
}

// --- search page ---

// pageView collects what a search Session writes to the page.
type pageView struct {
	Results        template.HTML
	ResultsVisible bool
	Stats          template.HTML
	NoResults      bool
	Input          string
}

func (v *pageView) SetResults(html template.HTML) { v.Results = html }
func (v *pageView) SetResultsVisible(b bool)      { v.ResultsVisible = b }
func (v *pageView) SetStats(html template.HTML)   { v.Stats = html }
func (v *pageView) SetNoResults(b bool)           { v.NoResults = b }
func (v *pageView) SetInput(term string)          { v.Input = term }
func (v *pageView) PushURL(string)                {}

type searchPage struct {
	Path string
	*pageView
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	view := &pageView{ResultsVisible: true}
	sess := search.NewSession(s.Engine(), view, r.URL.Path)
	sess.Open(r.Context(), r.URL.RequestURI())
	if err := sess.Wait(r.Context()); err != nil {
		return
	}
	s.render(w, "search", searchPage{Path: r.URL.Path, pageView: view})
}

// --- search API ---

func (s *Server) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	key := strings.Join(search.Words(q), " ")

	gen := s.current.Load()
	if body, ok := gen.cache.Get(key); ok {
		w.Header().Set("X-Cache", "hit")
		writeJSONBytes(w, http.StatusOK, body)
		return
	}

	out, err := gen.engine.Search(r.Context(), q)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		writeJSONError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := search.FormatJSON(out, &buf); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	gen.cache.Add(key, buf.Bytes())
	w.Header().Set("X-Cache", "miss")
	writeJSONBytes(w, http.StatusOK, buf.Bytes())
}

// --- papers ---

type paperItem struct {
	types.PaperEntry
	Visible bool
}

type papersPage struct {
	Criteria  papers.Criteria
	Types     []string
	Years     []string
	Items     []paperItem
	Count     int
	NoResults bool
	Message   string
}

func (s *Server) handlePapers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c := papers.Criteria{Term: q.Get("q"), Type: q.Get("type"), Year: q.Get("year")}
	res := papers.Filter(s.cfg.Papers, c)

	page := papersPage{
		Criteria:  c,
		Types:     papers.Types(s.cfg.Papers),
		Years:     papers.Years(s.cfg.Papers),
		Count:     res.Count(),
		NoResults: res.NoResults,
		Message:   res.Message(),
	}
	for i, e := range s.cfg.Papers {
		page.Items = append(page.Items, paperItem{PaperEntry: e, Visible: res.Visible[i]})
	}
	s.render(w, "papers", page)
}

// --- research ---

type tabItem struct {
	types.ResearchTab
	Active bool
}

type researchPage struct {
	Tabs     []tabItem
	ScrollTo string
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	set := tabs.FromTabs(s.cfg.Tabs)
	var page researchPage
	if tr, ok := set.FromFragment(r.URL.Query().Get("tab")); ok {
		page.ScrollTo = tr.ScrollTo
	}
	for _, t := range s.cfg.Tabs {
		page.Tabs = append(page.Tabs, tabItem{ResearchTab: t, Active: set.IsActive(t.ID)})
	}
	s.render(w, "research", page)
}

// --- health ---

type healthResponse struct {
	Status  string `json:"status"`
	Loaded  bool   `json:"index_loaded"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "ok"}
	loader := s.Engine().Loader()
	if loader.Loaded() {
		resp.Loaded = true
		ix, err := loader.Index()
		if err != nil {
			resp.Status = "degraded"
			resp.Error = err.Error()
		} else {
			resp.Records = ix.Len()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- helpers ---

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("rendering page", "page", name, "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONBytes(w, status, data)
}

func writeJSONBytes(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
