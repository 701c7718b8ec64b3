// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"sync"
)

// View is the page surface a Session drives: the results container, the
// stats line, the no-results panel, the search input and the address bar.
type View interface {
	SetResults(html template.HTML)
	SetResultsVisible(visible bool)
	SetStats(html template.HTML)
	SetNoResults(visible bool)
	SetInput(term string)
	PushURL(u string)
}

// Session is one view of the search page. Queries that arrive before the
// index has loaded are queued and run in arrival order as soon as the load
// completes.
type Session struct {
	engine *Engine
	view   View
	path   string

	mu      sync.Mutex
	ready   bool
	pending []string
	drained chan struct{}
	opened  bool
}

// NewSession binds a page at path (e.g. "/search/") to engine and view.
func NewSession(engine *Engine, view View, path string) *Session {
	return &Session{
		engine:  engine,
		view:    view,
		path:    path,
		drained: make(chan struct{}),
	}
}

// Open handles page load: it starts the index load and, once loaded, runs
// the query carried by the q parameter of rawURL followed by any queued
// queries. Calling Open more than once has no effect.
func (s *Session) Open(ctx context.Context, rawURL string) {
	s.mu.Lock()
	if s.opened {
		s.mu.Unlock()
		return
	}
	s.opened = true
	s.mu.Unlock()

	initial := queryParam(rawURL)
	s.engine.Start(ctx)

	go func() {
		select {
		case <-s.engine.loader.Done():
		case <-ctx.Done():
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if _, err := s.engine.loader.Index(); err != nil {
			s.view.SetResults(LoadErrorHTML(err))
		} else if strings.TrimSpace(initial) != "" {
			s.view.SetInput(initial)
			s.execute(initial)
		}
		for _, term := range s.pending {
			s.execute(term)
		}
		s.pending = nil
		s.ready = true
		close(s.drained)
	}()
}

// Wait blocks until the load has finished and every queued query has run.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit handles a form submission. An empty term shows the prompt;
// otherwise the term is pushed onto the address bar and searched.
func (s *Session) Submit(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		s.prompt()
		return
	}
	s.view.PushURL(s.path + "?q=" + encodeQuery(term))
	s.search(term)
}

// Navigate handles back/forward navigation to rawURL.
func (s *Session) Navigate(rawURL string) {
	q := queryParam(rawURL)
	if strings.TrimSpace(q) == "" {
		s.prompt()
		return
	}
	s.view.SetInput(q)
	s.search(q)
}

func (s *Session) prompt() {
	s.view.SetResults(PromptHTML)
	s.view.SetStats("")
	s.view.SetNoResults(false)
}

func (s *Session) search(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.SetResults(SearchingHTML(term))
	if !s.ready {
		s.pending = append(s.pending, term)
		return
	}
	s.execute(term)
}

// execute runs term and updates the view. Callers hold s.mu.
func (s *Session) execute(term string) {
	ix, err := s.engine.loader.Index()
	if err != nil {
		s.view.SetResults(LoadErrorHTML(err))
		return
	}

	out, err := s.query(ix, term)
	if err != nil {
		s.view.SetResults(SearchErrorHTML(err))
		return
	}

	s.view.SetStats(StatsHTML(len(out.Hits)))
	if len(out.Hits) == 0 {
		s.view.SetResultsVisible(false)
		s.view.SetNoResults(true)
		return
	}
	s.view.SetNoResults(false)
	s.view.SetResultsVisible(true)
	s.view.SetResults(s.engine.Render(out))
}

func (s *Session) query(ix *Index, term string) (out Output, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%v", p)
		}
	}()
	return s.engine.Query(ix, term), nil
}

func queryParam(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("q")
}

// encodeQuery percent-encodes term the way browsers encode a URI component.
func encodeQuery(term string) string {
	return strings.ReplaceAll(url.QueryEscape(term), "+", "%20")
}
