package search

import (
	"context"
	"html/template"
	"sync"
	"sync/atomic"

	"github.com/pdiddy/labsite/pkg/types"
)

// --- test sources ---

type staticSource struct {
	data  []byte
	err   error
	calls int32
}

func (s *staticSource) Fetch(_ context.Context) ([]byte, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.data, s.err
}

// gatedSource blocks Fetch until release is closed.
type gatedSource struct {
	staticSource
	release chan struct{}
}

func newGatedSource(data string) *gatedSource {
	return &gatedSource{
		staticSource: staticSource{data: []byte(data)},
		release:      make(chan struct{}),
	}
}

func (s *gatedSource) Fetch(ctx context.Context) ([]byte, error) {
	select {
	case <-s.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.staticSource.Fetch(ctx)
}

const sampleIndex = `[
  {"title": "Graph Embedding", "type": "paper", "authors": ["A Lee"], "venue": "NeurIPS", "permalink": "/papers/graph-embedding/"},
  {"title": "Intro", "content": "graph theory basics", "type": "page", "permalink": "/intro/"},
  {"title": "Lab Showcase", "content": "graph demos", "type": "showcase"},
  {"title": "Demo Reel", "content": "graph videos", "section": "showcase"},
  {"title": "张伟", "type": "member", "position": "博士研究生", "research": "图神经网络", "role": "组长", "permalink": "/members/zhang-wei/"}
]`

func sampleRecords() []types.SearchRecord {
	return []types.SearchRecord{
		{Title: "Graph Embedding", Type: types.RecordPaper, Authors: []string{"A Lee"}, Venue: "NeurIPS", Permalink: "/papers/graph-embedding/"},
		{Title: "Intro", Content: "graph theory basics", Type: types.RecordPage, Permalink: "/intro/"},
	}
}

// --- recording view ---

type viewState struct {
	results        template.HTML
	resultsHistory []template.HTML
	resultsVisible bool
	stats          template.HTML
	noResults      bool
	input          string
	urls           []string
}

type recordingView struct {
	mu sync.Mutex
	st viewState
}

func (v *recordingView) SetResults(html template.HTML) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.st.results = html
	v.st.resultsHistory = append(v.st.resultsHistory, html)
}

func (v *recordingView) SetResultsVisible(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.st.resultsVisible = visible
}

func (v *recordingView) SetStats(html template.HTML) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.st.stats = html
}

func (v *recordingView) SetNoResults(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.st.noResults = visible
}

func (v *recordingView) SetInput(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.st.input = term
}

func (v *recordingView) PushURL(u string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.st.urls = append(v.st.urls, u)
}

func (v *recordingView) snapshot() viewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	st := v.st
	st.resultsHistory = append([]template.HTML(nil), v.st.resultsHistory...)
	st.urls = append([]string(nil), v.st.urls...)
	return st
}
