// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(src Source) (*Session, *recordingView) {
	view := &recordingView{}
	engine := New(src, Options{Location: time.UTC})
	return NewSession(engine, view, "/search/"), view
}

func waitDrained(t *testing.T, s *Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))
}

func TestSession_SubmitEmptyShowsPrompt(t *testing.T) {
	s, view := newTestSession(&staticSource{data: []byte(sampleIndex)})
	s.Open(context.Background(), "/search/")
	waitDrained(t, s)

	s.Submit("   ")

	st := view.snapshot()
	assert.Equal(t, PromptHTML, st.results)
	assert.Empty(t, st.stats)
	assert.False(t, st.noResults)
	assert.Empty(t, st.urls, "empty submit does not touch the address bar")
}

func TestSession_SubmitPushesEncodedURL(t *testing.T) {
	s, view := newTestSession(&staticSource{data: []byte(sampleIndex)})
	s.Open(context.Background(), "/search/")
	waitDrained(t, s)

	s.Submit("  graph embedding ")

	st := view.snapshot()
	assert.Equal(t, []string{"/search/?q=graph%20embedding"}, st.urls)
	assert.Equal(t, StatsHTML(2), st.stats)
	assert.True(t, st.resultsVisible)
	assert.False(t, st.noResults)
	assert.Equal(t, 2, strings.Count(string(st.results), `class="search-result-item"`))
}

func TestSession_QueuesUntilLoaded(t *testing.T) {
	src := newGatedSource(sampleIndex)
	s, view := newTestSession(src)
	s.Open(context.Background(), "/search/")

	s.Submit("graph")

	st := view.snapshot()
	assert.Equal(t, SearchingHTML("graph"), st.results)
	assert.Empty(t, st.stats, "nothing runs before the index loads")

	close(src.release)
	waitDrained(t, s)

	st = view.snapshot()
	assert.Equal(t, StatsHTML(2), st.stats)
	assert.True(t, st.resultsVisible)
	assert.Contains(t, string(st.results), hl+"Graph</span> Embedding")
}

func TestSession_QueuedQueriesRunInOrder(t *testing.T) {
	src := newGatedSource(sampleIndex)
	s, view := newTestSession(src)
	s.Open(context.Background(), "/search/")

	s.Submit("graph")
	s.Submit("zzz")

	close(src.release)
	waitDrained(t, s)

	st := view.snapshot()
	require.Len(t, st.resultsHistory, 3)
	assert.Equal(t, SearchingHTML("graph"), st.resultsHistory[0])
	assert.Equal(t, SearchingHTML("zzz"), st.resultsHistory[1])
	assert.Contains(t, string(st.resultsHistory[2]), "search-result-item")

	// The last query wins the stats line.
	assert.Equal(t, StatsHTML(0), st.stats)
	assert.True(t, st.noResults)
	assert.False(t, st.resultsVisible)
	assert.Equal(t, []string{"/search/?q=graph", "/search/?q=zzz"}, st.urls)
}

func TestSession_OpenRunsURLQuery(t *testing.T) {
	s, view := newTestSession(&staticSource{data: []byte(sampleIndex)})
	s.Open(context.Background(), "/search/?q=graph%20embedding")
	waitDrained(t, s)

	st := view.snapshot()
	assert.Equal(t, "graph embedding", st.input)
	assert.Equal(t, StatsHTML(2), st.stats)
	assert.Empty(t, st.urls, "page load does not push history")
}

func TestSession_OpenIsIdempotent(t *testing.T) {
	src := &staticSource{data: []byte(sampleIndex)}
	s, view := newTestSession(src)
	s.Open(context.Background(), "/search/?q=graph")
	waitDrained(t, s)
	s.Open(context.Background(), "/search/?q=graph")

	assert.Len(t, view.snapshot().resultsHistory, 1)
	assert.Equal(t, int32(1), src.calls)
}

func TestSession_LoadFailure(t *testing.T) {
	src := &staticSource{err: &LoadError{Status: 500}}
	s, view := newTestSession(src)
	s.Open(context.Background(), "/search/?q=graph")
	waitDrained(t, s)

	st := view.snapshot()
	assert.Contains(t, string(st.results), "搜索数据加载失败: 搜索索引加载失败: 500")
	assert.Empty(t, st.stats)

	s.Submit("graph")
	assert.Contains(t, string(view.snapshot().results), "搜索数据加载失败")
}

func TestSession_QueuedQueryAfterLoadFailure(t *testing.T) {
	src := newGatedSource("")
	src.err = &LoadError{Status: 404}
	s, view := newTestSession(src)
	s.Open(context.Background(), "/search/")

	s.Submit("graph")
	close(src.release)
	waitDrained(t, s)

	st := view.snapshot()
	assert.Contains(t, string(st.results), "搜索索引加载失败: 404")
	assert.False(t, st.noResults)
}

func TestSession_ZeroResults(t *testing.T) {
	s, view := newTestSession(&staticSource{data: []byte(sampleIndex)})
	s.Open(context.Background(), "/search/")
	waitDrained(t, s)

	s.Submit("quantum")

	st := view.snapshot()
	assert.Equal(t, "<p>找到 0 条搜索结果</p>", string(st.stats))
	assert.True(t, st.noResults)
	assert.False(t, st.resultsVisible)
}

func TestSession_Navigate(t *testing.T) {
	s, view := newTestSession(&staticSource{data: []byte(sampleIndex)})
	s.Open(context.Background(), "/search/")
	waitDrained(t, s)

	s.Navigate("/search/?q=intro")
	st := view.snapshot()
	assert.Equal(t, "intro", st.input)
	assert.Equal(t, StatsHTML(1), st.stats)
	assert.Empty(t, st.urls, "navigation does not push history")

	s.Navigate("/search/")
	st = view.snapshot()
	assert.Equal(t, PromptHTML, st.results)
	assert.Empty(t, st.stats)
	assert.False(t, st.noResults)
}

func TestEncodeQuery(t *testing.T) {
	assert.Equal(t, "graph%20embedding", encodeQuery("graph embedding"))
	assert.Equal(t, "a%26b%3Dc", encodeQuery("a&b=c"))
	assert.Equal(t, "%E5%9B%BE%20%E5%AD%A6%E4%B9%A0", encodeQuery("图 学习"))
}
