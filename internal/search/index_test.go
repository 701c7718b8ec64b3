// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/labsite/internal/logging"
)

func TestDecodeIndex_DropsShowcase(t *testing.T) {
	ix, err := DecodeIndex([]byte(sampleIndex), logging.Discard())
	require.NoError(t, err)

	require.Equal(t, 3, ix.Len())
	for _, r := range ix.Records() {
		assert.False(t, r.IsShowcase(), r.Title)
	}
}

func TestDecodeIndex_SkipsBadElements(t *testing.T) {
	data := `[
	  null,
	  {"title": "Good"},
	  {"title": 42},
	  "not a record",
	  {"title": "Also Good", "date": 1704067200}
	]`
	ix, err := DecodeIndex([]byte(data), logging.Discard())
	require.NoError(t, err)

	recs := ix.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, "Good", recs[0].Title)
	assert.Empty(t, recs[1].Title, "a title of the wrong type is left empty")
	assert.Equal(t, "Also Good", recs[2].Title)
	assert.True(t, recs[2].Date.Numeric)
}

func TestDecodeIndex_BadFieldKeepsRecord(t *testing.T) {
	data := `[
	  {"title": "A", "date": true, "content": "graph"},
	  {"title": "B", "projects": ["x", "y"], "authors": ["Lee", 3], "summary": "graph survey"},
	  {"title": "C", "unknown": {"nested": 1}}
	]`
	ix, err := DecodeIndex([]byte(data), logging.Discard())
	require.NoError(t, err)

	recs := ix.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, "graph", recs[0].Content)
	assert.True(t, recs[0].Date.IsZero())
	assert.Empty(t, recs[1].Projects)
	assert.Nil(t, recs[1].Authors, "a partly bad list is dropped whole")
	assert.Equal(t, "graph survey", recs[1].Summary)
	assert.Equal(t, "C", recs[2].Title)

	hits := Rank(recs, Words("graph"), logging.Discard())
	assert.Len(t, hits, 2)
}

func TestDecodeIndex_NotAnArray(t *testing.T) {
	_, err := DecodeIndex([]byte(`{"title": "x"}`), logging.Discard())
	assert.Error(t, err)

	_, err = DecodeIndex([]byte(`not json`), logging.Discard())
	assert.Error(t, err)
}

func TestDecodeIndex_Empty(t *testing.T) {
	ix, err := DecodeIndex([]byte(`[]`), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, ix.Len())
}

func TestIndex_RecordsIsACopy(t *testing.T) {
	ix := NewIndex(sampleRecords())
	recs := ix.Records()
	recs[0].Title = "changed"

	assert.Equal(t, "Graph Embedding", ix.Records()[0].Title)
}

func TestHTTPSource_Fetch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(sampleIndex))
	}))
	defer srv.Close()

	src := &HTTPSource{Client: srv.Client(), BaseURL: srv.URL + "/"}
	data, err := src.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, IndexPath, gotPath)
	assert.JSONEq(t, sampleIndex, string(data))
}

func TestHTTPSource_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := &HTTPSource{Client: srv.Client(), BaseURL: srv.URL}
	_, err := src.Fetch(context.Background())
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, http.StatusInternalServerError, le.Status)
	assert.Equal(t, "搜索索引加载失败: 500", err.Error())

	html := string(LoadErrorHTML(err))
	assert.Contains(t, html, `class="error-message"`)
	assert.Contains(t, html, "搜索数据加载失败")
	assert.Contains(t, html, "500")
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "searchindex.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleIndex), 0o644))

	data, err := FileSource{Path: path}.Fetch(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, sampleIndex, string(data))

	_, err = FileSource{Path: filepath.Join(dir, "missing.json")}.Fetch(context.Background())
	var le *LoadError
	assert.True(t, errors.As(err, &le))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoader_FetchesOnce(t *testing.T) {
	src := &staticSource{data: []byte(sampleIndex)}
	l := NewLoader(src, logging.Discard())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ix, err := l.Wait(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 3, ix.Len())
		}()
	}
	wg.Wait()

	l.Start(context.Background())
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
}

func TestLoader_NotLoadedUntilDone(t *testing.T) {
	src := newGatedSource(sampleIndex)
	l := NewLoader(src, logging.Discard())

	_, err := l.Index()
	assert.ErrorIs(t, err, ErrNotLoaded, "never started")

	l.Start(context.Background())
	assert.False(t, l.Loaded())
	_, err = l.Index()
	assert.ErrorIs(t, err, ErrNotLoaded, "in flight")

	close(src.release)
	select {
	case <-l.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("load did not finish")
	}

	ix, err := l.Index()
	require.NoError(t, err)
	assert.Equal(t, 3, ix.Len())
}

func TestLoader_FailureIsFinal(t *testing.T) {
	src := &staticSource{err: &LoadError{Status: 404}}
	l := NewLoader(src, logging.Discard())

	_, err := l.Wait(context.Background())
	require.Error(t, err)
	_, err = l.Wait(context.Background())
	require.Error(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
}

func TestLoader_DecodeFailure(t *testing.T) {
	l := NewLoader(&staticSource{data: []byte(`{}`)}, logging.Discard())

	_, err := l.Wait(context.Background())
	var le *LoadError
	assert.True(t, errors.As(err, &le))
}

func TestLoader_WaitHonoursContext(t *testing.T) {
	src := newGatedSource(sampleIndex)
	l := NewLoader(src, logging.Discard())
	l.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := l.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(src.release)
	_, err = l.Wait(context.Background())
	assert.NoError(t, err)
}
