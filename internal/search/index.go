// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/pdiddy/labsite/internal/httputil"
	"github.com/pdiddy/labsite/internal/logging"
	"github.com/pdiddy/labsite/pkg/types"
)

// IndexPath is the fixed location of the generated index on the site.
const IndexPath = "/searchindex.json"

// ErrNotLoaded is returned by Loader.Index before a load has completed.
var ErrNotLoaded = errors.New("search index not loaded")

// Source fetches the raw searchindex.json document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// HTTPSource fetches the index from a published site.
type HTTPSource struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
}

// Fetch issues a single GET for BaseURL + IndexPath.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	url := strings.TrimRight(s.BaseURL, "/") + IndexPath
	data, err := httputil.Get(ctx, s.Client, url, s.UserAgent)
	if err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) {
			return nil, &LoadError{Status: se.Code, Err: err}
		}
		return nil, &LoadError{Err: err}
	}
	return data, nil
}

// FileSource reads the index from a generated site on disk.
type FileSource struct {
	Path string
}

// Fetch reads the file at Path.
func (s FileSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return data, nil
}

// LoadError describes why the index could not be loaded. Status is set for
// HTTP status failures.
type LoadError struct {
	Status int
	Err    error
}

func (e *LoadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("搜索索引加载失败: %d", e.Status)
	}
	return e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Index is the immutable set of searchable records.
type Index struct {
	records []types.SearchRecord
}

// NewIndex builds an index from records, dropping showcase entries.
func NewIndex(records []types.SearchRecord) *Index {
	kept := make([]types.SearchRecord, 0, len(records))
	for _, r := range records {
		if r.IsShowcase() {
			continue
		}
		kept = append(kept, r)
	}
	return &Index{records: kept}
}

// Len returns the number of records.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.records)
}

// Records returns a copy of the indexed records in index order.
func (ix *Index) Records() []types.SearchRecord {
	if ix == nil {
		return nil
	}
	return append([]types.SearchRecord(nil), ix.records...)
}

// DecodeIndex parses a searchindex.json document. Each array element is
// decoded on its own: null elements are ignored and elements that are not
// objects are logged and skipped. Within an object, a field of the wrong
// JSON type is logged and left empty; the rest of the record stays
// searchable.
func DecodeIndex(data []byte, logger *slog.Logger) (*Index, error) {
	logger = logging.OrDiscard(logger)

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing search index: %w", err)
	}

	records := make([]types.SearchRecord, 0, len(raw))
	for i, msg := range raw {
		if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
			continue
		}
		rec, err := decodeRecord(msg, func(field string, err error) {
			logger.Warn("ignoring malformed search record field", "index", i, "field", field, "err", err)
		})
		if err != nil {
			logger.Warn("skipping malformed search record", "index", i, "err", err)
			continue
		}
		records = append(records, rec)
	}
	return NewIndex(records), nil
}

// decodeRecord decodes one index element field by field. Unknown keys are
// ignored; bad reports each known key whose value could not be decoded.
func decodeRecord(msg json.RawMessage, bad func(field string, err error)) (types.SearchRecord, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(msg, &obj); err != nil {
		return types.SearchRecord{}, err
	}
	if obj == nil {
		return types.SearchRecord{}, errors.New("search record is not an object")
	}

	var rec types.SearchRecord
	fields := map[string]func(json.RawMessage) error{
		"title":         into(&rec.Title),
		"content":       into(&rec.Content),
		"summary":       into(&rec.Summary),
		"research":      into(&rec.Research),
		"position":      into(&rec.Position),
		"role":          into(&rec.Role),
		"research_area": into(&rec.ResearchArea),
		"experience":    into(&rec.Experience),
		"projects":      into(&rec.Projects),
		"papers":        into(&rec.Papers),
		"authors":       into(&rec.Authors),
		"type":          into(&rec.Type),
		"date":          into(&rec.Date),
		"venue":         into(&rec.Venue),
		"permalink":     into(&rec.Permalink),
		"section":       into(&rec.Section),
	}
	for key, raw := range obj {
		decode, ok := fields[key]
		if !ok {
			continue
		}
		if err := decode(raw); err != nil {
			bad(key, err)
		}
	}
	return rec, nil
}

// into returns a decoder that sets *dst only when raw decodes cleanly.
func into[T any](dst *T) func(json.RawMessage) error {
	return func(raw json.RawMessage) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// Loader loads the index exactly once. Start may be called any number of
// times; only the first call fetches. Done is closed when the load has
// finished, successfully or not.
type Loader struct {
	source Source
	logger *slog.Logger

	once sync.Once
	done chan struct{}

	// Written once before done is closed.
	index *Index
	err   error
}

// NewLoader returns a loader reading from src.
func NewLoader(src Source, logger *slog.Logger) *Loader {
	return &Loader{
		source: src,
		logger: logging.OrDiscard(logger),
		done:   make(chan struct{}),
	}
}

// Start begins loading in the background if no load has started yet.
// A load that fails is final for this loader.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		go l.run(ctx)
	})
}

func (l *Loader) run(ctx context.Context) {
	defer close(l.done)

	l.logger.Debug("loading search index")
	data, err := l.source.Fetch(ctx)
	if err != nil {
		l.err = err
		l.logger.Error("search index load failed", "err", err)
		return
	}
	ix, err := DecodeIndex(data, l.logger)
	if err != nil {
		l.err = &LoadError{Err: err}
		l.logger.Error("search index load failed", "err", err)
		return
	}
	l.index = ix
	l.logger.Info("search index loaded", "records", ix.Len())
}

// Done returns a channel closed once the load has finished.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Loaded reports whether the load has finished.
func (l *Loader) Loaded() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Index returns the loaded index, the load error, or ErrNotLoaded if the
// load is still in flight or was never started.
func (l *Loader) Index() (*Index, error) {
	if !l.Loaded() {
		return nil, ErrNotLoaded
	}
	return l.index, l.err
}

// Wait starts the load if needed and blocks until it finishes or ctx ends.
func (l *Loader) Wait(ctx context.Context) (*Index, error) {
	l.Start(ctx)
	select {
	case <-l.done:
		return l.index, l.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
