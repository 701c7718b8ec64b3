// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package papers filters the lab's publication list by free-text term,
// publication type and year.
package papers

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/labsite/pkg/types"
)

// TermDebounce is how long the term must stay unchanged before it is
// applied. Type and year changes apply immediately.
const TermDebounce = 300 * time.Millisecond

// EmptyMessage is shown in place of the list when there are no entries.
const EmptyMessage = "暂无论文数据"

// Criteria is the current state of the filter controls. Zero fields match
// everything.
type Criteria struct {
	Term string
	Type string
	Year string
}

// normalized lowercases and trims the term.
func (c Criteria) normalized() Criteria {
	c.Term = strings.ToLower(strings.TrimSpace(c.Term))
	return c
}

// Matches reports whether e passes every active criterion.
func Matches(e types.PaperEntry, c Criteria) bool {
	c = c.normalized()
	return matches(e, c)
}

func matches(e types.PaperEntry, c Criteria) bool {
	if c.Term != "" &&
		!strings.Contains(strings.ToLower(e.Title), c.Term) &&
		!strings.Contains(strings.ToLower(e.Authors), c.Term) {
		return false
	}
	if c.Type != "" && e.Type != c.Type {
		return false
	}
	if c.Year != "" && e.Year != c.Year {
		return false
	}
	return true
}

// Result is the outcome of one filter pass.
type Result struct {
	// Visible holds one flag per input entry, in input order.
	Visible []bool

	// Entries are the visible entries in input order.
	Entries []types.PaperEntry

	// NoResults is true iff no entry is visible.
	NoResults bool

	// Empty is true when there were no entries to filter at all.
	Empty bool
}

// Count returns the number of visible entries.
func (r Result) Count() int { return len(r.Entries) }

// Message returns the text for the no-results panel, or "" when it is
// hidden. An empty list uses EmptyMessage; otherwise the panel carries its
// own static text.
func (r Result) Message() string {
	if r.Empty {
		return EmptyMessage
	}
	return ""
}

// Filter applies c to entries.
func Filter(entries []types.PaperEntry, c Criteria) Result {
	if len(entries) == 0 {
		return Result{NoResults: true, Empty: true}
	}
	c = c.normalized()
	res := Result{Visible: make([]bool, len(entries))}
	for i, e := range entries {
		if matches(e, c) {
			res.Visible[i] = true
			res.Entries = append(res.Entries, e)
		}
	}
	res.NoResults = len(res.Entries) == 0
	return res
}

// Years returns the distinct year values of entries, newest first. Numeric
// years sort numerically; anything else follows in lexical order.
func Years(entries []types.PaperEntry) []string {
	seen := make(map[string]bool)
	var years []string
	for _, e := range entries {
		if seen[e.Year] {
			continue
		}
		seen[e.Year] = true
		years = append(years, e.Year)
	}
	sort.SliceStable(years, func(i, j int) bool {
		a, errA := strconv.Atoi(years[i])
		b, errB := strconv.Atoi(years[j])
		switch {
		case errA == nil && errB == nil:
			return a > b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return years[i] < years[j]
		}
	})
	return years
}

// Types returns the distinct publication types of entries in first-seen
// order.
func Types(entries []types.PaperEntry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		if e.Type == "" || seen[e.Type] {
			continue
		}
		seen[e.Type] = true
		out = append(out, e.Type)
	}
	return out
}

// dataFile is the on-disk layout of the paper list.
type dataFile struct {
	Papers []types.PaperEntry `yaml:"papers"`
}

// LoadEntries reads the paper list from a YAML file with a top-level
// "papers" key.
func LoadEntries(path string) ([]types.PaperEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading paper list: %w", err)
	}
	var f dataFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing paper list %s: %w", path, err)
	}
	return f.Papers, nil
}
