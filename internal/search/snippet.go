// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"
	"unicode"

	"github.com/pdiddy/labsite/pkg/types"
)

const (
	snippetBefore = 50
	snippetAfter  = 150
	snippetLead   = 200
	ellipsis      = "..."
)

// SummaryText picks the text a result's snippet is cut from. Members prefer
// their position, research direction and role; papers show authors and
// venue; everything else uses the summary, then the content.
func SummaryText(rec types.SearchRecord) string {
	switch rec.Type {
	case types.RecordMember:
		var parts []string
		if rec.Position != "" {
			parts = append(parts, rec.Position)
		}
		if rec.Research != "" {
			parts = append(parts, "研究方向: "+rec.Research)
		}
		if rec.Role != "" {
			parts = append(parts, rec.Role)
		}
		if len(parts) > 0 {
			return strings.Join(parts, " | ")
		}
		return firstNonEmpty(rec.Experience, rec.Summary, rec.Content)
	case types.RecordPaper:
		return "作者: " + strings.Join(rec.Authors, ", ") + " | 发表于: " + rec.Venue
	default:
		return firstNonEmpty(rec.Summary, rec.Content)
	}
}

// Snippet cuts a window of text around the earliest occurrence of any word:
// 50 characters before it and 150 from it, with "..." marking each edge that
// was truncated. Without a match it keeps the first 200 characters.
// Positions count runes.
func Snippet(text string, words []string) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)

	first := firstMatch(runes, words)
	if first < 0 {
		if len(runes) <= snippetLead {
			return text
		}
		return string(runes[:snippetLead]) + ellipsis
	}

	start := max(0, first-snippetBefore)
	end := min(len(runes), first+snippetAfter)

	var b strings.Builder
	if start > 0 {
		b.WriteString(ellipsis)
	}
	b.WriteString(string(runes[start:end]))
	if end < len(runes) {
		b.WriteString(ellipsis)
	}
	return b.String()
}

// firstMatch returns the smallest rune offset at which any word occurs in
// text, compared case-insensitively, or -1.
func firstMatch(text []rune, words []string) int {
	lower := lowerRunes(text)
	best := -1
	for _, w := range words {
		if w == "" {
			continue
		}
		idx := indexRunes(lower, lowerRunes([]rune(w)))
		if idx >= 0 && (best < 0 || idx < best) {
			best = idx
		}
	}
	return best
}

// lowerRunes lowercases rune by rune so offsets line up with the input.
func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func indexRunes(s, sub []rune) int {
	n := len(sub)
	for i := 0; i+n <= len(s); i++ {
		match := true
		for j := 0; j < n; j++ {
			if s[i+j] != sub[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
