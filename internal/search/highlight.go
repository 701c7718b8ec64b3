// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"html/template"
	"regexp"
	"sort"
	"strings"
)

const (
	highlightOpen  = `<span class="search-highlight">`
	highlightClose = `</span>`
)

// Highlight HTML-escapes text and wraps every case-insensitive occurrence of
// the query words in a search-highlight span. All words are matched in one
// pass, so each span of text is wrapped at most once; at a given position
// the longest word wins.
func Highlight(text string, words []string) template.HTML {
	if text == "" {
		return ""
	}
	re := combinedPattern(words)
	if re == nil {
		return template.HTML(template.HTMLEscapeString(text))
	}

	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		b.WriteString(template.HTMLEscapeString(text[last:loc[0]]))
		b.WriteString(highlightOpen)
		b.WriteString(template.HTMLEscapeString(text[loc[0]:loc[1]]))
		b.WriteString(highlightClose)
		last = loc[1]
	}
	b.WriteString(template.HTMLEscapeString(text[last:]))
	return template.HTML(b.String())
}

// HighlightSequential reproduces the original site's highlighting: words
// are applied one after another to the already-marked-up text, so a later
// word can match inside earlier markup and wrap a region twice.
func HighlightSequential(text string, words []string) template.HTML {
	if text == "" {
		return ""
	}
	out := template.HTMLEscapeString(text)
	for _, w := range words {
		if w == "" {
			continue
		}
		re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(template.HTMLEscapeString(w)))
		out = re.ReplaceAllStringFunc(out, func(m string) string {
			return highlightOpen + m + highlightClose
		})
	}
	return template.HTML(out)
}

// combinedPattern builds one case-insensitive alternation of the escaped
// words, longest first so overlapping words prefer the longer match.
func combinedPattern(words []string) *regexp.Regexp {
	uniq := make(map[string]bool, len(words))
	var alts []string
	for _, w := range words {
		lw := strings.ToLower(w)
		if lw == "" || uniq[lw] {
			continue
		}
		uniq[lw] = true
		alts = append(alts, regexp.QuoteMeta(w))
	}
	if len(alts) == 0 {
		return nil
	}
	sort.SliceStable(alts, func(i, j int) bool {
		return len(alts[i]) > len(alts[j])
	})
	return regexp.MustCompile("(?i)(?:" + strings.Join(alts, "|") + ")")
}
