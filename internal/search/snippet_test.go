package search

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/labsite/pkg/types"
)

func TestSummaryText(t *testing.T) {
	tests := []struct {
		name string
		rec  types.SearchRecord
		want string
	}{
		{
			name: "member all parts",
			rec:  types.SearchRecord{Type: types.RecordMember, Position: "教授", Research: "图学习", Role: "PI"},
			want: "教授 | 研究方向: 图学习 | PI",
		},
		{
			name: "member partial",
			rec:  types.SearchRecord{Type: types.RecordMember, Research: "图学习"},
			want: "研究方向: 图学习",
		},
		{
			name: "member falls back to experience",
			rec:  types.SearchRecord{Type: types.RecordMember, Experience: "2019-2023 PhD", Summary: "s"},
			want: "2019-2023 PhD",
		},
		{
			name: "member falls back to content",
			rec:  types.SearchRecord{Type: types.RecordMember, Content: "bio"},
			want: "bio",
		},
		{
			name: "paper",
			rec:  types.SearchRecord{Type: types.RecordPaper, Authors: []string{"A Lee", "B Chen"}, Venue: "NeurIPS"},
			want: "作者: A Lee, B Chen | 发表于: NeurIPS",
		},
		{
			name: "paper without fields",
			rec:  types.SearchRecord{Type: types.RecordPaper},
			want: "作者:  | 发表于: ",
		},
		{
			name: "research prefers summary",
			rec:  types.SearchRecord{Type: types.RecordResearch, Summary: "sum", Content: "body"},
			want: "sum",
		},
		{
			name: "page falls back to content",
			rec:  types.SearchRecord{Type: types.RecordPage, Content: "body"},
			want: "body",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SummaryText(tt.rec))
		})
	}
}

func TestSnippet_NoMatchShort(t *testing.T) {
	assert.Equal(t, "graph theory basics", Snippet("graph theory basics", []string{"xyz"}))
}

func TestSnippet_NoMatchLong(t *testing.T) {
	text := strings.Repeat("a", 250)
	got := Snippet(text, []string{"xyz"})

	assert.Equal(t, strings.Repeat("a", 200)+"...", got)
}

func TestSnippet_MatchNearStart(t *testing.T) {
	text := "graph " + strings.Repeat("b", 300)
	got := Snippet(text, []string{"graph"})

	assert.False(t, strings.HasPrefix(got, "..."), "window starts at the text boundary")
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, 150+3, utf8.RuneCountInString(got))
}

func TestSnippet_MatchInMiddle(t *testing.T) {
	text := strings.Repeat("a", 100) + "graph" + strings.Repeat("b", 100)
	got := Snippet(text, []string{"graph"})

	want := "..." + strings.Repeat("a", 50) + "graph" + strings.Repeat("b", 100) + ""
	assert.Equal(t, want, got, "window ends exactly at text end so no trailing ellipsis")
}

func TestSnippet_EarliestWordWins(t *testing.T) {
	text := strings.Repeat("x", 60) + "beta" + strings.Repeat("y", 200) + "alpha"
	got := Snippet(text, []string{"alpha", "beta"})

	assert.True(t, strings.HasPrefix(got, "..."+strings.Repeat("x", 50)+"beta"))
}

func TestSnippet_CaseInsensitive(t *testing.T) {
	got := Snippet("Intro to GRAPH theory", []string{"graph"})
	assert.Equal(t, "Intro to GRAPH theory", got)
}

func TestSnippet_CountsRunes(t *testing.T) {
	text := strings.Repeat("研", 80) + "图神经网络" + strings.Repeat("究", 200)
	got := Snippet(text, []string{"图神经网络"})

	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasPrefix(got, "..."+strings.Repeat("研", 50)+"图神经网络"))
	assert.Equal(t, 3+200+3, utf8.RuneCountInString(got))
}

func TestSnippet_NeverLongerThanInput(t *testing.T) {
	inputs := []string{
		"",
		"short",
		strings.Repeat("z", 199),
		strings.Repeat("z", 200),
		strings.Repeat("z", 201),
		strings.Repeat("q", 30) + "hit" + strings.Repeat("q", 30),
		strings.Repeat("q", 300) + "hit",
	}
	for _, in := range inputs {
		for _, words := range [][]string{{"hit"}, {"nomatch"}} {
			got := Snippet(in, words)
			body := strings.TrimSuffix(strings.TrimPrefix(got, "..."), "...")
			assert.LessOrEqual(t, utf8.RuneCountInString(body), utf8.RuneCountInString(in))
			if !strings.HasPrefix(got, "...") && !strings.HasSuffix(got, "...") {
				assert.Equal(t, in, got, "no ellipsis means nothing was cut")
			}
		}
	}
}

func TestSnippet_Empty(t *testing.T) {
	assert.Equal(t, "", Snippet("", []string{"graph"}))
}
