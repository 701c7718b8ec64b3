// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/pdiddy/labsite/pkg/types"
)

var typeLabels = map[types.RecordType]string{
	types.RecordPage:     "页面",
	types.RecordMember:   "成员",
	types.RecordProject:  "项目",
	types.RecordPaper:    "论文",
	types.RecordResearch: "研究方向",
}

// TypeLabel returns the display label for a record type.
func TypeLabel(t types.RecordType) string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return "内容"
}

// MetaLine composes the metadata line shown under a result title. Each part
// appears only when its field is present.
func MetaLine(rec types.SearchRecord, loc *time.Location) string {
	var parts []string

	if !rec.Date.IsZero() {
		parts = append(parts, "发布于 "+rec.Date.Format(loc))
	}
	if len(rec.Authors) > 0 {
		parts = append(parts, "作者: "+strings.Join(rec.Authors, ", "))
	}

	// Compound member fields are already spelled out in the snippet.
	if rec.Type == types.RecordMember {
		if rec.Position != "" && !strings.Contains(rec.Position, "|") {
			parts = append(parts, "职位: "+rec.Position)
		}
		if rec.Research != "" && !strings.Contains(rec.Research, "|") {
			parts = append(parts, "研究方向: "+rec.Research)
		}
		if rec.Role != "" && !strings.Contains(rec.Role, "|") {
			parts = append(parts, "角色: "+rec.Role)
		}
	}

	if rec.ResearchArea != "" {
		parts = append(parts, "研究领域: "+rec.ResearchArea)
	}
	if rec.Venue != "" {
		parts = append(parts, "发表刊物: "+rec.Venue)
	}

	return strings.Join(parts, " | ")
}

// Hit is a scored result prepared for display.
type Hit struct {
	types.ScoredResult
	TypeLabel   string        `json:"type_label"`
	TitleHTML   template.HTML `json:"title_html"`
	Meta        string        `json:"meta"`
	SnippetHTML template.HTML `json:"snippet_html"`
}

var resultTmpl = template.Must(template.New("result").Parse(`
<article class="search-result-item">
    <div class="result-type">{{.TypeLabel}}</div>
    <h2 class="search-result-title">
        <a href="{{.Permalink}}">{{.TitleHTML}}</a>
    </h2>
    <div class="search-result-meta">
        {{.Meta}}
    </div>
    <div class="search-result-summary">
        {{.SnippetHTML}}
    </div>
    {{- if .Divider}}
    <hr class="result-divider">
    {{- end}}
</article>
`))

type resultView struct {
	Hit
	Divider bool
}

// RenderResults renders one search-result-item block per hit, with a
// divider between consecutive blocks. A hit that fails to render is logged
// and left out.
func RenderResults(hits []Hit, logger *slog.Logger) template.HTML {
	var buf bytes.Buffer
	for i, h := range hits {
		var item bytes.Buffer
		if err := resultTmpl.Execute(&item, resultView{Hit: h, Divider: i < len(hits)-1}); err != nil {
			logger.Warn("skipping search result", "title", h.Title, "err", err)
			continue
		}
		buf.Write(item.Bytes())
	}
	return template.HTML(buf.String())
}

// StatsHTML renders the result count line.
func StatsHTML(n int) template.HTML {
	return template.HTML(fmt.Sprintf("<p>找到 %d 条搜索结果</p>", n))
}

// PromptHTML is shown when the query is empty.
const PromptHTML template.HTML = "<p>请输入搜索关键词</p>"

// SearchingHTML is shown while a query is pending.
func SearchingHTML(term string) template.HTML {
	return template.HTML(fmt.Sprintf(`<p>正在搜索 "%s"...</p>`, template.HTMLEscapeString(term)))
}

// LoadErrorHTML reports an index load failure.
func LoadErrorHTML(err error) template.HTML {
	return template.HTML(`<p class="error-message">搜索数据加载失败: ` + template.HTMLEscapeString(err.Error()) + `</p>`)
}

// SearchErrorHTML reports a failure while executing a query.
func SearchErrorHTML(err error) template.HTML {
	return template.HTML(`<p class="error-message">搜索过程中出现错误: ` + template.HTMLEscapeString(err.Error()) + `</p>`)
}
