package site

import "html/template"

var pages = template.Must(template.New("pages").Parse(`
{{define "head"}}<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>{{.}}</title>
<link rel="stylesheet" href="/css/main.css">
</head>
<body>
<nav class="site-nav">
  <a href="/search/">搜索</a>
  <a href="/papers">论文</a>
  <a href="/research">研究方向</a>
</nav>
<main>
{{end}}

{{define "foot"}}</main>
</body>
</html>
{{end}}

{{define "search"}}{{template "head" "搜索"}}
<form class="search-form" action="{{.Path}}" method="get">
  <input type="search" id="searchInput" name="q" value="{{.Input}}" placeholder="搜索论文、成员、项目...">
  <button type="submit">搜索</button>
</form>
<div id="searchStats" class="search-stats">{{.Stats}}</div>
<div id="searchResults" class="search-results"{{if not .ResultsVisible}} style="display: none"{{end}}>{{.Results}}</div>
<div id="noResults" class="no-results" style="display: {{if .NoResults}}block{{else}}none{{end}}">
  <p>没有找到相关结果，请尝试其他关键词</p>
</div>
{{template "foot"}}{{end}}

{{define "papers"}}{{template "head" "论文"}}
<form class="paper-filters" action="/papers" method="get">
  <input type="search" id="searchInput" name="q" value="{{.Criteria.Term}}" placeholder="搜索标题或作者...">
  <select id="typeFilter" name="type">
    <option value="">全部类型</option>
    {{- range .Types}}
    <option value="{{.}}"{{if eq . $.Criteria.Type}} selected{{end}}>{{.}}</option>
    {{- end}}
  </select>
  <select id="yearFilter" name="year">
    <option value="">全部年份</option>
    {{- range .Years}}
    <option value="{{.}}"{{if eq . $.Criteria.Year}} selected{{end}}>{{.}}</option>
    {{- end}}
  </select>
  <button type="submit">筛选</button>
</form>
<div class="paper-list">
{{- range .Items}}
  <div class="paper-item" data-type="{{.Type}}" data-year="{{.Year}}" style="display: {{if .Visible}}block{{else}}none{{end}}">
    <h3 class="paper-title">{{if .Link}}<a href="{{.Link}}">{{.Title}}</a>{{else}}{{.Title}}{{end}}</h3>
    <div class="paper-authors">{{.Authors}}</div>
    {{- if .Venue}}
    <div class="paper-venue">{{.Venue}} {{.Year}}</div>
    {{- end}}
  </div>
{{- end}}
</div>
<div id="noResults" class="no-results" style="display: {{if .NoResults}}block{{else}}none{{end}}">
  {{- if .Message}}{{.Message}}{{else}}没有找到匹配的论文{{end -}}
</div>
{{template "foot"}}{{end}}

{{define "research"}}{{template "head" "研究方向"}}
<div class="research-tabs" role="tablist">
{{- range .Tabs}}
  <button class="research-tab{{if .Active}} active{{end}}" data-tab="{{.ID}}" role="tab">{{.Title}}</button>
{{- end}}
</div>
{{- range .Tabs}}
<section id="{{.ID}}" class="research-tab-content{{if .Active}} active{{end}}"{{if eq .ID $.ScrollTo}} data-scroll-into-view{{end}}>
  <h2>{{.Title}}</h2>
  <p>{{.Content}}</p>
</section>
{{- end}}
{{template "foot"}}{{end}}
`))
