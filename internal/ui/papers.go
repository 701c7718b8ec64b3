// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdiddy/labsite/internal/papers"
	"github.com/pdiddy/labsite/pkg/types"
)

// termMsg fires TermDebounce after a keystroke; only the latest one applies.
type termMsg struct{ seq int }

// PapersModel is the interactive paper list. Typing filters by title and
// authors after a short pause; tab cycles the type filter and shift+tab the
// year filter, both applied at once.
type PapersModel struct {
	entries  []types.PaperEntry
	typeOpts []string // "" first, meaning all
	yearOpts []string // "" first, meaning all
	typeIdx  int
	yearIdx  int

	input    textinput.Model
	seq      int
	criteria papers.Criteria
	result   papers.Result

	styles   Styles
	width    int
	quitting bool
}

// NewPapersModel returns a model over entries with no filters applied.
func NewPapersModel(entries []types.PaperEntry, styles Styles) *PapersModel {
	ti := textinput.New()
	ti.Placeholder = "搜索标题或作者..."
	ti.Focus()

	m := &PapersModel{
		entries:  entries,
		typeOpts: append([]string{""}, papers.Types(entries)...),
		yearOpts: append([]string{""}, papers.Years(entries)...),
		input:    ti,
		styles:   styles,
		width:    80,
	}
	m.apply()
	return m
}

// Criteria returns the filter currently applied to the list.
func (m *PapersModel) Criteria() papers.Criteria { return m.criteria }

// Result returns the latest filter result.
func (m *PapersModel) Result() papers.Result { return m.result }

func (m *PapersModel) apply() {
	m.criteria.Type = m.typeOpts[m.typeIdx]
	m.criteria.Year = m.yearOpts[m.yearIdx]
	m.result = papers.Filter(m.entries, m.criteria)
}

// Init implements tea.Model.
func (m *PapersModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *PapersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			m.typeIdx = (m.typeIdx + 1) % len(m.typeOpts)
			m.apply()
			return m, nil
		case "shift+tab":
			m.yearIdx = (m.yearIdx + 1) % len(m.yearOpts)
			m.apply()
			return m, nil
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() == before {
			return m, cmd
		}
		m.seq++
		seq := m.seq
		debounce := tea.Tick(papers.TermDebounce, func(time.Time) tea.Msg {
			return termMsg{seq: seq}
		})
		return m, tea.Batch(cmd, debounce)

	case termMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.criteria.Term = m.input.Value()
		m.apply()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *PapersModel) View() string {
	if m.quitting {
		return ""
	}
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Header.Render("论文"))
	b.WriteString(s.Label.Render(fmt.Sprintf("  %d/%d", m.result.Count(), len(m.entries))))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(s.Label.Render("类型: ") + orAll(m.criteria.Type, "全部类型"))
	b.WriteString(s.Label.Render("   年份: ") + orAll(m.criteria.Year, "全部年份"))
	b.WriteString("\n\n")

	if m.result.NoResults {
		msg := m.result.Message()
		if msg == "" {
			msg = "没有找到匹配的论文"
		}
		b.WriteString(s.Dim.Render(msg))
		b.WriteString("\n")
	}
	for _, e := range m.result.Entries {
		b.WriteString(s.Title.Render(e.Title))
		b.WriteString("\n  ")
		b.WriteString(e.Authors)
		if e.Venue != "" {
			b.WriteString(s.Label.Render(" · " + e.Venue))
		}
		if e.Year != "" {
			b.WriteString(s.Label.Render(" · " + e.Year))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Dim.Render("tab 切换类型 · shift+tab 切换年份 · esc 退出"))
	return b.String()
}

func orAll(v, all string) string {
	if v == "" {
		return all
	}
	return v
}
