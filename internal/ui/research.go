// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/labsite/internal/tabs"
	"github.com/pdiddy/labsite/pkg/types"
)

// ResearchModel shows the research tabs with the active pane in a
// scrollable viewport. Left and right move between tabs with wrap-around;
// number keys jump straight to a tab.
type ResearchModel struct {
	tabs  []types.ResearchTab
	panes map[string]types.ResearchTab
	set   *tabs.Set

	viewport viewport.Model
	scrolled string // pane last brought into view
	styles   Styles
	quitting bool
}

// NewResearchModel returns a model over tabs. A fragment naming a tab
// ("#id" or "id") activates it; otherwise the first tab is active.
func NewResearchModel(list []types.ResearchTab, fragment string, styles Styles) *ResearchModel {
	m := &ResearchModel{
		tabs:     list,
		panes:    make(map[string]types.ResearchTab, len(list)),
		set:      tabs.FromTabs(list),
		viewport: viewport.New(80, 20),
		styles:   styles,
	}
	for _, t := range list {
		m.panes[t.ID] = t
	}
	if tr, ok := m.set.FromFragment(fragment); ok {
		m.show(tr)
	} else {
		m.viewport.SetContent(PaneText(m.panes[m.set.Active()]))
	}
	return m
}

// Active returns the active tab id.
func (m *ResearchModel) Active() string { return m.set.Active() }

// ScrolledTo returns the pane most recently scrolled into view.
func (m *ResearchModel) ScrolledTo() string { return m.scrolled }

func (m *ResearchModel) show(tr tabs.Transition) {
	m.viewport.SetContent(PaneText(m.panes[m.set.Active()]))
	if tr.ScrollTo != "" {
		m.viewport.GotoTop()
		m.scrolled = tr.ScrollTo
	}
}

// Init implements tea.Model.
func (m *ResearchModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *ResearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		if tr, ok := m.set.HandleKey(key); ok {
			m.show(tr)
			return m, nil
		}
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.tabs) {
				tr, _ := m.set.Activate(m.tabs[i].ID)
				m.show(tr)
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(3, msg.Height-4)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *ResearchModel) View() string {
	if m.quitting {
		return ""
	}
	if len(m.tabs) == 0 {
		return m.styles.Dim.Render("暂无研究方向") + "\n"
	}

	strip := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if m.set.IsActive(t.ID) {
			label := t.Title
			if m.styles.Brackets {
				label = "[" + label + "]"
			}
			strip[i] = m.styles.TabActive.Render(label)
			continue
		}
		strip[i] = m.styles.Tab.Render(t.Title)
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, strip...))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render("←/→ 切换 · 1-9 跳转 · ↑/↓ 滚动 · q 退出"))
	return b.String()
}

// PaneText renders a research tab's content pane as plain text.
func PaneText(t types.ResearchTab) string {
	if t.ID == "" {
		return ""
	}
	return t.Title + "\n\n" + strings.TrimSpace(t.Content) + "\n"
}
