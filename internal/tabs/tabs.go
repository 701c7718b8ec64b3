// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tabs models the research page's tab strip: exactly one tab is
// active at a time, and activating a tab selects the content pane with the
// same identifier.
package tabs

import (
	"strings"

	"github.com/pdiddy/labsite/pkg/types"
)

// Set is the state of one tab strip. The zero value has no tabs.
type Set struct {
	ids    []string
	active int
}

// New returns a set with the given tab identifiers in display order. The
// first tab starts active.
func New(ids []string) *Set {
	return &Set{ids: append([]string(nil), ids...)}
}

// FromTabs builds a set from research tab definitions.
func FromTabs(tabs []types.ResearchTab) *Set {
	ids := make([]string, len(tabs))
	for i, t := range tabs {
		ids[i] = t.ID
	}
	return New(ids)
}

// Transition describes the result of an activation.
type Transition struct {
	From string
	To   string

	// ScrollTo is the pane to bring into view; empty when no tab was
	// activated.
	ScrollTo string
}

// Changed reports whether the active tab moved.
func (t Transition) Changed() bool { return t.From != t.To }

// Len returns the number of tabs.
func (s *Set) Len() int { return len(s.ids) }

// IDs returns the tab identifiers in order.
func (s *Set) IDs() []string { return append([]string(nil), s.ids...) }

// Active returns the active tab's identifier, or "" when there are no tabs.
func (s *Set) Active() string {
	if len(s.ids) == 0 {
		return ""
	}
	return s.ids[s.active]
}

// ActiveIndex returns the position of the active tab, or -1 when empty.
func (s *Set) ActiveIndex() int {
	if len(s.ids) == 0 {
		return -1
	}
	return s.active
}

// IsActive reports whether id is the active tab.
func (s *Set) IsActive(id string) bool {
	return len(s.ids) > 0 && s.ids[s.active] == id
}

// Activate makes id the active tab. Re-activating the current tab still
// scrolls its pane into view. Unknown ids leave the state unchanged and
// return ok=false.
func (s *Set) Activate(id string) (Transition, bool) {
	for i, v := range s.ids {
		if v == id {
			return s.activateIndex(i), true
		}
	}
	return Transition{From: s.Active(), To: s.Active()}, false
}

func (s *Set) activateIndex(i int) Transition {
	from := s.Active()
	s.active = i
	return Transition{From: from, To: s.ids[i], ScrollTo: s.ids[i]}
}

// Next activates the tab after the active one, wrapping to the first.
func (s *Set) Next() Transition {
	if len(s.ids) == 0 {
		return Transition{}
	}
	return s.activateIndex((s.active + 1) % len(s.ids))
}

// Prev activates the tab before the active one, wrapping to the last.
func (s *Set) Prev() Transition {
	if len(s.ids) == 0 {
		return Transition{}
	}
	return s.activateIndex((s.active - 1 + len(s.ids)) % len(s.ids))
}

// FromFragment activates the tab named by a URL fragment ("#id" or "id").
func (s *Set) FromFragment(fragment string) (Transition, bool) {
	id := strings.TrimPrefix(fragment, "#")
	if id == "" {
		return Transition{From: s.Active(), To: s.Active()}, false
	}
	return s.Activate(id)
}

// HandleKey maps arrow keys to Next/Prev. Both browser key names
// ("ArrowRight") and terminal key names ("right") are accepted; other keys
// are ignored.
func (s *Set) HandleKey(key string) (Transition, bool) {
	switch key {
	case "ArrowRight", "right":
		return s.Next(), len(s.ids) > 0
	case "ArrowLeft", "left":
		return s.Prev(), len(s.ids) > 0
	}
	return Transition{From: s.Active(), To: s.Active()}, false
}
