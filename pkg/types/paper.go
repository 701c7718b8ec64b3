// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PaperEntry is one item of the lab's publication list. The fields mirror
// the data attributes the site template puts on every paper node; Title and
// Authors are matched case-insensitively.
type PaperEntry struct {
	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors is the author line as displayed (e.g. "A. Lee, B. Chen").
	Authors string `json:"authors" yaml:"authors"`

	// Type is the publication category (e.g. "conference", "journal").
	Type string `json:"type" yaml:"type"`

	// Year is the publication year as a string (e.g. "2024").
	Year string `json:"year" yaml:"year"`

	// Venue is the journal or conference name.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Link points at the paper PDF or landing page.
	Link string `json:"link,omitempty" yaml:"link,omitempty"`
}

// ResearchTab is one tab of the research page: a button labelled Title that
// reveals the content pane identified by ID.
type ResearchTab struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}
