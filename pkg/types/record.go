// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for labsite.
// Implements: site search (SearchRecord, ScoredResult);
//
//	paper list (PaperEntry);
//	research page (ResearchTab);
//	configuration (SiteConfig and per-component configs).
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RecordType classifies a search record by the page it came from.
type RecordType string

const (
	RecordPage     RecordType = "page"
	RecordMember   RecordType = "member"
	RecordProject  RecordType = "project"
	RecordPaper    RecordType = "paper"
	RecordResearch RecordType = "research"

	// RecordShowcase entries are generated by the site but never searchable.
	RecordShowcase RecordType = "showcase"
)

// SearchRecord is one entry of the generated searchindex.json. Every field is
// optional; records without a Title never appear in results.
type SearchRecord struct {
	Title        string     `json:"title,omitempty"`
	Content      string     `json:"content,omitempty"`
	Summary      string     `json:"summary,omitempty"`
	Research     string     `json:"research,omitempty"`
	Position     string     `json:"position,omitempty"`
	Role         string     `json:"role,omitempty"`
	ResearchArea string     `json:"research_area,omitempty"`
	Experience   string     `json:"experience,omitempty"`
	Projects     string     `json:"projects,omitempty"`
	Papers       string     `json:"papers,omitempty"`
	Authors      []string   `json:"authors,omitempty"`
	Type         RecordType `json:"type,omitempty"`
	Date         FlexDate   `json:"date,omitzero"`
	Venue        string     `json:"venue,omitempty"`
	Permalink    string     `json:"permalink,omitempty"`
	Section      string     `json:"section,omitempty"`
}

// IsShowcase reports whether the record belongs to the showcase category,
// either by type or by section.
func (r SearchRecord) IsShowcase() bool {
	return r.Type == RecordShowcase || r.Section == string(RecordShowcase)
}

// ScoredResult is a SearchRecord with the relevance score computed for one
// query. It is never persisted.
type ScoredResult struct {
	SearchRecord
	Score int `json:"score"`
}

// FlexDate holds a record date that the site generator emits either as a
// preformatted string or as Unix epoch seconds.
type FlexDate struct {
	// Text is the verbatim string form; empty when the date was numeric.
	Text string

	// Epoch is the numeric form in seconds; valid only when Numeric is true.
	Epoch float64

	// Numeric reports whether the date was encoded as a JSON number.
	Numeric bool
}

// IsZero reports whether no date was present. An epoch of 0 counts as no
// date.
func (d FlexDate) IsZero() bool {
	if d.Numeric {
		return d.Epoch == 0
	}
	return d.Text == ""
}

// Format renders the date for display. Numeric dates become a Y/M/D date in
// loc (time.Local when nil); string dates pass through verbatim.
func (d FlexDate) Format(loc *time.Location) string {
	if !d.Numeric {
		return d.Text
	}
	if loc == nil {
		loc = time.Local
	}
	sec, frac := splitEpoch(d.Epoch)
	t := time.Unix(sec, frac).In(loc)
	return fmt.Sprintf("%d/%d/%d", t.Year(), int(t.Month()), t.Day())
}

func splitEpoch(f float64) (int64, int64) {
	sec := int64(f)
	return sec, int64((f - float64(sec)) * 1e9)
}

// UnmarshalJSON accepts a JSON string, number or null.
func (d *FlexDate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = FlexDate{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding date string: %w", err)
		}
		*d = FlexDate{Text: s}
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("date must be a string or epoch seconds, got %s", data)
	}
	*d = FlexDate{Epoch: f, Numeric: true}
	return nil
}

// MarshalJSON writes the date back in the form it was read.
func (d FlexDate) MarshalJSON() ([]byte, error) {
	switch {
	case d.Numeric:
		return []byte(strconv.FormatFloat(d.Epoch, 'f', -1, 64)), nil
	case d.Text == "":
		return []byte("null"), nil
	default:
		return json.Marshal(d.Text)
	}
}

// Haystack returns the lowercased concatenation of every searchable field,
// used for substring matching.
func (r SearchRecord) Haystack() string {
	parts := []string{
		r.Title,
		r.Content,
		r.Summary,
		r.Research,
		r.Position,
		r.Role,
		r.ResearchArea,
		r.Experience,
		r.Projects,
		r.Papers,
		strings.Join(r.Authors, " "),
	}
	return strings.ToLower(strings.Join(parts, " "))
}
