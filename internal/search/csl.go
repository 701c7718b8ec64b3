package search

import (
	"io"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/labsite/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format, so paper hits can be handed to Pandoc or a reference manager.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes the paper hits of out as a CSL-YAML list to w. Hits of
// other record types are not bibliographic and are left out.
func FormatCSL(out Output, w io.Writer) error {
	items := []CSLItem{}
	for _, h := range out.Hits {
		if h.Type != types.RecordPaper {
			continue
		}
		items = append(items, toCSLItem(h.SearchRecord))
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a paper record to a CSLItem.
func toCSLItem(r types.SearchRecord) CSLItem {
	item := CSLItem{
		ID:             cslID(r),
		Type:           "paper-conference",
		Title:          r.Title,
		ContainerTitle: r.Venue,
		URL:            r.Permalink,
		Issued:         cslIssued(r.Date),
	}
	for _, a := range r.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	return item
}

// cslID uses the last permalink segment, falling back to the title.
func cslID(r types.SearchRecord) string {
	p := strings.Trim(r.Permalink, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	if p != "" {
		return p
	}
	return strings.ToLower(strings.Join(strings.Fields(r.Title), "-"))
}

// cslIssued converts a record date to date-parts. String dates are parsed
// as YYYY-MM-DD, YYYY-MM or YYYY; anything else is omitted.
func cslIssued(d types.FlexDate) *CSLDate {
	if d.IsZero() {
		return nil
	}
	if d.Numeric {
		t := time.Unix(int64(d.Epoch), 0).UTC()
		return &CSLDate{DateParts: [][]int{{t.Year(), int(t.Month()), t.Day()}}}
	}

	text := strings.TrimSpace(d.Text)
	for _, layout := range []string{"2006-01-02", "2006-01"} {
		if len(text) >= len(layout) {
			if t, err := time.Parse(layout, text[:len(layout)]); err == nil {
				parts := []int{t.Year(), int(t.Month())}
				if layout == "2006-01-02" {
					parts = append(parts, t.Day())
				}
				return &CSLDate{DateParts: [][]int{parts}}
			}
		}
	}
	if len(text) >= 4 {
		if y, err := strconv.Atoi(text[:4]); err == nil {
			return &CSLDate{DateParts: [][]int{{y}}}
		}
	}
	return nil
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names (including CJK names) use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
