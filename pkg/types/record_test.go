// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexDate_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want FlexDate
	}{
		{"string", `"2024-01-01"`, FlexDate{Text: "2024-01-01"}},
		{"number", `1704067200`, FlexDate{Epoch: 1704067200, Numeric: true}},
		{"fraction", `1704067200.5`, FlexDate{Epoch: 1704067200.5, Numeric: true}},
		{"null", `null`, FlexDate{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d FlexDate
			require.NoError(t, json.Unmarshal([]byte(tt.json), &d))
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestFlexDate_UnmarshalRejectsObjects(t *testing.T) {
	var d FlexDate
	assert.Error(t, json.Unmarshal([]byte(`{"y":2024}`), &d))
	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
}

func TestFlexDate_Format(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)

	assert.Equal(t, "2024/1/1", FlexDate{Epoch: 1704067200, Numeric: true}.Format(time.UTC))
	assert.Equal(t, "2023/12/31", FlexDate{Epoch: 1704067200 - 3600, Numeric: true}.Format(time.UTC))
	assert.Equal(t, "2024/1/1", FlexDate{Epoch: 1704067200 - 3600, Numeric: true}.Format(shanghai))
	assert.Equal(t, "May 2023", FlexDate{Text: "May 2023"}.Format(time.UTC))
	assert.Equal(t, "", FlexDate{}.Format(nil))
}

func TestFlexDate_IsZero(t *testing.T) {
	assert.True(t, FlexDate{}.IsZero())
	assert.False(t, FlexDate{Text: "x"}.IsZero())
	assert.True(t, FlexDate{Numeric: true}.IsZero(), "epoch 0 is no date")
	assert.False(t, FlexDate{Epoch: 1, Numeric: true}.IsZero())
}

func TestSearchRecord_MarshalOmitsMissingDate(t *testing.T) {
	for _, rec := range []SearchRecord{{Title: "A"}, {Title: "A", Date: FlexDate{Numeric: true}}} {
		out, err := json.Marshal(rec)
		require.NoError(t, err)
		assert.JSONEq(t, `{"title": "A"}`, string(out))
	}

	out, err := json.Marshal(SearchRecord{Title: "A", Date: FlexDate{Epoch: 1704067200, Numeric: true}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title": "A", "date": 1704067200}`, string(out))
}

func TestFlexDate_MarshalKeepsForm(t *testing.T) {
	for _, in := range []string{`"2024-01-01"`, `1704067200`, `null`} {
		var d FlexDate
		require.NoError(t, json.Unmarshal([]byte(in), &d))
		out, err := json.Marshal(d)
		require.NoError(t, err)
		assert.JSONEq(t, in, string(out))
	}
}

func TestSearchRecord_IsShowcase(t *testing.T) {
	assert.True(t, SearchRecord{Type: RecordShowcase}.IsShowcase())
	assert.True(t, SearchRecord{Type: RecordPage, Section: "showcase"}.IsShowcase())
	assert.False(t, SearchRecord{Type: RecordPaper, Section: "papers"}.IsShowcase())
}

func TestSearchRecord_Haystack(t *testing.T) {
	r := SearchRecord{
		Title:   "Graph",
		Content: "Body",
		Authors: []string{"A Lee", "B Chen"},
		Venue:   "NeurIPS",
	}
	h := r.Haystack()

	assert.Contains(t, h, "graph")
	assert.Contains(t, h, "body")
	assert.Contains(t, h, "a lee b chen")
	assert.NotContains(t, h, "neurips")
}
