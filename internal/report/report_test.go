package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"enbyscan/internal/config"
	"enbyscan/internal/model"
	"enbyscan/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPage() Page {
	langs := []config.Language{
		{Code: "en", Name: "English", Category: "Non-binary_people"},
	}
	return Page{
		Languages: langs,
		Generated: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Rows: []model.ComparisonRow{
			{
				QID:  "Q2",
				Name: "Robin",
				Cells: []model.ComparisonCell{
					{Status: model.StatusWrong, Text: "wrong gender?", Link: "https://en.wikipedia.org/wiki/Robin"},
					{Status: model.StatusNonBinary, Text: "non-binary", Link: "https://www.wikidata.org/wiki/Q2"},
				},
				Error: true,
			},
			{
				QID:  "Q1",
				Name: "Alex",
				Cells: []model.ComparisonCell{
					{Status: model.StatusMissing, Text: "no article"},
					{Status: model.StatusNonBinary, Text: "non-binary", Link: "https://www.wikidata.org/wiki/Q1"},
				},
			},
		},
	}
}

func renderTestPage(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testPage()))
	return buf.String()
}

func TestRender(t *testing.T) {
	out := renderTestPage(t)

	assert.Contains(t, out, `id="filterCheckbox"`)
	assert.Contains(t, out, "<th>Title</th>")
	assert.Contains(t, out, "<th>English Wikipedia</th>")
	assert.Contains(t, out, "<th>Wikidata</th>")
	assert.Contains(t, out, `<tr class="error">`)
	assert.Contains(t, out, `<td class="wrong">`)
	assert.Contains(t, out, `<td class="missing">no article</td>`)
	assert.Contains(t, out, `<a href="https://www.wikidata.org/wiki/Q1">non-binary</a>`)
	assert.Contains(t, out, "th.sorted-asc::after")
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(renderTestPage(t)))
	require.NoError(t, err)

	assert.Equal(t, []string{"Title", "English Wikipedia", "Wikidata"}, doc.Headers())

	tab := doc.Controller().Table()
	require.Len(t, tab.Rows, 2)
	assert.Equal(t, []string{"Robin", "wrong gender?", "non-binary"}, tab.Rows[0].Cells)
	assert.True(t, tab.Rows[0].Error)
	assert.False(t, tab.Rows[1].Error)
	assert.False(t, doc.Controller().ErrorsOnly())
}

func TestParseDocumentPreconditions(t *testing.T) {
	t.Run("no table", func(t *testing.T) {
		_, err := ParseDocument(strings.NewReader(`<html><body><input type="checkbox" id="filterCheckbox"></body></html>`))
		assert.ErrorIs(t, err, ErrNoTable)
	})

	t.Run("two tables", func(t *testing.T) {
		page := `<html><body><input type="checkbox" id="filterCheckbox">` +
			`<table><tbody><tr><td>a</td></tr></tbody></table>` +
			`<table><tbody><tr><td>b</td></tr></tbody></table></body></html>`
		_, err := ParseDocument(strings.NewReader(page))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected exactly one")
	})

	t.Run("no checkbox", func(t *testing.T) {
		_, err := ParseDocument(strings.NewReader(`<html><body><table><thead><tr><th>a</th></tr></thead><tbody></tbody></table></body></html>`))
		assert.ErrorIs(t, err, ErrNoCheckbox)
	})

	t.Run("checkbox id on a non-input", func(t *testing.T) {
		page := `<html><body><span id="filterCheckbox"></span>` +
			`<table><thead><tr><th>a</th></tr></thead><tbody></tbody></table></body></html>`
		_, err := ParseDocument(strings.NewReader(page))
		assert.ErrorIs(t, err, ErrNoCheckbox)
	})
}

func TestResortRoundTrip(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(renderTestPage(t)))
	require.NoError(t, err)

	_, err = doc.Controller().SortByColumn(0)
	require.NoError(t, err)
	doc.Controller().ToggleErrorFilter(true)

	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))
	out := buf.String()

	assert.Contains(t, out, `<th class="sorted-asc">Title</th>`)
	assert.Contains(t, out, "checked")
	assert.Less(t, strings.Index(out, "Alex"), strings.Index(out, "Robin"), "body rows reordered by Title")
	assert.Contains(t, out, `class="hidden"`, "non-error row hidden by the filter")

	// the rewritten page parses again with the same state
	doc2, err := ParseDocument(strings.NewReader(out))
	require.NoError(t, err)
	col, dir := doc2.Controller().SortState()
	assert.Equal(t, 0, col)
	assert.Equal(t, table.Ascending, dir)
	assert.True(t, doc2.Controller().ErrorsOnly())

	tab := doc2.Controller().Table()
	require.Len(t, tab.Rows, 2)
	assert.Equal(t, "Alex", tab.Rows[0].Cell(0))
	assert.True(t, tab.Rows[0].Hidden)
	assert.False(t, tab.Rows[1].Hidden)
}

func TestSyncSecondSortMovesMarker(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(renderTestPage(t)))
	require.NoError(t, err)

	_, err = doc.Controller().SortByColumn(0)
	require.NoError(t, err)
	_, err = doc.Controller().SortByColumn(2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))
	out := buf.String()

	assert.Contains(t, out, `<th>Title</th>`, "previous sort marker cleared")
	assert.Contains(t, out, `<th class="sorted-asc">Wikidata</th>`)
	assert.Equal(t, 1, strings.Count(out, "sorted-asc\""), "exactly one active marker")
}
