package collate

import (
	"testing"

	"enbyscan/internal/config"
	"enbyscan/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLangs() []config.Language {
	return []config.Language{
		{Code: "en", Name: "English", Category: "Non-binary_people"},
		{Code: "de", Name: "German", Category: "Nichtbinäre_Person"},
	}
}

func TestRowsAgreement(t *testing.T) {
	rows := Rows(
		[]model.Item{{QID: "Q1", Label: "Alex", Gender: "non-binary"}},
		[]model.Sitelink{{QID: "Q1", Project: "enwiki", Title: "Alex"}},
		[]model.Article{{QID: "Q1", Project: "enwiki", Title: "Alex"}},
		testLangs(),
	)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Alex", row.Name)
	assert.False(t, row.Error)
	require.Len(t, row.Cells, 3, "one cell per language plus Wikidata")

	assert.Equal(t, model.StatusNonBinary, row.Cells[0].Status)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Alex", row.Cells[0].Link)
	assert.Equal(t, model.StatusMissing, row.Cells[1].Status)
	assert.Equal(t, "no article", row.Cells[1].Text)
	assert.Equal(t, model.StatusNonBinary, row.Cells[2].Status)
	assert.Equal(t, "non-binary", row.Cells[2].Text)
	assert.Equal(t, "https://www.wikidata.org/wiki/Q1", row.Cells[2].Link)
}

func TestRowsArticleOutsideCategory(t *testing.T) {
	// sitelink exists, but the article is not in the tracked category
	rows := Rows(
		[]model.Item{{QID: "Q1", Label: "Alex", Gender: "non-binary"}},
		[]model.Sitelink{{QID: "Q1", Project: "dewiki", Title: "Alex"}},
		nil,
		testLangs(),
	)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.True(t, row.Error)
	assert.Equal(t, model.StatusWrong, row.Cells[1].Status)
	assert.Equal(t, "wrong gender?", row.Cells[1].Text)
	assert.NotEmpty(t, row.Cells[1].Link)
}

func TestRowsCategoryOnlyPerson(t *testing.T) {
	// outer join: category hit without any Wikidata item still gets a row
	rows := Rows(
		nil,
		nil,
		[]model.Article{{QID: "Q9", Project: "enwiki", Title: "Robin Doe"}},
		testLangs(),
	)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Robin Doe", row.Name, "name falls back to the article title")
	assert.True(t, row.Error)
	assert.Equal(t, model.StatusNonBinary, row.Cells[0].Status)
	assert.Equal(t, model.StatusWrong, row.Cells[2].Status, "missing item flags the Wikidata cell")
}

func TestRowsItemWithoutGender(t *testing.T) {
	rows := Rows(
		[]model.Item{{QID: "Q1", Label: "Alex"}},
		nil, nil,
		testLangs(),
	)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Error)
	assert.Equal(t, model.StatusWrong, rows[0].Cells[2].Status)
}

func TestRowsSortedByName(t *testing.T) {
	rows := Rows(
		[]model.Item{
			{QID: "Q2", Label: "zoe", Gender: "non-binary"},
			{QID: "Q3", Label: "Ari", Gender: "non-binary"},
			{QID: "Q1", Label: "ari", Gender: "non-binary"},
		},
		nil, nil,
		testLangs(),
	)
	require.Len(t, rows, 3)
	assert.Equal(t, "Q1", rows[0].QID, "case-insensitive name order, QID breaks ties")
	assert.Equal(t, "Q3", rows[1].QID)
	assert.Equal(t, "zoe", rows[2].Name)
}

func TestArticleURLEscapesTitle(t *testing.T) {
	assert.Equal(t, "https://en.wikipedia.org/wiki/Sam_Smith", articleURL("en", "Sam Smith"))
}
