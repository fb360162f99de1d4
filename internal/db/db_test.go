package db

import (
	"testing"

	"enbyscan/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceAndListItems(t *testing.T) {
	database, err := Open(":memory:")
	require.NoError(t, err)
	defer database.Close()

	items := []model.Item{
		{QID: "Q1", Label: "Alex", Description: "musician", Gender: "non-binary"},
		{QID: "Q2", Label: "Robin", Gender: "genderfluid"},
	}
	sitelinks := []model.Sitelink{
		{QID: "Q1", Project: "enwiki", Title: "Alex"},
		{QID: "Q1", Project: "dewiki", Title: "Alex"},
	}
	require.NoError(t, ReplaceItems(database, items, sitelinks))

	got, err := ListItems(database)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alex", got[0].Label)
	assert.Equal(t, "musician", got[0].Description)
	assert.False(t, got[0].FetchedAt.IsZero())

	links, err := ListSitelinks(database)
	require.NoError(t, err)
	assert.Len(t, links, 2)

	// a second fetch replaces, never accumulates
	require.NoError(t, ReplaceItems(database, items[:1], sitelinks[:1]))
	got, err = ListItems(database)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	links, err = ListSitelinks(database)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestReplaceArticlesIsPerProject(t *testing.T) {
	database, err := Open(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, ReplaceArticles(database, "enwiki", []model.Article{
		{QID: "Q1", Title: "Alex"},
		{QID: "Q2", Title: "Robin"},
	}))
	require.NoError(t, ReplaceArticles(database, "dewiki", []model.Article{
		{QID: "Q1", Title: "Alex"},
	}))

	got, err := ListArticles(database)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// refreshing one project leaves the other alone
	require.NoError(t, ReplaceArticles(database, "enwiki", nil))
	got, err = ListArticles(database)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "dewiki", got[0].Project)
	assert.Equal(t, "Q1", got[0].QID)
	assert.False(t, got[0].FetchedAt.IsZero())
}
