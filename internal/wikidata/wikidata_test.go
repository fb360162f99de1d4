package wikidata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"enbyscan/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLangs() []config.Language {
	return []config.Language{
		{Code: "en", Name: "English", Category: "Non-binary_people"},
		{Code: "de", Name: "German", Category: "Nichtbinäre_Person"},
	}
}

const sampleResults = `{
  "results": {
    "bindings": [
      {
        "enby": {"type": "uri", "value": "http://www.wikidata.org/entity/Q215200"},
        "enbyLabel": {"type": "literal", "value": "Sam Smith"},
        "enbyDescription": {"type": "literal", "value": "English singer"},
        "gender": {"type": "literal", "value": "non-binary"},
        "enwiki": {"type": "literal", "value": "Sam Smith"}
      },
      {
        "enby": {"type": "uri", "value": "http://www.wikidata.org/entity/Q1234"},
        "enbyLabel": {"type": "literal", "value": "Q1234"},
        "gender": {"type": "literal", "value": "genderfluid"}
      }
    ]
  }
}`

func TestPeopleQuery(t *testing.T) {
	q := peopleQuery(testLangs())
	assert.Contains(t, q, "?enby wdt:P21/wdt:P279* wd:Q48270 .")
	assert.Contains(t, q, "?enwiki")
	assert.Contains(t, q, "?dewiki")
	assert.Contains(t, q, "<https://en.wikipedia.org/>")
	assert.Contains(t, q, "<https://de.wikipedia.org/>")
	assert.Contains(t, q, "group_concat(distinct ?genderLabel")
}

func TestNonBinaryPeople(t *testing.T) {
	var gotAccept, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotQuery = r.URL.Query().Get("query")
		_, _ = w.Write([]byte(sampleResults))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, nil)
	items, sitelinks, err := c.NonBinaryPeople(context.Background(), testLangs())
	require.NoError(t, err)

	assert.Equal(t, "application/sparql-results+json", gotAccept)
	assert.Contains(t, gotQuery, "wd:Q48270")

	require.Len(t, items, 2)
	assert.Equal(t, "Q215200", items[0].QID)
	assert.Equal(t, "Sam Smith", items[0].Label)
	assert.Equal(t, "non-binary", items[0].Gender)

	require.Len(t, sitelinks, 1, "only present sitelinks are returned")
	assert.Equal(t, "Q215200", sitelinks[0].QID)
	assert.Equal(t, "enwiki", sitelinks[0].Project)
}

func TestNonBinaryPeopleServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, nil)
	_, _, err := c.NonBinaryPeople(context.Background(), testLangs())
	assert.Error(t, err)
}

func TestQIDFromURL(t *testing.T) {
	assert.Equal(t, "Q42", QIDFromURL("http://www.wikidata.org/entity/Q42"))
	assert.Equal(t, "Q42", QIDFromURL("https://www.wikidata.org/entity/Q42"))
	assert.Equal(t, "Q42", QIDFromURL("Q42"))
}
