package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"enbyscan/internal/config"
	"enbyscan/internal/model"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const entityPrefix = "http://www.wikidata.org/entity/"

// Client runs SPARQL queries against the Wikidata query service.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a Wikidata SPARQL client.
func New(endpoint string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Query runs a SPARQL query and flattens each result binding to a
// variable-name → value map.
func (c *Client) Query(ctx context.Context, query string) ([]map[string]string, error) {
	reqURL := fmt.Sprintf("%s?query=%s", c.endpoint, url.QueryEscape(query))

	var payload sparqlResponse
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("request creation failed: %w", err))
		}
		req.Header.Set("Accept", "application/sparql-results+json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("network error: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("sparql: status %d", resp.StatusCode)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return backoff.Permanent(fmt.Errorf("sparql: status %d", resp.StatusCode))
		}

		payload = sparqlResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return backoff.Permanent(fmt.Errorf("JSON decode error: %w", err))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("SPARQL request failed, retrying",
			zap.Duration("backoff", wait),
			zap.Error(err))
	}
	if err := backoff.RetryNotify(operation, backoff.WithMaxRetries(policy, 3), notify); err != nil {
		return nil, fmt.Errorf("wikidata query: %w", err)
	}

	rows := make([]map[string]string, 0, len(payload.Results.Bindings))
	for _, binding := range payload.Results.Bindings {
		row := make(map[string]string, len(binding))
		for name, v := range binding {
			row[name] = v.Value
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// NonBinaryPeople fetches every human whose gender is in the subclass tree of
// non-binary (Q48270), with labels, descriptions, grouped gender labels and a
// sitelink per configured language.
func (c *Client) NonBinaryPeople(ctx context.Context, langs []config.Language) ([]model.Item, []model.Sitelink, error) {
	rows, err := c.Query(ctx, peopleQuery(langs))
	if err != nil {
		return nil, nil, err
	}

	var items []model.Item
	var sitelinks []model.Sitelink
	for _, row := range rows {
		qid := QIDFromURL(row["enby"])
		if qid == "" {
			continue
		}
		items = append(items, model.Item{
			QID:         qid,
			Label:       row["enbyLabel"],
			Description: row["enbyDescription"],
			Gender:      row["gender"],
		})
		for _, lang := range langs {
			if title := row[lang.Project()]; title != "" {
				sitelinks = append(sitelinks, model.Sitelink{
					QID:     qid,
					Project: lang.Project(),
					Title:   title,
				})
			}
		}
	}

	c.logger.Info("Wikidata items fetched",
		zap.Int("items", len(items)),
		zap.Int("sitelinks", len(sitelinks)))
	return items, sitelinks, nil
}

// peopleQuery builds the SPARQL query with one sitelink OPTIONAL per
// configured language.
func peopleQuery(langs []config.Language) string {
	var vars strings.Builder
	var optionals strings.Builder
	for _, l := range langs {
		fmt.Fprintf(&vars, " ?%s", l.Project())
		fmt.Fprintf(&optionals, `  OPTIONAL {
    ?enby ^schema:about ?article_%[1]s .
    ?article_%[1]s schema:isPartOf <https://%[1]s.wikipedia.org/>;
                   schema:name ?%[2]s .
  }
`, l.Code, l.Project())
	}

	return fmt.Sprintf(`SELECT DISTINCT ?enby ?enbyLabel ?enbyDescription (group_concat(distinct ?genderLabel;separator=", ") as ?gender)%[1]s WHERE {
  ?enby wdt:P31 wd:Q5 .
  ?enby wdt:P21/wdt:P279* wd:Q48270 .
  ?enby wdt:P21 ?g .
%[2]s  SERVICE wikibase:label { bd:serviceParam wikibase:language "[AUTO_LANGUAGE],mul,en". }
  ?g rdfs:label ?genderLabel FILTER (lang(?genderLabel) = "en") .
} group by ?enby ?enbyLabel ?enbyDescription%[1]s`, vars.String(), optionals.String())
}

// QIDFromURL extracts the item ID from a Wikidata entity URL.
func QIDFromURL(u string) string {
	for _, prefix := range []string{entityPrefix, "https://www.wikidata.org/entity/"} {
		if strings.HasPrefix(u, prefix) {
			return strings.TrimPrefix(u, prefix)
		}
	}
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}

type sparqlResponse struct {
	Results struct {
		Bindings []map[string]sparqlValue `json:"bindings"`
	} `json:"results"`
}

type sparqlValue struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
