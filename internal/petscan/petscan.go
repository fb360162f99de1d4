package petscan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"enbyscan/internal/model"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Client queries the PetScan service for category membership, including
// subcategories.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a PetScan client.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// CategoryMembers fetches every article in the given category tree that has a
// Wikidata item. Results without a title or item are dropped. Transient
// failures are retried with exponential backoff.
func (c *Client) CategoryMembers(ctx context.Context, lang, category string, depth int) ([]model.Article, error) {
	params := url.Values{}
	params.Set("language", lang)
	params.Set("project", "wikipedia")
	params.Set("categories", category)
	params.Set("depth", strconv.Itoa(depth))
	params.Set("format", "json")
	params.Set("ns[0]", "1")
	params.Set("doit", "1")
	params.Set("wikidata_item", "any")
	params.Set("common_wiki", "auto")

	reqURL := fmt.Sprintf("%s/?%s", c.baseURL, params.Encode())
	project := lang + "wiki"

	var payload response
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("request creation failed: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("network error: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("petscan: status %d", resp.StatusCode)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return backoff.Permanent(fmt.Errorf("petscan: status %d", resp.StatusCode))
		}

		payload = response{}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return backoff.Permanent(fmt.Errorf("JSON decode error: %w", err))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("PetScan request failed, retrying",
			zap.String("project", project),
			zap.Duration("backoff", wait),
			zap.Error(err))
	}
	if err := backoff.RetryNotify(operation, backoff.WithMaxRetries(policy, 3), notify); err != nil {
		return nil, fmt.Errorf("petscan %s: %w", project, err)
	}

	var articles []model.Article
	for _, group := range payload.Results {
		for _, page := range group.Combination.Pages {
			if page.Title == "" || page.Metadata.Wikidata == "" {
				continue
			}
			articles = append(articles, model.Article{
				QID:     page.Metadata.Wikidata,
				Project: project,
				Title:   strings.ReplaceAll(page.Title, "_", " "),
			})
		}
	}

	c.logger.Info("PetScan category fetched",
		zap.String("project", project),
		zap.String("category", category),
		zap.Int("articles", len(articles)))
	return articles, nil
}

// PetScan nests its results under "*" keys.

type response struct {
	Results []resultGroup `json:"*"`
}

type resultGroup struct {
	Combination combination `json:"a"`
}

type combination struct {
	Pages []page `json:"*"`
}

type page struct {
	Title    string `json:"title"`
	Metadata struct {
		Wikidata string `json:"wikidata"`
	} `json:"metadata"`
}
