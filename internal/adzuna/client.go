// Package adzuna is a thin client for the Adzuna job search API. It performs
// single request/response fetches with a timeout and no retries; retry policy
// belongs to the caller.
package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	apiURL         = "https://api.adzuna.com/v1/api"
	defaultPerPage = 30
	defaultCountry = "fr"

	// Source identifies this connector in dedup keys and sheet rows.
	Source = "adzuna"
)

type Client struct {
	appID      string
	appKey     string
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
}

// New creates an Adzuna client authenticated with the given application
// credentials.
func New(logger *zap.Logger, appID, appKey string) *Client {
	return &Client{
		appID:  appID,
		appKey: appKey,
		logger: logger,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SearchParams selects what to fetch.
type SearchParams struct {
	Country        string `mapstructure:"country"`
	Query          string `mapstructure:"query"`
	Page           int    `mapstructure:"page"`
	ResultsPerPage int    `mapstructure:"results-per-page"`
}

type searchResponse struct {
	Results []any `json:"results"`
}

// Search fetches one page of postings matching the params. Items are decoded
// generically first, then mapped onto Posting records, so unknown upstream
// fields never break the fetch.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]*Posting, error) {
	country := params.Country
	if country == "" {
		country = defaultCountry
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	perPage := params.ResultsPerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}

	endpoint := fmt.Sprintf("%s/jobs/%s/search/%d", c.APIURL, country, page)

	q := url.Values{}
	q.Set("app_id", c.appID)
	q.Set("app_key", c.appKey)
	q.Set("what", params.Query)
	q.Set("results_per_page", strconv.Itoa(perPage))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = q.Encode()

	c.logger.Debug("fetching adzuna page",
		zap.String("country", country),
		zap.String("query", params.Query),
		zap.Int("page", page),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna: bad status: %s", resp.Status)
	}

	var response searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("adzuna: decode response: %w", err)
	}

	var postings []*Posting
	cfg := &mapstructure.DecoderConfig{
		Result:  &postings,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(response.Results); err != nil {
		return nil, fmt.Errorf("adzuna: decode postings: %w", err)
	}

	c.logger.Debug("got adzuna postings", zap.Int("count", len(postings)))

	return postings, nil
}
