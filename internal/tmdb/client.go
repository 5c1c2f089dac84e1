// Package tmdb is a thin client for The Movie Database search API.
package tmdb

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/starlover/watchtower/internal/render"
)

const posterBaseURL = "https://image.tmdb.org/t/p/w500"

// Kind values accepted by Search, matching the TMDB path segments.
const (
	KindMovie = "movie"
	KindTV    = "tv"
)

// Client performs TMDB searches. Outbound requests are paced by a local
// limiter so a burst of search commands cannot hammer the API.
type Client struct {
	http    *resty.Client
	apiKey  string
	limiter *rate.Limiter
	log     *zap.Logger
}

// New returns a client against baseURL (the production API when empty).
func New(baseURL, apiKey string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://api.themoviedb.org/3"
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)

	return &Client{
		http:    httpClient,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Limit(4), 4),
		log:     log,
	}
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Title         string  `json:"title"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	VoteAverage   float64 `json:"vote_average"`
	ReleaseDate   string  `json:"release_date"`
	FirstAirDate  string  `json:"first_air_date"`
	OriginalTitle string  `json:"original_title"`
	OriginalName  string  `json:"original_name"`
}

// Search queries TMDB for movies or TV series matching query. kind is
// KindMovie or KindTV.
func (c *Client) Search(ctx context.Context, query, kind string) ([]render.Item, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key":  c.apiKey,
			"query":    query,
			"language": "en-US",
			"page":     "1",
		}).
		SetResult(&body).
		Get("/search/" + kind)
	if err != nil {
		return nil, fmt.Errorf("tmdb request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tmdb responded %s", resp.Status())
	}

	items := make([]render.Item, 0, len(body.Results))
	for _, r := range body.Results {
		items = append(items, r.toItem(kind))
	}
	c.log.Debug("tmdb search",
		zap.String("query", query),
		zap.String("kind", kind),
		zap.Int("results", len(items)))
	return items, nil
}

func (r searchResult) toItem(kind string) render.Item {
	item := render.Item{
		Overview: r.Overview,
		Rating:   r.VoteAverage,
	}
	if r.PosterPath != "" {
		item.ImageURL = posterBaseURL + r.PosterPath
	}
	if kind == KindTV {
		item.Kind = render.KindSeries
		item.Title = r.Name
		item.Date = r.FirstAirDate
		item.OriginalTitle = r.OriginalName
	} else {
		item.Kind = render.KindMovie
		item.Title = r.Title
		item.Date = r.ReleaseDate
		item.OriginalTitle = r.OriginalTitle
	}
	return item
}
