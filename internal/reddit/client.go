// Package reddit fetches the current top post of a subreddit listing.
package reddit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/starlover/watchtower/internal/render"
)

// ErrNoPosts means the listing came back empty.
var ErrNoPosts = errors.New("no posts in listing")

// Client fetches memes from a Reddit listing URL.
type Client struct {
	http *resty.Client
	url  string
}

// New returns a client for the given listing URL (top of /r/memes when empty).
func New(listingURL string) *Client {
	if listingURL == "" {
		listingURL = "https://www.reddit.com/r/memes/top.json?limit=1"
	}
	return &Client{
		http: resty.New().
			SetTimeout(10 * time.Second).
			SetHeader("User-Agent", "watchtower-bot"),
		url: listingURL,
	}
}

type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title string `json:"title"`
				URL   string `json:"url"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Top returns the first post of the listing as a renderable item.
func (c *Client) Top(ctx context.Context) (render.Item, error) {
	var body listing
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		Get(c.url)
	if err != nil {
		return render.Item{}, fmt.Errorf("reddit request: %w", err)
	}
	if resp.IsError() {
		return render.Item{}, fmt.Errorf("reddit responded %s", resp.Status())
	}
	if len(body.Data.Children) == 0 {
		return render.Item{}, ErrNoPosts
	}

	post := body.Data.Children[0].Data
	return render.Item{
		Kind:       render.KindMeme,
		Title:      post.Title,
		ImageURL:   post.URL,
		SourceNote: "From Reddit /r/memes",
	}, nil
}
