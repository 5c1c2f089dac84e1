package reddit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starlover/watchtower/internal/render"
)

func TestTopReturnsFirstPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"children":[
			{"data":{"title":"First meme","url":"https://i.redd.it/a.png"}},
			{"data":{"title":"Second meme","url":"https://i.redd.it/b.png"}}
		]}}`))
	}))
	defer srv.Close()

	item, err := New(srv.URL).Top(context.Background())

	require.NoError(t, err)
	require.Equal(t, render.KindMeme, item.Kind)
	require.Equal(t, "First meme", item.Title)
	require.Equal(t, "https://i.redd.it/a.png", item.ImageURL)
	require.Equal(t, "From Reddit /r/memes", item.SourceNote)
}

func TestTopEmptyListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"children":[]}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Top(context.Background())
	require.ErrorIs(t, err, ErrNoPosts)
}

func TestTopServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Top(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "reddit responded")
}
