package commands

import (
	"context"

	"github.com/starlover/watchtower/internal/dispatch"
)

func searchCommand(d *Deps) *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:        "search",
		Description: "Search for a movie or TV series",
		Args: []dispatch.ArgumentSpec{
			{Name: "title", Description: "The title to search for", Kind: dispatch.ArgString, Required: true},
			{Name: "type", Description: "Type of content to search for", Kind: dispatch.ArgString, Required: true, Allowed: []string{"movie", "tv"}},
		},
		// The search API round-trip can exceed the platform's response
		// window, so the invocation is acknowledged first.
		DeferFirst: true,
		Handler: func(ctx context.Context, inv *dispatch.Invocation) (*dispatch.Outcome, error) {
			query := inv.Args.String("title")
			kind := inv.Args.String("type")

			items, err := d.Search.Search(ctx, query, kind)
			if err != nil {
				return nil, dispatch.Collaborator("fetch search results", err)
			}
			if len(items) == 0 {
				return dispatch.ReplyWith("No results found for that title."), nil
			}
			return dispatch.ReplyResultSet(items), nil
		},
	}
}
