package commands

import (
	"context"

	"github.com/starlover/watchtower/internal/dispatch"
	"github.com/starlover/watchtower/internal/render"
)

func memeCommand(d *Deps) *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:        "meme",
		Description: "Get a meme from Reddit",
		Handler: func(ctx context.Context, inv *dispatch.Invocation) (*dispatch.Outcome, error) {
			item, err := d.Memes.Top(ctx)
			if err != nil {
				return nil, dispatch.Collaborator("fetch meme", err)
			}
			embed := render.Page(item, render.PageContext{Index: 0, Total: 1})
			return dispatch.ReplyEmbedWith(embed), nil
		},
	}
}
