package commands

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/starlover/watchtower/internal/dispatch"
	"github.com/starlover/watchtower/internal/render"
)

// helpCommand lists every other registered command.
func helpCommand(others []*dispatch.Descriptor) *dispatch.Descriptor {
	fields := make([]*discordgo.MessageEmbedField, 0, len(others)+1)
	for _, d := range others {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "/" + d.Name,
			Value: d.Description,
		})
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:  "/help",
		Value: "Show this message",
	})

	return &dispatch.Descriptor{
		Name:        "help",
		Description: "List all available commands",
		Handler: func(ctx context.Context, inv *dispatch.Invocation) (*dispatch.Outcome, error) {
			return dispatch.ReplyEmbedWith(&discordgo.MessageEmbed{
				Title:       "Available Commands",
				Description: "Here is a list of commands you can use:",
				Fields:      fields,
				Color:       render.EmbedColor,
			}), nil
		},
	}
}
