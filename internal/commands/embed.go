package commands

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/starlover/watchtower/internal/dispatch"
	"github.com/starlover/watchtower/internal/render"
)

func embedCreateCommand(d *Deps) *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:        "embedcreate",
		Description: "Create and send an embed to a specific channel",
		Args: []dispatch.ArgumentSpec{
			{Name: "channel", Description: "The channel to send the embed to", Kind: dispatch.ArgChannel, Required: true},
			{Name: "title", Description: "The title of the embed", Kind: dispatch.ArgString, Required: true},
			{Name: "description", Description: "The description of the embed", Kind: dispatch.ArgString, Required: true},
		},
		RequiredPermissions: discordgo.PermissionManageMessages,
		GuildOnly:           true,
		Handler: func(ctx context.Context, inv *dispatch.Invocation) (*dispatch.Outcome, error) {
			embed := &discordgo.MessageEmbed{
				Title:       inv.Args.String("title"),
				Description: inv.Args.String("description"),
				Color:       render.EmbedColor,
				Timestamp:   time.Now().Format(time.RFC3339),
			}
			if err := d.Dir.SendEmbed(inv.Args.String("channel"), embed); err != nil {
				return nil, dispatch.Collaborator("send the embed", err)
			}
			return dispatch.ReplyEphemeral("Embed created successfully!"), nil
		},
	}
}

func embedEditCommand(d *Deps) *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:        "embededit",
		Description: "Edit an existing embed",
		Args: []dispatch.ArgumentSpec{
			{Name: "messagelink", Description: "The link to the message containing the embed", Kind: dispatch.ArgString, Required: true},
			{Name: "title", Description: "The new title", Kind: dispatch.ArgString},
			{Name: "description", Description: "The new description", Kind: dispatch.ArgString},
		},
		RequiredPermissions: discordgo.PermissionManageMessages,
		GuildOnly:           true,
		Handler: func(ctx context.Context, inv *dispatch.Invocation) (*dispatch.Outcome, error) {
			channelID, messageID, ok := parseMessageLink(inv.Args.String("messagelink"))
			if !ok {
				return nil, &dispatch.ValidationError{Problems: []dispatch.ArgProblem{
					{Field: "messagelink", Reason: "not a valid message link"},
				}}
			}

			message, err := d.Dir.Message(channelID, messageID)
			if err != nil {
				return nil, dispatch.Collaborator("fetch the message", err)
			}
			if len(message.Embeds) == 0 {
				return dispatch.ReplyEphemeral("No embed found in the specified message."), nil
			}

			original := message.Embeds[0]
			updated := &discordgo.MessageEmbed{
				Title:       original.Title,
				Description: original.Description,
				Color:       render.EmbedColor,
				Timestamp:   time.Now().Format(time.RFC3339),
			}
			if title := inv.Args.String("title"); title != "" {
				updated.Title = title
			}
			if description := inv.Args.String("description"); description != "" {
				updated.Description = description
			}

			if err := d.Dir.EditEmbed(channelID, messageID, updated); err != nil {
				return nil, dispatch.Collaborator("edit the embed", err)
			}
			return dispatch.ReplyEphemeral("Embed updated successfully!"), nil
		},
	}
}

// parseMessageLink extracts the channel and message IDs from a Discord
// message link (…/channels/<guild>/<channel>/<message>).
func parseMessageLink(link string) (channelID, messageID string, ok bool) {
	parts := strings.Split(strings.TrimSuffix(link, "/"), "/")
	if len(parts) < 3 {
		return "", "", false
	}
	channelID = parts[len(parts)-2]
	messageID = parts[len(parts)-1]
	if !isSnowflake(channelID) || !isSnowflake(messageID) {
		return "", "", false
	}
	return channelID, messageID, true
}

func isSnowflake(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
