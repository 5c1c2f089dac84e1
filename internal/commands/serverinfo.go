package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/starlover/watchtower/internal/dispatch"
	"github.com/starlover/watchtower/internal/render"
)

func serverInfoCommand(d *Deps) *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:        "serverinfo",
		Description: "Display detailed server information",
		GuildOnly:   true,
		Handler: func(ctx context.Context, inv *dispatch.Invocation) (*dispatch.Outcome, error) {
			guild, err := d.Dir.Guild(inv.GuildID)
			if err != nil {
				return nil, dispatch.Collaborator("fetch server information", err)
			}

			invite, err := d.Dir.GuildInvite(inv.GuildID)
			if err != nil || invite == "" {
				invite = "No invite links available"
			}

			created, _ := discordgo.SnowflakeTimestamp(guild.ID)
			description := guild.Description
			if description == "" {
				description = "No server description"
			}

			embed := &discordgo.MessageEmbed{
				Title:       fmt.Sprintf("%s - Server Information", guild.Name),
				Description: description,
				Color:       render.EmbedColor,
				Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: guild.IconURL("1024")},
				Fields: []*discordgo.MessageEmbedField{
					{Name: "👥 Total Members", Value: fmt.Sprintf("%d", guild.MemberCount), Inline: true},
					{Name: "👑 Owner", Value: "<@" + guild.OwnerID + ">", Inline: true},
					{Name: "🌐 Server ID", Value: guild.ID, Inline: true},
					{Name: "📅 Created At", Value: fmt.Sprintf("<t:%d:F>", created.Unix()), Inline: true},
					{Name: "💬 Channels", Value: fmt.Sprintf("%d", len(guild.Channels)), Inline: true},
					{Name: "📜 Roles", Value: fmt.Sprintf("%d", len(guild.Roles)), Inline: true},
					{Name: "🔗 Primary Invite", Value: invite, Inline: true},
				},
			}
			return dispatch.ReplyEmbedWith(embed), nil
		},
	}
}
