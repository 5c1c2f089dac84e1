package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/starlover/watchtower/internal/dispatch"
	"github.com/starlover/watchtower/internal/render"
)

func profileCommand(d *Deps) *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:        "profile",
		Description: "View user profile",
		Args: []dispatch.ArgumentSpec{
			{Name: "user", Description: "The user to view", Kind: dispatch.ArgUser},
		},
		GuildOnly: true,
		Handler: func(ctx context.Context, inv *dispatch.Invocation) (*dispatch.Outcome, error) {
			userID := inv.Args.String("user")
			if userID == "" {
				userID = inv.ActorID
			}

			member, err := d.Dir.Member(inv.GuildID, userID)
			if err != nil {
				return nil, dispatch.Collaborator("fetch the member", err)
			}
			user := member.User
			if user == nil {
				user, err = d.Dir.User(userID)
				if err != nil {
					return nil, dispatch.Collaborator("fetch the user", err)
				}
			}

			roles := make([]string, 0, len(member.Roles))
			for _, roleID := range member.Roles {
				roles = append(roles, "<@&"+roleID+">")
			}
			roleList := strings.Join(roles, ", ")
			if roleList == "" {
				roleList = "No roles"
			}
			nickname := member.Nick
			if nickname == "" {
				nickname = "No nickname"
			}

			created, _ := discordgo.SnowflakeTimestamp(user.ID)
			embed := &discordgo.MessageEmbed{
				Title:     fmt.Sprintf("%s's Profile", user.Username),
				Color:     render.EmbedColor,
				Thumbnail: &discordgo.MessageEmbedThumbnail{URL: user.AvatarURL("1024")},
				Fields: []*discordgo.MessageEmbedField{
					{Name: "🆔 User ID", Value: user.ID, Inline: true},
					{Name: "📅 Account Created", Value: fmt.Sprintf("<t:%d:F>", created.Unix()), Inline: true},
					{Name: "📥 Joined Server", Value: fmt.Sprintf("<t:%d:F>", member.JoinedAt.Unix()), Inline: true},
					{Name: "🎭 Roles", Value: roleList},
					{Name: "🏷️ Nickname", Value: nickname},
				},
			}
			return dispatch.ReplyEmbedWith(embed), nil
		},
	}
}
