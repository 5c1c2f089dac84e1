package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/starlover/watchtower/internal/dispatch"
)

// purgeLimit is the most messages one purge may delete; larger requests are
// rejected outright, never clamped.
const purgeLimit = 100

func purgeCommand(d *Deps) *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:        "purge",
		Description: "Delete a specific number of messages",
		Args: []dispatch.ArgumentSpec{
			{Name: "amount", Description: "Number of messages to delete", Kind: dispatch.ArgInteger, Required: true},
		},
		RequiredPermissions: discordgo.PermissionManageMessages,
		GuildOnly:           true,
		Handler: func(ctx context.Context, inv *dispatch.Invocation) (*dispatch.Outcome, error) {
			amount := inv.Args.Int("amount")
			if amount < 1 {
				return dispatch.ReplyEphemeral("The amount must be at least 1."), nil
			}
			if amount > purgeLimit {
				return dispatch.ReplyEphemeral(fmt.Sprintf("You can only delete up to %d messages at once.", purgeLimit)), nil
			}

			deleted, err := d.Mod.Purge(inv.ChannelID, int(amount))
			if err != nil {
				return nil, dispatch.Collaborator("delete messages", err)
			}
			return dispatch.ReplyWith(fmt.Sprintf("%d messages have been deleted.", deleted)), nil
		},
	}
}
