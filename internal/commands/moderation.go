package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/starlover/watchtower/internal/dispatch"
	"github.com/starlover/watchtower/internal/storage"
)

func banCommand(d *Deps) *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:        "ban",
		Description: "Ban a user from the server",
		Args: []dispatch.ArgumentSpec{
			{Name: "user", Description: "The user to ban", Kind: dispatch.ArgUser, Required: true},
		},
		RequiredPermissions: discordgo.PermissionBanMembers,
		GuildOnly:           true,
		Handler: func(ctx context.Context, inv *dispatch.Invocation) (*dispatch.Outcome, error) {
			userID := inv.Args.String("user")
			if err := d.Mod.Ban(inv.GuildID, userID); err != nil {
				return nil, dispatch.Collaborator("ban the user", err)
			}
			return dispatch.ReplyWith(fmt.Sprintf("%s has been banned.", username(d.Dir, userID))), nil
		},
	}
}

func kickCommand(d *Deps) *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:        "kick",
		Description: "Kick a user from the server",
		Args: []dispatch.ArgumentSpec{
			{Name: "user", Description: "The user to kick", Kind: dispatch.ArgUser, Required: true},
			{Name: "reason", Description: "Reason for kicking", Kind: dispatch.ArgString},
		},
		RequiredPermissions: discordgo.PermissionKickMembers,
		GuildOnly:           true,
		Handler: func(ctx context.Context, inv *dispatch.Invocation) (*dispatch.Outcome, error) {
			userID := inv.Args.String("user")
			reason := inv.Args.String("reason")
			if reason == "" {
				reason = "No reason provided"
			}
			if err := d.Mod.Kick(inv.GuildID, userID, reason); err != nil {
				return nil, dispatch.Collaborator("kick the user", err)
			}
			return dispatch.ReplyWith(fmt.Sprintf("%s has been kicked. Reason: %s", username(d.Dir, userID), reason)), nil
		},
	}
}

// unban deliberately takes a plain user ID string: banned users are not
// guild members and cannot be resolved through a user option.
func unbanCommand(d *Deps) *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:        "unban",
		Description: "Unban a user from the server",
		Args: []dispatch.ArgumentSpec{
			{Name: "user", Description: "The ID of the user to unban", Kind: dispatch.ArgString, Required: true},
		},
		RequiredPermissions: discordgo.PermissionBanMembers,
		GuildOnly:           true,
		Handler: func(ctx context.Context, inv *dispatch.Invocation) (*dispatch.Outcome, error) {
			userID := inv.Args.String("user")
			if err := d.Mod.Unban(inv.GuildID, userID); err != nil {
				return nil, dispatch.Collaborator("unban the user", err)
			}
			return dispatch.ReplyWith(fmt.Sprintf("User with ID %s has been unbanned.", userID)), nil
		},
	}
}

func muteCommand(d *Deps) *dispatch.Descriptor {
	return roleToggleCommand(d, "mute", "Mute a user", storage.RoleMuted, "Muted", true, "muted")
}

func unmuteCommand(d *Deps) *dispatch.Descriptor {
	return roleToggleCommand(d, "unmute", "Unmute a user", storage.RoleMuted, "Muted", false, "unmuted")
}

func restrictCommand(d *Deps) *dispatch.Descriptor {
	return roleToggleCommand(d, "restrict", "Restrict a user by adding the restricted role", storage.RoleRestricted, "Restricted", true, "restricted")
}

func unrestrictCommand(d *Deps) *dispatch.Descriptor {
	return roleToggleCommand(d, "unrestrict", "Unrestrict a user by removing the restricted role", storage.RoleRestricted, "Restricted", false, "unrestricted")
}

// roleToggleCommand builds the four role-based moderation commands, which
// differ only in the role they target and whether it is added or removed.
func roleToggleCommand(d *Deps, name, description, roleKind, roleName string, add bool, verb string) *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:        name,
		Description: description,
		Args: []dispatch.ArgumentSpec{
			{Name: "user", Description: "The target user", Kind: dispatch.ArgUser, Required: true},
		},
		RequiredPermissions: discordgo.PermissionManageRoles,
		GuildOnly:           true,
		Handler: func(ctx context.Context, inv *dispatch.Invocation) (*dispatch.Outcome, error) {
			userID := inv.Args.String("user")

			roleID, err := resolveModRole(d, inv.GuildID, roleKind, roleName)
			if err != nil {
				return nil, err
			}

			apply := d.Mod.AddRole
			if !add {
				apply = d.Mod.RemoveRole
			}
			if err := apply(inv.GuildID, userID, roleID); err != nil {
				return nil, dispatch.Collaborator("update the user's roles", err)
			}
			return dispatch.ReplyWith(fmt.Sprintf("%s has been %s.", username(d.Dir, userID), verb)), nil
		},
	}
}

// resolveModRole prefers the per-guild configured role ID, falling back to a
// lookup by the conventional role name.
func resolveModRole(d *Deps, guildID, roleKind, roleName string) (string, error) {
	if roleID, ok := d.Store.ModRole(guildID, roleKind); ok {
		return roleID, nil
	}
	roleID, err := d.Mod.RoleByName(guildID, roleName)
	if err != nil {
		return "", &dispatch.NotFoundError{What: roleName + " role"}
	}
	return roleID, nil
}

func massUnbanCommand(d *Deps) *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:        "massunban",
		Description: "Unban all banned users",
		Args: []dispatch.ArgumentSpec{
			{Name: "confirm", Description: "Confirm mass unban", Kind: dispatch.ArgBoolean, Required: true},
		},
		RequiredPermissions: discordgo.PermissionBanMembers,
		GuildOnly:           true,
		Handler: func(ctx context.Context, inv *dispatch.Invocation) (*dispatch.Outcome, error) {
			if !inv.Args.Bool("confirm") {
				return dispatch.ReplyEphemeral("Operation cancelled."), nil
			}

			bans, err := d.Mod.Bans(inv.GuildID)
			if err != nil {
				return nil, dispatch.Collaborator("fetch the ban list", err)
			}
			if len(bans) == 0 {
				return dispatch.ReplyEphemeral("There are no banned users to unban."), nil
			}

			if err := inv.Replier.Reply(fmt.Sprintf("Starting mass unban of %d users...", len(bans)), true); err != nil {
				return nil, err
			}

			unbanned := 0
			for _, ban := range bans {
				if err := d.Mod.Unban(inv.GuildID, ban.UserID); err != nil {
					d.Log.Warn("mass unban: failed to unban user",
						zap.String("guild", inv.GuildID),
						zap.String("user", ban.UserID))
					continue
				}
				unbanned++
			}

			if err := inv.Replier.Followup(fmt.Sprintf("Successfully unbanned %d users!", unbanned), true); err != nil {
				return nil, dispatch.Collaborator("send the summary", err)
			}
			return dispatch.Deferred(), nil
		},
	}
}
