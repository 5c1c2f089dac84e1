package dispatch

import (
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// Decision is the result of an authorization check.
type Decision struct {
	Allowed bool
	// Missing holds the permission bits the actor lacks when denied.
	Missing int64
}

// Authorize checks whether an actor's permission bitmask covers every
// permission the descriptor requires. Pure and side-effect free.
func Authorize(actorPermissions int64, d *Descriptor) Decision {
	missing := d.RequiredPermissions &^ actorPermissions
	return Decision{Allowed: missing == 0, Missing: missing}
}

var permissionNames = map[int64]string{
	discordgo.PermissionKickMembers:            "Kick Members",
	discordgo.PermissionBanMembers:             "Ban Members",
	discordgo.PermissionAdministrator:          "Administrator",
	discordgo.PermissionManageChannels:         "Manage Channels",
	discordgo.PermissionManageGuild:            "Manage Server",
	discordgo.PermissionViewChannel:            "View Channel",
	discordgo.PermissionSendMessages:           "Send Messages",
	discordgo.PermissionManageMessages:         "Manage Messages",
	discordgo.PermissionEmbedLinks:             "Embed Links",
	discordgo.PermissionAttachFiles:            "Attach Files",
	discordgo.PermissionReadMessageHistory:     "Read Message History",
	discordgo.PermissionMentionEveryone:        "Mention Everyone",
	discordgo.PermissionUseApplicationCommands: "Use Application Commands",
	discordgo.PermissionManageNicknames:        "Manage Nicknames",
	discordgo.PermissionManageRoles:            "Manage Roles",
	discordgo.PermissionManageWebhooks:         "Manage Webhooks",
	discordgo.PermissionModerateMembers:        "Moderate Members",
}

// PermissionNames expands a permission bitmask into sorted human-readable
// names. Bits without a known name render as hex.
func PermissionNames(mask int64) []string {
	var names []string
	for shift := 0; shift < 63; shift++ {
		bit := int64(1) << shift
		if mask&bit == 0 {
			continue
		}
		if name, ok := permissionNames[bit]; ok {
			names = append(names, name)
		} else {
			names = append(names, fmt.Sprintf("0x%x", bit))
		}
	}
	sort.Strings(names)
	return names
}
