// Package commands defines the bot's command surface. Handlers are built on
// narrow collaborator capabilities injected at construction, so the command
// logic never touches the gateway session directly.
package commands

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/starlover/watchtower/internal/dispatch"
	"github.com/starlover/watchtower/internal/render"
	"github.com/starlover/watchtower/internal/storage"
)

// Searcher finds movies or TV series matching a query.
type Searcher interface {
	Search(ctx context.Context, query, kind string) ([]render.Item, error)
}

// MemeSource fetches a single meme item.
type MemeSource interface {
	Top(ctx context.Context) (render.Item, error)
}

// BanEntry is one banned user of a guild.
type BanEntry struct {
	UserID   string
	Username string
}

// Moderator performs guild moderation actions.
type Moderator interface {
	Ban(guildID, userID string) error
	Unban(guildID, userID string) error
	Kick(guildID, userID, reason string) error
	Bans(guildID string) ([]BanEntry, error)
	AddRole(guildID, userID, roleID string) error
	RemoveRole(guildID, userID, roleID string) error
	// RoleByName resolves a role ID by its display name.
	RoleByName(guildID, name string) (string, error)
	// Purge bulk-deletes up to amount recent messages in a channel and
	// reports how many were removed.
	Purge(channelID string, amount int) (int, error)
}

// Directory reads users, members, guilds, and messages, and sends embeds to
// arbitrary channels.
type Directory interface {
	User(userID string) (*discordgo.User, error)
	Member(guildID, userID string) (*discordgo.Member, error)
	Guild(guildID string) (*discordgo.Guild, error)
	GuildInvite(guildID string) (string, error)
	Message(channelID, messageID string) (*discordgo.Message, error)
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) error
	EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) error
}

// Deps bundles every collaborator the command surface needs.
type Deps struct {
	Search Searcher
	Memes  MemeSource
	Mod    Moderator
	Dir    Directory
	Store  *storage.Storage
	Log    *zap.Logger
}

// All returns the full command surface as descriptors ready for
// registration. The help command is assembled last so it can list the rest.
func All(d *Deps) []*dispatch.Descriptor {
	list := []*dispatch.Descriptor{
		searchCommand(d),
		memeCommand(d),
		banCommand(d),
		kickCommand(d),
		profileCommand(d),
		unbanCommand(d),
		muteCommand(d),
		unmuteCommand(d),
		restrictCommand(d),
		unrestrictCommand(d),
		purgeCommand(d),
		embedCreateCommand(d),
		embedEditCommand(d),
		massUnbanCommand(d),
		serverInfoCommand(d),
	}
	list = append(list, helpCommand(list))
	return list
}

// username resolves a display name for a user ID, falling back to the raw ID
// when the lookup fails.
func username(dir Directory, userID string) string {
	u, err := dir.User(userID)
	if err != nil || u == nil {
		return userID
	}
	return u.Username
}
