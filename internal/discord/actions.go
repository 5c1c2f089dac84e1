package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/starlover/watchtower/internal/commands"
	"github.com/starlover/watchtower/internal/dispatch"
)

// modActions implements commands.Moderator over the gateway session.
type modActions struct {
	dg *discordgo.Session
}

func (m *modActions) Ban(guildID, userID string) error {
	return m.dg.GuildBanCreate(guildID, userID, 0)
}

func (m *modActions) Unban(guildID, userID string) error {
	return m.dg.GuildBanDelete(guildID, userID)
}

func (m *modActions) Kick(guildID, userID, reason string) error {
	return m.dg.GuildMemberDeleteWithReason(guildID, userID, reason)
}

func (m *modActions) Bans(guildID string) ([]commands.BanEntry, error) {
	bans, err := m.dg.GuildBans(guildID, 1000, "", "")
	if err != nil {
		return nil, err
	}
	entries := make([]commands.BanEntry, 0, len(bans))
	for _, b := range bans {
		if b.User == nil {
			continue
		}
		entries = append(entries, commands.BanEntry{UserID: b.User.ID, Username: b.User.Username})
	}
	return entries, nil
}

func (m *modActions) AddRole(guildID, userID, roleID string) error {
	return m.dg.GuildMemberRoleAdd(guildID, userID, roleID)
}

func (m *modActions) RemoveRole(guildID, userID, roleID string) error {
	return m.dg.GuildMemberRoleRemove(guildID, userID, roleID)
}

func (m *modActions) RoleByName(guildID, name string) (string, error) {
	roles, err := m.dg.GuildRoles(guildID)
	if err != nil {
		return "", err
	}
	for _, role := range roles {
		if strings.EqualFold(role.Name, name) {
			return role.ID, nil
		}
	}
	return "", &dispatch.NotFoundError{What: name + " role"}
}

// Purge bulk-deletes the most recent messages in a channel. Discord's bulk
// endpoint skips messages older than two weeks.
func (m *modActions) Purge(channelID string, amount int) (int, error) {
	msgs, err := m.dg.ChannelMessages(channelID, amount, "", "", "")
	if err != nil {
		return 0, err
	}
	if len(msgs) == 0 {
		return 0, nil
	}
	ids := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		ids = append(ids, msg.ID)
	}
	if err := m.dg.ChannelMessagesBulkDelete(channelID, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// directory implements commands.Directory over the gateway session.
type directory struct {
	dg *discordgo.Session
}

func (d *directory) User(userID string) (*discordgo.User, error) {
	return d.dg.User(userID)
}

func (d *directory) Member(guildID, userID string) (*discordgo.Member, error) {
	return d.dg.GuildMember(guildID, userID)
}

func (d *directory) Guild(guildID string) (*discordgo.Guild, error) {
	if g, err := d.dg.State.Guild(guildID); err == nil {
		return g, nil
	}
	return d.dg.Guild(guildID)
}

func (d *directory) GuildInvite(guildID string) (string, error) {
	invites, err := d.dg.GuildInvites(guildID)
	if err != nil {
		return "", err
	}
	if len(invites) == 0 {
		return "", nil
	}
	return "https://discord.gg/" + invites[0].Code, nil
}

func (d *directory) Message(channelID, messageID string) (*discordgo.Message, error) {
	return d.dg.ChannelMessage(channelID, messageID)
}

func (d *directory) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	_, err := d.dg.ChannelMessageSendEmbed(channelID, embed)
	return err
}

func (d *directory) EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) error {
	_, err := d.dg.ChannelMessageEditEmbed(channelID, messageID, embed)
	return err
}
