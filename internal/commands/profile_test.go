package commands

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"github.com/starlover/watchtower/internal/dispatch"
)

func TestProfileDefaultsToInvoker(t *testing.T) {
	deps, _, dir := newTestDeps(t)
	dir.members["actor-1"] = &discordgo.Member{
		User:     &discordgo.User{ID: "actor-1", Username: "actor"},
		Nick:     "cap",
		Roles:    []string{"role-1", "role-2"},
		JoinedAt: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	outcome, _, err := invoke(t, profileCommand(deps), dispatch.Args{})

	require.NoError(t, err)
	require.NotNil(t, outcome.Embed)
	require.Equal(t, "actor's Profile", outcome.Embed.Title)

	fields := map[string]string{}
	for _, f := range outcome.Embed.Fields {
		fields[f.Name] = f.Value
	}
	require.Equal(t, "actor-1", fields["🆔 User ID"])
	require.Equal(t, "<@&role-1>, <@&role-2>", fields["🎭 Roles"])
	require.Equal(t, "cap", fields["🏷️ Nickname"])
}

func TestProfileFallbacks(t *testing.T) {
	deps, _, dir := newTestDeps(t)
	dir.members["user-2"] = &discordgo.Member{
		User: &discordgo.User{ID: "user-2", Username: "loner"},
	}

	outcome, _, err := invoke(t, profileCommand(deps), dispatch.Args{"user": "user-2"})

	require.NoError(t, err)
	fields := map[string]string{}
	for _, f := range outcome.Embed.Fields {
		fields[f.Name] = f.Value
	}
	require.Equal(t, "No roles", fields["🎭 Roles"])
	require.Equal(t, "No nickname", fields["🏷️ Nickname"])
}

func TestServerInfoEmbed(t *testing.T) {
	deps, _, dir := newTestDeps(t)
	dir.guild = &discordgo.Guild{
		ID:          "guild-1",
		Name:        "Movie Night",
		OwnerID:     "owner-1",
		MemberCount: 128,
		Roles:       []*discordgo.Role{{ID: "r1"}, {ID: "r2"}},
		Channels:    []*discordgo.Channel{{ID: "c1"}},
	}
	dir.invite = "https://discord.gg/abc123"

	outcome, _, err := invoke(t, serverInfoCommand(deps), dispatch.Args{})

	require.NoError(t, err)
	require.Equal(t, "Movie Night - Server Information", outcome.Embed.Title)
	require.Equal(t, "No server description", outcome.Embed.Description)

	fields := map[string]string{}
	for _, f := range outcome.Embed.Fields {
		fields[f.Name] = f.Value
	}
	require.Equal(t, "128", fields["👥 Total Members"])
	require.Equal(t, "<@owner-1>", fields["👑 Owner"])
	require.Equal(t, "2", fields["📜 Roles"])
	require.Equal(t, "1", fields["💬 Channels"])
	require.Equal(t, "https://discord.gg/abc123", fields["🔗 Primary Invite"])
}

func TestServerInfoNoInviteFallback(t *testing.T) {
	deps, _, dir := newTestDeps(t)
	dir.guild = &discordgo.Guild{ID: "guild-1", Name: "Quiet Place"}

	outcome, _, err := invoke(t, serverInfoCommand(deps), dispatch.Args{})

	require.NoError(t, err)
	fields := map[string]string{}
	for _, f := range outcome.Embed.Fields {
		fields[f.Name] = f.Value
	}
	require.Equal(t, "No invite links available", fields["🔗 Primary Invite"])
}
