package commands

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/starlover/watchtower/internal/dispatch"
	"github.com/starlover/watchtower/internal/render"
	"github.com/starlover/watchtower/internal/storage"
)

// --- Collaborator fakes ---

type fakeSearcher struct {
	items []render.Item
	err   error
}

func (f *fakeSearcher) Search(ctx context.Context, query, kind string) ([]render.Item, error) {
	return f.items, f.err
}

type fakeMemes struct {
	item render.Item
	err  error
}

func (f *fakeMemes) Top(ctx context.Context) (render.Item, error) {
	return f.item, f.err
}

type roleChange struct {
	userID string
	roleID string
}

type fakeMod struct {
	banned       []string
	unbanned     []string
	kicked       map[string]string
	bans         []BanEntry
	bansErr      error
	unbanErr     map[string]error
	rolesAdded   []roleChange
	rolesRemoved []roleChange
	roleByName   map[string]string
	purged       []int
	purgeErr     error
}

func newFakeMod() *fakeMod {
	return &fakeMod{
		kicked:     make(map[string]string),
		unbanErr:   make(map[string]error),
		roleByName: make(map[string]string),
	}
}

func (f *fakeMod) Ban(guildID, userID string) error {
	f.banned = append(f.banned, userID)
	return nil
}

func (f *fakeMod) Unban(guildID, userID string) error {
	if err := f.unbanErr[userID]; err != nil {
		return err
	}
	f.unbanned = append(f.unbanned, userID)
	return nil
}

func (f *fakeMod) Kick(guildID, userID, reason string) error {
	f.kicked[userID] = reason
	return nil
}

func (f *fakeMod) Bans(guildID string) ([]BanEntry, error) {
	return f.bans, f.bansErr
}

func (f *fakeMod) AddRole(guildID, userID, roleID string) error {
	f.rolesAdded = append(f.rolesAdded, roleChange{userID: userID, roleID: roleID})
	return nil
}

func (f *fakeMod) RemoveRole(guildID, userID, roleID string) error {
	f.rolesRemoved = append(f.rolesRemoved, roleChange{userID: userID, roleID: roleID})
	return nil
}

func (f *fakeMod) RoleByName(guildID, name string) (string, error) {
	if id, ok := f.roleByName[name]; ok {
		return id, nil
	}
	return "", errors.New("role not found")
}

func (f *fakeMod) Purge(channelID string, amount int) (int, error) {
	if f.purgeErr != nil {
		return 0, f.purgeErr
	}
	f.purged = append(f.purged, amount)
	return amount, nil
}

type sentEmbed struct {
	channelID string
	messageID string
	embed     *discordgo.MessageEmbed
}

type fakeDir struct {
	users    map[string]*discordgo.User
	members  map[string]*discordgo.Member
	guild    *discordgo.Guild
	invite   string
	messages map[string]*discordgo.Message
	sent     []sentEmbed
	edited   []sentEmbed
}

func newFakeDir() *fakeDir {
	return &fakeDir{
		users:    make(map[string]*discordgo.User),
		members:  make(map[string]*discordgo.Member),
		messages: make(map[string]*discordgo.Message),
	}
}

func (f *fakeDir) User(userID string) (*discordgo.User, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, errors.New("unknown user")
}

func (f *fakeDir) Member(guildID, userID string) (*discordgo.Member, error) {
	if m, ok := f.members[userID]; ok {
		return m, nil
	}
	return nil, errors.New("unknown member")
}

func (f *fakeDir) Guild(guildID string) (*discordgo.Guild, error) {
	if f.guild == nil {
		return nil, errors.New("unknown guild")
	}
	return f.guild, nil
}

func (f *fakeDir) GuildInvite(guildID string) (string, error) {
	return f.invite, nil
}

func (f *fakeDir) Message(channelID, messageID string) (*discordgo.Message, error) {
	if m, ok := f.messages[messageID]; ok {
		return m, nil
	}
	return nil, errors.New("unknown message")
}

func (f *fakeDir) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	f.sent = append(f.sent, sentEmbed{channelID: channelID, embed: embed})
	return nil
}

func (f *fakeDir) EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) error {
	f.edited = append(f.edited, sentEmbed{channelID: channelID, messageID: messageID, embed: embed})
	return nil
}

// cmdReplier records handler-driven replies for commands that manage their
// own response flow.
type cmdReplier struct {
	replies   []string
	followups []string
}

func (r *cmdReplier) Reply(content string, ephemeral bool) error {
	r.replies = append(r.replies, content)
	return nil
}

func (r *cmdReplier) ReplyEmbed(embed *discordgo.MessageEmbed, ephemeral bool) error {
	return nil
}

func (r *cmdReplier) Defer() error { return nil }

func (r *cmdReplier) Edit(content string) error { return nil }

func (r *cmdReplier) EditPage(embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (string, error) {
	return "msg-1", nil
}

func (r *cmdReplier) Followup(content string, ephemeral bool) error {
	r.followups = append(r.followups, content)
	return nil
}

func (r *cmdReplier) Consumed() bool { return false }

// --- Test wiring ---

func newTestDeps(t *testing.T) (*Deps, *fakeMod, *fakeDir) {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	mod := newFakeMod()
	dir := newFakeDir()
	deps := &Deps{
		Search: &fakeSearcher{},
		Memes:  &fakeMemes{},
		Mod:    mod,
		Dir:    dir,
		Store:  store,
		Log:    zap.NewNop(),
	}
	return deps, mod, dir
}

func invoke(t *testing.T, d *dispatch.Descriptor, args dispatch.Args) (*dispatch.Outcome, *cmdReplier, error) {
	t.Helper()
	rec := &cmdReplier{}
	inv := &dispatch.Invocation{
		ActorID:       "actor-1",
		ActorUsername: "actor",
		GuildID:       "guild-1",
		ChannelID:     "chan-1",
		Args:          args,
		Replier:       dispatch.GuardReplier(rec),
	}
	outcome, err := d.Handler(context.Background(), inv)
	return outcome, rec, err
}

func TestAllRegistersFullSurface(t *testing.T) {
	deps, _, _ := newTestDeps(t)
	all := All(deps)

	names := make(map[string]bool, len(all))
	for _, d := range all {
		names[d.Name] = true
	}
	for _, want := range []string{
		"search", "meme", "help", "ban", "kick", "profile", "unban",
		"mute", "unmute", "restrict", "unrestrict", "purge",
		"embedcreate", "embededit", "massunban", "serverinfo",
	} {
		require.True(t, names[want], "missing command %s", want)
	}
	require.Len(t, all, 16)
}

func TestSearchNoResults(t *testing.T) {
	deps, _, _ := newTestDeps(t)
	outcome, _, err := invoke(t, searchCommand(deps), dispatch.Args{"title": "zzzz", "type": "movie"})

	require.NoError(t, err)
	require.Equal(t, dispatch.OutcomeReply, outcome.Kind)
	require.Equal(t, "No results found for that title.", outcome.Content)
}

func TestSearchReturnsResultSet(t *testing.T) {
	deps, _, _ := newTestDeps(t)
	deps.Search = &fakeSearcher{items: []render.Item{
		{Kind: render.KindMovie, Title: "Dune"},
		{Kind: render.KindMovie, Title: "Dune: Part Two"},
	}}

	outcome, _, err := invoke(t, searchCommand(deps), dispatch.Args{"title": "dune", "type": "movie"})

	require.NoError(t, err)
	require.Equal(t, dispatch.OutcomeResultSet, outcome.Kind)
	require.Len(t, outcome.Results, 2)
}

func TestSearchCollaboratorFailure(t *testing.T) {
	deps, _, _ := newTestDeps(t)
	deps.Search = &fakeSearcher{err: errors.New("api down")}

	_, _, err := invoke(t, searchCommand(deps), dispatch.Args{"title": "dune", "type": "movie"})

	var cerr *dispatch.CollaboratorError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, "fetch search results", cerr.Op)
}

func TestMemeRendersEmbed(t *testing.T) {
	deps, _, _ := newTestDeps(t)
	deps.Memes = &fakeMemes{item: render.Item{
		Kind:       render.KindMeme,
		Title:      "It works on my machine",
		ImageURL:   "https://i.redd.it/meme.png",
		SourceNote: "From Reddit /r/memes",
	}}

	outcome, _, err := invoke(t, memeCommand(deps), dispatch.Args{})

	require.NoError(t, err)
	require.NotNil(t, outcome.Embed)
	require.Equal(t, "It works on my machine", outcome.Embed.Title)
	require.Equal(t, "From Reddit /r/memes", outcome.Embed.Footer.Text)
}

func TestHelpListsEveryCommand(t *testing.T) {
	deps, _, _ := newTestDeps(t)
	all := All(deps)

	var help *dispatch.Descriptor
	for _, d := range all {
		if d.Name == "help" {
			help = d
		}
	}
	require.NotNil(t, help)

	outcome, _, err := invoke(t, help, dispatch.Args{})
	require.NoError(t, err)
	require.NotNil(t, outcome.Embed)
	require.Equal(t, "Available Commands", outcome.Embed.Title)
	require.Len(t, outcome.Embed.Fields, len(all))
}
