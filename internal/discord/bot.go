// Package discord adapts the transport-agnostic command core to the Discord
// gateway: it opens the session, registers slash commands, routes interaction
// events into the executor, and feeds component clicks to the pagination
// manager.
package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/starlover/watchtower/internal/commands"
	"github.com/starlover/watchtower/internal/config"
	"github.com/starlover/watchtower/internal/dispatch"
	"github.com/starlover/watchtower/internal/pagination"
	"github.com/starlover/watchtower/internal/reddit"
	"github.com/starlover/watchtower/internal/render"
	"github.com/starlover/watchtower/internal/storage"
	"github.com/starlover/watchtower/internal/tmdb"
)

// Bot wires the dispatch core and session manager to one gateway connection.
type Bot struct {
	dg       *discordgo.Session
	cfg      *config.Config
	registry *dispatch.Registry
	exec     *dispatch.Executor
	pager    *pagination.Manager
	store    *storage.Storage
	log      *zap.Logger

	runCtx context.Context
}

// New builds the bot: gateway session, collaborators, command registry,
// executor, and pagination manager.
func New(cfg *config.Config, store *storage.Storage, log *zap.Logger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	deps := &commands.Deps{
		Search: tmdb.New(cfg.TMDBBaseURL, cfg.TMDBAPIKey, log.Named("tmdb")),
		Memes:  reddit.New(cfg.MemeURL),
		Mod:    &modActions{dg: dg},
		Dir:    &directory{dg: dg},
		Store:  store,
		Log:    log.Named("commands"),
	}

	registry := dispatch.NewRegistry()
	registry.MustRegister(commands.All(deps)...)

	b := &Bot{
		dg:       dg,
		cfg:      cfg,
		registry: registry,
		exec:     dispatch.NewExecutor(registry, log.Named("dispatch")),
		store:    store,
		log:      log,
	}
	b.pager = pagination.NewManager(cfg.SessionTTL, &pagerRenderer{dg: dg}, log.Named("pagination"))
	return b, nil
}

// Run opens the gateway connection and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.runCtx = ctx

	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildBans |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent

	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onInteractionCreate)
	b.dg.AddHandler(b.onMessageCreate)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	defer b.dg.Close()

	go b.pager.Run(ctx)

	<-ctx.Done()
	b.log.Info("shutdown signal received, closing gateway")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	if err := s.UpdateWatchStatus(0, b.cfg.BotStatus); err != nil {
		b.log.Warn("failed to set presence", zap.Error(err))
	}

	if b.cfg.InitSlashCommands {
		if err := b.registerCommands(); err != nil {
			b.log.Error("slash command registration failed", zap.Error(err))
		}
	} else {
		b.log.Info("slash command registration skipped")
	}

	b.log.Info("bot is running", zap.String("user", r.User.Username))
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(i)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(i)
	}
}

// handleCommand turns a slash interaction into an invocation and dispatches
// it. Multi-item outcomes open a pagination session on the reply message.
func (b *Bot) handleCommand(i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	actor := interactionActor(i)

	var perms int64
	if i.Member != nil {
		perms = i.Member.Permissions
	}

	inv := &dispatch.Invocation{
		ActorID:          actor.ID,
		ActorUsername:    actor.Username,
		ActorPermissions: perms,
		GuildID:          i.GuildID,
		ChannelID:        i.ChannelID,
		Args:             extractArgs(data.Options),
		Replier:          dispatch.GuardReplier(&interactionReplier{dg: b.dg, interaction: i.Interaction}),
		Data:             i,
	}

	outcome, err := b.exec.Dispatch(b.runCtx, data.Name, inv)
	if err != nil {
		return // user already notified, failure already logged
	}

	b.recordHistory(i, actor, data.Name)

	if outcome.Kind == dispatch.OutcomeResultSet {
		b.openSession(i, inv, outcome.Results)
	}
}

// openSession renders page 0 on the interaction response and registers a
// pagination session keyed by the resulting message.
func (b *Bot) openSession(i *discordgo.InteractionCreate, inv *dispatch.Invocation, items []render.Item) {
	if !inv.Replier.Consumed() {
		if err := inv.Replier.Defer(); err != nil {
			b.log.Error("failed to acknowledge before paging", zap.Error(err))
			return
		}
	}

	page := render.PageContext{Index: 0, Total: len(items)}
	messageID, err := inv.Replier.EditPage(render.Page(items[0], page), render.NavRow(page))
	if err != nil {
		b.log.Error("initial page render failed", zap.Error(err))
		return
	}

	if _, err := b.pager.Create(messageID, i.ChannelID, inv.ActorID, items); err != nil {
		b.log.Error("failed to create pagination session",
			zap.String("message", messageID),
			zap.Error(err))
	}
}

// handleComponent routes a navigation click to the session manager. The
// interaction is acknowledged up front; unknown, expired, or foreign
// sessions stay inert from the clicker's point of view.
func (b *Bot) handleComponent(i *discordgo.InteractionCreate) {
	var dir pagination.Direction
	switch i.MessageComponentData().CustomID {
	case render.CustomIDPrev:
		dir = pagination.Prev
	case render.CustomIDNext:
		dir = pagination.Next
	default:
		b.log.Debug("unknown component", zap.String("custom_id", i.MessageComponentData().CustomID))
		return
	}

	if err := b.dg.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		b.log.Warn("failed to acknowledge component", zap.Error(err))
	}

	actor := interactionActor(i)
	_, err := b.pager.Navigate(i.Message.ID, actor.ID, dir)
	switch {
	case errors.Is(err, pagination.ErrSessionNotFound):
		b.log.Debug("navigation on inactive session", zap.String("message", i.Message.ID))
	case errors.Is(err, pagination.ErrNotOwner):
		b.log.Debug("navigation by non-owner",
			zap.String("message", i.Message.ID),
			zap.String("actor", actor.ID))
	case err != nil:
		b.log.Error("navigation failed", zap.String("message", i.Message.ID), zap.Error(err))
	}
}

// onMessageCreate answers the legacy !ping text command.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if strings.TrimSpace(m.Content) != "!ping" {
		return
	}

	sent, err := s.ChannelMessageSend(m.ChannelID, "Calculating ping...")
	if err != nil {
		b.log.Warn("ping reply failed", zap.Error(err))
		return
	}

	sentAt, _ := discordgo.SnowflakeTimestamp(sent.ID)
	latency := sentAt.Sub(m.Timestamp)
	if latency < 0 {
		latency = 0
	}
	content := fmt.Sprintf("Pong! Bot Latency: %dms | API Latency: %dms",
		latency.Milliseconds(), s.HeartbeatLatency().Milliseconds())
	if _, err := s.ChannelMessageEdit(m.ChannelID, sent.ID, content); err != nil {
		b.log.Warn("ping edit failed", zap.Error(err))
	}
}

// recordHistory appends the invocation to the guild's command history.
// Best effort; a storage failure never affects the command result.
func (b *Bot) recordHistory(i *discordgo.InteractionCreate, actor *discordgo.User, command string) {
	if i.GuildID == "" {
		return
	}
	err := b.store.AppendCommandHistory(i.GuildID, storage.CommandRecord{
		ChannelID: i.ChannelID,
		UserID:    actor.ID,
		Username:  actor.Username,
		Command:   command,
		Datetime:  time.Now(),
	})
	if err != nil {
		b.log.Warn("failed to record command history", zap.String("command", command), zap.Error(err))
	}
}

// interactionActor returns the invoking user for guild and DM interactions.
func interactionActor(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	if i.User != nil {
		return i.User
	}
	return &discordgo.User{ID: "unknown", Username: "Unknown"}
}

// extractArgs flattens interaction options into raw argument values. User
// and channel options carry the referenced ID.
func extractArgs(options []*discordgo.ApplicationCommandInteractionDataOption) dispatch.Args {
	args := make(dispatch.Args, len(options))
	for _, opt := range options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionString:
			args[opt.Name] = opt.StringValue()
		case discordgo.ApplicationCommandOptionInteger:
			args[opt.Name] = opt.IntValue()
		case discordgo.ApplicationCommandOptionBoolean:
			args[opt.Name] = opt.BoolValue()
		case discordgo.ApplicationCommandOptionUser:
			args[opt.Name] = opt.UserValue(nil).ID
		case discordgo.ApplicationCommandOptionChannel:
			args[opt.Name] = opt.ChannelValue(nil).ID
		}
	}
	return args
}
