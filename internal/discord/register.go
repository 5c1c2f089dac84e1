package discord

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/starlover/watchtower/internal/dispatch"
)

// createPace keeps registration well under Discord's rate limit.
var createPace = rate.Every(25 * time.Millisecond)

// registerCommands syncs global slash commands with Discord: deletes
// obsolete ones, creates/updates commands whose definition hash changed.
func (b *Bot) registerCommands() error {
	appID, err := b.appID()
	if err != nil {
		return err
	}

	remote, _ := b.dg.ApplicationCommands(appID, "")
	remoteByName := make(map[string]*discordgo.ApplicationCommand, len(remote))
	for _, c := range remote {
		remoteByName[c.Name] = c
	}

	local := b.commandDefinitions()
	b.deleteObsoleteCommands(appID, remoteByName, local)
	b.upsertChangedCommands(appID, local)
	return nil
}

// commandDefinitions converts every registered descriptor into an
// ApplicationCommand definition.
func (b *Bot) commandDefinitions() []*discordgo.ApplicationCommand {
	descriptors := b.registry.All()
	defs := make([]*discordgo.ApplicationCommand, 0, len(descriptors))
	for _, d := range descriptors {
		defs = append(defs, commandDefinition(d))
	}
	return defs
}

func commandDefinition(d *dispatch.Descriptor) *discordgo.ApplicationCommand {
	def := &discordgo.ApplicationCommand{
		Name:        d.Name,
		Description: d.Description,
		Type:        discordgo.ChatApplicationCommand,
	}
	if d.RequiredPermissions != 0 {
		perms := d.RequiredPermissions
		def.DefaultMemberPermissions = &perms
	}
	for _, arg := range d.Args {
		opt := &discordgo.ApplicationCommandOption{
			Name:        arg.Name,
			Description: arg.Description,
			Type:        optionType(arg.Kind),
			Required:    arg.Required,
		}
		for _, v := range arg.Allowed {
			opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  choiceLabel(v),
				Value: v,
			})
		}
		def.Options = append(def.Options, opt)
	}
	return def
}

func optionType(kind dispatch.ArgKind) discordgo.ApplicationCommandOptionType {
	switch kind {
	case dispatch.ArgInteger:
		return discordgo.ApplicationCommandOptionInteger
	case dispatch.ArgBoolean:
		return discordgo.ApplicationCommandOptionBoolean
	case dispatch.ArgUser:
		return discordgo.ApplicationCommandOptionUser
	case dispatch.ArgChannel:
		return discordgo.ApplicationCommandOptionChannel
	default:
		return discordgo.ApplicationCommandOptionString
	}
}

func choiceLabel(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

// deleteObsoleteCommands removes remote commands no longer in the registry.
func (b *Bot) deleteObsoleteCommands(appID string, remote map[string]*discordgo.ApplicationCommand, local []*discordgo.ApplicationCommand) {
	localNames := make(map[string]struct{}, len(local))
	for _, d := range local {
		localNames[d.Name] = struct{}{}
	}

	hashes := loadCommandHashes()
	for name, rc := range remote {
		if _, exists := localNames[name]; exists {
			continue
		}
		b.log.Info("deleting obsolete command", zap.String("command", name))
		if err := b.dg.ApplicationCommandDelete(appID, "", rc.ID); err != nil {
			b.log.Error("failed to delete command", zap.String("command", name), zap.Error(err))
		} else {
			delete(hashes, name)
		}
	}
	saveCommandHashes(hashes)
}

// upsertChangedCommands creates or updates commands whose hash differs from
// the cached value, pacing the API calls.
func (b *Bot) upsertChangedCommands(appID string, defs []*discordgo.ApplicationCommand) {
	cached := loadCommandHashes()

	var changed []*discordgo.ApplicationCommand
	newHashes := make(map[string]string, len(defs))
	for _, d := range defs {
		h := hashCommand(d)
		newHashes[d.Name] = h
		if cached[d.Name] != h {
			changed = append(changed, d)
		}
	}
	if len(changed) == 0 {
		b.log.Info("slash commands up to date", zap.Int("count", len(defs)))
		return
	}

	b.log.Info("registering changed commands", zap.Int("count", len(changed)))
	limiter := rate.NewLimiter(createPace, 1)
	for _, d := range changed {
		if err := limiter.Wait(b.runCtx); err != nil {
			return
		}
		if _, err := b.dg.ApplicationCommandCreate(appID, "", d); err != nil {
			b.log.Error("failed to register command", zap.String("command", d.Name), zap.Error(err))
			delete(newHashes, d.Name)
		} else {
			b.log.Info("registered command", zap.String("command", d.Name))
		}
	}

	merged := loadCommandHashes()
	for k, v := range newHashes {
		merged[k] = v
	}
	saveCommandHashes(merged)
}

// appID returns the application ID, fetching the bot user when the gateway
// state has not populated it yet.
func (b *Bot) appID() (string, error) {
	if b.dg.State != nil && b.dg.State.User != nil && b.dg.State.User.ID != "" {
		return b.dg.State.User.ID, nil
	}
	u, err := b.dg.User("@me")
	if err != nil {
		return "", fmt.Errorf("fetch bot user: %w", err)
	}
	return u.ID, nil
}

// --- Command hash cache ---

func commandHashPath() string {
	return filepath.Join("data", "commands", "global.json")
}

func loadCommandHashes() map[string]string {
	out := make(map[string]string)
	if data, err := os.ReadFile(commandHashPath()); err == nil {
		_ = json.Unmarshal(data, &out)
	}
	return out
}

func saveCommandHashes(hashes map[string]string) {
	path := commandHashPath()
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	if data, err := json.MarshalIndent(hashes, "", "  "); err == nil {
		_ = os.WriteFile(path, data, 0644)
	}
}

// --- Command hashing ---

// hashCommand returns a deterministic SHA-1 of a command's stable fields so
// unchanged commands skip re-registration.
func hashCommand(c *discordgo.ApplicationCommand) string {
	stable := map[string]interface{}{
		"name":        c.Name,
		"description": c.Description,
		"type":        c.Type,
	}
	if c.DefaultMemberPermissions != nil {
		stable["default_member_permissions"] = *c.DefaultMemberPermissions
	}
	if len(c.Options) > 0 {
		stable["options"] = normalizeOptions(c.Options)
	}
	data, _ := json.Marshal(stable)
	sum := sha1.Sum(data)
	return fmt.Sprintf("%x", sum)
}

func normalizeOptions(opts []*discordgo.ApplicationCommandOption) []map[string]interface{} {
	out := make([]map[string]interface{}, len(opts))
	for i, o := range opts {
		entry := map[string]interface{}{
			"name":        o.Name,
			"description": o.Description,
			"type":        o.Type,
			"required":    o.Required,
		}
		if len(o.Choices) > 0 {
			choices := make([]map[string]interface{}, len(o.Choices))
			for j, ch := range o.Choices {
				choices[j] = map[string]interface{}{"name": ch.Name, "value": ch.Value}
			}
			entry["choices"] = choices
		}
		out[i] = entry
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i]["name"].(string) < out[j]["name"].(string)
	})
	return out
}
