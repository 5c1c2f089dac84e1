package discord

import (
	"github.com/bwmarrin/discordgo"
)

// interactionReplier implements dispatch.Replier over one slash interaction.
// The exactly-once discipline lives in the dispatch guard, not here.
type interactionReplier struct {
	dg          *discordgo.Session
	interaction *discordgo.Interaction
}

func (r *interactionReplier) Reply(content string, ephemeral bool) error {
	return r.dg.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   ephemeralFlags(ephemeral),
		},
	})
}

func (r *interactionReplier) ReplyEmbed(embed *discordgo.MessageEmbed, ephemeral bool) error {
	return r.dg.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  ephemeralFlags(ephemeral),
		},
	})
}

func (r *interactionReplier) Defer() error {
	return r.dg.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

func (r *interactionReplier) Edit(content string) error {
	_, err := r.dg.InteractionResponseEdit(r.interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
	return err
}

// EditPage replaces the response with an embed page and its navigation row
// and reports the underlying message ID, which keys the pagination session.
func (r *interactionReplier) EditPage(embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (string, error) {
	embeds := []*discordgo.MessageEmbed{embed}
	edit := &discordgo.WebhookEdit{Embeds: &embeds}
	if components != nil {
		edit.Components = &components
	}
	msg, err := r.dg.InteractionResponseEdit(r.interaction, edit)
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

func (r *interactionReplier) Followup(content string, ephemeral bool) error {
	_, err := r.dg.FollowupMessageCreate(r.interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   ephemeralFlags(ephemeral),
	})
	return err
}

// Consumed is tracked by the dispatch guard; the raw replier never is.
func (r *interactionReplier) Consumed() bool { return false }

func ephemeralFlags(ephemeral bool) discordgo.MessageFlags {
	if ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}
