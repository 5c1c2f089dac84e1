package dispatch

import (
	"github.com/bwmarrin/discordgo"

	"github.com/starlover/watchtower/internal/render"
)

// OutcomeKind tags what a handler produced.
type OutcomeKind int

const (
	// OutcomeReply is a single text or embed response.
	OutcomeReply OutcomeKind = iota
	// OutcomeResultSet is a multi-item result the adapter should hand to
	// the pagination session manager.
	OutcomeResultSet
	// OutcomeDeferred means the handler replied through the replier
	// itself; the executor sends nothing further.
	OutcomeDeferred
)

// Outcome is the successful result of a handler invocation.
type Outcome struct {
	Kind      OutcomeKind
	Content   string
	Embed     *discordgo.MessageEmbed
	Ephemeral bool
	Results   []render.Item
}

// ReplyWith returns a plain text reply outcome.
func ReplyWith(content string) *Outcome {
	return &Outcome{Kind: OutcomeReply, Content: content}
}

// ReplyEphemeral returns a text reply only the invoking actor sees.
func ReplyEphemeral(content string) *Outcome {
	return &Outcome{Kind: OutcomeReply, Content: content, Ephemeral: true}
}

// ReplyEmbedWith returns an embed reply outcome.
func ReplyEmbedWith(embed *discordgo.MessageEmbed) *Outcome {
	return &Outcome{Kind: OutcomeReply, Embed: embed}
}

// ReplyResultSet returns a multi-item outcome for pagination.
func ReplyResultSet(items []render.Item) *Outcome {
	return &Outcome{Kind: OutcomeResultSet, Results: items}
}

// Deferred marks the handler as having managed its own replies.
func Deferred() *Outcome {
	return &Outcome{Kind: OutcomeDeferred}
}
