package dispatch

import (
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
)

// onceReplier enforces the exactly-once first-reply contract around a
// transport replier. A second Reply/Defer fails fast with ErrDoubleReply;
// edits and followups before the first reply fail with ErrNoFirstReply.
type onceReplier struct {
	inner    Replier
	consumed atomic.Bool
}

// GuardReplier wraps r with the exactly-once first-reply guard. Adapters
// wrap their transport replier once per invocation.
func GuardReplier(r Replier) Replier {
	return &onceReplier{inner: r}
}

func (o *onceReplier) take() error {
	if !o.consumed.CompareAndSwap(false, true) {
		return ErrDoubleReply
	}
	return nil
}

func (o *onceReplier) Reply(content string, ephemeral bool) error {
	if err := o.take(); err != nil {
		return err
	}
	return o.inner.Reply(content, ephemeral)
}

func (o *onceReplier) ReplyEmbed(embed *discordgo.MessageEmbed, ephemeral bool) error {
	if err := o.take(); err != nil {
		return err
	}
	return o.inner.ReplyEmbed(embed, ephemeral)
}

func (o *onceReplier) Defer() error {
	if err := o.take(); err != nil {
		return err
	}
	return o.inner.Defer()
}

func (o *onceReplier) Edit(content string) error {
	if !o.consumed.Load() {
		return ErrNoFirstReply
	}
	return o.inner.Edit(content)
}

func (o *onceReplier) EditPage(embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (string, error) {
	if !o.consumed.Load() {
		return "", ErrNoFirstReply
	}
	return o.inner.EditPage(embed, components)
}

func (o *onceReplier) Followup(content string, ephemeral bool) error {
	if !o.consumed.Load() {
		return ErrNoFirstReply
	}
	return o.inner.Followup(content, ephemeral)
}

func (o *onceReplier) Consumed() bool { return o.consumed.Load() }
