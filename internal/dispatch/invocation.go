package dispatch

import (
	"github.com/bwmarrin/discordgo"
)

// Args holds the raw argument values of one invocation, keyed by argument
// name. Values are string, int64, or bool depending on the ArgumentSpec;
// user and channel arguments carry the referenced ID as a string.
type Args map[string]any

// String returns the string value under name, or "" when absent.
func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// Int returns the integer value under name, or 0 when absent.
func (a Args) Int(name string) int64 {
	v, _ := a[name].(int64)
	return v
}

// Bool returns the boolean value under name, or false when absent.
func (a Args) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

// Invocation carries everything a handler may need for one command event.
// It is created per inbound event and discarded after handler completion.
type Invocation struct {
	ActorID          string
	ActorUsername    string
	ActorPermissions int64
	GuildID          string
	ChannelID        string
	Args             Args
	// Replier is the reply capability for this invocation: single-use for
	// the first response, multi-use for followups.
	Replier Replier
	// Data is the transport adapter's own context, opaque to the core.
	Data any
}

// Replier is the reply capability handed to handlers. Reply, ReplyEmbed and
// Defer consume the single first-reply slot; Edit, EditPage and Followup
// require it to be consumed already.
type Replier interface {
	Reply(content string, ephemeral bool) error
	ReplyEmbed(embed *discordgo.MessageEmbed, ephemeral bool) error
	Defer() error
	Edit(content string) error
	// EditPage replaces the first response with an embed plus component
	// rows and returns the identity of the backing message.
	EditPage(embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (messageID string, err error)
	Followup(content string, ephemeral bool) error
	Consumed() bool
}
