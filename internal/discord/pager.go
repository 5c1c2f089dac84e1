package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/starlover/watchtower/internal/render"
)

// pagerRenderer implements pagination.Renderer by editing the session's
// message in place.
type pagerRenderer struct {
	dg *discordgo.Session
}

func (r *pagerRenderer) UpdatePage(channelID, messageID string, item render.Item, page render.PageContext) error {
	embeds := []*discordgo.MessageEmbed{render.Page(item, page)}
	components := render.NavRow(page)
	_, err := r.dg.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Embeds:     &embeds,
		Components: &components,
	})
	return err
}

// StripControls removes the navigation row, leaving the current embed as is.
func (r *pagerRenderer) StripControls(channelID, messageID string) error {
	components := []discordgo.MessageComponent{}
	_, err := r.dg.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Components: &components,
	})
	return err
}
